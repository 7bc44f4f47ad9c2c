// Package observability holds the process-wide Prometheus collectors.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "appseed"

var (
	leadsIngested = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ingest",
		Name:      "leads_total",
		Help:      "Webhook submissions applied, by outcome (created or updated).",
	}, []string{"status"})

	ingestRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ingest",
		Name:      "rejected_total",
		Help:      "Webhook submissions refused, by reason.",
	}, []string{"reason"})

	ingestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "ingest",
		Name:      "duration_seconds",
		Help:      "Time spent handling a webhook submission end to end.",
		Buckets:   prometheus.DefBuckets,
	})

	lastIngestGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "ingest",
		Name:      "last_lead_ingested_timestamp_seconds",
		Help:      "Unix timestamp of the most recent webhook submission applied.",
	})

	transfers = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "transfer",
		Name:      "leads_total",
		Help:      "Cross-pipeline lead migrations, by trigger and outcome.",
	}, []string{"trigger", "outcome"})

	forwardFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "forward",
		Name:      "failures_total",
		Help:      "Outbound webhook forwards that failed or were answered with a non-2xx status.",
	})
)

func init() {
	prometheus.MustRegister(leadsIngested, ingestRejected, ingestDuration, lastIngestGauge, transfers, forwardFailures)
}

// Transfer triggers.
const (
	TriggerManual    = "manual"
	TriggerAutomatic = "automatic"
)

// Transfer outcomes.
const (
	OutcomeTransferred = "transferred"
	OutcomeConflict    = "conflict"
	OutcomeFailed      = "failed"
)

// RecordLeadIngested counts an applied submission and moves the watermark.
func RecordLeadIngested(status string, ts time.Time) {
	leadsIngested.WithLabelValues(status).Inc()
	if !ts.IsZero() {
		lastIngestGauge.Set(float64(ts.Unix()))
	}
}

// RecordIngestRejected counts a refused submission.
func RecordIngestRejected(reason string) {
	ingestRejected.WithLabelValues(reason).Inc()
}

// ObserveIngestDuration records how long a submission took since start.
func ObserveIngestDuration(start time.Time) {
	ingestDuration.Observe(time.Since(start).Seconds())
}

// RecordTransfer counts a migration attempt.
func RecordTransfer(trigger, outcome string) {
	transfers.WithLabelValues(trigger, outcome).Inc()
}

// RecordForwardFailure counts a failed outbound forward.
func RecordForwardFailure() {
	forwardFailures.Inc()
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

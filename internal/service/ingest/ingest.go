package ingest

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/victorazesc/appseed-sub000/internal/domain"
	"github.com/victorazesc/appseed-sub000/internal/observability"
)

// Rejection reasons reported to metrics.
const (
	reasonNotFound     = "not_found"
	reasonUnauthorized = "unauthorized"
	reasonInvalid      = "invalid"
	reasonInternal     = "internal"
)

// Ingest authenticates a webhook call and creates or updates a lead.
//
// Checks run in a fixed order so an unknown pipeline is reported before a
// bad token and a bad token before a bad body; nothing is written unless
// all of them pass.
func (s *Service) Ingest(ctx context.Context, req Request) (Result, error) {
	start := time.Now()
	defer observability.ObserveIngestDuration(start)

	pipeline, err := s.pipelines.GetByWebhookRef(ctx, req.Ref)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			observability.RecordIngestRejected(reasonNotFound)
			return Result{}, fmt.Errorf("pipeline %s: %w", req.Ref, domain.ErrNotFound)
		}
		observability.RecordIngestRejected(reasonInternal)
		return Result{}, fmt.Errorf("resolve pipeline: %w", err)
	}

	if !tokenMatches(pipeline.Webhook.Token, req.Token) {
		observability.RecordIngestRejected(reasonUnauthorized)
		s.log.WarnContext(ctx, "webhook token rejected", slog.String("pipeline_id", pipeline.ID.String()))
		return Result{}, domain.ErrUnauthorized
	}

	payload, err := ParsePayload(req.Body)
	if err != nil {
		observability.RecordIngestRejected(reasonInvalid)
		return Result{}, err
	}

	stages, err := s.pipelines.ListStages(ctx, pipeline.ID)
	if err != nil {
		observability.RecordIngestRejected(reasonInternal)
		return Result{}, fmt.Errorf("list stages: %w", err)
	}
	stage, err := resolveStage(pipeline, stages, payload.Stage)
	if err != nil {
		observability.RecordIngestRejected(reasonInvalid)
		return Result{}, err
	}

	var (
		lead   domain.Lead
		status domain.IngestStatus
	)
	now := s.now()
	err = s.runInTx(ctx, func(txCtx context.Context) error {
		match, err := s.findDuplicate(txCtx, pipeline.ID, payload, now)
		if err != nil {
			return err
		}
		lead, status, err = s.upsert(txCtx, pipeline, stage, payload, match, now)
		return err
	})
	if err != nil {
		observability.RecordIngestRejected(reasonInternal)
		return Result{}, fmt.Errorf("ingest lead: %w", err)
	}

	result := Result{
		LeadID:     lead.ID,
		PipelineID: pipeline.ID,
		StageID:    lead.StageID,
		Status:     status,
	}

	observability.RecordLeadIngested(status.String(), now)
	s.log.InfoContext(ctx, "lead ingested",
		slog.String("pipeline_id", pipeline.ID.String()),
		slog.String("lead_id", lead.ID.String()),
		slog.String("stage_id", lead.StageID.String()),
		slog.String("status", status.String()),
	)

	if pipeline.ForwardURL != nil && *pipeline.ForwardURL != "" {
		s.forwardResult(ctx, *pipeline.ForwardURL, result, req.Body)
	}

	return result, nil
}

func (s *Service) forwardResult(ctx context.Context, url string, result Result, body []byte) {
	encoded, err := json.Marshal(forwardEnvelope{
		Event:      "lead.ingested",
		LeadID:     result.LeadID,
		PipelineID: result.PipelineID,
		StageID:    result.StageID,
		Status:     result.Status,
		Payload:    json.RawMessage(body),
	})
	if err != nil {
		s.log.WarnContext(ctx, "forward envelope", slog.String("error", err.Error()))
		return
	}
	s.forward.Forward(ctx, url, encoded)
}

// tokenMatches compares the presented token byte for byte with the stored
// one. An empty stored token never matches.
func tokenMatches(stored, presented string) bool {
	if stored == "" || presented == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1
}

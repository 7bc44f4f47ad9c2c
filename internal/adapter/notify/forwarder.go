// Package notify delivers best-effort copies of ingested payloads to
// operator-configured URLs.
package notify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/victorazesc/appseed-sub000/internal/observability"
)

const defaultTimeout = 5 * time.Second

// Forwarder POSTs JSON bodies in the background. Deliveries are never
// retried and their failures never reach the caller.
type Forwarder struct {
	httpClient *http.Client
	timeout    time.Duration
	log        *slog.Logger

	wg sync.WaitGroup
}

// NewForwarder creates a Forwarder whose deliveries are bounded by timeout.
// A non-positive timeout falls back to 5s.
func NewForwarder(logger *slog.Logger, timeout time.Duration) *Forwarder {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Forwarder{
		httpClient: &http.Client{Timeout: timeout},
		timeout:    timeout,
		log:        logger.With("adapter", "notify"),
	}
}

// Forward schedules a delivery of body to url and returns immediately.
// The delivery outlives ctx's cancellation but keeps its values.
func (f *Forwarder) Forward(ctx context.Context, url string, body []byte) {
	f.wg.Add(1)
	go func() {
		defer f.wg.Done()

		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.timeout)
		defer cancel()

		if err := f.send(sendCtx, url, body); err != nil {
			observability.RecordForwardFailure()
			f.log.WarnContext(ctx, "forward failed",
				slog.String("url", url),
				slog.String("error", err.Error()),
			)
			return
		}
		f.log.DebugContext(ctx, "forward delivered", slog.String("url", url))
	}()
}

// Close waits for in-flight deliveries or until ctx is done.
func (f *Forwarder) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		f.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("notify: close: %w", ctx.Err())
	}
}

func (f *Forwarder) send(ctx context.Context, url string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

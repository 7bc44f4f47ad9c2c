package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/victorazesc/appseed-sub000/internal/domain"
	"github.com/victorazesc/appseed-sub000/internal/service/ingest"
)

type ingestService interface {
	Ingest(ctx context.Context, req ingest.Request) (ingest.Result, error)
}

// WebhookHandler accepts inbound lead submissions. The pipeline is
// addressed by id (pipeline or webhook id) or by slug; both paths share
// the same logic.
type WebhookHandler struct {
	svc     ingestService
	maxBody int64
	log     *slog.Logger
}

func NewWebhookHandler(svc ingestService, maxBody int64, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{svc: svc, maxBody: maxBody, log: logger.With("handler", "webhook")}
}

type ingestResponse struct {
	LeadID     string `json:"leadId"`
	PipelineID string `json:"pipelineId"`
	StageID    string `json:"stageId"`
	Status     string `json:"status"`
}

// IngestByID handles POST /webhooks/{pipelineID}/leads. A value that is
// not a UUID is looked up as a slug.
func (h *WebhookHandler) IngestByID(w http.ResponseWriter, r *http.Request) {
	h.ingest(w, r, domain.PipelineRefFromString(r.PathValue("pipelineID")))
}

// IngestBySlug handles POST /webhooks/by-slug/{slug}/leads.
func (h *WebhookHandler) IngestBySlug(w http.ResponseWriter, r *http.Request) {
	h.ingest(w, r, domain.PipelineRef{Slug: r.PathValue("slug")})
}

func (h *WebhookHandler) ingest(w http.ResponseWriter, r *http.Request, ref domain.PipelineRef) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}

	res, err := h.svc.Ingest(r.Context(), ingest.Request{
		Ref:   ref,
		Token: bearerToken(r),
		Body:  body,
	})
	if err != nil {
		handleError(h.log, w, r, err, http.StatusUnprocessableEntity)
		return
	}

	status := http.StatusOK
	if res.Status == domain.IngestStatusCreated {
		status = http.StatusCreated
	}
	writeJSON(w, status, ingestResponse{
		LeadID:     res.LeadID.String(),
		PipelineID: res.PipelineID.String(),
		StageID:    res.StageID.String(),
		Status:     res.Status.String(),
	})
}

// bearerToken returns the pipeline secret from the Authorization header,
// or "" when the header is absent or uses another scheme.
func bearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/victorazesc/appseed-sub000/internal/domain"
	"github.com/victorazesc/appseed-sub000/internal/service/lead"
	"github.com/victorazesc/appseed-sub000/internal/service/transfer"
	"github.com/victorazesc/appseed-sub000/internal/service/transition"
)

type transferService interface {
	Transfer(ctx context.Context, input transfer.Input) (transfer.Result, error)
}

type stageMover interface {
	MoveStage(ctx context.Context, leadID, stageID uuid.UUID) (transition.MoveResult, error)
}

type leadReader interface {
	ListActive(ctx context.Context, filter domain.LeadFilter) ([]domain.Lead, error)
	Get(ctx context.Context, id uuid.UUID) (lead.Detail, error)
}

// LeadHandler serves the lead API: transfers, stage moves and reads.
type LeadHandler struct {
	transfers transferService
	mover     stageMover
	reader    leadReader
	log       *slog.Logger
}

func NewLeadHandler(transfers transferService, mover stageMover, reader leadReader, logger *slog.Logger) *LeadHandler {
	return &LeadHandler{transfers: transfers, mover: mover, reader: reader, log: logger.With("handler", "lead")}
}

type transferRequest struct {
	TargetPipelineID uuid.UUID  `json:"targetPipelineId"`
	TargetStageID    *uuid.UUID `json:"targetStageId"`
	CopyActivities   *bool      `json:"copyActivities"`
	ArchiveSource    bool       `json:"archiveSource"`
	SourceStageID    *uuid.UUID `json:"sourceStageId"`
}

type transferResponse struct {
	NewLeadID          string `json:"newLeadId"`
	TargetPipelineID   string `json:"targetPipelineId"`
	TargetPipelineName string `json:"targetPipelineName"`
	TargetStageID      string `json:"targetStageId"`
	CopiedActivities   int64  `json:"copiedActivities"`
	SourceArchived     bool   `json:"sourceArchived"`
}

// Transfer handles POST /api/leads/{leadID}/transfer.
func (h *LeadHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	leadID, ok := pathUUID(w, r, "leadID")
	if !ok {
		return
	}
	var req transferRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	copyActivities := true
	if req.CopyActivities != nil {
		copyActivities = *req.CopyActivities
	}

	res, err := h.transfers.Transfer(r.Context(), transfer.Input{
		LeadID:           leadID,
		TargetPipelineID: req.TargetPipelineID,
		TargetStageID:    req.TargetStageID,
		CopyActivities:   copyActivities,
		ArchiveSource:    req.ArchiveSource,
		SourceStageID:    req.SourceStageID,
		Trigger:          domain.TransitionModeManual,
	})
	if err != nil {
		handleError(h.log, w, r, err, http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, toTransferResponse(res))
}

type moveRequest struct {
	StageID uuid.UUID `json:"stageId"`
}

type moveResponse struct {
	LeadID     string             `json:"leadId"`
	StageID    string             `json:"stageId"`
	Moved      bool               `json:"moved"`
	Transition transitionResponse `json:"transition"`
}

type transitionResponse struct {
	Mode string `json:"mode"`

	TargetPipelineID string  `json:"targetPipelineId,omitempty"`
	TargetStageID    *string `json:"targetStageId,omitempty"`
	CopyActivities   *bool   `json:"copyActivities,omitempty"`
	ArchiveSource    *bool   `json:"archiveSource,omitempty"`
	SourceStageID    string  `json:"sourceStageId,omitempty"`

	NewLeadID          string `json:"newLeadId,omitempty"`
	TargetPipelineName string `json:"targetPipelineName,omitempty"`
	AlreadyTransferred bool   `json:"alreadyTransferred,omitempty"`
	PipelineName       string `json:"pipelineName,omitempty"`
	Error              string `json:"error,omitempty"`
}

// MoveStage handles POST /api/leads/{leadID}/stage.
func (h *LeadHandler) MoveStage(w http.ResponseWriter, r *http.Request) {
	leadID, ok := pathUUID(w, r, "leadID")
	if !ok {
		return
	}
	var req moveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.mover.MoveStage(r.Context(), leadID, req.StageID)
	if err != nil {
		handleError(h.log, w, r, err, http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, moveResponse{
		LeadID:     res.LeadID.String(),
		StageID:    res.StageID.String(),
		Moved:      res.Moved,
		Transition: toTransitionResponse(res.Transition),
	})
}

type leadResponse struct {
	ID         string    `json:"id"`
	PipelineID string    `json:"pipelineId"`
	StageID    string    `json:"stageId"`
	Name       string    `json:"name"`
	Email      *string   `json:"email,omitempty"`
	Phone      *string   `json:"phone,omitempty"`
	Company    *string   `json:"company,omitempty"`
	ValueCents int64     `json:"valueCents"`
	OwnerID    *string   `json:"ownerId,omitempty"`
	Archived   bool      `json:"archived"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type activityResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Content   *string   `json:"content,omitempty"`
	Status    string    `json:"status"`
	Priority  string    `json:"priority"`
	DueAt     *string   `json:"dueAt,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type auditResponse struct {
	Action    string         `json:"action"`
	ActorID   *string        `json:"actorId,omitempty"`
	Changes   map[string]any `json:"changes"`
	CreatedAt time.Time      `json:"createdAt"`
}

type leadDetailResponse struct {
	leadResponse
	Activities []activityResponse `json:"activities"`
	History    []auditResponse    `json:"history"`
}

type leadListResponse struct {
	Leads  []leadResponse `json:"leads"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// Get handles GET /api/leads/{leadID}.
func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	leadID, ok := pathUUID(w, r, "leadID")
	if !ok {
		return
	}

	d, err := h.reader.Get(r.Context(), leadID)
	if err != nil {
		handleError(h.log, w, r, err, http.StatusBadRequest)
		return
	}

	resp := leadDetailResponse{
		leadResponse: toLeadResponse(d.Lead),
		Activities:   make([]activityResponse, 0, len(d.Activities)),
		History:      make([]auditResponse, 0, len(d.History)),
	}
	for _, a := range d.Activities {
		resp.Activities = append(resp.Activities, toActivityResponse(a))
	}
	for _, rec := range d.History {
		resp.History = append(resp.History, auditResponse{
			Action:    rec.Action.String(),
			ActorID:   uuidString(rec.ActorID),
			Changes:   rec.Changes,
			CreatedAt: rec.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// List handles GET /api/pipelines/{pipelineID}/leads?stageId=&limit=&offset=.
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	pipelineID, ok := pathUUID(w, r, "pipelineID")
	if !ok {
		return
	}

	filter := domain.LeadFilter{PipelineID: pipelineID}
	if v := r.URL.Query().Get("stageId"); v != "" {
		stageID, err := uuid.Parse(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id", Field: "stageId"})
			return
		}
		filter.StageID = &stageID
	}
	var err error
	if filter.Limit, err = queryInt(r, "limit"); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "must be an integer", Field: "limit"})
		return
	}
	if filter.Offset, err = queryInt(r, "offset"); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "must be an integer", Field: "offset"})
		return
	}

	leads, err := h.reader.ListActive(r.Context(), filter)
	if err != nil {
		handleError(h.log, w, r, err, http.StatusBadRequest)
		return
	}

	filter = filter.Normalize()
	resp := leadListResponse{
		Leads:  make([]leadResponse, 0, len(leads)),
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}
	for _, l := range leads {
		resp.Leads = append(resp.Leads, toLeadResponse(l))
	}
	writeJSON(w, http.StatusOK, resp)
}

func toTransferResponse(res transfer.Result) transferResponse {
	return transferResponse{
		NewLeadID:          res.NewLeadID.String(),
		TargetPipelineID:   res.TargetPipelineID.String(),
		TargetPipelineName: res.TargetPipelineName,
		TargetStageID:      res.TargetStageID.String(),
		CopiedActivities:   res.CopiedActivities,
		SourceArchived:     res.SourceArchived,
	}
}

func toTransitionResponse(o transition.Outcome) transitionResponse {
	resp := transitionResponse{Mode: o.Mode.String()}

	switch o.Mode {
	case domain.TransitionModeManual:
		resp.TargetPipelineID = o.Target.PipelineID.String()
		resp.TargetStageID = uuidString(o.Target.StageID)
		resp.CopyActivities = &o.Target.CopyActivities
		resp.ArchiveSource = &o.Target.ArchiveSource
		resp.SourceStageID = o.SourceStageID.String()
	case domain.TransitionModeAutomatic:
		resp.TargetPipelineID = o.Target.PipelineID.String()
		switch {
		case o.Transfer != nil:
			resp.NewLeadID = o.Transfer.NewLeadID.String()
			resp.TargetPipelineName = o.Transfer.TargetPipelineName
		case o.AlreadyTransferred:
			resp.AlreadyTransferred = true
			resp.PipelineName = o.PipelineName
		case o.Err != nil:
			resp.Error = "transfer_failed"
		}
	}
	return resp
}

func toLeadResponse(l domain.Lead) leadResponse {
	return leadResponse{
		ID:         l.ID.String(),
		PipelineID: l.PipelineID.String(),
		StageID:    l.StageID.String(),
		Name:       l.Name,
		Email:      l.Email,
		Phone:      l.Phone,
		Company:    l.Company,
		ValueCents: l.ValueCents,
		OwnerID:    uuidString(l.OwnerID),
		Archived:   l.Archived,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}

func toActivityResponse(a domain.Activity) activityResponse {
	resp := activityResponse{
		ID:        a.ID.String(),
		Type:      a.Type.String(),
		Title:     a.Title,
		Content:   a.Content,
		Status:    a.Status.String(),
		Priority:  a.Priority.String(),
		CreatedAt: a.CreatedAt,
	}
	if a.DueAt != nil {
		due := a.DueAt.UTC().Format(time.RFC3339)
		resp.DueAt = &due
	}
	return resp
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

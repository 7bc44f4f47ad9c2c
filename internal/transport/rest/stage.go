package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/victorazesc/appseed-sub000/internal/domain"
	"github.com/victorazesc/appseed-sub000/internal/service/transition"
)

type transitionConfigurer interface {
	ConfigureTransition(ctx context.Context, input transition.ConfigInput) (domain.Stage, error)
}

// StageHandler serves stage transition configuration.
type StageHandler struct {
	svc transitionConfigurer
	log *slog.Logger
}

func NewStageHandler(svc transitionConfigurer, logger *slog.Logger) *StageHandler {
	return &StageHandler{svc: svc, log: logger.With("handler", "stage")}
}

type transitionConfigRequest struct {
	Mode             string     `json:"mode"`
	TargetPipelineID *uuid.UUID `json:"targetPipelineId"`
	TargetStageID    *uuid.UUID `json:"targetStageId"`
	CopyActivities   *bool      `json:"copyActivities"`
	ArchiveSource    bool       `json:"archiveSource"`
}

type stageResponse struct {
	ID         string                  `json:"id"`
	PipelineID string                  `json:"pipelineId"`
	Name       string                  `json:"name"`
	Position   int                     `json:"position"`
	Transition stageTransitionResponse `json:"transition"`
}

type stageTransitionResponse struct {
	Mode             string  `json:"mode"`
	TargetPipelineID *string `json:"targetPipelineId,omitempty"`
	TargetStageID    *string `json:"targetStageId,omitempty"`
	CopyActivities   *bool   `json:"copyActivities,omitempty"`
	ArchiveSource    *bool   `json:"archiveSource,omitempty"`
}

// ConfigureTransition handles PUT /api/stages/{stageID}/transition.
func (h *StageHandler) ConfigureTransition(w http.ResponseWriter, r *http.Request) {
	stageID, ok := pathUUID(w, r, "stageID")
	if !ok {
		return
	}
	var req transitionConfigRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	stage, err := h.svc.ConfigureTransition(r.Context(), transition.ConfigInput{
		StageID:          stageID,
		Mode:             domain.TransitionMode(req.Mode),
		TargetPipelineID: req.TargetPipelineID,
		TargetStageID:    req.TargetStageID,
		CopyActivities:   req.CopyActivities,
		ArchiveSource:    req.ArchiveSource,
	})
	if err != nil {
		handleError(h.log, w, r, err, http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, toStageResponse(stage))
}

func toStageResponse(s domain.Stage) stageResponse {
	resp := stageResponse{
		ID:         s.ID.String(),
		PipelineID: s.PipelineID.String(),
		Name:       s.Name,
		Position:   s.Position,
		Transition: stageTransitionResponse{Mode: s.Transition.Mode().String()},
	}
	if target, ok := s.Transition.Target(); ok {
		pid := target.PipelineID.String()
		resp.Transition.TargetPipelineID = &pid
		resp.Transition.TargetStageID = uuidString(target.StageID)
		resp.Transition.CopyActivities = &target.CopyActivities
		resp.Transition.ArchiveSource = &target.ArchiveSource
	}
	return resp
}

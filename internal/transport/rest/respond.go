package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/victorazesc/appseed-sub000/internal/domain"
)

// errorResponse is the body of every non-2xx answer.
type errorResponse struct {
	Error        string `json:"error"`
	Field        string `json:"field,omitempty"`
	PipelineName string `json:"pipelineName,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// handleError maps service errors to HTTP answers. validationStatus is 422
// on the webhook routes and 400 on the API.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error, validationStatus int) {
	var (
		validation *domain.ValidationError
		conflict   *domain.TransferConflictError
	)
	switch {
	case errors.As(err, &validation):
		first := validation.First()
		writeJSON(w, validationStatus, errorResponse{Error: first.Message, Field: first.Field})
	case errors.Is(err, domain.ErrValidation):
		writeError(w, validationStatus, "invalid request")
	case errors.As(err, &conflict):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "already_transferred", PipelineName: conflict.PipelineName})
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "conflict")
	default:
		log.ErrorContext(r.Context(), "internal error",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// pathUUID parses a path wildcard. On failure it answers 400 and reports false.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id", Field: name})
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

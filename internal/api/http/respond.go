package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/logger"
)

type errorResponse struct {
	Error          string   `json:"error"`
	Status         string   `json:"status,omitempty"`
	AllowedActions []string `json:"allowed_actions,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError maps the engine's failure taxonomy onto HTTP status codes. A
// transition violation carries the current status and the still-allowed
// actions so the client can render the disabled control.
func writeError(w http.ResponseWriter, err error) {
	var te *domain.TransitionError
	if errors.As(err, &te) {
		writeJSON(w, http.StatusConflict, errorResponse{
			Error:          te.Error(),
			Status:         string(te.Status),
			AllowedActions: te.AllowedActions,
		})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrNotParticipant):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrCancellationNotAllowed),
		errors.Is(err, domain.ErrAlreadyConfirmed),
		errors.Is(err, domain.ErrDisputeAlreadyActive):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrEvidenceTooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrInvalidReviewInput),
		errors.Is(err, domain.ErrCodeMismatch):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "error", err)
		writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

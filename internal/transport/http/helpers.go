package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"quiz-event-service/internal/domain"
)

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrQuestionNotFound):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid question ID"})
	case errors.Is(err, domain.ErrUserIDRequired):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "User ID required"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "request failed"})
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func trimmed(s string) string { return strings.TrimSpace(s) }

package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Ate-lier/microservice-questions/internal/repository"
	"github.com/Ate-lier/microservice-questions/pkg/helpers"
)

// Error taxonomy exposed to clients. Validation failures are rejected with
// 400 before any repository call; everything that escapes a handler maps to
// Server; Unknown is reserved for recovered panics.
const (
	ErrorTypeValidation = "Validation"
	ErrorTypeServer     = "Server"
	ErrorTypeUnknown    = "Unknown"
)

// APIError is one entry of the error array in failure responses.
type APIError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error []APIError `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeAPIError(w http.ResponseWriter, status int, errType, message string) {
	writeJSON(w, status, errorResponse{Error: []APIError{{Type: errType, Message: message}}})
}

// writeValidationError renders one error entry per failing field.
func writeValidationError(w http.ResponseWriter, err error) {
	messages := helpers.ValidationMessages(err)
	apiErrors := make([]APIError, 0, len(messages))
	for _, message := range messages {
		apiErrors = append(apiErrors, APIError{Type: ErrorTypeValidation, Message: message})
	}
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: apiErrors})
}

// writeServiceError maps service-layer failures onto the wire taxonomy.
// A zero-row update or delete surfaces as a 500 Server error, matching the
// long-observed behavior of this API rather than a 404 (see DESIGN.md).
func writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		writeAPIError(w, http.StatusInternalServerError, ErrorTypeServer, "entity not found")
		return
	}
	writeAPIError(w, http.StatusInternalServerError, ErrorTypeServer, err.Error())
}

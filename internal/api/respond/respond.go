package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/reelgraph/reelgraph/internal/model"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// WriteError writes a standardized error response
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	response := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Code:    statusCode,
		Message: message,
	}
	WriteJSON(w, statusCode, response)
}

// WriteBadRequest writes a 400 Bad Request response
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

// WriteNotFound writes a 404 Not Found response
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message)
}

// WriteDomainError maps a domain error to its HTTP status: validation
// failures become 400, missing entities 404, uniqueness conflicts 409,
// anything else 500 with the detail withheld.
func WriteDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrValidation):
		WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrNotFound):
		WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, model.ErrConflict):
		WriteError(w, http.StatusConflict, err.Error())
	default:
		log.Error().Err(err).Msg("request failed")
		WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

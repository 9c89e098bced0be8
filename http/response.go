package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ivhu/farmstand"
)

// ErrorResponse represents a JSON error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteError writes a JSON error response
func WriteError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: message}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// HandleError writes appropriate error response based on error type. The
// wrapped detail is logged, never sent to the client.
func HandleError(w http.ResponseWriter, err error) {
	slog.Error("request error", "error", err)

	if errors.Is(err, farmstand.ErrInvalidInput) {
		WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if errors.Is(err, farmstand.ErrUnauthorized) {
		WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if errors.Is(err, farmstand.ErrNotFound) {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}

	// Default internal error
	WriteError(w, http.StatusInternalServerError, "Internal server error")
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, code int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(data)
}

package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/PixelFarm_Go/internal/domain"
	"github.com/osse101/PixelFarm_Go/internal/logger"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse wraps a payload under "data"
type DataResponse struct {
	Data interface{} `json:"data"`
}

// UserResponse is returned by update_user_data
type UserResponse struct {
	Success bool         `json:"success"`
	User    *domain.User `json:"user"`
}

// encodeBuffers holds response buffers; game states are a few KB each
var encodeBuffers = sync.Pool{
	New: func() interface{} { return bytes.NewBuffer(make([]byte, 0, 4<<10)) },
}

// respondJSON sends a JSON response with the given status code and payload.
// The body is encoded before the header is written so an encoding failure
// can still become a 500.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := encodeBuffers.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		encodeBuffers.Put(buf)
	}()

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"` + ErrMsgGenericServerError + `"}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// mapServiceError maps a service error to a status code and a client-facing
// message. Game rule failures carry their own message; anything else is a
// store or programming failure and gets the generic message.
func mapServiceError(err error) (int, string) {
	if err == nil || !domain.IsGameError(err) {
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	msg := domain.PublicMessage(err)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, msg
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrRejected):
		return http.StatusBadRequest, msg
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError logs a failed operation and writes the mapped response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, msg := mapServiceError(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Warn(opName+" rejected", "error", err, "status", status)
	}
	respondError(w, status, msg)
}

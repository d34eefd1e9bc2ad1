package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/osse101/PixelFarm_Go/internal/logger"
)

// maxBodyBytes caps request bodies; an autosave batch is the largest payload
const maxBodyBytes = 1 << 20

// DecodeAndValidateRequest decodes a JSON request body and validates it.
// If this function returns an error, the HTTP response has already been
// written and the handler should return.
//
// Example usage:
//
//	var req PlantSeedRequest
//	if err := DecodeAndValidateRequest(r, w, &req, OpPlantSeed); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(req); err != nil {
		log.Warn(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(fmt.Sprintf("%s request decoded", actionName))

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// userScoped requests carry the acting user, which is attached to the request logger
type userScoped interface {
	scopeUserID() string
}

// handleAction is the shared shape of every function endpoint: POST only,
// decode and validate, call the service, respond 200 with the result.
func handleAction[REQ any, RES any](
	w http.ResponseWriter,
	r *http.Request,
	opName string,
	action func(context.Context, REQ) (RES, error),
	responseFactory func(RES) interface{},
) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, ErrMsgMethodNotAllowed)
		return
	}

	var req REQ
	if err := DecodeAndValidateRequest(r, w, &req, opName); err != nil {
		return
	}

	ctx := r.Context()
	if scoped, ok := any(&req).(userScoped); ok {
		ctx = logger.WithUserID(ctx, scoped.scopeUserID())
		r = r.WithContext(ctx)
	}

	res, err := action(ctx, req)
	if err != nil {
		respondServiceError(w, r, opName, err)
		return
	}

	if responseFactory == nil {
		respondJSON(w, http.StatusOK, res)
		return
	}
	respondJSON(w, http.StatusOK, responseFactory(res))
}

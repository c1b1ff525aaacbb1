package restapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"wayfinder.transit.dev/internal/logging"
	"wayfinder.transit.dev/internal/lookup"
	"wayfinder.transit.dev/internal/models"
)

// invalidAPIKeyResponse sends a 401 Unauthorized response with the required format
// for invalid API key errors
func (api *RestAPI) invalidAPIKeyResponse(w http.ResponseWriter, r *http.Request) {
	response := struct {
		Code        int    `json:"code"`
		CurrentTime int64  `json:"currentTime"`
		Text        string `json:"text"`
		Version     int    `json:"version"`
	}{
		Code:        http.StatusUnauthorized,
		CurrentTime: models.ResponseCurrentTime(),
		Text:        "permission denied",
		Version:     models.ResponseVersion,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		api.Logger.Error("failed to encode invalid API key response", "error", err)
	}
}

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(logging.FromContext(r.Context()), "request failed", err,
		slog.String("path", r.URL.Path))

	response := struct {
		Code        int    `json:"code"`
		CurrentTime int64  `json:"currentTime"`
		Text        string `json:"text"`
		Version     int    `json:"version"`
	}{
		Code:        http.StatusInternalServerError,
		CurrentTime: models.ResponseCurrentTime(),
		Text:        "internal server error",
		Version:     models.ResponseVersion,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	encoderErr := json.NewEncoder(w).Encode(response)
	if encoderErr != nil {
		api.Logger.Error("failed to encode server error response", "error", encoderErr)
	}
}

// validationErrorResponse sends a 400 Bad Request response with field-specific validation errors
func (api *RestAPI) validationErrorResponse(w http.ResponseWriter, r *http.Request, fieldErrors map[string][]string) {
	response := struct {
		Code        int                 `json:"code"`
		CurrentTime int64               `json:"currentTime"`
		FieldErrors map[string][]string `json:"fieldErrors"`
		Text        string              `json:"text"`
		Version     int                 `json:"version"`
	}{
		Code:        http.StatusBadRequest,
		CurrentTime: models.ResponseCurrentTime(),
		FieldErrors: fieldErrors,
		Text:        "invalid request",
		Version:     models.ResponseVersion,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		api.Logger.Error("failed to encode validation error response", "error", err)
	}
}

// handleError maps lookup and planner errors onto responses: invalid input
// is a 400 with field errors, not found a 404, anything else a 500.
func (api *RestAPI) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *lookup.ValidationError
	switch {
	case errors.As(err, &verr):
		api.validationErrorResponse(w, r, verr.Fields)
	case errors.Is(err, lookup.ErrInvalidInput):
		api.validationErrorResponse(w, r, map[string][]string{"request": {err.Error()}})
	case errors.Is(err, lookup.ErrNotFound):
		api.sendNotFound(w, r)
	case errors.Is(err, context.Canceled):
		// Client went away; nothing can be written.
		logging.FromContext(r.Context()).Debug("request cancelled", slog.String("path", r.URL.Path))
	default:
		api.serverErrorResponse(w, r, err)
	}
}

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/strscout/backend/src/logger"
	"github.com/strscout/backend/src/security/validation"
	"github.com/strscout/backend/src/services"
	"github.com/strscout/backend/src/utils"
)

var errEmptyBody = errors.New("request body is empty")

// pathID parses a positive integer URL parameter.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// decodeJSON reads a single JSON object from the request body.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("request body exceeds %d bytes", maxErr.Limit)
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// decodeAndValidate decodes the body into dst and checks its validate tags.
// On failure it has already written a 400 response.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := decodeJSON(r, dst); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return false
	}
	if err := validation.ValidateStruct(dst); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// sendServiceError maps service errors onto status codes. notFoundMsg is
// the body of a 404.
func sendServiceError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.SendJSONError(w, notFoundMsg, http.StatusNotFound)
	case errors.Is(err, services.ErrDatabaseUnavailable):
		utils.SendJSONError(w, "Database not available", http.StatusServiceUnavailable)
	case errors.Is(err, validation.ErrValidationFailed):
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
	default:
		logger.FromContext(r.Context()).Error("Request failed", "path", r.URL.Path, "error", err)
		utils.SendJSONError(w, "Internal server error", http.StatusInternalServerError)
	}
}

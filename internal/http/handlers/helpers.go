package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	apperrors "github.com/mauv0809/gleague/internal/errors"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	DryRunKey    ContextKey = "dryRun"
	ViewerKey    ContextKey = "viewer"
	RequestIDKey ContextKey = "requestID"
)

// IsDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(DryRunKey).(bool)
	return ok && dryRun
}

// ViewerFromContext returns the Steam ID of the caller, if one was supplied.
func ViewerFromContext(r *http.Request) (int64, bool) {
	viewer, ok := r.Context().Value(ViewerKey).(int64)
	return viewer, ok
}

// RequestIDFromContext returns the id assigned to the request by the params middleware.
func RequestIDFromContext(r *http.Request) string {
	id, _ := r.Context().Value(RequestIDKey).(string)
	return id
}

// StatusFor maps a domain error to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicateMatch):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrInvalidRating):
		return http.StatusNotAcceptable
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrInvalidMatch), errors.Is(err, apperrors.ErrUnknownHero),
		errors.Is(err, apperrors.ErrInvalidParam):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrPlayerResolution):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// respondWithError writes err as JSON with the mapped status code. Internal
// errors are logged and hidden from the caller.
func respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Error("Request failed", "error", err, "path", r.URL.Path, "requestID", RequestIDFromContext(r))
		msg = http.StatusText(status)
	} else {
		log.Debug("Request rejected", "error", err, "status", status, "path", r.URL.Path)
	}
	respondWithJSON(w, status, errorResponse{Error: msg, RequestID: RequestIDFromContext(r)})
}

func respondWithJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("Failed to encode response to JSON", "error", err)
	}
}

// pathInt64 parses a numeric path value. A malformed value is reported as not found.
func pathInt64(r *http.Request, name string) (int64, error) {
	v, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		return 0, apperrors.ErrNotFound
	}
	return v, nil
}

// queryInt reads an integer query parameter no smaller than floor, falling
// back to def when it is absent.
func queryInt(r *http.Request, name string, def, floor int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < floor {
		return 0, fmt.Errorf("%s=%q: %w", name, raw, apperrors.ErrInvalidParam)
	}
	return v, nil
}

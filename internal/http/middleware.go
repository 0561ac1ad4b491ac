package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/gleague/internal/http/handlers"
	"github.com/slack-go/slack"
)

const (
	steamIDHeader   = "X-Steam-ID"
	requestIDHeader = "X-Request-ID"
)

// Middleware defines the standard signature for an HTTP middleware.
type Middleware func(http.Handler) http.Handler

// Chain combines multiple middlewares into a single handler.
// The middlewares are applied in the order they are passed.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// paramsMiddleware assigns a request id and handles common query parameters like 'verbose' and 'dry_run'.
func paramsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, requestID)
		log.Info("incoming request", "method", r.Method, "url", r.URL.String(), "requestID", requestID)

		// Handle 'verbose' for request-scoped verbose logging.
		if r.URL.Query().Get("verbose") == "true" {
			originalLevel := log.GetLevel()
			log.SetLevel(log.DebugLevel)
			defer log.SetLevel(originalLevel)
		}

		isDryRun := r.URL.Query().Get("dry_run") == "true"
		ctx := context.WithValue(r.Context(), handlers.DryRunKey, isDryRun)
		ctx = context.WithValue(ctx, handlers.RequestIDKey, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
		log.Debug("request completed", "method", r.Method, "path", r.URL.Path, "requestID", requestID, "duration", time.Since(start))
	})
}

// viewerMiddleware reads the caller's Steam ID from the X-Steam-ID header.
// Requests without the header continue anonymously.
func (s *Server) viewerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(steamIDHeader)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}
		viewer, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || viewer <= 0 {
			http.Error(w, "Invalid "+steamIDHeader+" header", http.StatusBadRequest)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), handlers.ViewerKey, viewer)))
	})
}

// requireAdmin must run after viewerMiddleware.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		viewer, ok := handlers.ViewerFromContext(r)
		if !ok || !s.Cfg.IsAdmin(viewer) {
			log.Warn("Rejected admin request", "path", r.URL.Path, "viewer", viewer)
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// verifySlackSignature rejects slash command requests that are not signed with
// the configured signing secret.
func (s *Server) verifySlackSignature(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.Cfg.Slack.SigningSecret == "" {
			log.Error("Slack signing secret is not configured")
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		verifier, err := slack.NewSecretsVerifier(r.Header, s.Cfg.Slack.SigningSecret)
		if err != nil {
			log.Warn("Failed to create slack verifier", "error", err)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		r.Body = io.NopCloser(bytes.NewBuffer(body))

		if _, err := verifier.Write(body); err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		if err := verifier.Ensure(); err != nil {
			log.Warn("Invalid slack signature", "error", err)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

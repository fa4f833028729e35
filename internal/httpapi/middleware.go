package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"outlay/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type contextKey string

const ctxUserID contextKey = "user_id"

// userIDFromContext returns the authenticated user id, or "" when the
// request never passed requireAuth.
func userIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(ctxUserID).(string)
	return v
}

// requireAuth verifies the bearer token and injects the subject user id
// into the request context. All failure modes get the same response so a
// caller cannot probe why a token was rejected.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		const prefix = "Bearer "

		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, prefix) {
			metrics.AuthFailuresTotal.Inc()
			writeError(w, http.StatusUnauthorized, "unauthorized", "missing or invalid token")
			return
		}

		userID, err := s.tokens.Verify(strings.TrimSpace(strings.TrimPrefix(auth, prefix)))
		if err != nil {
			s.log.Debug("rejected bearer token", zap.Error(err))
			metrics.AuthFailuresTotal.Inc()
			writeError(w, http.StatusUnauthorized, "unauthorized", "missing or invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), ctxUserID, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.log.Error("panic while handling request",
					zap.Any("panic", rec),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
				)
				writeError(w, http.StatusInternalServerError, "panic", "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// observe logs every request and records it on the Prometheus instruments.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		// Label metrics with the matched route pattern, not the raw path,
		// to keep cardinality bounded.
		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				path = p
			}
		}

		duration := time.Since(start)
		metrics.RecordHTTPRequest(r.Method, path, rw.status, duration)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rw.status),
			zap.Duration("duration", duration),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

package httpserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"

	"github.com/srirupaul05/foodbridge/internal/domain"
	"github.com/srirupaul05/foodbridge/internal/platform/logger"
	"github.com/srirupaul05/foodbridge/internal/platform/metrics"
	"github.com/srirupaul05/foodbridge/internal/usecase"
)

type contextKey string

const sessionCtxKey = contextKey("session")

// Session is the authenticated caller, placed on the request context by the
// auth middleware. Handlers read it instead of any global state.
type Session struct {
	UserID string
	Name   string
	Email  string
	Role   domain.Role
}

// SessionFrom extracts the caller from the context. The zero Session (empty
// UserID) means the request is unauthenticated.
func SessionFrom(ctx context.Context) Session {
	s, _ := ctx.Value(sessionCtxKey).(Session)
	return s
}

// Auth validates the bearer token and attaches the session. Requests
// without a valid token are rejected before reaching the handler.
func Auth(auth *usecase.AuthUsecase, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				respondError(w, log, domain.ErrNotAuthenticated)
				return
			}

			claims, err := auth.ValidateToken(r.Context(), token)
			if err != nil {
				respondError(w, log, domain.ErrNotAuthenticated)
				return
			}

			session := Session{
				UserID: claims.UserID,
				Name:   claims.Name,
				Email:  claims.Email,
				Role:   claims.Role,
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionCtxKey, session)))
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// RequestMetrics records latency and error counters per chi route pattern.
func RequestMetrics(m *metrics.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = r.URL.Path
			}
			m.ObserveRequest(route, rec.status, time.Since(start))
		})
	}
}

// Tracing opens a server span per request.
func Tracing(serviceName string) func(http.Handler) http.Handler {
	tracer := otel.Tracer(serviceName)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracer.Start(r.Context(), r.Method+" "+r.URL.Path)
			defer span.End()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestLogger logs each request at debug level with its duration.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			log.Debugf("%s %s -> %d (%s)", r.Method, r.URL.Path, rec.status, time.Since(start))
		})
	}
}

package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/gaugechart/pkg/observability"
)

// RenderIDHeader carries the id assigned to each request.
const RenderIDHeader = "X-Render-ID"

type renderIDKey struct{}

// RenderID returns the id assigned to the request carrying ctx.
func RenderID(ctx context.Context) string {
	id, _ := ctx.Value(renderIDKey{}).(string)
	return id
}

// renderID assigns each request a random id, echoed in the response header.
func (s *Server) renderID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(RenderIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), renderIDKey{}, id)))
	})
}

// instrument logs each request and reports it to the HTTP hooks under its
// route pattern.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)

		observability.HTTP().OnRequest(r.Context(), r.Method, route)
		observability.HTTP().OnResponse(r.Context(), r.Method, route, status, elapsed)

		logger := s.logger.With("method", r.Method, "route", route, "status", status,
			"duration", elapsed, "id", RenderID(r.Context()))
		if status >= http.StatusInternalServerError {
			logger.Error("request failed")
		} else {
			logger.Debug("request")
		}
	})
}

package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/gaugechart/pkg/errors"
	"github.com/matzehuels/gaugechart/pkg/gauge"
	"github.com/matzehuels/gaugechart/pkg/observability"
	"github.com/matzehuels/gaugechart/pkg/pipeline"
)

// contentTypes maps output formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
}

// errorResponse is the body of every failed request.
type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// gaugeResponse describes a live gauge after a change.
type gaugeResponse struct {
	Name     string   `json:"name"`
	Value    float64  `json:"value"`
	Max      float64  `json:"max"`
	Target   float64  `json:"target"`
	Text     string   `json:"text,omitempty"`
	Rejected []string `json:"rejected,omitempty"`
}

func newGaugeResponse(name string, s *gauge.Scene, rejected []gauge.Rejection) gaugeResponse {
	resp := gaugeResponse{
		Name:   name,
		Value:  s.Value,
		Max:    s.Max,
		Target: s.Needle.Tween.To,
	}
	if s.Indicator != nil {
		resp.Text = s.Indicator.Swap.Next
	}
	if len(rejected) > 0 {
		resp.Rejected = pipeline.Rejections(rejected)
	}
	return resp
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleRender runs a one-shot render. The body is pipeline.Options; a
// format query parameter overrides its formats with a single format.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if !s.decode(w, r, &opts) {
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" && len(opts.Formats) == 1 {
		format = opts.Formats[0]
	}
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	cacheStatus := "miss"
	if result.CacheInfo.RenderHit {
		cacheStatus = "hit"
	}
	w.Header().Set("X-Cache", cacheStatus)
	for _, rj := range result.Rejected {
		w.Header().Add("X-Rejected-Parameter", rj.String())
	}
	writeArtifact(w, format, result.Artifacts[format])
}

func (s *Server) handleListGauges(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"gauges": s.gauges.Names()})
}

// handlePutGauge (re)defines a live gauge and performs a full render.
func (s *Server) handlePutGauge(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var def Definition
	if !s.decode(w, r, &def) {
		return
	}
	scene, rejected, err := s.gauges.Put(r.Context(), name, def)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newGaugeResponse(name, scene, rejected))
}

// handleUpdateGauge feeds a value to a live gauge.
func (s *Server) handleUpdateGauge(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var body struct {
		Value *float64 `json:"value"`
	}
	if !s.decode(w, r, &body) {
		return
	}
	if body.Value == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "value is required"))
		return
	}
	scene, err := s.gauges.Update(r.Context(), name, *body.Value)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newGaugeResponse(name, scene, nil))
}

// handleGetGauge renders the current state of a live gauge. SVG output
// animates the remainder of a running needle transition.
func (s *Server) handleGetGauge(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	scene, cfg, err := s.gauges.Scene(r.Context(), name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	artifacts, err := pipeline.Export(r.Context(), scene, cfg, pipeline.Options{
		Formats: []string{format},
		Animate: true,
		Title:   name,
		Name:    name,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeArtifact(w, format, artifacts[format])
}

func (s *Server) handleDeleteGauge(w http.ResponseWriter, r *http.Request) {
	if err := s.gauges.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decode reads a JSON body into v, writing a 400 response on failure.
// An empty body leaves v untouched.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.ContentLength == 0 {
		return true
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	route := r.URL.Path
	if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
		route = rc.RoutePattern()
	}
	observability.HTTP().OnError(r.Context(), r.Method, route, err)

	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request error", "route", route, "id", RenderID(r.Context()), "error", err)
	} else {
		s.logger.Debug("request rejected", "route", route, "error", err)
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, errorResponse{Code: code, Message: errors.UserMessage(err)})
}

func writeArtifact(w http.ResponseWriter, format string, data []byte) {
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Content-Length", fmt.Sprint(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

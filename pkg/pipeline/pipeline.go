// Package pipeline provides the gauge rendering pipeline for gaugechart.
//
// This package implements the complete configure → render → export pipeline
// used by the CLI and the HTTP API. By centralizing this logic, both entry
// points apply configuration, cache artifacts and emit metrics the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Configure: Apply a decoded configuration document to a fresh chart
//  2. Render: Run the full draw for the requested value
//  3. Export: Serialize the scene in each requested format (SVG, PNG, PDF, JSON)
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	doc, err := pipeline.LoadConfig("cpu.toml")
//	v := 42.0
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Config:  doc,
//	    Value:   &v,
//	    Formats: []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	chart, rejected := pipeline.BuildChart(opts)
//	scene, err := chart.Render()
//	artifacts, err := pipeline.Export(ctx, scene, chart.Config(), opts)
package pipeline

import (
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"

	"github.com/matzehuels/gaugechart/pkg/cache"
	"github.com/matzehuels/gaugechart/pkg/errors"
	"github.com/matzehuels/gaugechart/pkg/gauge"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// DefaultPNGScale is the raster scale used for PNG output.
const DefaultPNGScale = 2.0

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one render.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Config is a configuration document with the same keys as a gauge TOML
	// file. It is applied to a fresh chart with gauge.Chart.Apply.
	Config map[string]any `json:"config,omitempty"`

	// Value is the value to draw. Nil draws the chart without data (needle at
	// the dial start, no max latch).
	Value *float64 `json:"value,omitempty"`

	// Width and Height override the canvas size from Config when non-zero.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Animate    bool     `json:"animate,omitempty"`
	Title      string   `json:"title,omitempty"`
	Background string   `json:"background,omitempty"`
	Name       string   `json:"name,omitempty"`
	Refresh    bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger     `json:"-"`
	Clock  clockwork.Clock `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Scene is the drawn scene. It is nil when every artifact came from cache.
	Scene *gauge.Scene

	// ConfigHash is the content hash of the configuration document.
	ConfigHash string

	// Rejected lists configuration keys that were ignored.
	Rejected []gauge.Rejection

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the artifacts came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Segments   int
	Ticks      int
	Limits     int
	RenderTime time.Duration
	ExportTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, trimming blanks.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the formats and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidSize, "width and height must not be negative")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Clock == nil {
		o.Clock = clockwork.NewRealClock()
	}
	o.validated = true
	return nil
}

// ConfigHash returns the content hash of the configuration document.
// encoding/json sorts map keys, so equal documents hash equally.
func (o *Options) ConfigHash() (string, error) {
	data, err := json.Marshal(o.Config)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "encode configuration")
	}
	return cache.Hash(data), nil
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:     format,
		Width:      o.Width,
		Height:     o.Height,
		Animate:    o.Animate,
		Title:      o.Title,
		Background: o.Background,
		Name:       o.Name,
	}
	if o.Value != nil {
		k.Value = *o.Value
	}
	return k
}

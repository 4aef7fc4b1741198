package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gaugechart/pkg/cache"
	"github.com/matzehuels/gaugechart/pkg/gauge"
	"github.com/matzehuels/gaugechart/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is how long rendered artifacts stay cached.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.TTLArtifact,
	}
}

// Execute runs the complete configure → render → export pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (result *Result, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	defer func() {
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	}()

	configHash, err := opts.ConfigHash()
	if err != nil {
		return nil, err
	}
	result = &Result{ConfigHash: configHash}

	if !opts.Refresh {
		if artifacts, ok := r.cached(ctx, configHash, opts); ok {
			result.Artifacts = artifacts
			result.CacheInfo.RenderHit = true
			r.Logger.Debug("artifacts from cache", "formats", opts.Formats)
			return result, nil
		}
	}

	// Stage 1+2: Configure and render
	renderStart := time.Now()
	chart, rejected := BuildChart(opts)
	result.Rejected = rejected
	scene, err := chart.Render()
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Scene = scene
	result.Stats.RenderTime = time.Since(renderStart)
	result.Stats.Segments = len(scene.Arc)
	if scene.Ticks != nil {
		result.Stats.Ticks = len(scene.Ticks.Paths)
	}
	if scene.Limits != nil {
		result.Stats.Limits = len(scene.Limits.Paths)
	}

	r.Logger.Debug("rendered gauge",
		"segments", result.Stats.Segments,
		"ticks", result.Stats.Ticks,
		"limits", result.Stats.Limits,
		"duration", result.Stats.RenderTime)

	// Stage 3: Export
	exportStart := time.Now()
	artifacts, err := Export(ctx, scene, chart.Config(), opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.ExportTime = time.Since(exportStart)

	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(configHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.ExportTime)

	return result, nil
}

// cached returns the artifacts for every requested format, or false when
// any of them is missing.
func (r *Runner) cached(ctx context.Context, configHash string, opts Options) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(configHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			return nil, false
		}
		observability.Cache().OnCacheHit(ctx, "artifact")
		artifacts[format] = data
	}
	return artifacts, true
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// Rejections formats ignored configuration keys for display.
func Rejections(rs []gauge.Rejection) []string {
	out := make([]string, len(rs))
	for i, rj := range rs {
		out[i] = rj.String()
	}
	return out
}

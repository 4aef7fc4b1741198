// Package pkg provides the core libraries for gaugechart radial gauges.
//
// # Overview
//
// A gauge is a dial arc filled with a colour gradient, optional tick and
// limit markers, a numeric readout and a needle that moves to the current
// value with an eased transition. The pkg directory is organized into four
// main areas:
//
//  1. [gauge] - Domain logic (configuration, geometry, render and update)
//  2. [render] - Output (SVG, JSON, PNG and PDF sinks)
//  3. [pipeline] - Orchestration (configure → render → export, with caching)
//  4. [cache], [feed], [observability] - Infrastructure
//
// # Architecture
//
// The typical data flow through gaugechart:
//
//	TOML file / JSON request body
//	         ↓
//	    [gauge] Chart.Apply (merge configuration, warn on unknown keys)
//	         ↓
//	    [gauge] Chart.Render (geometry + scene)
//	         ↓
//	    [render/sink] (SVG, JSON, PNG, PDF)
//
// Live gauges keep their chart: a new value runs Chart.Redraw, which only
// retargets the needle and the readout.
//
// # Quick Start
//
// Render a gauge for a value:
//
//	import (
//	    "github.com/matzehuels/gaugechart/pkg/gauge"
//	    "github.com/matzehuels/gaugechart/pkg/render/sink"
//	)
//
//	values := gauge.NewValueGroup(42)
//	c := gauge.New(gauge.WithGroup(values), gauge.WithSize(300, 200))
//	c.SetMax(100)
//	c.SetTicks(gauge.Params{"count": 5, "label": true})
//
//	scene, err := c.Render()
//	svg := sink.RenderSVG(scene)
//
//	// later
//	values.Set(80)
//	scene, err = c.Redraw()
//	svg = sink.RenderSVG(scene, sink.WithAnimation())
//
// # Main Packages
//
// ## Core Domain Logic
//
// [gauge] - The chart: configuration groups with partial-merge setters,
// the derived geometry (radii, angles, scales, gradient, marks), the scene
// produced by a full render and the needle/readout transitions of an update.
//
//   - [gauge/shape]: Path generators (annular arc, radial line, line)
//   - [gauge/scale]: Linear scales
//   - [gauge/palette]: Colour providers (constant, continuous, named schemes)
//   - [gauge/format]: d3-format compatible number formatting
//
// ## Output
//
// [render/sink] - Scene serialization: SVG (optionally animating a running
// needle transition), JSON, and PNG/PDF through [render].
//
// [render] - SVG to PDF/PNG conversion with rsvg-convert.
//
// ## Infrastructure
//
// [pipeline] - Configure → render → export with artifact caching, used by
// the CLI and the HTTP API alike.
//
// [cache] - Cache interface with file, Redis and null implementations.
//
// [feed] - Kafka consumer turning {"gauge", "value"} messages into readings.
//
// [observability] - Hooks for renders, updates, cache, HTTP and the feed,
// with a Prometheus implementation.
//
// [errors] - Coded errors shared by every package.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/gauge/...        # Specific package
//	go test -run Example ./pkg/... # Examples only
//
// [gauge]: https://pkg.go.dev/github.com/matzehuels/gaugechart/pkg/gauge
// [gauge/shape]: https://pkg.go.dev/github.com/matzehuels/gaugechart/pkg/gauge/shape
// [gauge/scale]: https://pkg.go.dev/github.com/matzehuels/gaugechart/pkg/gauge/scale
// [gauge/palette]: https://pkg.go.dev/github.com/matzehuels/gaugechart/pkg/gauge/palette
// [gauge/format]: https://pkg.go.dev/github.com/matzehuels/gaugechart/pkg/gauge/format
// [render]: https://pkg.go.dev/github.com/matzehuels/gaugechart/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/gaugechart/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/gaugechart/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/gaugechart/pkg/cache
// [feed]: https://pkg.go.dev/github.com/matzehuels/gaugechart/pkg/feed
// [observability]: https://pkg.go.dev/github.com/matzehuels/gaugechart/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/gaugechart/pkg/errors
package pkg

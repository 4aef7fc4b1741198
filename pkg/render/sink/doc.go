// Package sink provides output format renderers for gauge scenes.
//
// # Overview
//
// A "sink" transforms a [gauge.Scene] into a final output format.
// This package provides renderers for:
//
//   - SVG: the gauge as a standalone SVG document
//   - JSON: the scene graph and sampled transition state
//   - PDF: Print-ready output (requires rsvg-convert)
//   - PNG: Raster image output (requires rsvg-convert)
//
// # SVG Output
//
// [RenderSVG] mirrors the element tree of the scene: a gauge-container group
// holding the arc segments, ticks and limit markers, then the indicator text
// and the pointer group. By default the needle is drawn at the angle it is
// heading for and the indicator shows its final text.
//
//	svg := sink.RenderSVG(scene,
//	    sink.WithAnimation(),
//	    sink.WithTitle("CPU load"),
//	)
//
// [WithAnimation] instead starts the needle where the scene sampled it and
// appends an animateTransform that completes the running transition with the
// same quadratic ease.
//
// # PDF and PNG Output
//
// [RenderPDF] and [RenderPNG] render the scene as PDF/PNG by first generating
// SVG, then converting via [render.ToPDF] and [render.ToPNG]:
//
//	pdf, err := sink.RenderPDF(ctx, scene)
//	png, err := sink.RenderPNG(ctx, scene, sink.WithScale(2))
//
// These require librsvg to be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [gauge.Scene]: github.com/matzehuels/gaugechart/pkg/gauge.Scene
// [render.ToPDF]: github.com/matzehuels/gaugechart/pkg/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/gaugechart/pkg/render.ToPNG
package sink

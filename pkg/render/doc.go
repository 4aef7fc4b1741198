// Package render provides format conversion for rendered gauges.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). The gauge sinks in the
// [sink] subpackage build on them:
//
//	svg := sink.RenderSVG(scene)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// When rsvg-convert is missing both return an UNSUPPORTED error; a cancelled
// context kills the child process and yields a TIMEOUT error.
//
// [sink]: github.com/matzehuels/gaugechart/pkg/render/sink
package render

package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/gaugechart/pkg/gauge"
	"github.com/matzehuels/gaugechart/pkg/render/sink"
)

// BuildChart creates a chart from opts: the configuration document is
// applied first, then the size override and the value. The returned
// rejections are the configuration keys that were ignored.
func BuildChart(opts Options) (*gauge.Chart, []gauge.Rejection) {
	chartOpts := []gauge.Option{gauge.WithLogger(opts.Logger)}
	if opts.Clock != nil {
		chartOpts = append(chartOpts, gauge.WithClock(opts.Clock))
	}
	if opts.Value != nil {
		chartOpts = append(chartOpts, gauge.WithGroup(gauge.NewValueGroup(*opts.Value)))
	}

	c := gauge.New(chartOpts...)
	rejected := c.Apply(opts.Config)

	w, h := c.Width(), c.Height()
	if opts.Width > 0 {
		w = opts.Width
	}
	if opts.Height > 0 {
		h = opts.Height
	}
	c.SetSize(w, h)
	return c, rejected
}

// Export serializes a scene in every requested format.
func Export(ctx context.Context, s *gauge.Scene, cfg gauge.Config, opts Options) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(s, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(ctx, s, sink.WithScale(DefaultPNGScale), sink.WithPNGSVGOptions(svgOpts...))
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, s, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(s, sink.WithJSONConfig(cfg), sink.WithJSONName(opts.Name))
		default:
			return nil, ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.Animate {
		svgOpts = append(svgOpts, sink.WithAnimation())
	}
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}
	if opts.Background != "" {
		svgOpts = append(svgOpts, sink.WithBackground(opts.Background))
	}
	return svgOpts
}

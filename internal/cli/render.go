package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gaugechart/pkg/pipeline"
)

// defaultBase is the output base name when rendering without a config file.
const defaultBase = "gauge"

// renderCommand creates the render command for one-shot gauge rendering.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		value      float64
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [config.toml]",
		Short: "Render a gauge to SVG, PNG, PDF or JSON",
		Long: `Render a gauge to SVG, PNG, PDF or JSON.

The gauge is configured from a TOML file with the same keys as the HTTP API
(width, height, max, colors, [ticks], [limit], [indicator], ...). Without a
file the default gauge is drawn. Configuration keys that are not accepted are
reported and ignored.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = pipeline.ParseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if cmd.Flags().Changed("value") {
				opts.Value = &value
			}
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return c.runRender(cmd.Context(), input, opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, pdf, png (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().Float64Var(&value, "value", 0, "value to draw")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "canvas width (overrides the config)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "canvas height (overrides the config)")
	cmd.Flags().BoolVar(&opts.Animate, "animate", false, "animate the needle from the dial start (svg)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "document title (svg)")
	cmd.Flags().StringVar(&opts.Background, "background", "", "background colour (svg, png, pdf)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached artifacts")

	return cmd
}

// runRender loads the configuration, runs the pipeline and writes one file
// per format.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	logger := loggerFromContext(ctx)

	if input != "" {
		doc, err := pipeline.LoadConfig(input)
		if err != nil {
			return err
		}
		opts.Config = doc
		if opts.Name == "" {
			opts.Name = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		}
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = logger
	prog := newProgress(logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	prog.done("Rendered gauge")

	for _, rj := range pipeline.Rejections(result.Rejected) {
		printWarning("%s", rj)
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		cacheHit:  result.CacheInfo.RenderHit,
		stats:     result.Stats,
	})
}

// artifactWriteParams describes one batch of rendered artifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	cacheHit  bool
	stats     pipeline.Stats
}

// writeArtifacts writes each artifact to disk and prints the resulting paths.
func writeArtifacts(p artifactWriteParams) error {
	base := basePath(p.output, p.input)
	printSuccess("Gauge rendered")
	for _, format := range p.formats {
		path := base + "." + format
		if len(p.formats) == 1 && p.output != "" {
			path = p.output
		}
		if err := os.WriteFile(path, p.artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(p.stats, p.cacheHit)
	return nil
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input, or falls back to
// "gauge" when there is no input. A known format extension on output is
// stripped.
func basePath(output, input string) string {
	if output == "" {
		if input == "" {
			return defaultBase
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

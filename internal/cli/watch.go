package cli

import (
	"context"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gaugechart/pkg/gauge"
	"github.com/matzehuels/gaugechart/pkg/pipeline"
)

const (
	// frameInterval is how often the preview samples the chart.
	frameInterval = 33 * time.Millisecond

	// dialWidth is the number of terminal cells the dial is drawn across.
	dialWidth = 48
)

// Dial styles
var (
	dialMarkerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	dialFrameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
	readoutStyle    = lipgloss.NewStyle().Bold(true)
)

// watchCommand creates the watch command, an interactive gauge preview.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		output string
		value  float64
		step   float64
	)

	cmd := &cobra.Command{
		Use:   "watch [config.toml]",
		Short: "Preview a gauge in the terminal",
		Long: `Preview a gauge in the terminal.

Use ↑/↓ to change the value: the needle moves with the configured transition,
exactly as a value update moves it in the SVG. Press w to write the current
state to an SVG file and q to quit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			if output == "" {
				output = basePath("", input) + "." + pipeline.FormatSVG
			}
			return c.runWatch(cmd.Context(), input, value, step, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file written with w (default: <config>.svg)")
	cmd.Flags().Float64Var(&value, "value", 0, "initial value")
	cmd.Flags().Float64Var(&step, "step", 0, "value change per key press (default: max/20)")

	return cmd
}

// runWatch builds the chart and runs the preview until the user quits.
func (c *CLI) runWatch(ctx context.Context, input string, value, step float64, output string) error {
	logger := loggerFromContext(ctx)

	opts := pipeline.Options{Logger: logger}
	if input != "" {
		doc, err := pipeline.LoadConfig(input)
		if err != nil {
			return err
		}
		opts.Config = doc
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	values := gauge.NewValueGroup(value)
	chart, rejected := pipeline.BuildChart(opts)
	chart.SetGroup(values)
	for _, rj := range pipeline.Rejections(rejected) {
		printWarning("%s", rj)
	}
	if _, err := chart.Render(); err != nil {
		return err
	}

	m := newWatchModel(ctx, chart, values, step, output)
	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	if wm, ok := final.(watchModel); ok && wm.err != nil {
		return wm.err
	}
	return nil
}

// frameMsg triggers a new sample of the chart.
type frameMsg time.Time

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// watchModel is the bubbletea model of the preview. The chart is only
// touched from Update and View, which bubbletea runs on one goroutine.
type watchModel struct {
	ctx    context.Context
	chart  *gauge.Chart
	values *gauge.ValueGroup
	step   float64
	output string

	scene  *gauge.Scene
	status string
	err    error
}

func newWatchModel(ctx context.Context, chart *gauge.Chart, values *gauge.ValueGroup, step float64, output string) watchModel {
	return watchModel{
		ctx:    ctx,
		chart:  chart,
		values: values,
		step:   step,
		output: output,
		scene:  chart.Scene(),
	}
}

func (m watchModel) Init() tea.Cmd {
	return nextFrame()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			return m.setValue(m.values.Value() + m.stepSize())
		case "down", "j":
			return m.setValue(m.values.Value() - m.stepSize())
		case "w":
			m.status = m.write()
		}
	case frameMsg:
		m.scene = m.chart.Scene()
		return m, nextFrame()
	}
	return m, nil
}

// setValue runs the update pipeline for v.
func (m watchModel) setValue(v float64) (tea.Model, tea.Cmd) {
	m.values.Set(v)
	scene, err := m.chart.Redraw()
	if err != nil {
		m.err = err
		return m, tea.Quit
	}
	m.scene = scene
	m.status = ""
	return m, nil
}

// stepSize is the configured step, or a twentieth of max once it is known.
func (m watchModel) stepSize() float64 {
	if m.step > 0 {
		return m.step
	}
	if m.chart.HasMax() {
		return math.Abs(m.chart.Max()) / 20
	}
	return 1
}

// write exports the current scene as SVG and returns the status line.
func (m watchModel) write() string {
	scene := m.chart.Scene()
	artifacts, err := pipeline.Export(m.ctx, scene, m.chart.Config(), pipeline.Options{
		Formats: []string{pipeline.FormatSVG},
		Animate: true,
	})
	if err != nil {
		return styleIconError.Render(iconError) + " " + err.Error()
	}
	if err := os.WriteFile(m.output, artifacts[pipeline.FormatSVG], 0o644); err != nil {
		return styleIconError.Render(iconError) + " " + err.Error()
	}
	return styleIconSuccess.Render(iconSuccess) + " wrote " + m.output
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Gauge Preview"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ change value  w write svg  q quit"))
	b.WriteString("\n\n")

	if m.scene == nil {
		return b.String()
	}
	b.WriteString(dialFrameStyle.Render(renderDial(m.scene, dialWidth)))
	b.WriteString("\n")
	b.WriteString(m.readout())
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	return b.String()
}

// readout is the line below the dial: the indicator text, max and whether
// the needle is still moving.
func (m watchModel) readout() string {
	s := m.scene
	text := m.chart.Formatter()(s.Value)
	style := readoutStyle
	if s.Indicator != nil {
		text = s.Indicator.Text
		style = style.Foreground(termColor(s.Indicator.Fill))
	}

	state := StyleDim.Render("settled")
	if !s.Settled() {
		state = StyleHighlight.Render("moving")
	}
	parts := []string{
		style.Render(text),
		StyleDim.Render("max " + m.chart.Formatter()(s.Max)),
		state,
	}
	return "  " + strings.Join(parts, StyleDim.Render(" · "))
}

// renderDial draws the gradient arc unrolled across width cells, with a
// marker under the cell the needle currently points at.
func renderDial(s *gauge.Scene, width int) string {
	var bar strings.Builder
	for i := 0; i < width; i++ {
		fill := ""
		if n := len(s.Arc); n > 0 {
			fill = s.Arc[min(n-1, i*n/width)].Fill
		}
		bar.WriteString(lipgloss.NewStyle().Foreground(termColor(fill)).Render("█"))
	}
	marker := strings.Repeat(" ", needleColumn(s, width)) + dialMarkerStyle.Render("▲")
	return bar.String() + "\n" + marker
}

// needleColumn maps the needle's current angle to a cell in [0, width).
func needleColumn(s *gauge.Scene, width int) int {
	span := s.Angles.Span()
	if span == 0 || width <= 0 {
		return 0
	}
	f := (s.Needle.Angle/gauge.Deg - s.Angles.Start) / span
	return max(0, min(width-1, int(math.Round(f*float64(width-1)))))
}

// termColor converts a scene colour to a terminal colour. Colours that are
// not hex (named CSS colours) fall back to gray.
func termColor(c string) lipgloss.TerminalColor {
	if col, err := colorful.Hex(c); err == nil {
		return lipgloss.Color(col.Hex())
	}
	switch c {
	case gauge.IndicatorOutOfRange:
		return colorRed
	default:
		return colorGray
	}
}

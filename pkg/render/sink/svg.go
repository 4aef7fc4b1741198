package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"time"

	"github.com/matzehuels/gaugechart/pkg/gauge"
	"github.com/matzehuels/gaugechart/pkg/gauge/shape"
)

// quadInOutSpline approximates gauge.EaseQuadInOut as a cubic Bézier.
const quadInOutSpline = "0.455 0.03 0.515 0.955"

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	animate    bool
	title      string
	background string
}

// WithAnimation completes the scene's running needle transition in the SVG.
func WithAnimation() SVGOption { return func(r *svgRenderer) { r.animate = true } }

// WithTitle adds an accessible <title>.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// WithBackground fills the canvas before drawing.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// RenderSVG serialises a scene as a standalone SVG document.
func RenderSVG(s *gauge.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		num(s.Width), num(s.Height), num(s.Width), num(s.Height))
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(r.title))
	}
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escapeXML(r.background))
	}

	fmt.Fprintf(&buf, `  <g class="gauge-container" transform="translate(%s, %s)">`+"\n", num(s.Center.X), num(s.Center.Y))
	renderArc(&buf, s.Arc)
	if s.Ticks != nil {
		renderMarks(&buf, s.Ticks)
	}
	if s.Limits != nil {
		renderMarks(&buf, s.Limits)
	}
	buf.WriteString("  </g>\n")

	if s.Indicator != nil {
		renderIndicator(&buf, s.Indicator)
	}
	renderNeedle(&buf, s, r.animate)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderArc(buf *bytes.Buffer, arc []gauge.ArcPath) {
	buf.WriteString(`    <g class="gauge-arc">` + "\n")
	for _, p := range arc {
		fill := escapeXML(p.Fill)
		fmt.Fprintf(buf, `      <path d="%s" stroke-width="%s" fill="%s" stroke="%s"/>`+"\n",
			p.D, num(gauge.ArcStrokeWidth), fill, fill)
	}
	buf.WriteString("    </g>\n")
}

func renderMarks(buf *bytes.Buffer, l *gauge.MarkLayer) {
	color := escapeXML(l.Color)
	fmt.Fprintf(buf, `    <g class="%s">`+"\n", l.Class)
	for _, d := range l.Paths {
		fmt.Fprintf(buf, `      <g class="tick"><path d="%s" stroke="%s" stroke-width="%s" stroke-linecap="round" fill="none"/></g>`+"\n",
			d, color, num(l.StrokeWidth))
	}
	for _, lb := range l.Labels {
		fmt.Fprintf(buf, `      <g class="%s"><text transform="translate(%s, %s) rotate(%s)" dy="1em" text-anchor="middle" font-size="%s">%s</text></g>`+"\n",
			l.LabelClass, num(lb.X), num(lb.Y), num(lb.Rotate), escapeXML(l.FontSize), escapeXML(lb.Text))
	}
	buf.WriteString("    </g>\n")
}

func renderIndicator(buf *bytes.Buffer, ind *gauge.Indicator) {
	fmt.Fprintf(buf, `  <text class="indicator" text-anchor="middle" font-size="%s" font-weight="bold" transform="translate(%s, %s)" style="fill: %s">%s</text>`+"\n",
		escapeXML(ind.FontSize), num(ind.X), num(ind.Y), escapeXML(ind.Fill), escapeXML(ind.Swap.Next))
}

func renderNeedle(buf *bytes.Buffer, s *gauge.Scene, animate bool) {
	n := s.Needle
	color := escapeXML(n.Color)
	fmt.Fprintf(buf, `  <g class="pointer" transform="translate(%s, %s)" stroke="%s" fill="%s">`+"\n",
		num(s.Center.X), num(s.Center.Y), color, color)

	target := n.Tween.To
	remaining := n.Tween.End().Sub(s.At)
	if !animate || remaining <= 0 || n.Angle == target {
		fmt.Fprintf(buf, `    <path d="%s" transform="rotate(%s)"/>`+"\n", n.D, num(target))
		buf.WriteString("  </g>\n")
		return
	}

	begin := max(0, n.Tween.Start.Add(n.Tween.Delay).Sub(s.At))
	fmt.Fprintf(buf, `    <path d="%s" transform="rotate(%s)">`+"\n", n.D, num(target))
	fmt.Fprintf(buf, `      <animateTransform attributeName="transform" type="rotate" from="%s" to="%s" begin="%s" dur="%s" calcMode="spline" keyTimes="0;1" keySplines="%s" fill="freeze"/>`+"\n",
		num(n.Angle), num(target), seconds(begin), seconds(remaining-begin), quadInOutSpline)
	buf.WriteString("    </path>\n")
	buf.WriteString("  </g>\n")
}

func num(v float64) string { return shape.Num(v) }

func seconds(d time.Duration) string {
	return fmt.Sprintf("%.3fs", d.Seconds())
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

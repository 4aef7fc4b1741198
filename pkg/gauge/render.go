package gauge

import (
	"math"

	"github.com/matzehuels/gaugechart/pkg/gauge/shape"
)

// Render performs a full draw: it recomputes the geometry, replaces the
// scene and positions the needle and indicator for the current value.
//
// Render fails with an INVALID_SIZE error when the margins leave no room for
// the dial; the chart is then left unrendered.
func (c *Chart) Render() (*Scene, error) {
	geom, err := ComputeGeometry(&c.Base, c.cfg, c.colors)
	if err != nil {
		c.state = Unrendered
		c.scene = nil
		return nil, err
	}

	c.geom = geom
	c.scene = c.draw(geom)
	c.needle = Hold(geom.Angles.Start * Deg)
	c.text = TextSwap{}
	c.state = Rendered

	c.update(c.Value())

	c.logger.Debug("gauge rendered",
		"base", geom.Radii.Base,
		"segments", len(geom.Gradient),
		"ticks", len(geom.Ticks),
		"limits", len(geom.Limits))
	return c.Scene(), nil
}

// Geometry returns the geometry of the last render. The boolean is false
// while the chart is unrendered.
func (c *Chart) Geometry() (Geometry, bool) {
	if c.state != Rendered {
		return Geometry{}, false
	}
	return c.geom, true
}

// draw builds the element tree for geom. The needle starts at the dial start.
func (c *Chart) draw(geom Geometry) *Scene {
	cfg := c.cfg
	s := &Scene{
		Width:  c.width,
		Height: c.height,
		Center: geom.Center,
		Radii:  geom.Radii,
		Angles: geom.Angles,
	}

	s.Arc = make([]ArcPath, len(geom.Gradient))
	for i, seg := range geom.Gradient {
		s.Arc[i] = ArcPath{D: geom.Scales.Arc.Path(seg.Start, seg.End), Fill: seg.Fill}
	}

	if len(geom.Ticks) > 0 {
		s.Ticks = markLayer(geom.Ticks, geom.Radii, cfg.Ticks.Label, func(a float64) float64 {
			return a*Deg - math.Pi
		})
		s.Ticks.Class, s.Ticks.LabelClass = "gauge-ticks", "tick-label"
		s.Ticks.Color, s.Ticks.FontSize = cfg.Ticks.Color, cfg.Ticks.FontSize
		s.Ticks.StrokeWidth = TickStrokeWidth
	}

	if len(geom.Limits) > 0 {
		s.Limits = markLayer(geom.Limits, geom.Radii, cfg.Limit.Label, func(a float64) float64 {
			return a * Deg
		})
		s.Limits.Class, s.Limits.LabelClass = "gauge-limit", "limit-label"
		s.Limits.Color, s.Limits.FontSize = cfg.Limit.Color, cfg.Limit.FontSize
		s.Limits.StrokeWidth = LimitStrokeWidth
	}

	if cfg.Indicator.Show {
		fontSize := cfg.Indicator.FontSize
		if fontSize == "" {
			fontSize = shape.Num(geom.Radii.Base/4) + "px"
		}
		s.Indicator = &Indicator{
			X:        geom.Center.X,
			Y:        geom.Center.Y * 0.8,
			FontSize: fontSize,
			Fill:     IndicatorInRange,
		}
	}

	s.Needle = Needle{
		D:     shape.Line(NeedlePoints(cfg.Needle.Width, geom.Radii)),
		Color: cfg.Needle.Color,
		Angle: geom.Angles.Start * Deg,
	}
	return s
}

func markLayer(marks []Mark, r Radii, labels bool, rotate func(float64) float64) *MarkLayer {
	l := &MarkLayer{Paths: make([]string, len(marks))}
	for i, m := range marks {
		l.Paths[i] = shape.LineRadial(m.Line[:])
	}
	if !labels {
		return l
	}
	l.Labels = make([]Label, len(marks))
	for i, m := range marks {
		l.Labels[i] = Label{
			Text:   m.Label,
			X:      r.TickLabel * math.Sin(m.Angle),
			Y:      -r.TickLabel * math.Cos(m.Angle),
			Rotate: rotate(m.Angle),
		}
	}
	return l
}

// Scene samples the rendered gauge at the chart clock's current time. It
// returns nil while the chart is unrendered.
func (c *Chart) Scene() *Scene {
	if c.scene == nil {
		return nil
	}
	now := c.clock.Now()
	s := c.scene.clone()
	s.At = now
	s.Value = c.value
	s.Max = c.cfg.Max
	s.Needle.Tween = c.needle
	s.Needle.Angle = c.needle.At(now)
	if s.Indicator != nil {
		s.Indicator.Swap = c.text
		s.Indicator.Text = c.text.Text(now)
	}
	return s
}

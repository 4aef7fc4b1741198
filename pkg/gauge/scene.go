package gauge

import (
	"slices"
	"time"

	"github.com/matzehuels/gaugechart/pkg/gauge/shape"
)

// Stroke widths and colours fixed by the gauge layout.
const (
	ArcStrokeWidth   = 0.7
	TickStrokeWidth  = 2.0
	LimitStrokeWidth = 3.0

	IndicatorInRange    = "gray"
	IndicatorOutOfRange = "red"
)

// Scene is a drawn gauge: the element tree a sink serialises. It mirrors
// the SVG structure
//
//	svg
//	├── g.gauge-container  (translated to Center)
//	│   ├── g.gauge-arc     one path per gradient segment
//	│   ├── g.gauge-ticks   g.tick paths, g.tick-label texts
//	│   └── g.gauge-limit   g.tick paths, g.limit-label texts
//	├── text.indicator
//	└── g.pointer          (translated to Center) with the rotated needle path
type Scene struct {
	Width  float64     `json:"width"`
	Height float64     `json:"height"`
	Center shape.Point `json:"center"`
	Radii  Radii       `json:"radii"`
	Angles Angles      `json:"angles"`

	Arc       []ArcPath  `json:"arc"`
	Ticks     *MarkLayer `json:"ticks,omitempty"`
	Limits    *MarkLayer `json:"limits,omitempty"`
	Indicator *Indicator `json:"indicator,omitempty"`
	Needle    Needle     `json:"needle"`

	// Value is the value the needle is moving towards and Max the max it
	// was scaled against.
	Value float64 `json:"value"`
	Max   float64 `json:"max"`

	// At is the instant the scene was sampled.
	At time.Time `json:"at"`
}

// ArcPath is one filled gradient segment. Stroke matches fill.
type ArcPath struct {
	D    string `json:"d"`
	Fill string `json:"fill"`
}

// MarkLayer is the group of tick or limit lines and their labels.
type MarkLayer struct {
	Class       string   `json:"class"`
	LabelClass  string   `json:"labelClass"`
	Color       string   `json:"color"`
	StrokeWidth float64  `json:"strokeWidth"`
	FontSize    string   `json:"fontSize"`
	Paths       []string `json:"paths"`
	// Labels is empty when labels are disabled.
	Labels []Label `json:"labels,omitempty"`
}

// Label is a text positioned at (X, Y) relative to the centre and rotated
// by Rotate degrees about that point.
type Label struct {
	Text   string  `json:"text"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Rotate float64 `json:"rotate"`
}

// Indicator is the numeric readout, positioned in absolute coordinates.
type Indicator struct {
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	FontSize string   `json:"fontSize"`
	Fill     string   `json:"fill"`
	Text     string   `json:"text"`
	Swap     TextSwap `json:"swap"`
}

// Needle is the pointer polygon and its rotation, in degrees.
type Needle struct {
	D     string  `json:"d"`
	Color string  `json:"color"`
	Angle float64 `json:"angle"`
	Tween Tween   `json:"tween"`
}

// Settled reports whether every transition has finished at s.At.
func (s *Scene) Settled() bool {
	if !s.Needle.Tween.Done(s.At) {
		return false
	}
	return s.Indicator == nil || !s.At.Before(s.Indicator.Swap.At)
}

// clone copies s so callers never share slices with the chart.
func (s *Scene) clone() *Scene {
	c := *s
	c.Arc = slices.Clone(s.Arc)
	if s.Ticks != nil {
		c.Ticks = s.Ticks.clone()
	}
	if s.Limits != nil {
		c.Limits = s.Limits.clone()
	}
	if s.Indicator != nil {
		ind := *s.Indicator
		c.Indicator = &ind
	}
	return &c
}

func (l *MarkLayer) clone() *MarkLayer {
	c := *l
	c.Paths = slices.Clone(l.Paths)
	c.Labels = slices.Clone(l.Labels)
	return &c
}

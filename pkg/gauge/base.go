package gauge

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
)

// Default base chart settings.
const (
	DefaultWidth              = 200.0
	DefaultHeight             = 200.0
	DefaultTransitionDuration = 350 * time.Millisecond
	DefaultTransitionDelay    = 10 * time.Millisecond
)

// Margins is the space reserved around the drawing area, in pixels.
type Margins struct {
	Top    float64 `json:"top" toml:"top"`
	Right  float64 `json:"right" toml:"right"`
	Bottom float64 `json:"bottom" toml:"bottom"`
	Left   float64 `json:"left" toml:"left"`
}

// DefaultMargins returns the margins a new chart starts with.
func DefaultMargins() Margins {
	return Margins{Top: 10, Right: 50, Bottom: 30, Left: 30}
}

// UniformMargins applies v to all four sides.
func UniformMargins(v float64) Margins {
	return Margins{Top: v, Right: v, Bottom: v, Left: v}
}

func (m Margins) merge(p Params, report reportFunc) Margins {
	mg := merger{report}
	for _, k := range sortedKeys(p) {
		v := p[k]
		switch k {
		case "top":
			mg.float(k, v, &m.Top)
		case "right":
			mg.float(k, v, &m.Right)
		case "bottom":
			mg.float(k, v, &m.Bottom)
		case "left":
			mg.float(k, v, &m.Left)
		default:
			mg.unknown(k)
		}
	}
	return m
}

// Base is the generic chart behaviour a gauge is composed with: drawing
// surface dimensions, margins, transition timing, a clock and a logger.
type Base struct {
	width    float64
	height   float64
	margins  Margins
	duration time.Duration
	delay    time.Duration
	clock    clockwork.Clock
	logger   *log.Logger
}

func newBase() Base {
	return Base{
		width:    DefaultWidth,
		height:   DefaultHeight,
		margins:  DefaultMargins(),
		duration: DefaultTransitionDuration,
		delay:    DefaultTransitionDelay,
		clock:    clockwork.NewRealClock(),
		logger:   log.Default(),
	}
}

// Width returns the drawing surface width.
func (b *Base) Width() float64 { return b.width }

// Height returns the drawing surface height.
func (b *Base) Height() float64 { return b.height }

// Margins returns the current margins.
func (b *Base) Margins() Margins { return b.margins }

// EffectiveHeight is the height left after the top and bottom margins.
func (b *Base) EffectiveHeight() float64 {
	return b.height - b.margins.Top - b.margins.Bottom
}

// EffectiveWidth is the width left after the left and right margins.
func (b *Base) EffectiveWidth() float64 {
	return b.width - b.margins.Left - b.margins.Right
}

// TransitionDuration is how long needle transitions run.
func (b *Base) TransitionDuration() time.Duration { return b.duration }

// TransitionDelay is how long after an update the indicator text changes.
// The needle transition starts immediately and runs for TransitionDuration.
func (b *Base) TransitionDelay() time.Duration { return b.delay }

// Clock returns the clock transitions are timed against.
func (b *Base) Clock() clockwork.Clock { return b.clock }

// Logger returns the chart's logger.
func (b *Base) Logger() *log.Logger { return b.logger }

package gauge

import (
	"math"
	"strconv"

	"github.com/matzehuels/gaugechart/pkg/errors"
	"github.com/matzehuels/gaugechart/pkg/gauge/format"
	"github.com/matzehuels/gaugechart/pkg/gauge/palette"
	"github.com/matzehuels/gaugechart/pkg/gauge/scale"
	"github.com/matzehuels/gaugechart/pkg/gauge/shape"
)

// Deg converts radians to degrees.
const Deg = 180 / math.Pi

// Rad converts degrees to radians.
const Rad = math.Pi / 180

// needleTail is how far the needle extends behind the pivot.
const needleTail = 5

// Radii are the concentric radii every element is laid out on.
type Radii struct {
	Base         float64 `json:"base"`
	Cap          float64 `json:"cap"`
	Inner        float64 `json:"inner"`
	OuterTick    float64 `json:"outerTick"`
	TickLabel    float64 `json:"tickLabel"`
	NeedleLength float64 `json:"needleLength"`
}

// Angles is the dial extent in radians, measured clockwise from 12 o'clock.
type Angles struct {
	ArcComplement float64 `json:"arcComplement"`
	Start         float64 `json:"start"`
	End           float64 `json:"end"`
}

// Span is the angular width of the dial.
func (a Angles) Span() float64 { return a.End - a.Start }

// Segment is one slice of the gradient arc.
type Segment struct {
	Fill  string  `json:"fill"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Mark is a tick or limit: a radial line with a label.
type Mark struct {
	Label string         `json:"label"`
	Angle float64        `json:"angle"`
	Line  [2]shape.Polar `json:"line"`
}

// Scales are the generators derived from radii and angles.
type Scales struct {
	// Arc draws gradient segments between Inner+1 and Base.
	Arc shape.ArcGenerator
	// Needle maps a fraction in [0, 1] onto [Start, End].
	Needle scale.Linear
}

// Geometry is everything the render pipeline derives from configuration.
type Geometry struct {
	Radii    Radii
	Angles   Angles
	Center   shape.Point
	Gradient []Segment
	Scales   Scales
	Ticks    []Mark
	Limits   []Mark
}

// ComputeRadii lays out the radii for the available drawing height.
func ComputeRadii(available float64, dial DialConfig) Radii {
	base := available
	if dial.Size > 1 {
		base /= 1 + math.Sin(math.Pi*(dial.Size-1)/2)
	}
	inner := base * (1 - dial.Thickness)
	return Radii{
		Base:         base,
		Cap:          base / 15,
		Inner:        inner,
		OuterTick:    base + 5,
		TickLabel:    base + 15,
		NeedleLength: inner * (1 + dial.Thickness),
	}
}

// ComputeCenter places the dial centre horizontally centred, one base radius
// above the bottom margin line.
func ComputeCenter(width float64, r Radii, m Margins) shape.Point {
	return shape.Point{X: width / 2, Y: r.Base + m.Bottom}
}

// ComputeAngles returns the dial extent. A size of 1 is symmetric about 12
// o'clock and rotation turns the whole extent clockwise.
func ComputeAngles(dial DialConfig) Angles {
	ac := 1 - dial.Size
	rot := dial.Rotation * Rad
	return Angles{
		ArcComplement: ac,
		Start:         -math.Pi/2 + math.Pi*ac/2 + rot,
		End:           math.Pi/2 - math.Pi*ac/2 + rot,
	}
}

// ComputeTicks spaces count ticks evenly over the dial. Labels are the
// formatted share of max, or a whole percentage when max is unset.
// Fewer than three ticks yield none.
func ComputeTicks(a Angles, r Radii, count int, maxValue float64, f format.Func) []Mark {
	if count <= 2 {
		return nil
	}
	subArc := a.Span() / float64(count-1)
	tickPct := 100 / float64(count-1)

	ticks := make([]Mark, count)
	for i := range ticks {
		angle := a.Start + subArc*float64(i)
		pct := tickPct * float64(i)
		var label string
		if maxValue != 0 {
			label = f(math.Round(pct * maxValue / 100))
		} else {
			label = strconv.FormatFloat(math.Round(pct), 'f', 0, 64) + "%"
		}
		ticks[i] = Mark{
			Label: label,
			Angle: angle,
			Line:  [2]shape.Polar{{Angle: angle, Radius: r.Inner}, {Angle: angle, Radius: r.OuterTick}},
		}
	}
	return ticks
}

// ComputeLimits places one mark per limit value. Limits need a max to be
// positioned, so none are returned while max is unset.
func ComputeLimits(a Angles, r Radii, values []float64, maxValue float64, f format.Func) []Mark {
	if len(values) == 0 || maxValue == 0 {
		return nil
	}
	limits := make([]Mark, len(values))
	for i, v := range values {
		angle := a.Start + v/maxValue*a.Span()
		limits[i] = Mark{
			Label: f(v),
			Angle: angle,
			Line:  [2]shape.Polar{{Angle: angle, Radius: r.Inner}, {Angle: angle, Radius: r.Base}},
		}
	}
	return limits
}

// ComputeGradient slices the dial into coloured segments. A constant colour
// is one segment; a continuous provider is sampled steps times.
func ComputeGradient(p palette.Provider, steps int, a Angles) []Segment {
	if c, ok := p.(palette.Constant); ok {
		return []Segment{{Fill: string(c), Start: a.Start, End: a.End}}
	}
	steps = max(1, steps)
	subArc := a.Span() / float64(steps)
	segments := make([]Segment, steps)
	for i := range segments {
		t := 0.0
		if steps > 1 {
			t = float64(i) / float64(steps-1)
		}
		segments[i] = Segment{
			Fill:  p.At(t),
			Start: a.Start + subArc*float64(i),
			End:   a.Start + subArc*float64(i+1),
		}
	}
	return segments
}

// ComputeScales builds the arc generator and needle scale.
func ComputeScales(a Angles, r Radii) Scales {
	return Scales{
		Arc:    shape.ArcGenerator{InnerRadius: r.Inner + 1, OuterRadius: r.Base},
		Needle: scale.NewLinear(0, 1, a.Start, a.End),
	}
}

// NeedlePoints is the needle polygon before rotation, pointing at 12 o'clock.
func NeedlePoints(width float64, r Radii) []shape.Point {
	return []shape.Point{
		{X: width, Y: 0},
		{X: 0, Y: -r.NeedleLength},
		{X: -width, Y: 0},
		{X: 0, Y: needleTail},
		{X: width, Y: 0},
	}
}

// NeedleFraction is how far along the dial value sits. Values above max pin
// to the end stop; an unset max leaves the needle at the start.
func NeedleFraction(value, maxValue float64) float64 {
	if maxValue == 0 {
		return 0
	}
	if value > maxValue {
		return 1
	}
	return max(0, value/maxValue)
}

// ComputeGeometry runs the layout steps in order: radii, angles, gradient and
// scales, then ticks and limits for the current max.
func ComputeGeometry(b *Base, cfg Config, colors palette.Provider) (Geometry, error) {
	r := ComputeRadii(b.EffectiveHeight(), cfg.Dial)
	if !(r.Base > 0) {
		return Geometry{}, errors.New(errors.ErrCodeInvalidSize,
			"no room for the dial: %gx%g with margins %+v leaves a base radius of %g",
			b.width, b.height, b.margins, r.Base)
	}
	a := ComputeAngles(cfg.Dial)
	f := cfg.formatter()
	return Geometry{
		Radii:    r,
		Angles:   a,
		Center:   ComputeCenter(b.width, r, b.margins),
		Gradient: ComputeGradient(colors, cfg.ColorStep, a),
		Scales:   ComputeScales(a, r),
		Ticks:    ComputeTicks(a, r, cfg.Ticks.Count, cfg.Max, f),
		Limits:   ComputeLimits(a, r, cfg.Limit.Values, cfg.Max, f),
	}, nil
}

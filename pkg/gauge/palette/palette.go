// Package palette provides the colour providers a gauge paints its dial with.
//
// A provider is either a [Constant] colour, which paints the whole arc in one
// segment, or a continuous scale over [0, 1] that the gauge samples into many
// thin segments to draw a gradient. Continuous scales interpolate between
// colour stops in CIE L*a*b* space using go-colorful.
package palette

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/gaugechart/pkg/errors"
)

// Provider returns the colour at position t in [0, 1].
type Provider interface {
	At(t float64) string
}

// Constant is a single colour. Any SVG paint value is accepted verbatim.
type Constant string

// At returns the constant colour regardless of t.
func (c Constant) At(float64) string { return string(c) }

// Func adapts a plain function to a continuous [Provider].
type Func func(t float64) string

// At calls f(t).
func (f Func) At(t float64) string { return f(t) }

// Scale interpolates between evenly spaced colour stops.
type Scale struct {
	stops []colorful.Color
}

// NewScale builds a continuous scale from two or more hex colour stops.
func NewScale(stops ...string) (*Scale, error) {
	if len(stops) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidColor, "a colour scale needs at least two stops, got %d", len(stops))
	}
	s := &Scale{stops: make([]colorful.Color, len(stops))}
	for i, hex := range stops {
		c, err := colorful.Hex(hex)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidColor, err, "colour stop %d (%q)", i, hex)
		}
		s.stops[i] = c
	}
	return s, nil
}

// MustScale is like NewScale but panics on invalid stops.
func MustScale(stops ...string) *Scale {
	s, err := NewScale(stops...)
	if err != nil {
		panic(err)
	}
	return s
}

// At returns the interpolated colour at t, clamped to [0, 1].
func (s *Scale) At(t float64) string {
	t = max(0, min(1, t))
	n := len(s.stops) - 1
	pos := t * float64(n)
	i := int(pos)
	if i >= n {
		return s.stops[n].Hex()
	}
	frac := pos - float64(i)
	if frac == 0 {
		return s.stops[i].Hex()
	}
	return s.stops[i].BlendLab(s.stops[i+1], frac).Clamped().Hex()
}

// Stops returns the scale's stops as hex strings.
func (s *Scale) Stops() []string {
	out := make([]string, len(s.stops))
	for i, c := range s.stops {
		out[i] = c.Hex()
	}
	return out
}

// schemes are ColorBrewer / matplotlib stop lists usable by name.
var schemes = map[string][]string{
	"rdylgn":  {"#a50026", "#d73027", "#f46d43", "#fdae61", "#fee08b", "#ffffbf", "#d9ef8b", "#a6d96a", "#66bd63", "#1a9850", "#006837"},
	"rdylbu":  {"#a50026", "#d73027", "#f46d43", "#fdae61", "#fee090", "#ffffbf", "#e0f3f8", "#abd9e9", "#74add1", "#4575b4", "#313695"},
	"blues":   {"#f7fbff", "#deebf7", "#c6dbef", "#9ecae1", "#6baed6", "#4292c6", "#2171b5", "#08519c", "#08306b"},
	"greys":   {"#ffffff", "#f0f0f0", "#d9d9d9", "#bdbdbd", "#969696", "#737373", "#525252", "#252525", "#000000"},
	"viridis": {"#440154", "#482878", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"},
}

// Scheme returns the named continuous scale (case-insensitive), e.g. "RdYlGn".
func Scheme(name string) (*Scale, bool) {
	stops, ok := schemes[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return MustScale(stops...), true
}

// Parse builds a provider from a configuration value: a scheme name, a
// single colour (constant) or a list of colour stops (continuous).
func Parse(v any) (Provider, error) {
	switch c := v.(type) {
	case string:
		if s, ok := Scheme(c); ok {
			return s, nil
		}
		if strings.TrimSpace(c) == "" {
			return nil, errors.New(errors.ErrCodeInvalidColor, "empty colour")
		}
		return Constant(c), nil
	case []string:
		if len(c) == 1 {
			return Constant(c[0]), nil
		}
		return NewScale(c...)
	case []any:
		stops := make([]string, len(c))
		for i, s := range c {
			str, ok := s.(string)
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidColor, "colour stop %d is %T, want string", i, s)
			}
			stops[i] = str
		}
		return Parse(stops)
	case Provider:
		return c, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidColor, "unsupported colour value %s", describe(v))
	}
}

func describe(v any) string {
	return fmt.Sprintf("%v (%T)", v, v)
}

// Package scale maps continuous domains onto continuous ranges.
package scale

// Linear maps a two-point domain linearly onto a two-point range.
// The zero value maps [0,0] onto [0,0] and is not useful.
type Linear struct {
	domain [2]float64
	rng    [2]float64
	clamp  bool
}

// NewLinear returns a scale mapping [d0, d1] onto [r0, r1].
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{domain: [2]float64{d0, d1}, rng: [2]float64{r0, r1}}
}

// Clamped returns a copy of s that never extrapolates outside its range.
func (s Linear) Clamped() Linear {
	s.clamp = true
	return s
}

// Domain returns the input extent.
func (s Linear) Domain() (float64, float64) { return s.domain[0], s.domain[1] }

// Range returns the output extent.
func (s Linear) Range() (float64, float64) { return s.rng[0], s.rng[1] }

// At maps x from the domain onto the range.
func (s Linear) At(x float64) float64 {
	t := normalize(s.domain[0], s.domain[1], x)
	if s.clamp {
		t = clamp01(t)
	}
	return interpolate(s.rng[0], s.rng[1], t)
}

// Invert maps y from the range back onto the domain.
func (s Linear) Invert(y float64) float64 {
	t := normalize(s.rng[0], s.rng[1], y)
	if s.clamp {
		t = clamp01(t)
	}
	return interpolate(s.domain[0], s.domain[1], t)
}

// normalize returns where x sits in [a, b]; a degenerate extent maps to 0.5.
func normalize(a, b, x float64) float64 {
	if b == a {
		return 0.5
	}
	return (x - a) / (b - a)
}

// interpolate is exact at both ends: t=0 yields a and t=1 yields b.
func interpolate(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

func clamp01(t float64) float64 {
	return max(0, min(1, t))
}

// Package shape generates SVG path data for the primitives a gauge is drawn
// with: annular arc sectors, radial strokes and polylines.
//
// Angles follow the SVG/d3 polar convention used throughout the gauge: zero
// points to twelve o'clock and positive angles turn clockwise. A point at
// (angle a, radius r) maps to (r·sin a, −r·cos a) in SVG user space.
//
// All functions are pure; coordinates are rounded to four decimals so that the
// emitted paths are stable across platforms.
package shape

import (
	"math"
	"strconv"
	"strings"
)

const (
	epsilon    = 1e-6
	tau        = 2 * math.Pi
	tauEpsilon = tau - epsilon
)

// Path accumulates SVG path commands.
type Path struct {
	sb      strings.Builder
	x0, y0  float64 // start of the current subpath
	x1, y1  float64 // current point
	started bool
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	p.x0, p.y0, p.x1, p.y1 = x, y, x, y
	p.started = true
	p.sb.WriteByte('M')
	p.point(x, y)
}

// LineTo draws a straight line to (x, y).
func (p *Path) LineTo(x, y float64) {
	p.x1, p.y1 = x, y
	p.sb.WriteByte('L')
	p.point(x, y)
}

// Close closes the current subpath.
func (p *Path) Close() {
	if p.started {
		p.x1, p.y1 = p.x0, p.y0
		p.sb.WriteByte('Z')
	}
}

// Arc draws a circular arc centred on (cx, cy) with radius r from angle a0 to
// a1 (standard math angles, radians). Counter-clockwise when ccw is set.
// A line is drawn from the current point to the arc start if they differ.
func (p *Path) Arc(cx, cy, r, a0, a1 float64, ccw bool) {
	dx := r * math.Cos(a0)
	dy := r * math.Sin(a0)
	x0 := cx + dx
	y0 := cy + dy
	cw := !ccw

	da := a1 - a0
	if ccw {
		da = a0 - a1
	}

	switch {
	case !p.started:
		p.MoveTo(x0, y0)
	case math.Abs(p.x1-x0) > epsilon || math.Abs(p.y1-y0) > epsilon:
		p.LineTo(x0, y0)
	}

	if r <= 0 {
		return
	}

	if da < 0 {
		da = math.Mod(da, tau) + tau
	}

	switch {
	case da > tauEpsilon:
		// full circle: two half arcs
		p.arcTo(r, true, cw, cx-dx, cy-dy)
		p.arcTo(r, true, cw, x0, y0)
	case da > epsilon:
		p.arcTo(r, da >= math.Pi, cw, cx+r*math.Cos(a1), cy+r*math.Sin(a1))
	}
}

func (p *Path) arcTo(r float64, large, sweep bool, x, y float64) {
	p.x1, p.y1 = x, y
	p.sb.WriteByte('A')
	p.sb.WriteString(Num(r))
	p.sb.WriteByte(',')
	p.sb.WriteString(Num(r))
	p.sb.WriteString(",0,")
	p.sb.WriteString(flag(large))
	p.sb.WriteByte(',')
	p.sb.WriteString(flag(sweep))
	p.sb.WriteByte(',')
	p.point(x, y)
}

func (p *Path) point(x, y float64) {
	p.sb.WriteString(Num(x))
	p.sb.WriteByte(',')
	p.sb.WriteString(Num(y))
}

// String returns the accumulated path data.
func (p *Path) String() string { return p.sb.String() }

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// Num formats a coordinate for SVG output, rounded to four decimals.
func Num(v float64) string {
	r := math.Round(v*1e4) / 1e4
	if r == 0 {
		return "0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

package shape

import "math"

// Polar is a point given as (angle, radius) in gauge angle convention.
type Polar struct {
	Angle  float64
	Radius float64
}

// Point is a cartesian point in SVG user space.
type Point struct {
	X, Y float64
}

// Cartesian converts a polar point to SVG coordinates relative to the origin.
func (p Polar) Cartesian() Point {
	return Point{X: p.Radius * math.Sin(p.Angle), Y: -p.Radius * math.Cos(p.Angle)}
}

// ArcGenerator draws annular sectors between fixed radii.
type ArcGenerator struct {
	InnerRadius float64
	OuterRadius float64
}

// Path returns the closed path of the sector spanning [start, end].
func (g ArcGenerator) Path(start, end float64) string {
	return Arc(g.InnerRadius, g.OuterRadius, start, end)
}

// Arc returns the path of an annular sector centred on the origin. A zero
// inner radius produces a pie slice; a span of a full turn or more produces a
// ring.
func Arc(inner, outer, start, end float64) string {
	r0, r1 := inner, outer
	if r1 < r0 {
		r0, r1 = r1, r0
	}

	a0 := start - math.Pi/2
	a1 := end - math.Pi/2
	da := math.Abs(a1 - a0)
	cw := a1 > a0

	var p Path
	switch {
	case r1 <= epsilon:
		p.MoveTo(0, 0)
	case da > tauEpsilon:
		p.MoveTo(r1*math.Cos(a0), r1*math.Sin(a0))
		p.Arc(0, 0, r1, a0, a1, !cw)
		if r0 > epsilon {
			p.MoveTo(r0*math.Cos(a1), r0*math.Sin(a1))
			p.Arc(0, 0, r0, a1, a0, cw)
		}
	default:
		p.MoveTo(r1*math.Cos(a0), r1*math.Sin(a0))
		p.Arc(0, 0, r1, a0, a1, !cw)
		if r0 > epsilon {
			p.Arc(0, 0, r0, a1, a0, cw)
		} else {
			p.LineTo(0, 0)
		}
	}
	p.Close()
	return p.String()
}

// LineRadial returns an open polyline through polar points.
func LineRadial(points []Polar) string {
	pts := make([]Point, len(points))
	for i, pp := range points {
		pts[i] = pp.Cartesian()
	}
	return Line(pts)
}

// Line returns an open polyline through cartesian points.
func Line(points []Point) string {
	var p Path
	for i, pt := range points {
		if i == 0 {
			p.MoveTo(pt.X, pt.Y)
			continue
		}
		p.LineTo(pt.X, pt.Y)
	}
	return p.String()
}

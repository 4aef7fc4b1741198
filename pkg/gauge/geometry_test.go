package gauge

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/gaugechart/pkg/gauge/format"
	"github.com/matzehuels/gaugechart/pkg/gauge/palette"
)

func TestComputeAnglesSemicircle(t *testing.T) {
	for _, thickness := range []float64{0.05, 0.15, 0.5, 0.9} {
		a := ComputeAngles(DialConfig{Thickness: thickness, Size: 1})
		assert.Equal(t, -math.Pi/2, a.Start)
		assert.Equal(t, math.Pi/2, a.End)
		assert.Equal(t, 0.0, a.ArcComplement)
	}
}

func TestComputeAnglesSizeAndRotation(t *testing.T) {
	a := ComputeAngles(DialConfig{Size: 1.5})
	assert.InDelta(t, -3*math.Pi/4, a.Start, 1e-12)
	assert.InDelta(t, 3*math.Pi/4, a.End, 1e-12)

	a = ComputeAngles(DialConfig{Size: 1, Rotation: 90})
	assert.InDelta(t, 0, a.Start, 1e-12)
	assert.InDelta(t, math.Pi, a.End, 1e-12)
	assert.InDelta(t, math.Pi, a.Span(), 1e-12)
}

func TestComputeRadii(t *testing.T) {
	r := ComputeRadii(160, DialConfig{Thickness: 0.15, Size: 1})
	assert.Equal(t, 160.0, r.Base)
	assert.InDelta(t, 160.0/15, r.Cap, 1e-12)
	assert.InDelta(t, 136, r.Inner, 1e-12)
	assert.Equal(t, 165.0, r.OuterTick)
	assert.Equal(t, 175.0, r.TickLabel)
	assert.InDelta(t, 136*1.15, r.NeedleLength, 1e-9)
}

func TestComputeRadiiShrinkRoundTrip(t *testing.T) {
	const available = 240.0
	for _, size := range []float64{1.01, 1.2, 1.5, 1.75, 2} {
		r := ComputeRadii(available, DialConfig{Thickness: 0.15, Size: size})
		got := r.Base * (1 + math.Sin(math.Pi*(size-1)/2))
		assert.InDelta(t, available, got, 1e-9, "size %v", size)
	}
}

func TestComputeCenter(t *testing.T) {
	r := Radii{Base: 160}
	c := ComputeCenter(300, r, Margins{Top: 10, Bottom: 30})
	assert.Equal(t, 150.0, c.X)
	assert.Equal(t, 190.0, c.Y)
}

func TestComputeTicksWithMax(t *testing.T) {
	a := ComputeAngles(DialConfig{Size: 1})
	r := ComputeRadii(160, DialConfig{Thickness: 0.15, Size: 1})
	ticks := ComputeTicks(a, r, 5, 100, format.MustNew("d"))
	require.Len(t, ticks, 5)

	labels := make([]string, len(ticks))
	for i, tk := range ticks {
		labels[i] = tk.Label
	}
	assert.Equal(t, []string{"0", "25", "50", "75", "100"}, labels)

	step := a.Span() / 4
	for i, tk := range ticks {
		assert.InDelta(t, a.Start+step*float64(i), tk.Angle, 1e-12)
		assert.Equal(t, r.Inner, tk.Line[0].Radius)
		assert.Equal(t, r.OuterTick, tk.Line[1].Radius)
		assert.Equal(t, tk.Angle, tk.Line[0].Angle)
	}
	assert.InDelta(t, a.End, ticks[4].Angle, 1e-12)
}

func TestComputeTicksPercentLabels(t *testing.T) {
	a := ComputeAngles(DialConfig{Size: 1})
	r := ComputeRadii(100, DialConfig{Size: 1})

	ticks := ComputeTicks(a, r, 4, 0, format.MustNew(".2s"))
	require.Len(t, ticks, 4)
	assert.Equal(t, "0%", ticks[0].Label)
	assert.Equal(t, "33%", ticks[1].Label)
	assert.Equal(t, "67%", ticks[2].Label)
	assert.Equal(t, "100%", ticks[3].Label)
}

func TestComputeTicksTooFew(t *testing.T) {
	a := ComputeAngles(DialConfig{Size: 1})
	r := ComputeRadii(100, DialConfig{Size: 1})
	for _, count := range []int{0, 1, 2} {
		assert.Nil(t, ComputeTicks(a, r, count, 100, format.MustNew("d")), "count %d", count)
	}
}

func TestComputeLimits(t *testing.T) {
	a := ComputeAngles(DialConfig{Size: 1})
	r := ComputeRadii(100, DialConfig{Thickness: 0.2, Size: 1})
	f := format.MustNew(".2s")

	limits := ComputeLimits(a, r, []float64{25, 50}, 100, f)
	require.Len(t, limits, 2)
	assert.InDelta(t, -math.Pi/4, limits[0].Angle, 1e-12)
	assert.InDelta(t, 0, limits[1].Angle, 1e-12)
	assert.Equal(t, "25", limits[0].Label)
	assert.Equal(t, r.Inner, limits[0].Line[0].Radius)
	assert.Equal(t, r.Base, limits[0].Line[1].Radius)

	assert.Nil(t, ComputeLimits(a, r, []float64{25}, 0, f), "max unset")
	assert.Nil(t, ComputeLimits(a, r, nil, 100, f), "no values")
}

func TestComputeGradientConstant(t *testing.T) {
	a := ComputeAngles(DialConfig{Size: 1})
	segs := ComputeGradient(palette.Constant("#123456"), 150, a)
	require.Len(t, segs, 1)
	assert.Equal(t, Segment{Fill: "#123456", Start: a.Start, End: a.End}, segs[0])
}

func TestComputeGradientContinuous(t *testing.T) {
	a := ComputeAngles(DialConfig{Size: 1.3, Rotation: 15})
	segs := ComputeGradient(palette.MustScale("#ff0000", "#00ff00"), 150, a)
	require.Len(t, segs, 150)

	sum := 0.0
	for i, s := range segs {
		sum += s.End - s.Start
		if i > 0 {
			assert.Equal(t, segs[i-1].End, s.Start, "segment %d not contiguous", i)
		}
	}
	assert.InDelta(t, a.Span(), sum, 1e-9)
	assert.Equal(t, a.Start, segs[0].Start)
	assert.InDelta(t, a.End, segs[149].End, 1e-12)
	assert.Equal(t, "#ff0000", segs[0].Fill)
	assert.Equal(t, "#00ff00", segs[149].Fill)
}

func TestComputeGradientSingleStep(t *testing.T) {
	a := ComputeAngles(DialConfig{Size: 1})
	segs := ComputeGradient(palette.MustScale("#ff0000", "#00ff00"), 0, a)
	require.Len(t, segs, 1)
	assert.Equal(t, "#ff0000", segs[0].Fill)
	assert.InDelta(t, a.End, segs[0].End, 1e-12)
}

func TestComputeScales(t *testing.T) {
	a := ComputeAngles(DialConfig{Size: 1})
	r := ComputeRadii(100, DialConfig{Thickness: 0.2, Size: 1})
	s := ComputeScales(a, r)
	assert.Equal(t, r.Inner+1, s.Arc.InnerRadius)
	assert.Equal(t, r.Base, s.Arc.OuterRadius)
	assert.Equal(t, a.Start, s.Needle.At(0))
	assert.Equal(t, a.End, s.Needle.At(1))
	assert.InDelta(t, 0, s.Needle.At(0.5), 1e-12)
}

func TestNeedleFraction(t *testing.T) {
	tests := []struct {
		name       string
		value, max float64
		want       float64
	}{
		{"half", 50, 100, 0.5},
		{"at max", 100, 100, 1},
		{"above max", 250, 100, 1},
		{"far above max", 1e12, 100, 1},
		{"negative", -5, 100, 0},
		{"unset max", 42, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NeedleFraction(tt.value, tt.max))
		})
	}
}

func TestNeedlePoints(t *testing.T) {
	pts := NeedlePoints(3, Radii{NeedleLength: 90})
	require.Len(t, pts, 5)
	assert.Equal(t, pts[0], pts[4])
	assert.Equal(t, -90.0, pts[1].Y)
	assert.Equal(t, float64(needleTail), pts[3].Y)
}

func TestComputeGeometryInvalidSize(t *testing.T) {
	b := newBase()
	b.height = 40
	_, err := ComputeGeometry(&b, DefaultConfig(), DefaultColor)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no room for the dial")
}

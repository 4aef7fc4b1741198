package gauge

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderAt(t *testing.T, value float64, opts ...Option) (*Chart, *ValueGroup, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(epoch)
	g := NewValueGroup(value)
	c, _ := newTestChart(t, append([]Option{WithClock(clock), WithGroup(g), WithSize(300, 200)}, opts...)...)
	return c, g, clock
}

func TestUpdateClampsAboveMax(t *testing.T) {
	for _, v := range []float64{101, 1000, 1e15} {
		c, _, _ := renderAt(t, v)
		c.SetMax(100)
		s, err := c.Render()
		require.NoError(t, err)
		assert.InDelta(t, s.Angles.End*Deg, s.Needle.Tween.To, 1e-9, "value %v", v)
	}
}

func TestUpdateLatchesMax(t *testing.T) {
	c, g, _ := renderAt(t, 42)
	require.False(t, c.HasMax())

	s, err := c.Render()
	require.NoError(t, err)
	assert.Equal(t, 42.0, c.Max())
	assert.InDelta(t, 90, s.Needle.Tween.To, 1e-9, "first value pins the needle to the end")

	g.Set(84)
	s, err = c.Redraw()
	require.NoError(t, err)
	assert.Equal(t, 42.0, c.Max(), "max latches once")
	assert.InDelta(t, 90, s.Needle.Tween.To, 1e-9)

	g.Set(21)
	s, err = c.Redraw()
	require.NoError(t, err)
	assert.InDelta(t, 0, s.Needle.Tween.To, 1e-9)
}

func TestSetMaxZeroRearmsLatch(t *testing.T) {
	c, g, _ := renderAt(t, 10)
	_, err := c.Render()
	require.NoError(t, err)
	require.Equal(t, 10.0, c.Max())

	c.SetMax(0)
	g.Set(30)
	_, err = c.Redraw()
	require.NoError(t, err)
	assert.Equal(t, 30.0, c.Max())
}

func TestNeedleTransition(t *testing.T) {
	c, _, clock := renderAt(t, 100)
	c.SetMax(100)

	s, err := c.Render()
	require.NoError(t, err)
	assert.InDelta(t, -90, s.Needle.Angle, 1e-9)
	assert.False(t, s.Settled())

	clock.Advance(DefaultTransitionDuration / 2)
	assert.InDelta(t, 0, c.Scene().Needle.Angle, 1e-9, "quad in-out is halfway at half time")

	clock.Advance(DefaultTransitionDuration / 2)
	s = c.Scene()
	assert.InDelta(t, 90, s.Needle.Angle, 1e-9)
	assert.True(t, s.Settled())
}

func TestNeedleRetargetsFromInterpolatedAngle(t *testing.T) {
	c, g, clock := renderAt(t, 100)
	c.SetMax(100)
	_, err := c.Render()
	require.NoError(t, err)

	clock.Advance(DefaultTransitionDuration / 2)
	g.Set(0)
	s, err := c.Redraw()
	require.NoError(t, err)

	assert.InDelta(t, 0, s.Needle.Tween.From, 1e-9, "restarts from where the needle is, not from the old target")
	assert.InDelta(t, -90, s.Needle.Tween.To, 1e-9)
	assert.InDelta(t, 0, s.Needle.Angle, 1e-9)

	clock.Advance(DefaultTransitionDuration)
	assert.InDelta(t, -90, c.Scene().Needle.Angle, 1e-9)
}

func TestIndicatorFill(t *testing.T) {
	limits := []float64{10, 90}
	assert.Equal(t, IndicatorOutOfRange, IndicatorFill(5, limits))
	assert.Equal(t, IndicatorInRange, IndicatorFill(50, limits))
	assert.Equal(t, IndicatorOutOfRange, IndicatorFill(95, limits))
	assert.Equal(t, IndicatorInRange, IndicatorFill(10, limits))
	assert.Equal(t, IndicatorInRange, IndicatorFill(-1e9, nil))
}

func TestIndicatorColorFollowsLimits(t *testing.T) {
	c, g, _ := renderAt(t, 5)
	c.SetMax(100)
	c.SetLimit(Params{"values": []float64{10, 90}})
	c.SetIndicator(Params{"show": true})

	s, err := c.Render()
	require.NoError(t, err)
	assert.Equal(t, IndicatorOutOfRange, s.Indicator.Fill)

	g.Set(50)
	s, err = c.Redraw()
	require.NoError(t, err)
	assert.Equal(t, IndicatorInRange, s.Indicator.Fill)
}

func TestIndicatorTextRetargets(t *testing.T) {
	c, g, clock := renderAt(t, 5, WithTransition(100*time.Millisecond, 20*time.Millisecond))
	c.SetIndicator(Params{"show": true})
	c.SetFormatNumber("d")

	_, err := c.Render()
	require.NoError(t, err)
	clock.Advance(20 * time.Millisecond)
	assert.Equal(t, "5", c.Scene().Indicator.Text)

	g.Set(7)
	s, err := c.Redraw()
	require.NoError(t, err)
	assert.Equal(t, "5", s.Indicator.Text)
	assert.Equal(t, "7", s.Indicator.Swap.Next)

	clock.Advance(19 * time.Millisecond)
	assert.Equal(t, "5", c.Scene().Indicator.Text)
	clock.Advance(time.Millisecond)
	assert.Equal(t, "7", c.Scene().Indicator.Text)
}

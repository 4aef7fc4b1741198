// Package gauge renders a radial gauge: a dial arc painted with a colour
// gradient, optional ticks and limit markers, a numeric indicator and a
// needle pointing at a single aggregated value.
//
// # Lifecycle
//
// A [Chart] moves between two states. [Chart.Render] performs a full draw:
// it recomputes the geometry from the configuration, builds a fresh [Scene]
// and positions the needle for the current value. [Chart.Redraw] is the
// lightweight path: it only retargets the needle and indicator to the
// current value and leaves the static geometry untouched. Any configuration
// setter drops the chart back to the unrendered state, and a Redraw on an
// unrendered chart performs a full Render.
//
// # Configuration
//
// Configuration is grouped (dial, ticks, needle, limit, indicator) plus a few
// globals (max, colorStep, formatNumber). Group setters take a partial
// [Params] map and merge it into a copy of the stored group; keys a group
// does not know are logged and ignored, never returned as errors.
//
//	c := gauge.New(gauge.WithSize(300, 200), gauge.WithGroup(gauge.NewValueGroup(42)))
//	c.SetDial(gauge.Params{"thickness": 0.2, "size": 1.2})
//	c.SetTicks(gauge.Params{"count": 5, "label": true})
//	c.SetMax(100)
//	scene, err := c.Render()
//
// # Max
//
// The max value is a one-time latch: while unset (zero) the first value the
// needle is pointed at becomes the max. After that only [Chart.SetMax]
// changes it.
//
// # Transitions
//
// Needle rotation and indicator text are not applied instantly. Each update
// creates a [Tween] on the chart's clock that starts from the currently
// interpolated state, so overlapping updates retarget rather than queue.
// Callers never wait for a transition; they sample it with [Chart.Scene].
package gauge

package gauge

// Redraw moves the needle and indicator to the data source's current value
// without recomputing geometry. An unrendered chart is fully rendered.
func (c *Chart) Redraw() (*Scene, error) {
	if c.state != Rendered {
		return c.Render()
	}
	c.update(c.Value())
	return c.Scene(), nil
}

// update retargets the needle and indicator to v. The first value seen while
// max is unset becomes max.
func (c *Chart) update(v float64) {
	c.latchMax(v)

	fraction := NeedleFraction(v, c.cfg.Max)
	target := c.geom.Scales.Needle.At(fraction) * Deg
	now := c.clock.Now()

	c.needle = c.needle.Retarget(target, now, 0, c.duration, EaseQuadInOut)
	c.value = v

	if c.scene.Indicator != nil {
		c.scene.Indicator.Fill = IndicatorFill(v, c.cfg.Limit.Values)
		c.text = c.text.Retarget(c.formatter(v), now, now.Add(c.delay))
	}
}

// IndicatorFill colours the readout red when v lies outside the first and
// last limit values, and gray otherwise or when no limits are configured.
func IndicatorFill(v float64, limits []float64) string {
	if len(limits) > 0 && (v < limits[0] || v > limits[len(limits)-1]) {
		return IndicatorOutOfRange
	}
	return IndicatorInRange
}

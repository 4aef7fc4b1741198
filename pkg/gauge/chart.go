package gauge

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cast"

	"github.com/matzehuels/gaugechart/pkg/gauge/format"
	"github.com/matzehuels/gaugechart/pkg/gauge/palette"
)

// DefaultColor paints the dial when no colours are configured.
const DefaultColor = palette.Constant("#1f77b4")

// State is where a chart is in its render lifecycle.
type State int

const (
	// Unrendered charts have no scene; the next Redraw performs a full Render.
	Unrendered State = iota
	// Rendered charts hold geometry and a scene; Redraw only moves the needle.
	Rendered
)

func (s State) String() string {
	if s == Rendered {
		return "rendered"
	}
	return "unrendered"
}

// Chart is a radial gauge. A Chart is not safe for concurrent use; callers
// that share one across goroutines must serialise access.
type Chart struct {
	Base

	cfg       Config
	formatter format.Func
	colors    palette.Provider
	group     Group
	ordering  Ordering
	accessor  Accessor

	state  State
	geom   Geometry
	scene  *Scene
	needle Tween
	text   TextSwap
	value  float64
}

// Option configures a Chart.
type Option func(*Chart)

// WithLogger sets the logger configuration warnings are reported to.
func WithLogger(l *log.Logger) Option {
	return func(c *Chart) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock sets the clock transitions are timed against.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Chart) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithSize sets the drawing surface dimensions.
func WithSize(width, height float64) Option {
	return func(c *Chart) { c.width, c.height = width, height }
}

// WithMargins replaces the default margins.
func WithMargins(m Margins) Option {
	return func(c *Chart) { c.margins = m }
}

// WithTransition sets the needle transition duration and the indicator delay.
func WithTransition(duration, delay time.Duration) Option {
	return func(c *Chart) { c.duration, c.delay = duration, delay }
}

// WithGroup sets the data source.
func WithGroup(g Group) Option {
	return func(c *Chart) { c.group = g }
}

// WithColors sets the dial colour provider.
func WithColors(p palette.Provider) Option {
	return func(c *Chart) {
		if p != nil {
			c.colors = p
		}
	}
}

// WithOrdering sets how bins are ranked when a group has several.
func WithOrdering(o Ordering) Option {
	return func(c *Chart) {
		if o != nil {
			c.ordering = o
		}
	}
}

// WithAccessor sets how the displayed number is read from a bin.
func WithAccessor(a Accessor) Option {
	return func(c *Chart) {
		if a != nil {
			c.accessor = a
		}
	}
}

// New returns an unrendered chart with default configuration.
func New(opts ...Option) *Chart {
	c := &Chart{
		Base:      newBase(),
		cfg:       DefaultConfig(),
		formatter: format.MustNew(DefaultFormatNumber),
		colors:    DefaultColor,
		ordering:  byValue,
		accessor:  byValue,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the chart's lifecycle state.
func (c *Chart) State() State { return c.state }

// invalidate drops the chart back to Unrendered after a configuration change.
func (c *Chart) invalidate() {
	c.state = Unrendered
}

func (c *Chart) reporter(group string, into *[]Rejection) reportFunc {
	return func(key, reason string) {
		if group == "" {
			c.logger.Warn("parameter is not accepted", "key", key, "reason", reason)
		} else {
			c.logger.Warn("parameter is not accepted", "group", group, "key", key, "reason", reason)
		}
		if into != nil {
			*into = append(*into, Rejection{Group: group, Key: key, Reason: reason})
		}
	}
}

// Config returns a copy of every configuration group.
func (c *Chart) Config() Config { return c.cfg.clone() }

// Dial returns the dial configuration.
func (c *Chart) Dial() DialConfig { return c.cfg.Dial }

// SetDial merges p into the dial configuration.
func (c *Chart) SetDial(p Params) { c.setDial(p, nil) }

func (c *Chart) setDial(p Params, into *[]Rejection) {
	c.cfg.Dial = c.cfg.Dial.merge(p, c.reporter("dial", into))
	c.invalidate()
}

// Ticks returns the tick configuration.
func (c *Chart) Ticks() TicksConfig { return c.cfg.Ticks }

// SetTicks merges p into the tick configuration.
func (c *Chart) SetTicks(p Params) { c.setTicks(p, nil) }

func (c *Chart) setTicks(p Params, into *[]Rejection) {
	c.cfg.Ticks = c.cfg.Ticks.merge(p, c.reporter("ticks", into))
	c.invalidate()
}

// Needle returns the needle configuration.
func (c *Chart) Needle() NeedleConfig { return c.cfg.Needle }

// SetNeedle merges p into the needle configuration.
func (c *Chart) SetNeedle(p Params) { c.setNeedle(p, nil) }

func (c *Chart) setNeedle(p Params, into *[]Rejection) {
	c.cfg.Needle = c.cfg.Needle.merge(p, c.reporter("needle", into))
	c.invalidate()
}

// Limit returns the limit configuration.
func (c *Chart) Limit() LimitConfig { return c.cfg.clone().Limit }

// SetLimit merges p into the limit configuration.
func (c *Chart) SetLimit(p Params) { c.setLimit(p, nil) }

func (c *Chart) setLimit(p Params, into *[]Rejection) {
	c.cfg.Limit = c.cfg.Limit.merge(p, c.reporter("limit", into))
	c.invalidate()
}

// Indicator returns the indicator configuration.
func (c *Chart) Indicator() IndicatorConfig { return c.cfg.Indicator }

// SetIndicator merges p into the indicator configuration.
func (c *Chart) SetIndicator(p Params) { c.setIndicator(p, nil) }

func (c *Chart) setIndicator(p Params, into *[]Rejection) {
	c.cfg.Indicator = c.cfg.Indicator.merge(p, c.reporter("indicator", into))
	c.invalidate()
}

// FormatNumber returns the d3-format specifier used for labels.
func (c *Chart) FormatNumber() string { return c.cfg.FormatNumber }

// Formatter returns the label formatter.
func (c *Chart) Formatter() format.Func { return c.formatter }

// SetFormatNumber replaces the label format. An invalid specifier is
// reported and the previous format kept.
func (c *Chart) SetFormatNumber(spec string) { c.setFormatNumber(spec, nil) }

func (c *Chart) setFormatNumber(spec string, into *[]Rejection) {
	f, err := format.New(spec)
	if err != nil {
		c.reporter("", into)("formatNumber", err.Error())
		return
	}
	c.cfg.FormatNumber = spec
	c.formatter = f
	c.invalidate()
}

// ColorStep returns the number of gradient segments.
func (c *Chart) ColorStep() int { return c.cfg.ColorStep }

// SetColorStep sets the number of gradient segments. Values below one are
// reported and ignored.
func (c *Chart) SetColorStep(n int) { c.setColorStep(n, nil) }

func (c *Chart) setColorStep(n int, into *[]Rejection) {
	if n < 1 {
		c.reporter("", into)("colorStep", "must be at least 1")
		return
	}
	c.cfg.ColorStep = n
	c.invalidate()
}

// Max returns the value at the end stop, or 0 while unset.
func (c *Chart) Max() float64 { return c.cfg.Max }

// HasMax reports whether max has been set or latched.
func (c *Chart) HasMax() bool { return c.cfg.Max != 0 }

// SetMax sets the end stop value. Zero unsets it, re-arming the latch so the
// next update derives max from its value.
func (c *Chart) SetMax(v float64) {
	c.cfg.Max = v
	c.invalidate()
}

// latchMax performs the one-time transition from unset to set.
func (c *Chart) latchMax(v float64) {
	if c.cfg.Max == 0 {
		c.cfg.Max = v
	}
}

// Colors returns the dial colour provider.
func (c *Chart) Colors() palette.Provider { return c.colors }

// SetColors replaces the dial colour provider.
func (c *Chart) SetColors(p palette.Provider) {
	if p == nil {
		p = DefaultColor
	}
	c.colors = p
	c.invalidate()
}

// SetSize sets the drawing surface dimensions.
func (c *Chart) SetSize(width, height float64) {
	c.width, c.height = width, height
	c.invalidate()
}

// SetMargins replaces all four margins.
func (c *Chart) SetMargins(m Margins) {
	c.margins = m
	c.invalidate()
}

// SetUniformMargins applies v to all four sides.
func (c *Chart) SetUniformMargins(v float64) { c.SetMargins(UniformMargins(v)) }

// SetTransition sets the needle transition duration and the indicator delay.
func (c *Chart) SetTransition(duration, delay time.Duration) {
	c.duration, c.delay = duration, delay
}

// Group returns the data source.
func (c *Chart) Group() Group { return c.group }

// SetGroup replaces the data source. The next Redraw picks up its value.
func (c *Chart) SetGroup(g Group) { c.group = g }

// Value returns the scalar the data source currently yields, 0 when it
// yields nothing.
func (c *Chart) Value() float64 {
	kv, ok := pick(c.group, c.ordering)
	if !ok {
		return 0
	}
	return c.accessor(kv)
}

// Apply merges a decoded configuration document, as read from TOML or JSON,
// into the chart. Keys that cannot be applied are logged and returned; Apply
// itself never fails.
func (c *Chart) Apply(doc map[string]any) []Rejection {
	var out []Rejection
	report := c.reporter("", &out)
	for _, k := range sortedKeys(doc) {
		v := doc[k]
		switch k {
		case "dial", "ticks", "needle", "limit", "indicator":
			p, err := cast.ToStringMapE(v)
			if err != nil {
				report(k, err.Error())
				continue
			}
			c.applyGroup(k, Params(p), &out)
		case "margins":
			c.applyMargins(v, &out)
		case "width":
			w := c.width
			merger{report}.float(k, v, &w)
			c.SetSize(w, c.height)
		case "height":
			h := c.height
			merger{report}.float(k, v, &h)
			c.SetSize(c.width, h)
		case "formatNumber":
			spec, err := cast.ToStringE(v)
			if err != nil {
				report(k, err.Error())
				continue
			}
			c.setFormatNumber(spec, &out)
		case "colorStep":
			n, err := cast.ToIntE(v)
			if err != nil {
				report(k, err.Error())
				continue
			}
			c.setColorStep(n, &out)
		case "max":
			m, err := cast.ToFloat64E(v)
			if err != nil {
				report(k, err.Error())
				continue
			}
			c.SetMax(m)
		case "colors":
			p, err := palette.Parse(v)
			if err != nil {
				report(k, err.Error())
				continue
			}
			c.SetColors(p)
		case "transitionDuration":
			merger{report}.duration(k, v, &c.duration)
		case "transitionDelay":
			merger{report}.duration(k, v, &c.delay)
		default:
			merger{report}.unknown(k)
		}
	}
	return out
}

func (c *Chart) applyGroup(group string, p Params, into *[]Rejection) {
	switch group {
	case "dial":
		c.setDial(p, into)
	case "ticks":
		c.setTicks(p, into)
	case "needle":
		c.setNeedle(p, into)
	case "limit":
		c.setLimit(p, into)
	case "indicator":
		c.setIndicator(p, into)
	}
}

// applyMargins accepts a single number for all sides or a per-side table
// merged into the current margins.
func (c *Chart) applyMargins(v any, into *[]Rejection) {
	if p, err := cast.ToStringMapE(v); err == nil {
		c.SetMargins(c.margins.merge(Params(p), c.reporter("margins", into)))
		return
	}
	n, err := cast.ToFloat64E(v)
	if err != nil {
		c.reporter("", into)("margins", err.Error())
		return
	}
	c.SetUniformMargins(n)
}

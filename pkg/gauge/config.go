package gauge

import (
	"github.com/matzehuels/gaugechart/pkg/gauge/format"
)

// DefaultFormatNumber is the d3-format specifier used for tick, limit and
// indicator labels until SetFormatNumber replaces it.
const DefaultFormatNumber = ".2s"

// DefaultColorStep is the number of segments a continuous gradient is drawn with.
const DefaultColorStep = 150

// DialConfig shapes the dial arc.
type DialConfig struct {
	// Thickness is the arc width as a fraction of the base radius.
	Thickness float64 `json:"thickness" toml:"thickness"`
	// Size is the arc extent in half-turns: 1 is a semicircle, 2 a full circle.
	Size float64 `json:"size" toml:"size"`
	// Rotation turns the whole dial clockwise, in degrees.
	Rotation float64 `json:"rotation" toml:"rotation"`
}

// TicksConfig controls the evenly spaced tick marks.
type TicksConfig struct {
	// Count is the number of ticks including both ends; two or fewer draws none.
	Count    int    `json:"count" toml:"count"`
	Color    string `json:"color" toml:"color"`
	Label    bool   `json:"label" toml:"label"`
	FontSize string `json:"fontSize" toml:"fontSize"`
}

// NeedleConfig styles the needle polygon.
type NeedleConfig struct {
	Color string  `json:"color" toml:"color"`
	Width float64 `json:"width" toml:"width"`
}

// LimitConfig marks threshold values on the dial.
type LimitConfig struct {
	Values   []float64 `json:"values" toml:"values"`
	Label    bool      `json:"label" toml:"label"`
	Color    string    `json:"color" toml:"color"`
	FontSize string    `json:"fontSize" toml:"fontSize"`
}

// IndicatorConfig controls the numeric readout under the dial.
type IndicatorConfig struct {
	Show bool `json:"show" toml:"show"`
	// FontSize defaults to a quarter of the base radius when empty.
	FontSize string `json:"fontSize" toml:"fontSize"`
}

// Config is a snapshot of every gauge configuration group.
type Config struct {
	Dial         DialConfig      `json:"dial"`
	Ticks        TicksConfig     `json:"ticks"`
	Needle       NeedleConfig    `json:"needle"`
	Limit        LimitConfig     `json:"limit"`
	Indicator    IndicatorConfig `json:"indicator"`
	FormatNumber string          `json:"formatNumber"`
	ColorStep    int             `json:"colorStep"`
	Max          float64         `json:"max"`
}

// DefaultConfig returns the configuration a new chart starts with.
func DefaultConfig() Config {
	return Config{
		Dial:      DialConfig{Thickness: 0.15, Size: 1, Rotation: 0},
		Ticks:     TicksConfig{Count: 2, Color: "#FFFFFF", Label: false, FontSize: "0.5em"},
		Needle:    NeedleConfig{Color: "#E85116", Width: 3},
		Limit:     LimitConfig{Values: []float64{}, Label: false, Color: "#FFFFFF", FontSize: "8px"},
		Indicator: IndicatorConfig{Show: false, FontSize: ""},

		FormatNumber: DefaultFormatNumber,
		ColorStep:    DefaultColorStep,
		Max:          0,
	}
}

func (d DialConfig) merge(p Params, report reportFunc) DialConfig {
	m := merger{report}
	for _, k := range sortedKeys(p) {
		v := p[k]
		switch k {
		case "thickness":
			m.float(k, v, &d.Thickness)
		case "size":
			m.float(k, v, &d.Size)
		case "rotation":
			m.float(k, v, &d.Rotation)
		default:
			m.unknown(k)
		}
	}
	return d
}

func (t TicksConfig) merge(p Params, report reportFunc) TicksConfig {
	m := merger{report}
	for _, k := range sortedKeys(p) {
		v := p[k]
		switch k {
		case "count":
			m.int(k, v, &t.Count)
		case "color":
			m.string(k, v, &t.Color)
		case "label":
			m.bool(k, v, &t.Label)
		case "fontSize":
			m.string(k, v, &t.FontSize)
		default:
			m.unknown(k)
		}
	}
	return t
}

func (n NeedleConfig) merge(p Params, report reportFunc) NeedleConfig {
	m := merger{report}
	for _, k := range sortedKeys(p) {
		v := p[k]
		switch k {
		case "color":
			m.string(k, v, &n.Color)
		case "width":
			m.float(k, v, &n.Width)
		default:
			m.unknown(k)
		}
	}
	return n
}

func (l LimitConfig) merge(p Params, report reportFunc) LimitConfig {
	l.Values = append([]float64(nil), l.Values...)
	m := merger{report}
	for _, k := range sortedKeys(p) {
		v := p[k]
		switch k {
		case "values":
			m.floats(k, v, &l.Values)
		case "label":
			m.bool(k, v, &l.Label)
		case "color":
			m.string(k, v, &l.Color)
		case "fontSize":
			m.string(k, v, &l.FontSize)
		default:
			m.unknown(k)
		}
	}
	return l
}

func (i IndicatorConfig) merge(p Params, report reportFunc) IndicatorConfig {
	m := merger{report}
	for _, k := range sortedKeys(p) {
		v := p[k]
		switch k {
		case "show":
			m.bool(k, v, &i.Show)
		case "fontSize":
			m.string(k, v, &i.FontSize)
		default:
			m.unknown(k)
		}
	}
	return i
}

// clone returns a copy that shares no slices with c.
func (c Config) clone() Config {
	c.Limit.Values = append([]float64{}, c.Limit.Values...)
	return c
}

// formatter returns the label formatter for c, falling back to the default
// specifier when FormatNumber does not parse.
func (c Config) formatter() format.Func {
	if f, err := format.New(c.FormatNumber); err == nil {
		return f
	}
	return format.MustNew(DefaultFormatNumber)
}

package gauge

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cast"
)

// Params is a partial update of one configuration group, keyed by the
// group's field names (for example "thickness" or "fontSize").
type Params map[string]any

// Rejection records a configuration key that was not applied.
type Rejection struct {
	Group  string `json:"group"`
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

func (r Rejection) String() string {
	if r.Group == "" {
		return fmt.Sprintf("%s: %s", r.Key, r.Reason)
	}
	return fmt.Sprintf("%s.%s: %s", r.Group, r.Key, r.Reason)
}

// reportFunc receives rejected keys while a group is merged.
type reportFunc func(key, reason string)

// merger applies typed values from a Params map, reporting anything it
// cannot coerce instead of failing.
type merger struct {
	report reportFunc
}

func (m merger) float(key string, v any, dst *float64) {
	f, err := cast.ToFloat64E(v)
	if err != nil {
		m.report(key, err.Error())
		return
	}
	*dst = f
}

func (m merger) int(key string, v any, dst *int) {
	i, err := cast.ToIntE(v)
	if err != nil {
		m.report(key, err.Error())
		return
	}
	*dst = i
}

func (m merger) bool(key string, v any, dst *bool) {
	b, err := cast.ToBoolE(v)
	if err != nil {
		m.report(key, err.Error())
		return
	}
	*dst = b
}

func (m merger) string(key string, v any, dst *string) {
	s, err := cast.ToStringE(v)
	if err != nil {
		m.report(key, err.Error())
		return
	}
	*dst = s
}

func (m merger) floats(key string, v any, dst *[]float64) {
	fs, err := cast.ToFloat64SliceE(v)
	if err != nil {
		m.report(key, err.Error())
		return
	}
	*dst = append([]float64(nil), fs...)
}

// duration reads milliseconds from numbers and Go duration syntax from strings.
func (m merger) duration(key string, v any, dst *time.Duration) {
	if s, ok := v.(string); ok {
		d, err := time.ParseDuration(s)
		if err != nil {
			m.report(key, err.Error())
			return
		}
		*dst = d
		return
	}
	ms, err := cast.ToFloat64E(v)
	if err != nil {
		m.report(key, err.Error())
		return
	}
	*dst = time.Duration(ms * float64(time.Millisecond))
}

func (m merger) unknown(key string) {
	m.report(key, "parameter is not accepted")
}

// sortedKeys iterates Params deterministically so rejections are reported in
// a stable order.
func sortedKeys[V any](p map[string]V) []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

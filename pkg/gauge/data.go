package gauge

import (
	"cmp"
	"slices"
	"sync"
)

// KeyValue is one aggregated bin of a group.
type KeyValue struct {
	Key   any     `json:"key"`
	Value float64 `json:"value"`
}

// Group is a source of aggregated bins.
type Group interface {
	All() []KeyValue
}

// Valuer is a group that reduces to a single scalar. The scalar is wrapped
// as KeyValue{Key: 1, Value: v}.
type Valuer interface {
	Value() float64
}

// KeyValuer is a group that reduces to a single bin.
type KeyValuer interface {
	KeyValue() KeyValue
}

// Bins is a static group.
type Bins []KeyValue

// All returns the bins unchanged.
func (b Bins) All() []KeyValue { return b }

// ValueGroup is a single-value group that can be updated concurrently with
// reads. It is what live gauges feed values into.
type ValueGroup struct {
	mu sync.RWMutex
	v  float64
}

// NewValueGroup returns a group holding v.
func NewValueGroup(v float64) *ValueGroup {
	return &ValueGroup{v: v}
}

// Set replaces the held value.
func (g *ValueGroup) Set(v float64) {
	g.mu.Lock()
	g.v = v
	g.mu.Unlock()
}

// Value returns the held value.
func (g *ValueGroup) Value() float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.v
}

// All returns the held value as a single bin.
func (g *ValueGroup) All() []KeyValue {
	return []KeyValue{{Key: 1, Value: g.Value()}}
}

// Ordering ranks bins; the highest-ranked bin is the one a gauge shows.
type Ordering func(KeyValue) float64

// Accessor extracts the displayed number from a bin.
type Accessor func(KeyValue) float64

func byValue(kv KeyValue) float64 { return kv.Value }

// pick reduces a group to the bin the needle points at. Single-value groups
// are used directly; anything else yields its maximum bin under ordering.
func pick(g Group, ordering Ordering) (KeyValue, bool) {
	switch v := g.(type) {
	case nil:
		return KeyValue{}, false
	case KeyValuer:
		return v.KeyValue(), true
	case Valuer:
		return KeyValue{Key: 1, Value: v.Value()}, true
	}
	return maxBin(g.All(), ordering)
}

// maxBin returns the last bin after a stable ascending sort by ordering.
func maxBin(all []KeyValue, ordering Ordering) (KeyValue, bool) {
	if len(all) == 0 {
		return KeyValue{}, false
	}
	sorted := slices.Clone(all)
	slices.SortStableFunc(sorted, func(a, b KeyValue) int {
		return cmp.Compare(ordering(a), ordering(b))
	})
	return sorted[len(sorted)-1], true
}

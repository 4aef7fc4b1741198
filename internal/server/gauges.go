package server

import (
	"context"
	"encoding/json"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"

	"github.com/matzehuels/gaugechart/pkg/cache"
	"github.com/matzehuels/gaugechart/pkg/errors"
	"github.com/matzehuels/gaugechart/pkg/gauge"
	"github.com/matzehuels/gaugechart/pkg/observability"
)

// Definition is what a live gauge is created from, and what is persisted
// under its cache key so another server instance can restore it. Max holds
// the end stop the gauge latched from its first value; it takes precedence
// over the configured max.
type Definition struct {
	Config map[string]any `json:"config,omitempty"`
	Value  *float64       `json:"value,omitempty"`
	Max    *float64       `json:"max,omitempty"`
}

// liveGauge is a rendered chart fed by a value group. mu serializes all
// access to chart, which is not safe for concurrent use.
type liveGauge struct {
	mu     sync.Mutex
	name   string
	def    Definition
	chart  *gauge.Chart
	values *gauge.ValueGroup
}

// snapshot returns the current scene and configuration.
func (g *liveGauge) snapshot() (*gauge.Scene, gauge.Config) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.chart.Scene(), g.chart.Config()
}

// Registry holds the live gauges of one server.
type Registry struct {
	mu     sync.RWMutex
	gauges map[string]*liveGauge

	cache  cache.Cache
	keyer  cache.Keyer
	clock  clockwork.Clock
	logger *log.Logger
}

// NewRegistry creates an empty registry persisting definitions to c.
func NewRegistry(c cache.Cache, keyer cache.Keyer, clock clockwork.Clock, logger *log.Logger) *Registry {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Registry{
		gauges: make(map[string]*liveGauge),
		cache:  c,
		keyer:  keyer,
		clock:  clock,
		logger: logger,
	}
}

// Put creates or replaces a live gauge and renders it. It returns the
// fresh scene and the configuration keys that were ignored.
func (r *Registry) Put(ctx context.Context, name string, def Definition) (*gauge.Scene, []gauge.Rejection, error) {
	if err := errors.ValidateGaugeName(name); err != nil {
		return nil, nil, err
	}
	g, rejected, err := r.build(name, def)
	if err != nil {
		return nil, rejected, err
	}

	r.mu.Lock()
	r.gauges[name] = g
	r.mu.Unlock()

	r.persist(ctx, g)
	r.logger.Info("gauge defined", "gauge", name, "rejected", len(rejected))
	scene, _ := g.snapshot()
	return scene, rejected, nil
}

func (r *Registry) build(name string, def Definition) (*liveGauge, []gauge.Rejection, error) {
	values := gauge.NewValueGroup(0)
	if def.Value != nil {
		values.Set(*def.Value)
	}
	chart := gauge.New(
		gauge.WithLogger(r.logger.With("gauge", name)),
		gauge.WithClock(r.clock),
		gauge.WithGroup(values),
	)
	rejected := chart.Apply(def.Config)
	if def.Max != nil {
		chart.SetMax(*def.Max)
	}
	if _, err := chart.Render(); err != nil {
		return nil, rejected, err
	}
	return &liveGauge{name: name, def: def, chart: chart, values: values}, rejected, nil
}

// get returns a live gauge, restoring it from the cache when this server
// has not seen it yet.
func (r *Registry) get(ctx context.Context, name string) (*liveGauge, error) {
	if err := errors.ValidateGaugeName(name); err != nil {
		return nil, err
	}
	r.mu.RLock()
	g, ok := r.gauges[name]
	r.mu.RUnlock()
	if ok {
		return g, nil
	}
	return r.restore(ctx, name)
}

func (r *Registry) restore(ctx context.Context, name string) (*liveGauge, error) {
	data, hit, err := r.cache.Get(ctx, r.keyer.GaugeKey(name))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "load gauge %s", name)
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "gauge")
		return nil, errors.New(errors.ErrCodeNotFound, "gauge %s is not defined", name)
	}
	observability.Cache().OnCacheHit(ctx, "gauge")

	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode gauge %s", name)
	}
	g, _, err := r.build(name, def)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.gauges[name]; ok {
		return existing, nil
	}
	r.gauges[name] = g
	r.logger.Debug("gauge restored", "gauge", name)
	return g, nil
}

// Scene returns the current scene and configuration of a gauge.
func (r *Registry) Scene(ctx context.Context, name string) (*gauge.Scene, gauge.Config, error) {
	g, err := r.get(ctx, name)
	if err != nil {
		return nil, gauge.Config{}, err
	}
	scene, cfg := g.snapshot()
	return scene, cfg, nil
}

// Update feeds a new value to a gauge and starts the needle transition.
func (r *Registry) Update(ctx context.Context, name string, v float64) (*gauge.Scene, error) {
	g, err := r.get(ctx, name)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	g.values.Set(v)
	scene, err := g.chart.Redraw()
	g.def.Value = &v
	g.mu.Unlock()
	if err != nil {
		return nil, err
	}

	observability.Pipeline().OnUpdate(ctx, name, v)
	r.persist(ctx, g)
	return scene, nil
}

// Delete removes a gauge from memory and the cache.
func (r *Registry) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateGaugeName(name); err != nil {
		return err
	}
	r.mu.Lock()
	delete(r.gauges, name)
	r.mu.Unlock()
	if err := r.cache.Delete(ctx, r.keyer.GaugeKey(name)); err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "delete gauge %s", name)
	}
	return nil
}

// Names lists the gauges held in memory, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.gauges))
	for n := range r.gauges {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// persist stores the definition together with the current max, so a
// restored gauge does not latch a later value as its end stop. Failures are
// logged: the in-memory gauge stays authoritative.
func (r *Registry) persist(ctx context.Context, g *liveGauge) {
	g.mu.Lock()
	def := g.def
	if g.chart.HasMax() {
		m := g.chart.Max()
		def.Max = &m
	}
	data, err := json.Marshal(def)
	g.mu.Unlock()
	if err != nil {
		r.logger.Warn("gauge not persisted", "gauge", g.name, "error", err)
		return
	}
	if err := r.cache.Set(ctx, r.keyer.GaugeKey(g.name), data, cache.TTLGauge); err != nil {
		r.logger.Warn("gauge not persisted", "gauge", g.name, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "gauge", len(data))
}

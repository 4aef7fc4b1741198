package observability

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gaugechart"

// Prometheus implements every hook interface with Prometheus collectors.
type Prometheus struct {
	Renders        *prometheus.CounterVec   // labels: formats, outcome={success,error}
	RenderDuration prometheus.Histogram
	Updates        *prometheus.CounterVec   // labels: gauge
	GaugeValue     *prometheus.GaugeVec     // labels: gauge
	Cache          *prometheus.CounterVec   // labels: type, result={hit,miss,set}
	CacheBytes     prometheus.Counter
	Requests       *prometheus.CounterVec   // labels: method, route, status
	RequestLatency *prometheus.HistogramVec // labels: method, route
	RequestErrors  *prometheus.CounterVec   // labels: method, route
	FeedMessages   *prometheus.CounterVec   // labels: topic
	FeedErrors     *prometheus.CounterVec   // labels: topic
}

var (
	_ PipelineHooks = (*Prometheus)(nil)
	_ CacheHooks    = (*Prometheus)(nil)
	_ HTTPHooks     = (*Prometheus)(nil)
	_ FeedHooks     = (*Prometheus)(nil)
)

// NewPrometheus creates the collectors and registers them with reg.
// Tests pass a fresh prometheus.NewRegistry() to avoid duplicate registration.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	m := &Prometheus{
		Renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Gauge renders by requested formats and outcome.",
		}, []string{"formats", "outcome"}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Duration of a full render including format conversion.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
		Updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "updates_total",
			Help:      "Value updates applied to live gauges.",
		}, []string{"gauge"}),
		GaugeValue: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "gauge_value",
			Help:      "Most recent value of each live gauge.",
		}, []string{"gauge"}),
		Cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_total",
			Help:      "Cache operations by key type and result.",
		}, []string{"type", "result"}),
		CacheBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the artifact cache.",
		}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP responses by method, route and status.",
		}, []string{"method", "route", "status"}),
		RequestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route"}),
		RequestErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_request_errors_total",
			Help:      "HTTP requests that failed with an error.",
		}, []string{"method", "route"}),
		FeedMessages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_messages_total",
			Help:      "Readings decoded from the value feed.",
		}, []string{"topic"}),
		FeedErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_errors_total",
			Help:      "Feed messages that could not be read or decoded.",
		}, []string{"topic"}),
	}

	reg.MustRegister(
		m.Renders,
		m.RenderDuration,
		m.Updates,
		m.GaugeValue,
		m.Cache,
		m.CacheBytes,
		m.Requests,
		m.RequestLatency,
		m.RequestErrors,
		m.FeedMessages,
		m.FeedErrors,
	)
	return m
}

// Install registers m for every hook category.
func (m *Prometheus) Install() {
	SetPipelineHooks(m)
	SetCacheHooks(m)
	SetHTTPHooks(m)
	SetFeedHooks(m)
}

func (m *Prometheus) OnRenderStart(context.Context, []string) {}

func (m *Prometheus) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	m.Renders.WithLabelValues(strings.Join(formats, ","), outcome(err)).Inc()
	m.RenderDuration.Observe(d.Seconds())
}

func (m *Prometheus) OnUpdate(_ context.Context, gauge string, value float64) {
	m.Updates.WithLabelValues(gauge).Inc()
	m.GaugeValue.WithLabelValues(gauge).Set(value)
}

func (m *Prometheus) OnCacheHit(_ context.Context, keyType string) {
	m.Cache.WithLabelValues(keyType, "hit").Inc()
}

func (m *Prometheus) OnCacheMiss(_ context.Context, keyType string) {
	m.Cache.WithLabelValues(keyType, "miss").Inc()
}

func (m *Prometheus) OnCacheSet(_ context.Context, keyType string, size int) {
	m.Cache.WithLabelValues(keyType, "set").Inc()
	m.CacheBytes.Add(float64(size))
}

func (m *Prometheus) OnRequest(context.Context, string, string) {}

func (m *Prometheus) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	m.Requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Prometheus) OnError(_ context.Context, method, route string, _ error) {
	m.RequestErrors.WithLabelValues(method, route).Inc()
}

func (m *Prometheus) OnFeedMessage(_ context.Context, topic, _ string) {
	m.FeedMessages.WithLabelValues(topic).Inc()
}

func (m *Prometheus) OnFeedError(_ context.Context, topic string, _ error) {
	m.FeedErrors.WithLabelValues(topic).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// Package metrics adapts ports.MetricsCollector onto Prometheus client
// collectors, grounded on the dependency pack's metrics.go (a
// service-layer repo shipping a Prometheus-backed Metrics struct with
// pre-registered CounterVec/GaugeVec/HistogramVec fields). Generalized
// here from a fixed struct of named fields to a name-keyed cache, since
// ports.MetricsCollector is called with caller-chosen metric names rather
// than a fixed compile-time set.
package metrics

import (
	"context"
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pipeforge/core/internal/ports"
)

// Collector implements ports.MetricsCollector over a Prometheus registry.
// Vectors are created lazily on first use and cached by name+label-key-set,
// since a CounterVec/GaugeVec/HistogramVec must be registered once with a
// fixed set of label names.
type Collector struct {
	registerer prometheus.Registerer

	mu         sync.Mutex
	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
	histograms map[string]*prometheus.HistogramVec
}

// New constructs a Collector backed by registerer. Pass
// prometheus.DefaultRegisterer to expose metrics on the default registry.
func New(registerer prometheus.Registerer) *Collector {
	return &Collector{
		registerer: registerer,
		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
		histograms: make(map[string]*prometheus.HistogramVec),
	}
}

var _ ports.MetricsCollector = (*Collector)(nil)

func (c *Collector) IncCounter(_ context.Context, name string, labels map[string]string) {
	keys, values := splitLabels(labels)
	c.mu.Lock()
	vec, ok := c.counters[vecKey(name, keys)]
	if !ok {
		vec = prometheus.NewCounterVec(prometheus.CounterOpts{Name: name, Help: name}, keys)
		_ = c.registerer.Register(vec)
		c.counters[vecKey(name, keys)] = vec
	}
	c.mu.Unlock()
	vec.WithLabelValues(values...).Inc()
}

func (c *Collector) SetGauge(_ context.Context, name string, value float64, labels map[string]string) {
	keys, values := splitLabels(labels)
	c.mu.Lock()
	vec, ok := c.gauges[vecKey(name, keys)]
	if !ok {
		vec = prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: name}, keys)
		_ = c.registerer.Register(vec)
		c.gauges[vecKey(name, keys)] = vec
	}
	c.mu.Unlock()
	vec.WithLabelValues(values...).Set(value)
}

func (c *Collector) ObserveHistogram(_ context.Context, name string, value float64, labels map[string]string) {
	keys, values := splitLabels(labels)
	c.mu.Lock()
	vec, ok := c.histograms[vecKey(name, keys)]
	if !ok {
		vec = prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: name, Help: name}, keys)
		_ = c.registerer.Register(vec)
		c.histograms[vecKey(name, keys)] = vec
	}
	c.mu.Unlock()
	vec.WithLabelValues(values...).Observe(value)
}

func splitLabels(labels map[string]string) (keys, values []string) {
	keys = make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	values = make([]string, len(keys))
	for i, k := range keys {
		values[i] = labels[k]
	}
	return keys, values
}

func vecKey(name string, keys []string) string {
	key := name
	for _, k := range keys {
		key += "|" + k
	}
	return key
}

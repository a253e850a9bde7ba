// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the set of measurements taken by the storage, controller and server layers.
type Recorder interface {
	RecordAction(kind string)
	RecordNotice(severity string)
	RecordPersistenceFailure(key string)
	RecordRender(section string, d time.Duration)
}

// Collector records metrics into Prometheus collectors.
type Collector struct {
	actions       *prometheus.CounterVec
	notices       *prometheus.CounterVec
	persistFail   *prometheus.CounterVec
	renderLatency *prometheus.HistogramVec
}

// Ensure Collector implements Recorder.
var _ Recorder = (*Collector)(nil)

// NewCollector creates a Collector and registers it with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mvphub_actions_total",
			Help: "Dispatched UI actions by kind.",
		}, []string{"kind"}),
		notices: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mvphub_notices_total",
			Help: "User-facing notices raised by severity.",
		}, []string{"severity"}),
		persistFail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mvphub_persistence_failures_total",
			Help: "Storage writes that failed and were swallowed.",
		}, []string{"key"}),
		renderLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mvphub_render_seconds",
			Help:    "Time spent rendering a page.",
			Buckets: prometheus.DefBuckets,
		}, []string{"section"}),
	}

	reg.MustRegister(c.actions, c.notices, c.persistFail, c.renderLatency)
	return c
}

// RecordAction counts a dispatched action.
func (c *Collector) RecordAction(kind string) {
	c.actions.WithLabelValues(kind).Inc()
}

// RecordNotice counts a raised notice.
func (c *Collector) RecordNotice(severity string) {
	c.notices.WithLabelValues(severity).Inc()
}

// RecordPersistenceFailure counts a failed storage write.
func (c *Collector) RecordPersistenceFailure(key string) {
	c.persistFail.WithLabelValues(key).Inc()
}

// RecordRender observes page render latency.
func (c *Collector) RecordRender(section string, d time.Duration) {
	c.renderLatency.WithLabelValues(section).Observe(d.Seconds())
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Nop discards every measurement.
type Nop struct{}

func (Nop) RecordAction(string)                {}
func (Nop) RecordNotice(string)                {}
func (Nop) RecordPersistenceFailure(string)    {}
func (Nop) RecordRender(string, time.Duration) {}

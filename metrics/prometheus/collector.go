// Package prometheus exports pool metrics as Prometheus collectors.
package prometheus

import (
	"time"

	"github.com/hupe1980/respool"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector implements respool.MetricsCollector on Prometheus metrics.
type Collector struct {
	opLatency      *prometheus.HistogramVec
	gets           *prometheus.CounterVec
	listed         prometheus.Histogram
	remoteFailures *prometheus.CounterVec
}

var _ respool.MetricsCollector = (*Collector)(nil)

// Option configures a Collector.
type Option func(*options)

type options struct {
	namespace   string
	constLabels prometheus.Labels
	buckets     []float64
}

// WithNamespace sets the metric namespace. The default is "respool".
func WithNamespace(ns string) Option {
	return func(o *options) {
		o.namespace = ns
	}
}

// WithConstLabels attaches labels to every metric, e.g. the pool name.
func WithConstLabels(l prometheus.Labels) Option {
	return func(o *options) {
		o.constLabels = l
	}
}

// WithBuckets sets the latency histogram buckets.
func WithBuckets(b []float64) Option {
	return func(o *options) {
		if len(b) > 0 {
			o.buckets = b
		}
	}
}

// New creates a Collector and registers it with reg. A nil reg skips
// registration.
func New(reg prometheus.Registerer, opts ...Option) (*Collector, error) {
	o := options{namespace: "respool", buckets: prometheus.DefBuckets}
	for _, fn := range opts {
		fn(&o)
	}

	c := &Collector{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   o.namespace,
			Name:        "operation_latency_seconds",
			Help:        "Latency of pool operations",
			Buckets:     o.buckets,
			ConstLabels: o.constLabels,
		}, []string{"op", "status"}),
		gets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   o.namespace,
			Name:        "gets_total",
			Help:        "Lookups by where the value was found",
			ConstLabels: o.constLabels,
		}, []string{"lookup"}),
		listed: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   o.namespace,
			Name:        "get_all_resources",
			Help:        "Number of resources returned by GetAll",
			Buckets:     prometheus.ExponentialBuckets(1, 4, 8),
			ConstLabels: o.constLabels,
		}),
		remoteFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   o.namespace,
			Name:        "remote_failures_total",
			Help:        "Failed or timed out connector calls",
			ConstLabels: o.constLabels,
		}, []string{"op"}),
	}

	if reg != nil {
		for _, m := range []prometheus.Collector{c.opLatency, c.gets, c.listed, c.remoteFailures} {
			if err := reg.Register(m); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordPut implements respool.MetricsCollector.
func (c *Collector) RecordPut(d time.Duration, err error) {
	c.opLatency.WithLabelValues("put", status(err)).Observe(d.Seconds())
}

// RecordGet implements respool.MetricsCollector.
func (c *Collector) RecordGet(d time.Duration, lookup respool.Lookup) {
	c.opLatency.WithLabelValues("get", "success").Observe(d.Seconds())
	c.gets.WithLabelValues(lookup.String()).Inc()
}

// RecordRemove implements respool.MetricsCollector.
func (c *Collector) RecordRemove(d time.Duration, err error) {
	c.opLatency.WithLabelValues("remove", status(err)).Observe(d.Seconds())
}

// RecordGetAll implements respool.MetricsCollector.
func (c *Collector) RecordGetAll(count int, d time.Duration) {
	c.opLatency.WithLabelValues("get_all", "success").Observe(d.Seconds())
	c.listed.Observe(float64(count))
}

// RecordRemoteFailure implements respool.MetricsCollector.
func (c *Collector) RecordRemoteFailure(op string) {
	c.remoteFailures.WithLabelValues(op).Inc()
}

package metrics

import "github.com/prometheus/client_golang/prometheus"

// Option configures a Metrics instance.
type Option func(*Metrics)

// WithNamespace sets the metric namespace (default "portal").
func WithNamespace(namespace string) Option {
	return func(m *Metrics) {
		m.namespace = namespace
	}
}

// WithRegistry registers collectors on registry instead of a fresh one.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(m *Metrics) {
		m.registry = registry
	}
}

// WithHistogramBuckets overrides the latency buckets.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Metrics) {
		m.buckets = buckets
	}
}

// WithRuntimeCollectors adds the Go runtime and process collectors.
func WithRuntimeCollectors() Option {
	return func(m *Metrics) {
		m.runtime = true
	}
}

// Package metrics provides Prometheus counters for subdomain resolution.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// No subdomain values in labels: they come from untrusted input.

type Metrics struct {
	PathResolutions   *prometheus.CounterVec
	HeaderResolutions *prometheus.CounterVec
	Recovered         prometheus.Counter
}

// New creates the resolution counters and registers them on reg.
// A nil reg leaves them unregistered, which is what tests usually want.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PathResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "subdomain_router",
			Name:      "path_resolutions_total",
			Help:      "Total number of requests inspected by the path parser, by outcome.",
		}, []string{"outcome"}),
		HeaderResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "subdomain_router",
			Name:      "header_resolutions_total",
			Help:      "Total number of requests inspected by the forwarding header resolver, by outcome.",
		}, []string{"outcome"}),
		Recovered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "subdomain_router",
			Name:      "recovered_panics_total",
			Help:      "Total number of requests passed through unchanged after a panic during resolution.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.PathResolutions, m.HeaderResolutions, m.Recovered)
	}
	return m
}

func (m *Metrics) ObservePath(outcome string) {
	if m == nil {
		return
	}
	m.PathResolutions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveHeader(outcome string) {
	if m == nil {
		return
	}
	m.HeaderResolutions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveRecovered() {
	if m == nil {
		return
	}
	m.Recovered.Inc()
}

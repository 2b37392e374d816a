package conformance

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Result label values.
const (
	resultPassed   = "passed"
	resultFailed   = "failed"
	resultPanicked = "panicked"
)

type metrics struct {
	casesTotal   *prometheus.CounterVec
	caseDuration prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		casesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Help:      "Number of executed conformance cases",
				Name:      "cases_total",
				Namespace: "jsarray",
				Subsystem: "conformance",
			},
			[]string{"result"},
		),
		caseDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Help:      "Conformance case execution time",
				Name:      "case_duration_seconds",
				Namespace: "jsarray",
				Subsystem: "conformance",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
		),
	}
	if reg == nil {
		return m
	}
	m.casesTotal = register(reg, m.casesTotal)
	m.caseDuration = register(reg, m.caseDuration)
	return m
}

// register adds c to reg reusing the already registered collector if
// there is one, so that several runners can share a registry.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	err := reg.Register(c)
	if err == nil {
		return c
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing
		}
	}
	panic(err)
}

func (m *metrics) observe(result string, seconds float64) {
	m.casesTotal.WithLabelValues(result).Inc()
	m.caseDuration.Observe(seconds)
}

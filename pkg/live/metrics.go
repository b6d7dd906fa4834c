package live

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type liveMetrics struct {
	sessions prometheus.Gauge
	events   *prometheus.CounterVec
}

var (
	registeredMetrics   = make(map[*prometheus.Registry]*liveMetrics)
	registeredMetricsMu sync.Mutex
)

// metricsFor returns the collectors registered on reg, creating them on
// first use so servers may share a registry.
func metricsFor(reg *prometheus.Registry) *liveMetrics {
	registeredMetricsMu.Lock()
	defer registeredMetricsMu.Unlock()

	if m, ok := registeredMetrics[reg]; ok {
		return m
	}

	factory := promauto.With(reg)
	m := &liveMetrics{
		sessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "hyper",
			Subsystem: "live",
			Name:      "sessions",
			Help:      "Number of connected live sessions",
		}),
		events: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hyper",
			Subsystem: "live",
			Name:      "events_total",
			Help:      "Total number of client events by outcome",
		}, []string{"status"}),
	}
	registeredMetrics[reg] = m
	return m
}

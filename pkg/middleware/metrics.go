package middleware

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/hyper/pkg/hyper"
)

// MetricsConfig configures the Prometheus decorator.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "hyper").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for frame duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus decorator.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "hyper",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus collectors for one registry.
type metrics struct {
	framesTotal   *prometheus.CounterVec
	frameDuration prometheus.Histogram
	visitsTotal   *prometheus.CounterVec
	signalsTotal  *prometheus.CounterVec
}

// Collectors are created once per registry so that several renderers can
// share them.
var (
	registeredMetrics   = make(map[prometheus.Registerer]*metrics)
	registeredMetricsMu sync.Mutex
)

func metricsFor(config MetricsConfig) *metrics {
	registeredMetricsMu.Lock()
	defer registeredMetricsMu.Unlock()

	if m, ok := registeredMetrics[config.Registry]; ok {
		return m
	}
	m := initMetrics(config)
	registeredMetrics[config.Registry] = m
	return m
}

// initMetrics initializes the Prometheus metrics.
func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		framesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "frames_total",
			Help:        "Total number of frames rendered",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		frameDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "frame_duration_seconds",
			Help:        "Frame duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		visitsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "visits_total",
			Help:        "Total number of driver visits by node kind",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		signalsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "signals_total",
			Help:        "Total number of signals raised by drivers",
			ConstLabels: config.ConstLabels,
		}, []string{"signal"}),
	}
}

// Prometheus creates a decorator that collects Prometheus metrics per frame.
//
// Metrics collected:
//   - hyper_frames_total: Counter of frames by status (success, error)
//   - hyper_frame_duration_seconds: Histogram of frame duration
//   - hyper_visits_total: Counter of visits by node kind
//   - hyper_signals_total: Counter of signals raised by the driver
//
// Example:
//
//	factory := middleware.Prometheus(
//	    middleware.WithNamespace("myapp"),
//	)(render.Driver(render.Config{}))
//
//	// Expose metrics endpoint
//	http.Handle("/metrics", promhttp.Handler())
func Prometheus(opts ...MetricsOption) hyper.Decorator {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	m := metricsFor(config)

	return func(next hyper.Factory) hyper.Factory {
		return func(rerender hyper.RerenderFunc) hyper.Driver {
			notify := func(sig hyper.Signal) error {
				m.signalsTotal.WithLabelValues(sig.Kind.String()).Inc()
				return rerender(sig)
			}
			inner := next(notify)
			if inner == nil {
				return nil
			}
			ops := hyper.Delegate(inner)
			visit := ops.OnVisit
			if visit == nil {
				return inner
			}

			ops.OnVisit = func(tag string, props hyper.Props, kind hyper.NodeType, path hyper.Path) any {
				if kind != hyper.CollectionEnd {
					m.visitsTotal.WithLabelValues(kindLabel(kind)).Inc()
				}
				return visit(tag, props, kind, path)
			}

			var start time.Time
			receive := ops.OnReceive
			ops.OnReceive = func(sig hyper.Signal) {
				switch sig.Kind {
				case hyper.SignalFrameStart:
					start = time.Now()
				case hyper.SignalFrameEnd:
					m.frameDuration.Observe(time.Since(start).Seconds())
					status := "success"
					if err, ok := sig.Payload.(error); ok && err != nil {
						status = "error"
					}
					m.framesTotal.WithLabelValues(status).Inc()
				}
				if receive != nil {
					receive(sig)
				}
			}
			return ops
		}
	}
}

// kindLabel keeps label cardinality bounded: every driver-defined kind is
// reported as "special".
func kindLabel(kind hyper.NodeType) string {
	switch kind {
	case hyper.ElementNode:
		return "element"
	case hyper.TextNode:
		return "text"
	default:
		return "special"
	}
}

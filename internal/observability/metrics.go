package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "arca"

// Metrics holds the Prometheus collectors for the service.
type Metrics struct {
	AlertsDerived           *prometheus.CounterVec // labels: type
	AlertLog                *prometheus.CounterVec // labels: result={recorded,duplicate}
	GatewayRequests         *prometheus.CounterVec // labels: gateway, outcome={success,error,circuit_open}
	WeatherUnavailable      prometheus.Counter
	GeocodeCache            *prometheus.CounterVec // labels: result={hit,miss}
	WeatherCache            *prometheus.CounterVec // labels: result={hit,miss}
	SupportPointsRegistered prometheus.Counter
	AlertScanDuration       prometheus.Histogram
}

func newMetrics() *Metrics {
	return &Metrics{
		AlertsDerived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_derived_total",
			Help:      "Alerts produced from weather observations, by type.",
		}, []string{"type"}),
		AlertLog: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alert_log_total",
			Help:      "Alert log writes by result.",
		}, []string{"result"}),
		GatewayRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gateway_requests_total",
			Help:      "Outbound weather and geocoding requests by gateway and outcome.",
		}, []string{"gateway", "outcome"}),
		WeatherUnavailable: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "weather_unavailable_total",
			Help:      "Weather lookups that fell back to the default reading.",
		}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_cache_total",
			Help:      "Reverse geocoding cache lookups by result.",
		}, []string{"result"}),
		WeatherCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "weather_cache_total",
			Help:      "Weather cache lookups by result.",
		}, []string{"result"}),
		SupportPointsRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "support_points_registered_total",
			Help:      "Support points accepted for review.",
		}),
		AlertScanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "alert_scan_duration_seconds",
			Help:      "Duration of a scheduled alert scan over every user.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.AlertsDerived,
		m.AlertLog,
		m.GatewayRequests,
		m.WeatherUnavailable,
		m.GeocodeCache,
		m.WeatherCache,
		m.SupportPointsRegistered,
		m.AlertScanDuration,
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics registered with a fresh registry to
// avoid "already registered" panics when called from multiple tests.
func NewMetricsForTesting() (*Metrics, *prometheus.Registry) {
	m := newMetrics()
	reg := prometheus.NewRegistry()
	reg.MustRegister(m.collectors()...)
	return m, reg
}

// CacheObserver returns a hit/miss hook for a cache counter.
func CacheObserver(vec *prometheus.CounterVec) func(hit bool) {
	return func(hit bool) {
		if hit {
			vec.WithLabelValues("hit").Inc()
			return
		}
		vec.WithLabelValues("miss").Inc()
	}
}

// GatewayObserver records the outcome of one gateway call.
func (m *Metrics) GatewayObserver(gateway, outcome string) {
	m.GatewayRequests.WithLabelValues(gateway, outcome).Inc()
}

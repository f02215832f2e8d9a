package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the report service.
type Metrics struct {
	ReportsGenerated prometheus.Counter
	ReportFailures   prometheus.Counter

	// Outbound provider calls.
	ProviderRequests        *prometheus.CounterVec   // labels: provider, outcome={success,error}
	ProviderRequestDuration *prometheus.HistogramVec // labels: provider

	// Webhook deliveries.
	Deliveries *prometheus.CounterVec // labels: outcome={success,error}
}

// NewMetrics creates and registers all metrics with the default registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.ReportsGenerated,
		m.ReportFailures,
		m.ProviderRequests,
		m.ProviderRequestDuration,
		m.Deliveries,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ReportsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ridgecast",
			Name:      "reports_generated_total",
			Help:      "Total trail reports successfully composed.",
		}),
		ReportFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ridgecast",
			Name:      "report_failures_total",
			Help:      "Total report runs aborted by an error.",
		}),
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ridgecast",
			Name:      "provider_requests_total",
			Help:      "Forecast provider requests by provider and outcome.",
		}, []string{"provider", "outcome"}),
		ProviderRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ridgecast",
			Name:      "provider_request_duration_seconds",
			Help:      "Forecast provider request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider"}),
		Deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ridgecast",
			Name:      "webhook_deliveries_total",
			Help:      "Webhook deliveries by outcome.",
		}, []string{"outcome"}),
	}
}

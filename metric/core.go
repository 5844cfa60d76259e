package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains all platform-level metrics for the loading pipeline
type Metrics struct {
	LoadsTotal              *prometheus.CounterVec
	LoadDuration            *prometheus.HistogramVec
	InstantiationsTotal     *prometheus.CounterVec
	RegistrationsDiscovered *prometheus.GaugeVec
	ErrorsTotal             *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all platform metrics
func NewMetrics() *Metrics {
	return &Metrics{
		LoadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "factorykit",
				Subsystem: "loader",
				Name:      "loads_total",
				Help:      "Total number of factory load operations",
			},
			[]string{"factory_type", "status"},
		),

		LoadDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "factorykit",
				Subsystem: "loader",
				Name:      "duration_seconds",
				Help:      "Load operation duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		InstantiationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "factorykit",
				Subsystem: "factory",
				Name:      "instantiations_total",
				Help:      "Total number of factory instantiations",
			},
			[]string{"implementation", "status"},
		),

		RegistrationsDiscovered: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "factorykit",
				Subsystem: "loader",
				Name:      "registrations_discovered",
				Help:      "Number of implementation registrations discovered per factory type",
			},
			[]string{"factory_type"},
		),

		ErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "factorykit",
				Subsystem: "errors",
				Name:      "total",
				Help:      "Total number of errors",
			},
			[]string{"component", "class"},
		),
	}
}

// RecordLoad increments the load counter for a factory type
func (m *Metrics) RecordLoad(factoryType, status string) {
	m.LoadsTotal.WithLabelValues(factoryType, status).Inc()
}

// RecordLoadDuration records how long a load operation took
func (m *Metrics) RecordLoadDuration(operation string, duration time.Duration) {
	m.LoadDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordInstantiation increments the instantiation counter for an implementation
func (m *Metrics) RecordInstantiation(implementation, status string) {
	m.InstantiationsTotal.WithLabelValues(implementation, status).Inc()
}

// RecordRegistrations sets the discovered registration count for a factory type
func (m *Metrics) RecordRegistrations(factoryType string, count int) {
	m.RegistrationsDiscovered.WithLabelValues(factoryType).Set(float64(count))
}

// RecordError increments the error counter
func (m *Metrics) RecordError(component, class string) {
	m.ErrorsTotal.WithLabelValues(component, class).Inc()
}

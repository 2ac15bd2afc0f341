package registry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess  string = "success"
	outcomeNotFound string = "not_found"
	outcomeFailure  string = "failure"
)

type metrics struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)

	return &metrics{
		operationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "entity_registry_operations_total",
				Help: "Total number of entity operations by outcome",
			},
			[]string{"operation", "outcome"},
		),
		operationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "entity_registry_operation_duration_seconds",
				Help:    "Duration of entity operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

func (m *metrics) record(operation, outcome string, start time.Time) {
	m.operationsTotal.WithLabelValues(operation, outcome).Inc()
	m.operationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

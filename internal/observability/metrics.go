package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// dataset loader and API.
type Metrics struct {
	LoadsTotal    *prometheus.CounterVec   // labels: dataset, outcome={success,fetch_error,parse_error}
	LoadDuration  *prometheus.HistogramVec
	DatasetRows   *prometheus.GaugeVec     // current row/feature count per dataset
	DatasetsReady prometheus.Gauge         // number of datasets with at least one successful load

	ViewComputations  prometheus.Counter
	NotifierPublishes *prometheus.CounterVec // labels: outcome={success,error}
	NotifierEnabled   prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.LoadsTotal,
		m.LoadDuration,
		m.DatasetRows,
		m.DatasetsReady,
		m.ViewComputations,
		m.NotifierPublishes,
		m.NotifierEnabled,
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
		LoadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "caseboard",
			Name:      "dataset_loads_total",
			Help:      "Dataset load attempts by dataset and outcome.",
		}, []string{"dataset", "outcome"}),
		LoadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "caseboard",
			Name:      "dataset_load_duration_seconds",
			Help:      "Duration of one fetch-and-parse cycle per dataset.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"dataset"}),
		DatasetRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "caseboard",
			Name:      "dataset_rows",
			Help:      "Rows or features in the current snapshot per dataset.",
		}, []string{"dataset"}),
		DatasetsReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "caseboard",
			Name:      "datasets_ready",
			Help:      "Number of datasets that have loaded successfully at least once.",
		}),
		ViewComputations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "caseboard",
			Name:      "view_computations_total",
			Help:      "Total map view bound computations.",
		}),
		NotifierPublishes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "caseboard",
			Name:      "notifier_publishes_total",
			Help:      "Refresh notification publishes by outcome.",
		}, []string{"outcome"}),
		NotifierEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "caseboard",
			Name:      "notifier_enabled",
			Help:      "1 when Kafka refresh notifications are enabled, 0 otherwise.",
		}),
	}
}

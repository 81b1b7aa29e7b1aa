package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// climate anomaly pipeline.
type Metrics struct {
	PipelineRunning prometheus.Gauge
	RunDuration     prometheus.Histogram

	// Retrieval metrics.
	FetchRequests *prometheus.CounterVec   // labels: region, outcome={success,error}
	FetchRetries  *prometheus.CounterVec   // labels: region
	FetchDuration *prometheus.HistogramVec // labels: region

	// Transform metrics.
	ObservationsReshaped  *prometheus.CounterVec // labels: region
	RecordsFiltered       *prometheus.CounterVec // labels: region (pre-1900 rows dropped)
	UnclassifiedPeriods   prometheus.Counter
	UnclassifiedAnomalies prometheus.Counter
	RecordsLoaded         *prometheus.CounterVec // labels: table={global,hemisphere}
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.PipelineRunning,
		m.RunDuration,
		m.FetchRequests,
		m.FetchRetries,
		m.FetchDuration,
		m.ObservationsReshaped,
		m.RecordsFiltered,
		m.UnclassifiedPeriods,
		m.UnclassifiedAnomalies,
		m.RecordsLoaded,
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
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "climate_etl",
			Name:      "pipeline_running",
			Help:      "1 while a batch run is in progress, 0 otherwise.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "climate_etl",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete fetch-transform-load run.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_etl",
			Name:      "fetch_requests_total",
			Help:      "Region table fetches by region and outcome.",
		}, []string{"region", "outcome"}),
		FetchRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_etl",
			Name:      "fetch_retries_total",
			Help:      "Fetch attempts retried after a transient failure.",
		}, []string{"region"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "climate_etl",
			Name:      "fetch_duration_seconds",
			Help:      "Region table download and parse duration.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"region"}),
		ObservationsReshaped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_etl",
			Name:      "observations_reshaped_total",
			Help:      "Long-form observations emitted by the reshaper.",
		}, []string{"region"}),
		RecordsFiltered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_etl",
			Name:      "records_filtered_total",
			Help:      "Observations dropped by the pre-1900 year filter.",
		}, []string{"region"}),
		UnclassifiedPeriods: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climate_etl",
			Name:      "unclassified_periods_total",
			Help:      "Records whose year falls past the last climate period.",
		}),
		UnclassifiedAnomalies: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climate_etl",
			Name:      "unclassified_anomalies_total",
			Help:      "Records whose anomaly exceeds the top category bound.",
		}),
		RecordsLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_etl",
			Name:      "records_loaded_total",
			Help:      "Output records handed to the sinks by table.",
		}, []string{"table"}),
	}
}

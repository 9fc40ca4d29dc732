package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// report generation pipeline.
type Metrics struct {
	RowsRead      prometheus.Counter
	RowsRejected  *prometheus.CounterVec // label: reason={locality,schedule,company,product,price}
	RowsValidated prometheus.Counter

	StationRecords  prometheus.Gauge
	ReportRows      prometheus.Gauge
	PipelineRunning prometheus.Gauge

	Refreshes       *prometheus.CounterVec // label: outcome={success,error}
	RefreshDuration prometheus.Histogram
	LastRefreshTime prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fuel_etl",
			Name:      "rows_read_total",
			Help:      "Total CSV data rows read from the dataset.",
		}),
		RowsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fuel_etl",
			Name:      "rows_rejected_total",
			Help:      "Rows dropped by the row filter, by reason.",
		}, []string{"reason"}),
		RowsValidated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fuel_etl",
			Name:      "rows_validated_total",
			Help:      "Rows that passed every filter predicate.",
		}),
		StationRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fuel_etl",
			Name:      "station_records",
			Help:      "Latest-price records per station and product after deduplication.",
		}),
		ReportRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fuel_etl",
			Name:      "report_rows",
			Help:      "Labeled MIN/MAX rows in the last published report.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fuel_etl",
			Name:      "pipeline_running",
			Help:      "1 while a report generation run is in progress.",
		}),
		Refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fuel_etl",
			Name:      "refreshes_total",
			Help:      "Report generation runs by outcome.",
		}, []string{"outcome"}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fuel_etl",
			Name:      "refresh_duration_seconds",
			Help:      "Duration of a complete fetch-filter-aggregate-publish run.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		LastRefreshTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fuel_etl",
			Name:      "last_refresh_timestamp_seconds",
			Help:      "Unix time of the last successfully published report.",
		}),
	}

	prometheus.MustRegister(
		m.RowsRead,
		m.RowsRejected,
		m.RowsValidated,
		m.StationRecords,
		m.ReportRows,
		m.PipelineRunning,
		m.Refreshes,
		m.RefreshDuration,
		m.LastRefreshTime,
	)

	return m
}

// NewMetricsForTesting creates Metrics with an unregistered set to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RowsRead:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "fuel_etl", Name: "rows_read_total"}),
		RowsRejected:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "fuel_etl", Name: "rows_rejected_total"}, []string{"reason"}),
		RowsValidated:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "fuel_etl", Name: "rows_validated_total"}),
		StationRecords:  prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "fuel_etl", Name: "station_records"}),
		ReportRows:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "fuel_etl", Name: "report_rows"}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "fuel_etl", Name: "pipeline_running"}),
		Refreshes:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "fuel_etl", Name: "refreshes_total"}, []string{"outcome"}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "fuel_etl", Name: "refresh_duration_seconds"}),
		LastRefreshTime: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "fuel_etl", Name: "last_refresh_timestamp_seconds"}),
	}
}

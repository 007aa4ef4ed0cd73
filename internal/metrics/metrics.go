package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics registry operation counters
type Metrics struct {
	registry *prometheus.Registry

	Inserts         prometheus.Counter
	InsertRejects   *prometheus.CounterVec
	Imports         *prometheus.CounterVec
	ImportedRecords prometheus.Gauge
	Exports         *prometheus.CounterVec
	Searches        prometheus.Counter
}

// New registers the collectors on a private registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Inserts: f.NewCounter(prometheus.CounterOpts{
			Name: "kpiawards_records_inserted_total",
			Help: "Award records inserted through manual entry.",
		}),
		InsertRejects: f.NewCounterVec(prometheus.CounterOpts{
			Name: "kpiawards_insert_rejections_total",
			Help: "Manual inserts rejected, by reason.",
		}, []string{"reason"}),
		Imports: f.NewCounterVec(prometheus.CounterOpts{
			Name: "kpiawards_imports_total",
			Help: "Spreadsheet imports, by status.",
		}, []string{"status"}),
		ImportedRecords: f.NewGauge(prometheus.GaugeOpts{
			Name: "kpiawards_last_import_records",
			Help: "Records written by the last successful import.",
		}),
		Exports: f.NewCounterVec(prometheus.CounterOpts{
			Name: "kpiawards_exports_total",
			Help: "Spreadsheet exports, by format and status.",
		}, []string{"format", "status"}),
		Searches: f.NewCounter(prometheus.CounterOpts{
			Name: "kpiawards_searches_total",
			Help: "Record searches served.",
		}),
	}
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry underlying registry (tests)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

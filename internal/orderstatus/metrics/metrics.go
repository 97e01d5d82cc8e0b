package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	Lookups           *prometheus.CounterVec
	LookupLatencySec  prometheus.Histogram
	Classified        *prometheus.CounterVec
	EnrichmentFailed  prometheus.Counter
	ExportsWritten    prometheus.Counter
	HTTPRequests      *prometheus.CounterVec
	HTTPLatencySec    *prometheus.HistogramVec
	SupplierRowsTotal prometheus.Counter
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	lookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orderstatus_legacy_lookups_total",
		Help: "Legacy status lookups by outcome.",
	}, []string{"outcome"})
	lookupLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "orderstatus_legacy_lookup_seconds",
		Buckets: prometheus.DefBuckets,
	})
	classified := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orderstatus_classified_total",
		Help: "Preliminary statuses assigned by the classifier.",
	}, []string{"status"})
	enrichmentFailed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orderstatus_enrichment_failed_total",
		Help: "Enrichment lookups that failed and kept the preliminary status.",
	})
	exportsWritten := prometheus.NewCounter(prometheus.CounterOpts{Name: "orderstatus_exports_written_total"})
	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orderstatus_http_requests_total",
	}, []string{"route", "code"})
	httpLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "orderstatus_http_request_seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	supplierRows := prometheus.NewCounter(prometheus.CounterOpts{Name: "orderstatus_supplier_rows_total"})

	r.MustRegister(
		lookups,
		lookupLatency,
		classified,
		enrichmentFailed,
		exportsWritten,
		httpRequests,
		httpLatency,
		supplierRows,
	)
	return &Registry{
		reg:               r,
		Lookups:           lookups,
		LookupLatencySec:  lookupLatency,
		Classified:        classified,
		EnrichmentFailed:  enrichmentFailed,
		ExportsWritten:    exportsWritten,
		HTTPRequests:      httpRequests,
		HTTPLatencySec:    httpLatency,
		SupplierRowsTotal: supplierRows,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }

func (r *Registry) ObserveLookup(outcome string, elapsed time.Duration) {
	r.Lookups.WithLabelValues(outcome).Inc()
	r.LookupLatencySec.Observe(elapsed.Seconds())
}

func (r *Registry) ObserveClassified(status string) {
	r.Classified.WithLabelValues(status).Inc()
}

func (r *Registry) ObserveEnrichmentFailure() {
	r.EnrichmentFailed.Inc()
}

func (r *Registry) ObserveExport() {
	r.ExportsWritten.Inc()
}

func (r *Registry) ObserveSupplierRows(n int) {
	r.SupplierRowsTotal.Add(float64(n))
}

func (r *Registry) ObserveRequest(route string, code int, elapsed time.Duration) {
	r.HTTPRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	r.HTTPLatencySec.WithLabelValues(route).Observe(elapsed.Seconds())
}

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/eventkit/pkg/validator"
)

// Config holds metric naming.
type Config struct {
	Namespace string `env:"METRICS_NAMESPACE" envDefault:"eventkit"`
	Subsystem string `env:"METRICS_SUBSYSTEM"`
}

const (
	resultValid   = "valid"
	resultInvalid = "invalid"
	resultOK      = "ok"
	resultError   = "error"
)

// Collector records metrics into its registry.
type Collector struct {
	registry *prometheus.Registry

	validations        *prometheus.CounterVec
	validationDuration *prometheus.HistogramVec
	ruleFailures       *prometheus.CounterVec
	expansions         *prometheus.CounterVec
	occurrences        prometheus.Histogram
	taxonomyReloads    *prometheus.CounterVec
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

// New creates the collector and registers every metric with registry.
// A nil registry gets a fresh one.
func New(cfg Config, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "eventkit"
	}

	c := &Collector{
		registry: registry,
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "validations_total",
			Help:      "Number of records validated, by intent and result.",
		}, []string{"intent", "result"}),
		validationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "validation_duration_seconds",
			Help:      "Time spent validating one record.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to 2.6s
		}, []string{"intent"}),
		ruleFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "rule_failures_total",
			Help:      "Number of failed rule checks, by intent and rule.",
		}, []string{"intent", "rule"}),
		expansions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "recurrence_expansions_total",
			Help:      "Number of recurrence expansions, by result.",
		}, []string{"result"}),
		occurrences: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "recurrence_occurrences",
			Help:      "Occurrences produced by one expansion.",
			Buckets:   []float64{1, 2, 5, 10, 20, 35, 50, 65, 100, 500, 1000},
		}),
		taxonomyReloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "taxonomy_reloads_total",
			Help:      "Keyword taxonomy reloads, by source and result.",
		}, []string{"source", "result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "http_requests_total",
			Help:      "HTTP requests, by method, route and status code.",
		}, []string{"method", "route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}

	registry.MustRegister(
		c.validations,
		c.validationDuration,
		c.ruleFailures,
		c.expansions,
		c.occurrences,
		c.taxonomyReloads,
		c.httpRequests,
		c.httpDuration,
	)
	return c
}

// Registry returns the registry the collector writes to.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// ObserveValidation records one validation and every rule that failed in it.
func (c *Collector) ObserveValidation(intent validator.Intent, errs validator.ErrorMap, d time.Duration) {
	if c == nil {
		return
	}
	result := resultValid
	if !errs.IsEmpty() {
		result = resultInvalid
	}
	c.validations.WithLabelValues(string(intent), result).Inc()
	c.validationDuration.WithLabelValues(string(intent)).Observe(d.Seconds())
	for _, v := range errs.Flatten() {
		c.ruleFailures.WithLabelValues(string(intent), string(v.Rule)).Inc()
	}
}

// ObserveExpansion records a recurrence expansion that produced n
// occurrences, or failed with err.
func (c *Collector) ObserveExpansion(n int, err error) {
	if c == nil {
		return
	}
	if err != nil {
		c.expansions.WithLabelValues(resultError).Inc()
		return
	}
	c.expansions.WithLabelValues(resultOK).Inc()
	c.occurrences.Observe(float64(n))
}

// ObserveTaxonomyReload records a taxonomy load from source ("file", "redis").
func (c *Collector) ObserveTaxonomyReload(source string, err error) {
	if c == nil {
		return
	}
	result := resultOK
	if err != nil {
		result = resultError
	}
	c.taxonomyReloads.WithLabelValues(source, result).Inc()
}

// Middleware records request counts and latency labelled by the matched
// chi route pattern, so path parameters do not create new series.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	if c == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		c.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		c.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}

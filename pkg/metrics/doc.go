// Package metrics exposes Prometheus metrics for validations, recurrence
// expansion, taxonomy reloads and the HTTP API.
//
// All metrics live in a registry owned by the caller, so tests and
// multiple servers in one process never collide:
//
//	reg := prometheus.NewRegistry()
//	m := metrics.New(metrics.Config{Namespace: "eventkit"}, reg)
//	router.Use(m.Middleware)
//	router.Handle("/metrics", m.Handler())
//
// Rule failures are labelled by rule name. The rule vocabulary is closed,
// which keeps label cardinality bounded. A nil *Collector records nothing.
package metrics

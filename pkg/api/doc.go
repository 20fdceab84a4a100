// Package api serves the validation engine over HTTP.
//
// Routes:
//
//	POST /v1/validate             validate an editor or wire record
//	POST /v1/recurrences          expand a recurring-event form into sub-events
//	GET  /v1/rules                list the rule vocabulary
//	GET  /v1/rules/{intent}       dump the rule table of an intent
//	GET  /v1/messages/{lang}      message bundle of a language
//	GET  /healthz, /readyz        liveness and readiness
//	GET  /metrics                 Prometheus metrics
//
// Handlers are typed: a HandlerFunc receives the decoded and validated
// request value and returns a Response. Wrap adapts it to net/http.
//
//	srv, err := api.New(
//		api.WithTaxonomy(store),
//		api.WithMetrics(collector),
//		api.WithLogger(log),
//	)
//	if err != nil {
//		return err
//	}
//	return httpserver.New(cfg, log).Run(ctx, srv.Handler())
//
// A validation that finds problems is a successful request: the response
// is 200 with "valid": false and the error map.
package api

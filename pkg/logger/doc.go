// Package logger builds *slog.Logger values for eventkit services and
// provides attribute helpers for the fields validation logs carry.
//
// New takes functional options:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.AppEnv, cfg.ServiceName),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//
// WithEnvironment selects text output at debug level for development and
// json at info level for staging and production. Context extractors run on
// every record handled through the *Context methods, so a request id stored
// by middleware appears on all log lines of that request.
//
// Attribute helpers such as Intent, Field, Rule and FailureCount keep key
// names consistent between the HTTP API, the CLI and the taxonomy watcher.
// Helpers for optional values (Error, RequestID) return an empty slog.Attr
// for a zero input, which slog drops.
package logger

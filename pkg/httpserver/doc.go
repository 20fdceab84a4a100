// Package httpserver runs the eventkit HTTP API with graceful shutdown and
// provides liveness and readiness handlers for orchestrators.
package httpserver

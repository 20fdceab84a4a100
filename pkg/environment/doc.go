// Package environment resolves the APP_ENV value and carries it through
// request contexts so handlers and log records can see which stage served
// them.
package environment

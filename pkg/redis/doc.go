// Package redis connects to the optional Redis instance eventkit uses to
// share the keyword taxonomy between service replicas.
package redis

// Package cache provides a small thread-safe LRU used to memoise pure
// lookups, such as Accept-Language negotiation, whose inputs repeat.
package cache

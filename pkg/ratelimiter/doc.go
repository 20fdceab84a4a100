// Package ratelimiter implements per-key token buckets for the HTTP API.
//
// A Bucket holds Capacity tokens and regains RefillRate tokens every
// RefillInterval. Each request takes one; a request that finds too few is
// refused and takes nothing. State lives in a Store: MemoryStore for a
// single instance, RedisStore when replicas must share one budget per
// client.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//	bucket, err := ratelimiter.NewBucket(store, cfg)
//	res, err := bucket.Allow(ctx, clientip.FromContext(ctx))
//	if !res.Allowed() { ... }
package ratelimiter

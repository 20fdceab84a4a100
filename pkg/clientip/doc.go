// Package clientip resolves the address of the client that sent a request.
//
// Proxy headers are only believed when the deployment says so: a Resolver
// built without headers uses the TCP peer address alone. With trusted
// headers such as X-Forwarded-For they are consulted in order and the first
// valid address wins, falling back to the peer address.
//
//	res := clientip.New("X-Forwarded-For", "X-Real-IP")
//	r.Use(clientip.Middleware(res))
//	...
//	ip := clientip.FromContext(r.Context())
//
// The resolved address keys per-client rate limits and is attached to
// request logs through LoggerExtractor.
package clientip

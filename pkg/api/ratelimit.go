package api

import (
	"net/http"

	"github.com/dmitrymomot/eventkit/pkg/clientip"
	"github.com/dmitrymomot/eventkit/pkg/logger"
)

// rateLimit spends one token of the client's bucket per request. A failing
// store lets the request through.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	if s.limiter == nil {
		return next
	}
	onError := ErrorWriter(s.log)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientip.FromContext(r.Context())
		if key == "" {
			key = s.clientIP.Resolve(r)
		}

		res, err := s.limiter.Allow(r.Context(), key)
		if err != nil {
			s.log.WarnContext(r.Context(), "rate limit check failed", logger.Error(err), logger.Component("api"))
			next.ServeHTTP(w, r)
			return
		}

		res.SetHeaders(w.Header())
		if !res.Allowed() {
			onError(newContext(w, r), ErrTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

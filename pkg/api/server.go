package api

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/eventkit/pkg/clientip"
	"github.com/dmitrymomot/eventkit/pkg/editor"
	"github.com/dmitrymomot/eventkit/pkg/httpserver"
	"github.com/dmitrymomot/eventkit/pkg/i18n"
	"github.com/dmitrymomot/eventkit/pkg/keywordset"
	"github.com/dmitrymomot/eventkit/pkg/logger"
	"github.com/dmitrymomot/eventkit/pkg/metrics"
	"github.com/dmitrymomot/eventkit/pkg/ratelimiter"
	"github.com/dmitrymomot/eventkit/pkg/requestid"
	"github.com/dmitrymomot/eventkit/pkg/validator"
)

// DefaultLanguages are the content languages assumed when a request names none.
var DefaultLanguages = []string{"fi", "sv", "en"}

// DefaultMaxBodySize bounds request bodies.
const DefaultMaxBodySize int64 = 4 << 20

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	validator   *validator.Validator
	taxonomy    editor.TaxonomySource
	translator  *i18n.Translator
	metrics     *metrics.Collector
	clientIP    *clientip.Resolver
	limiter     *ratelimiter.Bucket
	log         *slog.Logger
	languages   []string
	checks      []httpserver.Check
	maxBodySize int64
}

// Option configures a Server.
type Option func(*Server)

func WithValidator(v *validator.Validator) Option {
	return func(s *Server) {
		if v != nil {
			s.validator = v
		}
	}
}

// WithTaxonomy sets the keyword taxonomy source; *keywordset.Store fits.
func WithTaxonomy(src editor.TaxonomySource) Option {
	return func(s *Server) {
		if src != nil {
			s.taxonomy = src
		}
	}
}

func WithTranslator(t *i18n.Translator) Option {
	return func(s *Server) {
		if t != nil {
			s.translator = t
		}
	}
}

func WithMetrics(m *metrics.Collector) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithClientIP sets how client addresses are resolved. Without it only
// the TCP peer address is used.
func WithClientIP(res *clientip.Resolver) Option {
	return func(s *Server) {
		s.clientIP = res
	}
}

// WithRateLimiter limits /v1 requests per client address.
func WithRateLimiter(b *ratelimiter.Bucket) Option {
	return func(s *Server) {
		s.limiter = b
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithLanguages sets the default content languages.
func WithLanguages(langs ...string) Option {
	return func(s *Server) {
		if len(langs) > 0 {
			s.languages = slices.Clone(langs)
		}
	}
}

// WithReadinessChecks adds dependencies reported by /readyz.
func WithReadinessChecks(checks ...httpserver.Check) Option {
	return func(s *Server) {
		s.checks = append(s.checks, checks...)
	}
}

func WithMaxBodySize(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodySize = n
		}
	}
}

// New builds a Server. Without WithTranslator it loads the embedded
// message bundles, which is the only way it can fail.
func New(opts ...Option) (*Server, error) {
	s := &Server{
		validator:   validator.New(),
		taxonomy:    keywordset.NewStore(nil),
		log:         logger.Discard(),
		languages:   DefaultLanguages,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.translator == nil {
		t, err := i18n.New(i18n.WithLogger(s.log))
		if err != nil {
			return nil, err
		}
		s.translator = t
	}
	return s, nil
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.Middleware(s.clientIP),
		middleware.Recoverer,
		s.metrics.Middleware,
		s.accessLog,
		i18n.Middleware(s.translator),
	)

	r.Get("/healthz", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(s.log, s.checks...))
	r.Handle("/metrics", s.metrics.Handler())

	onError := ErrorWriter(s.log)
	jsonBody := BindJSON(s.maxBodySize)
	path := BindPath(chi.URLParam)

	r.Route("/v1", func(r chi.Router) {
		r.Use(s.rateLimit)
		r.Post("/validate", Wrap[validateRequest](s.validate, onError, jsonBody, Validate()))
		r.Post("/recurrences", Wrap[expandRequest](s.expand, onError, jsonBody, Validate()))
		r.Get("/rules", Wrap[struct{}](s.listRules, onError))
		r.Get("/rules/{intent}", Wrap[ruleTableRequest](s.ruleTable, onError, path, Validate()))
		r.Get("/messages/{lang}", Wrap[messagesRequest](s.messages, onError, path, Validate()))
	})

	return r
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.LogAttrs(r.Context(), slog.LevelDebug, "request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Int("bytes", ww.BytesWritten()),
			logger.Duration(time.Since(start)),
			logger.Component("api"),
		)
	})
}

package main

import (
	"github.com/dmitrymomot/eventkit/pkg/httpserver"
	"github.com/dmitrymomot/eventkit/pkg/metrics"
	"github.com/dmitrymomot/eventkit/pkg/ratelimiter"
	"github.com/dmitrymomot/eventkit/pkg/redis"
)

// Config is the process configuration, read from the environment.
type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"development"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"eventkit"`
	LogLevel    string `env:"LOG_LEVEL" validate:"omitempty,oneof=debug info warn warning error"`

	HTTP      httpserver.Config
	Redis     redis.Config
	Metrics   metrics.Config
	RateLimit ratelimiter.Config

	// Proxy headers believed for the client address, in priority order.
	TrustedIPHeaders []string `env:"TRUSTED_IP_HEADERS" envSeparator:","`

	TaxonomyFile     string `env:"KEYWORD_TAXONOMY_FILE"`
	TaxonomyRedisKey string `env:"KEYWORD_TAXONOMY_REDIS_KEY"`
	TaxonomyRefresh  string `env:"KEYWORD_TAXONOMY_REFRESH" envDefault:"@every 5m"`

	Languages                []string `env:"CONTENT_LANGUAGES" envDefault:"fi,sv,en" envSeparator:"," validate:"min=1,dive,bcp47_language_tag"`
	OfferExemptOrganizations []string `env:"OFFER_EXEMPT_ORGANIZATIONS" envDefault:"ahjo:u480400" envSeparator:","`

	MessagesDir string `env:"MESSAGES_DIR"`
	MaxBodySize int64  `env:"MAX_BODY_SIZE" envDefault:"4194304" validate:"gt=0"`
}

package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var (
	defaultEnvOnce sync.Once
	validate       = validator.New(validator.WithRequiredStructEnabled())
)

// Option configures a single Load call.
type Option func(*options)

type options struct {
	envFiles    []string
	environment map[string]string
	prefix      string
}

// WithEnvFiles loads the given dotenv files instead of ./.env. Missing files
// are an error; variables already set in the process win.
func WithEnvFiles(paths ...string) Option {
	return func(o *options) { o.envFiles = append(o.envFiles, paths...) }
}

// WithEnvironment parses from the given map instead of the process
// environment. No dotenv file is read.
func WithEnvironment(vars map[string]string) Option {
	return func(o *options) { o.environment = vars }
}

// WithPrefix prepends prefix to every env tag.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// Load fills v from environment variables according to its `env` tags and
// then checks its `validate` tags.
//
//	type Config struct {
//		Addr     string   `env:"HTTP_ADDR" envDefault:":8080"`
//		Langs    []string `env:"CONTENT_LANGUAGES" envDefault:"fi,sv,en" validate:"min=1,dive,len=2"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil { ... }
//
// Without WithEnvFiles or WithEnvironment an optional ./.env is read once per
// process.
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	envOpts := env.Options{Prefix: o.prefix}
	switch {
	case o.environment != nil:
		envOpts.Environment = o.environment
	case len(o.envFiles) > 0:
		for _, p := range o.envFiles {
			if _, err := os.Stat(p); err != nil {
				return errors.Join(ErrLoadingEnvFile, err)
			}
		}
		if err := godotenv.Load(o.envFiles...); err != nil {
			return errors.Join(ErrLoadingEnvFile, err)
		}
	default:
		defaultEnvOnce.Do(func() {
			// .env is optional
			_ = godotenv.Load()
		})
	}

	if err := env.ParseWithOptions(v, envOpts); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	if err := validate.Struct(v); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			// not a struct; nothing to validate
			return nil
		}
		return errors.Join(ErrInvalidConfig, err)
	}
	return nil
}

// MustLoad is Load for configuration the process cannot start without.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

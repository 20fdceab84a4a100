// Package config loads typed configuration from environment variables.
//
// Structs declare their variables with caarlos0/env tags and their
// constraints with go-playground/validator tags. Load applies both, so a
// process either starts with a usable configuration or fails with an error
// wrapping ErrParsingConfig or ErrInvalidConfig.
package config

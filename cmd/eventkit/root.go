package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/eventkit/pkg/clientip"
	"github.com/dmitrymomot/eventkit/pkg/config"
	"github.com/dmitrymomot/eventkit/pkg/environment"
	"github.com/dmitrymomot/eventkit/pkg/logger"
	"github.com/dmitrymomot/eventkit/pkg/requestid"
)

var (
	// Global flags
	envFile string

	settings Config
	appLog   = logger.Discard()
)

var rootCmd = &cobra.Command{
	Use:   "eventkit",
	Short: "Event record validation engine",
	Long: `Eventkit validates event records the way the event editor does before a
draft is saved or an event is published.

Records are checked field by field against a rule table chosen by intent
(draft or public). Failures are reported as a map from field path to the
names of the rules that failed, optionally rendered as messages in fi, sv
or en.`,
	Version:           Version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load before reading the environment")
}

func setup(cmd *cobra.Command, _ []string) error {
	var opts []config.Option
	if envFile != "" {
		opts = append(opts, config.WithEnvFiles(envFile))
	}
	if err := config.Load(&settings, opts...); err != nil {
		return err
	}
	appLog = newLogger(settings, cmd.ErrOrStderr())
	logger.SetAsDefault(appLog)
	return nil
}

func newLogger(cfg Config, w io.Writer) *slog.Logger {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.AppEnv, cfg.ServiceName),
		logger.WithOutput(w),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
			environment.LoggerExtractor(),
		),
	}
	if cfg.LogLevel != "" {
		if lvl, ok := logger.ParseLevel(cfg.LogLevel); ok {
			opts = append(opts, logger.WithLevel(lvl))
		}
	}
	return logger.New(opts...)
}

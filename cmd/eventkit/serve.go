package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/eventkit/pkg/api"
	"github.com/dmitrymomot/eventkit/pkg/clientip"
	"github.com/dmitrymomot/eventkit/pkg/environment"
	"github.com/dmitrymomot/eventkit/pkg/httpserver"
	"github.com/dmitrymomot/eventkit/pkg/keywordset"
	"github.com/dmitrymomot/eventkit/pkg/logger"
	"github.com/dmitrymomot/eventkit/pkg/metrics"
	"github.com/dmitrymomot/eventkit/pkg/ratelimiter"
	"github.com/dmitrymomot/eventkit/pkg/redis"
)

var serveFlags struct {
	addr string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the validation HTTP API",
	Long: `Run the HTTP API until SIGINT or SIGTERM.

The keyword taxonomy comes from KEYWORD_TAXONOMY_FILE, which is watched and
reloaded on change, and from redis when REDIS_URL is set. With both, the
file is authoritative and every load is mirrored to redis so that replicas
without the file see the same keywords. With redis only, the taxonomy is
refreshed on the KEYWORD_TAXONOMY_REFRESH schedule.

Examples:
  # Listen on the default address with a local taxonomy
  KEYWORD_TAXONOMY_FILE=keywords.yaml eventkit serve

  # Override the listen address
  eventkit serve --addr :9090`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var errNoTaxonomy = errors.New("keyword taxonomy not loaded")

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveFlags.addr, "addr", "", "override HTTP_ADDR")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := settings
	if serveFlags.addr != "" {
		cfg.HTTP.Addr = serveFlags.addr
	}
	log := appLog

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.New(cfg.Metrics, registry)

	store := keywordset.NewStore(nil)

	var (
		checks  []httpserver.Check
		mirror  *keywordset.RedisSource
		limitDB ratelimiter.Store
	)
	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()
		limitDB = ratelimiter.NewRedisStore(client, "")
		checks = append(checks, httpserver.Check{Name: "redis", Func: redis.Healthcheck(client)})
		mirror = keywordset.NewRedisSource(client, cfg.TaxonomyRedisKey, 0)
	}

	taxonomyCheck := httpserver.Check{Name: "taxonomy", Func: taxonomyLoaded(store)}
	switch {
	case cfg.TaxonomyFile != "":
		checks = append(checks, taxonomyCheck)
		if err := watchTaxonomy(ctx, cfg.TaxonomyFile, store, mirror, collector, log); err != nil {
			return err
		}
	case mirror != nil:
		checks = append(checks, taxonomyCheck)
		sched := keywordset.NewScheduler(mirror, store,
			keywordset.WithSchedulerLogger(log),
			keywordset.WithRefreshHook(func(err error) { collector.ObserveTaxonomyReload("redis", err) }),
		)
		if err := sched.Refresh(ctx); err != nil {
			log.WarnContext(ctx, "initial taxonomy refresh failed", logger.Component("cli"), logger.Error(err))
		}
		if err := sched.Start(ctx, cfg.TaxonomyRefresh); err != nil {
			return err
		}
		defer sched.Stop()
	default:
		log.WarnContext(ctx, "no keyword taxonomy configured, category rules will fail", logger.Component("cli"))
	}

	translator, err := newTranslator(cfg, log)
	if err != nil {
		return err
	}

	opts := []api.Option{
		api.WithValidator(newValidator(cfg)),
		api.WithTaxonomy(store),
		api.WithTranslator(translator),
		api.WithMetrics(collector),
		api.WithLogger(log),
		api.WithLanguages(cfg.Languages...),
		api.WithReadinessChecks(checks...),
		api.WithMaxBodySize(cfg.MaxBodySize),
		api.WithClientIP(clientip.New(cfg.TrustedIPHeaders...)),
	}
	if cfg.RateLimit.Enabled() {
		if limitDB == nil {
			mem := ratelimiter.NewMemoryStore()
			defer mem.Close()
			limitDB = mem
		}
		limiter, err := ratelimiter.NewBucket(limitDB, cfg.RateLimit)
		if err != nil {
			return err
		}
		opts = append(opts, api.WithRateLimiter(limiter))
	}

	srv, err := api.New(opts...)
	if err != nil {
		return err
	}

	handler := environment.Middleware(environment.Parse(cfg.AppEnv))(srv.Handler())
	return httpserver.New(cfg.HTTP, log).Run(ctx, handler)
}

// watchTaxonomy loads path into store and keeps it current. Every
// successful load is copied to mirror when one is given.
func watchTaxonomy(ctx context.Context, path string, store *keywordset.Store, mirror *keywordset.RedisSource, m *metrics.Collector, log *slog.Logger) error {
	loaded := func(err error) {
		m.ObserveTaxonomyReload("file", err)
		if err != nil || mirror == nil {
			return
		}
		if err := mirror.Save(ctx, store.Get()); err != nil {
			log.ErrorContext(ctx, "taxonomy mirror failed", logger.Component("cli"), logger.Error(err))
		}
	}

	w := keywordset.NewWatcher(path, store,
		keywordset.WithLogger(log),
		keywordset.WithReloadHook(loaded),
	)
	err := w.Reload()
	loaded(err)
	if err != nil {
		return err
	}

	go func() {
		if err := w.Watch(ctx); err != nil {
			log.ErrorContext(ctx, "taxonomy watcher stopped", logger.Component("cli"), logger.Error(err))
		}
	}()
	return nil
}

func taxonomyLoaded(store *keywordset.Store) func(context.Context) error {
	return func(context.Context) error {
		if len(store.Get()) == 0 {
			return errNoTaxonomy
		}
		return nil
	}
}

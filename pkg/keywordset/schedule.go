package keywordset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/dmitrymomot/eventkit/pkg/logger"
)

// Loader reads a taxonomy from somewhere; RedisSource is one.
type Loader interface {
	Load(ctx context.Context) (Taxonomy, error)
}

// Scheduler refreshes a Store from a Loader on a cron schedule, for
// sources that cannot notify about changes.
type Scheduler struct {
	loader Loader
	store  *Store
	log    *slog.Logger
	hook   func(error)

	mu      sync.Mutex
	cron    *cron.Cron
	running bool
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithSchedulerLogger sets the scheduler's logger.
func WithSchedulerLogger(l *slog.Logger) SchedulerOption {
	return func(s *Scheduler) {
		if l != nil {
			s.log = l
		}
	}
}

// WithRefreshHook is called after every refresh with its result.
func WithRefreshHook(fn func(error)) SchedulerOption {
	return func(s *Scheduler) {
		s.hook = fn
	}
}

// NewScheduler creates a scheduler writing into store.
func NewScheduler(loader Loader, store *Store, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		loader: loader,
		store:  store,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Refresh loads once. A failed load keeps the current taxonomy.
func (s *Scheduler) Refresh(ctx context.Context) error {
	t, err := s.loader.Load(ctx)
	if err == nil {
		s.store.Set(t)
	}
	if s.hook != nil {
		s.hook(err)
	}
	return err
}

// Start schedules Refresh with a standard five-field cron spec or a
// descriptor such as "@every 5m". It returns immediately; the schedule
// stops when ctx is done or Stop is called.
func (s *Scheduler) Start(ctx context.Context, spec string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrSchedulerAlreadyActive
	}
	if spec == "" {
		return errors.Join(ErrInvalidSchedule, errors.New("empty schedule"))
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, func() { s.run(ctx) }); err != nil {
		return errors.Join(ErrInvalidSchedule, fmt.Errorf("%q: %w", spec, err))
	}
	c.Start()
	s.cron = c
	s.running = true

	s.log.Info("taxonomy refresh scheduled", logger.Component("keywordset"), slog.String("schedule", spec))

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	return nil
}

func (s *Scheduler) run(ctx context.Context) {
	if err := s.Refresh(ctx); err != nil {
		s.log.Error("scheduled taxonomy refresh failed", logger.Component("keywordset"), logger.Error(err))
		return
	}
	s.log.Debug("taxonomy refreshed", logger.Component("keywordset"), slog.Int("sets", len(s.store.Get())))
}

// Stop halts the schedule and waits for a running refresh.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	<-s.cron.Stop().Done()
	s.running = false
}

// Running reports whether a schedule is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

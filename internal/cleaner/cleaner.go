package cleaner

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const (
	defaultSchedule  = "@daily"
	defaultRetention = 14 * 24 * time.Hour
)

// HistoryPurger deletes history rows created before a cutoff.
type HistoryPurger interface {
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type Config struct {
	Schedule  string // cron spec, e.g. "@daily" or "0 3 * * *"
	Retention time.Duration
}

// Cleaner periodically purges notification history rows past their retention
// time.
type Cleaner struct {
	repo HistoryPurger
	cfg  Config
	log  zerolog.Logger
	c    *cron.Cron
}

func New(repo HistoryPurger, cfg Config, log zerolog.Logger) *Cleaner {
	if cfg.Schedule == "" {
		cfg.Schedule = defaultSchedule
	}
	if cfg.Retention <= 0 {
		cfg.Retention = defaultRetention
	}
	return &Cleaner{
		repo: repo,
		cfg:  cfg,
		log:  log,
		c:    cron.New(),
	}
}

// Start registers the purge job and starts the scheduler.
func (cl *Cleaner) Start() error {
	if _, err := cl.c.AddFunc(cl.cfg.Schedule, func() {
		cl.RunOnce(context.Background())
	}); err != nil {
		return err
	}
	cl.c.Start()
	return nil
}

// Stop stops the scheduler and waits for a running purge to finish.
func (cl *Cleaner) Stop() {
	ctx := cl.c.Stop()
	<-ctx.Done()
}

// RunOnce performs a single bounded purge. It is also invoked by the cron
// schedule.
func (cl *Cleaner) RunOnce(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-cl.cfg.Retention)

	cl.log.Info().
		Time("cutoff", cutoff).
		Msg("history purge starting, entries older than cutoff will be deleted")

	deleted, err := cl.repo.DeleteCreatedBefore(ctx, cutoff)
	if err != nil {
		cl.log.Error().Err(err).Msg("history purge failed")
		return
	}

	cl.log.Info().
		Int64("deleted", deleted).
		Msg("history purge ended")
}

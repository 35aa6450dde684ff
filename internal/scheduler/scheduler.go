// Package scheduler runs the background jobs: minute-by-minute reminder
// dispatch and daily system log retention.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

const (
	reminderTimeout  = 50 * time.Second
	retentionTimeout = 5 * time.Minute
)

// ReminderDispatcher creates due reminder notifications for the given instant.
type ReminderDispatcher interface {
	DispatchReminders(ctx context.Context, now time.Time) (int, error)
}

// PurgeFunc deletes persisted logs older than cutoff.
type PurgeFunc func(ctx context.Context, cutoff time.Time) (int64, error)

type Config struct {
	Location      *time.Location
	RetentionDays int
}

type Scheduler struct {
	scheduler gocron.Scheduler
	reminders ReminderDispatcher
	purge     PurgeFunc
	cfg       Config
	now       func() time.Time
}

// New builds a stopped scheduler. Either job source may be nil to disable it.
func New(reminders ReminderDispatcher, purge PurgeFunc, cfg Config) (*Scheduler, error) {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.RetentionDays <= 0 {
		cfg.RetentionDays = 30
	}

	s, err := gocron.NewScheduler(gocron.WithLocation(cfg.Location))
	if err != nil {
		return nil, err
	}

	return &Scheduler{
		scheduler: s,
		reminders: reminders,
		purge:     purge,
		cfg:       cfg,
		now:       time.Now,
	}, nil
}

// Start registers the jobs and starts the scheduler.
func (s *Scheduler) Start() error {
	if s.reminders != nil {
		// Cron rather than a duration job so runs land on minute boundaries.
		_, err := s.scheduler.NewJob(
			gocron.CronJob("* * * * *", false),
			gocron.NewTask(s.RunReminders),
			gocron.WithName("reminder-dispatch"),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return err
		}
	}

	if s.purge != nil {
		_, err := s.scheduler.NewJob(
			gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(3, 0, 0))),
			gocron.NewTask(s.RunRetention),
			gocron.WithName("log-retention"),
		)
		if err != nil {
			return err
		}
	}

	s.scheduler.Start()
	slog.Info("scheduler started", "jobs", len(s.scheduler.Jobs()))
	return nil
}

func (s *Scheduler) Stop() error {
	return s.scheduler.Shutdown()
}

// RunReminders performs one reminder pass for the current minute.
func (s *Scheduler) RunReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), reminderTimeout)
	defer cancel()

	sent, err := s.reminders.DispatchReminders(ctx, s.now())
	if err != nil {
		slog.Error("reminder dispatch failed", "error", err)
		return
	}
	if sent > 0 {
		slog.Info("reminders dispatched", "count", sent)
	}
}

// RunRetention deletes logs older than the retention window.
func (s *Scheduler) RunRetention() {
	ctx, cancel := context.WithTimeout(context.Background(), retentionTimeout)
	defer cancel()

	cutoff := s.now().AddDate(0, 0, -s.cfg.RetentionDays)
	deleted, err := s.purge(ctx, cutoff)
	if err != nil {
		slog.Error("log retention failed", "error", err)
		return
	}
	slog.Info("log retention complete", "deleted", deleted, "cutoff", cutoff)
}

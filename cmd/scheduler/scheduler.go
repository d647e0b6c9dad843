package main

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// runTimeout bounds a single reminder run
const runTimeout = 5 * time.Minute

// ReminderEnqueuer queues the reminders of one day
type ReminderEnqueuer interface {
	// EnqueueReminders queues a reminder for every event dated on day
	//
	// Returns the number of queued reminders and an error if the events could not be read.
	EnqueueReminders(ctx context.Context, day time.Time) (int, error)
}

// Scheduler triggers event reminders on a cron schedule
type Scheduler struct {
	cron      *cron.Cron
	reminders ReminderEnqueuer
	logger    *zap.Logger
	now       func() time.Time
}

// NewScheduler creates a scheduler that runs reminders on schedule, a standard
// five-field cron expression evaluated in UTC
func NewScheduler(schedule string, reminders ReminderEnqueuer, logger *zap.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:      cron.New(cron.WithLocation(time.UTC)),
		reminders: reminders,
		logger:    logger,
		now:       time.Now,
	}

	if _, err := s.cron.AddFunc(schedule, s.runReminders); err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler started", zap.Time("next_run", s.nextRun()))
}

// Stop stops the scheduler and waits for a running job to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Scheduler stopped")
}

func (s *Scheduler) nextRun() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// runReminders queues the reminders of the current UTC day
func (s *Scheduler) runReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	day := s.now().UTC()
	queued, err := s.reminders.EnqueueReminders(ctx, day)
	if err != nil {
		s.logger.Error("Failed to queue event reminders", zap.String("day", day.Format(time.DateOnly)), zap.Error(err))
		return
	}

	s.logger.Info("Reminder run finished", zap.Int("queued", queued))
}

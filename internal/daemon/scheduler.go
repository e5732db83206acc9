package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-co-op/gocron/v2"
)

// Scheduler wraps gocron for the periodic refresh job.
type Scheduler struct {
	mu        sync.Mutex
	scheduler gocron.Scheduler
	jobID     string
	task      func()
}

// NewScheduler creates a new scheduler instance.
func NewScheduler() (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	return &Scheduler{scheduler: s}, nil
}

// ScheduleRefresh registers the refresh task under a cron expression.
func (s *Scheduler) ScheduleRefresh(cronExpr string, task func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.task = task
	job, err := s.scheduler.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(task),
		gocron.WithName("dataset-refresh"),
	)
	if err != nil {
		return fmt.Errorf("failed to create refresh job: %w", err)
	}
	s.jobID = job.ID().String()
	return nil
}

// Reschedule replaces the refresh job with a new cron expression.
func (s *Scheduler) Reschedule(cronExpr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.task == nil {
		return fmt.Errorf("no refresh job scheduled")
	}
	for _, job := range s.scheduler.Jobs() {
		if job.ID().String() == s.jobID {
			if err := s.scheduler.RemoveJob(job.ID()); err != nil {
				return fmt.Errorf("failed to remove refresh job: %w", err)
			}
			break
		}
	}
	job, err := s.scheduler.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(s.task),
		gocron.WithName("dataset-refresh"),
	)
	if err != nil {
		return fmt.Errorf("failed to recreate refresh job: %w", err)
	}
	s.jobID = job.ID().String()
	return nil
}

// Start begins the scheduler.
func (s *Scheduler) Start(ctx context.Context) {
	slog.Info("Starting scheduler")
	s.scheduler.Start()
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	slog.Info("Stopping scheduler")
	return s.scheduler.Shutdown()
}

package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	robfig "github.com/robfig/cron/v3"
)

// Job represents a scheduled job
type Job struct {
	Name string
	Spec string // standard 5-field cron expression, evaluated in the scheduler's location
	Fn   func(ctx context.Context) error
}

// Scheduler runs jobs on wall-clock schedules in one location
type Scheduler struct {
	cron     *robfig.Cron
	location *time.Location
	jobs     []Job
	entries  map[string]robfig.EntryID
	ctx      context.Context
	cancel   context.CancelFunc
	mu       sync.Mutex
}

// NewScheduler creates a scheduler whose specs are read as wall-clock time in loc
func NewScheduler(loc *time.Location) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	logger := slogLogger{l: slog.Default().With("component", "cron")}
	return &Scheduler{
		cron: robfig.New(
			robfig.WithLocation(loc),
			robfig.WithLogger(logger),
			robfig.WithChain(robfig.Recover(logger), robfig.SkipIfStillRunning(logger)),
		),
		location: loc,
		entries:  make(map[string]robfig.EntryID),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// AddJob adds a job to the scheduler
func (s *Scheduler) AddJob(name string, spec string, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[name]; exists {
		return fmt.Errorf("cron job %q already registered", name)
	}

	job := Job{Name: name, Spec: spec, Fn: fn}
	id, err := s.cron.AddFunc(spec, func() { s.executeJob(job) })
	if err != nil {
		return fmt.Errorf("invalid schedule for cron job %q: %w", name, err)
	}

	s.jobs = append(s.jobs, job)
	s.entries[name] = id
	slog.Info("Cron job registered", "name", name, "spec", spec, "location", s.location.String())
	return nil
}

// Start begins running all scheduled jobs
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("Cron scheduler started", "job_count", len(s.jobs), "location", s.location.String())
}

// Stop gracefully stops all scheduled jobs, waiting for running ones
func (s *Scheduler) Stop() {
	slog.Info("Stopping cron scheduler...")
	s.cancel()
	<-s.cron.Stop().Done()
	slog.Info("Cron scheduler stopped")
}

// NextAfter reports when the named job would fire next after t
func (s *Scheduler) NextAfter(name string, t time.Time) (time.Time, bool) {
	s.mu.Lock()
	id, ok := s.entries[name]
	s.mu.Unlock()
	if !ok {
		return time.Time{}, false
	}

	entry := s.cron.Entry(id)
	if !entry.Valid() {
		return time.Time{}, false
	}
	return entry.Schedule.Next(t.In(s.location)), true
}

// executeJob executes a job and logs results
func (s *Scheduler) executeJob(job Job) {
	start := time.Now()
	slog.Debug("Cron job starting", "name", job.Name)

	if err := job.Fn(s.ctx); err != nil {
		slog.Error("Cron job failed", "name", job.Name, "error", err, "duration", time.Since(start))
	} else {
		slog.Debug("Cron job completed", "name", job.Name, "duration", time.Since(start))
	}
}

// RunOnce runs all jobs once (useful for testing)
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		if err := job.Fn(ctx); err != nil {
			slog.Error("Cron job failed", "name", job.Name, "error", err)
		}
	}
}

type slogLogger struct {
	l *slog.Logger
}

func (s slogLogger) Info(msg string, keysAndValues ...interface{}) {
	s.l.Debug(msg, keysAndValues...)
}

func (s slogLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	s.l.Error(msg, append(keysAndValues, "error", err)...)
}

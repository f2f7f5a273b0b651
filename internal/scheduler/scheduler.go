package scheduler

import (
	"context"
	"sync"
	"time"

	"lol-overlay/internal/constants"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Job is one recurring cleanup task. Run reports how many records it
// removed; a failing run is logged and the schedule keeps going.
type Job struct {
	Name string
	Run  func(ctx context.Context) (int, error)
}

// Scheduler drives cleanup jobs on a cron schedule, independent of request
// traffic. One pass also runs immediately at startup so a cold process does
// not sit on a pile of expired records until the first tick.
type Scheduler struct {
	schedule string
	jobs     []Job
	logger   zerolog.Logger

	mu      sync.Mutex
	cron    *cron.Cron
	running bool
}

// New validates the given cron expression, falling back to the default
// schedule instead of failing startup on a bad one.
func New(schedule string, jobs []Job, logger zerolog.Logger) *Scheduler {
	if schedule == "" {
		schedule = constants.DefaultCleanupSchedule
	} else if _, err := cron.ParseStandard(schedule); err != nil {
		logger.Error().Err(err).Str("schedule", schedule).Msg("invalid cron expression, using default")
		schedule = constants.DefaultCleanupSchedule
	}

	return &Scheduler{
		schedule: schedule,
		jobs:     jobs,
		logger:   logger,
	}
}

// Start registers the cron entry and kicks off the initial cleanup pass.
// Calling it while already running is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.logger.Warn().Msg("scheduler already running")
		return
	}

	s.logger.Info().Str("schedule", s.schedule).Msg("starting cleanup scheduler")

	s.cron = cron.New()
	// The expression was validated in New; AddFunc cannot fail here.
	_, _ = s.cron.AddFunc(s.schedule, s.runAll)
	s.cron.Start()
	s.running = true

	go func() {
		s.logger.Info().Msg("running initial cleanup on startup")
		s.runAll()
	}()

	s.logger.Info().Msg("cleanup scheduler started successfully")
}

// Stop cancels the timer. Safe to call repeatedly and when not running.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.logger.Info().Msg("stopping cleanup scheduler")
	s.cron.Stop()
	s.cron = nil
	s.running = false
	s.logger.Info().Msg("cleanup scheduler stopped")
}

// Entries reports how many cron entries are registered.
func (s *Scheduler) Entries() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil {
		return 0
	}
	return len(s.cron.Entries())
}

// RunNow executes every job once, outside the schedule. Used by the manual
// admin trigger. Returns the total number of removed records.
func (s *Scheduler) RunNow(ctx context.Context) int {
	total := 0
	for _, job := range s.jobs {
		cleaned, err := job.Run(ctx)
		if err != nil {
			s.logger.Error().Err(err).Str("job", job.Name).Msg("cleanup job failed")
			continue
		}
		if cleaned > 0 {
			s.logger.Info().Str("job", job.Name).Int("cleaned", cleaned).Msg("cleanup job finished")
		}
		total += cleaned
	}
	return total
}

func (s *Scheduler) runAll() {
	ctx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
	defer cancel()

	s.logger.Info().Msg("running scheduled cleanup")
	start := time.Now()
	total := s.RunNow(ctx)
	s.logger.Info().Int("cleaned", total).Dur("duration", time.Since(start)).Msg("scheduled cleanup finished")
}

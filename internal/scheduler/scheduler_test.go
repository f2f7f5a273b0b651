package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"lol-overlay/internal/constants"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartIsIdempotent(t *testing.T) {
	s := New("", nil, zerolog.Nop())
	defer s.Stop()

	s.Start()
	s.Start()

	assert.Equal(t, 1, s.Entries())
}

func TestStopIsSafeToRepeat(t *testing.T) {
	s := New("", nil, zerolog.Nop())

	// Never started.
	s.Stop()

	s.Start()
	s.Stop()
	s.Stop()

	assert.Equal(t, 0, s.Entries())
}

func TestInvalidScheduleFallsBackToDefault(t *testing.T) {
	s := New("not a cron expression", nil, zerolog.Nop())

	assert.Equal(t, constants.DefaultCleanupSchedule, s.schedule)
}

func TestValidScheduleIsKept(t *testing.T) {
	s := New("*/5 * * * *", nil, zerolog.Nop())

	assert.Equal(t, "*/5 * * * *", s.schedule)
}

func TestStartRunsInitialCleanup(t *testing.T) {
	var calls atomic.Int32

	s := New("", []Job{{
		Name: "counter",
		Run: func(context.Context) (int, error) {
			calls.Add(1)
			return 0, nil
		},
	}}, zerolog.Nop())
	defer s.Stop()

	s.Start()

	require.Eventually(t, func() bool {
		return calls.Load() == 1
	}, time.Second, 10*time.Millisecond, "initial cleanup pass did not run")
}

func TestRunNowIsolatesJobFailures(t *testing.T) {
	jobs := []Job{
		{Name: "failing", Run: func(context.Context) (int, error) {
			return 0, errors.New("boom")
		}},
		{Name: "working", Run: func(context.Context) (int, error) {
			return 3, nil
		}},
	}

	s := New("", jobs, zerolog.Nop())

	assert.Equal(t, 3, s.RunNow(context.Background()))
}

func TestRestartAfterStop(t *testing.T) {
	s := New("", nil, zerolog.Nop())
	defer s.Stop()

	s.Start()
	s.Stop()
	s.Start()

	assert.Equal(t, 1, s.Entries())
}

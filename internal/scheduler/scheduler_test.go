package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGenerator struct {
	GenerateWeekFn func(ctx context.Context, weekStart time.Time) (int, error)
}

func (f *fakeGenerator) GenerateWeek(ctx context.Context, weekStart time.Time) (int, error) {
	return f.GenerateWeekFn(ctx, weekStart)
}

func TestScheduler_StartRunsImmediatelyAndStops(t *testing.T) {
	s := New(zap.NewNop())

	var runs atomic.Int32
	ran := make(chan struct{}, 1)
	s.AddJob("count", time.Hour, func(context.Context) error {
		runs.Add(1)
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start(context.Background())

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()

	assert.Equal(t, int32(1), runs.Load())
}

func TestScheduler_ParentCancelStopsJobs(t *testing.T) {
	s := New(zap.NewNop())
	s.AddJob("tick", 5*time.Millisecond, func(context.Context) error { return nil })

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after parent cancel")
	}
}

func TestScheduler_RunOnceKeepsGoingAfterFailure(t *testing.T) {
	s := New(zap.NewNop())

	var order []string
	s.AddJob("first", time.Hour, func(context.Context) error {
		order = append(order, "first")
		return errors.New("boom")
	})
	s.AddJob("second", time.Hour, func(context.Context) error {
		order = append(order, "second")
		return nil
	})

	s.RunOnce(context.Background())

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestTimesheetJobs_GenerateCurrentWeek(t *testing.T) {
	var got time.Time
	gen := &fakeGenerator{GenerateWeekFn: func(_ context.Context, weekStart time.Time) (int, error) {
		got = weekStart
		return 4, nil
	}}

	jobs := NewTimesheetJobs(gen)
	jobs.now = func() time.Time { return time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC) }

	require.NoError(t, jobs.GenerateCurrentWeek(context.Background()))
	assert.Equal(t, time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC), got)
}

func TestTimesheetJobs_RegisterJobs(t *testing.T) {
	gen := &fakeGenerator{GenerateWeekFn: func(context.Context, time.Time) (int, error) {
		return 0, errors.New("db down")
	}}

	s := New(zap.NewNop())
	NewTimesheetJobs(gen).RegisterJobs(s, 30*time.Minute)

	require.Len(t, s.jobs, 1)
	assert.Equal(t, "generate_weekly_timesheets", s.jobs[0].Name)
	assert.Equal(t, 30*time.Minute, s.jobs[0].Interval)
	assert.EqualError(t, s.jobs[0].Fn(context.Background()), "db down")
}

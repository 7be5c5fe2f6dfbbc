package scheduler

import (
	"context"
	"time"
)

// TimesheetGenerator creates draft timesheets for every active worker for
// the week containing weekStart.
type TimesheetGenerator interface {
	GenerateWeek(ctx context.Context, weekStart time.Time) (int, error)
}

type TimesheetJobs struct {
	generator TimesheetGenerator
	now       func() time.Time
}

func NewTimesheetJobs(generator TimesheetGenerator) *TimesheetJobs {
	return &TimesheetJobs{generator: generator, now: time.Now}
}

// RegisterJobs adds the weekly draft generator. Generation skips timesheets
// that already exist, so the job can tick more often than weekly.
func (j *TimesheetJobs) RegisterJobs(s *Scheduler, interval time.Duration) {
	s.AddJob("generate_weekly_timesheets", interval, j.GenerateCurrentWeek)
}

func (j *TimesheetJobs) GenerateCurrentWeek(ctx context.Context) error {
	_, err := j.generator.GenerateWeek(ctx, j.now().UTC())
	return err
}

package timesheet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go-payroll/internal/company"
	"go-payroll/internal/domain"
	"go-payroll/internal/events"
	"go-payroll/internal/holiday"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/shared/contextutil"
	timesheeterrors "go-payroll/internal/timesheet/errors"
	"go-payroll/internal/worker"
	workererrors "go-payroll/internal/worker/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const clockLayout = "15:04"

type WorkerSource interface {
	FindByID(ctx context.Context, id string) (*worker.Worker, error)
	FindAllActive(ctx context.Context) ([]worker.Worker, error)
}

type CompanyReader interface {
	GetByID(ctx context.Context, companyID string) (*company.Company, error)
}

type HolidayCalendar interface {
	HolidaysBetween(ctx context.Context, companyID string, start, end time.Time) ([]holiday.Holiday, error)
}

//go:generate mockgen -source=timesheet_service.go -destination=mock/timesheet_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor domain.Actor, req CreateTimesheetRequest) (TimesheetResponse, error)
	GetByID(ctx context.Context, actor domain.Actor, id string) (TimesheetResponse, error)
	List(ctx context.Context, actor domain.Actor, filter ListFilter) ([]TimesheetResponse, error)
	UpdateEntry(ctx context.Context, actor domain.Actor, id, date string, req UpdateEntryRequest) (TimesheetResponse, error)
	ClockIn(ctx context.Context, actor domain.Actor, req ClockRequest) (TimesheetResponse, error)
	ClockOut(ctx context.Context, actor domain.Actor, req ClockRequest) (TimesheetResponse, error)
	Submit(ctx context.Context, actor domain.Actor, id string) (TimesheetResponse, error)
	Approve(ctx context.Context, actor domain.Actor, id, comments string) (TimesheetResponse, error)
	Reject(ctx context.Context, actor domain.Actor, id, comments string) (TimesheetResponse, error)
	Cancel(ctx context.Context, actor domain.Actor, id, comments string) (TimesheetResponse, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error

	// System paths with no actor: auto-fill from holidays and approved leave,
	// and the weekly draft generator.
	ApplyHoliday(ctx context.Context, companyID string, date time.Time, name string) (int, error)
	ApplyLeave(ctx context.Context, companyID, workerID string, start, end time.Time, leaveType string) (int, error)
	GenerateWeek(ctx context.Context, weekStart time.Time) (int, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	outbox    kafka.OutboxRepository
	workers   WorkerSource
	companies CompanyReader
	holidays  HolidayCalendar
	authz     domain.Authorizer
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	workers WorkerSource,
	companies CompanyReader,
	holidays HolidayCalendar,
	authz domain.Authorizer,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("timesheet.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timesheet.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		outbox:    outboxRepo,
		workers:   workers,
		companies: companies,
		holidays:  holidays,
		authz:     authz,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, actor domain.Actor, req CreateTimesheetRequest) (TimesheetResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	weekStart, err := time.Parse(dateLayout, req.WeekStartDate)
	if err != nil {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidDate
	}
	if weekStart.Weekday() != time.Monday {
		return TimesheetResponse{}, timesheeterrors.ErrWeekStartNotMonday
	}

	w, err := s.loadWorker(ctx, actor, req.WorkerID, domain.ActionCreate)
	if err != nil {
		return TimesheetResponse{}, err
	}

	holidays := s.holidaySet(ctx, w.CompanyID.String(), weekStart)
	ts := NewTimesheet(w.CompanyID, w.ID, weekStart, req.Site, holidays)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create timesheet begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return TimesheetResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	_, err = qtx.FindByKey(ctx, w.CompanyID.String(), w.ID.String(), weekStart, req.Site)
	switch {
	case err == nil:
		return TimesheetResponse{}, timesheeterrors.ErrTimesheetExists
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return TimesheetResponse{}, err
	}

	if err := qtx.Create(ctx, ts); err != nil {
		s.logger.Error("create timesheet persist failed", zap.String("request_id", rid), zap.Error(err))
		return TimesheetResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create timesheet commit failed", zap.String("request_id", rid), zap.Error(err))
		return TimesheetResponse{}, err
	}

	s.logger.Info("create timesheet success",
		zap.String("request_id", rid),
		zap.String("timesheet_id", ts.ID.String()),
		zap.String("worker_id", req.WorkerID),
		zap.String("week_start_date", req.WeekStartDate),
	)
	return mapToResponse(*ts), nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Actor, id string) (TimesheetResponse, error) {
	ts, err := s.load(ctx, s.repo, actor, id, domain.ActionRead)
	if err != nil {
		return TimesheetResponse{}, err
	}
	return mapToResponse(*ts), nil
}

func (s *service) List(ctx context.Context, actor domain.Actor, filter ListFilter) ([]TimesheetResponse, error) {
	if err := s.authz.Authorize(actor, domain.ResourceTimesheet, domain.ActionRead,
		domain.Target{CompanyID: actor.CompanyID, WorkerID: actor.WorkerID}); err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleWorker {
		filter.WorkerID = actor.WorkerID
	}

	rows, err := s.repo.FindAllByCompany(ctx, actor.CompanyID, filter)
	if err != nil {
		s.logger.Error("list timesheets failed", zap.String("company_id", actor.CompanyID), zap.Error(err))
		return nil, err
	}

	res := make([]TimesheetResponse, len(rows))
	for i, ts := range rows {
		res[i] = mapToResponse(ts)
	}
	return res, nil
}

func (s *service) UpdateEntry(ctx context.Context, actor domain.Actor, id, date string, req UpdateEntryRequest) (TimesheetResponse, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update entry begin tx failed", zap.Error(err))
		return TimesheetResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	ts, err := s.load(ctx, qtx, actor, id, domain.ActionUpdate)
	if err != nil {
		return TimesheetResponse{}, err
	}
	if err := ts.ensureEditable(); err != nil {
		return TimesheetResponse{}, err
	}

	entry := ts.Entry(day)
	if entry == nil {
		return TimesheetResponse{}, timesheeterrors.ErrDateOutsideWeek
	}
	if err := applyEntryEdit(entry, req); err != nil {
		return TimesheetResponse{}, err
	}

	dailyNormal, err := s.dailyNormalHours(ctx, ts.CompanyID.String())
	if err != nil {
		return TimesheetResponse{}, err
	}
	entry.Tier(dailyNormal)
	ts.RecalculateTotals()

	if err := s.saveWithConflicts(ctx, qtx, ts, false); err != nil {
		return TimesheetResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update entry commit failed", zap.String("timesheet_id", id), zap.Error(err))
		return TimesheetResponse{}, err
	}

	s.logger.Info("update entry success",
		zap.String("timesheet_id", id),
		zap.String("date", date),
		zap.Bool("is_conflict", ts.IsConflict),
	)
	return mapToResponse(*ts), nil
}

func (s *service) ClockIn(ctx context.Context, actor domain.Actor, req ClockRequest) (TimesheetResponse, error) {
	w, err := s.loadWorker(ctx, actor, s.clockWorkerID(actor, req), domain.ActionClock)
	if err != nil {
		return TimesheetResponse{}, err
	}

	at := punchTime(req)
	day := dateOnly(at)
	weekStart := WeekStart(day)
	companyID := w.CompanyID.String()

	dailyNormal, err := s.dailyNormalHours(ctx, companyID)
	if err != nil {
		return TimesheetResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("clock in begin tx failed", zap.Error(err))
		return TimesheetResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	isNew := false
	ts, err := qtx.FindByKey(ctx, companyID, w.ID.String(), weekStart, req.Site)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return TimesheetResponse{}, err
		}
		ts = NewTimesheet(w.CompanyID, w.ID, weekStart, req.Site, s.holidaySet(ctx, companyID, weekStart))
		isNew = true
	}
	if err := ts.ensureEditable(); err != nil {
		return TimesheetResponse{}, err
	}

	entry := ts.Entry(day)
	if entry.ClockIn != nil {
		return TimesheetResponse{}, timesheeterrors.ErrAlreadyClockedIn
	}
	entry.IsAbsent = false
	entry.LeaveType = ""
	entry.ClockIn = &at
	entry.ClockOut = nil
	entry.Tier(dailyNormal)
	ts.RecalculateTotals()

	if err := s.saveWithConflicts(ctx, qtx, ts, isNew); err != nil {
		return TimesheetResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("clock in commit failed", zap.Error(err))
		return TimesheetResponse{}, err
	}

	s.logger.Info("clock in recorded",
		zap.String("worker_id", w.ID.String()),
		zap.String("timesheet_id", ts.ID.String()),
		zap.Time("at", at),
	)
	return mapToResponse(*ts), nil
}

// ClockOut closes today's open entry, or yesterday's for an overnight shift.
func (s *service) ClockOut(ctx context.Context, actor domain.Actor, req ClockRequest) (TimesheetResponse, error) {
	w, err := s.loadWorker(ctx, actor, s.clockWorkerID(actor, req), domain.ActionClock)
	if err != nil {
		return TimesheetResponse{}, err
	}

	at := punchTime(req)
	companyID := w.CompanyID.String()

	dailyNormal, err := s.dailyNormalHours(ctx, companyID)
	if err != nil {
		return TimesheetResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("clock out begin tx failed", zap.Error(err))
		return TimesheetResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	var (
		ts    *Timesheet
		entry *DailyEntry
	)
	for _, day := range []time.Time{dateOnly(at), dateOnly(at).AddDate(0, 0, -1)} {
		candidate, err := qtx.FindByKey(ctx, companyID, w.ID.String(), WeekStart(day), req.Site)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return TimesheetResponse{}, err
		}
		if e := candidate.Entry(day); e != nil && e.ClockIn != nil && e.ClockOut == nil {
			ts, entry = candidate, e
			break
		}
	}
	if ts == nil {
		return TimesheetResponse{}, timesheeterrors.ErrNotClockedIn
	}
	if err := ts.ensureEditable(); err != nil {
		return TimesheetResponse{}, err
	}

	entry.ClockOut = &at
	if req.LunchBreakMinutes != nil {
		entry.LunchBreakMinutes = *req.LunchBreakMinutes
	}
	entry.Tier(dailyNormal)
	ts.RecalculateTotals()

	if err := s.saveWithConflicts(ctx, qtx, ts, false); err != nil {
		return TimesheetResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("clock out commit failed", zap.Error(err))
		return TimesheetResponse{}, err
	}

	s.logger.Info("clock out recorded",
		zap.String("worker_id", w.ID.String()),
		zap.String("timesheet_id", ts.ID.String()),
		zap.String("hours", entry.TotalHours.String()),
	)
	return mapToResponse(*ts), nil
}

func (s *service) Submit(ctx context.Context, actor domain.Actor, id string) (TimesheetResponse, error) {
	return s.transition(ctx, actor, id, domain.ActionSubmit, func(ts *Timesheet, _ time.Time) error {
		return ts.Submit()
	})
}

func (s *service) Approve(ctx context.Context, actor domain.Actor, id, comments string) (TimesheetResponse, error) {
	return s.transition(ctx, actor, id, domain.ActionApprove, func(ts *Timesheet, at time.Time) error {
		return ts.Approve(actor, comments, at)
	})
}

func (s *service) Reject(ctx context.Context, actor domain.Actor, id, comments string) (TimesheetResponse, error) {
	return s.transition(ctx, actor, id, domain.ActionReject, func(ts *Timesheet, at time.Time) error {
		return ts.Reject(actor, comments, at)
	})
}

func (s *service) Cancel(ctx context.Context, actor domain.Actor, id, comments string) (TimesheetResponse, error) {
	return s.transition(ctx, actor, id, domain.ActionCancel, func(ts *Timesheet, at time.Time) error {
		return ts.Cancel(actor, comments, at)
	})
}

func (s *service) transition(
	ctx context.Context,
	actor domain.Actor,
	id, action string,
	apply func(ts *Timesheet, at time.Time) error,
) (TimesheetResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("timesheet transition begin tx failed", zap.String("action", action), zap.Error(err))
		return TimesheetResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	ts, err := s.load(ctx, qtx, actor, id, action)
	if err != nil {
		return TimesheetResponse{}, err
	}

	from := ts.Status
	if err := apply(ts, time.Now().UTC()); err != nil {
		s.logger.Warn("timesheet transition rejected",
			zap.String("request_id", rid),
			zap.String("timesheet_id", id),
			zap.String("action", action),
			zap.String("role", string(actor.Role)),
			zap.String("status", string(from)),
			zap.Error(err),
		)
		return TimesheetResponse{}, err
	}

	if err := qtx.Update(ctx, ts); err != nil {
		s.logger.Error("timesheet transition persist failed", zap.String("timesheet_id", id), zap.Error(err))
		return TimesheetResponse{}, err
	}
	if err := s.enqueueStatusChanged(ctx, tx, ts, from, actor); err != nil {
		return TimesheetResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("timesheet transition commit failed", zap.String("timesheet_id", id), zap.Error(err))
		return TimesheetResponse{}, err
	}

	s.logger.Info("timesheet status changed",
		zap.String("request_id", rid),
		zap.String("timesheet_id", id),
		zap.String("from", string(from)),
		zap.String("to", string(ts.Status)),
		zap.String("by", actor.UserID),
	)
	return mapToResponse(*ts), nil
}

// Delete soft-deletes a timesheet that has not entered approval.
func (s *service) Delete(ctx context.Context, actor domain.Actor, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete timesheet begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	ts, err := s.load(ctx, qtx, actor, id, domain.ActionDelete)
	if err != nil {
		return err
	}
	if ts.Status.IsFinalApproved() || ts.Status == StatusApprovedSubcon {
		return timesheeterrors.ErrTimesheetLocked.WithDetails(map[string]string{"current_status": string(ts.Status)})
	}

	others, err := s.siblings(ctx, qtx, ts)
	if err != nil {
		return err
	}
	changed := ReleaseConflicts(ts, others)

	if err := qtx.Update(ctx, ts); err != nil {
		s.logger.Error("delete timesheet persist failed", zap.String("timesheet_id", id), zap.Error(err))
		return err
	}
	for _, o := range changed {
		if err := qtx.Update(ctx, o); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete timesheet commit failed", zap.String("timesheet_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("timesheet deleted", zap.String("timesheet_id", id), zap.String("by", actor.UserID))
	return nil
}

func (s *service) ApplyHoliday(ctx context.Context, companyID string, date time.Time, name string) (int, error) {
	day := dateOnly(date)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	rows, err := qtx.FindEditableByCompanyWeek(ctx, companyID, WeekStart(day))
	if err != nil {
		s.logger.Error("apply holiday load timesheets failed", zap.String("company_id", companyID), zap.Error(err))
		return 0, err
	}

	applied := 0
	for i := range rows {
		ts := &rows[i]
		entry := ts.Entry(day)
		if entry == nil {
			continue
		}
		entry.MarkHoliday(name)
		ts.RecalculateTotals()
		if err := s.saveWithConflicts(ctx, qtx, ts, false); err != nil {
			return 0, err
		}
		applied++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	s.logger.Info("holiday applied to timesheets",
		zap.String("company_id", companyID),
		zap.String("date", day.Format(dateLayout)),
		zap.Int("timesheets", applied),
	)
	return applied, nil
}

// ApplyLeave marks every day of [start, end] absent on the worker's editable
// timesheets. Public holidays keep their own marking.
func (s *service) ApplyLeave(ctx context.Context, companyID, workerID string, start, end time.Time, leaveType string) (int, error) {
	from, to := dateOnly(start), dateOnly(end)
	if to.Before(from) {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	rows, err := qtx.FindEditableByWorkerBetween(ctx, companyID, workerID, WeekStart(from), WeekStart(to))
	if err != nil {
		s.logger.Error("apply leave load timesheets failed", zap.String("worker_id", workerID), zap.Error(err))
		return 0, err
	}

	applied := 0
	for i := range rows {
		ts := &rows[i]
		touched := false
		for j := range ts.DailyEntries {
			e := &ts.DailyEntries[j]
			if e.Date.Before(from) || e.Date.After(to) || e.IsHoliday {
				continue
			}
			e.MarkAbsent(leaveType)
			touched = true
		}
		if !touched {
			continue
		}
		ts.RecalculateTotals()
		if err := s.saveWithConflicts(ctx, qtx, ts, false); err != nil {
			return 0, err
		}
		applied++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	s.logger.Info("leave applied to timesheets",
		zap.String("worker_id", workerID),
		zap.String("leave_type", leaveType),
		zap.Int("timesheets", applied),
	)
	return applied, nil
}

// GenerateWeek creates the default-site draft for every active worker that
// does not have one yet. Failures for one worker do not stop the rest.
func (s *service) GenerateWeek(ctx context.Context, weekStart time.Time) (int, error) {
	weekStart = WeekStart(weekStart)

	workers, err := s.workers.FindAllActive(ctx)
	if err != nil {
		return 0, err
	}

	holidaysByCompany := make(map[uuid.UUID]map[string]string)
	created := 0
	var errs []error
	for _, w := range workers {
		if err := ctx.Err(); err != nil {
			return created, err
		}

		holidays, ok := holidaysByCompany[w.CompanyID]
		if !ok {
			holidays = s.holidaySet(ctx, w.CompanyID.String(), weekStart)
			holidaysByCompany[w.CompanyID] = holidays
		}

		inserted, err := s.repo.CreateIfAbsent(ctx, NewTimesheet(w.CompanyID, w.ID, weekStart, "", holidays))
		if err != nil {
			s.logger.Error("generate timesheet failed", zap.String("worker_id", w.ID.String()), zap.Error(err))
			errs = append(errs, fmt.Errorf("worker %s: %w", w.ID, err))
			continue
		}
		if inserted {
			created++
		}
	}

	s.logger.Info("weekly timesheets generated",
		zap.String("week_start_date", weekStart.Format(dateLayout)),
		zap.Int("workers", len(workers)),
		zap.Int("created", created),
	)
	return created, errors.Join(errs...)
}

func (s *service) load(ctx context.Context, repo Repository, actor domain.Actor, id, action string) (*Timesheet, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, timesheeterrors.ErrInvalidTimesheetID
	}

	ts, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	if err := s.authz.Authorize(actor, domain.ResourceTimesheet, action,
		domain.Target{CompanyID: ts.CompanyID.String(), WorkerID: ts.WorkerID.String()}); err != nil {
		return nil, err
	}
	return ts, nil
}

func (s *service) loadWorker(ctx context.Context, actor domain.Actor, workerID, action string) (*worker.Worker, error) {
	if _, err := uuid.Parse(workerID); err != nil {
		return nil, timesheeterrors.ErrInvalidWorkerID
	}

	w, err := s.workers.FindByID(ctx, workerID)
	if err != nil {
		return nil, mapWorkerError(err)
	}

	if err := s.authz.Authorize(actor, domain.ResourceTimesheet, action,
		domain.Target{CompanyID: w.CompanyID.String(), WorkerID: w.ID.String()}); err != nil {
		return nil, err
	}
	if !w.IsActive {
		return nil, workererrors.ErrWorkerInactive
	}
	return w, nil
}

func (s *service) clockWorkerID(actor domain.Actor, req ClockRequest) string {
	if actor.Role == domain.RoleWorker {
		return actor.WorkerID
	}
	return req.WorkerID
}

// holidaySet degrades to no holidays when the calendar is unavailable.
func (s *service) holidaySet(ctx context.Context, companyID string, weekStart time.Time) map[string]string {
	if s.holidays == nil {
		return nil
	}
	rows, err := s.holidays.HolidaysBetween(ctx, companyID, weekStart, weekStart.AddDate(0, 0, daysInWeek-1))
	if err != nil {
		s.logger.Warn("holiday lookup failed, week built without holidays",
			zap.String("company_id", companyID),
			zap.Error(err),
		)
		return nil
	}
	return holiday.Set(rows)
}

func (s *service) dailyNormalHours(ctx context.Context, companyID string) (decimal.Decimal, error) {
	comp, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return decimal.Zero, err
	}
	return comp.PayrollSettings.NormalHoursPerDay(), nil
}

func (s *service) siblings(ctx context.Context, repo Repository, ts *Timesheet) ([]*Timesheet, error) {
	rows, err := repo.FindByWorkerWeek(ctx, ts.CompanyID.String(), ts.WorkerID.String(), ts.WeekStartDate)
	if err != nil {
		return nil, err
	}
	others := make([]*Timesheet, 0, len(rows))
	for i := range rows {
		if rows[i].ID != ts.ID {
			others = append(others, &rows[i])
		}
	}
	return others, nil
}

// saveWithConflicts refreshes conflict flags against the worker's other
// timesheets for the week, then persists ts and every sibling it changed.
func (s *service) saveWithConflicts(ctx context.Context, repo Repository, ts *Timesheet, isNew bool) error {
	others, err := s.siblings(ctx, repo, ts)
	if err != nil {
		return err
	}
	changed := DetectConflicts(ts, others)

	if isNew {
		err = repo.Create(ctx, ts)
	} else {
		err = repo.Update(ctx, ts)
	}
	if err != nil {
		s.logger.Error("save timesheet failed", zap.String("timesheet_id", ts.ID.String()), zap.Error(err))
		return mapRepositoryError(err)
	}

	for _, o := range changed {
		if err := repo.Update(ctx, o); err != nil {
			return err
		}
	}
	if ts.IsConflict {
		s.logger.Warn("timesheet conflict detected",
			zap.String("timesheet_id", ts.ID.String()),
			zap.Strings("conflict_with", ts.ConflictWith),
		)
	}
	return nil
}

func (s *service) enqueueStatusChanged(ctx context.Context, tx *sql.Tx, ts *Timesheet, from Status, actor domain.Actor) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	ev, err := kafka.NewOutboxEvent(rid, "timesheet", ts.ID.String(), events.EventTimesheetStatusChanged,
		events.TimesheetStatusChangedTopic, events.TimesheetStatusChangedEvent{
			EventType:   events.EventTimesheetStatusChanged,
			RequestID:   rid,
			TimesheetID: ts.ID.String(),
			WorkerID:    ts.WorkerID.String(),
			CompanyID:   ts.CompanyID.String(),
			From:        string(from),
			To:          string(ts.Status),
			ChangedBy:   actor.UserID,
			OccurredAt:  time.Now().UTC(),
		})
	if err != nil {
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, ev); err != nil {
		s.logger.Error("timesheet outbox persist failed", zap.String("timesheet_id", ts.ID.String()), zap.Error(err))
		return err
	}
	return nil
}

func applyEntryEdit(entry *DailyEntry, req UpdateEntryRequest) error {
	if req.IsAbsent != nil && *req.IsAbsent {
		leaveType := entry.LeaveType
		if req.LeaveType != nil {
			leaveType = *req.LeaveType
		}
		entry.MarkAbsent(leaveType)
		return nil
	}
	if req.IsAbsent != nil {
		entry.IsAbsent = false
		entry.LeaveType = ""
	}

	if req.ClockIn != nil {
		t, err := clockOn(entry.Date, *req.ClockIn)
		if err != nil {
			return err
		}
		entry.ClockIn = t
	}
	if req.ClockOut != nil {
		t, err := clockOn(entry.Date, *req.ClockOut)
		if err != nil {
			return err
		}
		entry.ClockOut = t
	}
	if req.ClockOut != nil && entry.ClockIn != nil && entry.ClockOut != nil && !entry.ClockOut.After(*entry.ClockIn) {
		next := entry.ClockOut.Add(24 * time.Hour)
		entry.ClockOut = &next
	}
	if req.LunchBreakMinutes != nil {
		entry.LunchBreakMinutes = *req.LunchBreakMinutes
	}
	if entry.ClockIn != nil || entry.ClockOut != nil {
		entry.IsAbsent = false
	}
	return nil
}

// clockOn parses HH:MM on day. An empty value clears the time.
func clockOn(day time.Time, v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	hm, err := time.Parse(clockLayout, v)
	if err != nil {
		return nil, timesheeterrors.ErrInvalidClockTime
	}
	t := time.Date(day.Year(), day.Month(), day.Day(), hm.Hour(), hm.Minute(), 0, 0, time.UTC)
	return &t, nil
}

func punchTime(req ClockRequest) time.Time {
	if req.At != nil {
		return req.At.UTC()
	}
	return time.Now().UTC()
}

func mapToResponse(ts Timesheet) TimesheetResponse {
	resp := TimesheetResponse{
		ID:               ts.ID.String(),
		CompanyID:        ts.CompanyID.String(),
		WorkerID:         ts.WorkerID.String(),
		WeekStartDate:    ts.WeekStartDate.Format(dateLayout),
		Site:             ts.Site,
		Status:           string(ts.Status),
		TotalNormalHours: ts.TotalNormalHours.InexactFloat64(),
		TotalOT1_5Hours:  ts.TotalOT1_5Hours.InexactFloat64(),
		TotalOT2_0Hours:  ts.TotalOT2_0Hours.InexactFloat64(),
		TotalHours:       ts.TotalHours.InexactFloat64(),
		IsConflict:       ts.IsConflict,
		ConflictWith:     ts.ConflictWith,
		DailyEntries:     make([]DailyEntryResponse, len(ts.DailyEntries)),
		ApprovalHistory:  make([]ApprovalEntryResponse, len(ts.ApprovalHistory)),
	}
	for i, e := range ts.DailyEntries {
		resp.DailyEntries[i] = DailyEntryResponse{
			Date:              e.DateKey(),
			ClockIn:           formatTime(e.ClockIn),
			ClockOut:          formatTime(e.ClockOut),
			LunchBreakMinutes: e.LunchBreakMinutes,
			NormalHours:       e.NormalHours.InexactFloat64(),
			OT1_5Hours:        e.OT1_5Hours.InexactFloat64(),
			OT2_0Hours:        e.OT2_0Hours.InexactFloat64(),
			TotalHours:        e.TotalHours.InexactFloat64(),
			IsAbsent:          e.IsAbsent,
			LeaveType:         e.LeaveType,
			IsHoliday:         e.IsHoliday,
			HolidayName:       e.HolidayName,
		}
	}
	for i, h := range ts.ApprovalHistory {
		resp.ApprovalHistory[i] = ApprovalEntryResponse{
			ApprovedBy: h.ApprovedBy,
			Role:       h.Role,
			Status:     h.Status,
			Comments:   h.Comments,
			Timestamp:  h.Timestamp.Format(time.RFC3339),
		}
	}
	return resp
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(time.RFC3339)
	return &v
}

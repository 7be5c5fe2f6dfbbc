package leave

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	companyerrors "go-payroll/internal/company/errors"
	"go-payroll/internal/domain"
	leaveerrors "go-payroll/internal/leave/errors"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/worker"
	workererrors "go-payroll/internal/worker/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type WorkerSource interface {
	FindByID(ctx context.Context, id string) (*worker.Worker, error)
}

// TimesheetApplier marks approved leave on the worker's editable timesheets.
type TimesheetApplier interface {
	ApplyLeave(ctx context.Context, companyID, workerID string, start, end time.Time, leaveType string) (int, error)
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	CreateType(ctx context.Context, actor domain.Actor, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	ListTypes(ctx context.Context, actor domain.Actor) ([]LeaveTypeResponse, error)

	Request(ctx context.Context, actor domain.Actor, req CreateLeaveRequest) (LeaveRequestResponse, error)
	Approve(ctx context.Context, actor domain.Actor, id, comment string) (LeaveRequestResponse, error)
	Reject(ctx context.Context, actor domain.Actor, id, comment string) (LeaveRequestResponse, error)
	Cancel(ctx context.Context, actor domain.Actor, id, comment string) (LeaveRequestResponse, error)
	ListRequests(ctx context.Context, actor domain.Actor, filter RequestFilter) ([]LeaveRequestResponse, error)
	ListBalances(ctx context.Context, actor domain.Actor, workerID, year string) ([]LeaveBalanceResponse, error)

	InitializeBalances(ctx context.Context, companyID, workerID string, year int) (int, error)
	ApprovedLeaveDays(ctx context.Context, companyID, workerID string, start, end time.Time) (LeaveDays, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	workers    WorkerSource
	timesheets TimesheetApplier
	authz      domain.Authorizer
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	workers WorkerSource,
	timesheets TimesheetApplier,
	authz domain.Authorizer,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		workers:    workers,
		timesheets: timesheets,
		authz:      authz,
		logger:     l,
	}
}

func (s *service) CreateType(ctx context.Context, actor domain.Actor, req CreateLeaveTypeRequest) (LeaveTypeResponse, error) {
	if err := s.authz.Authorize(actor, domain.ResourceLeave, domain.ActionCreate,
		domain.Target{CompanyID: actor.CompanyID}); err != nil {
		return LeaveTypeResponse{}, err
	}
	companyID, err := uuid.Parse(actor.CompanyID)
	if err != nil {
		return LeaveTypeResponse{}, companyerrors.ErrInvalidCompanyID
	}

	isPaid := true
	if req.IsPaid != nil {
		isPaid = *req.IsPaid
	}
	t := &LeaveType{
		ID:          uuid.New(),
		CompanyID:   companyID,
		Code:        req.Code,
		Name:        req.Name,
		IsPaid:      isPaid,
		DefaultDays: decimal.NewFromFloat(req.DefaultDays).Round(1),
	}
	if err := s.repo.CreateType(ctx, t); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return LeaveTypeResponse{}, leaveerrors.ErrLeaveTypeExists
		}
		s.logger.Error("create leave type persist failed", zap.Error(err))
		return LeaveTypeResponse{}, err
	}

	s.logger.Info("create leave type success",
		zap.String("company_id", actor.CompanyID),
		zap.String("code", t.Code),
		zap.Bool("is_paid", t.IsPaid),
	)
	return mapTypeToResponse(*t), nil
}

func (s *service) ListTypes(ctx context.Context, actor domain.Actor) ([]LeaveTypeResponse, error) {
	if err := s.authz.Authorize(actor, domain.ResourceLeave, domain.ActionRead,
		domain.Target{CompanyID: actor.CompanyID, WorkerID: actor.WorkerID}); err != nil {
		return nil, err
	}
	types, err := s.repo.FindTypes(ctx, actor.CompanyID)
	if err != nil {
		return nil, err
	}
	res := make([]LeaveTypeResponse, len(types))
	for i, t := range types {
		res[i] = mapTypeToResponse(t)
	}
	return res, nil
}

// Request files a pending request and reserves its working days against the
// balance of the start date's year.
func (s *service) Request(ctx context.Context, actor domain.Actor, req CreateLeaveRequest) (LeaveRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	workerID := req.WorkerID
	if actor.Role == domain.RoleWorker {
		workerID = actor.WorkerID
	}

	start, end, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	days := decimal.NewFromInt(int64(WorkingDays(start, end)))
	if days.IsZero() {
		return LeaveRequestResponse{}, leaveerrors.ErrNoWorkingDays
	}

	w, err := s.loadWorker(ctx, actor, workerID, domain.ActionRequest)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if !w.IsActive {
		return LeaveRequestResponse{}, workererrors.ErrWorkerInactive
	}

	lt, err := s.repo.FindTypeByID(ctx, req.LeaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaveerrors.ErrLeaveTypeNotFound
		}
		return LeaveRequestResponse{}, err
	}
	if lt.CompanyID != w.CompanyID {
		return LeaveRequestResponse{}, leaveerrors.ErrLeaveTypeNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("request leave begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	overlap, err := qtx.HasOverlappingRequest(ctx, workerID, start, end)
	if err != nil {
		s.logger.Error("request leave overlap check failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	if overlap {
		s.logger.Warn("request leave overlap detected",
			zap.String("worker_id", workerID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveRequestResponse{}, leaveerrors.ErrLeaveOverlap
	}

	bal, err := s.lockBalance(ctx, qtx, workerID, lt.ID.String(), start.Year())
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if err := bal.Reserve(days); err != nil {
		s.logger.Warn("request leave insufficient balance",
			zap.String("worker_id", workerID),
			zap.String("leave_type", lt.Code),
			zap.String("remaining", bal.Remaining().String()),
			zap.String("requested", days.String()),
		)
		return LeaveRequestResponse{}, err
	}
	if err := qtx.UpdateBalance(ctx, bal); err != nil {
		s.logger.Error("request leave reserve failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	lr := &LeaveRequest{
		ID:          uuid.New(),
		CompanyID:   w.CompanyID,
		WorkerID:    w.ID,
		LeaveTypeID: lt.ID,
		StartDate:   start,
		EndDate:     end,
		Days:        days,
		Reason:      req.Reason,
		Status:      StatusPending,
		RequestedBy: actor.UserID,
		LeaveType:   *lt,
	}
	if err := qtx.CreateRequest(ctx, lr); err != nil {
		s.logger.Error("request leave persist failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("request leave commit failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("request leave success",
		zap.String("request_id", rid),
		zap.String("leave_request_id", lr.ID.String()),
		zap.String("worker_id", workerID),
		zap.String("days", days.String()),
	)
	return mapRequestToResponse(*lr), nil
}

// Approve consumes the reservation and then auto-fills timesheets. A failed
// auto-fill is logged and does not undo the approval.
func (s *service) Approve(ctx context.Context, actor domain.Actor, id, comment string) (LeaveRequestResponse, error) {
	lr, err := s.review(ctx, actor, id, domain.ActionApprove, comment, StatusApproved, (*LeaveBalance).Consume)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	resp := mapRequestToResponse(*lr)
	if s.timesheets == nil {
		return resp, nil
	}
	n, err := s.timesheets.ApplyLeave(ctx, lr.CompanyID.String(), lr.WorkerID.String(), lr.StartDate, lr.EndDate, lr.LeaveType.Code)
	if err != nil {
		s.logger.Warn("apply approved leave to timesheets failed",
			zap.String("leave_request_id", id),
			zap.Error(err),
		)
		return resp, nil
	}
	resp.TimesheetsUpdated = n
	return resp, nil
}

func (s *service) Reject(ctx context.Context, actor domain.Actor, id, comment string) (LeaveRequestResponse, error) {
	lr, err := s.review(ctx, actor, id, domain.ActionReject, comment, StatusRejected, (*LeaveBalance).Release)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	return mapRequestToResponse(*lr), nil
}

func (s *service) Cancel(ctx context.Context, actor domain.Actor, id, comment string) (LeaveRequestResponse, error) {
	lr, err := s.review(ctx, actor, id, domain.ActionCancel, comment, StatusCancelled, (*LeaveBalance).Release)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	return mapRequestToResponse(*lr), nil
}

// review closes a pending request and settles its reservation in the same
// transaction.
func (s *service) review(
	ctx context.Context,
	actor domain.Actor,
	id, action, comment string,
	to RequestStatus,
	settle func(*LeaveBalance, decimal.Decimal),
) (*LeaveRequest, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, leaveerrors.ErrInvalidLeaveRequestID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("review leave begin tx failed", zap.String("action", action), zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lr, err := qtx.FindRequestByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrLeaveRequestNotFound
		}
		return nil, err
	}
	if err := s.authz.Authorize(actor, domain.ResourceLeave, action,
		domain.Target{CompanyID: lr.CompanyID.String(), WorkerID: lr.WorkerID.String()}); err != nil {
		return nil, err
	}
	if lr.Status != StatusPending {
		return nil, leaveerrors.ErrInvalidStatusTransition.WithDetails(map[string]string{
			"current_status":  string(lr.Status),
			"required_status": string(StatusPending),
		})
	}

	bal, err := s.lockBalance(ctx, qtx, lr.WorkerID.String(), lr.LeaveTypeID.String(), lr.StartDate.Year())
	if err != nil {
		return nil, err
	}
	settle(bal, lr.Days)
	if err := qtx.UpdateBalance(ctx, bal); err != nil {
		s.logger.Error("review leave balance persist failed", zap.String("leave_request_id", id), zap.Error(err))
		return nil, err
	}

	lr.review(actor.UserID, comment, to, time.Now().UTC())
	if err := qtx.UpdateRequest(ctx, lr); err != nil {
		s.logger.Error("review leave persist failed", zap.String("leave_request_id", id), zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("review leave commit failed", zap.String("leave_request_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("leave request reviewed",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("leave_request_id", id),
		zap.String("status", string(to)),
		zap.String("by", actor.UserID),
	)
	return lr, nil
}

func (s *service) ListRequests(ctx context.Context, actor domain.Actor, filter RequestFilter) ([]LeaveRequestResponse, error) {
	if err := s.authz.Authorize(actor, domain.ResourceLeave, domain.ActionRead,
		domain.Target{CompanyID: actor.CompanyID, WorkerID: actor.WorkerID}); err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleWorker {
		filter.WorkerID = actor.WorkerID
	}

	rows, err := s.repo.FindRequests(ctx, actor.CompanyID, filter)
	if err != nil {
		s.logger.Error("list leave requests failed", zap.String("company_id", actor.CompanyID), zap.Error(err))
		return nil, err
	}
	res := make([]LeaveRequestResponse, len(rows))
	for i, lr := range rows {
		res[i] = mapRequestToResponse(lr)
	}
	return res, nil
}

func (s *service) ListBalances(ctx context.Context, actor domain.Actor, workerID, year string) ([]LeaveBalanceResponse, error) {
	if actor.Role == domain.RoleWorker {
		workerID = actor.WorkerID
	}
	y := time.Now().UTC().Year()
	if year != "" {
		v, err := strconv.Atoi(year)
		if err != nil || v < 1900 || v > 9999 {
			return nil, leaveerrors.ErrInvalidYear
		}
		y = v
	}

	w, err := s.loadWorker(ctx, actor, workerID, domain.ActionRead)
	if err != nil {
		return nil, err
	}

	balances, err := s.repo.FindBalances(ctx, w.CompanyID.String(), w.ID.String(), y)
	if err != nil {
		return nil, err
	}
	res := make([]LeaveBalanceResponse, len(balances))
	for i, b := range balances {
		res[i] = mapBalanceToResponse(b)
	}
	return res, nil
}

// InitializeBalances opens a balance of every company leave type for the
// worker's year. Existing balances are left untouched, so replays are safe.
func (s *service) InitializeBalances(ctx context.Context, companyID, workerID string, year int) (int, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return 0, companyerrors.ErrInvalidCompanyID
	}
	workerUUID, err := uuid.Parse(workerID)
	if err != nil {
		return 0, workererrors.ErrInvalidWorkerID
	}

	types, err := s.repo.FindTypes(ctx, companyID)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, t := range types {
		inserted, err := s.repo.CreateBalanceIfAbsent(ctx, &LeaveBalance{
			ID:          uuid.New(),
			CompanyID:   companyUUID,
			WorkerID:    workerUUID,
			LeaveTypeID: t.ID,
			Year:        year,
			TotalDays:   t.DefaultDays,
		})
		if err != nil {
			s.logger.Error("initialize leave balance failed",
				zap.String("worker_id", workerID),
				zap.String("leave_type", t.Code),
				zap.Error(err),
			)
			return created, err
		}
		if inserted {
			created++
		}
	}

	s.logger.Info("leave balances initialized",
		zap.String("worker_id", workerID),
		zap.Int("year", year),
		zap.Int("created", created),
	)
	return created, nil
}

// ApprovedLeaveDays clips every approved request to [start, end] and counts
// its working days as paid or unpaid by leave type.
func (s *service) ApprovedLeaveDays(ctx context.Context, companyID, workerID string, start, end time.Time) (LeaveDays, error) {
	rows, err := s.repo.FindApprovedOverlapping(ctx, companyID, workerID, start, end)
	if err != nil {
		return LeaveDays{}, err
	}

	out := LeaveDays{Paid: decimal.Zero, Unpaid: decimal.Zero}
	for _, lr := range rows {
		from, to := lr.StartDate, lr.EndDate
		if from.Before(start) {
			from = start
		}
		if to.After(end) {
			to = end
		}
		days := decimal.NewFromInt(int64(WorkingDays(from, to)))
		if lr.LeaveType.IsPaid {
			out.Paid = out.Paid.Add(days)
		} else {
			out.Unpaid = out.Unpaid.Add(days)
		}
	}
	return out, nil
}

func (s *service) loadWorker(ctx context.Context, actor domain.Actor, workerID, action string) (*worker.Worker, error) {
	if _, err := uuid.Parse(workerID); err != nil {
		return nil, workererrors.ErrInvalidWorkerID
	}
	w, err := s.workers.FindByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workererrors.ErrWorkerNotFound
		}
		return nil, err
	}
	if err := s.authz.Authorize(actor, domain.ResourceLeave, action,
		domain.Target{CompanyID: w.CompanyID.String(), WorkerID: w.ID.String()}); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *service) lockBalance(ctx context.Context, repo Repository, workerID, leaveTypeID string, year int) (*LeaveBalance, error) {
	bal, err := repo.FindBalanceForUpdate(ctx, workerID, leaveTypeID, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrBalanceNotFound
		}
		return nil, err
	}
	return bal, nil
}

func parsePeriod(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	if start.After(end) || start.Year() != end.Year() {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return start, end, nil
}

package worker

import (
	"context"
	"database/sql"
	"time"

	"go-payroll/internal/company"
	"go-payroll/internal/domain"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/counter"
	workererrors "go-payroll/internal/worker/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const employeeNumberPrefix = "WRK"

// CompanyReader is the slice of company.Service the worker module needs.
type CompanyReader interface {
	GetByID(ctx context.Context, companyID string) (*company.Company, error)
}

//go:generate mockgen -source=worker_service.go -destination=mock/worker_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor domain.Actor, req CreateWorkerRequest) (WorkerResponse, error)
	GetByID(ctx context.Context, actor domain.Actor, id string) (WorkerResponse, error)
	List(ctx context.Context, actor domain.Actor, filter ListFilter) ([]WorkerResponse, error)
	Deactivate(ctx context.Context, actor domain.Actor, id string) (WorkerResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	counter   counter.Repository
	outbox    kafka.OutboxRepository
	companies CompanyReader
	authz     domain.Authorizer
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	companies CompanyReader,
	authz domain.Authorizer,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("worker.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("worker.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		counter:   counterRepo,
		outbox:    outboxRepo,
		companies: companies,
		authz:     authz,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, actor domain.Actor, req CreateWorkerRequest) (WorkerResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	companyID := actor.CompanyID
	if actor.IsAdmin() && req.CompanyID != "" {
		companyID = req.CompanyID
	}
	if err := s.authz.Authorize(actor, domain.ResourceWorker, domain.ActionCreate,
		domain.Target{CompanyID: companyID}); err != nil {
		return WorkerResponse{}, err
	}

	paymentType := PaymentType(req.PaymentType)
	if !paymentType.Valid() {
		return WorkerResponse{}, workererrors.ErrInvalidPaymentType
	}

	s.logger.Debug("create worker requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("payment_type", req.PaymentType),
	)

	comp, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return WorkerResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create worker begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return WorkerResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	active, err := qtx.CountActiveByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("create worker count active failed", zap.Error(err))
		return WorkerResponse{}, err
	}
	if !comp.HasCapacity(active) {
		s.logger.Warn("create worker limit reached",
			zap.String("company_id", companyID),
			zap.Int("max_workers", comp.MaxWorkers),
			zap.Int64("active", active),
		)
		return WorkerResponse{}, workererrors.ErrWorkerLimitReached
	}

	if req.EmployeeNumber == "" {
		next, err := s.counter.WithTx(tx).GetNextValue(ctx, companyID, counter.TypeWorkerNumber)
		if err != nil {
			s.logger.Error("create worker generate number failed", zap.Error(err))
			return WorkerResponse{}, err
		}
		req.EmployeeNumber = counter.Format(employeeNumberPrefix, next)
	}

	w := &Worker{
		ID:             uuid.New(),
		CompanyID:      comp.ID,
		UserID:         uuidPtr(req.UserID),
		FullName:       req.FullName,
		Email:          req.Email,
		EmployeeNumber: req.EmployeeNumber,
		PaymentType:    paymentType,
		PayrollInfo:    payrollInfoFromRequest(req),
		IsActive:       true,
	}

	if err := qtx.Create(ctx, w); err != nil {
		s.logger.Error("create worker persist failed", zap.Error(err))
		return WorkerResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueueLifecycle(ctx, tx, events.EventWorkerCreated, w); err != nil {
		return WorkerResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create worker commit failed", zap.String("request_id", rid), zap.Error(err))
		return WorkerResponse{}, err
	}

	s.logger.Info("create worker success",
		zap.String("request_id", rid),
		zap.String("worker_id", w.ID.String()),
		zap.String("employee_number", w.EmployeeNumber),
	)
	return mapToResponse(*w), nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Actor, id string) (WorkerResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return WorkerResponse{}, workererrors.ErrInvalidWorkerID
	}

	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return WorkerResponse{}, mapRepositoryError(err)
	}

	if err := s.authz.Authorize(actor, domain.ResourceWorker, domain.ActionRead,
		domain.Target{CompanyID: w.CompanyID.String(), WorkerID: w.ID.String()}); err != nil {
		return WorkerResponse{}, err
	}

	return mapToResponse(*w), nil
}

func (s *service) List(ctx context.Context, actor domain.Actor, filter ListFilter) ([]WorkerResponse, error) {
	if err := s.authz.Authorize(actor, domain.ResourceWorker, domain.ActionRead,
		domain.Target{CompanyID: actor.CompanyID, WorkerID: actor.WorkerID}); err != nil {
		return nil, err
	}

	if actor.Role == domain.RoleWorker {
		w, err := s.repo.FindByIDAndCompany(ctx, actor.CompanyID, actor.WorkerID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}
		return []WorkerResponse{mapToResponse(*w)}, nil
	}

	workers, err := s.repo.FindAllByCompany(ctx, actor.CompanyID, filter)
	if err != nil {
		s.logger.Error("list workers failed", zap.String("company_id", actor.CompanyID), zap.Error(err))
		return nil, err
	}
	return mapToListResponse(workers), nil
}

// Deactivate is the only way a worker leaves the roster. Rows are never deleted.
func (s *service) Deactivate(ctx context.Context, actor domain.Actor, id string) (WorkerResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return WorkerResponse{}, workererrors.ErrInvalidWorkerID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("deactivate worker begin tx failed", zap.Error(err))
		return WorkerResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	w, err := qtx.FindByID(ctx, id)
	if err != nil {
		return WorkerResponse{}, mapRepositoryError(err)
	}

	if err := s.authz.Authorize(actor, domain.ResourceWorker, domain.ActionDeactivate,
		domain.Target{CompanyID: w.CompanyID.String()}); err != nil {
		return WorkerResponse{}, err
	}
	if !w.IsActive {
		return WorkerResponse{}, workererrors.ErrWorkerInactive
	}

	now := time.Now().UTC()
	w.IsActive = false
	w.DeactivatedAt = &now
	if err := qtx.Update(ctx, w); err != nil {
		s.logger.Error("deactivate worker persist failed", zap.Error(err))
		return WorkerResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueueLifecycle(ctx, tx, events.EventWorkerDeactivated, w); err != nil {
		return WorkerResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("deactivate worker commit failed", zap.Error(err))
		return WorkerResponse{}, err
	}

	s.logger.Info("worker deactivated",
		zap.String("worker_id", id),
		zap.String("deactivated_by", actor.UserID),
	)
	return mapToResponse(*w), nil
}

func (s *service) enqueueLifecycle(ctx context.Context, tx *sql.Tx, eventType string, w *Worker) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	ev, err := kafka.NewOutboxEvent(rid, "worker", w.ID.String(), eventType, events.WorkerLifecycleTopic,
		events.WorkerLifecycleEvent{
			EventType:  eventType,
			RequestID:  rid,
			WorkerID:   w.ID.String(),
			CompanyID:  w.CompanyID.String(),
			OccurredAt: time.Now().UTC(),
		})
	if err != nil {
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, ev); err != nil {
		s.logger.Error("worker outbox persist failed",
			zap.String("worker_id", w.ID.String()),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func payrollInfoFromRequest(req CreateWorkerRequest) PayrollInfo {
	info := PayrollInfo{}
	if req.MonthlySalary != nil {
		info.MonthlySalary = decimal.NewFromFloat(*req.MonthlySalary)
	}
	if req.HourlyRate != nil {
		info.HourlyRate = decimal.NewFromFloat(*req.HourlyRate)
	}
	for _, r := range req.UnitRates {
		info.UnitRates = append(info.UnitRates, UnitRate{
			UnitType:    r.UnitType,
			RatePerUnit: decimal.NewFromFloat(r.RatePerUnit),
		})
	}
	info.Allowances = adjustmentsFromRequest(req.Allowances)
	info.Deductions = adjustmentsFromRequest(req.Deductions)
	return info
}

func adjustmentsFromRequest(reqs []AdjustmentRequest) []Adjustment {
	out := make([]Adjustment, 0, len(reqs))
	for _, r := range reqs {
		amount := decimal.NewFromFloat(r.Amount)
		if AdjustmentKind(r.Type) == AdjustmentPercentage {
			out = append(out, Percentage(r.Name, amount))
			continue
		}
		out = append(out, Fixed(r.Name, amount))
	}
	return out
}

func mapToResponse(w Worker) WorkerResponse {
	resp := WorkerResponse{
		ID:             w.ID.String(),
		CompanyID:      w.CompanyID.String(),
		FullName:       w.FullName,
		Email:          w.Email,
		EmployeeNumber: w.EmployeeNumber,
		PaymentType:    string(w.PaymentType),
		MonthlySalary:  w.PayrollInfo.MonthlySalary.InexactFloat64(),
		HourlyRate:     w.PayrollInfo.HourlyRate.InexactFloat64(),
		IsActive:       w.IsActive,
	}
	if w.UserID != nil {
		resp.UserID = w.UserID.String()
	}
	for _, r := range w.PayrollInfo.UnitRates {
		resp.UnitRates = append(resp.UnitRates, UnitRateResponse{UnitType: r.UnitType, RatePerUnit: r.RatePerUnit.InexactFloat64()})
	}
	resp.Allowances = mapAdjustments(w.PayrollInfo.Allowances)
	resp.Deductions = mapAdjustments(w.PayrollInfo.Deductions)
	return resp
}

func mapAdjustments(adjs []Adjustment) []AdjustmentResponse {
	if len(adjs) == 0 {
		return nil
	}
	out := make([]AdjustmentResponse, len(adjs))
	for i, a := range adjs {
		out[i] = AdjustmentResponse{Name: a.Name, Type: string(a.Kind), Amount: a.Amount.InexactFloat64()}
	}
	return out
}

func mapToListResponse(workers []Worker) []WorkerResponse {
	res := make([]WorkerResponse, len(workers))
	for i, w := range workers {
		res[i] = mapToResponse(w)
	}
	return res
}

func uuidPtr(v string) *uuid.UUID {
	id, err := uuid.Parse(v)
	if err != nil {
		return nil
	}
	return &id
}

package payroll

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-payroll/internal/company"
	"go-payroll/internal/domain"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/statutory"
	"go-payroll/internal/worker"
	workererrors "go-payroll/internal/worker/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type WorkerSource interface {
	FindByID(ctx context.Context, id string) (*worker.Worker, error)
	FindAllByCompany(ctx context.Context, companyID string, filter worker.ListFilter) ([]worker.Worker, error)
}

type CompanyReader interface {
	GetByID(ctx context.Context, companyID string) (*company.Company, error)
}

type Service interface {
	// GeneratePayroll returns the record for the period and whether this call
	// created it. A second call for the same period returns the first record.
	GeneratePayroll(ctx context.Context, actor domain.Actor, workerID string, periodStart, periodEnd time.Time) (PayrollResponse, bool, error)
	EnqueueBatch(ctx context.Context, actor domain.Actor, companyID string, periodStart, periodEnd time.Time) (BatchResponse, error)
	GetByID(ctx context.Context, actor domain.Actor, id string) (PayrollResponse, error)
	List(ctx context.Context, actor domain.Actor, filter ListFilter) ([]PayrollResponse, error)
	Approve(ctx context.Context, actor domain.Actor, id string) (PayrollResponse, error)
	MarkPaid(ctx context.Context, actor domain.Actor, id string) (PayrollResponse, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
	Payslip(ctx context.Context, actor domain.Actor, id string) (Payslip, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	outbox      kafka.OutboxRepository
	workers     WorkerSource
	companies   CompanyReader
	calculators Calculators
	authz       domain.Authorizer
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	workers WorkerSource,
	companies CompanyReader,
	calculators Calculators,
	authz domain.Authorizer,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		outbox:      outboxRepo,
		workers:     workers,
		companies:   companies,
		calculators: calculators,
		authz:       authz,
		logger:      l,
	}
}

func (s *service) GeneratePayroll(
	ctx context.Context,
	actor domain.Actor,
	workerID string,
	periodStart, periodEnd time.Time,
) (PayrollResponse, bool, error) {
	rid := contextutil.GetRequestID(ctx)

	if _, err := uuid.Parse(workerID); err != nil {
		return PayrollResponse{}, false, workererrors.ErrInvalidWorkerID
	}
	if periodEnd.Before(periodStart) {
		return PayrollResponse{}, false, payrollerrors.ErrInvalidDateRange
	}

	w, err := s.workers.FindByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, false, workererrors.ErrWorkerNotFound
		}
		return PayrollResponse{}, false, err
	}
	if err := s.authz.Authorize(actor, domain.ResourcePayroll, domain.ActionGenerate,
		domain.Target{CompanyID: w.CompanyID.String(), WorkerID: w.ID.String()}); err != nil {
		return PayrollResponse{}, false, err
	}

	companyID := w.CompanyID.String()
	existing, err := s.repo.FindByPeriod(ctx, companyID, workerID, periodStart, periodEnd)
	switch {
	case err == nil:
		s.logger.Info("payroll already generated for period",
			zap.String("request_id", rid),
			zap.String("payroll_id", existing.ID.String()),
		)
		return mapToResponse(*existing), false, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return PayrollResponse{}, false, err
	}

	comp, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return PayrollResponse{}, false, err
	}
	calc, err := s.calculators.For(w.PaymentType)
	if err != nil {
		return PayrollResponse{}, false, err
	}
	result, err := calc.Calculate(ctx, w, comp, periodStart, periodEnd)
	if err != nil {
		s.logger.Warn("payroll calculation failed",
			zap.String("request_id", rid),
			zap.String("worker_id", workerID),
			zap.Error(err),
		)
		return PayrollResponse{}, false, err
	}

	rec := buildRecord(w, comp.PayrollSettings, result, periodStart, periodEnd, actor.UserID)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("generate payroll begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollResponse{}, false, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, rec); err != nil {
		if isPeriodConflict(err) {
			return s.resolveLostRace(ctx, rid, companyID, workerID, periodStart, periodEnd)
		}
		s.logger.Error("generate payroll persist failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollResponse{}, false, err
	}

	if err := s.enqueueGenerated(ctx, tx, rec); err != nil {
		return PayrollResponse{}, false, err
	}

	if err := tx.Commit(); err != nil {
		if isPeriodConflict(err) {
			return s.resolveLostRace(ctx, rid, companyID, workerID, periodStart, periodEnd)
		}
		s.logger.Error("generate payroll commit failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollResponse{}, false, err
	}

	s.logger.Info("payroll generated",
		zap.String("request_id", rid),
		zap.String("payroll_id", rec.ID.String()),
		zap.String("worker_id", workerID),
		zap.String("payment_type", string(rec.PaymentType)),
		zap.String("net_pay", rec.NetPay.StringFixed(2)),
	)
	return mapToResponse(*rec), true, nil
}

// buildRecord applies allowances, statutory schemes and custom deductions on
// top of the calculated gross pay.
func buildRecord(
	w *worker.Worker,
	settings company.PayrollSettings,
	calc Calculation,
	periodStart, periodEnd time.Time,
	generatedBy string,
) *Record {
	allowances, totalAllowances := worker.ApplyAll(w.PayrollInfo.Allowances, calc.GrossPay)
	earnings := statutory.Round(calc.GrossPay.Add(totalAllowances))

	ded := statutory.Deductions(StatutoryWage(w, earnings), settings.Schemes())

	others, otherTotal := worker.ApplyAll(w.PayrollInfo.Deductions, earnings)
	totalDeductions := statutory.Round(ded.TotalEmployee.Add(otherTotal))

	return &Record{
		ID:              uuid.New(),
		CompanyID:       w.CompanyID,
		WorkerID:        w.ID,
		PeriodStart:     periodStart,
		PeriodEnd:       periodEnd,
		PaymentType:     calc.PaymentType,
		Monthly:         calc.Monthly,
		Hourly:          calc.Hourly,
		Unit:            calc.Unit,
		GrossPay:        calc.GrossPay,
		Allowances:      allowances,
		TotalAllowances: totalAllowances,
		EPF:             ded.EPF,
		SOCSO:           ded.SOCSO,
		EIS:             ded.EIS,
		Deductions:      others,
		OtherDeductions: otherTotal,
		TotalDeductions: totalDeductions,
		NetPay:          statutory.Round(earnings.Sub(totalDeductions)),
		Status:          StatusDraft,
		PaymentStatus:   PaymentPending,
		GeneratedBy:     generatedBy,
	}
}

// StatutoryWage is the monthly wage the EPF/SOCSO/EIS tables are read with.
// Hourly workers are normalised to a notional month.
func StatutoryWage(w *worker.Worker, earnings decimal.Decimal) decimal.Decimal {
	switch w.PaymentType {
	case worker.PaymentMonthlySalary:
		return w.PayrollInfo.MonthlySalary
	case worker.PaymentHourly:
		return statutory.HourlyToMonthly(w.PayrollInfo.HourlyRate)
	default:
		return earnings
	}
}

func isPeriodConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *service) resolveLostRace(ctx context.Context, rid, companyID, workerID string, start, end time.Time) (PayrollResponse, bool, error) {
	winner, err := s.repo.FindByPeriod(ctx, companyID, workerID, start, end)
	if err != nil {
		s.logger.Error("re-read payroll after unique violation failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollResponse{}, false, err
	}
	s.logger.Info("payroll generated concurrently, returning existing record",
		zap.String("request_id", rid),
		zap.String("payroll_id", winner.ID.String()),
	)
	return mapToResponse(*winner), false, nil
}

func (s *service) enqueueGenerated(ctx context.Context, tx *sql.Tx, rec *Record) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	ev, err := kafka.NewOutboxEvent(rid, "payroll", rec.ID.String(), events.EventPayrollGenerated,
		events.PayrollRecordGeneratedTopic, events.PayrollGeneratedEvent{
			EventType:   events.EventPayrollGenerated,
			RequestID:   rid,
			PayrollID:   rec.ID.String(),
			WorkerID:    rec.WorkerID.String(),
			CompanyID:   rec.CompanyID.String(),
			PeriodStart: rec.PeriodStart.Format(dateLayout),
			PeriodEnd:   rec.PeriodEnd.Format(dateLayout),
			NetPay:      rec.NetPay.StringFixed(2),
			OccurredAt:  time.Now().UTC(),
		})
	if err != nil {
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, ev); err != nil {
		s.logger.Error("payroll outbox persist failed", zap.String("payroll_id", rec.ID.String()), zap.Error(err))
		return err
	}
	return nil
}

// EnqueueBatch queues one generate request per active worker. The consumer
// process picks them up and calls GeneratePayroll as the requesting actor.
func (s *service) EnqueueBatch(ctx context.Context, actor domain.Actor, companyID string, periodStart, periodEnd time.Time) (BatchResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if periodEnd.Before(periodStart) {
		return BatchResponse{}, payrollerrors.ErrInvalidDateRange
	}
	if err := s.authz.Authorize(actor, domain.ResourcePayroll, domain.ActionGenerate,
		domain.Target{CompanyID: companyID}); err != nil {
		return BatchResponse{}, err
	}

	workers, err := s.workers.FindAllByCompany(ctx, companyID, worker.ListFilter{ActiveOnly: true})
	if err != nil {
		return BatchResponse{}, err
	}
	if len(workers) == 0 {
		return BatchResponse{}, payrollerrors.ErrNoActiveWorkers
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BatchResponse{}, err
	}
	defer tx.Rollback()

	batchID := uuid.NewString()
	outbox := s.outbox.WithTx(tx)
	now := time.Now().UTC()
	for _, w := range workers {
		ev, err := kafka.NewOutboxEvent(rid, "payroll_batch", batchID, events.EventPayrollGenerateRequested,
			events.PayrollGenerateRequestedTopic, events.PayrollGenerateRequestedEvent{
				EventType:   events.EventPayrollGenerateRequested,
				RequestID:   rid,
				BatchID:     batchID,
				WorkerID:    w.ID.String(),
				CompanyID:   companyID,
				PeriodStart: periodStart.Format(dateLayout),
				PeriodEnd:   periodEnd.Format(dateLayout),
				RequestedBy: actor.UserID,
				Role:        string(actor.Role),
				OccurredAt:  now,
			})
		if err != nil {
			return BatchResponse{}, err
		}
		if err := outbox.Create(ctx, ev); err != nil {
			s.logger.Error("payroll batch outbox persist failed", zap.String("batch_id", batchID), zap.Error(err))
			return BatchResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return BatchResponse{}, err
	}

	s.logger.Info("payroll batch enqueued",
		zap.String("request_id", rid),
		zap.String("batch_id", batchID),
		zap.String("company_id", companyID),
		zap.Int("workers", len(workers)),
	)
	return BatchResponse{BatchID: batchID, Enqueued: len(workers)}, nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Actor, id string) (PayrollResponse, error) {
	rec, err := s.load(ctx, actor, id, domain.ActionRead)
	if err != nil {
		return PayrollResponse{}, err
	}
	return mapToResponse(*rec), nil
}

func (s *service) List(ctx context.Context, actor domain.Actor, filter ListFilter) ([]PayrollResponse, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, payrollerrors.ErrInvalidStatusFilter
	}
	if err := s.authz.Authorize(actor, domain.ResourcePayroll, domain.ActionRead,
		domain.Target{CompanyID: actor.CompanyID, WorkerID: actor.WorkerID}); err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleWorker {
		filter.WorkerID = actor.WorkerID
	}

	rows, err := s.repo.FindAllByCompany(ctx, actor.CompanyID, filter)
	if err != nil {
		return nil, err
	}
	res := make([]PayrollResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) Approve(ctx context.Context, actor domain.Actor, id string) (PayrollResponse, error) {
	rec, err := s.load(ctx, actor, id, domain.ActionApprove)
	if err != nil {
		return PayrollResponse{}, err
	}
	if err := requireStatus(rec, StatusDraft); err != nil {
		return PayrollResponse{}, err
	}

	now := time.Now().UTC()
	rec.Status = StatusApproved
	rec.ApprovedBy = &actor.UserID
	rec.ApprovedAt = &now
	if err := s.repo.Update(ctx, rec); err != nil {
		s.logger.Error("approve payroll persist failed", zap.String("payroll_id", id), zap.Error(err))
		return PayrollResponse{}, err
	}

	s.logger.Info("payroll approved", zap.String("payroll_id", id), zap.String("by", actor.UserID))
	return mapToResponse(*rec), nil
}

func (s *service) MarkPaid(ctx context.Context, actor domain.Actor, id string) (PayrollResponse, error) {
	rec, err := s.load(ctx, actor, id, domain.ActionPay)
	if err != nil {
		return PayrollResponse{}, err
	}
	if err := requireStatus(rec, StatusApproved); err != nil {
		return PayrollResponse{}, err
	}

	now := time.Now().UTC()
	rec.Status = StatusPaid
	rec.PaymentStatus = PaymentPaid
	rec.PaidAt = &now
	if err := s.repo.Update(ctx, rec); err != nil {
		s.logger.Error("mark payroll paid persist failed", zap.String("payroll_id", id), zap.Error(err))
		return PayrollResponse{}, err
	}

	s.logger.Info("payroll marked paid", zap.String("payroll_id", id), zap.String("by", actor.UserID))
	return mapToResponse(*rec), nil
}

func (s *service) Delete(ctx context.Context, actor domain.Actor, id string) error {
	rec, err := s.load(ctx, actor, id, domain.ActionDelete)
	if err != nil {
		return err
	}
	if rec.Status != StatusDraft {
		return payrollerrors.ErrDeleteOnlyDraft.WithDetails(map[string]string{"current_status": string(rec.Status)})
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete payroll failed", zap.String("payroll_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *service) Payslip(ctx context.Context, actor domain.Actor, id string) (Payslip, error) {
	rec, err := s.load(ctx, actor, id, domain.ActionRead)
	if err != nil {
		return Payslip{}, err
	}

	w, err := s.workers.FindByID(ctx, rec.WorkerID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Payslip{}, workererrors.ErrWorkerNotFound
		}
		return Payslip{}, err
	}

	content, err := RenderPayslip(*rec, *w)
	if err != nil {
		s.logger.Error("render payslip failed", zap.String("payroll_id", id), zap.Error(err))
		return Payslip{}, err
	}
	return Payslip{FileName: PayslipFileName(*rec, *w), Content: content}, nil
}

func (s *service) load(ctx context.Context, actor domain.Actor, id, action string) (*Record, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, payrollerrors.ErrInvalidPayrollID
	}
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrollerrors.ErrPayrollNotFound
		}
		return nil, err
	}
	if err := s.authz.Authorize(actor, domain.ResourcePayroll, action,
		domain.Target{CompanyID: rec.CompanyID.String(), WorkerID: rec.WorkerID.String()}); err != nil {
		return nil, err
	}
	return rec, nil
}

func requireStatus(rec *Record, required Status) error {
	if rec.Status == required {
		return nil
	}
	return payrollerrors.ErrInvalidStatusTransition.WithDetails(map[string]string{
		"current_status":  string(rec.Status),
		"required_status": string(required),
	})
}

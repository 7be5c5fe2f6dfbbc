package payroll_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"

	companyerrors "go-payroll/internal/company/errors"
	"go-payroll/internal/domain"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	kafkaMock "go-payroll/internal/messaging/kafka/mock"
	"go-payroll/internal/payroll"
	payrollerrors "go-payroll/internal/payroll/errors"
	payrollMock "go-payroll/internal/payroll/mock"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/statutory"
	"go-payroll/internal/worker"
	workererrors "go-payroll/internal/worker/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

var allowAll = domain.AuthorizerFunc(func(domain.Actor, string, string, domain.Target) error { return nil })

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	repo      *payrollMock.MockRepository
	outbox    *kafkaMock.MockOutboxRepository
	workers   *payrollMock.MockWorkerSource
	companies *payrollMock.MockCompanyReader
	calc      *payrollMock.MockCalculator
	authz     domain.Authorizer
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		repo:      payrollMock.NewMockRepository(ctrl),
		outbox:    kafkaMock.NewMockOutboxRepository(ctrl),
		workers:   payrollMock.NewMockWorkerSource(ctrl),
		companies: payrollMock.NewMockCompanyReader(ctrl),
		calc:      payrollMock.NewMockCalculator(ctrl),
		authz:     allowAll,
	}
}

func (d *serviceDeps) service() payroll.Service {
	calcs := payroll.Calculators{
		worker.PaymentMonthlySalary: d.calc,
		worker.PaymentHourly:        d.calc,
		worker.PaymentUnitBased:     d.calc,
	}
	return payroll.NewService(d.db, d.repo, d.outbox, d.workers, d.companies, calcs, d.authz)
}

func monthlyWorker() *worker.Worker {
	return newWorker(worker.PaymentMonthlySalary, worker.PayrollInfo{
		MonthlySalary: dec("3000"),
		Allowances:    []worker.Adjustment{worker.Fixed("Transport", dec("200"))},
		Deductions:    []worker.Adjustment{worker.Percentage("Union", dec("1"))},
	})
}

func monthlyCalculation() payroll.Calculation {
	return payroll.Calculation{
		PaymentType: worker.PaymentMonthlySalary,
		GrossPay:    dec("3000"),
		Monthly:     &payroll.MonthlyBreakdown{MonthlySalary: dec("3000"), BaseSalary: dec("3000"), WorkingDays: 20, ActualDays: dec("20")},
	}
}

func TestPayrollService_GeneratePayroll(t *testing.T) {
	start, end := date("2024-06-01"), date("2024-06-30")
	actor := domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}

	t.Run("creates record and queues generated event in one transaction", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := context.Background()
		w := monthlyWorker()
		comp := defaultCompany()

		deps.workers.EXPECT().FindByID(ctx, w.ID.String()).Return(w, nil)
		deps.repo.EXPECT().FindByPeriod(ctx, w.CompanyID.String(), w.ID.String(), start, end).Return(nil, gorm.ErrRecordNotFound)
		deps.companies.EXPECT().GetByID(ctx, w.CompanyID.String()).Return(comp, nil)
		deps.calc.EXPECT().Calculate(ctx, w, comp, start, end).Return(monthlyCalculation(), nil)

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, rec *payroll.Record) error {
			assert.Equal(t, payroll.StatusDraft, rec.Status)
			assert.Equal(t, payroll.PaymentPending, rec.PaymentStatus)
			assert.Equal(t, "admin-1", rec.GeneratedBy)
			return nil
		})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, ev kafka.OutboxEvent) error {
			assert.Equal(t, events.EventPayrollGenerated, ev.EventType)
			assert.Equal(t, events.PayrollRecordGeneratedTopic, ev.Topic)
			var payload events.PayrollGeneratedEvent
			require.NoError(t, json.Unmarshal(ev.Payload, &payload))
			assert.Equal(t, "2817.00", payload.NetPay)
			assert.Equal(t, "2024-06-01", payload.PeriodStart)
			return nil
		})
		deps.sqlMock.ExpectCommit()

		resp, created, err := deps.service().GeneratePayroll(ctx, actor, w.ID.String(), start, end)

		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, 3000.0, resp.GrossPay)
		assert.Equal(t, 200.0, resp.TotalAllowances)
		assert.Equal(t, 330.0, resp.EPF.EmployeeContribution)
		assert.Equal(t, 390.0, resp.EPF.EmployerContribution)
		assert.Equal(t, 15.0, resp.SOCSO.EmployeeContribution)
		assert.Equal(t, 6.0, resp.EIS.EmployeeContribution)
		assert.Equal(t, 32.0, resp.OtherDeductions)
		assert.Equal(t, 383.0, resp.TotalDeductions)
		assert.Equal(t, 2817.0, resp.NetPay)
		assert.Equal(t, resp.GrossPay+resp.TotalAllowances-resp.TotalDeductions, resp.NetPay)
		require.NotNil(t, resp.Monthly)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("disabled schemes are not deducted", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := context.Background()
		w := newWorker(worker.PaymentMonthlySalary, worker.PayrollInfo{MonthlySalary: dec("3000")})
		comp := defaultCompany()
		comp.PayrollSettings.SOCSOEnabled = false
		comp.PayrollSettings.EISEnabled = false

		deps.workers.EXPECT().FindByID(ctx, w.ID.String()).Return(w, nil)
		deps.repo.EXPECT().FindByPeriod(ctx, gomock.Any(), gomock.Any(), start, end).Return(nil, gorm.ErrRecordNotFound)
		deps.companies.EXPECT().GetByID(ctx, gomock.Any()).Return(comp, nil)
		deps.calc.EXPECT().Calculate(ctx, w, comp, start, end).Return(monthlyCalculation(), nil)
		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.sqlMock.ExpectCommit()

		resp, _, err := deps.service().GeneratePayroll(ctx, actor, w.ID.String(), start, end)

		require.NoError(t, err)
		assert.Zero(t, resp.SOCSO.TotalContribution)
		assert.Zero(t, resp.EIS.TotalContribution)
		assert.Equal(t, 2670.0, resp.NetPay)
	})

	t.Run("existing record is returned without a new write", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := context.Background()
		w := monthlyWorker()
		existing := &payroll.Record{ID: uuid.New(), CompanyID: w.CompanyID, WorkerID: w.ID, PeriodStart: start, PeriodEnd: end,
			NetPay: dec("2817"), Status: payroll.StatusApproved}

		deps.workers.EXPECT().FindByID(ctx, w.ID.String()).Return(w, nil)
		deps.repo.EXPECT().FindByPeriod(ctx, w.CompanyID.String(), w.ID.String(), start, end).Return(existing, nil)

		resp, created, err := deps.service().GeneratePayroll(ctx, actor, w.ID.String(), start, end)

		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, existing.ID.String(), resp.ID)
		assert.Equal(t, "approved", resp.Status)
	})

	t.Run("lost race on unique index returns the winner", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := context.Background()
		w := monthlyWorker()
		comp := defaultCompany()
		winner := &payroll.Record{ID: uuid.New(), CompanyID: w.CompanyID, WorkerID: w.ID, PeriodStart: start, PeriodEnd: end, Status: payroll.StatusDraft}

		deps.workers.EXPECT().FindByID(ctx, w.ID.String()).Return(w, nil)
		gomock.InOrder(
			deps.repo.EXPECT().FindByPeriod(ctx, gomock.Any(), gomock.Any(), start, end).Return(nil, gorm.ErrRecordNotFound),
			deps.repo.EXPECT().FindByPeriod(ctx, gomock.Any(), gomock.Any(), start, end).Return(winner, nil),
		)
		deps.companies.EXPECT().GetByID(ctx, gomock.Any()).Return(comp, nil)
		deps.calc.EXPECT().Calculate(ctx, w, comp, start, end).Return(monthlyCalculation(), nil)
		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_payroll_records_period"})
		deps.sqlMock.ExpectRollback()

		resp, created, err := deps.service().GeneratePayroll(ctx, actor, w.ID.String(), start, end)

		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, winner.ID.String(), resp.ID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("configuration error propagates unchanged", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := context.Background()
		w := monthlyWorker()
		cfgErr := apperror.Configuration("payrollInfo.monthlySalary")

		deps.workers.EXPECT().FindByID(ctx, w.ID.String()).Return(w, nil)
		deps.repo.EXPECT().FindByPeriod(ctx, gomock.Any(), gomock.Any(), start, end).Return(nil, gorm.ErrRecordNotFound)
		deps.companies.EXPECT().GetByID(ctx, gomock.Any()).Return(defaultCompany(), nil)
		deps.calc.EXPECT().Calculate(ctx, w, gomock.Any(), start, end).Return(payroll.Calculation{}, cfgErr)

		_, _, err := deps.service().GeneratePayroll(ctx, actor, w.ID.String(), start, end)

		assert.Same(t, cfgErr, err)
	})

	t.Run("company missing", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := context.Background()
		w := monthlyWorker()

		deps.workers.EXPECT().FindByID(ctx, w.ID.String()).Return(w, nil)
		deps.repo.EXPECT().FindByPeriod(ctx, gomock.Any(), gomock.Any(), start, end).Return(nil, gorm.ErrRecordNotFound)
		deps.companies.EXPECT().GetByID(ctx, gomock.Any()).Return(nil, companyerrors.ErrCompanyNotFound)

		_, _, err := deps.service().GeneratePayroll(ctx, actor, w.ID.String(), start, end)
		assert.ErrorIs(t, err, companyerrors.ErrCompanyNotFound)
	})

	t.Run("other tenant forbidden", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := context.Background()
		w := monthlyWorker()
		deps.authz = domain.AuthorizerFunc(func(_ domain.Actor, resource, action string, target domain.Target) error {
			assert.Equal(t, domain.ResourcePayroll, resource)
			assert.Equal(t, domain.ActionGenerate, action)
			assert.Equal(t, w.CompanyID.String(), target.CompanyID)
			return apperror.ErrForbidden
		})
		deps.workers.EXPECT().FindByID(ctx, w.ID.String()).Return(w, nil)

		_, _, err := deps.service().GeneratePayroll(ctx, domain.Actor{Role: domain.RoleAgent, CompanyID: uuid.NewString()}, w.ID.String(), start, end)
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("input validation", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := context.Background()
		svc := deps.service()

		_, _, err := svc.GeneratePayroll(ctx, actor, "not-a-uuid", start, end)
		assert.ErrorIs(t, err, workererrors.ErrInvalidWorkerID)

		_, _, err = svc.GeneratePayroll(ctx, actor, uuid.NewString(), end, start)
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidDateRange)

		id := uuid.NewString()
		deps.workers.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)
		_, _, err = svc.GeneratePayroll(ctx, actor, id, start, end)
		assert.ErrorIs(t, err, workererrors.ErrWorkerNotFound)
	})
}

func TestStatutoryWage(t *testing.T) {
	earnings := dec("1234.56")

	monthly := newWorker(worker.PaymentMonthlySalary, worker.PayrollInfo{MonthlySalary: dec("3000")})
	hourly := newWorker(worker.PaymentHourly, worker.PayrollInfo{HourlyRate: dec("10")})
	unit := newWorker(worker.PaymentUnitBased, worker.PayrollInfo{})

	assert.Equal(t, "3000.00", payroll.StatutoryWage(monthly, earnings).StringFixed(2))
	assert.Equal(t, statutory.HourlyToMonthly(dec("10")).StringFixed(2), payroll.StatutoryWage(hourly, earnings).StringFixed(2))
	assert.Equal(t, "2080.00", payroll.StatutoryWage(hourly, earnings).StringFixed(2))
	assert.Equal(t, "1234.56", payroll.StatutoryWage(unit, earnings).StringFixed(2))
}

func draftRecord(status payroll.Status) *payroll.Record {
	return &payroll.Record{
		ID: uuid.New(), CompanyID: uuid.New(), WorkerID: uuid.New(),
		PeriodStart: date("2024-06-01"), PeriodEnd: date("2024-06-30"),
		GrossPay: dec("3000"), NetPay: dec("2817"), Status: status, PaymentStatus: payroll.PaymentPending,
	}
}

func TestPayrollService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	admin := domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}

	t.Run("approve draft", func(t *testing.T) {
		deps := setupServiceTest(t)
		rec := draftRecord(payroll.StatusDraft)
		deps.repo.EXPECT().FindByID(ctx, rec.ID.String()).Return(rec, nil)
		deps.repo.EXPECT().Update(ctx, rec).Return(nil)

		resp, err := deps.service().Approve(ctx, admin, rec.ID.String())

		require.NoError(t, err)
		assert.Equal(t, "approved", resp.Status)
		require.NotNil(t, resp.ApprovedBy)
		assert.Equal(t, "admin-1", *resp.ApprovedBy)
		assert.NotNil(t, resp.ApprovedAt)
	})

	t.Run("approve paid record fails with statuses", func(t *testing.T) {
		deps := setupServiceTest(t)
		rec := draftRecord(payroll.StatusPaid)
		deps.repo.EXPECT().FindByID(ctx, rec.ID.String()).Return(rec, nil)

		_, err := deps.service().Approve(ctx, admin, rec.ID.String())

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidStatusTransition)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, map[string]string{"current_status": "paid", "required_status": "draft"}, appErr.Details)
	})

	t.Run("mark paid", func(t *testing.T) {
		deps := setupServiceTest(t)
		rec := draftRecord(payroll.StatusApproved)
		deps.repo.EXPECT().FindByID(ctx, rec.ID.String()).Return(rec, nil)
		deps.repo.EXPECT().Update(ctx, rec).Return(nil)

		resp, err := deps.service().MarkPaid(ctx, admin, rec.ID.String())

		require.NoError(t, err)
		assert.Equal(t, "paid", resp.Status)
		assert.Equal(t, "paid", resp.PaymentStatus)
		assert.NotNil(t, resp.PaidAt)
	})

	t.Run("mark paid needs approval first", func(t *testing.T) {
		deps := setupServiceTest(t)
		rec := draftRecord(payroll.StatusDraft)
		deps.repo.EXPECT().FindByID(ctx, rec.ID.String()).Return(rec, nil)

		_, err := deps.service().MarkPaid(ctx, admin, rec.ID.String())
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidStatusTransition)
	})

	t.Run("delete draft only", func(t *testing.T) {
		deps := setupServiceTest(t)
		draft := draftRecord(payroll.StatusDraft)
		approved := draftRecord(payroll.StatusApproved)
		deps.repo.EXPECT().FindByID(ctx, draft.ID.String()).Return(draft, nil)
		deps.repo.EXPECT().Delete(ctx, draft.ID.String()).Return(nil)
		deps.repo.EXPECT().FindByID(ctx, approved.ID.String()).Return(approved, nil)

		svc := deps.service()
		require.NoError(t, svc.Delete(ctx, admin, draft.ID.String()))
		assert.ErrorIs(t, svc.Delete(ctx, admin, approved.ID.String()), payrollerrors.ErrDeleteOnlyDraft)
	})

	t.Run("not found and bad id", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.NewString()
		deps.repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		svc := deps.service()
		_, err := svc.GetByID(ctx, admin, id)
		assert.ErrorIs(t, err, payrollerrors.ErrPayrollNotFound)

		_, err = svc.GetByID(ctx, admin, "x")
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidPayrollID)
	})
}

func TestPayrollService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("worker sees only own records", func(t *testing.T) {
		deps := setupServiceTest(t)
		actor := domain.Actor{UserID: "u1", Role: domain.RoleWorker, CompanyID: "c1", WorkerID: "w1"}
		deps.repo.EXPECT().FindAllByCompany(ctx, "c1", payroll.ListFilter{WorkerID: "w1"}).
			Return([]payroll.Record{*draftRecord(payroll.StatusDraft)}, nil)

		res, err := deps.service().List(ctx, actor, payroll.ListFilter{WorkerID: "w2"})

		require.NoError(t, err)
		assert.Len(t, res, 1)
	})

	t.Run("unknown status", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service().List(ctx, domain.Actor{Role: domain.RoleAdmin}, payroll.ListFilter{Status: "void"})
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidStatusFilter)
	})
}

func TestPayrollService_EnqueueBatch(t *testing.T) {
	ctx := context.Background()
	start, end := date("2024-06-01"), date("2024-06-30")
	companyID := uuid.NewString()
	actor := domain.Actor{UserID: "agent-1", Role: domain.RoleAgent, CompanyID: companyID}

	t.Run("one event per active worker", func(t *testing.T) {
		deps := setupServiceTest(t)
		workers := []worker.Worker{*monthlyWorker(), *monthlyWorker()}
		deps.workers.EXPECT().FindAllByCompany(ctx, companyID, worker.ListFilter{ActiveOnly: true}).Return(workers, nil)

		deps.sqlMock.ExpectBegin()
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		var seen []string
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).Times(2).DoAndReturn(func(_ context.Context, ev kafka.OutboxEvent) error {
			assert.Equal(t, events.PayrollGenerateRequestedTopic, ev.Topic)
			var payload events.PayrollGenerateRequestedEvent
			require.NoError(t, json.Unmarshal(ev.Payload, &payload))
			assert.Equal(t, "agent-1", payload.RequestedBy)
			assert.Equal(t, "agent", payload.Role)
			assert.Equal(t, "2024-06-30", payload.PeriodEnd)
			seen = append(seen, payload.WorkerID)
			return nil
		})
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service().EnqueueBatch(ctx, actor, companyID, start, end)

		require.NoError(t, err)
		assert.Equal(t, 2, resp.Enqueued)
		assert.NotEmpty(t, resp.BatchID)
		assert.ElementsMatch(t, []string{workers[0].ID.String(), workers[1].ID.String()}, seen)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("outbox failure rolls back", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.workers.EXPECT().FindAllByCompany(ctx, companyID, gomock.Any()).Return([]worker.Worker{*monthlyWorker()}, nil)
		deps.sqlMock.ExpectBegin()
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("insert failed"))
		deps.sqlMock.ExpectRollback()

		_, err := deps.service().EnqueueBatch(ctx, actor, companyID, start, end)

		assert.EqualError(t, err, "insert failed")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("no active workers", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.workers.EXPECT().FindAllByCompany(ctx, companyID, gomock.Any()).Return(nil, nil)

		_, err := deps.service().EnqueueBatch(ctx, actor, companyID, start, end)
		assert.ErrorIs(t, err, payrollerrors.ErrNoActiveWorkers)
	})
}

func TestPayrollService_Payslip(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	rec := draftRecord(payroll.StatusApproved)
	rec.Monthly = &payroll.MonthlyBreakdown{BaseSalary: dec("3000"), WorkingDays: 20, ActualDays: dec("20")}
	w := monthlyWorker()
	w.ID = rec.WorkerID

	deps.repo.EXPECT().FindByID(ctx, rec.ID.String()).Return(rec, nil)
	deps.workers.EXPECT().FindByID(ctx, rec.WorkerID.String()).Return(w, nil)

	slip, err := deps.service().Payslip(ctx, domain.Actor{Role: domain.RoleAdmin}, rec.ID.String())

	require.NoError(t, err)
	assert.Equal(t, "payslip-w-001-2024-06.pdf", slip.FileName)
	assert.Equal(t, "%PDF", string(slip.Content[:4]))
}

package payroll

import (
	"context"
	"sort"
	"time"

	"go-payroll/internal/company"
	"go-payroll/internal/holiday"
	"go-payroll/internal/leave"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/statutory"
	"go-payroll/internal/timesheet"
	"go-payroll/internal/unitrecord"
	"go-payroll/internal/worker"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// FallbackWorkingDays is used when the holiday calendar cannot be read.
const FallbackWorkingDays = 22

//go:generate mockgen -source=calculator.go -destination=mock/calculator_mock.go -package=mock
type HolidayCalendar interface {
	HolidaysBetween(ctx context.Context, companyID string, start, end time.Time) ([]holiday.Holiday, error)
}

type LeaveSource interface {
	ApprovedLeaveDays(ctx context.Context, companyID, workerID string, start, end time.Time) (leave.LeaveDays, error)
}

type TimesheetSource interface {
	FindApprovedInPeriod(ctx context.Context, companyID, workerID string, start, end time.Time) ([]timesheet.Timesheet, error)
}

type UnitSource interface {
	FindApprovedInPeriod(ctx context.Context, companyID, workerID string, start, end time.Time) ([]unitrecord.UnitRecord, error)
}

// Calculation is the gross pay for one payment model plus the breakdown that
// produced it. Exactly one breakdown is set.
type Calculation struct {
	PaymentType worker.PaymentType
	GrossPay    decimal.Decimal
	Monthly     *MonthlyBreakdown
	Hourly      *HourlyBreakdown
	Unit        *UnitBreakdown
}

type Calculator interface {
	Calculate(ctx context.Context, w *worker.Worker, c *company.Company, start, end time.Time) (Calculation, error)
}

// Calculators dispatches on the worker's payment type.
type Calculators map[worker.PaymentType]Calculator

func NewCalculators(holidays HolidayCalendar, leaves LeaveSource, timesheets TimesheetSource, units UnitSource, logger ...*zap.Logger) Calculators {
	l := zap.L().Named("payroll.calculator")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.calculator")
	}
	return Calculators{
		worker.PaymentMonthlySalary: &MonthlyCalculator{holidays: holidays, leaves: leaves, logger: l},
		worker.PaymentHourly:        &HourlyCalculator{timesheets: timesheets},
		worker.PaymentUnitBased:     &UnitCalculator{units: units},
	}
}

func (c Calculators) For(pt worker.PaymentType) (Calculator, error) {
	calc, ok := c[pt]
	if !ok {
		return nil, apperror.Configuration("paymentType")
	}
	return calc, nil
}

type MonthlyCalculator struct {
	holidays HolidayCalendar
	leaves   LeaveSource
	logger   *zap.Logger
}

func NewMonthlyCalculator(holidays HolidayCalendar, leaves LeaveSource, logger *zap.Logger) *MonthlyCalculator {
	return &MonthlyCalculator{holidays: holidays, leaves: leaves, logger: logger}
}

// Calculate prorates the monthly salary by calendar days only when unpaid
// leave was taken. Paid leave never reduces pay.
func (m *MonthlyCalculator) Calculate(ctx context.Context, w *worker.Worker, c *company.Company, start, end time.Time) (Calculation, error) {
	salary := w.PayrollInfo.MonthlySalary
	if !salary.IsPositive() {
		return Calculation{}, apperror.Configuration("payrollInfo.monthlySalary")
	}

	companyID, workerID := w.CompanyID.String(), w.ID.String()

	workingDays := FallbackWorkingDays
	if holidays, err := m.holidays.HolidaysBetween(ctx, companyID, start, end); err != nil {
		m.logger.Warn("holiday lookup failed, using fallback working days",
			zap.String("company_id", companyID),
			zap.Int("working_days", FallbackWorkingDays),
			zap.Error(err),
		)
	} else {
		workingDays = WorkingDays(start, end, holiday.Set(holidays))
	}

	days, err := m.leaves.ApprovedLeaveDays(ctx, companyID, workerID, start, end)
	if err != nil {
		m.logger.Warn("leave lookup failed, assuming no leave",
			zap.String("worker_id", workerID),
			zap.Error(err),
		)
		days = leave.LeaveDays{}
	}

	actual := decimal.Max(decimal.Zero, decimal.NewFromInt(int64(workingDays)).Sub(days.Unpaid))
	base := salary
	if days.Unpaid.IsPositive() {
		base = statutory.Round(salary.Div(decimal.NewFromInt(int64(DaysInMonth(start)))).Mul(actual))
	}

	return Calculation{
		PaymentType: worker.PaymentMonthlySalary,
		GrossPay:    base,
		Monthly: &MonthlyBreakdown{
			MonthlySalary:   salary,
			BaseSalary:      base,
			WorkingDays:     workingDays,
			ActualDays:      actual,
			PaidLeaveDays:   days.Paid,
			UnpaidLeaveDays: days.Unpaid,
		},
	}, nil
}

type HourlyCalculator struct {
	timesheets TimesheetSource
}

func NewHourlyCalculator(timesheets TimesheetSource) *HourlyCalculator {
	return &HourlyCalculator{timesheets: timesheets}
}

func (h *HourlyCalculator) Calculate(ctx context.Context, w *worker.Worker, c *company.Company, start, end time.Time) (Calculation, error) {
	rate := w.PayrollInfo.HourlyRate
	if !rate.IsPositive() {
		return Calculation{}, apperror.Configuration("payrollInfo.hourlyRate")
	}

	sheets, err := h.timesheets.FindApprovedInPeriod(ctx, w.CompanyID.String(), w.ID.String(), start, end)
	if err != nil {
		return Calculation{}, err
	}

	var hours statutory.Hours
	total := decimal.Zero
	for _, ts := range sheets {
		hours = hours.Add(statutory.Hours{
			Normal: ts.TotalNormalHours,
			OT1_5:  ts.TotalOT1_5Hours,
			OT2_0:  ts.TotalOT2_0Hours,
		})
		total = total.Add(ts.TotalHours)
	}

	ot := c.PayrollSettings.OTRates()
	pay := statutory.GrossPay(hours, rate, ot)

	return Calculation{
		PaymentType: worker.PaymentHourly,
		GrossPay:    pay.GrossPay,
		Hourly: &HourlyBreakdown{
			HourlyRate: rate,
			Hours:      hours,
			TotalHours: total,
			OT1_5Rate:  ot.OT1_5,
			OT2_0Rate:  ot.OT2_0,
			NormalPay:  pay.NormalPay,
			OT1_5Pay:   pay.OT1_5Pay,
			OT2_0Pay:   pay.OT2_0Pay,
			Timesheets: len(sheets),
		},
	}, nil
}

type UnitCalculator struct {
	units UnitSource
}

func NewUnitCalculator(units UnitSource) *UnitCalculator {
	return &UnitCalculator{units: units}
}

// Calculate sums the stored per-record amounts. Rates are not re-applied.
func (u *UnitCalculator) Calculate(ctx context.Context, w *worker.Worker, c *company.Company, start, end time.Time) (Calculation, error) {
	records, err := u.units.FindApprovedInPeriod(ctx, w.CompanyID.String(), w.ID.String(), start, end)
	if err != nil {
		return Calculation{}, err
	}

	byType := make(map[string]*UnitSummary)
	var breakdown UnitBreakdown
	gross := decimal.Zero
	for _, r := range records {
		s, ok := byType[r.UnitType]
		if !ok {
			s = &UnitSummary{UnitType: r.UnitType}
			byType[r.UnitType] = s
		}
		s.Records++
		s.UnitsCompleted += r.UnitsCompleted
		s.UnitsRejected += r.UnitsRejected
		s.AcceptedUnits += r.AcceptedUnits()
		s.Amount = s.Amount.Add(r.TotalAmount)

		breakdown.AcceptedUnits += r.AcceptedUnits()
		gross = gross.Add(r.TotalAmount)
	}

	breakdown.Items = make([]UnitSummary, 0, len(byType))
	for _, s := range byType {
		s.Amount = statutory.Round(s.Amount)
		breakdown.Items = append(breakdown.Items, *s)
	}
	sort.Slice(breakdown.Items, func(i, j int) bool {
		return breakdown.Items[i].UnitType < breakdown.Items[j].UnitType
	})

	return Calculation{
		PaymentType: worker.PaymentUnitBased,
		GrossPay:    statutory.Round(gross),
		Unit:        &breakdown,
	}, nil
}

// WorkingDays counts Monday to Friday in [start, end] that are not holidays.
func WorkingDays(start, end time.Time, holidays map[string]string) int {
	n := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		if _, ok := holidays[d.Format(dateLayout)]; ok {
			continue
		}
		n++
	}
	return n
}

func DaysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

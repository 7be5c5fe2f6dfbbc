package payroll

import (
	"time"

	"go-payroll/internal/statutory"
	"go-payroll/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type Status string

const (
	StatusDraft    Status = "draft"
	StatusApproved Status = "approved"
	StatusPaid     Status = "paid"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusApproved, StatusPaid:
		return true
	default:
		return false
	}
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// Record is one worker's payroll for one period. The unique index on
// (company, worker, period) is what makes generation idempotent.
type Record struct {
	ID          uuid.UUID          `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_records_period,priority:1;index:idx_payroll_records_company_status,priority:1"`
	WorkerID    uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_records_period,priority:2"`
	PeriodStart time.Time          `gorm:"type:date;not null;uniqueIndex:uq_payroll_records_period,priority:3"`
	PeriodEnd   time.Time          `gorm:"type:date;not null;uniqueIndex:uq_payroll_records_period,priority:4"`
	PaymentType worker.PaymentType `gorm:"type:varchar(20);not null"`

	Monthly *MonthlyBreakdown `gorm:"type:jsonb;serializer:json"`
	Hourly  *HourlyBreakdown  `gorm:"type:jsonb;serializer:json"`
	Unit    *UnitBreakdown    `gorm:"type:jsonb;serializer:json"`

	GrossPay        decimal.Decimal            `gorm:"type:numeric(12,2);not null"`
	Allowances      []worker.AppliedAdjustment `gorm:"type:jsonb;serializer:json"`
	TotalAllowances decimal.Decimal            `gorm:"type:numeric(12,2);not null;default:0"`

	EPF             statutory.Contribution     `gorm:"column:epf;type:jsonb;serializer:json"`
	SOCSO           statutory.Contribution     `gorm:"column:socso;type:jsonb;serializer:json"`
	EIS             statutory.Contribution     `gorm:"column:eis;type:jsonb;serializer:json"`
	Deductions      []worker.AppliedAdjustment `gorm:"type:jsonb;serializer:json"`
	OtherDeductions decimal.Decimal            `gorm:"type:numeric(12,2);not null;default:0"`
	TotalDeductions decimal.Decimal            `gorm:"type:numeric(12,2);not null;default:0"`
	NetPay          decimal.Decimal            `gorm:"type:numeric(12,2);not null"`

	Status        Status        `gorm:"type:varchar(20);not null;default:'draft';index:idx_payroll_records_company_status,priority:2"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	GeneratedBy   string        `gorm:"type:varchar(64);not null"`
	ApprovedBy    *string       `gorm:"type:varchar(64)"`
	ApprovedAt    *time.Time
	PaidAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Record) TableName() string {
	return "payroll_records"
}

type MonthlyBreakdown struct {
	MonthlySalary   decimal.Decimal `json:"monthly_salary"`
	BaseSalary      decimal.Decimal `json:"base_salary"`
	WorkingDays     int             `json:"working_days"`
	ActualDays      decimal.Decimal `json:"actual_days_worked"`
	PaidLeaveDays   decimal.Decimal `json:"paid_leave_days"`
	UnpaidLeaveDays decimal.Decimal `json:"unpaid_leave_days"`
}

type HourlyBreakdown struct {
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	Hours      statutory.Hours `json:"hours"`
	TotalHours decimal.Decimal `json:"total_hours"`
	OT1_5Rate  decimal.Decimal `json:"ot1_5_rate"`
	OT2_0Rate  decimal.Decimal `json:"ot2_0_rate"`
	NormalPay  decimal.Decimal `json:"normal_pay"`
	OT1_5Pay   decimal.Decimal `json:"ot1_5_pay"`
	OT2_0Pay   decimal.Decimal `json:"ot2_0_pay"`
	Timesheets int             `json:"timesheets"`
}

type UnitSummary struct {
	UnitType       string          `json:"unit_type"`
	Records        int             `json:"records"`
	UnitsCompleted int             `json:"units_completed"`
	UnitsRejected  int             `json:"units_rejected"`
	AcceptedUnits  int             `json:"accepted_units"`
	Amount         decimal.Decimal `json:"amount"`
}

type UnitBreakdown struct {
	Items         []UnitSummary `json:"items"`
	AcceptedUnits int           `json:"accepted_units"`
}

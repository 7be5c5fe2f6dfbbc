package worker

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentType string

const (
	PaymentMonthlySalary PaymentType = "monthly-salary"
	PaymentHourly        PaymentType = "hourly"
	PaymentUnitBased     PaymentType = "unit-based"
)

func (p PaymentType) Valid() bool {
	switch p {
	case PaymentMonthlySalary, PaymentHourly, PaymentUnitBased:
		return true
	default:
		return false
	}
}

type Worker struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey"`
	CompanyID      uuid.UUID   `gorm:"type:uuid;not null;index;uniqueIndex:uq_workers_company_email,priority:1;uniqueIndex:uq_workers_company_number,priority:1"`
	UserID         *uuid.UUID  `gorm:"type:uuid"`
	FullName       string      `gorm:"not null"`
	Email          string      `gorm:"not null;uniqueIndex:uq_workers_company_email,priority:2"`
	EmployeeNumber string      `gorm:"not null;uniqueIndex:uq_workers_company_number,priority:2"`
	PaymentType    PaymentType `gorm:"type:varchar(20);not null"`
	PayrollInfo    PayrollInfo `gorm:"type:jsonb;serializer:json"`
	IsActive       bool        `gorm:"not null;default:true;index"`
	DeactivatedAt  *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PayrollInfo holds the rate for the worker's payment type plus recurring
// allowances and deductions.
type PayrollInfo struct {
	MonthlySalary decimal.Decimal `json:"monthly_salary"`
	HourlyRate    decimal.Decimal `json:"hourly_rate"`
	UnitRates     []UnitRate      `json:"unit_rates,omitempty"`
	Allowances    []Adjustment    `json:"allowances,omitempty"`
	Deductions    []Adjustment    `json:"deductions,omitempty"`
}

type UnitRate struct {
	UnitType    string          `json:"unit_type"`
	RatePerUnit decimal.Decimal `json:"rate_per_unit"`
}

// RateFor returns the configured rate for a unit type.
func (p PayrollInfo) RateFor(unitType string) (decimal.Decimal, bool) {
	for _, r := range p.UnitRates {
		if r.UnitType == unitType {
			return r.RatePerUnit, true
		}
	}
	return decimal.Zero, false
}

package unitrecord

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// UnitRecord is one day of piece-rate output for a worker.
type UnitRecord struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_unit_records_company_status,priority:1"`
	WorkerID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_unit_records_worker_date,priority:1"`
	UnitType       string          `gorm:"type:varchar(50);not null"`
	WorkDate       time.Time       `gorm:"type:date;not null;index:idx_unit_records_worker_date,priority:2"`
	UnitsCompleted int             `gorm:"not null;default:0"`
	UnitsRejected  int             `gorm:"not null;default:0"`
	RatePerUnit    decimal.Decimal `gorm:"type:numeric(12,4);not null"`
	TotalAmount    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Status         Status          `gorm:"type:varchar(20);not null;default:'pending';index:idx_unit_records_company_status,priority:2"`
	ReviewedBy     *string
	ReviewedAt     *time.Time
	IsDeleted      bool `gorm:"not null;default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (u *UnitRecord) AcceptedUnits() int {
	return u.UnitsCompleted - u.UnitsRejected
}

// BeforeSave keeps TotalAmount in step with the unit counts on every write.
func (u *UnitRecord) BeforeSave(*gorm.DB) error {
	u.TotalAmount = decimal.NewFromInt(int64(u.AcceptedUnits())).Mul(u.RatePerUnit).Round(2)
	return nil
}

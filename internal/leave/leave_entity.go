package leave

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusApproved  RequestStatus = "approved"
	StatusRejected  RequestStatus = "rejected"
	StatusCancelled RequestStatus = "cancelled"
)

// LeaveType is a company-defined kind of leave. DefaultDays seeds the yearly
// balance of every new worker.
type LeaveType struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_leave_types_company_code,priority:1"`
	Code        string          `gorm:"type:varchar(30);not null;uniqueIndex:uq_leave_types_company_code,priority:2"`
	Name        string          `gorm:"not null"`
	IsPaid      bool            `gorm:"not null;default:true"`
	DefaultDays decimal.Decimal `gorm:"type:numeric(5,1);not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LeaveBalance is one worker's allowance of one leave type for one year.
type LeaveBalance struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	WorkerID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balances_worker_type_year,priority:1"`
	LeaveTypeID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balances_worker_type_year,priority:2"`
	Year        int             `gorm:"not null;uniqueIndex:uq_leave_balances_worker_type_year,priority:3"`
	TotalDays   decimal.Decimal `gorm:"type:numeric(5,1);not null;default:0"`
	UsedDays    decimal.Decimal `gorm:"type:numeric(5,1);not null;default:0"`
	PendingDays decimal.Decimal `gorm:"type:numeric(5,1);not null;default:0"`
	LeaveType   LeaveType       `gorm:"foreignKey:LeaveTypeID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type LeaveRequest struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_leave_requests_company_status,priority:1"`
	WorkerID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_leave_requests_worker_dates,priority:1"`
	LeaveTypeID   uuid.UUID       `gorm:"type:uuid;not null"`
	StartDate     time.Time       `gorm:"type:date;not null;index:idx_leave_requests_worker_dates,priority:2"`
	EndDate       time.Time       `gorm:"type:date;not null;index:idx_leave_requests_worker_dates,priority:3"`
	Days          decimal.Decimal `gorm:"type:numeric(5,1);not null"`
	Reason        string          `gorm:"type:text"`
	Status        RequestStatus   `gorm:"type:varchar(20);not null;default:'pending';index:idx_leave_requests_company_status,priority:2"`
	RequestedBy   string          `gorm:"not null"`
	ReviewedBy    *string
	ReviewComment string `gorm:"type:text"`
	ReviewedAt    *time.Time
	LeaveType     LeaveType `gorm:"foreignKey:LeaveTypeID"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (r *LeaveRequest) review(by, comment string, status RequestStatus, at time.Time) {
	r.Status = status
	r.ReviewedBy = &by
	r.ReviewComment = comment
	r.ReviewedAt = &at
}

// LeaveDays is the approved leave of one worker inside a payroll period,
// counted in working days.
type LeaveDays struct {
	Paid   decimal.Decimal
	Unpaid decimal.Decimal
}

// WorkingDays counts Monday to Friday in [start, end].
func WorkingDays(start, end time.Time) int {
	n := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			n++
		}
	}
	return n
}

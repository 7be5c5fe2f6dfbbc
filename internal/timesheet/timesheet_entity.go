package timesheet

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	dateLayout = "2006-01-02"
	daysInWeek = 7

	LeaveTypePublicHoliday = "PUBLIC_HOLIDAY"
)

// DailyEntry is one calendar day of a timesheet. Hour fields are derived
// from the clock times by Tier and never set directly by callers.
type DailyEntry struct {
	Date              time.Time       `json:"date"`
	ClockIn           *time.Time      `json:"clock_in,omitempty"`
	ClockOut          *time.Time      `json:"clock_out,omitempty"`
	LunchBreakMinutes int             `json:"lunch_break_minutes"`
	NormalHours       decimal.Decimal `json:"normal_hours"`
	OT1_5Hours        decimal.Decimal `json:"ot1_5_hours"`
	OT2_0Hours        decimal.Decimal `json:"ot2_0_hours"`
	TotalHours        decimal.Decimal `json:"total_hours"`
	IsAbsent          bool            `json:"is_absent"`
	LeaveType         string          `json:"leave_type,omitempty"`
	IsHoliday         bool            `json:"is_holiday"`
	HolidayName       string          `json:"holiday_name,omitempty"`
}

func (e DailyEntry) DateKey() string {
	return e.Date.Format(dateLayout)
}

type ApprovalEntry struct {
	ApprovedBy string    `json:"approved_by"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
	Comments   string    `json:"comments,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Timesheet is one worker's week at one site. The week totals are derived:
// every mutating path ends in RecalculateTotals.
type Timesheet struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID     uuid.UUID `gorm:"type:uuid;not null;index:idx_timesheets_company_week;uniqueIndex:uq_timesheets_worker_week_site,where:is_deleted = false"`
	WorkerID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_timesheets_worker_week_site"`
	WeekStartDate time.Time `gorm:"type:date;not null;index:idx_timesheets_company_week;uniqueIndex:uq_timesheets_worker_week_site"`
	Site          string    `gorm:"type:varchar(100);not null;default:'';uniqueIndex:uq_timesheets_worker_week_site"`

	DailyEntries []DailyEntry `gorm:"type:jsonb;serializer:json;not null"`

	TotalNormalHours decimal.Decimal `gorm:"type:numeric(8,2);not null;default:0"`
	TotalOT1_5Hours  decimal.Decimal `gorm:"column:total_ot1_5_hours;type:numeric(8,2);not null;default:0"`
	TotalOT2_0Hours  decimal.Decimal `gorm:"column:total_ot2_0_hours;type:numeric(8,2);not null;default:0"`
	TotalHours       decimal.Decimal `gorm:"type:numeric(8,2);not null;default:0"`

	Status          Status          `gorm:"type:varchar(20);not null;default:'draft';index"`
	ApprovalHistory []ApprovalEntry `gorm:"type:jsonb;serializer:json"`
	IsConflict      bool            `gorm:"not null;default:false"`
	ConflictWith    []string        `gorm:"type:jsonb;serializer:json"`
	IsDeleted       bool            `gorm:"not null;default:false;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Timesheet) TableName() string {
	return "timesheets"
}

// WeekStart returns the Monday (UTC date) of the week containing t.
func WeekStart(t time.Time) time.Time {
	d := dateOnly(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// NewTimesheet builds an empty draft week. holidays is keyed by yyyy-mm-dd.
func NewTimesheet(companyID, workerID uuid.UUID, weekStart time.Time, site string, holidays map[string]string) *Timesheet {
	weekStart = WeekStart(weekStart)
	entries := make([]DailyEntry, daysInWeek)
	for i := range entries {
		d := weekStart.AddDate(0, 0, i)
		entries[i] = DailyEntry{Date: d}
		if name, ok := holidays[d.Format(dateLayout)]; ok {
			entries[i].MarkHoliday(name)
		}
	}

	ts := &Timesheet{
		ID:            uuid.New(),
		CompanyID:     companyID,
		WorkerID:      workerID,
		WeekStartDate: weekStart,
		Site:          site,
		DailyEntries:  entries,
		Status:        StatusDraft,
	}
	ts.RecalculateTotals()
	return ts
}

// WeekEnd is the Sunday closing the timesheet's week.
func (t *Timesheet) WeekEnd() time.Time {
	return t.WeekStartDate.AddDate(0, 0, daysInWeek-1)
}

// Entry returns the entry for the given day, or nil when the day is outside the week.
func (t *Timesheet) Entry(date time.Time) *DailyEntry {
	key := date.Format(dateLayout)
	for i := range t.DailyEntries {
		if t.DailyEntries[i].DateKey() == key {
			return &t.DailyEntries[i]
		}
	}
	return nil
}

// RecalculateTotals resets the week totals to the sum over DailyEntries.
func (t *Timesheet) RecalculateTotals() {
	var normal, ot15, ot20, total decimal.Decimal
	for _, e := range t.DailyEntries {
		normal = normal.Add(e.NormalHours)
		ot15 = ot15.Add(e.OT1_5Hours)
		ot20 = ot20.Add(e.OT2_0Hours)
		total = total.Add(e.TotalHours)
	}
	t.TotalNormalHours = normal
	t.TotalOT1_5Hours = ot15
	t.TotalOT2_0Hours = ot20
	t.TotalHours = total
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

package timesheet

import "time"

type CreateTimesheetRequest struct {
	WorkerID      string `json:"worker_id" binding:"required,uuid"`
	WeekStartDate string `json:"week_start_date" binding:"required"`
	Site          string `json:"site" binding:"max=100"`
}

// UpdateEntryRequest edits one day. Clock times are HH:MM on the entry's
// date; a clock-out at or before the clock-in is read as the next day.
type UpdateEntryRequest struct {
	ClockIn           *string `json:"clock_in"`
	ClockOut          *string `json:"clock_out"`
	LunchBreakMinutes *int    `json:"lunch_break_minutes" binding:"omitempty,gte=0,lte=600"`
	IsAbsent          *bool   `json:"is_absent"`
	LeaveType         *string `json:"leave_type" binding:"omitempty,max=50"`
}

// ClockRequest is one attendance punch. At defaults to now; devices that
// sync late send the original punch time.
type ClockRequest struct {
	WorkerID          string     `json:"worker_id" binding:"omitempty,uuid"`
	Site              string     `json:"site" binding:"max=100"`
	At                *time.Time `json:"at"`
	LunchBreakMinutes *int       `json:"lunch_break_minutes" binding:"omitempty,gte=0,lte=600"`
}

type TransitionRequest struct {
	Comments string `json:"comments" binding:"max=500"`
}

type DailyEntryResponse struct {
	Date              string  `json:"date"`
	ClockIn           *string `json:"clock_in,omitempty"`
	ClockOut          *string `json:"clock_out,omitempty"`
	LunchBreakMinutes int     `json:"lunch_break_minutes"`
	NormalHours       float64 `json:"normal_hours"`
	OT1_5Hours        float64 `json:"ot1_5_hours"`
	OT2_0Hours        float64 `json:"ot2_0_hours"`
	TotalHours        float64 `json:"total_hours"`
	IsAbsent          bool    `json:"is_absent"`
	LeaveType         string  `json:"leave_type,omitempty"`
	IsHoliday         bool    `json:"is_holiday"`
	HolidayName       string  `json:"holiday_name,omitempty"`
}

type ApprovalEntryResponse struct {
	ApprovedBy string `json:"approved_by"`
	Role       string `json:"role"`
	Status     string `json:"status"`
	Comments   string `json:"comments,omitempty"`
	Timestamp  string `json:"timestamp"`
}

type TimesheetResponse struct {
	ID               string                  `json:"id"`
	CompanyID        string                  `json:"company_id"`
	WorkerID         string                  `json:"worker_id"`
	WeekStartDate    string                  `json:"week_start_date"`
	Site             string                  `json:"site"`
	Status           string                  `json:"status"`
	DailyEntries     []DailyEntryResponse    `json:"daily_entries"`
	TotalNormalHours float64                 `json:"total_normal_hours"`
	TotalOT1_5Hours  float64                 `json:"total_ot1_5_hours"`
	TotalOT2_0Hours  float64                 `json:"total_ot2_0_hours"`
	TotalHours       float64                 `json:"total_hours"`
	ApprovalHistory  []ApprovalEntryResponse `json:"approval_history"`
	IsConflict       bool                    `json:"is_conflict"`
	ConflictWith     []string                `json:"conflict_with"`
}

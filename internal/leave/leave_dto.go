package leave

type CreateLeaveTypeRequest struct {
	Code        string  `json:"code" binding:"required,max=30"`
	Name        string  `json:"name" binding:"required,max=100"`
	IsPaid      *bool   `json:"is_paid"`
	DefaultDays float64 `json:"default_days" binding:"gte=0,lte=365"`
}

type LeaveTypeResponse struct {
	ID          string  `json:"id"`
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	IsPaid      bool    `json:"is_paid"`
	DefaultDays float64 `json:"default_days"`
}

// CreateLeaveRequest files leave for WorkerID, or for the caller when the
// caller is a worker.
type CreateLeaveRequest struct {
	WorkerID    string `json:"worker_id" binding:"omitempty,uuid"`
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Reason      string `json:"reason" binding:"max=500"`
}

type ReviewRequest struct {
	Comment string `json:"comment" binding:"max=500"`
}

type LeaveRequestResponse struct {
	ID                string  `json:"id"`
	CompanyID         string  `json:"company_id"`
	WorkerID          string  `json:"worker_id"`
	LeaveTypeID       string  `json:"leave_type_id"`
	LeaveTypeCode     string  `json:"leave_type_code,omitempty"`
	StartDate         string  `json:"start_date"`
	EndDate           string  `json:"end_date"`
	Days              float64 `json:"days"`
	Reason            string  `json:"reason,omitempty"`
	Status            string  `json:"status"`
	RequestedBy       string  `json:"requested_by"`
	ReviewedBy        *string `json:"reviewed_by,omitempty"`
	ReviewComment     string  `json:"review_comment,omitempty"`
	TimesheetsUpdated int     `json:"timesheets_updated,omitempty"`
}

type LeaveBalanceResponse struct {
	LeaveTypeID   string  `json:"leave_type_id"`
	LeaveTypeCode string  `json:"leave_type_code"`
	IsPaid        bool    `json:"is_paid"`
	Year          int     `json:"year"`
	TotalDays     float64 `json:"total_days"`
	UsedDays      float64 `json:"used_days"`
	PendingDays   float64 `json:"pending_days"`
	RemainingDays float64 `json:"remaining_days"`
}

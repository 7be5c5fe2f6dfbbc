package events

import "time"

type TimesheetStatusChangedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	TimesheetID string    `json:"timesheet_id"`
	WorkerID    string    `json:"worker_id"`
	CompanyID   string    `json:"company_id"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	ChangedBy   string    `json:"changed_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}

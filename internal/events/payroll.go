package events

import "time"

type PayrollGeneratedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	PayrollID   string    `json:"payroll_id"`
	WorkerID    string    `json:"worker_id"`
	CompanyID   string    `json:"company_id"`
	PeriodStart string    `json:"period_start"`
	PeriodEnd   string    `json:"period_end"`
	NetPay      string    `json:"net_pay"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// PayrollGenerateRequestedEvent asks the consumer process to run payroll
// generation for one worker on behalf of RequestedBy.
type PayrollGenerateRequestedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	BatchID     string    `json:"batch_id"`
	WorkerID    string    `json:"worker_id"`
	CompanyID   string    `json:"company_id"`
	PeriodStart string    `json:"period_start"`
	PeriodEnd   string    `json:"period_end"`
	RequestedBy string    `json:"requested_by"`
	Role        string    `json:"role"`
	OccurredAt  time.Time `json:"occurred_at"`
}

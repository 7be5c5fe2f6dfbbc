// Package events holds Kafka topic names and the JSON payloads carried by
// outbox rows.
package events

const (
	PayrollRecordGeneratedTopic   = "payroll.record.generated.v1"
	PayrollGenerateRequestedTopic = "payroll.generate.requested.v1"
	TimesheetStatusChangedTopic   = "timesheet.status.changed.v1"
	WorkerLifecycleTopic          = "worker.lifecycle.v1"
)

const (
	EventPayrollGenerated         = "payroll.generated"
	EventPayrollGenerateRequested = "payroll.generate.requested"
	EventTimesheetStatusChanged   = "timesheet.status.changed"
	EventWorkerCreated            = "worker.created"
	EventWorkerDeactivated        = "worker.deactivated"
)

package payroll

type GeneratePayrollRequest struct {
	WorkerID    string `json:"worker_id" binding:"required,uuid"`
	PeriodStart string `json:"period_start" binding:"required"`
	PeriodEnd   string `json:"period_end" binding:"required"`
}

// BatchGenerateRequest.CompanyID lets an admin run another tenant's payroll;
// everyone else runs their own company.
type BatchGenerateRequest struct {
	CompanyID   string `json:"company_id" binding:"omitempty,uuid"`
	PeriodStart string `json:"period_start" binding:"required"`
	PeriodEnd   string `json:"period_end" binding:"required"`
}

type BatchResponse struct {
	BatchID  string `json:"batch_id"`
	Enqueued int    `json:"enqueued"`
}

type ContributionResponse struct {
	EmployeeContribution float64 `json:"employee_contribution"`
	EmployerContribution float64 `json:"employer_contribution"`
	TotalContribution    float64 `json:"total_contribution"`
}

type AdjustmentResponse struct {
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	Rate   float64 `json:"rate"`
	Amount float64 `json:"amount"`
}

type MonthlyResponse struct {
	MonthlySalary   float64 `json:"monthly_salary"`
	BaseSalary      float64 `json:"base_salary"`
	WorkingDays     int     `json:"working_days"`
	ActualDays      float64 `json:"actual_days_worked"`
	PaidLeaveDays   float64 `json:"paid_leave_days"`
	UnpaidLeaveDays float64 `json:"unpaid_leave_days"`
}

type HourlyResponse struct {
	HourlyRate  float64 `json:"hourly_rate"`
	NormalHours float64 `json:"normal_hours"`
	OT1_5Hours  float64 `json:"ot1_5_hours"`
	OT2_0Hours  float64 `json:"ot2_0_hours"`
	TotalHours  float64 `json:"total_hours"`
	OT1_5Rate   float64 `json:"ot1_5_rate"`
	OT2_0Rate   float64 `json:"ot2_0_rate"`
	NormalPay   float64 `json:"normal_pay"`
	OT1_5Pay    float64 `json:"ot1_5_pay"`
	OT2_0Pay    float64 `json:"ot2_0_pay"`
	Timesheets  int     `json:"timesheets"`
}

type UnitItemResponse struct {
	UnitType       string  `json:"unit_type"`
	Records        int     `json:"records"`
	UnitsCompleted int     `json:"units_completed"`
	UnitsRejected  int     `json:"units_rejected"`
	AcceptedUnits  int     `json:"accepted_units"`
	Amount         float64 `json:"amount"`
}

type UnitResponse struct {
	Items         []UnitItemResponse `json:"items"`
	AcceptedUnits int                `json:"accepted_units"`
}

type PayrollResponse struct {
	ID              string               `json:"id"`
	CompanyID       string               `json:"company_id"`
	WorkerID        string               `json:"worker_id"`
	PeriodStart     string               `json:"period_start"`
	PeriodEnd       string               `json:"period_end"`
	PaymentType     string               `json:"payment_type"`
	Monthly         *MonthlyResponse     `json:"monthly,omitempty"`
	Hourly          *HourlyResponse      `json:"hourly,omitempty"`
	Unit            *UnitResponse        `json:"unit,omitempty"`
	GrossPay        float64              `json:"gross_pay"`
	Allowances      []AdjustmentResponse `json:"allowances"`
	TotalAllowances float64              `json:"total_allowances"`
	EPF             ContributionResponse `json:"epf"`
	SOCSO           ContributionResponse `json:"socso"`
	EIS             ContributionResponse `json:"eis"`
	Deductions      []AdjustmentResponse `json:"deductions"`
	OtherDeductions float64              `json:"other_deductions"`
	TotalDeductions float64              `json:"total_deductions"`
	NetPay          float64              `json:"net_pay"`
	Status          string               `json:"status"`
	PaymentStatus   string               `json:"payment_status"`
	GeneratedBy     string               `json:"generated_by"`
	ApprovedBy      *string              `json:"approved_by,omitempty"`
	ApprovedAt      *string              `json:"approved_at,omitempty"`
	PaidAt          *string              `json:"paid_at,omitempty"`
	CreatedAt       string               `json:"created_at"`
}

// Payslip is a rendered PDF ready to stream.
type Payslip struct {
	FileName string
	Content  []byte
}

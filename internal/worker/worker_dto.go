package worker

type AdjustmentRequest struct {
	Name   string  `json:"name" binding:"required"`
	Type   string  `json:"type" binding:"required,oneof=fixed percentage"`
	Amount float64 `json:"amount" binding:"gte=0"`
}

type UnitRateRequest struct {
	UnitType    string  `json:"unit_type" binding:"required"`
	RatePerUnit float64 `json:"rate_per_unit" binding:"gt=0"`
}

type CreateWorkerRequest struct {
	CompanyID      string              `json:"company_id" binding:"omitempty,uuid"`
	UserID         string              `json:"user_id" binding:"omitempty,uuid"`
	FullName       string              `json:"full_name" binding:"required"`
	Email          string              `json:"email" binding:"required,email"`
	EmployeeNumber string              `json:"employee_number"`
	PaymentType    string              `json:"payment_type" binding:"required,oneof=monthly-salary hourly unit-based"`
	MonthlySalary  *float64            `json:"monthly_salary" binding:"omitempty,gt=0"`
	HourlyRate     *float64            `json:"hourly_rate" binding:"omitempty,gt=0"`
	UnitRates      []UnitRateRequest   `json:"unit_rates" binding:"omitempty,dive"`
	Allowances     []AdjustmentRequest `json:"allowances" binding:"omitempty,dive"`
	Deductions     []AdjustmentRequest `json:"deductions" binding:"omitempty,dive"`
}

type AdjustmentResponse struct {
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
}

type UnitRateResponse struct {
	UnitType    string  `json:"unit_type"`
	RatePerUnit float64 `json:"rate_per_unit"`
}

type WorkerResponse struct {
	ID             string               `json:"id"`
	CompanyID      string               `json:"company_id"`
	UserID         string               `json:"user_id,omitempty"`
	FullName       string               `json:"full_name"`
	Email          string               `json:"email"`
	EmployeeNumber string               `json:"employee_number"`
	PaymentType    string               `json:"payment_type"`
	MonthlySalary  float64              `json:"monthly_salary,omitempty"`
	HourlyRate     float64              `json:"hourly_rate,omitempty"`
	UnitRates      []UnitRateResponse   `json:"unit_rates,omitempty"`
	Allowances     []AdjustmentResponse `json:"allowances,omitempty"`
	Deductions     []AdjustmentResponse `json:"deductions,omitempty"`
	IsActive       bool                 `json:"is_active"`
}

package unitrecord

type CreateUnitRecordRequest struct {
	WorkerID       string   `json:"worker_id" binding:"required,uuid"`
	UnitType       string   `json:"unit_type" binding:"required,max=50"`
	WorkDate       string   `json:"work_date" binding:"required"`
	UnitsCompleted int      `json:"units_completed" binding:"gte=0"`
	UnitsRejected  int      `json:"units_rejected" binding:"gte=0"`
	RatePerUnit    *float64 `json:"rate_per_unit" binding:"omitempty,gt=0"`
}

type UnitRecordResponse struct {
	ID             string  `json:"id"`
	CompanyID      string  `json:"company_id"`
	WorkerID       string  `json:"worker_id"`
	UnitType       string  `json:"unit_type"`
	WorkDate       string  `json:"work_date"`
	UnitsCompleted int     `json:"units_completed"`
	UnitsRejected  int     `json:"units_rejected"`
	RatePerUnit    float64 `json:"rate_per_unit"`
	TotalAmount    float64 `json:"total_amount"`
	Status         string  `json:"status"`
}

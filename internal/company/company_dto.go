package company

type UpdatePayrollSettingsRequest struct {
	OT1_5Rate        *float64 `json:"ot1_5_rate" binding:"omitempty,gt=0"`
	OT2_0Rate        *float64 `json:"ot2_0_rate" binding:"omitempty,gt=0"`
	EPFEnabled       *bool    `json:"epf_enabled"`
	SOCSOEnabled     *bool    `json:"socso_enabled"`
	EISEnabled       *bool    `json:"eis_enabled"`
	DailyNormalHours *float64 `json:"daily_normal_hours" binding:"omitempty,gt=0,lte=24"`
}

type PayrollSettingsResponse struct {
	OT1_5Rate        float64 `json:"ot1_5_rate"`
	OT2_0Rate        float64 `json:"ot2_0_rate"`
	EPFEnabled       bool    `json:"epf_enabled"`
	SOCSOEnabled     bool    `json:"socso_enabled"`
	EISEnabled       bool    `json:"eis_enabled"`
	DailyNormalHours float64 `json:"daily_normal_hours"`
}

type CompanyResponse struct {
	ID              string                  `json:"id"`
	Name            string                  `json:"name"`
	IsActive        bool                    `json:"is_active"`
	MaxWorkers      int                     `json:"max_workers"`
	PayrollSettings PayrollSettingsResponse `json:"payroll_settings"`
}

package holiday

type CreateHolidayRequest struct {
	CompanyID string `json:"company_id" binding:"omitempty,uuid"`
	Date      string `json:"date" binding:"required"`
	Name      string `json:"name" binding:"required,max=100"`
}

type HolidayResponse struct {
	ID                string `json:"id"`
	CompanyID         string `json:"company_id"`
	Date              string `json:"date"`
	Name              string `json:"name"`
	TimesheetsUpdated int    `json:"timesheets_updated,omitempty"`
}

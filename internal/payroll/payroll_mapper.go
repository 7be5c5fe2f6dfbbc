package payroll

import (
	"time"

	"go-payroll/internal/statutory"
	"go-payroll/internal/worker"

	"github.com/shopspring/decimal"
)

func money(d decimal.Decimal) float64 {
	return statutory.Round(d).InexactFloat64()
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

func mapContribution(c statutory.Contribution) ContributionResponse {
	return ContributionResponse{
		EmployeeContribution: money(c.Employee),
		EmployerContribution: money(c.Employer),
		TotalContribution:    money(c.Total),
	}
}

func mapAdjustments(items []worker.AppliedAdjustment) []AdjustmentResponse {
	out := make([]AdjustmentResponse, len(items))
	for i, a := range items {
		out[i] = AdjustmentResponse{
			Name:   a.Name,
			Type:   string(a.Kind),
			Rate:   a.Rate.InexactFloat64(),
			Amount: money(a.Amount),
		}
	}
	return out
}

func mapToResponse(r Record) PayrollResponse {
	resp := PayrollResponse{
		ID:              r.ID.String(),
		CompanyID:       r.CompanyID.String(),
		WorkerID:        r.WorkerID.String(),
		PeriodStart:     r.PeriodStart.Format(dateLayout),
		PeriodEnd:       r.PeriodEnd.Format(dateLayout),
		PaymentType:     string(r.PaymentType),
		GrossPay:        money(r.GrossPay),
		Allowances:      mapAdjustments(r.Allowances),
		TotalAllowances: money(r.TotalAllowances),
		EPF:             mapContribution(r.EPF),
		SOCSO:           mapContribution(r.SOCSO),
		EIS:             mapContribution(r.EIS),
		Deductions:      mapAdjustments(r.Deductions),
		OtherDeductions: money(r.OtherDeductions),
		TotalDeductions: money(r.TotalDeductions),
		NetPay:          money(r.NetPay),
		Status:          string(r.Status),
		PaymentStatus:   string(r.PaymentStatus),
		GeneratedBy:     r.GeneratedBy,
		ApprovedBy:      r.ApprovedBy,
		ApprovedAt:      formatTime(r.ApprovedAt),
		PaidAt:          formatTime(r.PaidAt),
		CreatedAt:       r.CreatedAt.UTC().Format(time.RFC3339),
	}

	if m := r.Monthly; m != nil {
		resp.Monthly = &MonthlyResponse{
			MonthlySalary:   money(m.MonthlySalary),
			BaseSalary:      money(m.BaseSalary),
			WorkingDays:     m.WorkingDays,
			ActualDays:      m.ActualDays.InexactFloat64(),
			PaidLeaveDays:   m.PaidLeaveDays.InexactFloat64(),
			UnpaidLeaveDays: m.UnpaidLeaveDays.InexactFloat64(),
		}
	}
	if h := r.Hourly; h != nil {
		resp.Hourly = &HourlyResponse{
			HourlyRate:  money(h.HourlyRate),
			NormalHours: h.Hours.Normal.InexactFloat64(),
			OT1_5Hours:  h.Hours.OT1_5.InexactFloat64(),
			OT2_0Hours:  h.Hours.OT2_0.InexactFloat64(),
			TotalHours:  h.TotalHours.InexactFloat64(),
			OT1_5Rate:   h.OT1_5Rate.InexactFloat64(),
			OT2_0Rate:   h.OT2_0Rate.InexactFloat64(),
			NormalPay:   money(h.NormalPay),
			OT1_5Pay:    money(h.OT1_5Pay),
			OT2_0Pay:    money(h.OT2_0Pay),
			Timesheets:  h.Timesheets,
		}
	}
	if u := r.Unit; u != nil {
		items := make([]UnitItemResponse, len(u.Items))
		for i, it := range u.Items {
			items[i] = UnitItemResponse{
				UnitType:       it.UnitType,
				Records:        it.Records,
				UnitsCompleted: it.UnitsCompleted,
				UnitsRejected:  it.UnitsRejected,
				AcceptedUnits:  it.AcceptedUnits,
				Amount:         money(it.Amount),
			}
		}
		resp.Unit = &UnitResponse{Items: items, AcceptedUnits: u.AcceptedUnits}
	}
	return resp
}

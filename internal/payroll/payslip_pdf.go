package payroll

import (
	"bytes"
	"fmt"
	"strings"

	"go-payroll/internal/statutory"
	"go-payroll/internal/worker"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

const currency = "RM"

// PayslipFileName is the download name for a record's payslip.
func PayslipFileName(rec Record, w worker.Worker) string {
	return fmt.Sprintf("payslip-%s-%s.pdf", strings.ToLower(w.EmployeeNumber), rec.PeriodStart.Format("2006-01"))
}

// RenderPayslip draws a single A4 page with earnings on top and deductions
// below, ending in net pay.
func RenderPayslip(rec Record, w worker.Worker) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payslip", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Worker: %s (%s)", w.FullName, w.EmployeeNumber))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Period: %s to %s", rec.PeriodStart.Format(dateLayout), rec.PeriodEnd.Format(dateLayout)))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Payment type: %s    Status: %s", rec.PaymentType, rec.Status))
	pdf.Ln(10)

	section(pdf, "Earnings")
	for _, l := range earningLines(rec) {
		line(pdf, l.label, l.amount)
	}
	for _, a := range rec.Allowances {
		line(pdf, a.Name, a.Amount)
	}
	total(pdf, "Total earnings", rec.GrossPay.Add(rec.TotalAllowances))

	section(pdf, "Deductions")
	line(pdf, "EPF (employee)", rec.EPF.Employee)
	line(pdf, "SOCSO (employee)", rec.SOCSO.Employee)
	line(pdf, "EIS (employee)", rec.EIS.Employee)
	for _, d := range rec.Deductions {
		line(pdf, d.Name, d.Amount)
	}
	total(pdf, "Total deductions", rec.TotalDeductions)

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(120, 9, "Net pay", "T", 0, "L", false, 0, "")
	pdf.CellFormat(60, 9, amount(rec.NetPay), "T", 1, "R", false, 0, "")

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Employer contributions: EPF %s, SOCSO %s, EIS %s",
		amount(rec.EPF.Employer), amount(rec.SOCSO.Employer), amount(rec.EIS.Employer)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type payslipLine struct {
	label  string
	amount decimal.Decimal
}

func earningLines(rec Record) []payslipLine {
	switch {
	case rec.Monthly != nil:
		label := "Basic salary"
		if rec.Monthly.UnpaidLeaveDays.IsPositive() {
			label = fmt.Sprintf("Basic salary (%s of %d days, %s unpaid leave)",
				rec.Monthly.ActualDays.String(), rec.Monthly.WorkingDays, rec.Monthly.UnpaidLeaveDays.String())
		}
		return []payslipLine{{label, rec.Monthly.BaseSalary}}
	case rec.Hourly != nil:
		h := rec.Hourly
		return []payslipLine{
			{fmt.Sprintf("Normal %s h x %s", h.Hours.Normal.StringFixed(2), amount(h.HourlyRate)), h.NormalPay},
			{fmt.Sprintf("OT x%s %s h", h.OT1_5Rate.String(), h.Hours.OT1_5.StringFixed(2)), h.OT1_5Pay},
			{fmt.Sprintf("OT x%s %s h", h.OT2_0Rate.String(), h.Hours.OT2_0.StringFixed(2)), h.OT2_0Pay},
		}
	case rec.Unit != nil:
		lines := make([]payslipLine, 0, len(rec.Unit.Items))
		for _, it := range rec.Unit.Items {
			lines = append(lines, payslipLine{fmt.Sprintf("%s x %d", it.UnitType, it.AcceptedUnits), it.Amount})
		}
		return lines
	default:
		return []payslipLine{{"Gross pay", rec.GrossPay}}
	}
}

func amount(d decimal.Decimal) string {
	return currency + " " + statutory.Round(d).StringFixed(2)
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(180, 8, title, "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
}

func line(pdf *gofpdf.Fpdf, label string, v decimal.Decimal) {
	pdf.CellFormat(120, 7, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(60, 7, amount(v), "", 1, "R", false, 0, "")
}

func total(pdf *gofpdf.Fpdf, label string, v decimal.Decimal) {
	pdf.SetFont("Helvetica", "B", 11)
	line(pdf, label, v)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Ln(3)
}

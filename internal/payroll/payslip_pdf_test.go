package payroll_test

import (
	"bytes"
	"testing"

	"go-payroll/internal/payroll"
	"go-payroll/internal/statutory"
	"go-payroll/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPayslip(t *testing.T) {
	w := newWorker(worker.PaymentHourly, worker.PayrollInfo{})
	base := payroll.Record{
		PeriodStart: date("2024-06-01"),
		PeriodEnd:   date("2024-06-30"),
		GrossPay:    dec("635"),
		EPF:         statutory.EPF(dec("2080")),
		Allowances:  []worker.AppliedAdjustment{{Name: "Meal", Kind: worker.AdjustmentFixed, Amount: dec("50")}},
		NetPay:      dec("456.20"),
	}

	cases := map[string]func(r *payroll.Record){
		"hourly": func(r *payroll.Record) {
			r.Hourly = &payroll.HourlyBreakdown{HourlyRate: dec("10"), OT1_5Rate: dec("1.5"), OT2_0Rate: dec("2"),
				Hours: statutory.Hours{Normal: dec("40"), OT1_5: dec("5"), OT2_0: dec("8")}}
		},
		"unit": func(r *payroll.Record) {
			r.Unit = &payroll.UnitBreakdown{Items: []payroll.UnitSummary{{UnitType: "crate", AcceptedUnits: 100, Amount: dec("80")}}}
		},
		"monthly with unpaid leave": func(r *payroll.Record) {
			r.Monthly = &payroll.MonthlyBreakdown{BaseSalary: dec("1700"), WorkingDays: 19, ActualDays: dec("17"), UnpaidLeaveDays: dec("2")}
		},
		"no breakdown": func(*payroll.Record) {},
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			rec := base
			mutate(&rec)

			out, err := payroll.RenderPayslip(rec, *w)

			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
			assert.True(t, bytes.Contains(out, []byte("%%EOF")))
		})
	}
}

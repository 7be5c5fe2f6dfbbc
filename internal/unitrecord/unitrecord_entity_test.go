package unitrecord_test

import (
	"testing"

	"go-payroll/internal/unitrecord"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestUnitRecord_BeforeSave(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		rejected  int
		rate      string
		want      string
	}{
		{"accepted units times rate", 120, 20, "0.80", "80.00"},
		{"rounds half up to cents", 3, 0, "0.3350", "1.01"},
		{"everything rejected", 10, 10, "1.25", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &unitrecord.UnitRecord{UnitsCompleted: tt.completed, UnitsRejected: tt.rejected, RatePerUnit: dec(tt.rate)}
			assert.NoError(t, u.BeforeSave(nil))
			assert.Equal(t, tt.want, u.TotalAmount.StringFixed(2))
			assert.Equal(t, tt.completed-tt.rejected, u.AcceptedUnits())
		})
	}
}

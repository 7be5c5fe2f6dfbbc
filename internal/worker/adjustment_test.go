package worker_test

import (
	"encoding/json"
	"testing"

	"go-payroll/internal/worker"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAdjustment_Apply(t *testing.T) {
	base := dec("2500")

	assert.True(t, worker.Fixed("transport", dec("150")).Apply(base).Equal(dec("150")))
	assert.True(t, worker.Percentage("housing", dec("10")).Apply(base).Equal(dec("250")))
	assert.True(t, worker.Percentage("bonus", dec("3.33")).Apply(dec("1000.15")).Equal(dec("33.30")))
	assert.True(t, worker.Percentage("zero base", dec("10")).Apply(decimal.Zero).IsZero())
}

func TestApplyAll(t *testing.T) {
	applied, total := worker.ApplyAll([]worker.Adjustment{
		worker.Fixed("meal", dec("100")),
		worker.Percentage("shift", dec("5")),
	}, dec("2000"))

	require.Len(t, applied, 2)
	assert.True(t, applied[1].Amount.Equal(dec("100")))
	assert.True(t, total.Equal(dec("200")))

	applied, total = worker.ApplyAll(nil, dec("2000"))
	assert.Empty(t, applied)
	assert.True(t, total.IsZero())
}

func TestAdjustment_UnmarshalJSON(t *testing.T) {
	var a worker.Adjustment
	require.NoError(t, json.Unmarshal([]byte(`{"name":"loan","type":"percentage","amount":"2.5"}`), &a))
	assert.Equal(t, worker.AdjustmentPercentage, a.Kind)
	assert.True(t, a.Amount.Equal(dec("2.5")))

	require.NoError(t, json.Unmarshal([]byte(`{"name":"legacy","amount":40}`), &a))
	assert.Equal(t, worker.AdjustmentFixed, a.Kind)

	assert.Error(t, json.Unmarshal([]byte(`{"name":"x","type":"ratio","amount":1}`), &a))
}

func TestPayrollInfo_RateFor(t *testing.T) {
	info := worker.PayrollInfo{UnitRates: []worker.UnitRate{{UnitType: "crate", RatePerUnit: dec("0.80")}}}

	rate, ok := info.RateFor("crate")
	assert.True(t, ok)
	assert.True(t, rate.Equal(dec("0.8")))

	_, ok = info.RateFor("box")
	assert.False(t, ok)
}

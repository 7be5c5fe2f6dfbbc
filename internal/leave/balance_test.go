package leave_test

import (
	"testing"
	"time"

	"go-payroll/internal/leave"
	leaveerrors "go-payroll/internal/leave/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func days(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func TestLeaveBalance_Lifecycle(t *testing.T) {
	b := &leave.LeaveBalance{TotalDays: days(10)}

	require.NoError(t, b.Reserve(days(4)))
	assert.True(t, b.Remaining().Equal(days(6)))

	b.Consume(days(4))
	assert.True(t, b.PendingDays.IsZero())
	assert.True(t, b.UsedDays.Equal(days(4)))

	require.NoError(t, b.Reserve(days(6)))
	b.Release(days(6))
	assert.True(t, b.Remaining().Equal(days(6)))
}

func TestLeaveBalance_ReserveNeverGoesNegative(t *testing.T) {
	b := &leave.LeaveBalance{TotalDays: days(5), UsedDays: days(3), PendingDays: days(1)}

	err := b.Reserve(days(2))

	require.ErrorIs(t, err, leaveerrors.ErrInsufficientBalance)
	assert.True(t, b.PendingDays.Equal(days(1)), "failed reservation must not change the balance")
	assert.False(t, b.Remaining().IsNegative())
}

func TestWorkingDays(t *testing.T) {
	d := func(s string) time.Time {
		v, _ := time.Parse("2006-01-02", s)
		return v
	}
	tests := []struct {
		name       string
		start, end string
		want       int
	}{
		{"single weekday", "2024-06-05", "2024-06-05", 1},
		{"weekend only", "2024-06-08", "2024-06-09", 0},
		{"full week", "2024-06-03", "2024-06-09", 5},
		{"spans weekend", "2024-06-06", "2024-06-11", 4},
		{"inverted", "2024-06-10", "2024-06-03", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, leave.WorkingDays(d(tt.start), d(tt.end)))
		})
	}
}

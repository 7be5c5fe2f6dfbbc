package leave

import (
	leaveerrors "go-payroll/internal/leave/errors"

	"github.com/shopspring/decimal"
)

func (b *LeaveBalance) Remaining() decimal.Decimal {
	return b.TotalDays.Sub(b.UsedDays).Sub(b.PendingDays)
}

// Reserve holds days for a pending request. It never lets the remaining
// balance drop below zero.
func (b *LeaveBalance) Reserve(days decimal.Decimal) error {
	if remaining := b.Remaining(); remaining.LessThan(days) {
		return leaveerrors.ErrInsufficientBalance.WithDetails(map[string]string{
			"remaining_days": remaining.String(),
			"requested_days": days.String(),
		})
	}
	b.PendingDays = b.PendingDays.Add(days)
	return nil
}

// Consume moves reserved days to used.
func (b *LeaveBalance) Consume(days decimal.Decimal) {
	b.PendingDays = decimal.Max(decimal.Zero, b.PendingDays.Sub(days))
	b.UsedDays = b.UsedDays.Add(days)
}

// Release returns reserved days to the balance.
func (b *LeaveBalance) Release(days decimal.Decimal) {
	b.PendingDays = decimal.Max(decimal.Zero, b.PendingDays.Sub(days))
}

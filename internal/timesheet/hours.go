package timesheet

import (
	"time"

	"github.com/shopspring/decimal"
)

// RestDay is paid entirely at the 2.0 overtime tier.
const RestDay = time.Sunday

var minutesPerHour = decimal.NewFromInt(60)

// WorkedHours is clockOut - clockIn - lunch, in hours rounded to 2 dp.
// A clock-out at or before the clock-in is taken to be on the next day.
func WorkedHours(clockIn, clockOut time.Time, lunchMinutes int) decimal.Decimal {
	if !clockOut.After(clockIn) {
		clockOut = clockOut.Add(24 * time.Hour)
	}
	minutes := int64(clockOut.Sub(clockIn)/time.Minute) - int64(lunchMinutes)
	if minutes <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(minutes).Div(minutesPerHour).Round(2)
}

// Tier recomputes the entry's hour split. Rest days and public holidays go
// to OT2.0; otherwise hours above dailyNormal go to OT1.5.
func (e *DailyEntry) Tier(dailyNormal decimal.Decimal) {
	e.NormalHours, e.OT1_5Hours, e.OT2_0Hours, e.TotalHours = decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
	if e.IsAbsent || e.ClockIn == nil || e.ClockOut == nil {
		return
	}

	total := WorkedHours(*e.ClockIn, *e.ClockOut, e.LunchBreakMinutes)
	e.TotalHours = total

	if e.Date.Weekday() == RestDay || e.IsHoliday {
		e.OT2_0Hours = total
		return
	}

	e.NormalHours = decimal.Min(total, dailyNormal)
	e.OT1_5Hours = total.Sub(e.NormalHours)
}

// MarkAbsent clears the day's clock times and hours.
func (e *DailyEntry) MarkAbsent(leaveType string) {
	e.ClockIn = nil
	e.ClockOut = nil
	e.LunchBreakMinutes = 0
	e.IsAbsent = true
	e.LeaveType = leaveType
	e.Tier(decimal.Zero)
}

func (e *DailyEntry) MarkHoliday(name string) {
	e.IsHoliday = true
	e.HolidayName = name
	e.MarkAbsent(LeaveTypePublicHoliday)
}

// interval returns the worked span of the entry, if it has both clock times.
func (e DailyEntry) interval() (start, end time.Time, ok bool) {
	if e.IsAbsent || e.ClockIn == nil || e.ClockOut == nil {
		return time.Time{}, time.Time{}, false
	}
	start, end = *e.ClockIn, *e.ClockOut
	if !end.After(start) {
		end = end.Add(24 * time.Hour)
	}
	return start, end, true
}

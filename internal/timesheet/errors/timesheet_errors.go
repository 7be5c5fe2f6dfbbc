package timesheeterrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrTimesheetNotFound = apperror.New(
		apperror.CodeNotFound,
		"timesheet not found",
		http.StatusNotFound,
	)
	ErrTimesheetExists = apperror.New(
		apperror.CodeConflict,
		"timesheet already exists for this worker, week and site",
		http.StatusConflict,
	)
	ErrTimesheetLocked = apperror.New(
		apperror.CodeInvalidState,
		"timesheet can no longer be edited",
		http.StatusConflict,
	)
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"timesheet status does not allow this transition",
		http.StatusConflict,
	)
	ErrInvalidTimesheetID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid timesheet id",
		http.StatusBadRequest,
	)
	ErrInvalidWorkerID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid worker id",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidClockTime = apperror.New(
		apperror.CodeInvalidInput,
		"invalid clock time, expected HH:MM",
		http.StatusBadRequest,
	)
	ErrWeekStartNotMonday = apperror.New(
		apperror.CodeInvalidInput,
		"week_start_date must be a Monday",
		http.StatusBadRequest,
	)
	ErrDateOutsideWeek = apperror.New(
		apperror.CodeInvalidInput,
		"date is outside the timesheet week",
		http.StatusBadRequest,
	)
	ErrAlreadyClockedIn = apperror.New(
		apperror.CodeConflict,
		"already clocked in for this day",
		http.StatusConflict,
	)
	ErrNotClockedIn = apperror.New(
		apperror.CodeInvalidState,
		"no open clock-in found",
		http.StatusConflict,
	)
)

// InvalidTransition reports the current status and the one the operation needed.
func InvalidTransition(current, required string) error {
	return ErrInvalidTransition.WithDetails(map[string]string{
		"current_status":  current,
		"required_status": required,
	})
}

package unitrecorderrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrUnitRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"unit record not found",
		http.StatusNotFound,
	)
	ErrInvalidUnitRecordID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid unit record id",
		http.StatusBadRequest,
	)
	ErrInvalidWorkDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid work_date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrRejectedExceedsCompleted = apperror.New(
		apperror.CodeInvalidInput,
		"units_rejected cannot exceed units_completed",
		http.StatusBadRequest,
	)
	ErrWorkerNotUnitBased = apperror.New(
		apperror.CodeInvalidInput,
		"worker is not paid per unit",
		http.StatusBadRequest,
	)
	ErrNotPending = apperror.New(
		apperror.CodeInvalidState,
		"unit record is no longer pending",
		http.StatusConflict,
	)
)

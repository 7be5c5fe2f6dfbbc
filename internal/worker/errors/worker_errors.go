package workererrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrWorkerNotFound = apperror.New(
		apperror.CodeNotFound,
		"Worker not found",
		http.StatusNotFound,
	)
	ErrWorkerEmailExists = apperror.New(
		apperror.CodeConflict,
		"Worker with the same email already exists in this company",
		http.StatusConflict,
	)
	ErrWorkerNumberExists = apperror.New(
		apperror.CodeConflict,
		"Employee number already exists in this company",
		http.StatusConflict,
	)
	ErrWorkerLimitReached = apperror.New(
		apperror.CodeConflict,
		"Subscription worker limit reached",
		http.StatusConflict,
	)
	ErrWorkerInactive = apperror.New(
		apperror.CodeInvalidState,
		"Worker is inactive",
		http.StatusConflict,
	)
	ErrInvalidWorkerID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid worker ID",
		http.StatusBadRequest,
	)
	ErrInvalidPaymentType = apperror.New(
		apperror.CodeInvalidInput,
		"Payment type must be monthly-salary, hourly or unit-based",
		http.StatusBadRequest,
	)
)

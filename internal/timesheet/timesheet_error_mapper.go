package timesheet

import (
	"errors"

	timesheeterrors "go-payroll/internal/timesheet/errors"
	workererrors "go-payroll/internal/worker/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return timesheeterrors.ErrTimesheetNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return timesheeterrors.ErrTimesheetExists
	}
	return err
}

func mapWorkerError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return workererrors.ErrWorkerNotFound
	}
	return err
}

package worker

import (
	"errors"
	"strings"

	workererrors "go-payroll/internal/worker/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return workererrors.ErrWorkerNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uq_workers_company_email":
			return workererrors.ErrWorkerEmailExists
		case "uq_workers_company_number":
			return workererrors.ErrWorkerNumberExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_workers_company_email") {
		return workererrors.ErrWorkerEmailExists
	}

	return err
}

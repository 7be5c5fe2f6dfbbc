package payroll

import (
	"context"
	"database/sql"
	"time"

	"go-payroll/internal/shared/connection"
	"go-payroll/internal/tenant"

	"gorm.io/gorm"
)

type ListFilter struct {
	WorkerID    string
	Status      Status
	PeriodStart *time.Time
	PeriodEnd   *time.Time
}

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, rec *Record) error
	FindByID(ctx context.Context, id string) (*Record, error)
	FindByPeriod(ctx context.Context, companyID, workerID string, start, end time.Time) (*Record, error)
	FindAllByCompany(ctx context.Context, companyID string, filter ListFilter) ([]Record, error)
	Update(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.BindTx(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, rec *Record) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Record, error) {
	var rec Record
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) FindByPeriod(ctx context.Context, companyID, workerID string, start, end time.Time) (*Record, error) {
	var rec Record
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("worker_id = ?", workerID).
		Where("period_start = ? AND period_end = ?", start.Format(dateLayout), end.Format(dateLayout)).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, filter ListFilter) ([]Record, error) {
	db := r.db.WithContext(ctx).Scopes(tenant.Scope(companyID))
	if filter.WorkerID != "" {
		db = db.Where("worker_id = ?", filter.WorkerID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.PeriodStart != nil {
		db = db.Where("period_start >= ?", filter.PeriodStart.Format(dateLayout))
	}
	if filter.PeriodEnd != nil {
		db = db.Where("period_end <= ?", filter.PeriodEnd.Format(dateLayout))
	}

	var rows []Record
	err := db.Order("period_start DESC, created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, rec *Record) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Record{}, "id = ?", id).Error
}

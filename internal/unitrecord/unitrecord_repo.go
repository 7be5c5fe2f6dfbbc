package unitrecord

import (
	"context"
	"time"

	"go-payroll/internal/tenant"

	"gorm.io/gorm"
)

type ListFilter struct {
	WorkerID string
	Status   Status
	From     *time.Time
	To       *time.Time
}

//go:generate mockgen -source=unitrecord_repo.go -destination=mock/unitrecord_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, u *UnitRecord) error
	FindByID(ctx context.Context, id string) (*UnitRecord, error)
	FindAllByCompany(ctx context.Context, companyID string, filter ListFilter) ([]UnitRecord, error)
	FindApprovedInPeriod(ctx context.Context, companyID, workerID string, start, end time.Time) ([]UnitRecord, error)
	Update(ctx context.Context, u *UnitRecord) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, u *UnitRecord) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*UnitRecord, error) {
	var u UnitRecord
	err := r.db.WithContext(ctx).
		Scopes(tenant.NotDeleted).
		First(&u, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, filter ListFilter) ([]UnitRecord, error) {
	db := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID), tenant.NotDeleted)
	if filter.WorkerID != "" {
		db = db.Where("worker_id = ?", filter.WorkerID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.From != nil {
		db = db.Where("work_date >= ?", filter.From.Format(dateLayout))
	}
	if filter.To != nil {
		db = db.Where("work_date <= ?", filter.To.Format(dateLayout))
	}

	var rows []UnitRecord
	err := db.Order("work_date DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindApprovedInPeriod(ctx context.Context, companyID, workerID string, start, end time.Time) ([]UnitRecord, error) {
	var rows []UnitRecord
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID), tenant.NotDeleted).
		Where("worker_id = ? AND status = ?", workerID, StatusApproved).
		Where("work_date BETWEEN ? AND ?", start.Format(dateLayout), end.Format(dateLayout)).
		Order("work_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, u *UnitRecord) error {
	return r.db.WithContext(ctx).Save(u).Error
}

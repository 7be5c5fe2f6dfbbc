package worker

import (
	"context"
	"database/sql"

	"go-payroll/internal/shared/connection"
	"go-payroll/internal/tenant"

	"gorm.io/gorm"
)

type ListFilter struct {
	PaymentType PaymentType
	ActiveOnly  bool
}

//go:generate mockgen -source=worker_repo.go -destination=mock/worker_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, w *Worker) error
	FindByID(ctx context.Context, id string) (*Worker, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Worker, error)
	FindAllByCompany(ctx context.Context, companyID string, filter ListFilter) ([]Worker, error)
	FindAllActive(ctx context.Context) ([]Worker, error)
	CountActiveByCompany(ctx context.Context, companyID string) (int64, error)
	Update(ctx context.Context, w *Worker) error
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

func (r *repository) Create(ctx context.Context, w *Worker) error {
	return r.db.WithContext(ctx).Create(w).Error
}

// FindByID is not tenant scoped. Callers authorize against the loaded CompanyID.
func (r *repository) FindByID(ctx context.Context, id string) (*Worker, error) {
	var w Worker
	if err := r.db.WithContext(ctx).First(&w, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Worker, error) {
	var w Worker
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&w, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, filter ListFilter) ([]Worker, error) {
	q := r.db.WithContext(ctx).Scopes(tenant.Scope(companyID))
	if filter.PaymentType != "" {
		q = q.Where("payment_type = ?", filter.PaymentType)
	}
	if filter.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}

	var workers []Worker
	err := q.Order("full_name ASC").Find(&workers).Error
	return workers, err
}

// FindAllActive spans every tenant. Only background jobs call it.
func (r *repository) FindAllActive(ctx context.Context) ([]Worker, error) {
	var workers []Worker
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("company_id ASC, full_name ASC").
		Find(&workers).Error
	return workers, err
}

func (r *repository) CountActiveByCompany(ctx context.Context, companyID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Worker{}).
		Scopes(tenant.Scope(companyID)).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}

func (r *repository) Update(ctx context.Context, w *Worker) error {
	return r.db.WithContext(ctx).Save(w).Error
}

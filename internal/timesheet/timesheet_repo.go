package timesheet

import (
	"context"
	"database/sql"
	"time"

	"go-payroll/internal/shared/connection"
	"go-payroll/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ListFilter struct {
	WorkerID string
	Status   Status
	From     *time.Time
	To       *time.Time
}

var editableStatuses = []Status{StatusDraft, StatusSubmitted}

//go:generate mockgen -source=timesheet_repo.go -destination=mock/timesheet_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, ts *Timesheet) error
	CreateIfAbsent(ctx context.Context, ts *Timesheet) (bool, error)
	FindByID(ctx context.Context, id string) (*Timesheet, error)
	FindByKey(ctx context.Context, companyID, workerID string, weekStart time.Time, site string) (*Timesheet, error)
	FindByWorkerWeek(ctx context.Context, companyID, workerID string, weekStart time.Time) ([]Timesheet, error)
	FindEditableByWorkerBetween(ctx context.Context, companyID, workerID string, fromWeek, toWeek time.Time) ([]Timesheet, error)
	FindEditableByCompanyWeek(ctx context.Context, companyID string, weekStart time.Time) ([]Timesheet, error)
	FindAllByCompany(ctx context.Context, companyID string, filter ListFilter) ([]Timesheet, error)
	FindApprovedInPeriod(ctx context.Context, companyID, workerID string, start, end time.Time) ([]Timesheet, error)
	Update(ctx context.Context, ts *Timesheet) error
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

func (r *repository) Create(ctx context.Context, ts *Timesheet) error {
	return r.db.WithContext(ctx).Create(ts).Error
}

// CreateIfAbsent inserts unless the (company, worker, week, site) slot is taken.
func (r *repository) CreateIfAbsent(ctx context.Context, ts *Timesheet) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(ts)
	return res.RowsAffected > 0, res.Error
}

// FindByID is not tenant scoped. Callers authorize against the loaded CompanyID.
func (r *repository) FindByID(ctx context.Context, id string) (*Timesheet, error) {
	var ts Timesheet
	err := r.db.WithContext(ctx).
		Scopes(tenant.NotDeleted).
		First(&ts, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

func (r *repository) FindByKey(ctx context.Context, companyID, workerID string, weekStart time.Time, site string) (*Timesheet, error) {
	var ts Timesheet
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID), tenant.NotDeleted).
		Where("worker_id = ?", workerID).
		Where("week_start_date = ?", weekStart.Format(dateLayout)).
		Where("site = ?", site).
		First(&ts).Error
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

// FindByWorkerWeek returns every site's timesheet for the worker's week.
func (r *repository) FindByWorkerWeek(ctx context.Context, companyID, workerID string, weekStart time.Time) ([]Timesheet, error) {
	var rows []Timesheet
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID), tenant.NotDeleted).
		Where("worker_id = ?", workerID).
		Where("week_start_date = ?", weekStart.Format(dateLayout)).
		Order("site ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindEditableByWorkerBetween(ctx context.Context, companyID, workerID string, fromWeek, toWeek time.Time) ([]Timesheet, error) {
	var rows []Timesheet
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID), tenant.NotDeleted).
		Where("worker_id = ?", workerID).
		Where("week_start_date BETWEEN ? AND ?", fromWeek.Format(dateLayout), toWeek.Format(dateLayout)).
		Where("status IN ?", editableStatuses).
		Order("week_start_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindEditableByCompanyWeek(ctx context.Context, companyID string, weekStart time.Time) ([]Timesheet, error) {
	var rows []Timesheet
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID), tenant.NotDeleted).
		Where("week_start_date = ?", weekStart.Format(dateLayout)).
		Where("status IN ?", editableStatuses).
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, filter ListFilter) ([]Timesheet, error) {
	q := r.db.WithContext(ctx).Scopes(tenant.Scope(companyID), tenant.NotDeleted)
	if filter.WorkerID != "" {
		q = q.Where("worker_id = ?", filter.WorkerID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.From != nil {
		q = q.Where("week_start_date >= ?", filter.From.Format(dateLayout))
	}
	if filter.To != nil {
		q = q.Where("week_start_date <= ?", filter.To.Format(dateLayout))
	}

	var rows []Timesheet
	err := q.Order("week_start_date DESC, created_at DESC").Find(&rows).Error
	return rows, err
}

// FindApprovedInPeriod returns fully approved timesheets whose week starts in [start, end].
func (r *repository) FindApprovedInPeriod(ctx context.Context, companyID, workerID string, start, end time.Time) ([]Timesheet, error) {
	var rows []Timesheet
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID), tenant.NotDeleted).
		Where("worker_id = ?", workerID).
		Where("week_start_date BETWEEN ? AND ?", start.Format(dateLayout), end.Format(dateLayout)).
		Where("status IN ?", PayableStatuses).
		Order("week_start_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, ts *Timesheet) error {
	return r.db.WithContext(ctx).Save(ts).Error
}

package leave

import (
	"context"
	"database/sql"
	"time"

	"go-payroll/internal/shared/connection"
	"go-payroll/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RequestFilter struct {
	WorkerID string
	Status   RequestStatus
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateType(ctx context.Context, t *LeaveType) error
	FindTypes(ctx context.Context, companyID string) ([]LeaveType, error)
	FindTypeByID(ctx context.Context, id string) (*LeaveType, error)

	CreateBalanceIfAbsent(ctx context.Context, b *LeaveBalance) (bool, error)
	FindBalanceForUpdate(ctx context.Context, workerID, leaveTypeID string, year int) (*LeaveBalance, error)
	FindBalances(ctx context.Context, companyID, workerID string, year int) ([]LeaveBalance, error)
	UpdateBalance(ctx context.Context, b *LeaveBalance) error

	CreateRequest(ctx context.Context, r *LeaveRequest) error
	FindRequestByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindRequests(ctx context.Context, companyID string, filter RequestFilter) ([]LeaveRequest, error)
	UpdateRequest(ctx context.Context, r *LeaveRequest) error
	HasOverlappingRequest(ctx context.Context, workerID string, start, end time.Time) (bool, error)
	FindApprovedOverlapping(ctx context.Context, companyID, workerID string, start, end time.Time) ([]LeaveRequest, error)
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

func (r *repository) CreateType(ctx context.Context, t *LeaveType) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) FindTypes(ctx context.Context, companyID string) ([]LeaveType, error) {
	var types []LeaveType
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("code ASC").
		Find(&types).Error
	return types, err
}

func (r *repository) FindTypeByID(ctx context.Context, id string) (*LeaveType, error) {
	var t LeaveType
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) CreateBalanceIfAbsent(ctx context.Context, b *LeaveBalance) (bool, error) {
	res := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(b)
	return res.RowsAffected > 0, res.Error
}

// FindBalanceForUpdate locks the row until the surrounding transaction ends.
func (r *repository) FindBalanceForUpdate(ctx context.Context, workerID, leaveTypeID string, year int) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("worker_id = ? AND leave_type_id = ? AND year = ?", workerID, leaveTypeID, year).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) FindBalances(ctx context.Context, companyID, workerID string, year int) ([]LeaveBalance, error) {
	var balances []LeaveBalance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("LeaveType").
		Where("worker_id = ? AND year = ?", workerID, year).
		Find(&balances).Error
	return balances, err
}

func (r *repository) UpdateBalance(ctx context.Context, b *LeaveBalance) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(b).Error
}

func (r *repository) CreateRequest(ctx context.Context, lr *LeaveRequest) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(lr).Error
}

func (r *repository) FindRequestByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var lr LeaveRequest
	if err := r.db.WithContext(ctx).Preload("LeaveType").First(&lr, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &lr, nil
}

func (r *repository) FindRequests(ctx context.Context, companyID string, filter RequestFilter) ([]LeaveRequest, error) {
	db := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("LeaveType")
	if filter.WorkerID != "" {
		db = db.Where("worker_id = ?", filter.WorkerID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	var rows []LeaveRequest
	err := db.Order("start_date DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) UpdateRequest(ctx context.Context, lr *LeaveRequest) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(lr).Error
}

func (r *repository) HasOverlappingRequest(ctx context.Context, workerID string, start, end time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("worker_id = ?", workerID).
		Where("status IN ?", []RequestStatus{StatusPending, StatusApproved}).
		Where("NOT (end_date < ? OR start_date > ?)", start.Format(dateLayout), end.Format(dateLayout)).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindApprovedOverlapping(ctx context.Context, companyID, workerID string, start, end time.Time) ([]LeaveRequest, error) {
	var rows []LeaveRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("LeaveType").
		Where("worker_id = ? AND status = ?", workerID, StatusApproved).
		Where("NOT (end_date < ? OR start_date > ?)", start.Format(dateLayout), end.Format(dateLayout)).
		Order("start_date ASC").
		Find(&rows).Error
	return rows, err
}

package unitrecord

import (
	"context"
	"errors"
	"time"

	"go-payroll/internal/domain"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/contextutil"
	unitrecorderrors "go-payroll/internal/unitrecord/errors"
	"go-payroll/internal/worker"
	workererrors "go-payroll/internal/worker/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=unitrecord_service.go -destination=mock/unitrecord_service_mock.go -package=mock

type WorkerSource interface {
	FindByID(ctx context.Context, id string) (*worker.Worker, error)
}

type Service interface {
	Create(ctx context.Context, actor domain.Actor, req CreateUnitRecordRequest) (UnitRecordResponse, error)
	List(ctx context.Context, actor domain.Actor, filter ListFilter) ([]UnitRecordResponse, error)
	Approve(ctx context.Context, actor domain.Actor, id string) (UnitRecordResponse, error)
	Reject(ctx context.Context, actor domain.Actor, id string) (UnitRecordResponse, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
}

type service struct {
	repo    Repository
	workers WorkerSource
	authz   domain.Authorizer
	logger  *zap.Logger
}

func NewService(repo Repository, workers WorkerSource, authz domain.Authorizer, logger ...*zap.Logger) Service {
	l := zap.L().Named("unitrecord.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("unitrecord.service")
	}
	return &service{repo: repo, workers: workers, authz: authz, logger: l}
}

// Create records piece-rate output. Without an explicit rate the worker's
// configured rate for the unit type is used.
func (s *service) Create(ctx context.Context, actor domain.Actor, req CreateUnitRecordRequest) (UnitRecordResponse, error) {
	workDate, err := time.Parse(dateLayout, req.WorkDate)
	if err != nil {
		return UnitRecordResponse{}, unitrecorderrors.ErrInvalidWorkDate
	}
	if req.UnitsRejected > req.UnitsCompleted {
		return UnitRecordResponse{}, unitrecorderrors.ErrRejectedExceedsCompleted
	}

	w, err := s.workers.FindByID(ctx, req.WorkerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UnitRecordResponse{}, workererrors.ErrWorkerNotFound
		}
		return UnitRecordResponse{}, err
	}
	if err := s.authz.Authorize(actor, domain.ResourceUnitRecord, domain.ActionCreate,
		domain.Target{CompanyID: w.CompanyID.String(), WorkerID: w.ID.String()}); err != nil {
		return UnitRecordResponse{}, err
	}
	if !w.IsActive {
		return UnitRecordResponse{}, workererrors.ErrWorkerInactive
	}
	if w.PaymentType != worker.PaymentUnitBased {
		return UnitRecordResponse{}, unitrecorderrors.ErrWorkerNotUnitBased
	}

	rate, ok := w.PayrollInfo.RateFor(req.UnitType)
	if req.RatePerUnit != nil {
		rate, ok = decimal.NewFromFloat(*req.RatePerUnit), true
	}
	if !ok {
		return UnitRecordResponse{}, apperror.Configuration("payrollInfo.unitRates[" + req.UnitType + "]")
	}

	u := &UnitRecord{
		ID:             uuid.New(),
		CompanyID:      w.CompanyID,
		WorkerID:       w.ID,
		UnitType:       req.UnitType,
		WorkDate:       workDate,
		UnitsCompleted: req.UnitsCompleted,
		UnitsRejected:  req.UnitsRejected,
		RatePerUnit:    rate,
		Status:         StatusPending,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.Error("create unit record persist failed", zap.Error(err))
		return UnitRecordResponse{}, err
	}

	s.logger.Info("create unit record success",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("unit_record_id", u.ID.String()),
		zap.String("worker_id", req.WorkerID),
		zap.String("total_amount", u.TotalAmount.StringFixed(2)),
	)
	return mapToResponse(*u), nil
}

func (s *service) List(ctx context.Context, actor domain.Actor, filter ListFilter) ([]UnitRecordResponse, error) {
	if err := s.authz.Authorize(actor, domain.ResourceUnitRecord, domain.ActionRead,
		domain.Target{CompanyID: actor.CompanyID, WorkerID: actor.WorkerID}); err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleWorker {
		filter.WorkerID = actor.WorkerID
	}

	rows, err := s.repo.FindAllByCompany(ctx, actor.CompanyID, filter)
	if err != nil {
		return nil, err
	}
	res := make([]UnitRecordResponse, len(rows))
	for i, u := range rows {
		res[i] = mapToResponse(u)
	}
	return res, nil
}

func (s *service) Approve(ctx context.Context, actor domain.Actor, id string) (UnitRecordResponse, error) {
	return s.review(ctx, actor, id, domain.ActionApprove, StatusApproved)
}

func (s *service) Reject(ctx context.Context, actor domain.Actor, id string) (UnitRecordResponse, error) {
	return s.review(ctx, actor, id, domain.ActionReject, StatusRejected)
}

func (s *service) review(ctx context.Context, actor domain.Actor, id, action string, to Status) (UnitRecordResponse, error) {
	u, err := s.load(ctx, actor, id, action)
	if err != nil {
		return UnitRecordResponse{}, err
	}
	if u.Status != StatusPending {
		return UnitRecordResponse{}, unitrecorderrors.ErrNotPending.WithDetails(map[string]string{
			"current_status":  string(u.Status),
			"required_status": string(StatusPending),
		})
	}

	now := time.Now().UTC()
	u.Status = to
	u.ReviewedBy = &actor.UserID
	u.ReviewedAt = &now
	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.Error("review unit record persist failed", zap.String("unit_record_id", id), zap.Error(err))
		return UnitRecordResponse{}, err
	}

	s.logger.Info("unit record reviewed",
		zap.String("unit_record_id", id),
		zap.String("status", string(to)),
		zap.String("by", actor.UserID),
	)
	return mapToResponse(*u), nil
}

// Delete soft-deletes a record that has not been approved.
func (s *service) Delete(ctx context.Context, actor domain.Actor, id string) error {
	u, err := s.load(ctx, actor, id, domain.ActionDelete)
	if err != nil {
		return err
	}
	if u.Status == StatusApproved {
		return unitrecorderrors.ErrNotPending.WithDetails(map[string]string{"current_status": string(u.Status)})
	}

	u.IsDeleted = true
	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.Error("delete unit record persist failed", zap.String("unit_record_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *service) load(ctx context.Context, actor domain.Actor, id, action string) (*UnitRecord, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, unitrecorderrors.ErrInvalidUnitRecordID
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, unitrecorderrors.ErrUnitRecordNotFound
		}
		return nil, err
	}
	if err := s.authz.Authorize(actor, domain.ResourceUnitRecord, action,
		domain.Target{CompanyID: u.CompanyID.String(), WorkerID: u.WorkerID.String()}); err != nil {
		return nil, err
	}
	return u, nil
}

func mapToResponse(u UnitRecord) UnitRecordResponse {
	return UnitRecordResponse{
		ID:             u.ID.String(),
		CompanyID:      u.CompanyID.String(),
		WorkerID:       u.WorkerID.String(),
		UnitType:       u.UnitType,
		WorkDate:       u.WorkDate.Format(dateLayout),
		UnitsCompleted: u.UnitsCompleted,
		UnitsRejected:  u.UnitsRejected,
		RatePerUnit:    u.RatePerUnit.InexactFloat64(),
		TotalAmount:    u.TotalAmount.InexactFloat64(),
		Status:         string(u.Status),
	}
}

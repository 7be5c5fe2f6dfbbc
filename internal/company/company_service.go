package company

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	companyerrors "go-payroll/internal/company/errors"
	"go-payroll/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	CompanyKeyPrefix = "companies:"
	companyCacheTTL  = 15 * time.Minute
)

func GetCompanyKey(companyID string) string {
	return CompanyKeyPrefix + companyID
}

//go:generate mockgen -source=company_service.go -destination=mock/company_service_mock.go -package=mock
type Service interface {
	// GetByID is the read-through cached lookup used by payroll and timesheets.
	GetByID(ctx context.Context, companyID string) (*Company, error)
	GetMe(ctx context.Context, actor domain.Actor) (CompanyResponse, error)
	UpdatePayrollSettings(ctx context.Context, actor domain.Actor, req UpdatePayrollSettingsRequest) (CompanyResponse, error)
}

type service struct {
	repo   Repository
	authz  domain.Authorizer
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, authz domain.Authorizer, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{
		repo:   repo,
		authz:  authz,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) GetByID(ctx context.Context, companyID string) (*Company, error) {
	id, err := uuid.Parse(companyID)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}

	cacheKey := GetCompanyKey(companyID)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var comp Company
			if json.Unmarshal([]byte(cached), &comp) == nil {
				return &comp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		comp, err := s.repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, companyerrors.ErrCompanyNotFound
			}
			return nil, err
		}
		comp.ensureSettings()

		if s.rdb != nil {
			if data, err := json.Marshal(comp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, data, companyCacheTTL).Err(); err != nil {
					s.logger.Warn("cache company failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}
		return comp, nil
	})
	if err != nil {
		return nil, err
	}

	comp := *v.(*Company)
	return &comp, nil
}

func (s *service) GetMe(ctx context.Context, actor domain.Actor) (CompanyResponse, error) {
	if err := s.authz.Authorize(actor, domain.ResourceCompanySettings, domain.ActionRead,
		domain.Target{CompanyID: actor.CompanyID}); err != nil {
		return CompanyResponse{}, err
	}

	comp, err := s.GetByID(ctx, actor.CompanyID)
	if err != nil {
		return CompanyResponse{}, err
	}
	return mapToResponse(*comp), nil
}

func (s *service) UpdatePayrollSettings(
	ctx context.Context,
	actor domain.Actor,
	req UpdatePayrollSettingsRequest,
) (CompanyResponse, error) {
	if err := s.authz.Authorize(actor, domain.ResourceCompanySettings, domain.ActionUpdate,
		domain.Target{CompanyID: actor.CompanyID}); err != nil {
		return CompanyResponse{}, err
	}

	id, err := uuid.Parse(actor.CompanyID)
	if err != nil {
		return CompanyResponse{}, companyerrors.ErrInvalidCompanyID
	}

	comp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CompanyResponse{}, companyerrors.ErrCompanyNotFound
		}
		return CompanyResponse{}, err
	}
	comp.ensureSettings()

	settings := comp.PayrollSettings
	if req.OT1_5Rate != nil {
		settings.OT1_5Rate = decimal.NewFromFloat(*req.OT1_5Rate)
	}
	if req.OT2_0Rate != nil {
		settings.OT2_0Rate = decimal.NewFromFloat(*req.OT2_0Rate)
	}
	if req.EPFEnabled != nil {
		settings.EPFEnabled = *req.EPFEnabled
	}
	if req.SOCSOEnabled != nil {
		settings.SOCSOEnabled = *req.SOCSOEnabled
	}
	if req.EISEnabled != nil {
		settings.EISEnabled = *req.EISEnabled
	}
	if req.DailyNormalHours != nil {
		settings.DailyNormalHours = decimal.NewFromFloat(*req.DailyNormalHours)
	}
	comp.PayrollSettings = settings

	if err := s.repo.Update(ctx, comp); err != nil {
		s.logger.Error("update payroll settings failed", zap.String("company_id", actor.CompanyID), zap.Error(err))
		return CompanyResponse{}, err
	}

	if s.rdb != nil {
		if err := s.rdb.Del(ctx, GetCompanyKey(actor.CompanyID)).Err(); err != nil {
			s.logger.Error("failed to invalidate company cache", zap.String("company_id", actor.CompanyID), zap.Error(err))
		}
	}

	s.logger.Info("payroll settings updated",
		zap.String("company_id", actor.CompanyID),
		zap.String("updated_by", actor.UserID),
	)
	return mapToResponse(*comp), nil
}

func mapToResponse(c Company) CompanyResponse {
	settings := c.PayrollSettings
	ot := settings.OTRates()
	return CompanyResponse{
		ID:         c.ID.String(),
		Name:       c.Name,
		IsActive:   c.IsActive,
		MaxWorkers: c.MaxWorkers,
		PayrollSettings: PayrollSettingsResponse{
			OT1_5Rate:        ot.OT1_5.InexactFloat64(),
			OT2_0Rate:        ot.OT2_0.InexactFloat64(),
			EPFEnabled:       settings.EPFEnabled,
			SOCSOEnabled:     settings.SOCSOEnabled,
			EISEnabled:       settings.EISEnabled,
			DailyNormalHours: settings.NormalHoursPerDay().InexactFloat64(),
		},
	}
}

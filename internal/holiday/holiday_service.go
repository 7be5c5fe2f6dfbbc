package holiday

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go-payroll/internal/domain"
	holidayerrors "go-payroll/internal/holiday/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// TimesheetApplier marks a new holiday on every editable timesheet that
// covers its date and reports how many were touched.
type TimesheetApplier interface {
	ApplyHoliday(ctx context.Context, companyID string, date time.Time, name string) (int, error)
}

//go:generate mockgen -source=holiday_service.go -destination=mock/holiday_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor domain.Actor, req CreateHolidayRequest) (HolidayResponse, error)
	List(ctx context.Context, actor domain.Actor, year string) ([]HolidayResponse, error)
}

type service struct {
	repo       Repository
	calendar   *Calendar
	timesheets TimesheetApplier
	authz      domain.Authorizer
	logger     *zap.Logger
}

func NewService(repo Repository, calendar *Calendar, timesheets TimesheetApplier, authz domain.Authorizer, logger ...*zap.Logger) Service {
	l := zap.L().Named("holiday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.service")
	}
	return &service{repo: repo, calendar: calendar, timesheets: timesheets, authz: authz, logger: l}
}

func (s *service) Create(ctx context.Context, actor domain.Actor, req CreateHolidayRequest) (HolidayResponse, error) {
	companyID := actor.CompanyID
	if actor.IsAdmin() && req.CompanyID != "" {
		companyID = req.CompanyID
	}
	if err := s.authz.Authorize(actor, domain.ResourceHoliday, domain.ActionCreate,
		domain.Target{CompanyID: companyID}); err != nil {
		return HolidayResponse{}, err
	}

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return HolidayResponse{}, holidayerrors.ErrInvalidCompanyID
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return HolidayResponse{}, holidayerrors.ErrInvalidDate
	}

	h := &Holiday{
		ID:        uuid.New(),
		CompanyID: companyUUID,
		Date:      date,
		Name:      req.Name,
	}
	if err := s.repo.Create(ctx, h); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return HolidayResponse{}, holidayerrors.ErrHolidayExists
		}
		s.logger.Error("create holiday persist failed", zap.Error(err))
		return HolidayResponse{}, err
	}
	s.calendar.Invalidate(ctx, companyID, date.Year())

	resp := mapToResponse(*h)
	if s.timesheets != nil {
		n, err := s.timesheets.ApplyHoliday(ctx, companyID, date, req.Name)
		if err != nil {
			// The holiday row is the source of truth; timesheets created later pick it up.
			s.logger.Error("apply holiday to timesheets failed",
				zap.String("company_id", companyID),
				zap.String("date", req.Date),
				zap.Error(err),
			)
		}
		resp.TimesheetsUpdated = n
	}

	s.logger.Info("create holiday success",
		zap.String("company_id", companyID),
		zap.String("date", req.Date),
		zap.Int("timesheets_updated", resp.TimesheetsUpdated),
	)
	return resp, nil
}

func (s *service) List(ctx context.Context, actor domain.Actor, year string) ([]HolidayResponse, error) {
	if err := s.authz.Authorize(actor, domain.ResourceHoliday, domain.ActionRead,
		domain.Target{CompanyID: actor.CompanyID}); err != nil {
		return nil, err
	}

	y := time.Now().UTC().Year()
	if year != "" {
		parsed, err := strconv.Atoi(year)
		if err != nil || parsed < 1900 || parsed > 9999 {
			return nil, holidayerrors.ErrInvalidYear
		}
		y = parsed
	}

	rows, err := s.calendar.HolidaysBetween(ctx, actor.CompanyID,
		time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(y, time.December, 31, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		return nil, err
	}

	res := make([]HolidayResponse, len(rows))
	for i, h := range rows {
		res[i] = mapToResponse(h)
	}
	return res, nil
}

func mapToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:        h.ID.String(),
		CompanyID: h.CompanyID.String(),
		Date:      h.DateKey(),
		Name:      h.Name,
	}
}

package holiday_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-payroll/internal/domain"
	"go-payroll/internal/holiday"
	holidayerrors "go-payroll/internal/holiday/errors"
	holidayMock "go-payroll/internal/holiday/mock"
	"go-payroll/internal/shared/apperror"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeApplier struct {
	ApplyHolidayFn func(ctx context.Context, companyID string, date time.Time, name string) (int, error)
}

func (f *fakeApplier) ApplyHoliday(ctx context.Context, companyID string, date time.Time, name string) (int, error) {
	return f.ApplyHolidayFn(ctx, companyID, date, name)
}

var allowAll = domain.AuthorizerFunc(func(domain.Actor, string, string, domain.Target) error { return nil })

func TestHolidayService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.NewString()
	actor := domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin, CompanyID: companyID}

	t.Run("success invalidates cache and fills timesheets", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := holidayMock.NewMockRepository(ctrl)
		rdb, mock := redismock.NewClientMock()
		mock.ExpectDel(holiday.GetCalendarKey(companyID, 2024)).SetVal(1)

		repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, h *holiday.Holiday) error {
			assert.Equal(t, "Hari Raya", h.Name)
			assert.Equal(t, companyID, h.CompanyID.String())
			return nil
		})
		applier := &fakeApplier{ApplyHolidayFn: func(_ context.Context, cid string, date time.Time, name string) (int, error) {
			assert.Equal(t, companyID, cid)
			assert.Equal(t, day("2024-04-10"), date)
			return 3, nil
		}}

		svc := holiday.NewService(repo, holiday.NewCalendar(repo, rdb), applier, allowAll)
		resp, err := svc.Create(ctx, actor, holiday.CreateHolidayRequest{Date: "2024-04-10", Name: "Hari Raya"})

		require.NoError(t, err)
		assert.Equal(t, "2024-04-10", resp.Date)
		assert.Equal(t, 3, resp.TimesheetsUpdated)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("timesheet fill failure does not fail the holiday", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := holidayMock.NewMockRepository(ctrl)
		repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		applier := &fakeApplier{ApplyHolidayFn: func(context.Context, string, time.Time, string) (int, error) {
			return 0, errors.New("db down")
		}}

		svc := holiday.NewService(repo, holiday.NewCalendar(repo, nil), applier, allowAll)
		resp, err := svc.Create(ctx, actor, holiday.CreateHolidayRequest{Date: "2024-04-10", Name: "Hari Raya"})

		require.NoError(t, err)
		assert.Zero(t, resp.TimesheetsUpdated)
	})

	t.Run("duplicate date", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := holidayMock.NewMockRepository(ctrl)
		repo.EXPECT().Create(ctx, gomock.Any()).Return(&pgconn.PgError{Code: "23505"})

		svc := holiday.NewService(repo, holiday.NewCalendar(repo, nil), nil, allowAll)
		_, err := svc.Create(ctx, actor, holiday.CreateHolidayRequest{Date: "2024-04-10", Name: "Hari Raya"})

		assert.ErrorIs(t, err, holidayerrors.ErrHolidayExists)
	})

	t.Run("invalid date", func(t *testing.T) {
		svc := holiday.NewService(nil, holiday.NewCalendar(nil, nil), nil, allowAll)
		_, err := svc.Create(ctx, actor, holiday.CreateHolidayRequest{Date: "10/04/2024", Name: "x"})
		assert.ErrorIs(t, err, holidayerrors.ErrInvalidDate)
	})

	t.Run("forbidden", func(t *testing.T) {
		deny := domain.AuthorizerFunc(func(domain.Actor, string, string, domain.Target) error { return apperror.ErrForbidden })
		svc := holiday.NewService(nil, holiday.NewCalendar(nil, nil), nil, deny)
		_, err := svc.Create(ctx, domain.Actor{Role: domain.RoleAgent, CompanyID: companyID},
			holiday.CreateHolidayRequest{Date: "2024-04-10", Name: "x"})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})
}

func TestHolidayService_List(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.NewString()
	actor := domain.Actor{Role: domain.RoleWorker, CompanyID: companyID, WorkerID: uuid.NewString()}

	t.Run("by year", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := holidayMock.NewMockRepository(ctrl)
		repo.EXPECT().FindBetween(ctx, companyID, day("2023-01-01"), day("2023-12-31")).
			Return([]holiday.Holiday{{Date: day("2023-12-25"), Name: "Christmas"}}, nil)

		svc := holiday.NewService(repo, holiday.NewCalendar(repo, nil), nil, allowAll)
		got, err := svc.List(ctx, actor, "2023")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "2023-12-25", got[0].Date)
	})

	t.Run("bad year", func(t *testing.T) {
		svc := holiday.NewService(nil, holiday.NewCalendar(nil, nil), nil, allowAll)
		_, err := svc.List(ctx, actor, "twenty")
		assert.ErrorIs(t, err, holidayerrors.ErrInvalidYear)
	})
}

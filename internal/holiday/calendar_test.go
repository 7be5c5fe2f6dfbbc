package holiday_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go-payroll/internal/holiday"
	holidayMock "go-payroll/internal/holiday/mock"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestCalendar_HolidaysBetween(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.NewString()
	yearRows := []holiday.Holiday{
		{ID: uuid.New(), Date: day("2024-05-01"), Name: "Labour Day"},
		{ID: uuid.New(), Date: day("2024-08-31"), Name: "Merdeka"},
	}

	t.Run("cache miss loads year and filters range", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := holidayMock.NewMockRepository(ctrl)
		rdb, mock := redismock.NewClientMock()

		key := holiday.GetCalendarKey(companyID, 2024)
		data, _ := json.Marshal(yearRows)
		mock.ExpectGet(key).RedisNil()
		mock.ExpectSet(key, data, 6*time.Hour).SetVal("OK")
		repo.EXPECT().FindBetween(ctx, companyID, day("2024-01-01"), day("2024-12-31")).Return(yearRows, nil)

		got, err := holiday.NewCalendar(repo, rdb).HolidaysBetween(ctx, companyID, day("2024-05-01"), day("2024-05-31"))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Labour Day", got[0].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cache hit skips repository", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := holidayMock.NewMockRepository(ctrl)
		rdb, mock := redismock.NewClientMock()

		data, _ := json.Marshal(yearRows)
		mock.ExpectGet(holiday.GetCalendarKey(companyID, 2024)).SetVal(string(data))

		got, err := holiday.NewCalendar(repo, rdb).HolidaysBetween(ctx, companyID, day("2024-01-01"), day("2024-12-31"))
		require.NoError(t, err)
		assert.Len(t, got, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("range spanning two years reads both", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := holidayMock.NewMockRepository(ctrl)

		repo.EXPECT().FindBetween(ctx, companyID, day("2024-01-01"), day("2024-12-31")).Return(yearRows, nil)
		repo.EXPECT().FindBetween(ctx, companyID, day("2025-01-01"), day("2025-12-31")).
			Return([]holiday.Holiday{{Date: day("2025-01-01"), Name: "New Year"}}, nil)

		got, err := holiday.NewCalendar(repo, nil).HolidaysBetween(ctx, companyID, day("2024-08-01"), day("2025-01-31"))
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Merdeka", got[0].Name)
		assert.Equal(t, "New Year", got[1].Name)
	})

	t.Run("inverted range", func(t *testing.T) {
		got, err := holiday.NewCalendar(nil, nil).HolidaysBetween(ctx, companyID, day("2024-02-01"), day("2024-01-01"))
		assert.NoError(t, err)
		assert.Empty(t, got)
	})
}

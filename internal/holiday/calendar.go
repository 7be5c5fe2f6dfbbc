package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const calendarCacheTTL = 6 * time.Hour

func GetCalendarKey(companyID string, year int) string {
	return fmt.Sprintf("holidays:%s:%d", companyID, year)
}

// Calendar answers holiday lookups for timesheets and payroll. Each
// company-year is cached in Redis as one JSON list.
type Calendar struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewCalendar(repo Repository, rdb *redis.Client, logger ...*zap.Logger) *Calendar {
	l := zap.L().Named("holiday.calendar")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.calendar")
	}
	return &Calendar{repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

// HolidaysBetween returns the company's holidays in [start, end], inclusive.
func (c *Calendar) HolidaysBetween(ctx context.Context, companyID string, start, end time.Time) ([]Holiday, error) {
	if end.Before(start) {
		return nil, nil
	}

	from, to := dateOnly(start), dateOnly(end)
	var out []Holiday
	for year := from.Year(); year <= to.Year(); year++ {
		rows, err := c.year(ctx, companyID, year)
		if err != nil {
			return nil, err
		}
		for _, h := range rows {
			d := dateOnly(h.Date)
			if d.Before(from) || d.After(to) {
				continue
			}
			out = append(out, h)
		}
	}
	return out, nil
}

// Invalidate drops the cached company-year after a write.
func (c *Calendar) Invalidate(ctx context.Context, companyID string, year int) {
	if c.rdb == nil {
		return
	}
	key := GetCalendarKey(companyID, year)
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		c.logger.Warn("invalidate holiday cache failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *Calendar) year(ctx context.Context, companyID string, year int) ([]Holiday, error) {
	key := GetCalendarKey(companyID, year)
	if c.rdb != nil {
		if cached, err := c.rdb.Get(ctx, key).Result(); err == nil {
			var rows []Holiday
			if json.Unmarshal([]byte(cached), &rows) == nil {
				return rows, nil
			}
		}
	}

	v, err, _ := c.sf.Do(key, func() (interface{}, error) {
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
		rows, err := c.repo.FindBetween(ctx, companyID, start, end)
		if err != nil {
			return nil, err
		}

		if c.rdb != nil {
			if data, err := json.Marshal(rows); err == nil {
				if err := c.rdb.Set(ctx, key, data, calendarCacheTTL).Err(); err != nil {
					c.logger.Warn("cache holidays failed", zap.String("key", key), zap.Error(err))
				}
			}
		}
		return rows, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Holiday), nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

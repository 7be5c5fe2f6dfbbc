package company_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-payroll/internal/company"
	companyerrors "go-payroll/internal/company/errors"
	"go-payroll/internal/domain"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/statutory"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*company.Company, error)
	UpdateFn  func(ctx context.Context, c *company.Company) error
	calls     int
}

func (f *fakeRepo) WithTx(*sql.Tx) company.Repository { return f }
func (f *fakeRepo) Create(context.Context, *company.Company) error { return nil }
func (f *fakeRepo) Update(ctx context.Context, c *company.Company) error {
	return f.UpdateFn(ctx, c)
}
func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	f.calls++
	return f.GetByIDFn(ctx, id)
}

var allowAll = domain.AuthorizerFunc(func(domain.Actor, string, string, domain.Target) error { return nil })

func TestService_GetByID(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	comp := &company.Company{ID: id, Name: "Acme", IsActive: true, PayrollSettings: company.DefaultPayrollSettings()}

	t.Run("cache hit skips repository", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		data, _ := json.Marshal(comp)
		mock.ExpectGet(company.GetCompanyKey(id.String())).SetVal(string(data))

		repo := &fakeRepo{}
		svc := company.NewService(repo, allowAll, rdb)

		got, err := svc.GetByID(ctx, id.String())
		require.NoError(t, err)
		assert.Equal(t, "Acme", got.Name)
		assert.True(t, got.PayrollSettings.OT1_5Rate.Equal(decimal.RequireFromString("1.5")))
		assert.Equal(t, 0, repo.calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cache miss loads and stores", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		key := company.GetCompanyKey(id.String())
		data, _ := json.Marshal(comp)
		mock.ExpectGet(key).RedisNil()
		mock.ExpectSet(key, data, 15*time.Minute).SetVal("OK")

		repo := &fakeRepo{GetByIDFn: func(_ context.Context, got uuid.UUID) (*company.Company, error) {
			assert.Equal(t, id, got)
			return comp, nil
		}}
		svc := company.NewService(repo, allowAll, rdb)

		got, err := svc.GetByID(ctx, id.String())
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, 1, repo.calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unconfigured company gets default settings", func(t *testing.T) {
		repo := &fakeRepo{GetByIDFn: func(context.Context, uuid.UUID) (*company.Company, error) {
			return &company.Company{ID: id, Name: "Fresh"}, nil
		}}
		svc := company.NewService(repo, allowAll, nil)

		got, err := svc.GetByID(ctx, id.String())
		require.NoError(t, err)
		assert.Equal(t, statutory.Schemes{EPF: true, SOCSO: true, EIS: true}, got.PayrollSettings.Schemes())
		assert.True(t, statutory.Deductions(decimal.NewFromInt(3000), got.PayrollSettings.Schemes()).TotalEmployee.Equal(decimal.NewFromInt(351)))
	})

	t.Run("not found", func(t *testing.T) {
		repo := &fakeRepo{GetByIDFn: func(context.Context, uuid.UUID) (*company.Company, error) {
			return nil, gorm.ErrRecordNotFound
		}}
		svc := company.NewService(repo, allowAll, nil)

		_, err := svc.GetByID(ctx, id.String())
		assert.ErrorIs(t, err, companyerrors.ErrCompanyNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		svc := company.NewService(&fakeRepo{}, allowAll, nil)
		_, err := svc.GetByID(ctx, "nope")
		assert.ErrorIs(t, err, companyerrors.ErrInvalidCompanyID)
	})
}

func TestService_UpdatePayrollSettings(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	actor := domain.Actor{UserID: "u1", Role: domain.RoleAdmin, CompanyID: id.String()}

	t.Run("partial update keeps other flags and invalidates cache", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectDel(company.GetCompanyKey(id.String())).SetVal(1)

		var saved *company.Company
		repo := &fakeRepo{
			GetByIDFn: func(context.Context, uuid.UUID) (*company.Company, error) {
				return &company.Company{ID: id, PayrollSettings: company.DefaultPayrollSettings()}, nil
			},
			UpdateFn: func(_ context.Context, c *company.Company) error {
				saved = c
				return nil
			},
		}
		svc := company.NewService(repo, allowAll, rdb)

		ot := 1.75
		off := false
		resp, err := svc.UpdatePayrollSettings(ctx, actor, company.UpdatePayrollSettingsRequest{
			OT1_5Rate:    &ot,
			SOCSOEnabled: &off,
		})
		require.NoError(t, err)

		assert.Equal(t, 1.75, resp.PayrollSettings.OT1_5Rate)
		assert.Equal(t, 2.0, resp.PayrollSettings.OT2_0Rate)
		assert.False(t, resp.PayrollSettings.SOCSOEnabled)
		assert.True(t, resp.PayrollSettings.EPFEnabled)
		assert.Equal(t, 8.0, resp.PayrollSettings.DailyNormalHours)
		require.NotNil(t, saved)
		assert.False(t, saved.PayrollSettings.Schemes().SOCSO)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("first update of unconfigured company starts from defaults", func(t *testing.T) {
		var saved *company.Company
		repo := &fakeRepo{
			GetByIDFn: func(context.Context, uuid.UUID) (*company.Company, error) {
				return &company.Company{ID: id}, nil
			},
			UpdateFn: func(_ context.Context, c *company.Company) error {
				saved = c
				return nil
			},
		}
		svc := company.NewService(repo, allowAll, nil)

		off := false
		_, err := svc.UpdatePayrollSettings(ctx, actor, company.UpdatePayrollSettingsRequest{SOCSOEnabled: &off})
		require.NoError(t, err)

		require.NotNil(t, saved)
		assert.Equal(t, statutory.Schemes{EPF: true, SOCSO: false, EIS: true}, saved.PayrollSettings.Schemes())
		assert.True(t, saved.PayrollSettings.OT1_5Rate.Equal(decimal.RequireFromString("1.5")))
	})

	t.Run("forbidden", func(t *testing.T) {
		deny := domain.AuthorizerFunc(func(domain.Actor, string, string, domain.Target) error {
			return apperror.ErrForbidden
		})
		svc := company.NewService(&fakeRepo{}, deny, nil)

		_, err := svc.UpdatePayrollSettings(ctx, actor, company.UpdatePayrollSettingsRequest{})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("repository error propagates", func(t *testing.T) {
		boom := errors.New("db down")
		repo := &fakeRepo{GetByIDFn: func(context.Context, uuid.UUID) (*company.Company, error) { return nil, boom }}
		svc := company.NewService(repo, allowAll, nil)

		_, err := svc.UpdatePayrollSettings(ctx, actor, company.UpdatePayrollSettingsRequest{})
		assert.ErrorIs(t, err, boom)
	})
}

func TestPayrollSettings_Defaults(t *testing.T) {
	var s company.PayrollSettings
	assert.True(t, s.NormalHoursPerDay().Equal(decimal.NewFromInt(8)))
	assert.True(t, s.OTRates().OT2_0.Equal(decimal.NewFromInt(2)))
	assert.False(t, s.Schemes().EPF)

	c := company.Company{MaxWorkers: 2}
	assert.True(t, c.HasCapacity(1))
	assert.False(t, c.HasCapacity(2))
	assert.True(t, company.Company{}.HasCapacity(1000))
}

func TestPayrollSettings_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		schemes statutory.Schemes
		otRate  string
	}{
		{"settings missing", `{"name":"Acme"}`, statutory.Schemes{EPF: true, SOCSO: true, EIS: true}, "1.5"},
		{"settings null", `{"payroll_settings":null}`, statutory.Schemes{EPF: true, SOCSO: true, EIS: true}, "1.5"},
		{"empty object", `{"payroll_settings":{}}`, statutory.Schemes{EPF: true, SOCSO: true, EIS: true}, "1.5"},
		{"partial", `{"payroll_settings":{"socso_enabled":false,"ot1_5_rate":"1.75"}}`, statutory.Schemes{EPF: true, SOCSO: false, EIS: true}, "1.75"},
		{
			"all schemes off",
			`{"payroll_settings":{"epf_enabled":false,"socso_enabled":false,"eis_enabled":false}}`,
			statutory.Schemes{},
			"1.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c company.Company
			require.NoError(t, json.Unmarshal([]byte(tt.body), &c))
			assert.Equal(t, tt.schemes, c.PayrollSettings.Schemes())
			assert.True(t, c.PayrollSettings.OT1_5Rate.Equal(decimal.RequireFromString(tt.otRate)))
		})
	}
}

func TestCompany_Hooks(t *testing.T) {
	t.Run("create fills unset settings", func(t *testing.T) {
		c := &company.Company{Name: "Acme"}
		require.NoError(t, c.BeforeCreate(nil))
		assert.Equal(t, company.DefaultPayrollSettings().Schemes(), c.PayrollSettings.Schemes())
		assert.False(t, c.PayrollSettings.IsZero())
	})

	t.Run("find keeps written settings", func(t *testing.T) {
		c := &company.Company{PayrollSettings: company.PayrollSettings{OT1_5Rate: decimal.RequireFromString("1.6")}}
		require.NoError(t, c.AfterFind(nil))
		assert.False(t, c.PayrollSettings.EPFEnabled)
		assert.True(t, c.PayrollSettings.OT1_5Rate.Equal(decimal.RequireFromString("1.6")))
	})

	t.Run("find fills null column", func(t *testing.T) {
		c := &company.Company{}
		require.NoError(t, c.AfterFind(nil))
		assert.True(t, c.PayrollSettings.Schemes().EPF)
	})
}

package company

import (
	"encoding/json"
	"time"

	"go-payroll/internal/statutory"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var defaultDailyNormalHours = decimal.NewFromInt(8)

type Company struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name            string          `gorm:"type:varchar(150);not null" json:"name"`
	IsActive        bool            `gorm:"not null;default:true" json:"is_active"`
	PayrollSettings PayrollSettings `gorm:"type:jsonb;serializer:json" json:"payroll_settings"`
	MaxWorkers      int             `gorm:"not null;default:0" json:"max_workers"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (Company) TableName() string {
	return "companies"
}

// PayrollSettings are the per-tenant knobs consumed by payroll and timesheets.
// Settings that were never written start from DefaultPayrollSettings, so every
// statutory scheme is on until a company turns it off. Non-positive rates and
// hours fall back to their defaults when read.
type PayrollSettings struct {
	OT1_5Rate        decimal.Decimal `json:"ot1_5_rate"`
	OT2_0Rate        decimal.Decimal `json:"ot2_0_rate"`
	EPFEnabled       bool            `json:"epf_enabled"`
	SOCSOEnabled     bool            `json:"socso_enabled"`
	EISEnabled       bool            `json:"eis_enabled"`
	DailyNormalHours decimal.Decimal `json:"daily_normal_hours"`
}

func DefaultPayrollSettings() PayrollSettings {
	return PayrollSettings{
		OT1_5Rate:        statutory.DefaultOT1_5Rate,
		OT2_0Rate:        statutory.DefaultOT2_0Rate,
		EPFEnabled:       true,
		SOCSOEnabled:     true,
		EISEnabled:       true,
		DailyNormalHours: defaultDailyNormalHours,
	}
}

// IsZero reports settings that were never written.
func (s PayrollSettings) IsZero() bool {
	return s.OT1_5Rate.IsZero() && s.OT2_0Rate.IsZero() && s.DailyNormalHours.IsZero() &&
		!s.EPFEnabled && !s.SOCSOEnabled && !s.EISEnabled
}

// UnmarshalJSON overlays the stored keys on the defaults, so a missing key
// never disables a scheme.
func (s *PayrollSettings) UnmarshalJSON(data []byte) error {
	type stored PayrollSettings
	v := stored(DefaultPayrollSettings())
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = PayrollSettings(v)
	return nil
}

func (c *Company) BeforeCreate(*gorm.DB) error {
	c.ensureSettings()
	return nil
}

// AfterFind covers rows whose payroll_settings column is NULL.
func (c *Company) AfterFind(*gorm.DB) error {
	c.ensureSettings()
	return nil
}

func (c *Company) ensureSettings() {
	if c.PayrollSettings.IsZero() {
		c.PayrollSettings = DefaultPayrollSettings()
	}
}

func (s PayrollSettings) OTRates() statutory.OTRates {
	return statutory.OTRates{OT1_5: s.OT1_5Rate, OT2_0: s.OT2_0Rate}.WithDefaults()
}

func (s PayrollSettings) Schemes() statutory.Schemes {
	return statutory.Schemes{EPF: s.EPFEnabled, SOCSO: s.SOCSOEnabled, EIS: s.EISEnabled}
}

func (s PayrollSettings) NormalHoursPerDay() decimal.Decimal {
	if !s.DailyNormalHours.IsPositive() {
		return defaultDailyNormalHours
	}
	return s.DailyNormalHours
}

// HasCapacity reports whether another active worker fits the subscription.
// MaxWorkers of 0 means unlimited.
func (c Company) HasCapacity(activeWorkers int64) bool {
	return c.MaxWorkers <= 0 || activeWorkers < int64(c.MaxWorkers)
}

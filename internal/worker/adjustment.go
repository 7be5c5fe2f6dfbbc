package worker

import (
	"encoding/json"
	"fmt"

	"go-payroll/internal/statutory"

	"github.com/shopspring/decimal"
)

type AdjustmentKind string

const (
	AdjustmentFixed      AdjustmentKind = "fixed"
	AdjustmentPercentage AdjustmentKind = "percentage"
)

// Adjustment is an allowance or deduction: either a fixed amount or a
// percentage of some base. Build one with Fixed or Percentage.
type Adjustment struct {
	Name   string          `json:"name"`
	Kind   AdjustmentKind  `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

func Fixed(name string, amount decimal.Decimal) Adjustment {
	return Adjustment{Name: name, Kind: AdjustmentFixed, Amount: amount}
}

func Percentage(name string, pct decimal.Decimal) Adjustment {
	return Adjustment{Name: name, Kind: AdjustmentPercentage, Amount: pct}
}

// Apply returns the money this adjustment contributes against base.
func (a Adjustment) Apply(base decimal.Decimal) decimal.Decimal {
	switch a.Kind {
	case AdjustmentPercentage:
		return statutory.Percent(base, a.Amount)
	default:
		return statutory.Round(a.Amount)
	}
}

func (a *Adjustment) UnmarshalJSON(b []byte) error {
	type raw Adjustment
	var r raw
	if err := json.Unmarshal(b, &r); err != nil {
		return err
	}
	switch r.Kind {
	case AdjustmentFixed, AdjustmentPercentage:
	case "":
		r.Kind = AdjustmentFixed
	default:
		return fmt.Errorf("unknown adjustment type %q", r.Kind)
	}
	*a = Adjustment(r)
	return nil
}

type AppliedAdjustment struct {
	Name   string          `json:"name"`
	Kind   AdjustmentKind  `json:"type"`
	Rate   decimal.Decimal `json:"rate"`
	Amount decimal.Decimal `json:"amount"`
}

// ApplyAll applies every adjustment to the same base and returns the
// itemised amounts with their rounded total.
func ApplyAll(adjustments []Adjustment, base decimal.Decimal) ([]AppliedAdjustment, decimal.Decimal) {
	applied := make([]AppliedAdjustment, 0, len(adjustments))
	total := decimal.Zero
	for _, a := range adjustments {
		amount := a.Apply(base)
		applied = append(applied, AppliedAdjustment{Name: a.Name, Kind: a.Kind, Rate: a.Amount, Amount: amount})
		total = total.Add(amount)
	}
	return applied, statutory.Round(total)
}

// Package statutory computes Malaysian EPF, SOCSO and EIS contributions and
// hourly gross pay. Every function is pure and every returned amount is
// rounded to 2 decimal places, half away from zero.
package statutory

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)

	epfEmployeeRate     = decimal.RequireFromString("0.11")
	epfEmployerRateLow  = decimal.RequireFromString("0.13")
	epfEmployerRateHigh = decimal.RequireFromString("0.12")
	epfEmployerBand     = decimal.NewFromInt(5000)

	socsoCeiling      = decimal.NewFromInt(4000)
	socsoEmployeeRate = decimal.RequireFromString("0.005")
	socsoEmployerRate = decimal.RequireFromString("0.0175")
	socsoEmployeeCap  = decimal.RequireFromString("19.75")
	socsoEmployerCap  = decimal.RequireFromString("69.05")

	eisRate = decimal.RequireFromString("0.002")
	eisCap  = decimal.RequireFromString("7.90")

	hoursPerDay  = decimal.NewFromInt(8)
	daysPerMonth = decimal.NewFromInt(26)

	DefaultOT1_5Rate = decimal.RequireFromString("1.5")
	DefaultOT2_0Rate = decimal.RequireFromString("2.0")
)

// Round is the single rounding rule for money and hours.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Percent returns round(base * pct / 100).
func Percent(base, pct decimal.Decimal) decimal.Decimal {
	return Round(base.Mul(pct).Div(hundred))
}

type Contribution struct {
	Employee decimal.Decimal `json:"employee_contribution"`
	Employer decimal.Decimal `json:"employer_contribution"`
	Total    decimal.Decimal `json:"total_contribution"`
}

func newContribution(employee, employer decimal.Decimal) Contribution {
	employee = Round(employee)
	employer = Round(employer)
	return Contribution{
		Employee: employee,
		Employer: employer,
		Total:    Round(employee.Add(employer)),
	}
}

// EPF: employee 11%, employer 13% up to RM5000 and 12% above it.
func EPF(wage decimal.Decimal) Contribution {
	if !wage.IsPositive() {
		return Contribution{}
	}

	employerRate := epfEmployerRateLow
	if wage.GreaterThan(epfEmployerBand) {
		employerRate = epfEmployerRateHigh
	}

	return newContribution(wage.Mul(epfEmployeeRate), wage.Mul(employerRate))
}

// SOCSO applies to wages up to RM4000 only. Above that the worker is out of
// the scheme and both sides are zero.
func SOCSO(wage decimal.Decimal) Contribution {
	if !wage.IsPositive() || wage.GreaterThan(socsoCeiling) {
		return Contribution{}
	}

	employee := decimal.Min(Round(wage.Mul(socsoEmployeeRate)), socsoEmployeeCap)
	employer := decimal.Min(Round(wage.Mul(socsoEmployerRate)), socsoEmployerCap)
	return newContribution(employee, employer)
}

// EIS: 0.2% each side, each side capped at 7.90.
func EIS(wage decimal.Decimal) Contribution {
	if !wage.IsPositive() {
		return Contribution{}
	}

	side := decimal.Min(Round(wage.Mul(eisRate)), eisCap)
	return newContribution(side, side)
}

type Schemes struct {
	EPF   bool
	SOCSO bool
	EIS   bool
}

type Deduction struct {
	EPF   Contribution
	SOCSO Contribution
	EIS   Contribution

	TotalEmployee   decimal.Decimal
	TotalEmployer   decimal.Decimal
	TotalDeductions decimal.Decimal
}

// Deductions runs every enabled scheme against the same monthly wage.
func Deductions(wage decimal.Decimal, schemes Schemes) Deduction {
	var d Deduction
	if schemes.EPF {
		d.EPF = EPF(wage)
	}
	if schemes.SOCSO {
		d.SOCSO = SOCSO(wage)
	}
	if schemes.EIS {
		d.EIS = EIS(wage)
	}

	d.TotalEmployee = Round(d.EPF.Employee.Add(d.SOCSO.Employee).Add(d.EIS.Employee))
	d.TotalEmployer = Round(d.EPF.Employer.Add(d.SOCSO.Employer).Add(d.EIS.Employer))
	d.TotalDeductions = Round(d.TotalEmployee.Add(d.TotalEmployer))
	return d
}

// HourlyToMonthly assumes 8 hours a day and 26 days a month.
func HourlyToMonthly(rate decimal.Decimal) decimal.Decimal {
	return Round(rate.Mul(hoursPerDay).Mul(daysPerMonth))
}

type Hours struct {
	Normal decimal.Decimal `json:"normal"`
	OT1_5  decimal.Decimal `json:"ot1_5"`
	OT2_0  decimal.Decimal `json:"ot2_0"`
}

func (h Hours) Add(o Hours) Hours {
	return Hours{
		Normal: h.Normal.Add(o.Normal),
		OT1_5:  h.OT1_5.Add(o.OT1_5),
		OT2_0:  h.OT2_0.Add(o.OT2_0),
	}
}

type OTRates struct {
	OT1_5 decimal.Decimal
	OT2_0 decimal.Decimal
}

// WithDefaults fills unset multipliers with 1.5 and 2.0.
func (r OTRates) WithDefaults() OTRates {
	if !r.OT1_5.IsPositive() {
		r.OT1_5 = DefaultOT1_5Rate
	}
	if !r.OT2_0.IsPositive() {
		r.OT2_0 = DefaultOT2_0Rate
	}
	return r
}

type Pay struct {
	NormalPay decimal.Decimal
	OT1_5Pay  decimal.Decimal
	OT2_0Pay  decimal.Decimal
	GrossPay  decimal.Decimal
}

// GrossPay rounds each tier on its own, then rounds their sum.
func GrossPay(hours Hours, rate decimal.Decimal, ot OTRates) Pay {
	normal := Round(hours.Normal.Mul(rate))
	ot15 := Round(hours.OT1_5.Mul(rate).Mul(ot.OT1_5))
	ot20 := Round(hours.OT2_0.Mul(rate).Mul(ot.OT2_0))

	return Pay{
		NormalPay: normal,
		OT1_5Pay:  ot15,
		OT2_0Pay:  ot20,
		GrossPay:  Round(normal.Add(ot15).Add(ot20)),
	}
}

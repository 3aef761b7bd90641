package calculators

import (
	"github.com/shopspring/decimal"

	"github.com/fincalcs/engine/internal/metrics"
	"github.com/fincalcs/engine/internal/safemath"
	"github.com/fincalcs/engine/internal/validate"
)

var salarySchema = validate.Schema{
	Calculator: "salary",
	Mode:       validate.Lenient,
	Fields: []validate.FieldRule{
		{Name: "annualCTC", Min: validate.Bound("1"), Max: validate.Bound("1000000000000"), Default: decimal.NewFromInt(600000)},
		{Name: "basicPercent", Min: validate.Bound("10"), Max: validate.Bound("100"), Default: decimal.NewFromInt(40)},
		{Name: "hraPercent", Min: validate.Bound("0"), Max: validate.Bound("100"), Default: decimal.NewFromInt(50)},
		{Name: "pfPercent", Min: validate.Bound("0"), Max: validate.Bound("100"), Default: decimal.NewFromInt(12)},
		{Name: "professionalTaxMonthly", Min: validate.Bound("0"), Max: validate.Bound("10000"), Default: decimal.NewFromInt(200)},
		{Name: "monthlyExpenses", Min: validate.Bound("0"), Max: validate.Bound("1000000000")},
	},
}

// SalaryResult is the CTC breakdown record. Figures are pre-income-tax;
// tax computation is a different calculator's job.
type SalaryResult struct {
	MonthlyGross    decimal.Decimal
	MonthlyBasic    decimal.Decimal
	MonthlyHRA      decimal.Decimal
	PFDeduction     decimal.Decimal
	ProfessionalTax decimal.Decimal
	TakeHomeMonthly decimal.Decimal
	TakeHomeAnnual  decimal.Decimal
	// SavingsRatePct is zero unless monthlyExpenses was given.
	SavingsRatePct decimal.Decimal
}

// Salary breaks an annual CTC into its monthly components. Fields:
// annualCTC, basicPercent (of CTC, default 40), hraPercent (of basic,
// default 50), pfPercent (of basic, employee side, default 12),
// professionalTaxMonthly (default 200), monthlyExpenses (optional, enables
// the savings rate).
func (e *Engine) Salary(raw Raw) (*SalaryResult, error) {
	values, err := salarySchema.Apply(raw)
	if err != nil {
		return nil, err
	}

	twelve := decimal.NewFromInt(12)
	monthlyGross := safemath.Div(values.Get("annualCTC"), twelve, decimal.Zero)
	monthlyBasic := safemath.Mul(monthlyGross, safemath.Percent(values.Get("basicPercent")))
	monthlyHRA := safemath.Mul(monthlyBasic, safemath.Percent(values.Get("hraPercent")))
	pf := safemath.Mul(monthlyBasic, safemath.Percent(values.Get("pfPercent")))
	profTax := values.Get("professionalTaxMonthly")

	takeHome := safemath.Sub(safemath.Sub(monthlyGross, pf), profTax)
	if takeHome.IsNegative() {
		takeHome = decimal.Zero
	}

	result := &SalaryResult{
		MonthlyGross:    money(monthlyGross),
		MonthlyBasic:    money(monthlyBasic),
		MonthlyHRA:      money(monthlyHRA),
		PFDeduction:     money(pf),
		ProfessionalTax: money(profTax),
		TakeHomeMonthly: money(takeHome),
		TakeHomeAnnual:  money(safemath.Mul(takeHome, twelve)),
	}

	if expenses := values.Get("monthlyExpenses"); expenses.GreaterThan(decimal.Zero) {
		result.SavingsRatePct = metrics.SavingsRate(safemath.Sub(takeHome, expenses), takeHome)
	}

	return result, nil
}

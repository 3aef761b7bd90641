package calculators

import (
	"github.com/shopspring/decimal"

	"github.com/fincalcs/engine/internal/amortize"
	"github.com/fincalcs/engine/internal/metrics"
	"github.com/fincalcs/engine/internal/validate"
)

var mortgageSchema = validate.Schema{
	Calculator: "mortgage",
	Mode:       validate.Strict,
	Fields: []validate.FieldRule{
		{Name: "homePrice", Required: true, Min: validate.Bound("1"), Max: validate.Bound("1000000000000")},
		{Name: "downPayment", Min: validate.Bound("0"), Max: validate.Bound("1000000000000")},
		{Name: "annualRate", Required: true, Min: validate.Bound("0"), Max: validate.Bound("100")},
		{Name: "months", Required: true, Min: validate.Bound("1"), Max: validate.Bound("600")},
		{Name: "monthlyIncome", Min: validate.Bound("0"), Max: validate.Bound("1000000000000")},
	},
	Cross: []validate.CrossRule{
		{
			Field:   "downPayment",
			Message: "must be less than the home price",
			Check: func(v validate.Values) bool {
				return v.Get("downPayment").LessThan(v.Get("homePrice"))
			},
		},
	},
}

// MortgageResult is the home-loan output record.
type MortgageResult struct {
	LoanAmount     decimal.Decimal
	MonthlyPayment decimal.Decimal
	TotalPayment   decimal.Decimal
	TotalInterest  decimal.Decimal
	Months         int
	// LoanToValuePct is the financed share of the home price.
	LoanToValuePct decimal.Decimal
	// DebtToIncomePct is zero unless monthlyIncome was given.
	DebtToIncomePct decimal.Decimal
	Eligibility     decimal.Decimal
	Schedule        []amortize.Entry
}

// Mortgage amortizes a home purchase loan. Fields: homePrice, downPayment,
// annualRate (percent), months, monthlyIncome (optional; enables the
// debt-to-income ratio and eligibility score).
func (e *Engine) Mortgage(raw Raw) (*MortgageResult, error) {
	values, err := mortgageSchema.Apply(raw)
	if err != nil {
		return nil, err
	}

	price := values.Get("homePrice")
	loan := price.Sub(values.Get("downPayment"))
	months := intOf(values.Get("months"))

	plan, err := e.planner.Plan(amortize.PlanInput{
		Principal:         loan,
		AnnualRatePercent: values.Get("annualRate"),
		TotalPeriods:      months,
	})
	if err != nil {
		return nil, err
	}

	ltv := metrics.LoanToValue(loan, price)
	result := &MortgageResult{
		LoanAmount:     money(loan),
		MonthlyPayment: money(plan.PeriodicPayment),
		TotalPayment:   money(plan.TotalPayment),
		TotalInterest:  money(plan.TotalInterest),
		Months:         len(plan.Schedule),
		LoanToValuePct: ltv,
		Schedule:       plan.Schedule,
	}

	if income := values.Get("monthlyIncome"); income.GreaterThan(decimal.Zero) {
		result.DebtToIncomePct = metrics.DebtToIncome(plan.PeriodicPayment, income)
		result.Eligibility = metrics.EligibilityScore(plan.PeriodicPayment, income, ltv, months/12)
	}

	return result, nil
}

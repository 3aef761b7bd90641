package calculators

import (
	"github.com/shopspring/decimal"

	"github.com/fincalcs/engine/internal/amortize"
	"github.com/fincalcs/engine/internal/metrics"
	"github.com/fincalcs/engine/internal/validate"
)

var businessLoanSchema = validate.Schema{
	Calculator: "business-loan",
	Mode:       validate.Strict,
	Fields: []validate.FieldRule{
		{Name: "loanAmount", Required: true, Min: validate.Bound("1"), Max: validate.Bound("1000000000000")},
		{Name: "annualRate", Required: true, Min: validate.Bound("0"), Max: validate.Bound("100")},
		{Name: "months", Required: true, Min: validate.Bound("1"), Max: validate.Bound("600")},
		{Name: "monthlyOperatingIncome", Min: validate.Bound("0"), Max: validate.Bound("1000000000000")},
		{Name: "collateralValue", Min: validate.Bound("0"), Max: validate.Bound("1000000000000")},
	},
}

// BusinessLoanResult adds lender-facing metrics to a plain amortization.
type BusinessLoanResult struct {
	MonthlyPayment decimal.Decimal
	TotalPayment   decimal.Decimal
	TotalInterest  decimal.Decimal
	Months         int
	// DebtServiceCoverage is zero unless monthlyOperatingIncome was given;
	// lenders usually want at least 1.25.
	DebtServiceCoverage decimal.Decimal
	// LoanToValuePct is zero unless collateralValue was given.
	LoanToValuePct decimal.Decimal
	Eligibility    decimal.Decimal
	Schedule       []amortize.Entry
}

// BusinessLoan amortizes a commercial loan and derives the coverage and
// collateral metrics a lender screens on. Fields: loanAmount, annualRate
// (percent), months, monthlyOperatingIncome (optional), collateralValue
// (optional).
func (e *Engine) BusinessLoan(raw Raw) (*BusinessLoanResult, error) {
	values, err := businessLoanSchema.Apply(raw)
	if err != nil {
		return nil, err
	}

	months := intOf(values.Get("months"))
	plan, err := e.planner.Plan(amortize.PlanInput{
		Principal:         values.Get("loanAmount"),
		AnnualRatePercent: values.Get("annualRate"),
		TotalPeriods:      months,
	})
	if err != nil {
		return nil, err
	}

	result := &BusinessLoanResult{
		MonthlyPayment: money(plan.PeriodicPayment),
		TotalPayment:   money(plan.TotalPayment),
		TotalInterest:  money(plan.TotalInterest),
		Months:         len(plan.Schedule),
		Schedule:       plan.Schedule,
	}

	if collateral := values.Get("collateralValue"); collateral.GreaterThan(decimal.Zero) {
		result.LoanToValuePct = metrics.LoanToValue(values.Get("loanAmount"), collateral)
	}
	if noi := values.Get("monthlyOperatingIncome"); noi.GreaterThan(decimal.Zero) {
		result.DebtServiceCoverage = metrics.DebtServiceCoverage(noi, plan.PeriodicPayment)
		result.Eligibility = metrics.EligibilityScore(plan.PeriodicPayment, noi, result.LoanToValuePct, months/12)
	}

	return result, nil
}

package calculators

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fincalcs/engine/internal/amortize"
	"github.com/fincalcs/engine/internal/metrics"
	"github.com/fincalcs/engine/internal/validate"
)

// emiSchema is strict: a loan quote from out-of-policy input would be
// actively misleading.
var emiSchema = validate.Schema{
	Calculator: "emi",
	Mode:       validate.Strict,
	Fields: []validate.FieldRule{
		{Name: "principal", Required: true, Min: validate.Bound("1"), Max: validate.Bound("1000000000000")},
		{Name: "annualRate", Required: true, Min: validate.Bound("0"), Max: validate.Bound("100")},
		{Name: "months", Required: true, Min: validate.Bound("1"), Max: validate.Bound("600")},
		{Name: "extraPayment", Min: validate.Bound("0"), Max: validate.Bound("1000000000000")},
		{Name: "monthlyIncome", Min: validate.Bound("0"), Max: validate.Bound("1000000000000")},
	},
}

// EMIResult is the loan calculator's output record. All rate inputs were
// annual percentages; MonthlyPayment and the totals are currency figures
// rounded to two places.
type EMIResult struct {
	MonthlyPayment decimal.Decimal
	TotalPayment   decimal.Decimal
	TotalInterest  decimal.Decimal
	// Months is the true payoff horizon, which extra payments can shorten
	// below the nominal term.
	Months        int
	PaidOffEarly  bool
	NonAmortizing bool
	// InterestSaved compares against the same loan without extra payments.
	InterestSaved decimal.Decimal
	// Eligibility is a [0,100] score, zero unless monthlyIncome was given.
	Eligibility decimal.Decimal
	Schedule    []amortize.Entry
}

// EMI computes the equated installment and full schedule for a fixed-rate
// loan. Fields: principal, annualRate (percent), months, extraPayment
// (optional), extraFrequency ("none"|"monthly"|"yearly"), monthlyIncome
// (optional, enables the eligibility score).
func (e *Engine) EMI(raw Raw) (*EMIResult, error) {
	values, err := emiSchema.Apply(raw)
	if err != nil {
		return nil, err
	}

	in := amortize.PlanInput{
		Principal:         values.Get("principal"),
		AnnualRatePercent: values.Get("annualRate"),
		TotalPeriods:      intOf(values.Get("months")),
		ExtraPayment:      values.Get("extraPayment"),
		ExtraEvery:        amortize.ExtraSchedule(stringField(raw, "extraFrequency", string(amortize.ExtraMonthly))),
	}

	plan, err := e.planner.Plan(in)
	if err != nil {
		return nil, err
	}

	result := &EMIResult{
		MonthlyPayment: money(plan.PeriodicPayment),
		TotalPayment:   money(plan.TotalPayment),
		TotalInterest:  money(plan.TotalInterest),
		Months:         len(plan.Schedule),
		PaidOffEarly:   plan.PaidOffEarly,
		NonAmortizing:  plan.NonAmortizing,
		Schedule:       plan.Schedule,
	}

	if in.ExtraPayment.GreaterThan(decimal.Zero) {
		base := in
		base.ExtraPayment = decimal.Zero
		baseline, err := e.planner.Plan(base)
		if err != nil {
			return nil, err
		}
		result.InterestSaved = money(baseline.TotalInterest.Sub(plan.TotalInterest))
		e.logger.Debug("prepayment comparison",
			zap.String("op", "calculators.EMI"),
			zap.String("interest_saved", result.InterestSaved.String()),
		)
	}

	if income := values.Get("monthlyIncome"); income.GreaterThan(decimal.Zero) {
		result.Eligibility = metrics.EligibilityScore(
			plan.PeriodicPayment, income, decimal.Zero, intOf(values.Get("months"))/12,
		)
	}

	return result, nil
}

package calculators

import (
	"github.com/shopspring/decimal"

	"github.com/fincalcs/engine/internal/metrics"
	"github.com/fincalcs/engine/internal/projection"
	"github.com/fincalcs/engine/internal/validate"
)

var goalSchema = validate.Schema{
	Calculator: "goal",
	Mode:       validate.Strict,
	Fields: []validate.FieldRule{
		{Name: "targetCost", Required: true, Min: validate.Bound("1"), Max: validate.Bound("1000000000000")},
		{Name: "years", Required: true, Min: validate.Bound("1"), Max: validate.Bound("50")},
		{Name: "inflationRate", Min: validate.Bound("0"), Max: validate.Bound("30"), Default: decimal.NewFromInt(6)},
		{Name: "expectedReturn", Required: true, Min: validate.Bound("0"), Max: validate.Bound("30")},
		{Name: "existingSavings", Min: validate.Bound("0"), Max: validate.Bound("1000000000000")},
		{Name: "monthlyIncome", Min: validate.Bound("0"), Max: validate.Bound("1000000000000")},
	},
}

// GoalResult is the goal-planning output record. A fully funded goal
// reports a zero shortfall and zero required contribution, never negative
// figures.
type GoalResult struct {
	InflatedTarget     decimal.Decimal
	SavingsFutureValue decimal.Decimal
	Shortfall          decimal.Decimal
	RequiredMonthly    decimal.Decimal
	FullyFunded        bool
	// Feasibility is a [0,100] score, zero unless monthlyIncome was given
	// (a fully funded goal always scores 100).
	Feasibility decimal.Decimal
}

// Goal sizes an education or other future goal in tomorrow's money and
// back-solves the monthly contribution. Fields: targetCost (today's
// money), years, inflationRate (percent, default 6), expectedReturn
// (percent), existingSavings (optional), monthlyIncome (optional, enables
// the feasibility score).
func (e *Engine) Goal(raw Raw) (*GoalResult, error) {
	values, err := goalSchema.Apply(raw)
	if err != nil {
		return nil, err
	}

	years := intOf(values.Get("years"))
	plan, err := projection.Goal(projection.GoalInput{
		TargetCost:            values.Get("targetCost"),
		InflationPercent:      values.Get("inflationRate"),
		Years:                 years,
		ExistingSavings:       values.Get("existingSavings"),
		ExpectedReturnPercent: values.Get("expectedReturn"),
	})
	if err != nil {
		return nil, err
	}

	result := &GoalResult{
		InflatedTarget:     money(plan.InflatedTarget),
		SavingsFutureValue: money(plan.SavingsFutureValue),
		Shortfall:          money(plan.Shortfall),
		RequiredMonthly:    money(plan.RequiredMonthly),
		FullyFunded:        plan.FullyFunded,
	}

	if income := values.Get("monthlyIncome"); income.GreaterThan(decimal.Zero) || plan.FullyFunded {
		result.Feasibility = metrics.FeasibilityScore(plan.RequiredMonthly, income, years)
	}

	return result, nil
}

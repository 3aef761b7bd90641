package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/fincalcs/engine/internal/safemath"
)

// Step maps "value >= AtLeast" to a sub-score. Tables are evaluated top
// down, so thresholds must be listed in descending order.
type Step struct {
	AtLeast decimal.Decimal
	Score   decimal.Decimal
}

// StepTable is a fixed, documented step function over a ratio.
type StepTable []Step

// Evaluate returns the score of the first step the value reaches, or zero
// when it reaches none.
func (t StepTable) Evaluate(v decimal.Decimal) decimal.Decimal {
	for _, s := range t {
		if v.GreaterThanOrEqual(s.AtLeast) {
			return s.Score
		}
	}
	return decimal.Zero
}

// Component is one weighted sub-score of a composite.
type Component struct {
	Score  decimal.Decimal
	Weight decimal.Decimal
}

// WeightedScore aggregates sub-scores into a composite clamped to [0, 100].
func WeightedScore(components []Component) decimal.Decimal {
	sum := decimal.Zero
	weights := decimal.Zero
	for _, c := range components {
		sum = safemath.Add(sum, safemath.Mul(safemath.ClampScore(c.Score), c.Weight))
		weights = safemath.Add(weights, c.Weight)
	}
	return safemath.ClampScore(safemath.Div(sum, weights, decimal.Zero))
}

func step(atLeast, score string) Step {
	return Step{AtLeast: decimal.RequireFromString(atLeast), Score: decimal.RequireFromString(score)}
}

// savingsRateSteps scores the share of income left after the plan's
// contribution: 20%+ is a fully comfortable plan.
var savingsRateSteps = StepTable{
	step("20", "100"),
	step("15", "80"),
	step("10", "60"),
	step("5", "40"),
	step("0.01", "20"),
}

// horizonSteps rewards longer runways: compounding needs time.
var horizonSteps = StepTable{
	step("15", "100"),
	step("10", "80"),
	step("7", "60"),
	step("4", "40"),
	step("2", "20"),
	step("0", "10"),
}

// burdenSteps scores the required contribution as a share of income;
// lower is better, so the descending thresholds carry ascending scores.
var burdenSteps = StepTable{
	step("60", "0"),
	step("40", "25"),
	step("25", "50"),
	step("10", "80"),
	step("0", "100"),
}

// foirSteps scores the fixed-obligation-to-income ratio of a loan; lenders
// get uncomfortable past 40%.
var foirSteps = StepTable{
	step("60", "0"),
	step("50", "30"),
	step("40", "55"),
	step("30", "75"),
	step("20", "90"),
	step("0", "100"),
}

// ltvSteps scores loan-to-value; thinner equity means more risk.
var ltvSteps = StepTable{
	step("90", "20"),
	step("80", "50"),
	step("70", "70"),
	step("60", "85"),
	step("0", "100"),
}

// tenureSteps scores loan tenure in years; shorter exposure is safer.
var tenureSteps = StepTable{
	step("20", "60"),
	step("10", "80"),
	step("0", "100"),
}

// FeasibilityScore rates a goal plan in [0, 100] from the required monthly
// contribution, the saver's income, and the horizon. Zero income scores
// the plan infeasible unless nothing is required.
func FeasibilityScore(requiredMonthly, monthlyIncome decimal.Decimal, horizonYears int) decimal.Decimal {
	if requiredMonthly.LessThanOrEqual(decimal.Zero) {
		return hundred
	}
	if monthlyIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	burden := ratioPct(requiredMonthly, monthlyIncome)
	// Income share left untouched by the plan, scored as a savings rate.
	leftover := safemath.Sub(hundred, burden)

	return WeightedScore([]Component{
		{Score: burdenSteps.Evaluate(burden), Weight: decimal.NewFromFloat(0.45)},
		{Score: savingsRateSteps.Evaluate(leftover), Weight: decimal.NewFromFloat(0.30)},
		{Score: horizonSteps.Evaluate(decimal.NewFromInt(int64(horizonYears))), Weight: decimal.NewFromFloat(0.25)},
	})
}

// EligibilityScore rates a loan application in [0, 100] from the proposed
// installment, the applicant's income, the loan-to-value percentage, and
// tenure.
func EligibilityScore(installment, monthlyIncome, ltvPct decimal.Decimal, tenureYears int) decimal.Decimal {
	if monthlyIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	foir := ratioPct(installment, monthlyIncome)

	return WeightedScore([]Component{
		{Score: foirSteps.Evaluate(foir), Weight: decimal.NewFromFloat(0.5)},
		{Score: ltvSteps.Evaluate(ltvPct), Weight: decimal.NewFromFloat(0.3)},
		{Score: tenureSteps.Evaluate(decimal.NewFromInt(int64(tenureYears))), Weight: decimal.NewFromFloat(0.2)},
	})
}

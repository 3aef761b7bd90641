package projection

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fincalcs/engine/internal/safemath"
)

// GoalInput sizes a future goal (education, house, any target amount) in
// tomorrow's money and works out what closes the gap.
type GoalInput struct {
	// TargetCost is the goal amount in today's money.
	TargetCost       decimal.Decimal
	InflationPercent decimal.Decimal
	Years            int
	// ExistingSavings already earmarked for the goal.
	ExistingSavings decimal.Decimal
	// ExpectedReturnPercent applies to both existing savings and future
	// contributions, compounded monthly.
	ExpectedReturnPercent decimal.Decimal
}

// GoalResult is the sizing outcome. A shortfall that existing savings
// already cover is reported as zero, never negative, and then no
// contribution is required.
type GoalResult struct {
	InflatedTarget       decimal.Decimal
	SavingsFutureValue   decimal.Decimal
	Shortfall            decimal.Decimal
	RequiredMonthly      decimal.Decimal
	FullyFunded          bool
	TotalToBeContributed decimal.Decimal
}

// Goal inflation-adjusts the target over the horizon, nets out the
// projected value of existing savings, and back-solves the monthly
// contribution for the remaining shortfall.
func Goal(in GoalInput) (*GoalResult, error) {
	if in.TargetCost.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("projection: goal target must be positive, got %s", in.TargetCost)
	}
	if in.Years <= 0 {
		return nil, fmt.Errorf("projection: goal horizon must be positive, got %d", in.Years)
	}

	years := decimal.NewFromInt(int64(in.Years))
	inflationGrowth := safemath.Pow(safemath.Add(one, safemath.Percent(in.InflationPercent)), years, one)
	inflatedTarget := safemath.Mul(in.TargetCost, inflationGrowth)

	savingsFV := decimal.Zero
	if in.ExistingSavings.GreaterThan(decimal.Zero) {
		savingsFV = LumpSum(in.ExistingSavings, in.ExpectedReturnPercent, years, Monthly).Maturity
	}

	shortfall := safemath.Sub(inflatedTarget, savingsFV)
	if shortfall.LessThanOrEqual(decimal.Zero) {
		return &GoalResult{
			InflatedTarget:     inflatedTarget,
			SavingsFutureValue: savingsFV,
			Shortfall:          decimal.Zero,
			RequiredMonthly:    decimal.Zero,
			FullyFunded:        true,
		}, nil
	}

	months := in.Years * 12
	monthly := RequiredContribution(shortfall, in.ExpectedReturnPercent, months, 12, false)

	return &GoalResult{
		InflatedTarget:       inflatedTarget,
		SavingsFutureValue:   savingsFV,
		Shortfall:            shortfall,
		RequiredMonthly:      monthly,
		TotalToBeContributed: safemath.Mul(monthly, decimal.NewFromInt(int64(months))),
	}, nil
}

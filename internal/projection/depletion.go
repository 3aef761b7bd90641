package projection

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fincalcs/engine/internal/safemath"
)

// MaxDepletionPeriods caps the withdrawal simulation (~50 years monthly).
const MaxDepletionPeriods = 600

// TerminalCondition reports how a depletion run ended, so a caller can
// distinguish a fully spent corpus from one the horizon could not exhaust.
type TerminalCondition string

const (
	// Depleted means the balance reached zero before the cap.
	Depleted TerminalCondition = "depleted"
	// Capped means the horizon cap fired with a balance remaining; the
	// corpus is likely sustainable indefinitely at this withdrawal rate.
	Capped TerminalCondition = "capped"
)

// DepletionInput describes a systematic withdrawal plan.
type DepletionInput struct {
	Corpus            decimal.Decimal
	AnnualRatePercent decimal.Decimal
	// Withdrawal is the per-period amount taken out.
	Withdrawal decimal.Decimal
	// PeriodsPerYear defaults to 12.
	PeriodsPerYear int
	// AnnualStepUpPercent raises the withdrawal once a year, typically to
	// track inflation.
	AnnualStepUpPercent decimal.Decimal
	// MaxPeriods defaults to MaxDepletionPeriods and is clamped to it.
	MaxPeriods int
}

// DepletionEntry is one period of the withdrawal schedule.
type DepletionEntry struct {
	Period           int
	Withdrawal       decimal.Decimal
	Growth           decimal.Decimal
	RemainingBalance decimal.Decimal
}

// DepletionResult reports the simulation outcome.
type DepletionResult struct {
	Periods        int
	TotalWithdrawn decimal.Decimal
	TotalGrowth    decimal.Decimal
	EndingBalance  decimal.Decimal
	Terminal       TerminalCondition
	Schedule       []DepletionEntry
}

// Deplete runs the plan period by period: grow the balance, take the
// withdrawal, step the withdrawal up at each year boundary, stop when the
// balance is exhausted or the horizon cap fires.
func Deplete(in DepletionInput) (*DepletionResult, error) {
	if in.Corpus.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("projection: corpus must be positive, got %s", in.Corpus)
	}
	if in.Withdrawal.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("projection: withdrawal must be positive, got %s", in.Withdrawal)
	}

	perYear := in.PeriodsPerYear
	if perYear <= 0 {
		perYear = 12
	}
	maxPeriods := in.MaxPeriods
	if maxPeriods <= 0 || maxPeriods > MaxDepletionPeriods {
		maxPeriods = MaxDepletionPeriods
	}

	r := periodicRate(in.AnnualRatePercent, perYear)
	step := safemath.Add(one, safemath.Percent(in.AnnualStepUpPercent))

	balance := in.Corpus
	withdrawal := in.Withdrawal
	result := &DepletionResult{Terminal: Capped}

	for period := 1; period <= maxPeriods; period++ {
		if period > 1 && (period-1)%perYear == 0 {
			withdrawal = safemath.Mul(withdrawal, step)
		}

		growth := safemath.Mul(balance, r).Round(10)
		balance = safemath.Add(balance, growth)
		result.TotalGrowth = safemath.Add(result.TotalGrowth, growth)

		taken := withdrawal
		if taken.GreaterThan(balance) {
			taken = balance
		}
		balance = safemath.Sub(balance, taken)
		result.TotalWithdrawn = safemath.Add(result.TotalWithdrawn, taken)

		result.Schedule = append(result.Schedule, DepletionEntry{
			Period:           period,
			Withdrawal:       taken,
			Growth:           growth,
			RemainingBalance: balance,
		})
		result.Periods = period

		if balance.LessThanOrEqual(decimal.Zero) || safemath.IsEffectivelyZero(balance) {
			result.Schedule[len(result.Schedule)-1].RemainingBalance = decimal.Zero
			balance = decimal.Zero
			result.Terminal = Depleted
			break
		}
	}

	result.EndingBalance = balance
	return result, nil
}

// Package projection computes future-value projections: lump-sum growth,
// periodic-contribution accumulation and its required-contribution inverse,
// systematic-withdrawal depletion, and inflation-adjusted goal sizing.
// Rates are annual percentages; amounts are currency-agnostic.
package projection

import (
	"github.com/shopspring/decimal"

	"github.com/fincalcs/engine/internal/safemath"
)

// Compounding states how often growth is credited.
type Compounding string

const (
	Yearly     Compounding = "yearly"
	HalfYearly Compounding = "halfyearly"
	Quarterly  Compounding = "quarterly"
	Monthly    Compounding = "monthly"
)

// PeriodsPerYear maps a compounding frequency to its period count.
// Unrecognized values fall back to yearly.
func (c Compounding) PeriodsPerYear() int {
	switch c {
	case Monthly:
		return 12
	case Quarterly:
		return 4
	case HalfYearly:
		return 2
	default:
		return 1
	}
}

// Result is the common accumulation outcome. Maturity always equals
// TotalContributed plus TotalGrowth.
type Result struct {
	Maturity         decimal.Decimal
	TotalContributed decimal.Decimal
	TotalGrowth      decimal.Decimal
}

var one = decimal.NewFromInt(1)

// LumpSum grows a single deposit for the given number of years at the
// chosen compounding frequency: maturity = P * (1 + r/m)^(m*y).
func LumpSum(principal, annualRatePercent, years decimal.Decimal, compounding Compounding) Result {
	m := decimal.NewFromInt(int64(compounding.PeriodsPerYear()))
	r := safemath.Div(safemath.Percent(annualRatePercent), m, decimal.Zero)
	n := safemath.Mul(years, m)

	maturity := safemath.Mul(principal, safemath.Pow(safemath.Add(one, r), n, one))
	return Result{
		Maturity:         maturity,
		TotalContributed: principal,
		TotalGrowth:      safemath.Sub(maturity, principal),
	}
}

// FutureValue accumulates a fixed periodic contribution:
// FV = c * ((1+r)^n - 1) / r, times (1+r) for an annuity due (contribution
// at the start of each period). A zero rate degrades to c * n.
func FutureValue(contribution, annualRatePercent decimal.Decimal, periods, periodsPerYear int, due bool) Result {
	if periods < 0 {
		periods = 0
	}
	n := decimal.NewFromInt(int64(periods))
	contributed := safemath.Mul(contribution, n)
	r := periodicRate(annualRatePercent, periodsPerYear)

	var maturity decimal.Decimal
	if safemath.IsEffectivelyZero(r) {
		maturity = contributed
	} else {
		factor := annuityFactor(r, n)
		maturity = safemath.Mul(contribution, factor)
		if due {
			maturity = safemath.Mul(maturity, safemath.Add(one, r))
		}
	}

	return Result{
		Maturity:         maturity,
		TotalContributed: contributed,
		TotalGrowth:      safemath.Sub(maturity, contributed),
	}
}

// RequiredContribution inverts FutureValue: the fixed periodic amount that
// reaches target. It uses the same annuity factor so the two directions
// round-trip. Nonpositive targets require nothing.
func RequiredContribution(target, annualRatePercent decimal.Decimal, periods, periodsPerYear int, due bool) decimal.Decimal {
	if target.LessThanOrEqual(decimal.Zero) || periods <= 0 {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(periods))
	r := periodicRate(annualRatePercent, periodsPerYear)
	if safemath.IsEffectivelyZero(r) {
		return safemath.Div(target, n, decimal.Zero)
	}

	factor := annuityFactor(r, n)
	if due {
		factor = safemath.Mul(factor, safemath.Add(one, r))
	}
	return safemath.Div(target, factor, decimal.Zero)
}

// FutureValueStepUp accumulates a contribution that is raised once a year
// by stepUpPercent, the usual SIP step-up arrangement. Iterative; each
// contribution lands at the start of its period.
func FutureValueStepUp(contribution, annualRatePercent decimal.Decimal, years, periodsPerYear int, stepUpPercent decimal.Decimal) Result {
	if years < 0 {
		years = 0
	}
	if periodsPerYear <= 0 {
		periodsPerYear = 12
	}
	r := periodicRate(annualRatePercent, periodsPerYear)
	growth := safemath.Add(one, r)
	step := safemath.Add(one, safemath.Percent(stepUpPercent))

	balance := decimal.Zero
	contributed := decimal.Zero
	current := contribution
	for year := 0; year < years; year++ {
		if year > 0 {
			current = safemath.Mul(current, step)
		}
		for p := 0; p < periodsPerYear; p++ {
			// Ten places keeps the running scale bounded over long horizons.
			balance = safemath.Mul(safemath.Add(balance, current), growth).Round(10)
			contributed = safemath.Add(contributed, current)
		}
	}

	return Result{
		Maturity:         balance,
		TotalContributed: contributed,
		TotalGrowth:      safemath.Sub(balance, contributed),
	}
}

// annuityFactor is ((1+r)^n - 1) / r, shared by both directions of the
// accumulation formula family.
func annuityFactor(r, n decimal.Decimal) decimal.Decimal {
	growth := safemath.Pow(safemath.Add(one, r), n, one)
	return safemath.Div(safemath.Sub(growth, one), r, decimal.Zero)
}

func periodicRate(annualRatePercent decimal.Decimal, periodsPerYear int) decimal.Decimal {
	if periodsPerYear <= 0 {
		periodsPerYear = 12
	}
	return safemath.Div(
		safemath.Percent(annualRatePercent),
		decimal.NewFromInt(int64(periodsPerYear)),
		decimal.Zero,
	)
}

// Package metrics derives comparison and risk figures from engine results:
// dimensionless ratios, percentages, bounded composite scores, and
// break-even points. Everything here is a pure function over already
// computed values; thresholds live in tables so they can be audited
// independently of the aggregation arithmetic.
package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/fincalcs/engine/internal/safemath"
)

var hundred = decimal.NewFromInt(100)

// DebtToIncome is total monthly debt service over gross monthly income,
// as a percentage. Zero income yields zero rather than a blow-up.
func DebtToIncome(monthlyDebt, monthlyIncome decimal.Decimal) decimal.Decimal {
	return ratioPct(monthlyDebt, monthlyIncome)
}

// LoanToValue is the loan amount over the asset value, as a percentage.
func LoanToValue(loanAmount, assetValue decimal.Decimal) decimal.Decimal {
	return ratioPct(loanAmount, assetValue)
}

// ContributionMarginPct is (price - variable cost) / price as a
// percentage. Negative margins are reported as-is; scoring layers clamp.
func ContributionMarginPct(sellingPrice, variableCost decimal.Decimal) decimal.Decimal {
	margin := safemath.Sub(sellingPrice, variableCost)
	return ratioPct(margin, sellingPrice)
}

// DebtServiceCoverage is net operating income over debt service, as a
// plain ratio (1.25 means 25% headroom). Zero debt service yields zero.
func DebtServiceCoverage(netOperatingIncome, debtService decimal.Decimal) decimal.Decimal {
	return safemath.Div(netOperatingIncome, debtService, decimal.Zero)
}

// SavingsRate is monthly savings over monthly income, as a percentage.
func SavingsRate(monthlySavings, monthlyIncome decimal.Decimal) decimal.Decimal {
	return ratioPct(monthlySavings, monthlyIncome)
}

func ratioPct(numerator, denominator decimal.Decimal) decimal.Decimal {
	return safemath.Mul(safemath.Div(numerator, denominator, decimal.Zero), hundred)
}

package metrics

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fincalcs/engine/internal/safemath"
)

// BreakEvenResult locates the volume at which revenue covers all cost.
type BreakEvenResult struct {
	// Units is rounded up: you cannot sell a fraction of a unit.
	Units                 decimal.Decimal
	Revenue               decimal.Decimal
	UnitMargin            decimal.Decimal
	ContributionMarginPct decimal.Decimal
}

// BreakEven computes the break-even point for a single-product business.
// A selling price at or below variable cost has no break-even; schemas
// reject it upstream, so reaching this is a programmer error.
func BreakEven(fixedCost, sellingPrice, variableCost decimal.Decimal) (*BreakEvenResult, error) {
	unitMargin := safemath.Sub(sellingPrice, variableCost)
	if unitMargin.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("metrics: selling price %s must exceed variable cost %s", sellingPrice, variableCost)
	}
	if fixedCost.IsNegative() {
		return nil, fmt.Errorf("metrics: fixed cost must not be negative, got %s", fixedCost)
	}

	units := safemath.Div(fixedCost, unitMargin, decimal.Zero).Ceil()
	return &BreakEvenResult{
		Units:                 units,
		Revenue:               safemath.Mul(units, sellingPrice),
		UnitMargin:            unitMargin,
		ContributionMarginPct: ContributionMarginPct(sellingPrice, variableCost),
	}, nil
}

// UnitsForTargetProfit extends the break-even formula to a profit goal:
// units = (fixed cost + target profit) / unit margin, rounded up.
func UnitsForTargetProfit(fixedCost, targetProfit, sellingPrice, variableCost decimal.Decimal) (decimal.Decimal, error) {
	unitMargin := safemath.Sub(sellingPrice, variableCost)
	if unitMargin.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("metrics: selling price %s must exceed variable cost %s", sellingPrice, variableCost)
	}
	need := safemath.Add(fixedCost, targetProfit)
	if need.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, nil
	}
	return safemath.Div(need, unitMargin, decimal.Zero).Ceil(), nil
}

// SafetyMarginPct reports how far actual sales sit above the break-even
// revenue, as a percentage of actual sales. Sales at or below break-even
// give zero or negative margins.
func SafetyMarginPct(actualSales, breakEvenRevenue decimal.Decimal) decimal.Decimal {
	return ratioPct(safemath.Sub(actualSales, breakEvenRevenue), actualSales)
}

package calculators

import (
	"github.com/shopspring/decimal"

	"github.com/fincalcs/engine/internal/metrics"
	"github.com/fincalcs/engine/internal/validate"
)

var breakEvenSchema = validate.Schema{
	Calculator: "breakeven",
	Mode:       validate.Strict,
	Fields: []validate.FieldRule{
		{Name: "fixedCost", Required: true, Min: validate.Bound("0"), Max: validate.Bound("1000000000000")},
		{Name: "sellingPrice", Required: true, Min: validate.Bound("0.01"), Max: validate.Bound("1000000000")},
		{Name: "variableCost", Required: true, Min: validate.Bound("0"), Max: validate.Bound("1000000000")},
		{Name: "expectedMonthlySales", Min: validate.Bound("0"), Max: validate.Bound("1000000000000")},
		{Name: "targetProfit", Min: validate.Bound("0"), Max: validate.Bound("1000000000000")},
	},
	Cross: []validate.CrossRule{
		{
			Field:   "sellingPrice",
			Message: "must be greater than the variable cost per unit",
			Check: func(v validate.Values) bool {
				return v.Get("sellingPrice").GreaterThan(v.Get("variableCost"))
			},
		},
	},
}

// BreakEvenCalcResult is the break-even calculator's output record.
type BreakEvenCalcResult struct {
	Units                 decimal.Decimal
	Revenue               decimal.Decimal
	UnitMargin            decimal.Decimal
	ContributionMarginPct decimal.Decimal
	// SafetyMarginPct is zero unless expectedMonthlySales was given.
	SafetyMarginPct decimal.Decimal
	// UnitsForTargetProfit is zero unless targetProfit was given.
	UnitsForTargetProfit decimal.Decimal
}

// BreakEven finds the volume at which a product covers its costs. Fields:
// fixedCost, sellingPrice, variableCost (per unit), expectedMonthlySales
// (optional revenue, enables the safety margin), targetProfit (optional).
func (e *Engine) BreakEven(raw Raw) (*BreakEvenCalcResult, error) {
	values, err := breakEvenSchema.Apply(raw)
	if err != nil {
		return nil, err
	}

	be, err := metrics.BreakEven(values.Get("fixedCost"), values.Get("sellingPrice"), values.Get("variableCost"))
	if err != nil {
		return nil, err
	}

	result := &BreakEvenCalcResult{
		Units:                 be.Units,
		Revenue:               money(be.Revenue),
		UnitMargin:            money(be.UnitMargin),
		ContributionMarginPct: be.ContributionMarginPct,
	}

	if sales := values.Get("expectedMonthlySales"); sales.GreaterThan(decimal.Zero) {
		result.SafetyMarginPct = metrics.SafetyMarginPct(sales, be.Revenue)
	}
	if target := values.Get("targetProfit"); target.GreaterThan(decimal.Zero) {
		units, err := metrics.UnitsForTargetProfit(values.Get("fixedCost"), target, values.Get("sellingPrice"), values.Get("variableCost"))
		if err != nil {
			return nil, err
		}
		result.UnitsForTargetProfit = units
	}

	return result, nil
}

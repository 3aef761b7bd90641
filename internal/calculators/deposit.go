package calculators

import (
	"github.com/shopspring/decimal"

	"github.com/fincalcs/engine/internal/projection"
	"github.com/fincalcs/engine/internal/validate"
)

// Deposit calculators are lenient: they always show a maturity figure,
// substituting documented defaults for anything unusable.
var fdSchema = validate.Schema{
	Calculator: "fd",
	Mode:       validate.Lenient,
	Fields: []validate.FieldRule{
		{Name: "amount", Min: validate.Bound("1"), Max: validate.Bound("1000000000000"), Default: decimal.NewFromInt(10000)},
		{Name: "annualRate", Min: validate.Bound("0"), Max: validate.Bound("100"), Default: decimal.NewFromFloat(7)},
		{Name: "years", Min: validate.Bound("1"), Max: validate.Bound("50"), Default: decimal.NewFromInt(5)},
	},
}

var rdSchema = validate.Schema{
	Calculator: "rd",
	Mode:       validate.Lenient,
	Fields: []validate.FieldRule{
		{Name: "monthlyDeposit", Min: validate.Bound("1"), Max: validate.Bound("1000000000"), Default: decimal.NewFromInt(1000)},
		{Name: "annualRate", Min: validate.Bound("0"), Max: validate.Bound("100"), Default: decimal.NewFromFloat(7)},
		{Name: "months", Min: validate.Bound("1"), Max: validate.Bound("600"), Default: decimal.NewFromInt(60)},
	},
}

// DepositResult is shared by the fixed and recurring deposit calculators.
type DepositResult struct {
	Maturity         decimal.Decimal
	TotalContributed decimal.Decimal
	TotalGrowth      decimal.Decimal
}

// FixedDeposit projects a lump-sum deposit. Fields: amount, annualRate
// (percent), years, compounding ("yearly"|"halfyearly"|"quarterly"|
// "monthly", default quarterly — the usual bank convention).
func (e *Engine) FixedDeposit(raw Raw) (*DepositResult, error) {
	values, err := fdSchema.Apply(raw)
	if err != nil {
		return nil, err
	}

	compounding := projection.Compounding(stringField(raw, "compounding", string(projection.Quarterly)))
	r := projection.LumpSum(values.Get("amount"), values.Get("annualRate"), values.Get("years"), compounding)

	return &DepositResult{
		Maturity:         money(r.Maturity),
		TotalContributed: money(r.TotalContributed),
		TotalGrowth:      money(r.TotalGrowth),
	}, nil
}

// RecurringDeposit projects a fixed monthly deposit, credited at the start
// of each month. Fields: monthlyDeposit, annualRate (percent), months.
func (e *Engine) RecurringDeposit(raw Raw) (*DepositResult, error) {
	values, err := rdSchema.Apply(raw)
	if err != nil {
		return nil, err
	}

	r := projection.FutureValue(values.Get("monthlyDeposit"), values.Get("annualRate"), intOf(values.Get("months")), 12, true)

	return &DepositResult{
		Maturity:         money(r.Maturity),
		TotalContributed: money(r.TotalContributed),
		TotalGrowth:      money(r.TotalGrowth),
	}, nil
}

package calculators

import (
	"github.com/shopspring/decimal"

	"github.com/fincalcs/engine/internal/projection"
	"github.com/fincalcs/engine/internal/validate"
)

var swpSchema = validate.Schema{
	Calculator: "swp",
	Mode:       validate.Lenient,
	Fields: []validate.FieldRule{
		{Name: "corpus", Min: validate.Bound("1"), Max: validate.Bound("1000000000000"), Default: decimal.NewFromInt(1000000)},
		{Name: "annualRate", Min: validate.Bound("0"), Max: validate.Bound("100"), Default: decimal.NewFromInt(7)},
		{Name: "monthlyWithdrawal", Min: validate.Bound("1"), Max: validate.Bound("1000000000"), Default: decimal.NewFromInt(8000)},
		{Name: "annualStepUpPercent", Min: validate.Bound("0"), Max: validate.Bound("100")},
	},
}

// SWPResult is the systematic-withdrawal output record. Sustainable tells
// the caller the horizon cap fired with money left, as opposed to the
// corpus running dry at MonthsLasted.
type SWPResult struct {
	MonthsLasted   decimal.Decimal
	TotalWithdrawn decimal.Decimal
	TotalGrowth    decimal.Decimal
	EndingBalance  decimal.Decimal
	Sustainable    bool
	Schedule       []projection.DepletionEntry
}

// SWP simulates drawing a fixed (optionally inflation-stepped) amount from
// a corpus every month. Fields: corpus, annualRate (percent),
// monthlyWithdrawal, annualStepUpPercent (optional).
func (e *Engine) SWP(raw Raw) (*SWPResult, error) {
	values, err := swpSchema.Apply(raw)
	if err != nil {
		return nil, err
	}

	r, err := projection.Deplete(projection.DepletionInput{
		Corpus:              values.Get("corpus"),
		AnnualRatePercent:   values.Get("annualRate"),
		Withdrawal:          values.Get("monthlyWithdrawal"),
		AnnualStepUpPercent: values.Get("annualStepUpPercent"),
	})
	if err != nil {
		return nil, err
	}

	return &SWPResult{
		MonthsLasted:   decimal.NewFromInt(int64(r.Periods)),
		TotalWithdrawn: money(r.TotalWithdrawn),
		TotalGrowth:    money(r.TotalGrowth),
		EndingBalance:  money(r.EndingBalance),
		Sustainable:    r.Terminal == projection.Capped,
		Schedule:       r.Schedule,
	}, nil
}

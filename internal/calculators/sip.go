package calculators

import (
	"github.com/shopspring/decimal"

	"github.com/fincalcs/engine/internal/coerce"
	"github.com/fincalcs/engine/internal/projection"
	"github.com/fincalcs/engine/internal/validate"
)

var sipSchema = validate.Schema{
	Calculator: "sip",
	Mode:       validate.Lenient,
	Fields: []validate.FieldRule{
		{Name: "monthlyInvestment", Min: validate.Bound("1"), Max: validate.Bound("1000000000"), Default: decimal.NewFromInt(1000)},
		{Name: "annualRate", Min: validate.Bound("0"), Max: validate.Bound("100"), Default: decimal.NewFromInt(12)},
		{Name: "years", Min: validate.Bound("1"), Max: validate.Bound("50"), Default: decimal.NewFromInt(10)},
		{Name: "stepUpPercent", Min: validate.Bound("0"), Max: validate.Bound("100")},
	},
}

// SIPResult is the systematic-investment output record.
type SIPResult struct {
	Maturity      decimal.Decimal
	TotalInvested decimal.Decimal
	TotalGrowth   decimal.Decimal
	// RequiredMonthly back-solves the contribution that would reach
	// targetAmount over the same horizon; zero when no target was given.
	RequiredMonthly decimal.Decimal
}

// SIP projects a monthly investment plan. Fields: monthlyInvestment,
// annualRate (percent), years, stepUpPercent (optional annual raise),
// targetAmount (optional; adds the required-contribution back-solve).
func (e *Engine) SIP(raw Raw) (*SIPResult, error) {
	values, err := sipSchema.Apply(raw)
	if err != nil {
		return nil, err
	}

	years := intOf(values.Get("years"))
	rate := values.Get("annualRate")
	stepUp := values.Get("stepUpPercent")

	var r projection.Result
	if stepUp.GreaterThan(decimal.Zero) {
		r = projection.FutureValueStepUp(values.Get("monthlyInvestment"), rate, years, 12, stepUp)
	} else {
		r = projection.FutureValue(values.Get("monthlyInvestment"), rate, years*12, 12, true)
	}

	result := &SIPResult{
		Maturity:      money(r.Maturity),
		TotalInvested: money(r.TotalContributed),
		TotalGrowth:   money(r.TotalGrowth),
	}

	if target, ok := raw["targetAmount"]; ok {
		result.RequiredMonthly = money(projection.RequiredContribution(
			coerce.Number(target), rate, years*12, 12, true,
		))
	}

	return result, nil
}

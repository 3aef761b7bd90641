package calculators

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fincalcs/engine/internal/amortize"
	"github.com/fincalcs/engine/internal/coerce"
	"github.com/fincalcs/engine/internal/validate"
)

// debtSchema validates the single-debt form of the calculator. Multi-debt
// input arrives as a "debts" list and is checked per entry below.
var debtSchema = validate.Schema{
	Calculator: "debt-payoff",
	Mode:       validate.Strict,
	Fields: []validate.FieldRule{
		{Name: "totalDebt", Required: true, Min: validate.Bound("1"), Max: validate.Bound("1000000000000")},
		{Name: "annualRate", Required: true, Min: validate.Bound("0"), Max: validate.Bound("100")},
		{Name: "minimumPayment", Required: true, Min: validate.Bound("1"), Max: validate.Bound("1000000000")},
		{Name: "extraPayment", Min: validate.Bound("0"), Max: validate.Bound("1000000000")},
	},
}

// DebtPayoffResult compares the two standard repayment strategies over the
// same budget. NonAmortizing means the budget cannot cover even the first
// month's interest accrual; Capped means the 600-month horizon fired.
type DebtPayoffResult struct {
	Avalanche *amortize.PayoffResult
	Snowball  *amortize.PayoffResult
	// InterestSaved compares the avalanche plan against the same plan
	// without the extra payment.
	InterestSaved decimal.Decimal
	NonAmortizing bool
	Capped        bool
}

// DebtPayoff plans multi-debt repayment. Fields: either a "debts" list of
// {name, balance, annualRate, minPayment} records, or the single-debt
// shorthand totalDebt / annualRate / minimumPayment; plus extraPayment
// (optional). Both strategies are simulated so the caller can show the
// trade-off.
func (e *Engine) DebtPayoff(raw Raw) (*DebtPayoffResult, error) {
	debts, extra, err := e.payoffInput(raw)
	if err != nil {
		return nil, err
	}

	avalanche, err := e.planner.Payoff(amortize.PayoffInput{Debts: debts, ExtraPayment: extra, Strategy: amortize.Avalanche})
	if err != nil {
		return nil, err
	}
	snowball, err := e.planner.Payoff(amortize.PayoffInput{Debts: debts, ExtraPayment: extra, Strategy: amortize.Snowball})
	if err != nil {
		return nil, err
	}

	result := &DebtPayoffResult{
		Avalanche:     avalanche,
		Snowball:      snowball,
		NonAmortizing: avalanche.NonAmortizing,
		Capped:        avalanche.Capped,
	}

	if extra.GreaterThan(decimal.Zero) && !avalanche.NonAmortizing {
		baseline, err := e.planner.Payoff(amortize.PayoffInput{Debts: debts, Strategy: amortize.Avalanche})
		if err != nil {
			return nil, err
		}
		if !baseline.Capped {
			result.InterestSaved = money(baseline.TotalInterest.Sub(avalanche.TotalInterest))
		}
		e.logger.Debug("debt payoff extra-payment comparison",
			zap.String("op", "calculators.DebtPayoff"),
			zap.String("interest_saved", result.InterestSaved.String()),
		)
	}

	return result, nil
}

func (e *Engine) payoffInput(raw Raw) ([]amortize.Debt, decimal.Decimal, error) {
	if list, ok := raw["debts"].([]any); ok && len(list) > 0 {
		debts := make([]amortize.Debt, 0, len(list))
		for i, item := range list {
			record, ok := item.(map[string]any)
			if !ok {
				return nil, decimal.Zero, &validate.FieldError{Field: "debts", Message: "entries must be records"}
			}
			d := amortize.Debt{
				Name:              stringField(record, "name", ""),
				Balance:           coerce.Number(record["balance"]),
				AnnualRatePercent: coerce.Number(record["annualRate"]),
				MinPayment:        coerce.Number(record["minPayment"]),
			}
			if d.Balance.LessThanOrEqual(decimal.Zero) {
				return nil, decimal.Zero, &validate.FieldError{Field: "debts", Message: "balance must be positive"}
			}
			if d.MinPayment.LessThanOrEqual(decimal.Zero) {
				return nil, decimal.Zero, &validate.FieldError{Field: "debts", Message: "minimum payment must be positive"}
			}
			if d.Name == "" {
				d.Name = defaultDebtName(i)
			}
			debts = append(debts, d)
		}
		return debts, coerce.Number(raw["extraPayment"]), nil
	}

	values, err := debtSchema.Apply(raw)
	if err != nil {
		return nil, decimal.Zero, err
	}
	debts := []amortize.Debt{{
		Name:              "debt",
		Balance:           values.Get("totalDebt"),
		AnnualRatePercent: values.Get("annualRate"),
		MinPayment:        values.Get("minimumPayment"),
	}}
	return debts, values.Get("extraPayment"), nil
}

func defaultDebtName(i int) string {
	return "debt-" + string(rune('a'+i%26))
}

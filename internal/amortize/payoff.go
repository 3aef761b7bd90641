package amortize

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fincalcs/engine/internal/safemath"
)

// MaxPayoffMonths caps the payoff simulation horizon (~50 years).
const MaxPayoffMonths = 600

// Strategy selects the debt the monthly surplus is directed at.
type Strategy string

const (
	// Avalanche targets the highest annual rate first.
	Avalanche Strategy = "avalanche"
	// Snowball targets the smallest balance first.
	Snowball Strategy = "snowball"
)

// Debt is one liability in a payoff plan.
type Debt struct {
	Name              string
	Balance           decimal.Decimal
	AnnualRatePercent decimal.Decimal
	MinPayment        decimal.Decimal
}

// PayoffInput describes a multi-debt repayment simulation. The monthly
// budget is the sum of minimum payments plus ExtraPayment.
type PayoffInput struct {
	Debts        []Debt
	ExtraPayment decimal.Decimal
	Strategy     Strategy
	// MaxMonths defaults to MaxPayoffMonths and is clamped to it.
	MaxMonths int
}

// DebtPayoff records when a single debt was retired.
type DebtPayoff struct {
	Name  string
	Month int
}

// PayoffResult reports the simulation outcome. Capped and NonAmortizing
// are named conditions, not errors: the first means the horizon cap fired
// before all balances cleared, the second that the budget cannot even
// cover the first month's interest accrual.
type PayoffResult struct {
	Months        int
	TotalInterest decimal.Decimal
	TotalPaid     decimal.Decimal
	MonthlyBudget decimal.Decimal
	Capped        bool
	NonAmortizing bool
	Order         []DebtPayoff
}

// Payoff simulates month-by-month repayment: accrue interest on every
// balance, pay the minimums, then roll the remaining budget into the
// strategy's target debt, cascading to the next target as debts clear.
func (p *Planner) Payoff(in PayoffInput) (*PayoffResult, error) {
	if len(in.Debts) == 0 {
		return nil, fmt.Errorf("amortize: payoff requires at least one debt")
	}
	for i, d := range in.Debts {
		if d.Balance.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("amortize: debt %d (%s) balance must be positive", i, d.Name)
		}
	}
	strategy := in.Strategy
	if strategy == "" {
		strategy = Avalanche
	}

	maxMonths := in.MaxMonths
	if maxMonths <= 0 || maxMonths > MaxPayoffMonths {
		maxMonths = MaxPayoffMonths
	}

	budget := in.ExtraPayment
	if budget.IsNegative() {
		budget = decimal.Zero
	}
	for _, d := range in.Debts {
		budget = safemath.Add(budget, d.MinPayment)
	}

	result := &PayoffResult{MonthlyBudget: budget}

	balances := make([]decimal.Decimal, len(in.Debts))
	rates := make([]decimal.Decimal, len(in.Debts))
	firstAccrual := decimal.Zero
	for i, d := range in.Debts {
		balances[i] = d.Balance
		rates[i] = periodicRate(d.AnnualRatePercent, 12)
		firstAccrual = safemath.Add(firstAccrual, safemath.Mul(d.Balance, rates[i]))
	}

	if budget.LessThanOrEqual(firstAccrual) {
		p.logger.Debug("payoff budget below interest accrual",
			zap.String("op", "amortize.Payoff"),
			zap.String("budget", budget.String()),
			zap.String("first_accrual", firstAccrual.String()),
		)
		result.NonAmortizing = true
		result.Capped = true
		result.Months = maxMonths
		return result, nil
	}

	targetOrder := func() []int {
		order := make([]int, 0, len(in.Debts))
		for i := range in.Debts {
			if balances[i].GreaterThan(decimal.Zero) {
				order = append(order, i)
			}
		}
		sort.Slice(order, func(a, b int) bool {
			i, j := order[a], order[b]
			switch strategy {
			case Snowball:
				if !balances[i].Equal(balances[j]) {
					return balances[i].LessThan(balances[j])
				}
				return rates[i].GreaterThan(rates[j])
			default: // Avalanche
				if !rates[i].Equal(rates[j]) {
					return rates[i].GreaterThan(rates[j])
				}
				return balances[i].LessThan(balances[j])
			}
		})
		return order
	}

	for month := 1; month <= maxMonths; month++ {
		allClear := true
		for i := range balances {
			if balances[i].GreaterThan(decimal.Zero) {
				allClear = false
				break
			}
		}
		if allClear {
			result.Months = month - 1
			return result, nil
		}

		// Accrue.
		for i := range balances {
			if balances[i].LessThanOrEqual(decimal.Zero) {
				continue
			}
			interest := safemath.Mul(balances[i], rates[i]).Round(10)
			balances[i] = safemath.Add(balances[i], interest)
			result.TotalInterest = safemath.Add(result.TotalInterest, interest)
		}

		// Minimums.
		remaining := budget
		for i, d := range in.Debts {
			if balances[i].LessThanOrEqual(decimal.Zero) {
				continue
			}
			pay := d.MinPayment
			if pay.GreaterThan(remaining) {
				pay = remaining
			}
			if pay.GreaterThan(balances[i]) {
				pay = balances[i]
			}
			if pay.GreaterThan(decimal.Zero) {
				balances[i] = safemath.Sub(balances[i], pay)
				remaining = safemath.Sub(remaining, pay)
				result.TotalPaid = safemath.Add(result.TotalPaid, pay)
			}
		}

		// Surplus into targets, cascading as each clears.
		for remaining.GreaterThan(decimal.Zero) {
			order := targetOrder()
			if len(order) == 0 {
				break
			}
			t := order[0]
			pay := remaining
			if pay.GreaterThan(balances[t]) {
				pay = balances[t]
			}
			balances[t] = safemath.Sub(balances[t], pay)
			remaining = safemath.Sub(remaining, pay)
			result.TotalPaid = safemath.Add(result.TotalPaid, pay)
		}

		for i, d := range in.Debts {
			if balances[i].LessThanOrEqual(decimal.Zero) && !inOrder(result.Order, d.Name) {
				result.Order = append(result.Order, DebtPayoff{Name: d.Name, Month: month})
				p.logger.Debug("debt retired",
					zap.String("op", "amortize.Payoff"),
					zap.String("debt", d.Name),
					zap.Int("month", month),
				)
			}
		}
	}

	// Horizon cap fired with balances outstanding.
	for i := range balances {
		if balances[i].GreaterThan(decimal.Zero) {
			result.Capped = true
			break
		}
	}
	result.Months = maxMonths
	return result, nil
}

// Payoff is the package-level convenience for a silent planner.
func Payoff(in PayoffInput) (*PayoffResult, error) {
	return NewPlanner(nil).Payoff(in)
}

func inOrder(order []DebtPayoff, name string) bool {
	for _, o := range order {
		if o.Name == name {
			return true
		}
	}
	return false
}

// Package calculators exposes the per-calculator operations: each takes a
// single raw record of named fields as collected by a page, runs it
// through its declared validation schema, invokes the engines, and returns
// a flat result record. Top-line currency figures are rounded to two
// places for reporting; schedules keep full precision.
package calculators

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fincalcs/engine/internal/amortize"
	"github.com/fincalcs/engine/internal/safemath"
)

// Raw is the untyped field record a calculator page collects. Values may
// be strings with currency junk, numbers, booleans, nested lists or
// records; the coercion layer sorts it out.
type Raw map[string]any

// Engine hosts the calculator operations. It holds no state between
// calls; the logger is the only dependency.
type Engine struct {
	logger  *zap.Logger
	planner *amortize.Planner
}

// New returns an Engine. A nil logger is replaced with a no-op one.
func New(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		logger:  logger,
		planner: amortize.NewPlanner(logger),
	}
}

// Compute dispatches by calculator name, for callers that route requests
// generically (the CLI does). The result is the calculator's own record.
func (e *Engine) Compute(name string, raw Raw) (any, error) {
	switch name {
	case "emi":
		return e.EMI(raw)
	case "mortgage":
		return e.Mortgage(raw)
	case "fd":
		return e.FixedDeposit(raw)
	case "rd":
		return e.RecurringDeposit(raw)
	case "sip":
		return e.SIP(raw)
	case "swp":
		return e.SWP(raw)
	case "debt-payoff":
		return e.DebtPayoff(raw)
	case "breakeven":
		return e.BreakEven(raw)
	case "goal":
		return e.Goal(raw)
	case "salary":
		return e.Salary(raw)
	case "business-loan":
		return e.BusinessLoan(raw)
	default:
		return nil, fmt.Errorf("calculators: unknown calculator %q", name)
	}
}

// Names lists the available calculators, sorted.
func Names() []string {
	names := []string{
		"emi", "mortgage", "fd", "rd", "sip", "swp",
		"debt-payoff", "breakeven", "goal", "salary", "business-loan",
	}
	sort.Strings(names)
	return names
}

// stringField reads an enum-style field from the raw record.
func stringField(raw Raw, key, fallback string) string {
	if v, ok := raw[key]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return fallback
}

// intOf truncates a validated decimal to int, for tenure-style fields.
func intOf(v decimal.Decimal) int {
	return int(v.IntPart())
}

// money rounds a final reported currency figure.
func money(v decimal.Decimal) decimal.Decimal {
	return safemath.RoundCurrency(v)
}

// Package amortize generates payment schedules for fixed-rate installment
// loans and multi-debt payoff plans. All arithmetic goes through the
// safemath primitives; inputs are assumed to be validated upstream and
// rate arguments are annual percentages (8.5 means 8.5% per year).
package amortize

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fincalcs/engine/internal/safemath"
)

// MaxScheduleEntries is the hard cap on generated schedule length. It is a
// termination guarantee, not a policy bound; callers validate tenure.
const MaxScheduleEntries = 7200

// centTolerance is the settlement tolerance for the final nominal period.
var centTolerance = decimal.NewFromFloat(0.01)

// ExtraSchedule states when an extra principal payment is applied.
type ExtraSchedule string

const (
	ExtraNone    ExtraSchedule = "none"
	ExtraMonthly ExtraSchedule = "monthly"
	ExtraYearly  ExtraSchedule = "yearly"
)

// PlanInput describes one fixed-rate loan.
type PlanInput struct {
	Principal         decimal.Decimal
	AnnualRatePercent decimal.Decimal
	TotalPeriods      int
	// PeriodsPerYear defaults to 12.
	PeriodsPerYear int
	// ExtraPayment is additional principal applied per ExtraEvery.
	ExtraPayment decimal.Decimal
	ExtraEvery   ExtraSchedule
	// PaymentOverride, when positive, replaces the computed annuity payment.
	// A schedule built from an override may not amortize.
	PaymentOverride decimal.Decimal
}

// Entry is one period of an amortization schedule. The invariant
// PrincipalComponent + InterestComponent == Payment holds exactly by
// construction.
type Entry struct {
	Period             int
	Payment            decimal.Decimal
	PrincipalComponent decimal.Decimal
	InterestComponent  decimal.Decimal
	RemainingBalance   decimal.Decimal
}

// PlanResult is the full outcome of an amortization run. NonAmortizing is
// a reported condition, not an error: the payment cannot cover the accrued
// interest, so no schedule is produced.
type PlanResult struct {
	PeriodicPayment decimal.Decimal
	TotalPayment    decimal.Decimal
	TotalInterest   decimal.Decimal
	NonAmortizing   bool
	// PaidOffEarly reports that extra payments retired the loan before the
	// nominal term; len(Schedule) is then the true payoff horizon.
	PaidOffEarly bool
	Schedule     []Entry
}

// Planner generates schedules, optionally tracing decisions to a logger.
type Planner struct {
	logger *zap.Logger
}

// NewPlanner returns a planner. A nil logger is replaced with a no-op one.
func NewPlanner(logger *zap.Logger) *Planner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Planner{logger: logger}
}

// Plan is the package-level convenience for a silent planner.
func Plan(in PlanInput) (*PlanResult, error) {
	return NewPlanner(nil).Plan(in)
}

// PeriodicPayment computes the fixed payment for a loan using the standard
// annuity formula, or straight-line division when the periodic rate is
// effectively zero.
func PeriodicPayment(principal, annualRatePercent decimal.Decimal, totalPeriods, periodsPerYear int) decimal.Decimal {
	if totalPeriods <= 0 {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(totalPeriods))
	r := periodicRate(annualRatePercent, periodsPerYear)
	if safemath.IsEffectivelyZero(r) {
		return safemath.Div(principal, n, decimal.Zero)
	}

	// payment = P * r * (1+r)^n / ((1+r)^n - 1)
	one := decimal.NewFromInt(1)
	growth := safemath.Pow(safemath.Add(one, r), n, decimal.Zero)
	numerator := safemath.Mul(safemath.Mul(principal, r), growth)
	denominator := safemath.Sub(growth, one)
	return safemath.Div(numerator, denominator, decimal.Zero)
}

// Plan builds the period-by-period schedule. Validation of principal and
// tenure belongs to the calculator schemas; a nonpositive value reaching
// this point is a programmer error.
func (p *Planner) Plan(in PlanInput) (*PlanResult, error) {
	if in.Principal.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("amortize: principal must be positive, got %s", in.Principal)
	}
	if in.TotalPeriods <= 0 {
		return nil, fmt.Errorf("amortize: total periods must be positive, got %d", in.TotalPeriods)
	}

	perYear := in.PeriodsPerYear
	if perYear <= 0 {
		perYear = 12
	}
	r := periodicRate(in.AnnualRatePercent, perYear)

	payment := in.PaymentOverride
	if payment.LessThanOrEqual(decimal.Zero) {
		payment = PeriodicPayment(in.Principal, in.AnnualRatePercent, in.TotalPeriods, perYear)
	}

	extra := in.ExtraPayment
	if extra.IsNegative() {
		extra = decimal.Zero
	}

	result := &PlanResult{PeriodicPayment: payment}

	// A payment that cannot beat first-period accrual even in a period
	// receiving the scheduled extra never produces a positive principal
	// component, since interest only grows from here; report the condition
	// instead of looping to the cap. A yearly extra above this bar can
	// still rescue an otherwise underwater payment, so the loop decides.
	scheduledExtra := decimal.Zero
	if in.ExtraEvery == ExtraMonthly || in.ExtraEvery == ExtraYearly {
		scheduledExtra = extra
	}
	firstInterest := safemath.Mul(in.Principal, r)
	if !safemath.IsEffectivelyZero(r) && payment.Add(scheduledExtra).LessThanOrEqual(firstInterest) {
		p.logger.Debug("loan does not amortize",
			zap.String("op", "amortize.Plan"),
			zap.String("payment", payment.String()),
			zap.String("first_interest", firstInterest.String()),
		)
		result.NonAmortizing = true
		return result, nil
	}

	balance := in.Principal
	totalInterest := decimal.Zero
	maxPeriods := in.TotalPeriods
	if maxPeriods > MaxScheduleEntries {
		maxPeriods = MaxScheduleEntries
	}

	for period := 1; period <= maxPeriods; period++ {
		// Accrual is kept at ten places so the running scale stays bounded
		// over long tenures; 1e-10 is below every documented tolerance.
		interest := safemath.Mul(balance, r).Round(10)
		principalComponent := safemath.Sub(payment, interest)
		principalComponent = safemath.Add(principalComponent, extraFor(period, perYear, extra, in.ExtraEvery))

		// On the nominal final period the running balance differs from the
		// last principal component only by accumulated machine error, so
		// settle the loan exactly rather than leave a phantom residual.
		if period == in.TotalPeriods && principalComponent.Sub(balance).Abs().LessThan(centTolerance) {
			principalComponent = balance
		}

		// Never pay more principal than is owed.
		if principalComponent.GreaterThan(balance) {
			principalComponent = balance
		}

		balance = safemath.Sub(balance, principalComponent)
		totalInterest = safemath.Add(totalInterest, interest)

		result.Schedule = append(result.Schedule, Entry{
			Period:             period,
			Payment:            safemath.Add(principalComponent, interest),
			PrincipalComponent: principalComponent,
			InterestComponent:  interest,
			RemainingBalance:   balance,
		})

		if balance.LessThanOrEqual(decimal.Zero) || safemath.IsEffectivelyZero(balance) {
			result.Schedule[len(result.Schedule)-1].RemainingBalance = decimal.Zero
			if period < in.TotalPeriods {
				result.PaidOffEarly = true
				p.logger.Debug("loan paid off before nominal term",
					zap.String("op", "amortize.Plan"),
					zap.Int("period", period),
					zap.Int("nominal_term", in.TotalPeriods),
				)
			}
			break
		}
	}

	result.TotalInterest = totalInterest
	result.TotalPayment = safemath.Add(in.Principal, totalInterest)
	return result, nil
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

func extraFor(period, perYear int, extra decimal.Decimal, schedule ExtraSchedule) decimal.Decimal {
	if extra.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	switch schedule {
	case ExtraMonthly:
		return extra
	case ExtraYearly:
		if period%perYear == 0 {
			return extra
		}
	}
	return decimal.Zero
}

// Package safemath provides the guarded arithmetic primitives the
// calculation engines are built from. Every operation clamps its result
// into the safe range and substitutes a caller-supplied fallback where the
// underlying operation would produce an undefined or non-finite value, so
// a single malformed field can never propagate into a displayed result.
package safemath

import (
	"math"

	"github.com/shopspring/decimal"
)

// MaxExponent bounds Pow so a pathological term count cannot turn a
// closed-form annuity factor into a runaway computation. 3600 monthly
// periods is 300 years, far beyond any supported tenure.
const MaxExponent = 3600

var (
	// MaxSafe is the symmetric magnitude bound for every engine result.
	MaxSafe = decimal.New(1, 15)
	// MinSafe is the negative bound.
	MinSafe = decimal.New(-1, 15)
	// Epsilon is the tolerance below which a value is treated as zero,
	// both as a divisor guard and as a zero-rate test.
	Epsilon = decimal.New(1, -10)

	hundred = decimal.NewFromInt(100)
)

// Add returns a + b clamped into the safe range.
func Add(a, b decimal.Decimal) decimal.Decimal {
	return Clamp(a.Add(b), MinSafe, MaxSafe)
}

// Sub returns a - b clamped into the safe range.
func Sub(a, b decimal.Decimal) decimal.Decimal {
	return Clamp(a.Sub(b), MinSafe, MaxSafe)
}

// Mul returns a * b clamped into the safe range.
func Mul(a, b decimal.Decimal) decimal.Decimal {
	return Clamp(a.Mul(b), MinSafe, MaxSafe)
}

// Div returns a / b, or fallback when the denominator is effectively zero.
// It never produces an infinity.
func Div(a, b decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if IsEffectivelyZero(b) {
		return fallback
	}
	return Clamp(a.DivRound(b, 16), MinSafe, MaxSafe)
}

// Pow returns base**exp. Zero bases follow the usual conventions (0^0 = 1,
// 0^positive = 0, 0^negative saturates to MaxSafe); exponents beyond
// MaxExponent are capped. Fractional exponents are computed through
// float64 (decimal exponentiation is integer-only at this version); an
// indeterminate outcome yields fallback and overflow saturates at the
// safe bound.
func Pow(base, exp decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if exp.IsZero() {
		return decimal.NewFromInt(1)
	}
	if IsEffectivelyZero(base) {
		if exp.IsNegative() {
			return MaxSafe
		}
		return decimal.Zero
	}

	capped := decimal.NewFromInt(MaxExponent)
	if exp.GreaterThan(capped) {
		exp = capped
	}
	if exp.LessThan(capped.Neg()) {
		exp = capped.Neg()
	}

	bf, _ := base.Float64()
	ef, _ := exp.Float64()
	r := math.Pow(bf, ef)
	switch {
	case math.IsNaN(r):
		return fallback
	case math.IsInf(r, 1):
		return MaxSafe
	case math.IsInf(r, -1):
		return MinSafe
	}
	return Clamp(decimal.NewFromFloat(r), MinSafe, MaxSafe)
}

// Percent converts an annual-percentage style input (8.5 meaning 8.5%)
// into a decimal fraction.
func Percent(p decimal.Decimal) decimal.Decimal {
	return Div(p, hundred, decimal.Zero)
}

// Clamp pins v into [lo, hi].
func Clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.LessThan(lo) {
		return lo
	}
	if v.GreaterThan(hi) {
		return hi
	}
	return v
}

// ClampScore pins a composite score into its documented [0, 100] interval.
func ClampScore(v decimal.Decimal) decimal.Decimal {
	return Clamp(v, decimal.Zero, hundred)
}

// IsEffectivelyZero reports whether v is within Epsilon of zero, so
// floating noise in a rate field degrades to the zero-rate formula instead
// of a division blow-up.
func IsEffectivelyZero(v decimal.Decimal) bool {
	return v.Abs().LessThan(Epsilon)
}

// RoundCurrency rounds a final reported figure to two places. Intermediate
// values are never passed through here.
func RoundCurrency(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}

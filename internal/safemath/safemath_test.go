package safemath

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAddSubMulClamp(t *testing.T) {
	if got := Add(d("2"), d("3")); !got.Equal(d("5")) {
		t.Errorf("Add = %s", got)
	}
	if got := Sub(d("2"), d("5")); !got.Equal(d("-3")) {
		t.Errorf("Sub = %s", got)
	}
	if got := Mul(d("4"), d("2.5")); !got.Equal(d("10")) {
		t.Errorf("Mul = %s", got)
	}

	huge := MaxSafe.Mul(decimal.NewFromInt(10))
	if got := Add(huge, huge); !got.Equal(MaxSafe) {
		t.Errorf("Add overflow not clamped: %s", got)
	}
	if got := Mul(huge, huge.Neg()); !got.Equal(MinSafe) {
		t.Errorf("Mul underflow not clamped: %s", got)
	}
}

func TestDiv(t *testing.T) {
	if got := Div(d("10"), d("4"), decimal.Zero); !got.Equal(d("2.5")) {
		t.Errorf("Div = %s", got)
	}
	fallback := d("-1")
	if got := Div(d("10"), decimal.Zero, fallback); !got.Equal(fallback) {
		t.Errorf("Div by zero = %s, want fallback", got)
	}
	// Below Epsilon counts as zero.
	if got := Div(d("10"), d("0.00000000001"), fallback); !got.Equal(fallback) {
		t.Errorf("Div by near-zero = %s, want fallback", got)
	}
}

func TestPow(t *testing.T) {
	one := decimal.NewFromInt(1)

	if got := Pow(d("2"), d("10"), decimal.Zero); !got.Equal(d("1024")) {
		t.Errorf("2^10 = %s", got)
	}
	if got := Pow(d("7"), decimal.Zero, decimal.Zero); !got.Equal(one) {
		t.Errorf("x^0 = %s, want 1", got)
	}
	if got := Pow(decimal.Zero, decimal.Zero, decimal.Zero); !got.Equal(one) {
		t.Errorf("0^0 = %s, want 1", got)
	}
	if got := Pow(decimal.Zero, d("3"), one); !got.Equal(decimal.Zero) {
		t.Errorf("0^positive = %s, want 0", got)
	}
	if got := Pow(decimal.Zero, d("-2"), decimal.Zero); !got.Equal(MaxSafe) {
		t.Errorf("0^negative = %s, want MaxSafe", got)
	}
	// Runaway exponents are capped, then the clamp catches the magnitude.
	if got := Pow(d("10"), d("999999"), decimal.Zero); !got.Equal(MaxSafe) {
		t.Errorf("capped pow = %s, want MaxSafe", got)
	}
	// Fractional exponent goes through float64.
	got := Pow(d("9"), d("0.5"), decimal.Zero)
	if got.Sub(d("3")).Abs().GreaterThan(d("0.000001")) {
		t.Errorf("9^0.5 = %s, want 3", got)
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(d("8.5")); !got.Equal(d("0.085")) {
		t.Errorf("Percent(8.5) = %s", got)
	}
}

func TestClampScore(t *testing.T) {
	if got := ClampScore(d("150")); !got.Equal(d("100")) {
		t.Errorf("score above 100 not clamped: %s", got)
	}
	if got := ClampScore(d("-20")); !got.Equal(decimal.Zero) {
		t.Errorf("score below 0 not clamped: %s", got)
	}
	if got := ClampScore(d("67.5")); !got.Equal(d("67.5")) {
		t.Errorf("in-range score altered: %s", got)
	}
}

func TestIsEffectivelyZero(t *testing.T) {
	if !IsEffectivelyZero(d("0.00000000001")) {
		t.Error("1e-11 should be effectively zero")
	}
	if IsEffectivelyZero(d("0.001")) {
		t.Error("1e-3 should not be effectively zero")
	}
}

func TestRoundCurrency(t *testing.T) {
	if got := RoundCurrency(d("21695.678")); !got.Equal(d("21695.68")) {
		t.Errorf("RoundCurrency = %s", got)
	}
}

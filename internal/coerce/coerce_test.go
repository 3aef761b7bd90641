package coerce

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNumber_Scalars(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"nil", nil, "0"},
		{"false", false, "0"},
		{"true", true, "1"},
		{"int", 42, "42"},
		{"negative int", -7, "-7"},
		{"int64", int64(1200000), "1200000"},
		{"uint", uint(9), "9"},
		{"float", 12.5, "12.5"},
		{"negative float", -0.25, "-0.25"},
		{"nan", math.NaN(), "0"},
		{"positive infinity", math.Inf(1), "0"},
		{"negative infinity", math.Inf(-1), "0"},
		{"floating noise", 1e-12, "0"},
		{"just above noise floor", 1e-9, "0.000000001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Number(tt.input)
			want := decimal.RequireFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("Number(%v) = %s, want %s", tt.input, got, want)
			}
		})
	}
}

func TestNumber_Strings(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "0"},
		{"   ", "0"},
		{"-", "0"},
		{"NaN", "0"},
		{"null", "0"},
		{"UNDEFINED", "0"},
		{"none", "0"},
		{"nil", "0"},
		{"empty", "0"},
		{"1234", "1234"},
		{"1,234.56", "1234.56"},
		{"$1,234.56", "1234.56"},
		{"₹ 2,50,000", "250000"},
		{"€99.99", "99.99"},
		{" 42 ", "42"},
		{"-500", "-500"},
		{"$ -12.50", "-12.5"},
		{"12.34.56", "12.3456"},
		{"8.5%", "8.5"},
		{"abc", "0"},
		{"12abc3", "123"},
		{"1-2", "0"},
		{"500-", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Number(tt.input)
			want := decimal.RequireFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("Number(%q) = %s, want %s", tt.input, got, want)
			}
		})
	}
}

func TestNumber_Containers(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"empty slice", []any{}, "0"},
		{"first element wins", []any{"$100", 200}, "100"},
		{"nested slice", []any{[]any{5}}, "5"},
		{"string slice", []string{"1,000"}, "1000"},
		{"float slice", []float64{2.5, 9}, "2.5"},
		{"map with value key", map[string]any{"value": "7,500"}, "7500"},
		{"map with amount key", map[string]any{"amount": 250.75}, "250.75"},
		{"map prefers known keys", map[string]any{"noise": 1, "total": 9}, "9"},
		{"map without known keys", map[string]any{"principal": 1500}, "1500"},
		{"empty map", map[string]any{}, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Number(tt.input)
			want := decimal.RequireFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("Number(%v) = %s, want %s", tt.input, got, want)
			}
		})
	}
}

func TestNumber_Clamping(t *testing.T) {
	max := decimal.New(1, 15)

	if got := Number(1e300); !got.Equal(max) {
		t.Errorf("huge float not clamped: got %s", got)
	}
	if got := Number(-1e300); !got.Equal(max.Neg()) {
		t.Errorf("huge negative float not clamped: got %s", got)
	}
	if got := Number("99999999999999999999999"); !got.Equal(max) {
		t.Errorf("huge string not clamped: got %s", got)
	}
	if got := Number(uint64(math.MaxUint64)); !got.Equal(max) {
		t.Errorf("uint64 overflow not clamped: got %s", got)
	}
}

func TestNumber_Deterministic(t *testing.T) {
	inputs := []any{nil, true, "₹1,23,456.78", []any{"x", 3}, map[string]any{"amount": "5"}, math.NaN(), 1e300}
	for _, in := range inputs {
		first := Number(in)
		second := Number(in)
		if !first.Equal(second) {
			t.Errorf("Number(%v) not deterministic: %s then %s", in, first, second)
		}
	}
}

func TestFloat(t *testing.T) {
	if got := Float("$1,234.56"); got != 1234.56 {
		t.Errorf("Float = %v, want 1234.56", got)
	}
	if got := Float(nil); got != 0 {
		t.Errorf("Float(nil) = %v, want 0", got)
	}
	if math.IsNaN(Float(math.NaN())) {
		t.Error("Float must never return NaN")
	}
}

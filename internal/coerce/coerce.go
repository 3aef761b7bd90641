// Package coerce turns untrusted, arbitrarily shaped input values into
// finite decimals. It is the single boundary between raw calculator form
// fields and the arithmetic core: every downstream function may assume its
// numeric arguments are finite and within the safe range.
package coerce

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	maxSafe    = decimal.New(1, 15)
	minSafe    = decimal.New(-1, 15)
	noiseFloor = decimal.New(1, -10)

	numberPattern = regexp.MustCompile(`-?[0-9]+(?:\.[0-9]+)?`)

	// Tokens treated as "no value entered" rather than garbage.
	emptyTokens = map[string]struct{}{
		"":          {},
		"-":         {},
		"nan":       {},
		"null":      {},
		"undefined": {},
		"none":      {},
		"nil":       {},
		"empty":     {},
	}

	// Property names commonly used to carry the actual numeric value when a
	// caller hands us a whole record instead of a field.
	valueKeys = []string{"value", "amount", "number", "val", "price", "cost", "total", "sum"}
)

// Number converts an arbitrary value into a finite decimal. It never fails:
// anything it cannot interpret becomes zero. Results are clamped to
// [-1e15, 1e15] and magnitudes below 1e-10 collapse to zero so floating
// noise never leaks into a schedule.
func Number(v any) decimal.Decimal {
	switch x := v.(type) {
	case nil:
		return decimal.Zero
	case bool:
		if x {
			return decimal.NewFromInt(1)
		}
		return decimal.Zero
	case decimal.Decimal:
		return clamp(denoise(x))
	case int:
		return clamp(decimal.NewFromInt(int64(x)))
	case int8:
		return clamp(decimal.NewFromInt(int64(x)))
	case int16:
		return clamp(decimal.NewFromInt(int64(x)))
	case int32:
		return clamp(decimal.NewFromInt(int64(x)))
	case int64:
		return clamp(decimal.NewFromInt(x))
	case uint:
		return clamp(decimal.NewFromInt(int64(x)))
	case uint8:
		return clamp(decimal.NewFromInt(int64(x)))
	case uint16:
		return clamp(decimal.NewFromInt(int64(x)))
	case uint32:
		return clamp(decimal.NewFromInt(int64(x)))
	case uint64:
		if x > math.MaxInt64 {
			return maxSafe
		}
		return clamp(decimal.NewFromInt(int64(x)))
	case float32:
		return fromFloat(float64(x))
	case float64:
		return fromFloat(x)
	case string:
		return fromString(x)
	case []any:
		if len(x) == 0 {
			return decimal.Zero
		}
		return Number(x[0])
	case []string:
		if len(x) == 0 {
			return decimal.Zero
		}
		return fromString(x[0])
	case []float64:
		if len(x) == 0 {
			return decimal.Zero
		}
		return fromFloat(x[0])
	case []int:
		if len(x) == 0 {
			return decimal.Zero
		}
		return clamp(decimal.NewFromInt(int64(x[0])))
	case map[string]any:
		for _, key := range valueKeys {
			if inner, ok := x[key]; ok {
				return Number(inner)
			}
		}
		return scan(fmt.Sprint(x))
	default:
		return scan(fmt.Sprint(v))
	}
}

// Float is Number with a float64 result, for callers that do not carry
// decimals through their own arithmetic.
func Float(v any) float64 {
	f, _ := Number(v).Float64()
	return f
}

func fromFloat(x float64) decimal.Decimal {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return decimal.Zero
	}
	return clamp(denoise(decimal.NewFromFloat(x)))
}

// fromString parses user-entered text: everything but digits, dots and
// minus signs is stripped, a second decimal point is folded into the
// fraction, and what still fails to parse becomes zero. A minus sign in
// the middle ("1-2") is kept so the parse fails rather than silently
// producing a different number.
func fromString(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if _, ok := emptyTokens[strings.ToLower(s)]; ok {
		return decimal.Zero
	}

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	if parts := strings.Split(cleaned, "."); len(parts) > 2 {
		cleaned = parts[0] + "." + strings.Join(parts[1:], "")
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return clamp(denoise(d))
}

// scan pulls the first numeric-looking substring out of a stringified
// value. Last resort for opaque types and records without a known key.
func scan(s string) decimal.Decimal {
	match := numberPattern.FindString(s)
	if match == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(match)
	if err != nil {
		return decimal.Zero
	}
	return clamp(denoise(d))
}

func denoise(d decimal.Decimal) decimal.Decimal {
	if d.Abs().LessThan(noiseFloor) {
		return decimal.Zero
	}
	return d
}

func clamp(d decimal.Decimal) decimal.Decimal {
	if d.GreaterThan(maxSafe) {
		return maxSafe
	}
	if d.LessThan(minSafe) {
		return minSafe
	}
	return d
}

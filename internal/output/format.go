// Package output turns engine result records into display strings. It is
// the only place presentation rounding happens; the engine keeps full
// precision. Formatting is a pure function of the value and an explicit
// Config, never ambient state.
package output

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Grouping selects the digit-grouping convention for the integer part.
type Grouping string

const (
	// Western groups digits in threes: 2,500,000.
	Western Grouping = "western"
	// Indian groups the last three digits, then twos: 25,00,000.
	Indian Grouping = "indian"
)

// Config is the read-only display configuration a caller passes in.
type Config struct {
	Symbol   string
	Grouping Grouping
	Places   int32
}

// DefaultConfig formats as plain western-grouped figures with two places
// and no symbol.
func DefaultConfig() Config {
	return Config{Grouping: Western, Places: 2}
}

// Format renders a currency amount. Rounding here is display-only.
func Format(v decimal.Decimal, cfg Config) string {
	grouping := cfg.Grouping
	if grouping == "" {
		grouping = Western
	}

	s := v.StringFixed(cfg.Places)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	out := sign + cfg.Symbol + group(intPart, grouping)
	if hasFrac {
		out += "." + fracPart
	}
	return out
}

// FormatPercent renders a percentage figure, e.g. "37.50%".
func FormatPercent(v decimal.Decimal, places int32) string {
	return v.StringFixed(places) + "%"
}

func group(digits string, grouping Grouping) string {
	if len(digits) <= 3 {
		return digits
	}

	var parts []string
	rest := digits[:len(digits)-3]
	parts = append(parts, digits[len(digits)-3:])

	width := 3
	if grouping == Indian {
		width = 2
	}
	for len(rest) > width {
		parts = append(parts, rest[len(rest)-width:])
		rest = rest[:len(rest)-width]
	}
	parts = append(parts, rest)

	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ",")
}

// Package validate applies declarative per-calculator rule tables to raw
// input records. Each calculator declares a Schema: its fields, their
// bounds, any cross-field constraints, and one of two modes. Strict mode
// rejects out-of-range input with a field-specific error; lenient mode
// clamps or substitutes a default so computation always proceeds. Exactly
// one of the two behaviors applies to a field, never both.
package validate

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fincalcs/engine/internal/coerce"
)

// Mode selects the validation philosophy for a calculator. The choice is
// configuration, never inferred from the input.
type Mode string

const (
	// Strict rejects out-of-contract values before any engine runs.
	Strict Mode = "strict"
	// Lenient clamps or defaults out-of-contract values so the calculator
	// can always show something.
	Lenient Mode = "lenient"
)

// Values holds a validated, coerced input record.
type Values map[string]decimal.Decimal

// Get returns the named value, or zero when absent.
func (v Values) Get(name string) decimal.Decimal {
	return v[name]
}

// FieldRule declares the contract for a single input field.
type FieldRule struct {
	Name     string
	Required bool
	Min      *decimal.Decimal
	Max      *decimal.Decimal
	// Default substitutes a missing or (in lenient mode) unusable value.
	Default decimal.Decimal
}

// CrossRule declares a constraint spanning multiple fields, e.g.
// "down payment must be below principal".
type CrossRule struct {
	// Field names the input the error is attributed to.
	Field   string
	Message string
	// Check returns true when the constraint holds.
	Check func(Values) bool
	// Adjust repairs the record in lenient mode. Nil means the values are
	// left as coerced.
	Adjust func(Values)
}

// Schema is the full rule table for one calculator.
type Schema struct {
	Calculator string
	Mode       Mode
	Fields     []FieldRule
	Cross      []CrossRule
}

// FieldError reports a strict-mode validation failure. It is the only
// error shape callers see for data-shaped problems.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Bound is a convenience for building rule tables inline.
func Bound(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// Validate checks the schema itself for programmer errors: duplicate or
// empty field names, inverted bounds, unknown mode. Malformed schemas are
// the one condition reported as a plain error rather than a FieldError.
func (s Schema) Validate() error {
	if s.Mode != Strict && s.Mode != Lenient {
		return fmt.Errorf("schema %s: unknown mode %q", s.Calculator, s.Mode)
	}
	seen := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		if f.Name == "" {
			return fmt.Errorf("schema %s: field with empty name", s.Calculator)
		}
		if seen[f.Name] {
			return fmt.Errorf("schema %s: duplicate field %q", s.Calculator, f.Name)
		}
		seen[f.Name] = true
		if f.Min != nil && f.Max != nil && f.Min.GreaterThan(*f.Max) {
			return fmt.Errorf("schema %s: field %q has min > max", s.Calculator, f.Name)
		}
	}
	for _, c := range s.Cross {
		if c.Check == nil {
			return fmt.Errorf("schema %s: cross rule for %q has no check", s.Calculator, c.Field)
		}
	}
	return nil
}

// Apply coerces and validates a raw input record. In strict mode the first
// violated rule is returned as a *FieldError and the engine must not be
// invoked; in lenient mode Apply never fails for data-shaped reasons.
func (s Schema) Apply(raw map[string]any) (Values, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	values := make(Values, len(s.Fields))
	for _, f := range s.Fields {
		rv, present := raw[f.Name]
		if !present {
			if f.Required && s.Mode == Strict {
				return nil, &FieldError{Field: f.Name, Message: "is required"}
			}
			values[f.Name] = f.Default
			continue
		}

		v := coerce.Number(rv)
		switch s.Mode {
		case Strict:
			if f.Min != nil && v.LessThan(*f.Min) {
				return nil, &FieldError{
					Field:   f.Name,
					Message: fmt.Sprintf("must be at least %s", f.Min),
				}
			}
			if f.Max != nil && v.GreaterThan(*f.Max) {
				return nil, &FieldError{
					Field:   f.Name,
					Message: fmt.Sprintf("must be at most %s", f.Max),
				}
			}
		case Lenient:
			// A field that coerced to nothing falls back to its declared
			// default, the "always show something" policy.
			if v.IsZero() && !f.Default.IsZero() {
				v = f.Default
			}
			if f.Min != nil && v.LessThan(*f.Min) {
				v = *f.Min
			}
			if f.Max != nil && v.GreaterThan(*f.Max) {
				v = *f.Max
			}
		}
		values[f.Name] = v
	}

	for _, c := range s.Cross {
		if c.Check(values) {
			continue
		}
		if s.Mode == Strict {
			return nil, &FieldError{Field: c.Field, Message: c.Message}
		}
		if c.Adjust != nil {
			c.Adjust(values)
		}
	}

	return values, nil
}

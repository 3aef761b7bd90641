package output

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Render writes a calculator result record in the requested format. The
// display config applies to the text format only; json and yaml keep the
// raw figures for machine consumers.
func Render(w io.Writer, result any, format string, display Config) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(result)
	case "text":
		return renderText(w, result, display)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

var decimalType = reflect.TypeOf(decimal.Decimal{})

// plainFields are decimal result fields that are scores, ratios or counts
// rather than currency amounts.
var plainFields = map[string]bool{
	"Eligibility":          true,
	"Feasibility":          true,
	"DebtServiceCoverage":  true,
	"Units":                true,
	"UnitsForTargetProfit": true,
	"MonthsLasted":         true,
}

// renderText prints one labeled line per result field, running currency
// figures through the display config. Schedules are summarized by length.
func renderText(w io.Writer, result any, cfg Config) error {
	v := reflect.Indirect(reflect.ValueOf(result))
	if v.Kind() != reflect.Struct {
		_, err := fmt.Fprintln(w, result)
		return err
	}
	return writeFields(w, v, cfg, "")
}

func writeFields(w io.Writer, v reflect.Value, cfg Config, indent string) error {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		fv := v.Field(i)

		var err error
		switch {
		case fv.Type() == decimalType:
			_, err = fmt.Fprintf(w, "%s%s: %s\n", indent, f.Name, formatField(f.Name, fv.Interface().(decimal.Decimal), cfg))
		case fv.Kind() == reflect.Pointer && !fv.IsNil() && fv.Elem().Kind() == reflect.Struct:
			if _, err = fmt.Fprintf(w, "%s%s:\n", indent, f.Name); err == nil {
				err = writeFields(w, fv.Elem(), cfg, indent+"  ")
			}
		case fv.Kind() == reflect.Pointer && fv.IsNil():
			continue
		case fv.Kind() == reflect.Slice:
			_, err = fmt.Fprintf(w, "%s%s: %d entries\n", indent, f.Name, fv.Len())
		default:
			_, err = fmt.Fprintf(w, "%s%s: %v\n", indent, f.Name, fv.Interface())
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func formatField(name string, d decimal.Decimal, cfg Config) string {
	switch {
	case strings.HasSuffix(name, "Pct"):
		return FormatPercent(d, cfg.Places)
	case plainFields[name]:
		return d.String()
	default:
		return Format(d, cfg)
	}
}

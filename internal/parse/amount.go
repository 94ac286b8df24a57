// Package parse normalizes locale-ambiguous amount and date strings into
// canonical types. Parsing never fails: malformed input degrades to a safe
// default and the substitution is reported as a Warning so callers can log
// or audit it.
package parse

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Warning records a lenient-parse substitution.
type Warning struct {
	Field  string
	Raw    string
	Reason string
}

func (w Warning) String() string {
	return w.Field + " " + strings.TrimSpace(w.Raw) + ": " + w.Reason
}

// currencySymbols covers the symbols seen in mixed-locale bank exports.
const currencySymbols = "R$€£¥₹₪₽¢"

// Amount parses a locale-ambiguous monetary string. When both "," and "."
// appear, the separator occurring later in the string is the decimal point,
// so "1.234,56" and "1,234.56" both normalize to the same value. A lone ","
// is always a decimal separator. A lone "." is a decimal separator only when
// it appears once with one or two trailing digits; otherwise it is thousands
// grouping and stripped. Unparseable input yields zero plus a Warning.
func Amount(raw string) (decimal.Decimal, *Warning) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.Map(func(r rune) rune {
		if strings.ContainsRune(currencySymbols, r) {
			return -1
		}
		return r
	}, cleaned)
	cleaned = strings.Join(strings.Fields(cleaned), "")

	if cleaned == "" {
		return decimal.Zero, nil
	}

	// Accounting notation: (123.45) means -123.45.
	negative := false
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		negative = true
		cleaned = cleaned[1 : len(cleaned)-1]
	}

	lastComma := strings.LastIndex(cleaned, ",")
	lastDot := strings.LastIndex(cleaned, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			// "1.234,56": dots are grouping, final comma is the decimal point.
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			// "1,234.56": commas are grouping.
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case lastComma >= 0:
		// Strip any grouping commas, then the final one is the decimal point.
		prefix := strings.ReplaceAll(cleaned[:lastComma], ",", "")
		cleaned = prefix + "." + cleaned[lastComma+1:]
	case lastDot >= 0:
		trailing := len(cleaned) - lastDot - 1
		dots := strings.Count(cleaned, ".")
		if dots > 1 || trailing > 2 {
			// "1.234" or "1.234.567": thousands grouping.
			cleaned = strings.ReplaceAll(cleaned, ".", "")
		}
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, &Warning{
			Field:  "amount",
			Raw:    raw,
			Reason: "not a number, defaulted to 0",
		}
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

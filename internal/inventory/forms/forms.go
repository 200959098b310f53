// Package forms holds the pieces shared by the receipt and consumption
// entry flows: presence checks, lenient number parsing, notifications and
// error responses.
package forms

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Field pairs a draft value with the name reported when it is missing.
type Field struct {
	Name  string
	Value string
}

// Missing returns the names of fields that are empty or whitespace only,
// in the order given.
func Missing(fields ...Field) []string {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			missing = append(missing, f.Name)
		}
	}
	return missing
}

// ParseNumber reads a form value as a decimal. Blank and non-numeric input
// report false.
func ParseNumber(value string) (decimal.Decimal, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// NumberOrZero is ParseNumber with unreadable input counted as zero.
func NumberOrZero(value string) decimal.Decimal {
	d, _ := ParseNumber(value)
	return d
}

type Notification struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

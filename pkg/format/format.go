package format

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const rupee = "₹"

var printer = message.NewPrinter(language.English)

// Rupees renders an amount the way the dashboard shows it, e.g. "₹18,900".
func Rupees(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-" + rupee + Quantity(amount.Neg())
	}
	return rupee + Quantity(amount)
}

// Quantity groups thousands and keeps at most two fraction digits.
func Quantity(value decimal.Decimal) string {
	return printer.Sprint(number.Decimal(value.Round(2).InexactFloat64(), number.MaxFractionDigits(2)))
}

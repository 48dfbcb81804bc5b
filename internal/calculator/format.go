package calculator

import "github.com/shopspring/decimal"

// FormatAmount renders a price as an integer when it is whole and with two
// decimals otherwise.
func FormatAmount(amount decimal.Decimal) string {
	if amount.IsInteger() {
		return amount.StringFixed(0)
	}
	return amount.StringFixed(2)
}

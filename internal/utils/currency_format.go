package utils

import (
	"github.com/shopspring/decimal"
)

// MoneyPrecision is the number of decimal places wallet amounts are shown with.
const MoneyPrecision = 2

// FormatMoney formats an amount with the wallet precision.
// Example: 12.3456 returns "12.35", 100 returns "100.00"
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(MoneyPrecision)
}

package domain

import "github.com/shopspring/decimal"

// Gold weight conversion constants.
// 1 tola = 11.664 grams, 1 troy ounce = 31.1035 grams.
var (
	TolaGrams  = decimal.NewFromFloat(11.664)
	OunceGrams = decimal.NewFromFloat(31.1035)
)

const (
	// WeightPrecision is the number of decimal places kept for gold weights (grams).
	WeightPrecision int32 = 3
	// MoneyPrecision is the number of decimal places kept for currency amounts.
	MoneyPrecision int32 = 2
)

// RoundWeight rounds a gram weight to the standard 3 decimal places.
func RoundWeight(d decimal.Decimal) decimal.Decimal {
	return d.Round(WeightPrecision)
}

// RoundMoney rounds a currency amount to the standard 2 decimal places.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPrecision)
}

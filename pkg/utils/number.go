package utils

import "github.com/shopspring/decimal"

// RoundMoney arredonda um valor monetário para duas casas decimais
func RoundMoney(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

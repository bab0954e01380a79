package earnings

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.New(5, -1)
)

// RoundUnit rounds to the nearest whole currency unit, halves going up.
func RoundUnit(d decimal.Decimal) decimal.Decimal {
	return d.Add(half).Floor()
}

// percentOf returns amount * pct / 100 without rounding.
func percentOf(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(hundred)
}

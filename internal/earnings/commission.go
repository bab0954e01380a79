package earnings

import "github.com/shopspring/decimal"

type CommissionSource string

const (
	CommissionFromSnapshot   CommissionSource = "snapshot"
	CommissionFromOrder      CommissionSource = "order"
	CommissionFromRestaurant CommissionSource = "restaurant"
	CommissionFromDefault    CommissionSource = "default"
)

// OrderTerms are the order fields commission resolution looks at.
type OrderTerms struct {
	Subtotal       decimal.Decimal
	Commission     decimal.NullDecimal
	CommissionRate decimal.NullDecimal
}

type Commission struct {
	Rate   decimal.Decimal  `json:"rate"`
	Amount decimal.Decimal  `json:"amount"`
	Source CommissionSource `json:"source"`
}

// ResolveCommission returns the persisted snapshot verbatim when there is one.
// Otherwise the rate comes from the order, then the restaurant, then defaultRate.
// Stored rates are trusted; validation happens where they are written.
func ResolveCommission(order OrderTerms, restaurantRate decimal.NullDecimal, defaultRate decimal.Decimal) Commission {
	if order.Commission.Valid {
		rate := decimal.Zero
		if order.Subtotal.IsPositive() {
			rate = order.Commission.Decimal.Div(order.Subtotal).Mul(hundred).Round(2)
		}
		return Commission{Rate: rate, Amount: order.Commission.Decimal, Source: CommissionFromSnapshot}
	}

	rate, source := defaultRate, CommissionFromDefault
	switch {
	case order.CommissionRate.Valid:
		rate, source = order.CommissionRate.Decimal, CommissionFromOrder
	case restaurantRate.Valid:
		rate, source = restaurantRate.Decimal, CommissionFromRestaurant
	}

	return Commission{
		Rate:   rate,
		Amount: percentOf(order.Subtotal, rate),
		Source: source,
	}
}

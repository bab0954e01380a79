package earnings

import "github.com/shopspring/decimal"

// FeeSplit divides a total delivery fee between the courier and the platform.
// Platform is always Total - DeliveryPerson so the two halves add up exactly.
type FeeSplit struct {
	Total          decimal.Decimal `json:"total"`
	DeliveryPerson decimal.Decimal `json:"delivery_person"`
	Platform       decimal.Decimal `json:"platform"`
}

// DeliveryPersonShare is the courier's cut of a delivery fee that already includes
// every bonus.
func DeliveryPersonShare(totalDeliveryFee decimal.Decimal, cfg BusinessConfig) decimal.Decimal {
	return RoundUnit(percentOf(totalDeliveryFee, cfg.DeliveryPersonPercentage))
}

func SplitDeliveryFee(totalDeliveryFee decimal.Decimal, cfg BusinessConfig) FeeSplit {
	share := DeliveryPersonShare(totalDeliveryFee, cfg)
	return FeeSplit{
		Total:          totalDeliveryFee,
		DeliveryPerson: share,
		Platform:       totalDeliveryFee.Sub(share),
	}
}

// SumDeliveryShares adds the per-order rounded shares. Aggregate platform delivery
// revenue is derived from this sum so it reconciles with the individual payouts.
func SumDeliveryShares(fees []decimal.Decimal, cfg BusinessConfig) decimal.Decimal {
	total := decimal.Zero
	for _, fee := range fees {
		total = total.Add(DeliveryPersonShare(fee, cfg))
	}
	return total
}

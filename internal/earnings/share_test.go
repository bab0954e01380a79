package earnings

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDeliveryPersonShare(t *testing.T) {
	cfg := DefaultBusinessConfig()

	assert.True(t, DeliveryPersonShare(dec(880), cfg).Equal(dec(616)))
	// 70% of 5 is 3.5, rounded up.
	assert.True(t, DeliveryPersonShare(dec(5), cfg).Equal(dec(4)))
	assert.True(t, DeliveryPersonShare(decimal.Zero, cfg).IsZero())
}

func TestSplitDeliveryFeeReconciles(t *testing.T) {
	cfg := DefaultBusinessConfig()
	cfg.DeliveryPersonPercentage = decimal.RequireFromString("66.5")

	for fee := int64(0); fee <= 2000; fee += 7 {
		split := SplitDeliveryFee(dec(fee), cfg)
		assert.True(t, split.DeliveryPerson.Add(split.Platform).Equal(dec(fee)), "fee %d", fee)
		assert.True(t, split.DeliveryPerson.Equal(split.DeliveryPerson.Floor()), "share must be whole units")
	}
}

func TestSumDeliveryShares(t *testing.T) {
	cfg := DefaultBusinessConfig()
	fees := []decimal.Decimal{dec(5), dec(5), dec(880)}

	// Per-order rounding gives 4 + 4 + 616; rounding the sum would give 623.
	assert.True(t, SumDeliveryShares(fees, cfg).Equal(dec(624)))
	assert.True(t, SumDeliveryShares(nil, cfg).IsZero())
}

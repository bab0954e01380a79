package earnings

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBuildOverviewLegacyFormula(t *testing.T) {
	cfg := DefaultBusinessConfig()

	o := BuildOverview(OverviewInput{
		CommissionTotal:   dec(50000),
		DeliveryFeesTotal: dec(30000),
		ExpensesTotal:     dec(10000),
	}, cfg)

	assert.True(t, o.PlatformDeliveryRevenue.Equal(dec(9000)), "delivery %s", o.PlatformDeliveryRevenue)
	assert.True(t, o.PlatformTotalRevenue.Equal(dec(59000)))
	assert.True(t, o.NetProfit.Equal(dec(49000)))
	assert.Equal(t, "83.05", o.ProfitMargin.StringFixed(2))
	assert.True(t, o.DeliveryPersonPayouts.Equal(dec(21000)))
}

func TestBuildOverviewReconcilesWithPerOrderShares(t *testing.T) {
	cfg := DefaultBusinessConfig()
	fees := []decimal.Decimal{dec(5), dec(5), dec(880)}
	feesTotal := dec(890)
	shares := SumDeliveryShares(fees, cfg)

	o := BuildOverview(OverviewInput{
		DeliveryFeesTotal:   feesTotal,
		DeliverySharesTotal: decimal.NewNullDecimal(shares),
	}, cfg)

	assert.True(t, o.PlatformDeliveryRevenue.Equal(dec(266)), "got %s", o.PlatformDeliveryRevenue)
	assert.True(t, o.PlatformDeliveryRevenue.Add(o.DeliveryPersonPayouts).Equal(feesTotal))
	assert.True(t, o.DeliveryPersonPayouts.Equal(shares))
}

func TestBuildOverviewZeroRevenue(t *testing.T) {
	cfg := DefaultBusinessConfig()

	o := BuildOverview(OverviewInput{ExpensesTotal: dec(500)}, cfg)

	assert.True(t, o.PlatformTotalRevenue.IsZero())
	assert.True(t, o.ProfitMargin.IsZero())
	assert.True(t, o.NetProfit.Equal(dec(-500)))
	assert.True(t, o.AverageOrderValue.IsZero())
}

func TestBuildOverviewAverageOrderValue(t *testing.T) {
	cfg := DefaultBusinessConfig()

	o := BuildOverview(OverviewInput{
		CompletedOrdersRevenue: dec(10000),
		CompletedOrdersCount:   3,
		CancelledOrdersCount:   2,
	}, cfg)

	assert.Equal(t, "3333.33", o.AverageOrderValue.StringFixed(2))
	assert.Equal(t, int64(3), o.CompletedOrdersCount)
	assert.Equal(t, int64(2), o.CancelledOrdersCount)
}

func TestBuildOverviewIsDeterministic(t *testing.T) {
	cfg := DefaultBusinessConfig()
	in := OverviewInput{
		CommissionTotal:        decimal.RequireFromString("1234.56"),
		DeliveryFeesTotal:      dec(7777),
		ExpensesTotal:          dec(333),
		CompletedOrdersRevenue: dec(99999),
		CompletedOrdersCount:   7,
	}

	assert.Equal(t, BuildOverview(in, cfg), BuildOverview(in, cfg))
}

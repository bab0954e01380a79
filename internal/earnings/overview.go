package earnings

import "github.com/shopspring/decimal"

// OverviewInput carries period aggregates fetched by the data layer. Zero values
// stand in for missing aggregates.
type OverviewInput struct {
	CommissionTotal   decimal.Decimal
	DeliveryFeesTotal decimal.Decimal
	// DeliverySharesTotal is the sum of per-order rounded courier shares. When set,
	// platform delivery revenue is DeliveryFeesTotal minus this sum.
	DeliverySharesTotal    decimal.NullDecimal
	ExpensesTotal          decimal.Decimal
	CompletedOrdersRevenue decimal.Decimal
	CompletedOrdersCount   int64
	CancelledOrdersCount   int64
}

type FinancialOverview struct {
	PlatformCommissionRevenue decimal.Decimal `json:"platform_commission_revenue"`
	PlatformDeliveryRevenue   decimal.Decimal `json:"platform_delivery_revenue"`
	PlatformTotalRevenue      decimal.Decimal `json:"platform_total_revenue"`
	DeliveryFeesTotal         decimal.Decimal `json:"delivery_fees_total"`
	DeliveryPersonPayouts     decimal.Decimal `json:"delivery_person_payouts"`
	ExpensesTotal             decimal.Decimal `json:"expenses_total"`
	NetProfit                 decimal.Decimal `json:"net_profit"`
	ProfitMargin              decimal.Decimal `json:"profit_margin"`
	CompletedOrdersRevenue    decimal.Decimal `json:"completed_orders_revenue"`
	CompletedOrdersCount      int64           `json:"completed_orders_count"`
	CancelledOrdersCount      int64           `json:"cancelled_orders_count"`
	AverageOrderValue         decimal.Decimal `json:"average_order_value"`
}

func BuildOverview(in OverviewInput, cfg BusinessConfig) FinancialOverview {
	commission := in.CommissionTotal

	var delivery decimal.Decimal
	if in.DeliverySharesTotal.Valid {
		delivery = in.DeliveryFeesTotal.Sub(in.DeliverySharesTotal.Decimal)
	} else {
		delivery = percentOf(in.DeliveryFeesTotal, hundred.Sub(cfg.DeliveryPersonPercentage))
	}

	total := commission.Add(delivery)
	net := total.Sub(in.ExpensesTotal)

	margin := decimal.Zero
	if total.IsPositive() {
		margin = net.Div(total).Mul(hundred).Round(2)
	}

	avg := decimal.Zero
	if in.CompletedOrdersCount > 0 {
		avg = in.CompletedOrdersRevenue.Div(decimal.NewFromInt(in.CompletedOrdersCount)).Round(2)
	}

	return FinancialOverview{
		PlatformCommissionRevenue: commission,
		PlatformDeliveryRevenue:   delivery,
		PlatformTotalRevenue:      total,
		DeliveryFeesTotal:         in.DeliveryFeesTotal,
		DeliveryPersonPayouts:     in.DeliveryFeesTotal.Sub(delivery),
		ExpensesTotal:             in.ExpensesTotal,
		NetProfit:                 net,
		ProfitMargin:              margin,
		CompletedOrdersRevenue:    in.CompletedOrdersRevenue,
		CompletedOrdersCount:      in.CompletedOrdersCount,
		CancelledOrdersCount:      in.CancelledOrdersCount,
		AverageOrderValue:         avg,
	}
}

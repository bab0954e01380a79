package earningsrpc

import (
	"time"

	"github.com/shopspring/decimal"

	"baibebalo-system/internal/earnings"
)

// Period is an inclusive range of calendar days (YYYY-MM-DD) in the business timezone.
type Period struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type Pagination struct {
	Page       int32 `json:"page"`
	PageSize   int32 `json:"page_size"`
	TotalCount int64 `json:"total_count"`
	NextPage   int32 `json:"next_page,omitempty"`
}

type Order struct {
	ID                int64            `json:"id"`
	RestaurantID      int64            `json:"restaurant_id"`
	DeliveryPersonID  *int64           `json:"delivery_person_id,omitempty"`
	Subtotal          decimal.Decimal  `json:"subtotal"`
	BaseDeliveryFee   decimal.Decimal  `json:"base_delivery_fee"`
	DistanceKm        float64          `json:"distance_km"`
	LongDistanceBonus decimal.Decimal  `json:"long_distance_bonus"`
	PeakHourBonus     decimal.Decimal  `json:"peak_hour_bonus"`
	WeekendBonus      decimal.Decimal  `json:"weekend_bonus"`
	DeliveryFee       decimal.Decimal  `json:"delivery_fee"`
	Commission        *decimal.Decimal `json:"commission,omitempty"`
	CommissionRate    *decimal.Decimal `json:"commission_rate,omitempty"`
	Total             decimal.Decimal  `json:"total"`
	Status            string           `json:"status"`
	PlacedAt          time.Time        `json:"placed_at"`
	DeliveredAt       *time.Time       `json:"delivered_at,omitempty"`
}

type Transaction struct {
	ID          int64           `json:"id"`
	Reference   string          `json:"reference"`
	OrderID     *int64          `json:"order_id,omitempty"`
	ToUserType  string          `json:"to_user_type"`
	ToUserID    *int64          `json:"to_user_id,omitempty"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	Description *string         `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

type QuoteDeliveryFeeRequest struct {
	BaseDeliveryFee decimal.Decimal `json:"base_delivery_fee"`
	DistanceKm      float64         `json:"distance_km"`
	OrderTime       *time.Time      `json:"order_time,omitempty"`
}

type QuoteDeliveryFeeResponse struct {
	Bonuses earnings.BonusBreakdown `json:"bonuses"`
	Split   earnings.FeeSplit       `json:"split"`
}

type CreateOrderRequest struct {
	RestaurantID     int64            `json:"restaurant_id"`
	DeliveryPersonID *int64           `json:"delivery_person_id,omitempty"`
	Subtotal         decimal.Decimal  `json:"subtotal"`
	BaseDeliveryFee  decimal.Decimal  `json:"base_delivery_fee"`
	DistanceKm       float64          `json:"distance_km"`
	PlacedAt         *time.Time       `json:"placed_at,omitempty"`
	CommissionRate   *decimal.Decimal `json:"commission_rate,omitempty"`
}

type CreateOrderResponse struct {
	Order   Order                   `json:"order"`
	Bonuses earnings.BonusBreakdown `json:"bonuses"`
}

type UpdateOrderStatusRequest struct {
	OrderID          int64  `json:"order_id"`
	Status           string `json:"status"`
	DeliveryPersonID *int64 `json:"delivery_person_id,omitempty"`
}

type UpdateOrderStatusResponse struct {
	Order        Order         `json:"order"`
	Transactions []Transaction `json:"transactions,omitempty"`
}

type GetOrderCommissionRequest struct {
	OrderID int64 `json:"order_id"`
}

type GetOrderCommissionResponse struct {
	OrderID    int64               `json:"order_id"`
	Commission earnings.Commission `json:"commission"`
}

type ListOrderCommissionsRequest struct {
	RestaurantID int64  `json:"restaurant_id,omitempty"`
	Status       string `json:"status,omitempty"`
	StartDate    string `json:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty"`
	Page         int32  `json:"page,omitempty"`
	PageSize     int32  `json:"page_size,omitempty"`
}

type OrderCommission struct {
	Order      Order               `json:"order"`
	Commission earnings.Commission `json:"commission"`
}

type ListOrderCommissionsResponse struct {
	Items []OrderCommission `json:"items"`
	// PageCommissionTotal sums the commissions of Items only.
	PageCommissionTotal decimal.Decimal `json:"page_commission_total"`
	Pagination          Pagination      `json:"pagination"`
}

type SetRestaurantCommissionRateRequest struct {
	RestaurantID   int64            `json:"restaurant_id"`
	CommissionRate *decimal.Decimal `json:"commission_rate"`
}

type SetRestaurantCommissionRateResponse struct {
	RestaurantID   int64            `json:"restaurant_id"`
	CommissionRate *decimal.Decimal `json:"commission_rate,omitempty"`
}

type SetOrderCommissionRateRequest struct {
	OrderID        int64            `json:"order_id"`
	CommissionRate *decimal.Decimal `json:"commission_rate"`
}

type SetOrderCommissionRateResponse struct {
	Order      Order               `json:"order"`
	Commission earnings.Commission `json:"commission"`
}

type RecordExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	VendorID    *int64          `json:"vendor_id,omitempty"`
}

type RecordExpenseResponse struct {
	Transaction Transaction `json:"transaction"`
}

type GetFinancialOverviewRequest struct {
	Period Period `json:"period"`
}

type GetFinancialOverviewResponse struct {
	Period   Period                     `json:"period"`
	Overview earnings.FinancialOverview `json:"overview"`
	Cached   bool                       `json:"cached"`
}

type GetDeliveryPersonEarningsRequest struct {
	DeliveryPersonID int64  `json:"delivery_person_id"`
	Period           Period `json:"period"`
}

type GetDeliveryPersonEarningsResponse struct {
	DeliveryPersonID int64           `json:"delivery_person_id"`
	Period           Period          `json:"period"`
	TotalEarnings    decimal.Decimal `json:"total_earnings"`
	DeliveriesCount  int64           `json:"deliveries_count"`
}

type GetSchemaStatusRequest struct{}

type GetSchemaStatusResponse struct {
	Ready          bool                `json:"ready"`
	Tables         map[string]bool     `json:"tables"`
	MissingColumns map[string][]string `json:"missing_columns,omitempty"`
}

package models

import (
	"time"

	"github.com/shopspring/decimal"

	"baibebalo-system/internal/earnings"
)

const (
	TableRestaurants  = "restaurants"
	TableOrders       = "orders"
	TableTransactions = "transactions"
)

type Restaurant struct {
	ID             int64               `gorm:"primaryKey;autoIncrement"`
	Name           string              `gorm:"not null"`
	CommissionRate decimal.NullDecimal `gorm:"type:decimal(5,2)"`
	IsActive       bool                `gorm:"default:true"`
	CreatedAt      *time.Time          `gorm:"autoCreateTime"`
	UpdatedAt      *time.Time          `gorm:"autoUpdateTime"`
}

func (Restaurant) TableName() string { return TableRestaurants }

// Order keeps the bonus breakdown next to the total delivery fee. Once delivered,
// DeliveryFee, Commission and CommissionRate are never rewritten.
type Order struct {
	ID               int64       `gorm:"primaryKey;autoIncrement"`
	RestaurantID     int64       `gorm:"index;not null"`
	Restaurant       *Restaurant `gorm:"foreignKey:RestaurantID"`
	DeliveryPersonID *int64      `gorm:"index"`

	Subtotal          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	BaseDeliveryFee   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	DistanceKm        float64         `gorm:"not null;default:0"`
	LongDistanceBonus decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PeakHourBonus     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	WeekendBonus      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	DeliveryFee       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Total             decimal.Decimal `gorm:"type:decimal(18,2);not null"`

	Commission     decimal.NullDecimal `gorm:"type:decimal(18,2)"`
	CommissionRate decimal.NullDecimal `gorm:"type:decimal(5,2)"`

	Status      earnings.OrderStatus `gorm:"type:varchar(16);index;not null"`
	PlacedAt    time.Time            `gorm:"index;not null"`
	DeliveredAt *time.Time           `gorm:"index"`
	CreatedAt   *time.Time           `gorm:"autoCreateTime"`
	UpdatedAt   *time.Time           `gorm:"autoUpdateTime"`
}

func (Order) TableName() string { return TableOrders }

// Terms returns the fields commission resolution reads.
func (o Order) Terms() earnings.OrderTerms {
	return earnings.OrderTerms{
		Subtotal:       o.Subtotal,
		Commission:     o.Commission,
		CommissionRate: o.CommissionRate,
	}
}

// RestaurantRate is the restaurant-level commission rate, or null when the
// restaurant is not loaded or has none.
func (o Order) RestaurantRate() decimal.NullDecimal {
	if o.Restaurant == nil {
		return decimal.NullDecimal{}
	}
	return o.Restaurant.CommissionRate
}

// Transaction is a single money movement. Type is the only discriminator.
type Transaction struct {
	ID          int64                      `gorm:"primaryKey;autoIncrement"`
	Reference   string                     `gorm:"type:varchar(36);uniqueIndex;not null"`
	OrderID     *int64                     `gorm:"index"`
	ToUserType  earnings.RecipientType     `gorm:"type:varchar(32);not null"`
	ToUserID    *int64                     `gorm:"index"`
	Type        earnings.TransactionType   `gorm:"type:varchar(32);index;not null"`
	Amount      decimal.Decimal            `gorm:"type:decimal(18,2);not null"`
	Status      earnings.TransactionStatus `gorm:"type:varchar(16);index;not null"`
	Description *string                    `gorm:"type:text"`
	CreatedAt   time.Time                  `gorm:"index"`
	CompletedAt *time.Time
}

func (Transaction) TableName() string { return TableTransactions }

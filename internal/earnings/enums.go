package earnings

import (
	"database/sql/driver"
	"fmt"
)

// TransactionType is the single discriminator of a money movement.
type TransactionType string

const (
	TransactionDeliveryFee TransactionType = "delivery_fee"
	TransactionCommission  TransactionType = "commission"
	TransactionRefund      TransactionType = "refund"
	TransactionPayout      TransactionType = "payout"
	TransactionExpense     TransactionType = "expense"
)

var transactionTypes = []TransactionType{
	TransactionDeliveryFee,
	TransactionCommission,
	TransactionRefund,
	TransactionPayout,
	TransactionExpense,
}

func ParseTransactionType(s string) (TransactionType, error) {
	for _, t := range transactionTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}

func (t TransactionType) Valid() bool {
	_, err := ParseTransactionType(string(t))
	return err == nil
}

func (t TransactionType) String() string { return string(t) }

func (t *TransactionType) Scan(value interface{}) error {
	s, err := scanString(value)
	if err != nil {
		return err
	}
	parsed, err := ParseTransactionType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t TransactionType) Value() (driver.Value, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("unknown transaction type %q", string(t))
	}
	return string(t), nil
}

type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionFailed    TransactionStatus = "failed"
	TransactionRejected  TransactionStatus = "rejected"
)

func ParseTransactionStatus(s string) (TransactionStatus, error) {
	switch st := TransactionStatus(s); st {
	case TransactionPending, TransactionCompleted, TransactionFailed, TransactionRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown transaction status %q", s)
}

func (s TransactionStatus) String() string { return string(s) }

func (s *TransactionStatus) Scan(value interface{}) error {
	str, err := scanString(value)
	if err != nil {
		return err
	}
	parsed, err := ParseTransactionStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s TransactionStatus) Value() (driver.Value, error) {
	if _, err := ParseTransactionStatus(string(s)); err != nil {
		return nil, err
	}
	return string(s), nil
}

// RecipientType says who receives a transaction's money.
type RecipientType string

const (
	RecipientDeliveryPerson RecipientType = "delivery_person"
	RecipientRestaurant     RecipientType = "restaurant"
	RecipientPlatform       RecipientType = "platform"
	RecipientVendor         RecipientType = "vendor"
)

func ParseRecipientType(s string) (RecipientType, error) {
	switch r := RecipientType(s); r {
	case RecipientDeliveryPerson, RecipientRestaurant, RecipientPlatform, RecipientVendor:
		return r, nil
	}
	return "", fmt.Errorf("unknown recipient type %q", s)
}

func (r RecipientType) String() string { return string(r) }

type OrderStatus string

const (
	OrderNew        OrderStatus = "new"
	OrderAccepted   OrderStatus = "accepted"
	OrderPreparing  OrderStatus = "preparing"
	OrderReady      OrderStatus = "ready"
	OrderDelivering OrderStatus = "delivering"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

var nextOrderStatus = map[OrderStatus]OrderStatus{
	OrderNew:        OrderAccepted,
	OrderAccepted:   OrderPreparing,
	OrderPreparing:  OrderReady,
	OrderReady:      OrderDelivering,
	OrderDelivering: OrderDelivered,
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(s); st {
	case OrderNew, OrderAccepted, OrderPreparing, OrderReady, OrderDelivering, OrderDelivered, OrderCancelled:
		return st, nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

func (s OrderStatus) String() string { return string(s) }

// Final reports whether no further transition is possible.
func (s OrderStatus) Final() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// CanTransitionTo allows one step along the linear chain, or cancellation from any
// state that is not final.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if next == OrderCancelled {
		return !s.Final()
	}
	want, ok := nextOrderStatus[s]
	return ok && want == next
}

func (s *OrderStatus) Scan(value interface{}) error {
	str, err := scanString(value)
	if err != nil {
		return err
	}
	parsed, err := ParseOrderStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	if _, err := ParseOrderStatus(string(s)); err != nil {
		return nil, err
	}
	return string(s), nil
}

func scanString(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case nil:
		return "", fmt.Errorf("unexpected NULL enum value")
	default:
		return "", fmt.Errorf("cannot scan %T into enum", value)
	}
}

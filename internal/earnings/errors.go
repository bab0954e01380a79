package earnings

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InvalidRateError is returned by mutation paths when a rate falls outside [0,100]
// or a monetary amount is negative. Read-time resolution never returns it.
type InvalidRateError struct {
	Field  string
	Value  decimal.Decimal
	Reason string
}

func (e *InvalidRateError) Error() string {
	return fmt.Sprintf("invalid %s %s: %s", e.Field, e.Value.String(), e.Reason)
}

func ValidateRate(field string, rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(hundred) {
		return &InvalidRateError{Field: field, Value: rate, Reason: "must be between 0 and 100"}
	}
	if !rate.Equal(rate.Round(2)) {
		return &InvalidRateError{Field: field, Value: rate, Reason: "must have at most 2 decimal places"}
	}
	return nil
}

func ValidateAmount(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return &InvalidRateError{Field: field, Value: amount, Reason: "must not be negative"}
	}
	return nil
}

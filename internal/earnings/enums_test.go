package earnings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderNew, OrderAccepted, true},
		{OrderAccepted, OrderPreparing, true},
		{OrderPreparing, OrderReady, true},
		{OrderReady, OrderDelivering, true},
		{OrderDelivering, OrderDelivered, true},
		{OrderNew, OrderPreparing, false},
		{OrderReady, OrderAccepted, false},
		{OrderNew, OrderDelivered, false},
		{OrderNew, OrderCancelled, true},
		{OrderDelivering, OrderCancelled, true},
		{OrderDelivered, OrderCancelled, false},
		{OrderCancelled, OrderCancelled, false},
		{OrderCancelled, OrderNew, false},
		{OrderDelivered, OrderDelivered, false},
	}
	for _, tt := range tests {
		got := tt.from.CanTransitionTo(tt.to)
		if got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestTransactionTypeScan(t *testing.T) {
	var tt TransactionType
	require.NoError(t, tt.Scan([]byte("delivery_fee")))
	assert.Equal(t, TransactionDeliveryFee, tt)

	require.NoError(t, tt.Scan("expense"))
	assert.Equal(t, TransactionExpense, tt)

	assert.Error(t, tt.Scan("type"))
	assert.Error(t, tt.Scan(nil))
	assert.Error(t, tt.Scan(42))

	_, err := TransactionType("bogus").Value()
	assert.Error(t, err)
	v, err := TransactionCommission.Value()
	require.NoError(t, err)
	assert.Equal(t, "commission", v)
}

func TestParseEnums(t *testing.T) {
	_, err := ParseTransactionStatus("completed")
	assert.NoError(t, err)
	_, err = ParseTransactionStatus("done")
	assert.Error(t, err)

	_, err = ParseRecipientType("delivery_person")
	assert.NoError(t, err)
	_, err = ParseRecipientType("rider")
	assert.Error(t, err)

	st, err := ParseOrderStatus("delivering")
	require.NoError(t, err)
	assert.False(t, st.Final())
	assert.True(t, OrderCancelled.Final())
}

func TestBusinessConfigValidate(t *testing.T) {
	cfg := DefaultBusinessConfig()
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.DeliveryPersonPercentage = dec(120)
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.PeakHourAmount = dec(-1)
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.PeakWindows = []HourWindow{{Start: 14, End: 12}}
	assert.Error(t, bad.Validate())

	loc := BusinessConfig{Timezone: "Mars/Olympus"}
	assert.Error(t, loc.LoadLocation())

	loc = BusinessConfig{}
	require.NoError(t, loc.LoadLocation())
	assert.Equal(t, DefaultTimezone, loc.Location.String())
	assert.Len(t, loc.PeakWindows, 2)
}

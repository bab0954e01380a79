package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baibebalo-system/internal/database"
	"baibebalo-system/internal/database/models"
	"baibebalo-system/internal/earnings"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.NewConnection(database.DriverSQLite, dsn)
	require.NoError(t, err)
	require.NoError(t, database.MigrateEarningsDB(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return New(db)
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func seedRestaurant(t *testing.T, s *Store, rate decimal.NullDecimal) *models.Restaurant {
	t.Helper()
	r := &models.Restaurant{Name: "Maquis Chez Tantie", CommissionRate: rate}
	require.NoError(t, s.CreateRestaurant(context.Background(), r))
	return r
}

func seedOrder(t *testing.T, s *Store, restaurantID int64, placedAt time.Time) *models.Order {
	t.Helper()
	o := &models.Order{
		RestaurantID:      restaurantID,
		Subtotal:          dec(10000),
		BaseDeliveryFee:   dec(500),
		LongDistanceBonus: decimal.Zero,
		PeakHourBonus:     decimal.Zero,
		WeekendBonus:      decimal.Zero,
		DeliveryFee:       dec(500),
		Total:             dec(10500),
		PlacedAt:          placedAt,
	}
	require.NoError(t, s.CreateOrder(context.Background(), o))
	return o
}

func advance(t *testing.T, s *Store, id int64, statuses ...earnings.OrderStatus) {
	t.Helper()
	for _, st := range statuses {
		_, _, err := s.TransitionOrder(context.Background(), id, st, time.Now(), nil)
		require.NoError(t, err, "transition to %s", st)
	}
}

func TestCreateOrderRequiresRestaurant(t *testing.T) {
	s := newTestStore(t)

	o := &models.Order{RestaurantID: 99, PlacedAt: time.Now()}
	err := s.CreateOrder(context.Background(), o)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateAndGetOrder(t *testing.T) {
	s := newTestStore(t)
	r := seedRestaurant(t, s, decimal.NewNullDecimal(dec(12)))
	o := seedOrder(t, s, r.ID, time.Date(2024, 6, 1, 13, 0, 0, 0, time.UTC))

	got, err := s.GetOrder(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, earnings.OrderNew, got.Status)
	assert.True(t, got.DeliveryFee.Equal(dec(500)))
	require.NotNil(t, got.Restaurant)
	assert.True(t, got.RestaurantRate().Decimal.Equal(dec(12)))
	assert.False(t, got.Commission.Valid)

	_, err = s.GetOrder(context.Background(), 12345)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTransitionOrderEnforcesLifecycle(t *testing.T) {
	s := newTestStore(t)
	r := seedRestaurant(t, s, decimal.NullDecimal{})
	o := seedOrder(t, s, r.ID, time.Now())

	_, _, err := s.TransitionOrder(context.Background(), o.ID, earnings.OrderReady, time.Now(), nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	advance(t, s, o.ID, earnings.OrderAccepted, earnings.OrderPreparing)

	_, _, err = s.TransitionOrder(context.Background(), o.ID, earnings.OrderAccepted, time.Now(), nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	cancelled, _, err := s.TransitionOrder(context.Background(), o.ID, earnings.OrderCancelled, time.Now(), nil)
	require.NoError(t, err)
	assert.Equal(t, earnings.OrderCancelled, cancelled.Status)

	_, _, err = s.TransitionOrder(context.Background(), o.ID, earnings.OrderNew, time.Now(), nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransitionToDeliveredSettles(t *testing.T) {
	s := newTestStore(t)
	r := seedRestaurant(t, s, decimal.NewNullDecimal(dec(12)))
	o := seedOrder(t, s, r.ID, time.Now())
	advance(t, s, o.ID, earnings.OrderAccepted, earnings.OrderPreparing, earnings.OrderReady, earnings.OrderDelivering)

	courier := int64(7)
	deliveredAt := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)
	settle := func(o *models.Order) ([]models.Transaction, error) {
		o.Commission = decimal.NewNullDecimal(dec(1200))
		o.CommissionRate = decimal.NewNullDecimal(dec(12))
		o.DeliveryPersonID = &courier
		return []models.Transaction{{
			OrderID:    &o.ID,
			ToUserType: earnings.RecipientDeliveryPerson,
			ToUserID:   &courier,
			Type:       earnings.TransactionDeliveryFee,
			Amount:     dec(350),
			Status:     earnings.TransactionCompleted,
		}}, nil
	}

	delivered, txs, err := s.TransitionOrder(context.Background(), o.ID, earnings.OrderDelivered, deliveredAt, settle)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.NotEmpty(t, txs[0].Reference)
	assert.Equal(t, earnings.OrderDelivered, delivered.Status)

	got, err := s.GetOrder(context.Background(), o.ID)
	require.NoError(t, err)
	assert.True(t, got.Commission.Decimal.Equal(dec(1200)))
	require.NotNil(t, got.DeliveredAt)
	assert.True(t, got.DeliveredAt.Equal(deliveredAt))
	require.NotNil(t, got.DeliveryPersonID)
	assert.Equal(t, courier, *got.DeliveryPersonID)

	_, err = s.SetOrderCommissionRate(context.Background(), o.ID, decimal.NewNullDecimal(dec(5)))
	assert.ErrorIs(t, err, ErrOrderDelivered)

	sum, err := s.SumTransactions(context.Background(), TransactionFilter{
		Type:       earnings.TransactionDeliveryFee,
		Status:     earnings.TransactionCompleted,
		ToUserType: earnings.RecipientDeliveryPerson,
		ToUserID:   courier,
	})
	require.NoError(t, err)
	assert.True(t, sum.Total.Equal(dec(350)))
	assert.Equal(t, int64(1), sum.Count)
}

func TestDeliveredOrdersAndCounts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	r := seedRestaurant(t, s, decimal.NullDecimal{})
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	a := seedOrder(t, s, r.ID, day.Add(9*time.Hour))
	b := seedOrder(t, s, r.ID, day.Add(10*time.Hour))
	c := seedOrder(t, s, r.ID, day.Add(11*time.Hour))

	flow := []earnings.OrderStatus{earnings.OrderAccepted, earnings.OrderPreparing, earnings.OrderReady, earnings.OrderDelivering}
	advance(t, s, a.ID, flow...)
	for _, st := range flow {
		_, _, err := s.TransitionOrder(ctx, b.ID, st, day, nil)
		require.NoError(t, err)
	}
	_, _, err := s.TransitionOrder(ctx, a.ID, earnings.OrderDelivered, day.Add(12*time.Hour), nil)
	require.NoError(t, err)
	_, _, err = s.TransitionOrder(ctx, b.ID, earnings.OrderDelivered, day.Add(36*time.Hour), nil)
	require.NoError(t, err)
	_, _, err = s.TransitionOrder(ctx, c.ID, earnings.OrderCancelled, day, nil)
	require.NoError(t, err)

	delivered, err := s.DeliveredOrders(ctx, day, day.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, delivered, 1)
	assert.Equal(t, a.ID, delivered[0].ID)

	cancelled, err := s.CountOrders(ctx, earnings.OrderCancelled, day, day.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), cancelled)
}

func TestListOrdersFiltersAndPaginates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	r1 := seedRestaurant(t, s, decimal.NullDecimal{})
	r2 := seedRestaurant(t, s, decimal.NullDecimal{})
	base := time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		seedOrder(t, s, r1.ID, base.Add(time.Duration(i)*time.Hour))
	}
	seedOrder(t, s, r2.ID, base)

	orders, total, err := s.ListOrders(ctx, OrderFilter{RestaurantID: r1.ID, Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, orders, 2)
	assert.True(t, orders[0].PlacedAt.After(orders[1].PlacedAt))

	from := base.Add(3 * time.Hour)
	orders, total, err = s.ListOrders(ctx, OrderFilter{From: &from})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, orders, 2)

	_, total, err = s.ListOrders(ctx, OrderFilter{Status: earnings.OrderDelivered})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestRestaurantCommissionRate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	r := seedRestaurant(t, s, decimal.NullDecimal{})

	updated, err := s.SetRestaurantCommissionRate(ctx, r.ID, decimal.NewNullDecimal(dec(18)))
	require.NoError(t, err)
	assert.True(t, updated.CommissionRate.Decimal.Equal(dec(18)))

	got, err := s.GetRestaurant(ctx, r.ID)
	require.NoError(t, err)
	assert.True(t, got.CommissionRate.Valid)

	_, err = s.SetRestaurantCommissionRate(ctx, r.ID, decimal.NullDecimal{})
	require.NoError(t, err)
	got, err = s.GetRestaurant(ctx, r.ID)
	require.NoError(t, err)
	assert.False(t, got.CommissionRate.Valid)

	_, err = s.SetRestaurantCommissionRate(ctx, 404, decimal.NullDecimal{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSumTransactionsByPeriod(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, amount := range []int64{1000, 2500} {
		require.NoError(t, s.CreateTransaction(ctx, &models.Transaction{
			ToUserType: earnings.RecipientVendor,
			Type:       earnings.TransactionExpense,
			Amount:     dec(amount),
			Status:     earnings.TransactionCompleted,
		}))
	}
	require.NoError(t, s.CreateTransaction(ctx, &models.Transaction{
		ToUserType: earnings.RecipientPlatform,
		Type:       earnings.TransactionCommission,
		Amount:     dec(999),
		Status:     earnings.TransactionCompleted,
	}))

	now := time.Now()
	sum, err := s.SumTransactions(ctx, TransactionFilter{
		Type: earnings.TransactionExpense,
		From: now.Add(-time.Hour),
		To:   now.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.True(t, sum.Total.Equal(dec(3500)), "got %s", sum.Total)
	assert.Equal(t, int64(2), sum.Count)

	empty, err := s.SumTransactions(ctx, TransactionFilter{Type: earnings.TransactionRefund})
	require.NoError(t, err)
	assert.True(t, empty.Total.IsZero())

	none, err := s.SumTransactions(ctx, TransactionFilter{Type: earnings.TransactionCommission, OrderIDs: []int64{}})
	require.NoError(t, err)
	assert.True(t, none.Total.IsZero())
}

func TestStoreWithoutTransactionsTable(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := database.NewConnection(database.DriverSQLite, dsn)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Restaurant{}, &models.Order{}))
	s := New(db)

	sum, err := s.SumTransactions(context.Background(), TransactionFilter{Type: earnings.TransactionExpense})
	require.NoError(t, err)
	assert.True(t, sum.Total.IsZero())

	err = s.CreateTransaction(context.Background(), &models.Transaction{Type: earnings.TransactionExpense})
	assert.ErrorIs(t, err, ErrSchemaMissing)

	require.NoError(t, database.MigrateEarningsDB(db))
	assert.True(t, s.RefreshSchema().Ready())
}

func TestDeliverySharesByOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	orderA, orderB := int64(1), int64(2)
	courier := int64(3)

	for _, tx := range []models.Transaction{
		{OrderID: &orderA, ToUserType: earnings.RecipientDeliveryPerson, ToUserID: &courier, Type: earnings.TransactionDeliveryFee, Amount: dec(616), Status: earnings.TransactionCompleted},
		{OrderID: &orderA, ToUserType: earnings.RecipientPlatform, Type: earnings.TransactionCommission, Amount: dec(1200), Status: earnings.TransactionCompleted},
		{OrderID: &orderB, ToUserType: earnings.RecipientDeliveryPerson, ToUserID: &courier, Type: earnings.TransactionDeliveryFee, Amount: dec(350), Status: earnings.TransactionFailed},
	} {
		tx := tx
		require.NoError(t, s.CreateTransaction(ctx, &tx))
	}

	shares, err := s.DeliverySharesByOrder(ctx, []int64{orderA, orderB})
	require.NoError(t, err)
	require.Len(t, shares, 1)
	assert.True(t, shares[orderA].Equal(dec(616)))

	empty, err := s.DeliverySharesByOrder(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRefreshSchemaConcurrentWithReads(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.True(t, s.RefreshSchema().Ready())
		}()
		go func() {
			defer wg.Done()
			_, err := s.SumTransactions(ctx, TransactionFilter{Type: earnings.TransactionExpense})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.True(t, s.Schema().HasTable(models.TableTransactions))
}

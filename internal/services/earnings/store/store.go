package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"baibebalo-system/internal/database"
	"baibebalo-system/internal/database/models"
	"baibebalo-system/internal/earnings"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrOrderDelivered    = errors.New("order already delivered")
	ErrSchemaMissing     = errors.New("required table is missing")
)

// Store is the data-access layer of the earnings service. It only moves rows;
// every amount it persists is computed by the caller.
type Store struct {
	db *gorm.DB

	mu     sync.RWMutex
	schema database.SchemaStatus
}

func New(db *gorm.DB) *Store {
	return &Store{db: db, schema: database.CheckSchema(db)}
}

func (s *Store) Schema() database.SchemaStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.schema
}

// RefreshSchema re-reads the schema, e.g. after a migration ran at runtime.
func (s *Store) RefreshSchema() database.SchemaStatus {
	status := database.CheckSchema(s.db)
	s.mu.Lock()
	s.schema = status
	s.mu.Unlock()
	return status
}

func (s *Store) hasTable(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.schema.HasTable(name)
}

func notFound(err error, what string, id int64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}
	return fmt.Errorf("failed to get %s %d: %w", what, id, err)
}

// --- Restaurants ---

func (s *Store) CreateRestaurant(ctx context.Context, r *models.Restaurant) error {
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return fmt.Errorf("failed to create restaurant: %w", err)
	}
	return nil
}

func (s *Store) GetRestaurant(ctx context.Context, id int64) (*models.Restaurant, error) {
	var r models.Restaurant
	if err := s.db.WithContext(ctx).First(&r, id).Error; err != nil {
		return nil, notFound(err, "restaurant", id)
	}
	return &r, nil
}

// SetRestaurantCommissionRate stores rate, or clears it when rate is null. Orders
// already carrying a snapshot are unaffected.
func (s *Store) SetRestaurantCommissionRate(ctx context.Context, id int64, rate decimal.NullDecimal) (*models.Restaurant, error) {
	r, err := s.GetRestaurant(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(r).Update("commission_rate", rate).Error; err != nil {
		return nil, fmt.Errorf("failed to update restaurant %d commission rate: %w", id, err)
	}
	r.CommissionRate = rate
	return r, nil
}

// --- Orders ---

func (s *Store) CreateOrder(ctx context.Context, o *models.Order) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Restaurant{}).Where("id = ?", o.RestaurantID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check restaurant %d: %w", o.RestaurantID, err)
		}
		if count == 0 {
			return fmt.Errorf("restaurant %d: %w", o.RestaurantID, ErrNotFound)
		}
		if o.Status == "" {
			o.Status = earnings.OrderNew
		}
		o.PlacedAt = o.PlacedAt.UTC()
		if err := tx.Omit("Restaurant").Create(o).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		return nil
	})
}

func (s *Store) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	var o models.Order
	if err := s.db.WithContext(ctx).Preload("Restaurant").First(&o, id).Error; err != nil {
		return nil, notFound(err, "order", id)
	}
	return &o, nil
}

// SetOrderCommissionRate sets the order-level rate. Delivered orders keep their
// snapshot and are rejected.
func (s *Store) SetOrderCommissionRate(ctx context.Context, id int64, rate decimal.NullDecimal) (*models.Order, error) {
	o, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Status == earnings.OrderDelivered {
		return nil, fmt.Errorf("order %d: %w", id, ErrOrderDelivered)
	}
	res := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status <> ?", id, earnings.OrderDelivered).
		Update("commission_rate", rate)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update order %d commission rate: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("order %d: %w", id, ErrOrderDelivered)
	}
	o.CommissionRate = rate
	return o, nil
}

type OrderFilter struct {
	RestaurantID int64
	Status       earnings.OrderStatus
	From         *time.Time
	To           *time.Time
	Page         int
	PageSize     int
}

func (f OrderFilter) limits() (limit, offset int) {
	page, limit := f.Page, f.PageSize
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return limit, (page - 1) * limit
}

// ListOrders filters on placed_at and returns the page plus the total match count.
func (s *Store) ListOrders(ctx context.Context, f OrderFilter) ([]models.Order, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Order{})
	if f.RestaurantID > 0 {
		query = query.Where("restaurant_id = ?", f.RestaurantID)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.From != nil {
		query = query.Where("placed_at >= ?", f.From.UTC())
	}
	if f.To != nil {
		query = query.Where("placed_at < ?", f.To.UTC())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	limit, offset := f.limits()
	var orders []models.Order
	err := query.
		Preload("Restaurant").
		Order("placed_at desc, id desc").
		Offset(offset).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, total, nil
}

// Settler fills the financial snapshot of an order about to be delivered and returns
// the transactions to record with it. It runs inside the status transaction.
type Settler func(o *models.Order) ([]models.Transaction, error)

// TransitionOrder moves an order one step along its lifecycle. The UPDATE guards on
// the previous status so concurrent transitions cannot both succeed.
func (s *Store) TransitionOrder(ctx context.Context, id int64, next earnings.OrderStatus, at time.Time, settle Settler) (*models.Order, []models.Transaction, error) {
	var (
		order   models.Order
		created []models.Transaction
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Preload("Restaurant")
		if tx.Dialector.Name() != database.DriverSQLite {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.First(&order, id).Error; err != nil {
			return notFound(err, "order", id)
		}

		prev := order.Status
		if !prev.CanTransitionTo(next) {
			return fmt.Errorf("order %d %s -> %s: %w", id, prev, next, ErrInvalidTransition)
		}

		updates := map[string]interface{}{"status": next}
		if next == earnings.OrderDelivered {
			if settle != nil {
				txs, err := settle(&order)
				if err != nil {
					return err
				}
				created = txs
			}
			deliveredAt := at.UTC()
			order.DeliveredAt = &deliveredAt
			updates["delivered_at"] = deliveredAt
			updates["commission"] = order.Commission
			updates["commission_rate"] = order.CommissionRate
			updates["delivery_person_id"] = order.DeliveryPersonID
		}

		res := tx.Model(&models.Order{}).Where("id = ? AND status = ?", id, prev).Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("failed to update order %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("order %d changed concurrently: %w", id, ErrInvalidTransition)
		}
		order.Status = next

		for i := range created {
			if created[i].Reference == "" {
				created[i].Reference = uuid.NewString()
			}
		}
		if len(created) > 0 {
			if err := tx.Create(&created).Error; err != nil {
				return fmt.Errorf("failed to record transactions for order %d: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &order, created, nil
}

// DeliveredOrders returns the orders delivered in [from, to) with their restaurant.
func (s *Store) DeliveredOrders(ctx context.Context, from, to time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Restaurant").
		Where("status = ? AND delivered_at >= ? AND delivered_at < ?", earnings.OrderDelivered, from.UTC(), to.UTC()).
		Order("id").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get delivered orders: %w", err)
	}
	return orders, nil
}

// CountOrders counts orders in a status placed in [from, to).
func (s *Store) CountOrders(ctx context.Context, status earnings.OrderStatus, from, to time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("status = ? AND placed_at >= ? AND placed_at < ?", status, from.UTC(), to.UTC()).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count %s orders: %w", status, err)
	}
	return count, nil
}

// --- Transactions ---

func (s *Store) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	if !s.hasTable(models.TableTransactions) {
		return fmt.Errorf("%s: %w", models.TableTransactions, ErrSchemaMissing)
	}
	if t.Reference == "" {
		t.Reference = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

type TransactionFilter struct {
	Type       earnings.TransactionType
	Status     earnings.TransactionStatus
	ToUserType earnings.RecipientType
	ToUserID   int64
	OrderIDs   []int64
	From, To   time.Time
}

type TransactionSum struct {
	Total decimal.Decimal
	Count int64
}

// SumTransactions totals matching transactions created in [From, To). A database
// without the transactions table sums to zero.
func (s *Store) SumTransactions(ctx context.Context, f TransactionFilter) (TransactionSum, error) {
	if !s.hasTable(models.TableTransactions) {
		return TransactionSum{Total: decimal.Zero}, nil
	}

	query := s.db.WithContext(ctx).Model(&models.Transaction{}).Where("type = ?", f.Type)
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.ToUserType != "" {
		query = query.Where("to_user_type = ?", f.ToUserType)
	}
	if f.ToUserID > 0 {
		query = query.Where("to_user_id = ?", f.ToUserID)
	}
	if f.OrderIDs != nil {
		if len(f.OrderIDs) == 0 {
			return TransactionSum{Total: decimal.Zero}, nil
		}
		query = query.Where("order_id IN ?", f.OrderIDs)
	} else {
		if !f.From.IsZero() {
			query = query.Where("created_at >= ?", f.From.UTC())
		}
		if !f.To.IsZero() {
			query = query.Where("created_at < ?", f.To.UTC())
		}
	}

	var row struct {
		Total decimal.NullDecimal
		Count int64
	}
	if err := query.Select("SUM(amount) AS total, COUNT(*) AS count").Scan(&row).Error; err != nil {
		return TransactionSum{}, fmt.Errorf("failed to sum %s transactions: %w", f.Type, err)
	}
	total := decimal.Zero
	if row.Total.Valid {
		total = row.Total.Decimal
	}
	return TransactionSum{Total: total, Count: row.Count}, nil
}

// DeliverySharesByOrder returns the completed courier payout recorded for each of the
// given orders. Orders without a recorded payout are absent from the map.
func (s *Store) DeliverySharesByOrder(ctx context.Context, orderIDs []int64) (map[int64]decimal.Decimal, error) {
	shares := make(map[int64]decimal.Decimal, len(orderIDs))
	if len(orderIDs) == 0 || !s.hasTable(models.TableTransactions) {
		return shares, nil
	}

	var rows []struct {
		OrderID int64
		Total   decimal.NullDecimal
	}
	err := s.db.WithContext(ctx).Model(&models.Transaction{}).
		Select("order_id, SUM(amount) AS total").
		Where("type = ? AND status = ? AND to_user_type = ?",
			earnings.TransactionDeliveryFee, earnings.TransactionCompleted, earnings.RecipientDeliveryPerson).
		Where("order_id IN ?", orderIDs).
		Group("order_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum delivery shares: %w", err)
	}
	for _, r := range rows {
		if r.Total.Valid {
			shares[r.OrderID] = r.Total.Decimal
		}
	}
	return shares, nil
}

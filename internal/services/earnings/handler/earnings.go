package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"

	"baibebalo-system/internal/database/models"
	"baibebalo-system/internal/earnings"
	proto "baibebalo-system/internal/rpc/earningsrpc"
	"baibebalo-system/internal/services/earnings/store"
)

const (
	OVERVIEW_CACHE_PREFIX     = "earnings_overview:"
	OVERVIEW_CACHE_GENERATION = "earnings_overview_generation"
	OVERVIEW_CACHE_TTL        = 5 * time.Minute
	dateLayout                = "2006-01-02"
)

type EarningsHandler struct {
	store *store.Store
	redis *redis.Client
	cfg   earnings.BusinessConfig
	now   func() time.Time
}

// NewEarningsHandler wires the handler. A nil redis client disables caching.
func NewEarningsHandler(db *gorm.DB, redisClient *redis.Client, cfg earnings.BusinessConfig) *EarningsHandler {
	return &EarningsHandler{
		store: store.New(db),
		redis: redisClient,
		cfg:   cfg,
		now:   time.Now,
	}
}

// --- Helpers ---

func storeError(err error) error {
	var rateErr *earnings.InvalidRateError
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.As(err, &rateErr):
		return status.Error(codes.InvalidArgument, rateErr.Error())
	case errors.Is(err, store.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, store.ErrInvalidTransition), errors.Is(err, store.ErrOrderDelivered):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, store.ErrSchemaMissing):
		return status.Error(codes.Unavailable, err.Error())
	default:
		return status.Errorf(codes.Internal, "%v", err)
	}
}

func nullFromPtr(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

func ptrFromNull(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

// parsePeriod turns inclusive calendar days into [from, to) in the business timezone.
func (h *EarningsHandler) parsePeriod(p proto.Period) (time.Time, time.Time, error) {
	if p.StartDate == "" || p.EndDate == "" {
		return time.Time{}, time.Time{}, status.Errorf(codes.InvalidArgument, "start_date and end_date are required")
	}
	loc := h.cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	from, err := time.ParseInLocation(dateLayout, p.StartDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, status.Errorf(codes.InvalidArgument, "invalid start_date %q", p.StartDate)
	}
	end, err := time.ParseInLocation(dateLayout, p.EndDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, status.Errorf(codes.InvalidArgument, "invalid end_date %q", p.EndDate)
	}
	if end.Before(from) {
		return time.Time{}, time.Time{}, status.Errorf(codes.InvalidArgument, "end_date is before start_date")
	}
	return from, end.AddDate(0, 0, 1), nil
}

// --- Conversion Helpers ---

func orderToProto(o models.Order) proto.Order {
	return proto.Order{
		ID:                o.ID,
		RestaurantID:      o.RestaurantID,
		DeliveryPersonID:  o.DeliveryPersonID,
		Subtotal:          o.Subtotal,
		BaseDeliveryFee:   o.BaseDeliveryFee,
		DistanceKm:        o.DistanceKm,
		LongDistanceBonus: o.LongDistanceBonus,
		PeakHourBonus:     o.PeakHourBonus,
		WeekendBonus:      o.WeekendBonus,
		DeliveryFee:       o.DeliveryFee,
		Commission:        ptrFromNull(o.Commission),
		CommissionRate:    ptrFromNull(o.CommissionRate),
		Total:             o.Total,
		Status:            o.Status.String(),
		PlacedAt:          o.PlacedAt,
		DeliveredAt:       o.DeliveredAt,
	}
}

func transactionToProto(t models.Transaction) proto.Transaction {
	return proto.Transaction{
		ID:          t.ID,
		Reference:   t.Reference,
		OrderID:     t.OrderID,
		ToUserType:  t.ToUserType.String(),
		ToUserID:    t.ToUserID,
		Type:        t.Type.String(),
		Amount:      t.Amount,
		Status:      t.Status.String(),
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
	}
}

func (h *EarningsHandler) resolve(o models.Order) earnings.Commission {
	return earnings.ResolveCommission(o.Terms(), o.RestaurantRate(), h.cfg.DefaultCommissionRate)
}

// --- Cache ---

// Cached overviews live under the generation current when they were computed.
// Invalidation bumps the generation, so an overview computed before it lands on a
// key nobody reads.
func overviewCacheKey(gen int64, p proto.Period) string {
	return fmt.Sprintf("%s%d:%s:%s", OVERVIEW_CACHE_PREFIX, gen, p.StartDate, p.EndDate)
}

func (h *EarningsHandler) overviewGeneration(ctx context.Context) (int64, bool) {
	if h.redis == nil {
		return 0, false
	}
	gen, err := h.redis.Get(ctx, OVERVIEW_CACHE_GENERATION).Int64()
	if err == redis.Nil {
		return 0, true
	}
	if err != nil {
		log.Printf("Redis error on GET %s: %v. Falling back to DB.", OVERVIEW_CACHE_GENERATION, err)
		return 0, false
	}
	return gen, true
}

func (h *EarningsHandler) InvalidateOverviewCaches(ctx context.Context) {
	if h.redis == nil {
		return
	}
	if err := h.redis.Incr(ctx, OVERVIEW_CACHE_GENERATION).Err(); err != nil {
		log.Printf("Redis error on INCR %s: %v", OVERVIEW_CACHE_GENERATION, err)
	}
	iter := h.redis.Scan(ctx, 0, OVERVIEW_CACHE_PREFIX+"*", 100).Iterator()
	for iter.Next(ctx) {
		_ = h.redis.Del(ctx, iter.Val()).Err()
	}
	if err := iter.Err(); err != nil {
		log.Printf("Redis error while invalidating overview caches: %v", err)
	}
}

func (h *EarningsHandler) cachedOverview(ctx context.Context, key string) (*earnings.FinancialOverview, bool) {
	val, err := h.redis.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Redis error on GET %s: %v. Falling back to DB.", key, err)
		}
		return nil, false
	}
	var o earnings.FinancialOverview
	if err := json.Unmarshal([]byte(val), &o); err != nil {
		return nil, false
	}
	return &o, true
}

func (h *EarningsHandler) cacheOverview(ctx context.Context, key string, o earnings.FinancialOverview) {
	data, err := json.Marshal(o)
	if err != nil {
		return
	}
	if err := h.redis.Set(ctx, key, data, OVERVIEW_CACHE_TTL).Err(); err != nil {
		log.Printf("Failed to set cache for key %s: %v", key, err)
	}
}

package handler

import (
	"context"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"baibebalo-system/internal/database/models"
	"baibebalo-system/internal/earnings"
	proto "baibebalo-system/internal/rpc/earningsrpc"
	"baibebalo-system/internal/services/earnings/store"
)

func invalid(err error) error {
	if err == nil {
		return nil
	}
	return status.Error(codes.InvalidArgument, err.Error())
}

func (h *EarningsHandler) QuoteDeliveryFee(ctx context.Context, req *proto.QuoteDeliveryFeeRequest) (*proto.QuoteDeliveryFeeResponse, error) {
	if err := earnings.ValidateAmount("base_delivery_fee", req.BaseDeliveryFee); err != nil {
		return nil, invalid(err)
	}

	at := h.now()
	if req.OrderTime != nil {
		at = *req.OrderTime
	}

	bonuses := earnings.ComputeBonuses(req.BaseDeliveryFee, req.DistanceKm, at, h.cfg)
	return &proto.QuoteDeliveryFeeResponse{
		Bonuses: bonuses,
		Split:   earnings.SplitDeliveryFee(bonuses.FinalFee, h.cfg),
	}, nil
}

// CreateOrder prices delivery once, at creation. The stored delivery fee already
// includes every bonus.
func (h *EarningsHandler) CreateOrder(ctx context.Context, req *proto.CreateOrderRequest) (*proto.CreateOrderResponse, error) {
	if req.RestaurantID <= 0 {
		return nil, status.Errorf(codes.InvalidArgument, "Restaurant ID is required")
	}
	if err := earnings.ValidateAmount("subtotal", req.Subtotal); err != nil {
		return nil, invalid(err)
	}
	if err := earnings.ValidateAmount("base_delivery_fee", req.BaseDeliveryFee); err != nil {
		return nil, invalid(err)
	}
	if req.CommissionRate != nil {
		if err := earnings.ValidateRate("commission_rate", *req.CommissionRate); err != nil {
			return nil, invalid(err)
		}
	}

	placedAt := h.now()
	if req.PlacedAt != nil {
		placedAt = *req.PlacedAt
	}

	bonuses := earnings.ComputeBonuses(req.BaseDeliveryFee, req.DistanceKm, placedAt, h.cfg)
	order := models.Order{
		RestaurantID:      req.RestaurantID,
		DeliveryPersonID:  req.DeliveryPersonID,
		Subtotal:          req.Subtotal,
		BaseDeliveryFee:   req.BaseDeliveryFee,
		DistanceKm:        req.DistanceKm,
		LongDistanceBonus: bonuses.LongDistance,
		PeakHourBonus:     bonuses.PeakHour,
		WeekendBonus:      bonuses.Weekend,
		DeliveryFee:       bonuses.FinalFee,
		Total:             req.Subtotal.Add(bonuses.FinalFee),
		CommissionRate:    nullFromPtr(req.CommissionRate),
		Status:            earnings.OrderNew,
		PlacedAt:          placedAt,
	}
	if err := h.store.CreateOrder(ctx, &order); err != nil {
		return nil, storeError(err)
	}

	return &proto.CreateOrderResponse{
		Order:   orderToProto(order),
		Bonuses: bonuses,
	}, nil
}

// settleDelivery snapshots the commission and records the courier payout and the
// platform commission for an order being delivered.
func (h *EarningsHandler) settleDelivery(courierID *int64) store.Settler {
	return func(o *models.Order) ([]models.Transaction, error) {
		if courierID != nil {
			o.DeliveryPersonID = courierID
		}
		if o.DeliveryPersonID == nil {
			return nil, status.Errorf(codes.FailedPrecondition, "order %d has no delivery person", o.ID)
		}

		c := h.resolve(*o)
		o.Commission = decimal.NewNullDecimal(c.Amount.Round(2))
		o.CommissionRate = decimal.NewNullDecimal(c.Rate)

		now := h.now().UTC()
		orderID := o.ID
		return []models.Transaction{
			{
				OrderID:     &orderID,
				ToUserType:  earnings.RecipientDeliveryPerson,
				ToUserID:    o.DeliveryPersonID,
				Type:        earnings.TransactionDeliveryFee,
				Amount:      earnings.DeliveryPersonShare(o.DeliveryFee, h.cfg),
				Status:      earnings.TransactionCompleted,
				CreatedAt:   now,
				CompletedAt: &now,
			},
			{
				OrderID:     &orderID,
				ToUserType:  earnings.RecipientPlatform,
				Type:        earnings.TransactionCommission,
				Amount:      o.Commission.Decimal,
				Status:      earnings.TransactionCompleted,
				CreatedAt:   now,
				CompletedAt: &now,
			},
		}, nil
	}
}

func (h *EarningsHandler) UpdateOrderStatus(ctx context.Context, req *proto.UpdateOrderStatusRequest) (*proto.UpdateOrderStatusResponse, error) {
	if req.OrderID <= 0 {
		return nil, status.Errorf(codes.InvalidArgument, "Order ID is required")
	}
	next, err := earnings.ParseOrderStatus(req.Status)
	if err != nil {
		return nil, invalid(err)
	}

	var settle store.Settler
	if next == earnings.OrderDelivered {
		settle = h.settleDelivery(req.DeliveryPersonID)
	}

	order, txs, err := h.store.TransitionOrder(ctx, req.OrderID, next, h.now(), settle)
	if err != nil {
		return nil, storeError(err)
	}

	if next == earnings.OrderDelivered {
		h.InvalidateOverviewCaches(ctx)
	}

	resp := &proto.UpdateOrderStatusResponse{Order: orderToProto(*order)}
	for _, t := range txs {
		resp.Transactions = append(resp.Transactions, transactionToProto(t))
	}
	return resp, nil
}

func (h *EarningsHandler) GetOrderCommission(ctx context.Context, req *proto.GetOrderCommissionRequest) (*proto.GetOrderCommissionResponse, error) {
	if req.OrderID <= 0 {
		return nil, status.Errorf(codes.InvalidArgument, "Order ID is required")
	}
	order, err := h.store.GetOrder(ctx, req.OrderID)
	if err != nil {
		return nil, storeError(err)
	}
	return &proto.GetOrderCommissionResponse{
		OrderID:    order.ID,
		Commission: h.resolve(*order),
	}, nil
}

func (h *EarningsHandler) ListOrderCommissions(ctx context.Context, req *proto.ListOrderCommissionsRequest) (*proto.ListOrderCommissionsResponse, error) {
	filter := store.OrderFilter{
		RestaurantID: req.RestaurantID,
		Page:         int(req.Page),
		PageSize:     int(req.PageSize),
	}
	if req.Status != "" {
		st, err := earnings.ParseOrderStatus(req.Status)
		if err != nil {
			return nil, invalid(err)
		}
		filter.Status = st
	}
	if req.StartDate != "" || req.EndDate != "" {
		from, to, err := h.parsePeriod(proto.Period{StartDate: req.StartDate, EndDate: req.EndDate})
		if err != nil {
			return nil, err
		}
		filter.From, filter.To = &from, &to
	}

	orders, total, err := h.store.ListOrders(ctx, filter)
	if err != nil {
		return nil, storeError(err)
	}

	resp := &proto.ListOrderCommissionsResponse{
		Items:               make([]proto.OrderCommission, 0, len(orders)),
		PageCommissionTotal: decimal.Zero,
	}
	for _, o := range orders {
		c := h.resolve(o)
		resp.PageCommissionTotal = resp.PageCommissionTotal.Add(c.Amount)
		resp.Items = append(resp.Items, proto.OrderCommission{Order: orderToProto(o), Commission: c})
	}

	page, size := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	if size > 100 {
		size = 100
	}
	resp.Pagination = proto.Pagination{
		Page:       int32(page),
		PageSize:   int32(size),
		TotalCount: total,
	}
	if int64(page*size) < total {
		resp.Pagination.NextPage = int32(page + 1)
	}
	return resp, nil
}

func (h *EarningsHandler) SetRestaurantCommissionRate(ctx context.Context, req *proto.SetRestaurantCommissionRateRequest) (*proto.SetRestaurantCommissionRateResponse, error) {
	if req.RestaurantID <= 0 {
		return nil, status.Errorf(codes.InvalidArgument, "Restaurant ID is required")
	}
	if req.CommissionRate != nil {
		if err := earnings.ValidateRate("commission_rate", *req.CommissionRate); err != nil {
			return nil, invalid(err)
		}
	}

	r, err := h.store.SetRestaurantCommissionRate(ctx, req.RestaurantID, nullFromPtr(req.CommissionRate))
	if err != nil {
		return nil, storeError(err)
	}
	h.InvalidateOverviewCaches(ctx)

	return &proto.SetRestaurantCommissionRateResponse{
		RestaurantID:   r.ID,
		CommissionRate: ptrFromNull(r.CommissionRate),
	}, nil
}

func (h *EarningsHandler) SetOrderCommissionRate(ctx context.Context, req *proto.SetOrderCommissionRateRequest) (*proto.SetOrderCommissionRateResponse, error) {
	if req.OrderID <= 0 {
		return nil, status.Errorf(codes.InvalidArgument, "Order ID is required")
	}
	if req.CommissionRate != nil {
		if err := earnings.ValidateRate("commission_rate", *req.CommissionRate); err != nil {
			return nil, invalid(err)
		}
	}

	o, err := h.store.SetOrderCommissionRate(ctx, req.OrderID, nullFromPtr(req.CommissionRate))
	if err != nil {
		return nil, storeError(err)
	}

	return &proto.SetOrderCommissionRateResponse{
		Order:      orderToProto(*o),
		Commission: h.resolve(*o),
	}, nil
}

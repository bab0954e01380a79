package handler

import (
	"context"
	"log"
	"strings"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"baibebalo-system/internal/database/models"
	"baibebalo-system/internal/earnings"
	proto "baibebalo-system/internal/rpc/earningsrpc"
	"baibebalo-system/internal/services/earnings/store"
)

func (h *EarningsHandler) RecordExpense(ctx context.Context, req *proto.RecordExpenseRequest) (*proto.RecordExpenseResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, status.Errorf(codes.InvalidArgument, "Expense amount must be positive")
	}
	desc := strings.TrimSpace(req.Description)
	if desc == "" {
		return nil, status.Errorf(codes.InvalidArgument, "Expense description is required")
	}

	now := h.now().UTC()
	t := models.Transaction{
		ToUserType:  earnings.RecipientVendor,
		ToUserID:    req.VendorID,
		Type:        earnings.TransactionExpense,
		Amount:      req.Amount,
		Status:      earnings.TransactionCompleted,
		Description: &desc,
		CreatedAt:   now,
		CompletedAt: &now,
	}
	if err := h.store.CreateTransaction(ctx, &t); err != nil {
		return nil, storeError(err)
	}
	h.InvalidateOverviewCaches(ctx)

	return &proto.RecordExpenseResponse{Transaction: transactionToProto(t)}, nil
}

// GetFinancialOverview aggregates the orders delivered in the period. Platform delivery
// revenue is reconciled against the courier payouts recorded for those orders.
func (h *EarningsHandler) GetFinancialOverview(ctx context.Context, req *proto.GetFinancialOverviewRequest) (*proto.GetFinancialOverviewResponse, error) {
	from, to, err := h.parsePeriod(req.Period)
	if err != nil {
		return nil, err
	}

	gen, useCache := h.overviewGeneration(ctx)
	key := overviewCacheKey(gen, req.Period)
	if useCache {
		if o, ok := h.cachedOverview(ctx, key); ok {
			return &proto.GetFinancialOverviewResponse{Period: req.Period, Overview: *o, Cached: true}, nil
		}
	}

	orders, err := h.store.DeliveredOrders(ctx, from, to)
	if err != nil {
		return nil, storeError(err)
	}

	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	recorded, err := h.store.DeliverySharesByOrder(ctx, ids)
	if err != nil {
		return nil, storeError(err)
	}

	in := earnings.OverviewInput{
		CommissionTotal:        decimal.Zero,
		DeliveryFeesTotal:      decimal.Zero,
		CompletedOrdersRevenue: decimal.Zero,
		CompletedOrdersCount:   int64(len(orders)),
	}
	shares := decimal.Zero
	for _, o := range orders {
		in.CommissionTotal = in.CommissionTotal.Add(h.resolve(o).Amount)
		in.DeliveryFeesTotal = in.DeliveryFeesTotal.Add(o.DeliveryFee)
		in.CompletedOrdersRevenue = in.CompletedOrdersRevenue.Add(o.Total)

		share, ok := recorded[o.ID]
		if !ok {
			share = earnings.DeliveryPersonShare(o.DeliveryFee, h.cfg)
		}
		shares = shares.Add(share)
	}
	in.DeliverySharesTotal = decimal.NewNullDecimal(shares)

	expenses, err := h.store.SumTransactions(ctx, store.TransactionFilter{
		Type:   earnings.TransactionExpense,
		Status: earnings.TransactionCompleted,
		From:   from,
		To:     to,
	})
	if err != nil {
		return nil, storeError(err)
	}
	in.ExpensesTotal = expenses.Total

	in.CancelledOrdersCount, err = h.store.CountOrders(ctx, earnings.OrderCancelled, from, to)
	if err != nil {
		return nil, storeError(err)
	}

	overview := earnings.BuildOverview(in, h.cfg)
	if useCache {
		h.cacheOverview(ctx, key, overview)
	}

	return &proto.GetFinancialOverviewResponse{Period: req.Period, Overview: overview}, nil
}

func (h *EarningsHandler) GetDeliveryPersonEarnings(ctx context.Context, req *proto.GetDeliveryPersonEarningsRequest) (*proto.GetDeliveryPersonEarningsResponse, error) {
	if req.DeliveryPersonID <= 0 {
		return nil, status.Errorf(codes.InvalidArgument, "Delivery person ID is required")
	}
	from, to, err := h.parsePeriod(req.Period)
	if err != nil {
		return nil, err
	}

	sum, err := h.store.SumTransactions(ctx, store.TransactionFilter{
		Type:       earnings.TransactionDeliveryFee,
		Status:     earnings.TransactionCompleted,
		ToUserType: earnings.RecipientDeliveryPerson,
		ToUserID:   req.DeliveryPersonID,
		From:       from,
		To:         to,
	})
	if err != nil {
		return nil, storeError(err)
	}

	return &proto.GetDeliveryPersonEarningsResponse{
		DeliveryPersonID: req.DeliveryPersonID,
		Period:           req.Period,
		TotalEarnings:    sum.Total,
		DeliveriesCount:  sum.Count,
	}, nil
}

func (h *EarningsHandler) GetSchemaStatus(ctx context.Context, req *proto.GetSchemaStatusRequest) (*proto.GetSchemaStatusResponse, error) {
	s := h.store.RefreshSchema()
	if !s.Ready() {
		log.Printf("Schema incomplete: missing columns %v", s.MissingColumns)
	}
	return &proto.GetSchemaStatusResponse{
		Ready:          s.Ready(),
		Tables:         s.Tables,
		MissingColumns: s.MissingColumns,
	}, nil
}

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	proto "baibebalo-system/internal/rpc/earningsrpc"
)

type EarningsHTTPHandler struct {
	earningsClient proto.EarningsServiceClient
}

func NewEarningsHTTPHandler(earningsClient proto.EarningsServiceClient) *EarningsHTTPHandler {
	return &EarningsHTTPHandler{
		earningsClient: earningsClient,
	}
}

// --- Request & Query Structs for Binding ---

type QuoteDeliveryRequest struct {
	BaseDeliveryFee decimal.Decimal `json:"base_delivery_fee"`
	DistanceKm      float64         `json:"distance_km"`
	OrderTime       *time.Time      `json:"order_time"`
}

type CreateOrderRequest struct {
	RestaurantID     int64            `json:"restaurant_id" binding:"required"`
	DeliveryPersonID *int64           `json:"delivery_person_id"`
	Subtotal         decimal.Decimal  `json:"subtotal"`
	BaseDeliveryFee  decimal.Decimal  `json:"base_delivery_fee"`
	DistanceKm       float64          `json:"distance_km"`
	PlacedAt         *time.Time       `json:"placed_at"`
	CommissionRate   *decimal.Decimal `json:"commission_rate"`
}

type UpdateOrderStatusRequest struct {
	Status           string `json:"status" binding:"required"`
	DeliveryPersonID *int64 `json:"delivery_person_id"`
}

type CommissionRateRequest struct {
	CommissionRate *decimal.Decimal `json:"commission_rate"`
}

type RecordExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" binding:"required"`
	VendorID    *int64          `json:"vendor_id"`
}

type ListCommissionsQuery struct {
	Page         int    `form:"page,default=1"`
	PageSize     int    `form:"page_size,default=20"`
	RestaurantID int64  `form:"restaurant_id"`
	Status       string `form:"status"`
	StartDate    string `form:"start_date"`
	EndDate      string `form:"end_date"`
}

type PeriodQuery struct {
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date" binding:"required"`
}

func pathID(c *gin.Context, what string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid "+what+" ID"))
		return 0, false
	}
	return id, true
}

// --- Delivery Pricing ---

func (h *EarningsHTTPHandler) QuoteDelivery(c *gin.Context) {
	var req QuoteDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format: "+err.Error()))
		return
	}

	ctx, cancel := rpcContext(c, 5*time.Second)
	defer cancel()

	resp, err := h.earningsClient.QuoteDeliveryFee(ctx, &proto.QuoteDeliveryFeeRequest{
		BaseDeliveryFee: req.BaseDeliveryFee,
		DistanceKm:      req.DistanceKm,
		OrderTime:       req.OrderTime,
	})
	if err != nil {
		handleGRPCError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse("Delivery fee quoted successfully", resp))
}

// --- Orders ---

func (h *EarningsHTTPHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format: "+err.Error()))
		return
	}

	ctx, cancel := rpcContext(c, 10*time.Second)
	defer cancel()

	resp, err := h.earningsClient.CreateOrder(ctx, &proto.CreateOrderRequest{
		RestaurantID:     req.RestaurantID,
		DeliveryPersonID: req.DeliveryPersonID,
		Subtotal:         req.Subtotal,
		BaseDeliveryFee:  req.BaseDeliveryFee,
		DistanceKm:       req.DistanceKm,
		PlacedAt:         req.PlacedAt,
		CommissionRate:   req.CommissionRate,
	})
	if err != nil {
		handleGRPCError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse("Order created successfully", resp))
}

func (h *EarningsHTTPHandler) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := pathID(c, "order")
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format: "+err.Error()))
		return
	}

	ctx, cancel := rpcContext(c, 10*time.Second)
	defer cancel()

	resp, err := h.earningsClient.UpdateOrderStatus(ctx, &proto.UpdateOrderStatusRequest{
		OrderID:          orderID,
		Status:           req.Status,
		DeliveryPersonID: req.DeliveryPersonID,
	})
	if err != nil {
		handleGRPCError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse("Order status updated successfully", resp))
}

// --- Commissions ---

func (h *EarningsHTTPHandler) GetOrderCommission(c *gin.Context) {
	orderID, ok := pathID(c, "order")
	if !ok {
		return
	}

	ctx, cancel := rpcContext(c, 5*time.Second)
	defer cancel()

	resp, err := h.earningsClient.GetOrderCommission(ctx, &proto.GetOrderCommissionRequest{OrderID: orderID})
	if err != nil {
		handleGRPCError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse("Commission retrieved successfully", resp))
}

func (h *EarningsHTTPHandler) ListOrderCommissions(c *gin.Context) {
	var query ListCommissionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid query parameters: "+err.Error()))
		return
	}

	ctx, cancel := rpcContext(c, 10*time.Second)
	defer cancel()

	resp, err := h.earningsClient.ListOrderCommissions(ctx, &proto.ListOrderCommissionsRequest{
		RestaurantID: query.RestaurantID,
		Status:       query.Status,
		StartDate:    query.StartDate,
		EndDate:      query.EndDate,
		Page:         int32(query.Page),
		PageSize:     int32(query.PageSize),
	})
	if err != nil {
		handleGRPCError(c, err)
		return
	}

	c.JSON(http.StatusOK, successWithMetaResponse("Commissions retrieved successfully", gin.H{
		"items":                 resp.Items,
		"page_commission_total": resp.PageCommissionTotal,
	}, resp.Pagination))
}

func (h *EarningsHTTPHandler) SetRestaurantCommissionRate(c *gin.Context) {
	restaurantID, ok := pathID(c, "restaurant")
	if !ok {
		return
	}

	var req CommissionRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format: "+err.Error()))
		return
	}

	ctx, cancel := rpcContext(c, 5*time.Second)
	defer cancel()

	resp, err := h.earningsClient.SetRestaurantCommissionRate(ctx, &proto.SetRestaurantCommissionRateRequest{
		RestaurantID:   restaurantID,
		CommissionRate: req.CommissionRate,
	})
	if err != nil {
		handleGRPCError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse("Restaurant commission rate updated successfully", resp))
}

func (h *EarningsHTTPHandler) SetOrderCommissionRate(c *gin.Context) {
	orderID, ok := pathID(c, "order")
	if !ok {
		return
	}

	var req CommissionRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format: "+err.Error()))
		return
	}

	ctx, cancel := rpcContext(c, 5*time.Second)
	defer cancel()

	resp, err := h.earningsClient.SetOrderCommissionRate(ctx, &proto.SetOrderCommissionRateRequest{
		OrderID:        orderID,
		CommissionRate: req.CommissionRate,
	})
	if err != nil {
		handleGRPCError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse("Order commission rate updated successfully", resp))
}

// --- Finance ---

func (h *EarningsHTTPHandler) RecordExpense(c *gin.Context) {
	var req RecordExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format: "+err.Error()))
		return
	}

	ctx, cancel := rpcContext(c, 5*time.Second)
	defer cancel()

	resp, err := h.earningsClient.RecordExpense(ctx, &proto.RecordExpenseRequest{
		Amount:      req.Amount,
		Description: req.Description,
		VendorID:    req.VendorID,
	})
	if err != nil {
		handleGRPCError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse("Expense recorded successfully", resp.Transaction))
}

func (h *EarningsHTTPHandler) GetFinancialOverview(c *gin.Context) {
	var query PeriodQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid query parameters: "+err.Error()))
		return
	}

	ctx, cancel := rpcContext(c, 15*time.Second)
	defer cancel()

	resp, err := h.earningsClient.GetFinancialOverview(ctx, &proto.GetFinancialOverviewRequest{
		Period: proto.Period{StartDate: query.StartDate, EndDate: query.EndDate},
	})
	if err != nil {
		handleGRPCError(c, err)
		return
	}

	c.JSON(http.StatusOK, successWithMetaResponse("Financial overview retrieved successfully", resp.Overview, gin.H{
		"period": resp.Period,
		"cached": resp.Cached,
	}))
}

func (h *EarningsHTTPHandler) GetDeliveryPersonEarnings(c *gin.Context) {
	courierID, ok := pathID(c, "delivery person")
	if !ok {
		return
	}

	var query PeriodQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid query parameters: "+err.Error()))
		return
	}

	ctx, cancel := rpcContext(c, 10*time.Second)
	defer cancel()

	resp, err := h.earningsClient.GetDeliveryPersonEarnings(ctx, &proto.GetDeliveryPersonEarningsRequest{
		DeliveryPersonID: courierID,
		Period:           proto.Period{StartDate: query.StartDate, EndDate: query.EndDate},
	})
	if err != nil {
		handleGRPCError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse("Earnings retrieved successfully", resp))
}

// --- Admin ---

func (h *EarningsHTTPHandler) GetSchemaStatus(c *gin.Context) {
	ctx, cancel := rpcContext(c, 5*time.Second)
	defer cancel()

	resp, err := h.earningsClient.GetSchemaStatus(ctx, &proto.GetSchemaStatusRequest{})
	if err != nil {
		handleGRPCError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse("Schema status retrieved successfully", resp))
}

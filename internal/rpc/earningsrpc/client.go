package earningsrpc

import (
	"context"

	"google.golang.org/grpc"

	"baibebalo-system/internal/rpc"
)

type EarningsServiceClient interface {
	QuoteDeliveryFee(ctx context.Context, in *QuoteDeliveryFeeRequest, opts ...grpc.CallOption) (*QuoteDeliveryFeeResponse, error)
	CreateOrder(ctx context.Context, in *CreateOrderRequest, opts ...grpc.CallOption) (*CreateOrderResponse, error)
	UpdateOrderStatus(ctx context.Context, in *UpdateOrderStatusRequest, opts ...grpc.CallOption) (*UpdateOrderStatusResponse, error)
	GetOrderCommission(ctx context.Context, in *GetOrderCommissionRequest, opts ...grpc.CallOption) (*GetOrderCommissionResponse, error)
	ListOrderCommissions(ctx context.Context, in *ListOrderCommissionsRequest, opts ...grpc.CallOption) (*ListOrderCommissionsResponse, error)
	SetRestaurantCommissionRate(ctx context.Context, in *SetRestaurantCommissionRateRequest, opts ...grpc.CallOption) (*SetRestaurantCommissionRateResponse, error)
	SetOrderCommissionRate(ctx context.Context, in *SetOrderCommissionRateRequest, opts ...grpc.CallOption) (*SetOrderCommissionRateResponse, error)
	RecordExpense(ctx context.Context, in *RecordExpenseRequest, opts ...grpc.CallOption) (*RecordExpenseResponse, error)
	GetFinancialOverview(ctx context.Context, in *GetFinancialOverviewRequest, opts ...grpc.CallOption) (*GetFinancialOverviewResponse, error)
	GetDeliveryPersonEarnings(ctx context.Context, in *GetDeliveryPersonEarningsRequest, opts ...grpc.CallOption) (*GetDeliveryPersonEarningsResponse, error)
	GetSchemaStatus(ctx context.Context, in *GetSchemaStatusRequest, opts ...grpc.CallOption) (*GetSchemaStatusResponse, error)
}

type earningsServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewEarningsServiceClient(cc grpc.ClientConnInterface) EarningsServiceClient {
	return &earningsServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in interface{}, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(rpc.CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *earningsServiceClient) QuoteDeliveryFee(ctx context.Context, in *QuoteDeliveryFeeRequest, opts ...grpc.CallOption) (*QuoteDeliveryFeeResponse, error) {
	return invoke[QuoteDeliveryFeeResponse](ctx, c.cc, QuoteDeliveryFeeMethod, in, opts)
}

func (c *earningsServiceClient) CreateOrder(ctx context.Context, in *CreateOrderRequest, opts ...grpc.CallOption) (*CreateOrderResponse, error) {
	return invoke[CreateOrderResponse](ctx, c.cc, CreateOrderMethod, in, opts)
}

func (c *earningsServiceClient) UpdateOrderStatus(ctx context.Context, in *UpdateOrderStatusRequest, opts ...grpc.CallOption) (*UpdateOrderStatusResponse, error) {
	return invoke[UpdateOrderStatusResponse](ctx, c.cc, UpdateOrderStatusMethod, in, opts)
}

func (c *earningsServiceClient) GetOrderCommission(ctx context.Context, in *GetOrderCommissionRequest, opts ...grpc.CallOption) (*GetOrderCommissionResponse, error) {
	return invoke[GetOrderCommissionResponse](ctx, c.cc, GetOrderCommissionMethod, in, opts)
}

func (c *earningsServiceClient) ListOrderCommissions(ctx context.Context, in *ListOrderCommissionsRequest, opts ...grpc.CallOption) (*ListOrderCommissionsResponse, error) {
	return invoke[ListOrderCommissionsResponse](ctx, c.cc, ListOrderCommissionsMethod, in, opts)
}

func (c *earningsServiceClient) SetRestaurantCommissionRate(ctx context.Context, in *SetRestaurantCommissionRateRequest, opts ...grpc.CallOption) (*SetRestaurantCommissionRateResponse, error) {
	return invoke[SetRestaurantCommissionRateResponse](ctx, c.cc, SetRestaurantCommissionRateMethod, in, opts)
}

func (c *earningsServiceClient) SetOrderCommissionRate(ctx context.Context, in *SetOrderCommissionRateRequest, opts ...grpc.CallOption) (*SetOrderCommissionRateResponse, error) {
	return invoke[SetOrderCommissionRateResponse](ctx, c.cc, SetOrderCommissionRateMethod, in, opts)
}

func (c *earningsServiceClient) RecordExpense(ctx context.Context, in *RecordExpenseRequest, opts ...grpc.CallOption) (*RecordExpenseResponse, error) {
	return invoke[RecordExpenseResponse](ctx, c.cc, RecordExpenseMethod, in, opts)
}

func (c *earningsServiceClient) GetFinancialOverview(ctx context.Context, in *GetFinancialOverviewRequest, opts ...grpc.CallOption) (*GetFinancialOverviewResponse, error) {
	return invoke[GetFinancialOverviewResponse](ctx, c.cc, GetFinancialOverviewMethod, in, opts)
}

func (c *earningsServiceClient) GetDeliveryPersonEarnings(ctx context.Context, in *GetDeliveryPersonEarningsRequest, opts ...grpc.CallOption) (*GetDeliveryPersonEarningsResponse, error) {
	return invoke[GetDeliveryPersonEarningsResponse](ctx, c.cc, GetDeliveryPersonEarningsMethod, in, opts)
}

func (c *earningsServiceClient) GetSchemaStatus(ctx context.Context, in *GetSchemaStatusRequest, opts ...grpc.CallOption) (*GetSchemaStatusResponse, error) {
	return invoke[GetSchemaStatusResponse](ctx, c.cc, GetSchemaStatusMethod, in, opts)
}

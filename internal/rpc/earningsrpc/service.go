package earningsrpc

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "earnings.v1.EarningsService"

const (
	QuoteDeliveryFeeMethod            = "QuoteDeliveryFee"
	CreateOrderMethod                 = "CreateOrder"
	UpdateOrderStatusMethod           = "UpdateOrderStatus"
	GetOrderCommissionMethod          = "GetOrderCommission"
	ListOrderCommissionsMethod        = "ListOrderCommissions"
	SetRestaurantCommissionRateMethod = "SetRestaurantCommissionRate"
	SetOrderCommissionRateMethod      = "SetOrderCommissionRate"
	RecordExpenseMethod               = "RecordExpense"
	GetFinancialOverviewMethod        = "GetFinancialOverview"
	GetDeliveryPersonEarningsMethod   = "GetDeliveryPersonEarnings"
	GetSchemaStatusMethod             = "GetSchemaStatus"
)

func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

type EarningsServiceServer interface {
	QuoteDeliveryFee(context.Context, *QuoteDeliveryFeeRequest) (*QuoteDeliveryFeeResponse, error)
	CreateOrder(context.Context, *CreateOrderRequest) (*CreateOrderResponse, error)
	UpdateOrderStatus(context.Context, *UpdateOrderStatusRequest) (*UpdateOrderStatusResponse, error)
	GetOrderCommission(context.Context, *GetOrderCommissionRequest) (*GetOrderCommissionResponse, error)
	ListOrderCommissions(context.Context, *ListOrderCommissionsRequest) (*ListOrderCommissionsResponse, error)
	SetRestaurantCommissionRate(context.Context, *SetRestaurantCommissionRateRequest) (*SetRestaurantCommissionRateResponse, error)
	SetOrderCommissionRate(context.Context, *SetOrderCommissionRateRequest) (*SetOrderCommissionRateResponse, error)
	RecordExpense(context.Context, *RecordExpenseRequest) (*RecordExpenseResponse, error)
	GetFinancialOverview(context.Context, *GetFinancialOverviewRequest) (*GetFinancialOverviewResponse, error)
	GetDeliveryPersonEarnings(context.Context, *GetDeliveryPersonEarningsRequest) (*GetDeliveryPersonEarningsResponse, error)
	GetSchemaStatus(context.Context, *GetSchemaStatusRequest) (*GetSchemaStatusResponse, error)
}

func unary[Req, Resp any](method string, call func(EarningsServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(EarningsServiceServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(s, ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// EarningsServiceDesc is written by hand; messages travel with the JSON codec.
// No file descriptor is registered, so reflection lists the service but cannot
// describe it.
var EarningsServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*EarningsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(QuoteDeliveryFeeMethod, EarningsServiceServer.QuoteDeliveryFee),
		unary(CreateOrderMethod, EarningsServiceServer.CreateOrder),
		unary(UpdateOrderStatusMethod, EarningsServiceServer.UpdateOrderStatus),
		unary(GetOrderCommissionMethod, EarningsServiceServer.GetOrderCommission),
		unary(ListOrderCommissionsMethod, EarningsServiceServer.ListOrderCommissions),
		unary(SetRestaurantCommissionRateMethod, EarningsServiceServer.SetRestaurantCommissionRate),
		unary(SetOrderCommissionRateMethod, EarningsServiceServer.SetOrderCommissionRate),
		unary(RecordExpenseMethod, EarningsServiceServer.RecordExpense),
		unary(GetFinancialOverviewMethod, EarningsServiceServer.GetFinancialOverview),
		unary(GetDeliveryPersonEarningsMethod, EarningsServiceServer.GetDeliveryPersonEarnings),
		unary(GetSchemaStatusMethod, EarningsServiceServer.GetSchemaStatus),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterEarningsServiceServer(s grpc.ServiceRegistrar, srv EarningsServiceServer) {
	s.RegisterService(&EarningsServiceDesc, srv)
}

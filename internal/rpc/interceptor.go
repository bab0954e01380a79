package rpc

import (
	"context"
	"log"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// RequestIDMetadataKey carries the gateway request id to the services.
const RequestIDMetadataKey = "x-request-id"

func requestID(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "-"
	}
	if v := md.Get(RequestIDMetadataKey); len(v) > 0 {
		return v[0]
	}
	return "-"
}

func LoggingUnaryInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	log.Printf("grpc %s request_id=%s code=%s duration=%s", info.FullMethod, requestID(ctx), status.Code(err), time.Since(start))
	return resp, err
}

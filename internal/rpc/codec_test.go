package rpc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
)

func TestJSONCodecRegistered(t *testing.T) {
	assert.NotNil(t, encoding.GetCodec(CodecName))
}

func TestJSONCodecStructs(t *testing.T) {
	type msg struct {
		OrderID int64  `json:"order_id"`
		Status  string `json:"status"`
	}
	c := JSONCodec{}

	b, err := c.Marshal(&msg{OrderID: 9, Status: "delivered"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"order_id":9,"status":"delivered"}`, string(b))

	var out msg
	require.NoError(t, c.Unmarshal(b, &out))
	assert.Equal(t, int64(9), out.OrderID)

	assert.Error(t, c.Unmarshal([]byte("{"), &out))
}

func TestJSONCodecProtoMessages(t *testing.T) {
	c := JSONCodec{}

	b, err := c.Marshal(&healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING})
	require.NoError(t, err)
	assert.Contains(t, string(b), "SERVING")

	var out healthpb.HealthCheckResponse
	require.NoError(t, c.Unmarshal(b, &out))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, out.GetStatus())
}

func TestRequestIDFromMetadata(t *testing.T) {
	assert.Equal(t, "-", requestID(context.Background()))

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(RequestIDMetadataKey, "abc"))
	assert.Equal(t, "abc", requestID(ctx))

	var called bool
	resp, err := LoggingUnaryInterceptor(ctx, "req", &grpc.UnaryServerInfo{FullMethod: "/x/y"},
		func(ctx context.Context, req interface{}) (interface{}, error) {
			called = true
			return "resp", nil
		})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "resp", resp)
}

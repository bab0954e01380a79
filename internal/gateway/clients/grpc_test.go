package clients

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"

	proto "baibebalo-system/internal/rpc/earningsrpc"
)

func TestIsEarningsServiceHealthy(t *testing.T) {
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	c := FromConn(conn)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	assert.False(t, c.IsEarningsServiceHealthy(ctx))

	hs.SetServingStatus(proto.ServiceName, healthpb.HealthCheckResponse_SERVING)
	assert.True(t, c.IsEarningsServiceHealthy(ctx))

	hs.SetServingStatus(proto.ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	assert.False(t, c.IsEarningsServiceHealthy(ctx))
}

func TestNilClientsAreUnhealthy(t *testing.T) {
	var c *GRPCClients
	assert.False(t, c.IsEarningsServiceHealthy(context.Background()))
	assert.False(t, (&GRPCClients{}).IsEarningsServiceHealthy(context.Background()))
}

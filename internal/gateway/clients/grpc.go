package clients

import (
	"context"
	"fmt"
	"log"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	proto "baibebalo-system/internal/rpc/earningsrpc"
)

type GRPCClients struct {
	Earnings     proto.EarningsServiceClient
	health       healthpb.HealthClient
	earningsConn *grpc.ClientConn
}

func dial(addr string) (*grpc.ClientConn, error) {
	return grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
}

func NewGRPCClients(earningsAddr string) (*GRPCClients, error) {
	earningsConn, err := dial(earningsAddr)
	if err != nil {
		return nil, fmt.Errorf("earnings service connection failed: %v", err)
	}

	clients := FromConn(earningsConn)
	clients.earningsConn = earningsConn

	log.Println("✅ Connected to all gRPC services")
	return clients, nil
}

// FromConn builds the clients over an existing connection, which the caller owns.
func FromConn(cc grpc.ClientConnInterface) *GRPCClients {
	return &GRPCClients{
		Earnings: proto.NewEarningsServiceClient(cc),
		health:   healthpb.NewHealthClient(cc),
	}
}

// NewGRPCClientsWithFallback never fails: services that cannot be reached are left
// nil so the gateway can answer 503 for their routes.
func NewGRPCClientsWithFallback(earningsAddr string) (*GRPCClients, error) {
	clients, err := NewGRPCClients(earningsAddr)
	if err != nil {
		log.Printf("Earnings service unavailable: %v", err)
		return &GRPCClients{}, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if !clients.IsEarningsServiceHealthy(ctx) {
		log.Printf("Earnings service at %s is not serving yet", earningsAddr)
	}
	return clients, nil
}

// IsEarningsServiceHealthy asks the standard health service about the earnings service.
func (c *GRPCClients) IsEarningsServiceHealthy(ctx context.Context) bool {
	if c == nil || c.health == nil {
		return false
	}
	resp, err := c.health.Check(ctx, &healthpb.HealthCheckRequest{Service: proto.ServiceName})
	if err != nil {
		return false
	}
	return resp.GetStatus() == healthpb.HealthCheckResponse_SERVING
}

func (c *GRPCClients) Close() {
	if c.earningsConn != nil {
		c.earningsConn.Close()
	}
}

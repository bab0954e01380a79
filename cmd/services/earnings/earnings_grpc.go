package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	rds "baibebalo-system/config"
	"baibebalo-system/internal/database"
	"baibebalo-system/internal/rpc"
	proto "baibebalo-system/internal/rpc/earningsrpc"
	"baibebalo-system/internal/services/earnings/handler"
)

func main() {
	server, err := rds.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	redisClient, err := rds.NewRedisClient(server.Redis)
	if err != nil {
		log.Printf("Overview cache disabled: %v", err)
	} else {
		defer redisClient.Close()
	}

	db, err := database.NewConnection(server.DB.Driver, server.DB.DSN)
	if err != nil {
		log.Fatalf("Failed to connect to db: %v", err)
	}

	if err := database.MigrateEarningsDB(db); err != nil {
		log.Fatalf("Failed to migrate Earnings database: %v", err)
	}

	lis, err := net.Listen("tcp", ":"+server.Services.EarningsPort)
	if err != nil {
		log.Fatalf("Failed to listen: %v", err)
	}

	s := grpc.NewServer(grpc.UnaryInterceptor(rpc.LoggingUnaryInterceptor))

	earningsHandler := handler.NewEarningsHandler(db, redisClient, server.Business)
	proto.RegisterEarningsServiceServer(s, earningsHandler)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(s, healthServer)
	healthServer.SetServingStatus(proto.ServiceName, healthpb.HealthCheckResponse_SERVING)

	reflection.Register(s)

	// Cached overviews may predate this process's view of the data.
	earningsHandler.InvalidateOverviewCaches(context.Background())

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down earnings service")
		healthServer.Shutdown()
		s.GracefulStop()
	}()

	log.Printf(" 💰 Earnings service listening on :%s (timezone %s)", server.Services.EarningsPort, server.Business.Timezone)
	if err := s.Serve(lis); err != nil {
		log.Fatalf("Failed to serve: %v", err)
	}
}

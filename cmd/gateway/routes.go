package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"baibebalo-system/config"
	"baibebalo-system/internal/gateway/clients"
	"baibebalo-system/internal/gateway/handlers"
	"baibebalo-system/internal/gateway/middleware"
	"baibebalo-system/internal/utils"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	jwt, err := utils.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		log.Fatalf("Failed to configure auth: %v", err)
	}

	rateLimit, err := middleware.RateLimit(cfg.Gateway.RateLimit)
	if err != nil {
		log.Fatalf("Failed to configure rate limit: %v", err)
	}

	grpcClients, err := clients.NewGRPCClientsWithFallback(cfg.Services.EarningsAddr)
	if err != nil {
		log.Printf("Warning: Some gRPC services may be unavailable: %v", err)
	}
	defer grpcClients.Close()

	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.CORS(cfg.Gateway.CORSOrigins))
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(rateLimit)
	r.Use(serviceHealthMiddleware(grpcClients))

	var earningsHandler *handlers.EarningsHTTPHandler
	if grpcClients.Earnings != nil {
		earningsHandler = handlers.NewEarningsHTTPHandler(grpcClients.Earnings)
	}
	authHandler := handlers.NewAuthHTTPHandler(jwt, cfg.Auth.AdminUsername, cfg.Auth.AdminPasswordHash)

	// --- Public API Group ---
	public := r.Group("/api/v1")
	{
		public.POST("/auth/login", authHandler.Login)
	}

	// --- Protected API Group ---
	protected := r.Group("/api/v1")
	protected.Use(middleware.JWTAuth(jwt))
	if earningsHandler != nil {
		registerEarningsRoutes(protected, earningsHandler)
	} else {
		registerUnavailableRoutes(protected, handlers.ServiceUnavailable("Earnings service"))
	}

	r.GET("/health", healthCheckHandler(grpcClients))
	r.GET("/health/detailed", detailedHealthCheckHandler(grpcClients))

	port := ":" + cfg.Gateway.Port
	log.Printf("Starting server on port %s", port)
	if err := r.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func registerEarningsRoutes(g *gin.RouterGroup, h *handlers.EarningsHTTPHandler) {
	g.POST("/deliveries/quote", h.QuoteDelivery)

	orders := g.Group("/orders")
	{
		orders.POST("", h.CreateOrder)
		orders.GET("/commissions", h.ListOrderCommissions)
		orders.PATCH("/:id/status", h.UpdateOrderStatus)
		orders.GET("/:id/commission", h.GetOrderCommission)
		orders.PUT("/:id/commission-rate", h.SetOrderCommissionRate)
	}

	g.PUT("/restaurants/:id/commission-rate", h.SetRestaurantCommissionRate)
	g.POST("/expenses", h.RecordExpense)
	g.GET("/finance/overview", h.GetFinancialOverview)
	g.GET("/delivery-persons/:id/earnings", h.GetDeliveryPersonEarnings)
	g.GET("/admin/schema", h.GetSchemaStatus)
}

func registerUnavailableRoutes(g *gin.RouterGroup, unavailable gin.HandlerFunc) {
	g.POST("/deliveries/quote", unavailable)
	g.Any("/orders", unavailable)
	g.Any("/orders/*path", unavailable)
	g.Any("/restaurants/*path", unavailable)
	g.POST("/expenses", unavailable)
	g.GET("/finance/overview", unavailable)
	g.GET("/delivery-persons/*path", unavailable)
	g.GET("/admin/schema", unavailable)
}

func serviceHealthMiddleware(clients *clients.GRPCClients) gin.HandlerFunc {
	return func(c *gin.Context) {
		if clients.Earnings != nil {
			c.Header("X-Earnings-Service", "available")
		} else {
			c.Header("X-Earnings-Service", "unavailable")
		}
		c.Next()
	}
}

func healthCheckHandler(clients *clients.GRPCClients) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "healthy"
		httpStatus := http.StatusOK

		unavailableServices := []string{}
		if clients.Earnings == nil {
			unavailableServices = append(unavailableServices, "earnings")
		}

		if len(unavailableServices) > 0 {
			status = "degraded"
			httpStatus = http.StatusPartialContent
		}

		c.JSON(httpStatus, gin.H{
			"status":               status,
			"message":              "Server is running",
			"unavailable_services": unavailableServices,
			"timestamp":            time.Now(),
		})
	}
}

func detailedHealthCheckHandler(clients *clients.GRPCClients) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		services := map[string]interface{}{
			"earnings": checkServiceHealth(clients.IsEarningsServiceHealthy(ctx)),
		}

		overallStatus := "healthy"
		for _, service := range services {
			if serviceMap, ok := service.(map[string]interface{}); ok {
				if serviceMap["status"] != "healthy" {
					overallStatus = "degraded"
				}
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"overall_status": overallStatus,
			"services":       services,
			"timestamp":      time.Now(),
		})
	}
}

func checkServiceHealth(isHealthy bool) map[string]interface{} {
	if !isHealthy {
		return map[string]interface{}{
			"status":  "unavailable",
			"message": "Service client not initialized or not serving",
		}
	}
	return map[string]interface{}{
		"status":  "healthy",
		"message": "Service is responding",
	}
}

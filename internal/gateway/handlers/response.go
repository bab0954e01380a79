package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"baibebalo-system/internal/gateway/middleware"
	"baibebalo-system/internal/rpc"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

func successResponse(message string, data interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func errorResponse(message string) APIResponse {
	return APIResponse{
		Success: false,
		Message: message,
	}
}

func successWithMetaResponse(message string, data interface{}, meta interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    meta,
	}
}

// --- Helper for handling gRPC errors ---
func handleGRPCError(c *gin.Context, err error) {
	if s, ok := status.FromError(err); ok {
		switch s.Code() {
		case codes.InvalidArgument:
			c.JSON(http.StatusBadRequest, errorResponse(s.Message()))
		case codes.NotFound:
			c.JSON(http.StatusNotFound, errorResponse(s.Message()))
		case codes.FailedPrecondition, codes.AlreadyExists:
			c.JSON(http.StatusConflict, errorResponse(s.Message()))
		case codes.Unavailable, codes.DeadlineExceeded:
			c.JSON(http.StatusServiceUnavailable, errorResponse("Service unavailable: "+s.Message()))
		default:
			c.JSON(http.StatusInternalServerError, errorResponse("Service error: "+s.Message()))
		}
	} else {
		c.JSON(http.StatusInternalServerError, errorResponse("Unknown service error"))
	}
	c.Abort()
}

// rpcContext bounds the upstream call and forwards the request id.
func rpcContext(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	if id := c.GetString(middleware.ContextRequestID); id != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, rpc.RequestIDMetadataKey, id)
	}
	return ctx, cancel
}

func ServiceUnavailable(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"message": serviceName + " is currently unavailable",
			"error":   "SERVICE_UNAVAILABLE",
		})
	}
}

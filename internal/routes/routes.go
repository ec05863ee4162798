package routes

import (
	"os"
	"time"

	"trendora_back_end/internal/handlers/order"
	"trendora_back_end/internal/handlers/refund"
	"trendora_back_end/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, orderHandler *order.Handler, refundHandler *refund.Handler) {
	gatewayOrigin := os.Getenv("GATEWAY_ORIGIN")
	if gatewayOrigin == "" {
		gatewayOrigin = "http://localhost:3000"
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{gatewayOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.APIRateLimit())

	api := r.Group("/api", middleware.AuthRequired())

	// Commandes
	api.POST("/orders", middleware.OrderRateLimit(), orderHandler.CreateOrder)
	api.GET("/orders", orderHandler.GetMyOrders)
	api.GET("/orders/:id", orderHandler.GetOrderByID)
	api.POST("/orders/:id/cancel", orderHandler.CancelOrder)

	// Remboursements
	api.POST("/orders/:id/refund", middleware.OrderRateLimit(), refundHandler.RequestRefund)
	api.GET("/refunds", refundHandler.GetMyRefunds)

	// Administration
	admin := api.Group("/admin", middleware.RequireAdmin)
	admin.GET("/orders", orderHandler.GetAllOrders)
	admin.PUT("/orders/:id/status", orderHandler.UpdateOrderStatus)
	admin.GET("/orders/:id/invoice", orderHandler.GetInvoiceURL)
	admin.GET("/refunds", refundHandler.GetAllRefunds)
	admin.POST("/refunds/:id/approve", refundHandler.ApproveRefund)
	admin.POST("/refunds/:id/reject", refundHandler.RejectRefund)
	admin.PUT("/refunds/:id/status", refundHandler.ChangeRefundStatus)
}

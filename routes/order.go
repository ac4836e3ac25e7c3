package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/wellkart/pharmacy-api/controllers/order"
	"github.com/wellkart/pharmacy-api/middleware"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, deps Deps) {
	orders := r.Group("/orders")
	{
		// Create a new order (public checkout)
		orders.POST("/place", orderControllers.PlaceOrderHandler(db, deps.Mailer))
	}

	admin := r.Group("/admin/orders")
	admin.Use(middleware.ValidateAPIKey)
	{
		// Fetch all orders
		admin.GET("", orderControllers.GetAllOrdersHandler(db))

		// websocket endpoint for real-time order updates
		admin.GET("/ws", orderControllers.OrderWebSocketHandler)

		// Excel export
		admin.GET("/export-excel", orderControllers.ExportOrdersToExcel(db))

		// Fetch a single order by id or order_ref
		admin.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))

		// Update order status (e.g., shipped, cancelled)
		admin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))

		// Update payment status (e.g., paid, refunded)
		admin.PUT("/:orderID/payment-status", orderControllers.UpdatePaymentStatusHandler(db))

		// Delete an order
		admin.DELETE("/:orderID", orderControllers.DeleteOrderHandler(db))
	}
}

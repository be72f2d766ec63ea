package routes

import (
	"github.com/dmoralesv/ecommerce-microservices/services/order-service/controllers"
	"github.com/gin-gonic/gin"
)

// RegisterOrderRoutes sets up all order-related routes.
func RegisterOrderRoutes(r *gin.Engine, oc *controllers.OrderController) {
	orders := r.Group("/api/orders")

	orders.GET("", oc.ListOrders)
	orders.GET("/:id", oc.GetOrder)
	orders.GET("/customer/:customerId", oc.GetOrdersByCustomer)
	orders.POST("", oc.CreateOrder)
	orders.PUT("/:id/items", oc.UpdateOrderItem)
	orders.DELETE("/:id/items/:productId", oc.RemoveOrderItem)
	orders.DELETE("/:id", oc.DeleteOrder)
}

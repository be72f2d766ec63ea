package routes

import (
	"github.com/dmoralesv/ecommerce-microservices/services/customer-service/controllers"
	"github.com/gin-gonic/gin"
)

// RegisterCustomerRoutes sets up all customer-related routes.
func RegisterCustomerRoutes(r *gin.Engine, cc *controllers.CustomerController) {
	customers := r.Group("/api/customers")

	customers.GET("", cc.ListCustomers)
	customers.GET("/:id", cc.GetCustomer)
	customers.POST("", cc.CreateCustomer)
	customers.PUT("/:id", cc.UpdateCustomer)
	customers.DELETE("/:id", cc.DeleteCustomer)
}

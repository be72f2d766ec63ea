package routes

import (
	"github.com/dmoralesv/ecommerce-microservices/services/product-service/controllers"
	"github.com/gin-gonic/gin"
)

// RegisterProductRoutes sets up all product-related routes.
func RegisterProductRoutes(r *gin.Engine, pc *controllers.ProductController) {
	products := r.Group("/api/products")

	products.GET("", pc.ListProducts)
	products.GET("/:id", pc.GetProduct)
	products.POST("", pc.CreateProduct)
	products.PUT("/:id", pc.UpdateProduct)
	products.PATCH("/:id/stock", pc.UpdateStock)
	products.DELETE("/:id", pc.DeleteProduct)
}

package controllers

import (
	"net/http"
	"strconv"

	"github.com/dmoralesv/ecommerce-microservices/services/common/results"
	"github.com/dmoralesv/ecommerce-microservices/services/product-service/services"
	"github.com/gin-gonic/gin"
)

// ProductController handles HTTP requests for product operations.
type ProductController struct {
	productService services.ProductService
}

// NewProductController creates a new ProductController.
func NewProductController(svc services.ProductService) *ProductController {
	return &ProductController{productService: svc}
}

// ListProducts handles GET /api/products
func (pc *ProductController) ListProducts(ctx *gin.Context) {
	page, limit := parsePaginationParams(ctx)

	res := pc.productService.ListProducts(ctx.Request.Context(), page, limit)
	if !res.IsSuccess() {
		respondError(ctx, res.Error)
		return
	}
	ctx.JSON(http.StatusOK, res.Value)
}

// GetProduct handles GET /api/products/:id
func (pc *ProductController) GetProduct(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	res := pc.productService.GetProductByID(ctx.Request.Context(), id)
	if !res.IsSuccess() {
		respondError(ctx, res.Error)
		return
	}
	ctx.JSON(http.StatusOK, res.Value)
}

// CreateProduct handles POST /api/products
func (pc *ProductController) CreateProduct(ctx *gin.Context) {
	var req services.CreateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	if err := ValidateCreateProductRequest(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res := pc.productService.CreateProduct(ctx.Request.Context(), &req)
	if !res.IsSuccess() {
		respondError(ctx, res.Error)
		return
	}
	ctx.JSON(http.StatusCreated, res.Value)
}

// UpdateProduct handles PUT /api/products/:id
func (pc *ProductController) UpdateProduct(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req services.UpdateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	if err := ValidateUpdateProductRequest(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res := pc.productService.UpdateProduct(ctx.Request.Context(), id, &req)
	if !res.IsSuccess() {
		respondError(ctx, res.Error)
		return
	}
	ctx.JSON(http.StatusOK, res.Value)
}

// UpdateStock handles PATCH /api/products/:id/stock
func (pc *ProductController) UpdateStock(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req services.UpdateStockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	res := pc.productService.UpdateStock(ctx.Request.Context(), id, req.Quantity)
	if !res.IsSuccess() {
		respondError(ctx, res.Error)
		return
	}
	ctx.JSON(http.StatusOK, res.Value)
}

// DeleteProduct handles DELETE /api/products/:id
func (pc *ProductController) DeleteProduct(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	res := pc.productService.DeleteProduct(ctx.Request.Context(), id)
	if !res.IsSuccess() {
		respondError(ctx, res.Error)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func respondError(ctx *gin.Context, details *results.ErrorDetails) {
	if details.Data != nil {
		ctx.JSON(details.StatusCode, gin.H{"error": details.Message, "details": details.Data})
		return
	}
	ctx.JSON(details.StatusCode, gin.H{"error": details.Message})
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return 0, false
	}
	return uint(id), true
}

// parsePaginationParams extracts and validates page/limit query params.
func parsePaginationParams(ctx *gin.Context) (int, int) {
	const maxLimit = 100
	pageInt, limitInt := 1, 10
	if p, err := strconv.Atoi(ctx.DefaultQuery("page", "1")); err == nil && p > 0 {
		pageInt = p
	}
	if l, err := strconv.Atoi(ctx.DefaultQuery("limit", "10")); err == nil && l > 0 {
		if l > maxLimit {
			l = maxLimit
		}
		limitInt = l
	}
	return pageInt, limitInt
}

package controllers

import (
	"net/http"
	"strconv"

	"github.com/dmoralesv/ecommerce-microservices/services/common/results"
	"github.com/dmoralesv/ecommerce-microservices/services/order-service/services"
	"github.com/gin-gonic/gin"
)

// OrderController handles HTTP requests for order operations.
type OrderController struct {
	orderService services.OrderService
}

// NewOrderController creates a new OrderController.
func NewOrderController(svc services.OrderService) *OrderController {
	return &OrderController{orderService: svc}
}

// ListOrders handles GET /api/orders
func (oc *OrderController) ListOrders(ctx *gin.Context) {
	page, limit := parsePaginationParams(ctx)

	res := oc.orderService.GetAllOrders(ctx.Request.Context(), page, limit)
	if !res.IsSuccess() {
		respondError(ctx, res.Error)
		return
	}
	ctx.JSON(http.StatusOK, res.Value)
}

// GetOrder handles GET /api/orders/:id
func (oc *OrderController) GetOrder(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	res := oc.orderService.GetOrderByID(ctx.Request.Context(), id)
	if !res.IsSuccess() {
		respondError(ctx, res.Error)
		return
	}
	ctx.JSON(http.StatusOK, res.Value)
}

// GetOrdersByCustomer handles GET /api/orders/customer/:customerId
func (oc *OrderController) GetOrdersByCustomer(ctx *gin.Context) {
	customerID, ok := parseIDParam(ctx, "customerId")
	if !ok {
		return
	}

	res := oc.orderService.GetOrdersByCustomerID(ctx.Request.Context(), customerID)
	if !res.IsSuccess() {
		respondError(ctx, res.Error)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"orders": res.Value})
}

// CreateOrder handles POST /api/orders
func (oc *OrderController) CreateOrder(ctx *gin.Context) {
	var req services.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	res := oc.orderService.CreateOrder(ctx.Request.Context(), &req)
	if !res.IsSuccess() {
		respondError(ctx, res.Error)
		return
	}
	ctx.JSON(http.StatusCreated, res.Value)
}

// UpdateOrderItem handles PUT /api/orders/:id/items
func (oc *OrderController) UpdateOrderItem(ctx *gin.Context) {
	orderID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req services.UpdateOrderItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	res := oc.orderService.UpdateOrderItem(ctx.Request.Context(), orderID, &req)
	if !res.IsSuccess() {
		respondError(ctx, res.Error)
		return
	}
	ctx.JSON(http.StatusOK, res.Value)
}

// RemoveOrderItem handles DELETE /api/orders/:id/items/:productId
func (oc *OrderController) RemoveOrderItem(ctx *gin.Context) {
	orderID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	productID, ok := parseIDParam(ctx, "productId")
	if !ok {
		return
	}

	res := oc.orderService.RemoveOrderItem(ctx.Request.Context(), orderID, productID)
	if !res.IsSuccess() {
		respondError(ctx, res.Error)
		return
	}
	ctx.JSON(http.StatusOK, res.Value)
}

// DeleteOrder handles DELETE /api/orders/:id
func (oc *OrderController) DeleteOrder(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	res := oc.orderService.DeleteOrder(ctx.Request.Context(), id)
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

package controllers

import (
	"net/http"
	"strconv"

	"github.com/dmoralesv/ecommerce-microservices/services/common/results"
	"github.com/dmoralesv/ecommerce-microservices/services/customer-service/services"
	"github.com/gin-gonic/gin"
)

// CustomerController handles HTTP requests for customer operations.
type CustomerController struct {
	customerService services.CustomerService
}

// NewCustomerController creates a new CustomerController.
func NewCustomerController(svc services.CustomerService) *CustomerController {
	return &CustomerController{customerService: svc}
}

// ListCustomers handles GET /api/customers
func (cc *CustomerController) ListCustomers(ctx *gin.Context) {
	page, limit := parsePaginationParams(ctx)

	res := cc.customerService.ListCustomers(ctx.Request.Context(), page, limit)
	if !res.IsSuccess() {
		respondError(ctx, res.Error)
		return
	}
	ctx.JSON(http.StatusOK, res.Value)
}

// GetCustomer handles GET /api/customers/:id
func (cc *CustomerController) GetCustomer(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	res := cc.customerService.GetCustomerByID(ctx.Request.Context(), id)
	if !res.IsSuccess() {
		respondError(ctx, res.Error)
		return
	}
	ctx.JSON(http.StatusOK, res.Value)
}

// CreateCustomer handles POST /api/customers
func (cc *CustomerController) CreateCustomer(ctx *gin.Context) {
	var req services.CreateCustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	res := cc.customerService.CreateCustomer(ctx.Request.Context(), &req)
	if !res.IsSuccess() {
		respondError(ctx, res.Error)
		return
	}
	ctx.JSON(http.StatusCreated, res.Value)
}

// UpdateCustomer handles PUT /api/customers/:id
func (cc *CustomerController) UpdateCustomer(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req services.UpdateCustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	res := cc.customerService.UpdateCustomer(ctx.Request.Context(), id, &req)
	if !res.IsSuccess() {
		respondError(ctx, res.Error)
		return
	}
	ctx.JSON(http.StatusOK, res.Value)
}

// DeleteCustomer handles DELETE /api/customers/:id
func (cc *CustomerController) DeleteCustomer(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	res := cc.customerService.DeleteCustomer(ctx.Request.Context(), id)
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

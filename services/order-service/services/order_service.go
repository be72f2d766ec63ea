package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmoralesv/ecommerce-microservices/services/common/results"
	"github.com/dmoralesv/ecommerce-microservices/services/order-service/models"
	"github.com/dmoralesv/ecommerce-microservices/services/order-service/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreateOrderRequest is the payload for placing an order. Item quantities
// are validated here; names and prices always come from the product
// service, never from the client.
type CreateOrderRequest struct {
	CustomerID   uint                   `json:"customerId" binding:"required"`
	CustomerName string                 `json:"customerName" binding:"required"`
	Items        []CreateOrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// CreateOrderItemInput is a single requested line.
type CreateOrderItemInput struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// UpdateOrderItemRequest is the payload for changing a line's quantity.
type UpdateOrderItemRequest struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// StockViolation describes one line whose requested quantity exceeds the
// available stock. Order creation reports every violation at once.
type StockViolation struct {
	ProductID   uint   `json:"productId"`
	ProductName string `json:"productName"`
	Requested   int    `json:"requested"`
	Available   int    `json:"available"`
}

// OrderListResponse is the paginated list payload.
type OrderListResponse struct {
	Orders []models.Order `json:"orders"`
	Meta   MetaData       `json:"meta"`
}

// MetaData carries pagination info.
type MetaData struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

// OrderService defines the business logic interface.
type OrderService interface {
	CreateOrder(ctx context.Context, req *CreateOrderRequest) results.Result[*models.Order]
	GetOrderByID(ctx context.Context, id uint) results.Result[*models.Order]
	GetAllOrders(ctx context.Context, page, limit int) results.Result[*OrderListResponse]
	GetOrdersByCustomerID(ctx context.Context, customerID uint) results.Result[[]models.Order]
	UpdateOrderItem(ctx context.Context, orderID uint, req *UpdateOrderItemRequest) results.Result[*models.Order]
	RemoveOrderItem(ctx context.Context, orderID, productID uint) results.Result[*models.Order]
	DeleteOrder(ctx context.Context, id uint) results.Result[bool]
}

type orderServiceImpl struct {
	orderRepo      repository.OrderRepository
	productClient  ProductClient
	customerClient CustomerClient
	logger         *zap.Logger
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productClient ProductClient,
	customerClient CustomerClient,
	logger *zap.Logger,
) OrderService {
	return &orderServiceImpl{
		orderRepo:      orderRepo,
		productClient:  productClient,
		customerClient: customerClient,
		logger:         logger,
	}
}

// CreateOrder runs the full order creation workflow: validate the
// customer, fetch the requested products, reject on missing products or
// insufficient stock (collecting every violation), build the aggregate
// from the fetched snapshots, persist it, and finally issue best-effort
// stock decrements against the product service. The decrements run after
// the order is committed; a failed decrement is logged but does not undo
// the order.
func (s *orderServiceImpl) CreateOrder(ctx context.Context, req *CreateOrderRequest) results.Result[*models.Order] {
	s.logger.Info("Creating order",
		zap.Uint("customer_id", req.CustomerID),
		zap.Int("item_count", len(req.Items)),
	)

	// Step 1: the customer must exist
	if !s.customerClient.CustomerExists(ctx, req.CustomerID) {
		s.logger.Warn("Customer not found", zap.Uint("customer_id", req.CustomerID))
		return results.Failure[*models.Order]("Customer not found", http.StatusBadRequest)
	}

	// Steps 2-3: fetch the distinct requested products
	productIDs := distinctProductIDs(req.Items)
	products, err := s.productClient.FetchProductsByIDs(ctx, productIDs)
	if err != nil {
		s.logger.Error("Failed to fetch products", zap.Error(err))
		return results.Failure[*models.Order]("Failed to fetch products", http.StatusInternalServerError)
	}

	productByID := make(map[uint]RemoteProduct, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	// Step 4: every requested product must exist
	if len(products) != len(productIDs) {
		missing := make([]string, 0)
		for _, id := range productIDs {
			if _, ok := productByID[id]; !ok {
				missing = append(missing, fmt.Sprintf("%d", id))
			}
		}
		s.logger.Warn("Some products do not exist", zap.Strings("missing", missing))
		return results.Failure[*models.Order](
			"Products not found: "+strings.Join(missing, ", "), http.StatusBadRequest)
	}

	// Step 5: check stock for every line, collecting all violations
	var violations []StockViolation
	for _, item := range req.Items {
		product := productByID[item.ProductID]
		if product.StockQuantity < item.Quantity {
			violations = append(violations, StockViolation{
				ProductID:   item.ProductID,
				ProductName: product.Name,
				Requested:   item.Quantity,
				Available:   product.StockQuantity,
			})
		}
	}
	if len(violations) > 0 {
		s.logger.Warn("Insufficient stock", zap.Int("violations", len(violations)))
		return results.FailureWithData[*models.Order]("Insufficient stock", http.StatusBadRequest, violations)
	}

	// Step 6: build the aggregate from the fetched snapshots
	order, err := models.NewOrder(req.CustomerID, req.CustomerName)
	if err != nil {
		return aggregateFailure(err)
	}
	for _, item := range req.Items {
		product := productByID[item.ProductID]
		if err := order.AddItem(product.ID, product.Name, product.Price, item.Quantity); err != nil {
			return aggregateFailure(err)
		}
	}

	// Step 7: persist order + items atomically
	if err := s.orderRepo.Create(ctx, order); err != nil {
		s.logger.Error("Failed to persist order", zap.Error(err))
		return results.Failure[*models.Order]("Failed to create order", http.StatusInternalServerError)
	}

	// Step 8: best-effort stock decrement per line. The order stays
	// committed even if a decrement fails.
	for _, item := range order.Items {
		if err := s.productClient.UpdateStock(ctx, item.ProductID, -item.Quantity); err != nil {
			s.logger.Error("Stock decrement failed after order commit",
				zap.Uint("order_id", order.ID),
				zap.Uint("product_id", item.ProductID),
				zap.Int("quantity", item.Quantity),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("Order created", zap.Uint("order_id", order.ID), zap.Float64("total", order.TotalAmount))
	return results.Success(order)
}

// GetOrderByID returns an order with its items.
func (s *orderServiceImpl) GetOrderByID(ctx context.Context, id uint) results.Result[*models.Order] {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return results.NotFound[*models.Order]("Order not found")
		}
		s.logger.Error("Failed to fetch order", zap.Uint("order_id", id), zap.Error(err))
		return results.Failure[*models.Order]("Failed to fetch order", http.StatusInternalServerError)
	}
	return results.Success(order)
}

// GetAllOrders returns a paginated order list.
func (s *orderServiceImpl) GetAllOrders(ctx context.Context, page, limit int) results.Result[*OrderListResponse] {
	orders, total, err := s.orderRepo.FindAll(ctx, page, limit)
	if err != nil {
		s.logger.Error("Failed to list orders", zap.Error(err))
		return results.Failure[*OrderListResponse]("Failed to fetch orders", http.StatusInternalServerError)
	}

	return results.Success(&OrderListResponse{
		Orders: orders,
		Meta: MetaData{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: calculateTotalPages(total, limit),
		},
	})
}

// GetOrdersByCustomerID returns all orders placed by a customer.
func (s *orderServiceImpl) GetOrdersByCustomerID(ctx context.Context, customerID uint) results.Result[[]models.Order] {
	orders, err := s.orderRepo.FindByCustomerID(ctx, customerID)
	if err != nil {
		s.logger.Error("Failed to fetch customer orders", zap.Uint("customer_id", customerID), zap.Error(err))
		return results.Failure[[]models.Order]("Failed to fetch orders", http.StatusInternalServerError)
	}
	return results.Success(orders)
}

// UpdateOrderItem changes a line's quantity and recomputes the total.
// Stock is not re-validated against the product service on this path.
func (s *orderServiceImpl) UpdateOrderItem(ctx context.Context, orderID uint, req *UpdateOrderItemRequest) results.Result[*models.Order] {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return results.NotFound[*models.Order]("Order not found")
		}
		s.logger.Error("Failed to fetch order for item update", zap.Uint("order_id", orderID), zap.Error(err))
		return results.Failure[*models.Order]("Failed to fetch order", http.StatusInternalServerError)
	}

	if err := order.UpdateItemQuantity(req.ProductID, req.Quantity); err != nil {
		return aggregateFailure(err)
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		s.logger.Error("Failed to persist item update", zap.Uint("order_id", orderID), zap.Error(err))
		return results.Failure[*models.Order]("Failed to update order", http.StatusInternalServerError)
	}

	s.logger.Info("Order item updated",
		zap.Uint("order_id", orderID),
		zap.Uint("product_id", req.ProductID),
		zap.Int("quantity", req.Quantity),
	)
	return results.Success(order)
}

// RemoveOrderItem deletes a line from the order and recomputes the total.
func (s *orderServiceImpl) RemoveOrderItem(ctx context.Context, orderID, productID uint) results.Result[*models.Order] {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return results.NotFound[*models.Order]("Order not found")
		}
		s.logger.Error("Failed to fetch order for item removal", zap.Uint("order_id", orderID), zap.Error(err))
		return results.Failure[*models.Order]("Failed to fetch order", http.StatusInternalServerError)
	}

	if err := order.RemoveItem(productID); err != nil {
		return aggregateFailure(err)
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		s.logger.Error("Failed to persist item removal", zap.Uint("order_id", orderID), zap.Error(err))
		return results.Failure[*models.Order]("Failed to update order", http.StatusInternalServerError)
	}
	return results.Success(order)
}

// DeleteOrder removes an order as a whole; items cascade.
func (s *orderServiceImpl) DeleteOrder(ctx context.Context, id uint) results.Result[bool] {
	if _, err := s.orderRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return results.NotFound[bool]("Order not found")
		}
		s.logger.Error("Failed to fetch order for delete", zap.Uint("order_id", id), zap.Error(err))
		return results.Failure[bool]("Failed to fetch order", http.StatusInternalServerError)
	}

	if err := s.orderRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete order", zap.Uint("order_id", id), zap.Error(err))
		return results.Failure[bool]("Failed to delete order", http.StatusInternalServerError)
	}

	s.logger.Info("Order deleted", zap.Uint("order_id", id))
	return results.Success(true)
}

// aggregateFailure converts aggregate errors into the Result envelope:
// validation and domain rule violations map to 400, anything else to 500.
func aggregateFailure(err error) results.Result[*models.Order] {
	var vErr *models.ValidationError
	if errors.As(err, &vErr) {
		return results.Failure[*models.Order](vErr.Message, http.StatusBadRequest)
	}
	var dErr *models.DomainError
	if errors.As(err, &dErr) {
		return results.Failure[*models.Order](dErr.Message, http.StatusBadRequest)
	}
	return results.Failure[*models.Order]("Failed to process order: "+err.Error(), http.StatusInternalServerError)
}

func distinctProductIDs(items []CreateOrderItemInput) []uint {
	seen := make(map[uint]struct{}, len(items))
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; !ok {
			seen[item.ProductID] = struct{}{}
			ids = append(ids, item.ProductID)
		}
	}
	return ids
}

func calculateTotalPages(total int64, limit int) int64 {
	if limit == 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}

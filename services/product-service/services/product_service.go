package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmoralesv/ecommerce-microservices/services/common/results"
	"github.com/dmoralesv/ecommerce-microservices/services/product-service/models"
	"github.com/dmoralesv/ecommerce-microservices/services/product-service/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreateProductRequest is the payload for creating a product.
type CreateProductRequest struct {
	Name          string  `json:"name" validate:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" validate:"gte=0"`
	StockQuantity int     `json:"stockQuantity" validate:"gte=0"`
}

// UpdateProductRequest is the payload for updating product details.
type UpdateProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
}

// UpdateStockRequest carries a signed stock delta (negative = consumption).
type UpdateStockRequest struct {
	ID       uint `json:"id"`
	Quantity int  `json:"quantity" validate:"required"`
}

// ProductListResponse is the paginated list payload.
type ProductListResponse struct {
	Products []models.Product `json:"products"`
	Meta     MetaData         `json:"meta"`
}

// MetaData carries pagination info.
type MetaData struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

// ProductService defines the business logic interface.
type ProductService interface {
	ListProducts(ctx context.Context, page, limit int) results.Result[*ProductListResponse]
	GetProductByID(ctx context.Context, id uint) results.Result[*models.Product]
	CreateProduct(ctx context.Context, req *CreateProductRequest) results.Result[*models.Product]
	UpdateProduct(ctx context.Context, id uint, req *UpdateProductRequest) results.Result[*models.Product]
	UpdateStock(ctx context.Context, id uint, delta int) results.Result[*models.Product]
	DeleteProduct(ctx context.Context, id uint) results.Result[bool]
}

type productServiceImpl struct {
	repo   repository.ProductRepository
	cache  *CacheManager
	logger *zap.Logger
}

// NewProductService creates a new ProductService. The cache is optional;
// pass nil to disable caching.
func NewProductService(repo repository.ProductRepository, cache *CacheManager, logger *zap.Logger) ProductService {
	return &productServiceImpl{repo: repo, cache: cache, logger: logger}
}

// ListProducts returns a paginated product list.
func (s *productServiceImpl) ListProducts(ctx context.Context, page, limit int) results.Result[*ProductListResponse] {
	products, total, err := s.repo.FindAll(ctx, page, limit)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return results.Failure[*ProductListResponse]("Failed to fetch products", http.StatusInternalServerError)
	}

	return results.Success(&ProductListResponse{
		Products: products,
		Meta: MetaData{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: calculateTotalPages(total, limit),
		},
	})
}

// GetProductByID returns a single product, served from cache when possible.
func (s *productServiceImpl) GetProductByID(ctx context.Context, id uint) results.Result[*models.Product] {
	if s.cache != nil {
		if product, ok := s.cache.GetProduct(ctx, id); ok {
			return results.Success(product)
		}
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return results.NotFound[*models.Product]("Product not found")
		}
		s.logger.Error("Failed to fetch product", zap.Uint("product_id", id), zap.Error(err))
		return results.Failure[*models.Product]("Failed to fetch product", http.StatusInternalServerError)
	}

	if s.cache != nil {
		s.cache.SetProduct(product)
	}
	return results.Success(product)
}

// CreateProduct validates and persists a new product.
func (s *productServiceImpl) CreateProduct(ctx context.Context, req *CreateProductRequest) results.Result[*models.Product] {
	product, err := models.NewProduct(req.Name, req.Description, req.Price, req.StockQuantity)
	if err != nil {
		return validationFailure[*models.Product](err)
	}

	if err := s.repo.Create(ctx, product); err != nil {
		s.logger.Error("Failed to create product", zap.Error(err))
		return results.Failure[*models.Product]("Failed to create product", http.StatusInternalServerError)
	}

	s.logger.Info("Product created", zap.Uint("product_id", product.ID))
	return results.Success(product)
}

// UpdateProduct updates name, description and price of an existing product.
func (s *productServiceImpl) UpdateProduct(ctx context.Context, id uint, req *UpdateProductRequest) results.Result[*models.Product] {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return results.NotFound[*models.Product]("Product not found")
		}
		s.logger.Error("Failed to fetch product for update", zap.Uint("product_id", id), zap.Error(err))
		return results.Failure[*models.Product]("Failed to fetch product", http.StatusInternalServerError)
	}

	if err := product.UpdateDetails(req.Name, req.Description, req.Price); err != nil {
		return validationFailure[*models.Product](err)
	}

	if err := s.repo.Update(ctx, product); err != nil {
		s.logger.Error("Failed to update product", zap.Uint("product_id", id), zap.Error(err))
		return results.Failure[*models.Product]("Failed to update product", http.StatusInternalServerError)
	}

	if s.cache != nil {
		s.cache.InvalidateProduct(ctx, id)
	}
	return results.Success(product)
}

// UpdateStock applies a signed delta to the product's stock quantity.
// A delta that would drive the stock below zero fails without mutating
// anything and carries the shortfall details in the response.
func (s *productServiceImpl) UpdateStock(ctx context.Context, id uint, delta int) results.Result[*models.Product] {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return results.NotFound[*models.Product]("Product not found")
		}
		s.logger.Error("Failed to fetch product for stock update", zap.Uint("product_id", id), zap.Error(err))
		return results.Failure[*models.Product]("Failed to fetch product", http.StatusInternalServerError)
	}

	if err := product.ApplyStockDelta(delta); err != nil {
		var stockErr *models.InsufficientStockError
		if errors.As(err, &stockErr) {
			s.logger.Warn("Insufficient stock",
				zap.Uint("product_id", id),
				zap.Int("requested", stockErr.Requested),
				zap.Int("available", stockErr.Available),
			)
			return results.FailureWithData[*models.Product]("Insufficient stock", http.StatusBadRequest, stockErr)
		}
		return results.Failure[*models.Product](err.Error(), http.StatusBadRequest)
	}

	if err := s.repo.Update(ctx, product); err != nil {
		s.logger.Error("Failed to persist stock update", zap.Uint("product_id", id), zap.Error(err))
		return results.Failure[*models.Product]("Failed to update stock", http.StatusInternalServerError)
	}

	if s.cache != nil {
		s.cache.InvalidateProduct(ctx, id)
	}

	s.logger.Info("Stock updated",
		zap.Uint("product_id", id),
		zap.Int("delta", delta),
		zap.Int("new_stock", product.StockQuantity),
	)
	return results.Success(product)
}

// DeleteProduct removes a product.
func (s *productServiceImpl) DeleteProduct(ctx context.Context, id uint) results.Result[bool] {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return results.NotFound[bool]("Product not found")
		}
		s.logger.Error("Failed to fetch product for delete", zap.Uint("product_id", id), zap.Error(err))
		return results.Failure[bool]("Failed to fetch product", http.StatusInternalServerError)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete product", zap.Uint("product_id", id), zap.Error(err))
		return results.Failure[bool]("Failed to delete product", http.StatusInternalServerError)
	}

	if s.cache != nil {
		s.cache.InvalidateProduct(ctx, id)
	}
	return results.Success(true)
}

func validationFailure[T any](err error) results.Result[T] {
	var vErr *models.ValidationError
	if errors.As(err, &vErr) {
		return results.Failure[T](vErr.Message, http.StatusBadRequest)
	}
	return results.Failure[T](err.Error(), http.StatusBadRequest)
}

func calculateTotalPages(total int64, limit int) int64 {
	if limit == 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}

package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmoralesv/ecommerce-microservices/services/common/results"
	"github.com/dmoralesv/ecommerce-microservices/services/customer-service/models"
	"github.com/dmoralesv/ecommerce-microservices/services/customer-service/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreateCustomerRequest is the payload for registering a customer.
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Address string `json:"address" binding:"required"`
}

// UpdateCustomerRequest is the payload for updating customer details.
type UpdateCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Address string `json:"address" binding:"required"`
}

// CustomerListResponse is the paginated list payload.
type CustomerListResponse struct {
	Customers []models.Customer `json:"customers"`
	Meta      MetaData          `json:"meta"`
}

// MetaData carries pagination info.
type MetaData struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

// CustomerService defines the business logic interface.
type CustomerService interface {
	ListCustomers(ctx context.Context, page, limit int) results.Result[*CustomerListResponse]
	GetCustomerByID(ctx context.Context, id uint) results.Result[*models.Customer]
	CreateCustomer(ctx context.Context, req *CreateCustomerRequest) results.Result[*models.Customer]
	UpdateCustomer(ctx context.Context, id uint, req *UpdateCustomerRequest) results.Result[*models.Customer]
	DeleteCustomer(ctx context.Context, id uint) results.Result[bool]
}

type customerServiceImpl struct {
	repo   repository.CustomerRepository
	logger *zap.Logger
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(repo repository.CustomerRepository, logger *zap.Logger) CustomerService {
	return &customerServiceImpl{repo: repo, logger: logger}
}

// ListCustomers returns a paginated customer list.
func (s *customerServiceImpl) ListCustomers(ctx context.Context, page, limit int) results.Result[*CustomerListResponse] {
	customers, total, err := s.repo.FindAll(ctx, page, limit)
	if err != nil {
		s.logger.Error("Failed to list customers", zap.Error(err))
		return results.Failure[*CustomerListResponse]("Failed to fetch customers", http.StatusInternalServerError)
	}

	return results.Success(&CustomerListResponse{
		Customers: customers,
		Meta: MetaData{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: calculateTotalPages(total, limit),
		},
	})
}

// GetCustomerByID returns a single customer.
func (s *customerServiceImpl) GetCustomerByID(ctx context.Context, id uint) results.Result[*models.Customer] {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return results.NotFound[*models.Customer]("Customer not found")
		}
		s.logger.Error("Failed to fetch customer", zap.Uint("customer_id", id), zap.Error(err))
		return results.Failure[*models.Customer]("Failed to fetch customer", http.StatusInternalServerError)
	}
	return results.Success(customer)
}

// CreateCustomer validates, checks email uniqueness and persists a new customer.
func (s *customerServiceImpl) CreateCustomer(ctx context.Context, req *CreateCustomerRequest) results.Result[*models.Customer] {
	customer, err := models.NewCustomer(req.Name, req.Email, req.Address)
	if err != nil {
		return validationFailure(err)
	}

	if existing, err := s.repo.FindByEmail(ctx, customer.Email); err == nil && existing != nil {
		s.logger.Warn("Duplicate customer email", zap.String("email", customer.Email))
		return results.Failure[*models.Customer]("A customer with this email already exists", http.StatusConflict)
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("Failed to check email uniqueness", zap.Error(err))
		return results.Failure[*models.Customer]("Failed to create customer", http.StatusInternalServerError)
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		s.logger.Error("Failed to create customer", zap.Error(err))
		return results.Failure[*models.Customer]("Failed to create customer", http.StatusInternalServerError)
	}

	s.logger.Info("Customer created", zap.Uint("customer_id", customer.ID))
	return results.Success(customer)
}

// UpdateCustomer updates an existing customer's details.
func (s *customerServiceImpl) UpdateCustomer(ctx context.Context, id uint, req *UpdateCustomerRequest) results.Result[*models.Customer] {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return results.NotFound[*models.Customer]("Customer not found")
		}
		s.logger.Error("Failed to fetch customer for update", zap.Uint("customer_id", id), zap.Error(err))
		return results.Failure[*models.Customer]("Failed to fetch customer", http.StatusInternalServerError)
	}

	// Reject the new email if another customer already owns it
	if existing, err := s.repo.FindByEmail(ctx, req.Email); err == nil && existing != nil && existing.ID != id {
		return results.Failure[*models.Customer]("A customer with this email already exists", http.StatusConflict)
	}

	if err := customer.UpdateDetails(req.Name, req.Email, req.Address); err != nil {
		return validationFailure(err)
	}

	if err := s.repo.Update(ctx, customer); err != nil {
		s.logger.Error("Failed to update customer", zap.Uint("customer_id", id), zap.Error(err))
		return results.Failure[*models.Customer]("Failed to update customer", http.StatusInternalServerError)
	}
	return results.Success(customer)
}

// DeleteCustomer removes a customer.
func (s *customerServiceImpl) DeleteCustomer(ctx context.Context, id uint) results.Result[bool] {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return results.NotFound[bool]("Customer not found")
		}
		s.logger.Error("Failed to fetch customer for delete", zap.Uint("customer_id", id), zap.Error(err))
		return results.Failure[bool]("Failed to fetch customer", http.StatusInternalServerError)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete customer", zap.Uint("customer_id", id), zap.Error(err))
		return results.Failure[bool]("Failed to delete customer", http.StatusInternalServerError)
	}
	return results.Success(true)
}

func validationFailure(err error) results.Result[*models.Customer] {
	var vErr *models.ValidationError
	if errors.As(err, &vErr) {
		return results.Failure[*models.Customer](vErr.Message, http.StatusBadRequest)
	}
	return results.Failure[*models.Customer](err.Error(), http.StatusBadRequest)
}

func calculateTotalPages(total int64, limit int) int64 {
	if limit == 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}

package services_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/dmoralesv/ecommerce-microservices/services/customer-service/models"
	"github.com/dmoralesv/ecommerce-microservices/services/customer-service/services"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type mockCustomerRepo struct {
	findAllCustomers []models.Customer
	findAllErr       error
	findByIDCustomer *models.Customer
	findByIDErr      error
	byEmailCustomer  *models.Customer
	byEmailErr       error
	createErr        error
	created          *models.Customer
	updateErr        error
	updated          *models.Customer
	deleteErr        error
	deletedID        uint
}

func (m *mockCustomerRepo) FindAll(_ context.Context, _, _ int) ([]models.Customer, int64, error) {
	return m.findAllCustomers, int64(len(m.findAllCustomers)), m.findAllErr
}
func (m *mockCustomerRepo) FindByID(_ context.Context, _ uint) (*models.Customer, error) {
	return m.findByIDCustomer, m.findByIDErr
}
func (m *mockCustomerRepo) FindByEmail(_ context.Context, _ string) (*models.Customer, error) {
	return m.byEmailCustomer, m.byEmailErr
}
func (m *mockCustomerRepo) Create(_ context.Context, customer *models.Customer) error {
	if m.createErr != nil {
		return m.createErr
	}
	customer.ID = 3
	m.created = customer
	return nil
}
func (m *mockCustomerRepo) Update(_ context.Context, customer *models.Customer) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updated = customer
	return nil
}
func (m *mockCustomerRepo) Delete(_ context.Context, id uint) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedID = id
	return nil
}

func newTestService(repo *mockCustomerRepo) services.CustomerService {
	logger, _ := zap.NewDevelopment()
	return services.NewCustomerService(repo, logger)
}

func storedCustomer(t *testing.T) *models.Customer {
	t.Helper()
	customer, err := models.NewCustomer("Alice Johnson", "alice@example.com", "1 Main St")
	assert.NoError(t, err)
	customer.ID = 3
	return customer
}

func TestCreateCustomer_Success(t *testing.T) {
	repo := &mockCustomerRepo{byEmailErr: gorm.ErrRecordNotFound}
	svc := newTestService(repo)

	res := svc.CreateCustomer(context.Background(), &services.CreateCustomerRequest{
		Name: "Alice Johnson", Email: "alice@example.com", Address: "1 Main St",
	})

	assert.True(t, res.IsSuccess())
	assert.Equal(t, uint(3), res.Value.ID)
	assert.NotNil(t, repo.created)
}

func TestCreateCustomer_DuplicateEmail(t *testing.T) {
	repo := &mockCustomerRepo{byEmailCustomer: storedCustomer(t)}
	svc := newTestService(repo)

	res := svc.CreateCustomer(context.Background(), &services.CreateCustomerRequest{
		Name: "Another Alice", Email: "alice@example.com", Address: "2 Main St",
	})

	assert.False(t, res.IsSuccess())
	assert.Equal(t, http.StatusConflict, res.Error.StatusCode)
	assert.Nil(t, repo.created)
}

func TestCreateCustomer_InvalidEmail(t *testing.T) {
	repo := &mockCustomerRepo{}
	svc := newTestService(repo)

	res := svc.CreateCustomer(context.Background(), &services.CreateCustomerRequest{
		Name: "Alice Johnson", Email: "not-an-email", Address: "1 Main St",
	})

	assert.False(t, res.IsSuccess())
	assert.Equal(t, http.StatusBadRequest, res.Error.StatusCode)
	assert.Nil(t, repo.created)
}

func TestGetCustomerByID_NotFound(t *testing.T) {
	repo := &mockCustomerRepo{findByIDErr: gorm.ErrRecordNotFound}
	svc := newTestService(repo)

	res := svc.GetCustomerByID(context.Background(), 99)

	assert.False(t, res.IsSuccess())
	assert.Equal(t, http.StatusNotFound, res.Error.StatusCode)
}

func TestUpdateCustomer_Success(t *testing.T) {
	repo := &mockCustomerRepo{
		findByIDCustomer: storedCustomer(t),
		byEmailErr:       gorm.ErrRecordNotFound,
	}
	svc := newTestService(repo)

	res := svc.UpdateCustomer(context.Background(), 3, &services.UpdateCustomerRequest{
		Name: "Alice J.", Email: "alice.j@example.com", Address: "2 Main St",
	})

	assert.True(t, res.IsSuccess())
	assert.Equal(t, "Alice J.", res.Value.Name)
	assert.Equal(t, "alice.j@example.com", res.Value.Email)
	assert.NotNil(t, repo.updated)
}

func TestUpdateCustomer_KeepingOwnEmailIsAllowed(t *testing.T) {
	// FindByEmail resolves to the same customer being updated
	repo := &mockCustomerRepo{
		findByIDCustomer: storedCustomer(t),
		byEmailCustomer:  storedCustomer(t),
	}
	svc := newTestService(repo)

	res := svc.UpdateCustomer(context.Background(), 3, &services.UpdateCustomerRequest{
		Name: "Alice Johnson", Email: "alice@example.com", Address: "3 Main St",
	})

	assert.True(t, res.IsSuccess())
	assert.Equal(t, "3 Main St", res.Value.Address)
}

func TestUpdateCustomer_EmailTakenByAnotherCustomer(t *testing.T) {
	other := storedCustomer(t)
	other.ID = 8
	repo := &mockCustomerRepo{
		findByIDCustomer: storedCustomer(t),
		byEmailCustomer:  other,
	}
	svc := newTestService(repo)

	res := svc.UpdateCustomer(context.Background(), 3, &services.UpdateCustomerRequest{
		Name: "Alice Johnson", Email: "alice@example.com", Address: "1 Main St",
	})

	assert.False(t, res.IsSuccess())
	assert.Equal(t, http.StatusConflict, res.Error.StatusCode)
	assert.Nil(t, repo.updated)
}

func TestDeleteCustomer_Success(t *testing.T) {
	repo := &mockCustomerRepo{findByIDCustomer: storedCustomer(t)}
	svc := newTestService(repo)

	res := svc.DeleteCustomer(context.Background(), 3)

	assert.True(t, res.IsSuccess())
	assert.Equal(t, uint(3), repo.deletedID)
}

func TestDeleteCustomer_NotFound(t *testing.T) {
	repo := &mockCustomerRepo{findByIDErr: gorm.ErrRecordNotFound}
	svc := newTestService(repo)

	res := svc.DeleteCustomer(context.Background(), 99)

	assert.False(t, res.IsSuccess())
	assert.Equal(t, http.StatusNotFound, res.Error.StatusCode)
}

func TestListCustomers_Pagination(t *testing.T) {
	repo := &mockCustomerRepo{findAllCustomers: []models.Customer{{Name: "Alice"}, {Name: "Bob"}}}
	svc := newTestService(repo)

	res := svc.ListCustomers(context.Background(), 1, 10)

	assert.True(t, res.IsSuccess())
	assert.Len(t, res.Value.Customers, 2)
	assert.Equal(t, int64(2), res.Value.Meta.Total)
}

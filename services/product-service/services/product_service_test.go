package services_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/dmoralesv/ecommerce-microservices/services/product-service/models"
	"github.com/dmoralesv/ecommerce-microservices/services/product-service/services"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type mockProductRepo struct {
	findAllProducts []models.Product
	findAllErr      error
	findByIDProduct *models.Product
	findByIDErr     error
	createErr       error
	created         *models.Product
	updateErr       error
	updated         *models.Product
	deleteErr       error
	deletedID       uint
}

func (m *mockProductRepo) FindAll(_ context.Context, _, _ int) ([]models.Product, int64, error) {
	return m.findAllProducts, int64(len(m.findAllProducts)), m.findAllErr
}
func (m *mockProductRepo) FindByID(_ context.Context, _ uint) (*models.Product, error) {
	return m.findByIDProduct, m.findByIDErr
}
func (m *mockProductRepo) Create(_ context.Context, product *models.Product) error {
	if m.createErr != nil {
		return m.createErr
	}
	product.ID = 7
	m.created = product
	return nil
}
func (m *mockProductRepo) Update(_ context.Context, product *models.Product) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updated = product
	return nil
}
func (m *mockProductRepo) Delete(_ context.Context, id uint) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedID = id
	return nil
}

func newTestService(repo *mockProductRepo) services.ProductService {
	logger, _ := zap.NewDevelopment()
	return services.NewProductService(repo, nil, logger)
}

func storedProduct(t *testing.T) *models.Product {
	t.Helper()
	product, err := models.NewProduct("Keyboard", "Mechanical", 10.00, 10)
	assert.NoError(t, err)
	product.ID = 7
	return product
}

func TestCreateProduct_Success(t *testing.T) {
	repo := &mockProductRepo{}
	svc := newTestService(repo)

	res := svc.CreateProduct(context.Background(), &services.CreateProductRequest{
		Name: "Keyboard", Description: "Mechanical", Price: 10.00, StockQuantity: 10,
	})

	assert.True(t, res.IsSuccess())
	assert.Equal(t, uint(7), res.Value.ID)
	assert.NotNil(t, repo.created)
}

func TestCreateProduct_InvalidInput(t *testing.T) {
	repo := &mockProductRepo{}
	svc := newTestService(repo)

	res := svc.CreateProduct(context.Background(), &services.CreateProductRequest{
		Name: "", Price: 10.00, StockQuantity: 10,
	})

	assert.False(t, res.IsSuccess())
	assert.Equal(t, http.StatusBadRequest, res.Error.StatusCode)
	assert.Nil(t, repo.created)
}

func TestGetProductByID_NotFound(t *testing.T) {
	repo := &mockProductRepo{findByIDErr: gorm.ErrRecordNotFound}
	svc := newTestService(repo)

	res := svc.GetProductByID(context.Background(), 99)

	assert.False(t, res.IsSuccess())
	assert.Equal(t, http.StatusNotFound, res.Error.StatusCode)
}

func TestGetProductByID_RepositoryError(t *testing.T) {
	repo := &mockProductRepo{findByIDErr: errors.New("db down")}
	svc := newTestService(repo)

	res := svc.GetProductByID(context.Background(), 7)

	assert.False(t, res.IsSuccess())
	assert.Equal(t, http.StatusInternalServerError, res.Error.StatusCode)
}

func TestUpdateStock_Decrement(t *testing.T) {
	repo := &mockProductRepo{findByIDProduct: storedProduct(t)}
	svc := newTestService(repo)

	res := svc.UpdateStock(context.Background(), 7, -4)

	assert.True(t, res.IsSuccess())
	assert.Equal(t, 6, res.Value.StockQuantity)
	assert.NotNil(t, repo.updated)
}

func TestUpdateStock_InsufficientLeavesProductUnchanged(t *testing.T) {
	product := storedProduct(t)
	repo := &mockProductRepo{findByIDProduct: product}
	svc := newTestService(repo)

	res := svc.UpdateStock(context.Background(), 7, -11)

	assert.False(t, res.IsSuccess())
	assert.Equal(t, http.StatusBadRequest, res.Error.StatusCode)
	assert.Equal(t, "Insufficient stock", res.Error.Message)

	stockErr, ok := res.Error.Data.(*models.InsufficientStockError)
	if assert.True(t, ok) {
		assert.Equal(t, uint(7), stockErr.ProductID)
		assert.Equal(t, 11, stockErr.Requested)
		assert.Equal(t, 10, stockErr.Available)
	}
	// Nothing persisted, nothing mutated
	assert.Nil(t, repo.updated)
	assert.Equal(t, 10, product.StockQuantity)
}

func TestUpdateStock_Restock(t *testing.T) {
	repo := &mockProductRepo{findByIDProduct: storedProduct(t)}
	svc := newTestService(repo)

	res := svc.UpdateStock(context.Background(), 7, 15)

	assert.True(t, res.IsSuccess())
	assert.Equal(t, 25, res.Value.StockQuantity)
}

func TestUpdateProduct_Success(t *testing.T) {
	repo := &mockProductRepo{findByIDProduct: storedProduct(t)}
	svc := newTestService(repo)

	res := svc.UpdateProduct(context.Background(), 7, &services.UpdateProductRequest{
		Name: "Keyboard v2", Description: "Low profile", Price: 12.50,
	})

	assert.True(t, res.IsSuccess())
	assert.Equal(t, "Keyboard v2", res.Value.Name)
	assert.Equal(t, 12.50, res.Value.Price)
}

func TestDeleteProduct_Success(t *testing.T) {
	repo := &mockProductRepo{findByIDProduct: storedProduct(t)}
	svc := newTestService(repo)

	res := svc.DeleteProduct(context.Background(), 7)

	assert.True(t, res.IsSuccess())
	assert.Equal(t, uint(7), repo.deletedID)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	repo := &mockProductRepo{findByIDErr: gorm.ErrRecordNotFound}
	svc := newTestService(repo)

	res := svc.DeleteProduct(context.Background(), 99)

	assert.False(t, res.IsSuccess())
	assert.Equal(t, http.StatusNotFound, res.Error.StatusCode)
}

func TestListProducts_Pagination(t *testing.T) {
	repo := &mockProductRepo{findAllProducts: []models.Product{{Name: "Keyboard"}, {Name: "Mouse"}}}
	svc := newTestService(repo)

	res := svc.ListProducts(context.Background(), 1, 10)

	assert.True(t, res.IsSuccess())
	assert.Len(t, res.Value.Products, 2)
	assert.Equal(t, int64(2), res.Value.Meta.Total)
	assert.Equal(t, int64(1), res.Value.Meta.TotalPages)
}

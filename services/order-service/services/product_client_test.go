package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmoralesv/ecommerce-microservices/services/order-service/services"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestFetchProduct_Found(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/products/1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(services.RemoteProduct{
			ID: 1, Name: "Keyboard", Price: 10.00, StockQuantity: 20,
		})
	}))
	defer server.Close()

	logger, _ := zap.NewDevelopment()
	client := services.NewHTTPProductClient(server.URL, logger)

	product, err := client.FetchProduct(context.Background(), 1)

	assert.NoError(t, err)
	if assert.NotNil(t, product) {
		assert.Equal(t, "Keyboard", product.Name)
		assert.Equal(t, 10.00, product.Price)
		assert.Equal(t, 20, product.StockQuantity)
	}
}

func TestFetchProduct_NotFoundIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	logger, _ := zap.NewDevelopment()
	client := services.NewHTTPProductClient(server.URL, logger)

	product, err := client.FetchProduct(context.Background(), 99)

	assert.NoError(t, err)
	assert.Nil(t, product)
}

func TestFetchProduct_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	logger, _ := zap.NewDevelopment()
	client := services.NewHTTPProductClient(server.URL, logger)

	product, err := client.FetchProduct(context.Background(), 1)

	assert.Error(t, err)
	assert.Nil(t, product)
}

func TestFetchProductsByIDs_SkipsMissing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/products/1":
			json.NewEncoder(w).Encode(services.RemoteProduct{ID: 1, Name: "Keyboard", Price: 10.00, StockQuantity: 20})
		case "/api/products/2":
			json.NewEncoder(w).Encode(services.RemoteProduct{ID: 2, Name: "Mouse", Price: 5.00, StockQuantity: 3})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	logger, _ := zap.NewDevelopment()
	client := services.NewHTTPProductClient(server.URL, logger)

	products, err := client.FetchProductsByIDs(context.Background(), []uint{1, 99, 2})

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, uint(1), products[0].ID)
	assert.Equal(t, uint(2), products[1].ID)
}

func TestUpdateStock_SendsSignedDelta(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	logger, _ := zap.NewDevelopment()
	client := services.NewHTTPProductClient(server.URL, logger)

	err := client.UpdateStock(context.Background(), 1, -5)

	assert.NoError(t, err)
	assert.Equal(t, "/api/products/1/stock", gotPath)
	assert.Equal(t, float64(-5), gotBody["quantity"])
}

func TestUpdateStock_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Insufficient stock"}`))
	}))
	defer server.Close()

	logger, _ := zap.NewDevelopment()
	client := services.NewHTTPProductClient(server.URL, logger)

	err := client.UpdateStock(context.Background(), 1, -5)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

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

func TestCustomerExists_OKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/customers/1", r.URL.Path)
		json.NewEncoder(w).Encode(services.RemoteCustomer{ID: 1, Name: "Alice Johnson"})
	}))
	defer server.Close()

	logger, _ := zap.NewDevelopment()
	client := services.NewHTTPCustomerClient(server.URL, logger)

	assert.True(t, client.CustomerExists(context.Background(), 1))
}

func TestCustomerExists_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	logger, _ := zap.NewDevelopment()
	client := services.NewHTTPCustomerClient(server.URL, logger)

	assert.False(t, client.CustomerExists(context.Background(), 42))
}

func TestCustomerExists_UnreachableServiceReportsFalse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	logger, _ := zap.NewDevelopment()
	client := services.NewHTTPCustomerClient(server.URL, logger)

	assert.False(t, client.CustomerExists(context.Background(), 1))
}

func TestGetCustomer_Found(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(services.RemoteCustomer{
			ID: 1, Name: "Alice Johnson", Email: "alice@example.com", Address: "1 Main St",
		})
	}))
	defer server.Close()

	logger, _ := zap.NewDevelopment()
	client := services.NewHTTPCustomerClient(server.URL, logger)

	customer, err := client.GetCustomer(context.Background(), 1)

	assert.NoError(t, err)
	if assert.NotNil(t, customer) {
		assert.Equal(t, "alice@example.com", customer.Email)
	}
}

func TestGetCustomer_NotFoundIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	logger, _ := zap.NewDevelopment()
	client := services.NewHTTPCustomerClient(server.URL, logger)

	customer, err := client.GetCustomer(context.Background(), 42)

	assert.Error(t, err)
	assert.Nil(t, customer)
}

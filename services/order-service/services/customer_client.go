package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// RemoteCustomer is the customer record exposed by the customer service.
type RemoteCustomer struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// CustomerClient looks up customers in the customer service.
type CustomerClient interface {
	// CustomerExists reports whether the customer exists. Transport
	// failures are swallowed and reported as false: the order workflow
	// degrades to "customer not found" instead of propagating them.
	CustomerExists(ctx context.Context, customerID uint) bool
	GetCustomer(ctx context.Context, customerID uint) (*RemoteCustomer, error)
}

// HTTPCustomerClient is the default CustomerClient over HTTP.
type HTTPCustomerClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPCustomerClient creates a CustomerClient against the given base URL.
func NewHTTPCustomerClient(baseURL string, logger *zap.Logger) *HTTPCustomerClient {
	return &HTTPCustomerClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
		logger:  logger,
	}
}

// CustomerExists issues GET /api/customers/{id}; any 2xx means the
// customer exists.
func (c *HTTPCustomerClient) CustomerExists(ctx context.Context, customerID uint) bool {
	url := fmt.Sprintf("%s/api/customers/%d", c.baseURL, customerID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Error("Failed to build customer lookup request", zap.Uint("customer_id", customerID), zap.Error(err))
		return false
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("Customer lookup failed", zap.Uint("customer_id", customerID), zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// GetCustomer fetches the full customer record.
func (c *HTTPCustomerClient) GetCustomer(ctx context.Context, customerID uint) (*RemoteCustomer, error) {
	url := fmt.Sprintf("%s/api/customers/%d", c.baseURL, customerID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("customer service returned %d", resp.StatusCode)
	}

	var customer RemoteCustomer
	if err := json.NewDecoder(resp.Body).Decode(&customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

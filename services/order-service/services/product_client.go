package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// RemoteProduct is the product record exposed by the product service.
type RemoteProduct struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stockQuantity"`
}

// ProductClient looks up products and adjusts stock in the product service.
type ProductClient interface {
	FetchProduct(ctx context.Context, productID uint) (*RemoteProduct, error)
	// FetchProductsByIDs fetches products one by one; missing ids are
	// simply absent from the result, never an error.
	FetchProductsByIDs(ctx context.Context, productIDs []uint) ([]RemoteProduct, error)
	// UpdateStock applies a signed delta to the product's stock.
	UpdateStock(ctx context.Context, productID uint, delta int) error
}

// HTTPProductClient is the default ProductClient over HTTP.
type HTTPProductClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPProductClient creates a ProductClient against the given base URL.
func NewHTTPProductClient(baseURL string, logger *zap.Logger) *HTTPProductClient {
	return &HTTPProductClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
		logger:  logger,
	}
}

// FetchProduct fetches a product record; a 404 yields (nil, nil).
func (c *HTTPProductClient) FetchProduct(ctx context.Context, productID uint) (*RemoteProduct, error) {
	url := fmt.Sprintf("%s/api/products/%d", c.baseURL, productID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("product service returned %d", resp.StatusCode)
	}

	var product RemoteProduct
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, err
	}
	return &product, nil
}

// FetchProductsByIDs issues one lookup per id. The product API has no
// batch endpoint.
func (c *HTTPProductClient) FetchProductsByIDs(ctx context.Context, productIDs []uint) ([]RemoteProduct, error) {
	products := make([]RemoteProduct, 0, len(productIDs))
	for _, id := range productIDs {
		product, err := c.FetchProduct(ctx, id)
		if err != nil {
			return nil, err
		}
		if product != nil {
			products = append(products, *product)
		}
	}
	return products, nil
}

// UpdateStock issues PATCH /api/products/{id}/stock with a signed delta.
func (c *HTTPProductClient) UpdateStock(ctx context.Context, productID uint, delta int) error {
	url := fmt.Sprintf("%s/api/products/%d/stock", c.baseURL, productID)

	body, err := json.Marshal(map[string]any{"id": productID, "quantity": delta})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("product service returned %d: %s", resp.StatusCode, string(errBody))
	}
	return nil
}

package models

import (
	"fmt"
	"strings"
	"time"
)

// Product is the GORM model persisted in Postgres. Stock mutations go
// through ApplyStockDelta so the non-negative invariant holds.
type Product struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Name          string     `gorm:"type:varchar(200);not null" json:"name"`
	Description   string     `gorm:"type:text" json:"description"`
	Price         float64    `gorm:"not null" json:"price"`
	StockQuantity int        `gorm:"not null;default:0" json:"stockQuantity"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

// ValidationError reports a malformed product field.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// InsufficientStockError reports a stock delta that would drive the
// quantity below zero. Requested is the amount the caller tried to consume.
type InsufficientStockError struct {
	ProductID uint `json:"productId"`
	Requested int  `json:"requested"`
	Available int  `json:"available"`
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// NewProduct validates and builds a new Product.
func NewProduct(name, description string, price float64, stockQuantity int) (*Product, error) {
	if err := validateDetails(name, price); err != nil {
		return nil, err
	}
	if stockQuantity < 0 {
		return nil, &ValidationError{Message: "stock quantity cannot be negative"}
	}
	return &Product{
		Name:          strings.TrimSpace(name),
		Description:   description,
		Price:         price,
		StockQuantity: stockQuantity,
	}, nil
}

// UpdateDetails replaces name, description and price.
func (p *Product) UpdateDetails(name, description string, price float64) error {
	if err := validateDetails(name, price); err != nil {
		return err
	}
	p.Name = strings.TrimSpace(name)
	p.Description = description
	p.Price = price
	p.touch()
	return nil
}

// ApplyStockDelta adjusts the stock quantity by a signed delta
// (negative = consumption, positive = restock). When the delta would
// drive the quantity below zero it fails without mutating state.
func (p *Product) ApplyStockDelta(delta int) error {
	if p.StockQuantity+delta < 0 {
		return &InsufficientStockError{
			ProductID: p.ID,
			Requested: -delta,
			Available: p.StockQuantity,
		}
	}
	p.StockQuantity += delta
	p.touch()
	return nil
}

// HasSufficientStock reports whether the requested quantity is available.
func (p *Product) HasSufficientStock(requested int) bool {
	return p.StockQuantity >= requested
}

func validateDetails(name string, price float64) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Message: "product name cannot be empty"}
	}
	if price < 0 {
		return &ValidationError{Message: "product price cannot be negative"}
	}
	return nil
}

func (p *Product) touch() {
	now := time.Now().UTC()
	p.UpdatedAt = &now
}

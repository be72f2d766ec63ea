package models

import (
	"fmt"
	"strings"
	"time"
)

// Order is the aggregate root persisted in Postgres. CustomerName and the
// per-item ProductName/UnitPrice are snapshots taken at creation time and
// intentionally never re-synced with the owning services, so order history
// stays stable even if a customer or product later changes or is deleted.
// All mutations go through the aggregate methods, which keep TotalAmount
// equal to the sum of item subtotals.
type Order struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	CustomerID   uint        `gorm:"not null;index" json:"customerId"`
	CustomerName string      `gorm:"type:varchar(200);not null" json:"customerName"`
	OrderDate    time.Time   `gorm:"not null" json:"orderDate"`
	TotalAmount  float64     `gorm:"not null" json:"totalAmount"`
	UpdatedAt    *time.Time  `json:"updatedAt,omitempty"`
	Items        []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem is a single line of an order. Subtotal is always
// UnitPrice * Quantity; it is recomputed whenever the quantity changes.
type OrderItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderID     uint    `gorm:"not null;index" json:"orderId"`
	ProductID   uint    `gorm:"not null" json:"productId"`
	ProductName string  `gorm:"type:varchar(200);not null" json:"productName"`
	UnitPrice   float64 `gorm:"not null" json:"unitPrice"`
	Quantity    int     `gorm:"not null" json:"quantity"`
	Subtotal    float64 `gorm:"not null" json:"subtotal"`
}

// ValidationError reports a malformed argument to an aggregate operation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// DomainError reports a violated order rule, e.g. mutating a line that
// does not exist.
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string { return e.Message }

// NewOrder constructs an empty order for the given customer.
func NewOrder(customerID uint, customerName string) (*Order, error) {
	if customerID == 0 {
		return nil, &ValidationError{Message: "customer ID must be greater than zero"}
	}
	if strings.TrimSpace(customerName) == "" {
		return nil, &ValidationError{Message: "customer name cannot be empty"}
	}
	return &Order{
		CustomerID:   customerID,
		CustomerName: strings.TrimSpace(customerName),
		OrderDate:    time.Now().UTC(),
		TotalAmount:  0,
	}, nil
}

// AddItem appends a line for the product, or increments the quantity of an
// existing line for the same product. The first-seen name and unit price
// win; later AddItem calls for the same product never replace them.
func (o *Order) AddItem(productID uint, productName string, unitPrice float64, quantity int) error {
	if productID == 0 {
		return &ValidationError{Message: "product ID must be greater than zero"}
	}
	if strings.TrimSpace(productName) == "" {
		return &ValidationError{Message: "product name cannot be empty"}
	}
	if unitPrice < 0 {
		return &ValidationError{Message: "unit price cannot be negative"}
	}
	if quantity <= 0 {
		return &ValidationError{Message: "quantity must be greater than zero"}
	}

	if existing := o.findItem(productID); existing != nil {
		existing.setQuantity(existing.Quantity + quantity)
	} else {
		o.Items = append(o.Items, OrderItem{
			OrderID:     o.ID,
			ProductID:   productID,
			ProductName: strings.TrimSpace(productName),
			UnitPrice:   unitPrice,
			Quantity:    quantity,
			Subtotal:    unitPrice * float64(quantity),
		})
	}

	o.recalculateTotal()
	o.touch()
	return nil
}

// UpdateItemQuantity replaces the quantity of the line for the given product.
func (o *Order) UpdateItemQuantity(productID uint, quantity int) error {
	if quantity <= 0 {
		return &ValidationError{Message: "quantity must be greater than zero"}
	}

	item := o.findItem(productID)
	if item == nil {
		return &DomainError{Message: fmt.Sprintf("no item with product ID %d in the order", productID)}
	}

	item.setQuantity(quantity)
	o.recalculateTotal()
	o.touch()
	return nil
}

// RemoveItem deletes the line for the given product.
func (o *Order) RemoveItem(productID uint) error {
	for i := range o.Items {
		if o.Items[i].ProductID == productID {
			o.Items = append(o.Items[:i], o.Items[i+1:]...)
			o.recalculateTotal()
			o.touch()
			return nil
		}
	}
	return &DomainError{Message: fmt.Sprintf("no item with product ID %d in the order", productID)}
}

func (o *Order) findItem(productID uint) *OrderItem {
	for i := range o.Items {
		if o.Items[i].ProductID == productID {
			return &o.Items[i]
		}
	}
	return nil
}

func (o *Order) recalculateTotal() {
	var total float64
	for i := range o.Items {
		total += o.Items[i].Subtotal
	}
	o.TotalAmount = total
}

func (o *Order) touch() {
	now := time.Now().UTC()
	o.UpdatedAt = &now
}

func (it *OrderItem) setQuantity(quantity int) {
	it.Quantity = quantity
	it.Subtotal = it.UnitPrice * float64(quantity)
}

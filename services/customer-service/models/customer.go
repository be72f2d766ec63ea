package models

import (
	"regexp"
	"strings"
	"time"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Customer is the GORM model persisted in Postgres. Email uniqueness is
// enforced both by the uniqueIndex and by a write-time lookup in the
// service layer.
type Customer struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Name             string     `gorm:"type:varchar(200);not null" json:"name"`
	Email            string     `gorm:"type:varchar(254);not null;uniqueIndex" json:"email"`
	Address          string     `gorm:"type:varchar(500);not null" json:"address"`
	RegistrationDate time.Time  `gorm:"autoCreateTime" json:"registrationDate"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty"`
}

// ValidationError reports a malformed customer field.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewCustomer validates and builds a new Customer.
func NewCustomer(name, email, address string) (*Customer, error) {
	if err := validateDetails(name, email, address); err != nil {
		return nil, err
	}
	return &Customer{
		Name:    strings.TrimSpace(name),
		Email:   strings.TrimSpace(email),
		Address: strings.TrimSpace(address),
	}, nil
}

// UpdateDetails replaces name, email and address.
func (c *Customer) UpdateDetails(name, email, address string) error {
	if err := validateDetails(name, email, address); err != nil {
		return err
	}
	c.Name = strings.TrimSpace(name)
	c.Email = strings.TrimSpace(email)
	c.Address = strings.TrimSpace(address)
	now := time.Now().UTC()
	c.UpdatedAt = &now
	return nil
}

func validateDetails(name, email, address string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Message: "customer name cannot be empty"}
	}
	if strings.TrimSpace(email) == "" {
		return &ValidationError{Message: "customer email cannot be empty"}
	}
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return &ValidationError{Message: "customer email format is invalid"}
	}
	if strings.TrimSpace(address) == "" {
		return &ValidationError{Message: "customer address cannot be empty"}
	}
	return nil
}

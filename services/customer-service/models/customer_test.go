package models_test

import (
	"testing"

	"github.com/dmoralesv/ecommerce-microservices/services/customer-service/models"
	"github.com/stretchr/testify/assert"
)

func TestNewCustomer_Valid(t *testing.T) {
	customer, err := models.NewCustomer("Alice Johnson", "alice@example.com", "1 Main St")

	assert.NoError(t, err)
	assert.Equal(t, "Alice Johnson", customer.Name)
	assert.Equal(t, "alice@example.com", customer.Email)
	assert.Equal(t, "1 Main St", customer.Address)
}

func TestNewCustomer_InvalidEmailFormat(t *testing.T) {
	var vErr *models.ValidationError

	for _, email := range []string{"not-an-email", "a@b", "a b@c.com", "@example.com", ""} {
		_, err := models.NewCustomer("Alice", email, "1 Main St")
		assert.ErrorAs(t, err, &vErr, "email %q should be rejected", email)
	}
}

func TestNewCustomer_BlankFields(t *testing.T) {
	var vErr *models.ValidationError

	_, err := models.NewCustomer("  ", "alice@example.com", "1 Main St")
	assert.ErrorAs(t, err, &vErr)

	_, err = models.NewCustomer("Alice", "alice@example.com", "")
	assert.ErrorAs(t, err, &vErr)
}

func TestUpdateDetails(t *testing.T) {
	customer, _ := models.NewCustomer("Alice", "alice@example.com", "1 Main St")
	assert.Nil(t, customer.UpdatedAt)

	assert.NoError(t, customer.UpdateDetails("Alice J", "alice.j@example.com", "2 Oak Ave"))
	assert.Equal(t, "Alice J", customer.Name)
	assert.Equal(t, "alice.j@example.com", customer.Email)
	assert.NotNil(t, customer.UpdatedAt)

	var vErr *models.ValidationError
	assert.ErrorAs(t, customer.UpdateDetails("Alice", "bad-email", "2 Oak Ave"), &vErr)
}

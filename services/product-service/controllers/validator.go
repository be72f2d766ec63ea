package controllers

import (
	"fmt"
	"strings"

	"github.com/dmoralesv/ecommerce-microservices/services/product-service/services"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateCreateProductRequest runs struct validation and returns a
// human-readable message for the first violation.
func ValidateCreateProductRequest(req *services.CreateProductRequest) error {
	return translateValidationError(validate.Struct(req))
}

// ValidateUpdateProductRequest runs struct validation for update payloads.
func ValidateUpdateProductRequest(req *services.UpdateProductRequest) error {
	return translateValidationError(validate.Struct(req))
}

func translateValidationError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if ok := isValidationErrors(err, &verrs); ok && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return fmt.Errorf("%s is required", fieldName(fe))
		case "gte":
			return fmt.Errorf("%s must be greater than or equal to %s", fieldName(fe), fe.Param())
		default:
			return fmt.Errorf("%s is invalid", fieldName(fe))
		}
	}
	return err
}

func isValidationErrors(err error, target *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if ok {
		*target = verrs
	}
	return ok
}

func fieldName(fe validator.FieldError) string {
	return strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
}

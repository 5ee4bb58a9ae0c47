// Package apperrors defines the error taxonomy shared by the service and
// handler layers. Handlers map these to HTTP status codes with errors.Is.
package apperrors

import "errors"

// Validation errors. No partial write ever accompanies one of these.
var (
	ErrEmailExists       = errors.New("Email already exists")
	ErrInvalidPhone      = errors.New("Invalid phone format")
	ErrInvalidPrice      = errors.New("Price must be positive")
	ErrInvalidStock      = errors.New("Stock cannot be negative")
	ErrEmptyProductList  = errors.New("At least one product must be selected")
	ErrInvalidProductIDs = errors.New("One or more product IDs are invalid")
)

// Not-found errors.
var (
	ErrCustomerNotFound = errors.New("Invalid customer ID")
	ErrOrderNotFound    = errors.New("Order not found")
	ErrProductNotFound  = errors.New("Product not found")
)

// IsValidation reports whether err belongs to the validation family.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrEmailExists,
		ErrInvalidPhone,
		ErrInvalidPrice,
		ErrInvalidStock,
		ErrEmptyProductList,
		ErrInvalidProductIDs,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err belongs to the not-found family.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCustomerNotFound) ||
		errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrProductNotFound)
}

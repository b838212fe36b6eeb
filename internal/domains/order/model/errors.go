package model

import (
	"errors"
	"fmt"
	"strings"
)

// Order domain errors
var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrEmptyOrder      = errors.New("order must contain at least one item")
	ErrInvalidQuantity = errors.New("item quantity must be at least 1")
	ErrForbidden       = errors.New("order belongs to another user")
)

// Error codes for API responses
const (
	ErrCodeOrderNotFound   = "ORDER_001"
	ErrCodeEmptyOrder      = "ORDER_002"
	ErrCodeInvalidQuantity = "ORDER_003"
	ErrCodeUnknownProduct  = "ORDER_004"
	ErrCodeForbidden       = "ORDER_005"
	ErrCodeValidation      = "ORDER_006"
)

// PricingError reports catalog keys that could not be priced. Pricing
// is all or nothing: one unknown key fails the whole order.
type PricingError struct {
	UnknownKeys []string
}

func (e *PricingError) Error() string {
	return fmt.Sprintf("unknown products: %s", strings.Join(e.UnknownKeys, ", "))
}

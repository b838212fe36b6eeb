package model

import "errors"

// Product domain errors
var (
	ErrProductNotFound      = errors.New("product not found")
	ErrProductAlreadyExists = errors.New("product key already exists")
	ErrInvalidKey           = errors.New("invalid product key")
	ErrInvalidPrice         = errors.New("invalid price")
)

// Error codes for API responses
const (
	ErrCodeProductNotFound = "PRODUCT_001"
	ErrCodeProductExists   = "PRODUCT_002"
	ErrCodeInvalidKey      = "PRODUCT_003"
	ErrCodeInvalidPrice    = "PRODUCT_004"
	ErrCodeValidation      = "PRODUCT_005"
)

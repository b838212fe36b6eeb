package model

import "errors"

// Payment domain errors
var (
	ErrNotConfigured    = errors.New("payment provider not configured")
	ErrMissingSessionID = errors.New("session_id is required")
	ErrForbidden        = errors.New("checkout session belongs to another user")
)

// Error codes for API responses
const (
	ErrCodeNotConfigured    = "PAYMENT_001"
	ErrCodeMissingSessionID = "PAYMENT_002"
	ErrCodeSessionNotFound  = "PAYMENT_003"
	ErrCodeForbidden        = "PAYMENT_004"
	ErrCodeInvalidSignature = "PAYMENT_005"
)

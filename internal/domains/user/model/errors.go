package model

import "errors"

// User domain errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrRoleMismatch       = errors.New("account role does not match login type")
	ErrInvalidRole        = errors.New("invalid role")
)

// Error codes for API responses
const (
	ErrCodeUserNotFound       = "USER_001"
	ErrCodeEmailExists        = "USER_002"
	ErrCodeInvalidCredentials = "USER_003"
	ErrCodeRoleMismatch       = "USER_004"
	ErrCodeInvalidRole        = "USER_005"
	ErrCodeValidation         = "USER_006"
)

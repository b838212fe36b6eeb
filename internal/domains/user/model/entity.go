package model

import "time"

// Roles assignable to accounts
const (
	RoleShopper = "shopper"
	RoleAdmin   = "admin"
)

// User represents a registered account
type User struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

func ValidRole(role string) bool {
	return role == RoleShopper || role == RoleAdmin
}

package model

import (
	"encoding/json"
	"time"
)

// Order statuses
const (
	StatusCreated        = "created"
	StatusPendingPayment = "pending_payment"
	StatusPaid           = "paid"
)

// Payment statuses
const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// Order is a placed order. Item rows are stored as a JSONB snapshot so
// later catalog edits never change what an order says it sold.
type Order struct {
	ID              int64           `json:"id" db:"id"`
	UserID          int64           `json:"user_id" db:"user_id"`
	TotalCents      int64           `json:"total_cents" db:"total_cents"`
	Status          string          `json:"status" db:"status"`
	PaymentProvider *string         `json:"payment_provider" db:"payment_provider"`
	PaymentStatus   *string         `json:"payment_status" db:"payment_status"`
	PaymentRef      *string         `json:"payment_ref" db:"payment_ref"`
	Address         json.RawMessage `json:"address" db:"address_json"`
	Items           []OrderItem     `json:"items" db:"items_json"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// OrderItem is a priced line captured at order time
type OrderItem struct {
	Key            string `json:"key"`
	Type           string `json:"type"`
	Title          string `json:"title"`
	Image          string `json:"image,omitempty"`
	PriceCents     int64  `json:"price_cents"`
	Quantity       int64  `json:"quantity"`
	LineTotalCents int64  `json:"line_total_cents"`
}

package model

import (
	"fmt"
	"strings"
	"time"
)

// Product is a catalog item. Items are addressed by a composite key of
// the form "{type}:{id}", e.g. "mobiles:1" or "laptops:mbp14". The key
// is chosen at creation time and immutable afterwards.
type Product struct {
	Key         string    `json:"key" db:"key"`
	Type        string    `json:"type" db:"type"`
	Title       string    `json:"title" db:"title"`
	Brand       string    `json:"brand" db:"brand"`
	Model       string    `json:"model" db:"model"`
	Description string    `json:"description" db:"description"`
	Image       string    `json:"image" db:"image"`
	PriceCents  int64     `json:"price_cents" db:"price_cents"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

func MakeKey(productType, localID string) string {
	return productType + ":" + localID
}

// ParseKey splits a composite key into its type and local id parts
func ParseKey(key string) (string, string, error) {
	productType, localID, found := strings.Cut(key, ":")
	if !found || productType == "" || localID == "" {
		return "", "", fmt.Errorf("malformed product key %q", key)
	}
	return productType, localID, nil
}

package model

import (
	"encoding/json"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Amanisai/Emart/internal/shared/money"
)

// OrderItemRequest references a catalog item by composite key. Prices
// never come from the client.
type OrderItemRequest struct {
	Key      string `json:"key"`
	Quantity int64  `json:"quantity"`
}

func (r OrderItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Key, validation.Required),
		validation.Field(&r.Quantity, validation.Required, validation.Min(int64(1))),
	)
}

// CreateOrderRequest places an order for the authenticated user
type CreateOrderRequest struct {
	Items   []OrderItemRequest `json:"items"`
	Address json.RawMessage    `json:"address"`
}

func (r CreateOrderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Items, validation.Required, validation.Length(1, 100)),
	)
}

// OrderItemResponse is a priced line with boundary money strings
type OrderItemResponse struct {
	Key       string `json:"key"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Image     string `json:"image,omitempty"`
	Price     string `json:"price"`
	Quantity  int64  `json:"quantity"`
	LineTotal string `json:"lineTotal"`
}

// OrderResponse is the public view of an order
type OrderResponse struct {
	ID              int64               `json:"id"`
	UserID          int64               `json:"user_id"`
	UserEmail       string              `json:"user_email,omitempty"`
	Total           string              `json:"total"`
	Status          string              `json:"status"`
	PaymentProvider *string             `json:"payment_provider,omitempty"`
	PaymentStatus   *string             `json:"payment_status,omitempty"`
	PaymentRef      *string             `json:"payment_ref,omitempty"`
	Address         json.RawMessage     `json:"address,omitempty"`
	Items           []OrderItemResponse `json:"items"`
	CreatedAt       string              `json:"created_at"`
}

func ToOrderResponse(o *Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			Key:       item.Key,
			Type:      item.Type,
			Title:     item.Title,
			Image:     item.Image,
			Price:     money.FormatCents(item.PriceCents),
			Quantity:  item.Quantity,
			LineTotal: money.FormatCents(item.LineTotalCents),
		})
	}

	return OrderResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		Total:           money.FormatCents(o.TotalCents),
		Status:          o.Status,
		PaymentProvider: o.PaymentProvider,
		PaymentStatus:   o.PaymentStatus,
		PaymentRef:      o.PaymentRef,
		Address:         o.Address,
		Items:           items,
		CreatedAt:       o.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

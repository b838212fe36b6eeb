package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Amanisai/Emart/internal/shared/money"
)

// CreateProductRequest adds a catalog item. The caller supplies the
// local id; the composite key "{type}:{id}" is derived from it. Price
// is a 2dp decimal string such as "599.00".
type CreateProductRequest struct {
	Type        string `json:"type"`
	ID          string `json:"id"`
	Title       string `json:"title"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Price       string `json:"price"`
}

func (r CreateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Type, validation.Required, validation.Length(1, 40)),
		validation.Field(&r.ID, validation.Required, validation.Length(1, 40)),
		validation.Field(&r.Title, validation.Required, validation.Length(1, 160)),
		validation.Field(&r.Brand, validation.Length(0, 80)),
		validation.Field(&r.Model, validation.Length(0, 120)),
		validation.Field(&r.Description, validation.Length(0, 2000)),
		validation.Field(&r.Image, validation.Length(0, 500)),
		validation.Field(&r.Price, validation.Required),
	)
}

// UpdateProductRequest patches a catalog item. Nil fields are left
// unchanged; the key itself is immutable.
type UpdateProductRequest struct {
	Title       *string `json:"title"`
	Brand       *string `json:"brand"`
	Model       *string `json:"model"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Price       *string `json:"price"`
}

func (r UpdateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 160)),
		validation.Field(&r.Brand, validation.Length(0, 80)),
		validation.Field(&r.Model, validation.Length(0, 120)),
		validation.Field(&r.Description, validation.Length(0, 2000)),
		validation.Field(&r.Image, validation.Length(0, 500)),
		validation.Field(&r.Price, validation.NilOrNotEmpty),
	)
}

// ListProductsQuery filters the catalog listing. Type "all" (or empty)
// matches every type; Search matches title, brand, model and type.
type ListProductsQuery struct {
	Type   string `form:"type"`
	Search string `form:"q"`
}

// ProductResponse is the public view of a catalog item
type ProductResponse struct {
	Key         string `json:"key"`
	ID          string `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Brand       string `json:"brand,omitempty"`
	Model       string `json:"model,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Price       string `json:"price"`
}

func ToProductResponse(p *Product) ProductResponse {
	_, localID, _ := ParseKey(p.Key)
	return ProductResponse{
		Key:         p.Key,
		ID:          localID,
		Type:        p.Type,
		Title:       p.Title,
		Brand:       p.Brand,
		Model:       p.Model,
		Description: p.Description,
		Image:       p.Image,
		Price:       money.FormatCents(p.PriceCents),
	}
}

func ToProductResponses(products []Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i]))
	}
	return responses
}

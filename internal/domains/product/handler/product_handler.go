package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Amanisai/Emart/internal/domains/product/model"
	"github.com/Amanisai/Emart/internal/domains/product/service"
	"github.com/Amanisai/Emart/internal/shared/response"
)

type ProductHandler struct {
	service service.ProductService
}

func NewProductHandler(service service.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List handles GET /api/products?type=&q=
func (h *ProductHandler) List(c *gin.Context) {
	var query model.ListProductsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	products, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		h.mapProductError(c, err)
		return
	}

	response.Success(c, http.StatusOK, products)
}

// Get handles GET /api/products/:key
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.service.GetByKey(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.mapProductError(c, err)
		return
	}

	response.Success(c, http.StatusOK, product)
}

// Create handles POST /api/products (admin only)
func (h *ProductHandler) Create(c *gin.Context) {
	var req model.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.mapProductError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, product)
}

// Update handles PUT /api/products/:key (admin only)
func (h *ProductHandler) Update(c *gin.Context) {
	var req model.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.service.Update(c.Request.Context(), c.Param("key"), req)
	if err != nil {
		h.mapProductError(c, err)
		return
	}

	response.Success(c, http.StatusOK, product)
}

// Delete handles DELETE /api/products/:key (admin only)
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("key")); err != nil {
		h.mapProductError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"ok": true})
}

func (h *ProductHandler) mapProductError(c *gin.Context, err error) {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeValidation, err.Error())
		return
	}

	switch {
	case errors.Is(err, model.ErrProductNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeProductNotFound, "Product not found")
	case errors.Is(err, model.ErrProductAlreadyExists):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeProductExists, "Product key already exists")
	case errors.Is(err, model.ErrInvalidKey):
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeInvalidKey, "Invalid product key")
	case errors.Is(err, model.ErrInvalidPrice):
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeInvalidPrice, "Invalid price")
	default:
		response.InternalServerError(c, "Something went wrong")
	}
}

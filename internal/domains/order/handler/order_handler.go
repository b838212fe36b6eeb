package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Amanisai/Emart/internal/domains/order/model"
	"github.com/Amanisai/Emart/internal/domains/order/service"
	"github.com/Amanisai/Emart/internal/shared/middleware"
	"github.com/Amanisai/Emart/internal/shared/response"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(service service.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Create handles POST /api/orders
func (h *OrderHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req model.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.mapOrderError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, order)
}

// List handles GET /api/orders (own orders, newest first)
func (h *OrderHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	orders, err := h.service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		h.mapOrderError(c, err)
		return
	}

	response.Success(c, http.StatusOK, orders)
}

// Get handles GET /api/orders/:id (owner only)
func (h *OrderHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.service.GetForUser(c.Request.Context(), orderID, userID)
	if err != nil {
		h.mapOrderError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.ToOrderResponse(order))
}

// ListAll handles GET /api/orders/admin (admin only)
func (h *OrderHandler) ListAll(c *gin.Context) {
	orders, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		h.mapOrderError(c, err)
		return
	}

	response.Success(c, http.StatusOK, orders)
}

func (h *OrderHandler) mapOrderError(c *gin.Context, err error) {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeValidation, err.Error())
		return
	}

	var pricingErr *model.PricingError
	if errors.As(err, &pricingErr) {
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeUnknownProduct, pricingErr.Error())
		return
	}

	switch {
	case errors.Is(err, model.ErrOrderNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeOrderNotFound, "Order not found")
	case errors.Is(err, model.ErrEmptyOrder):
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeEmptyOrder, "Order must contain at least one item")
	case errors.Is(err, model.ErrInvalidQuantity):
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeInvalidQuantity, "Item quantity must be at least 1")
	case errors.Is(err, model.ErrForbidden):
		response.ErrorResponse(c, http.StatusForbidden, model.ErrCodeForbidden, "Order belongs to another user")
	default:
		response.InternalServerError(c, "Something went wrong")
	}
}

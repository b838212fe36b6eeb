package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	ordermodel "github.com/Amanisai/Emart/internal/domains/order/model"
	"github.com/Amanisai/Emart/internal/domains/payment/gateway"
	"github.com/Amanisai/Emart/internal/domains/payment/model"
	"github.com/Amanisai/Emart/internal/domains/payment/service"
	"github.com/Amanisai/Emart/internal/shared/middleware"
	"github.com/Amanisai/Emart/internal/shared/response"
	"github.com/Amanisai/Emart/pkg/logger"
)

type PaymentHandler struct {
	service service.PaymentService
}

func NewPaymentHandler(service service.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// CreateCheckoutSession handles POST /api/payments/stripe/checkout-session
func (h *PaymentHandler) CreateCheckoutSession(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req ordermodel.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	email := c.GetString(middleware.CtxEmail)

	result, err := h.service.CreateCheckoutSession(c.Request.Context(), userID, email, req)
	if err != nil {
		h.mapPaymentError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// VerifySessionRequest carries the session id returned to the success
// page after the hosted checkout redirect
type VerifySessionRequest struct {
	SessionID string `json:"sessionId"`
}

// VerifySession handles POST /api/payments/stripe/verify
func (h *PaymentHandler) VerifySession(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req VerifySessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.service.VerifySession(c.Request.Context(), userID, req.SessionID)
	if err != nil {
		h.mapPaymentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Webhook handles POST /api/payments/stripe/webhook. The body must
// reach signature verification untouched, so it is read raw here.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		response.BadRequest(c, "Failed to read request body")
		return
	}

	err = h.service.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, gateway.ErrInvalidSignature) {
			response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeInvalidSignature, "Invalid webhook signature")
			return
		}
		logger.Error("Webhook processing failed", err)
		response.InternalServerError(c, "Webhook processing failed")
		return
	}

	c.JSON(http.StatusOK, model.WebhookAck{Received: true})
}

func (h *PaymentHandler) mapPaymentError(c *gin.Context, err error) {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		response.ErrorResponse(c, http.StatusBadRequest, ordermodel.ErrCodeValidation, err.Error())
		return
	}

	var pricingErr *ordermodel.PricingError
	if errors.As(err, &pricingErr) {
		response.ErrorResponse(c, http.StatusBadRequest, ordermodel.ErrCodeUnknownProduct, pricingErr.Error())
		return
	}

	switch {
	case errors.Is(err, model.ErrNotConfigured):
		response.ErrorResponse(c, http.StatusInternalServerError, model.ErrCodeNotConfigured, "Payment provider not configured")
	case errors.Is(err, model.ErrMissingSessionID):
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeMissingSessionID, "sessionId is required")
	case errors.Is(err, model.ErrForbidden):
		response.ErrorResponse(c, http.StatusForbidden, model.ErrCodeForbidden, "Checkout session belongs to another user")
	case errors.Is(err, gateway.ErrSessionNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeSessionNotFound, "Checkout session not found")
	case errors.Is(err, ordermodel.ErrOrderNotFound):
		response.ErrorResponse(c, http.StatusNotFound, ordermodel.ErrCodeOrderNotFound, "Order not found")
	case errors.Is(err, ordermodel.ErrEmptyOrder):
		response.ErrorResponse(c, http.StatusBadRequest, ordermodel.ErrCodeEmptyOrder, "Order must contain at least one item")
	case errors.Is(err, ordermodel.ErrInvalidQuantity):
		response.ErrorResponse(c, http.StatusBadRequest, ordermodel.ErrCodeInvalidQuantity, "Item quantity must be at least 1")
	default:
		response.InternalServerError(c, "Something went wrong")
	}
}

package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	stripeapi "github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
	"github.com/stripe/stripe-go/v78/webhook"

	"github.com/Amanisai/Emart/internal/domains/payment/gateway"
	"github.com/Amanisai/Emart/pkg/logger"
)

const providerName = "stripe"

// Metadata keys planted on every checkout session so both
// reconciliation paths can find their order
const (
	metadataOrderID = "order_id"
	metadataUserID  = "user_id"
)

// Config holds the Stripe credentials and presentation settings
type Config struct {
	SecretKey     string
	WebhookSecret string
	Currency      string
}

// Gateway implements gateway.CheckoutGateway on Stripe Checkout
type Gateway struct {
	api    *client.API
	config Config
}

func NewGateway(config Config) *Gateway {
	backend := stripeapi.GetBackendWithConfig(stripeapi.APIBackend, &stripeapi.BackendConfig{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	})
	backends := &stripeapi.Backends{API: backend, Connect: backend, Uploads: backend}

	return &Gateway{
		api:    client.New(config.SecretKey, backends),
		config: config,
	}
}

func (g *Gateway) Name() string {
	return providerName
}

// CreateSession opens a hosted checkout session. The order and user
// ids travel in session metadata and come back on both the verify and
// webhook paths.
func (g *Gateway) CreateSession(ctx context.Context, req gateway.CreateSessionRequest) (*gateway.Session, error) {
	lineItems := make([]*stripeapi.CheckoutSessionLineItemParams, 0, len(req.LineItems))
	for _, item := range req.LineItems {
		lineItems = append(lineItems, &stripeapi.CheckoutSessionLineItemParams{
			Quantity: stripeapi.Int64(item.Quantity),
			PriceData: &stripeapi.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripeapi.String(strings.ToLower(g.config.Currency)),
				UnitAmount: stripeapi.Int64(item.AmountCents),
				ProductData: &stripeapi.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripeapi.String(item.Title),
				},
			},
		})
	}

	params := &stripeapi.CheckoutSessionParams{
		Mode:       stripeapi.String(string(stripeapi.CheckoutSessionModePayment)),
		SuccessURL: stripeapi.String(req.SuccessURL),
		CancelURL:  stripeapi.String(req.CancelURL),
		LineItems:  lineItems,
		Metadata: map[string]string{
			metadataOrderID: strconv.FormatInt(req.OrderID, 10),
			metadataUserID:  strconv.FormatInt(req.UserID, 10),
		},
	}
	params.Context = ctx
	if req.Email != "" {
		params.CustomerEmail = stripeapi.String(req.Email)
	}

	session, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	logger.Info("Checkout session created", map[string]interface{}{
		"session_id": session.ID,
		"order_id":   req.OrderID,
	})

	return &gateway.Session{ID: session.ID, URL: session.URL}, nil
}

// RetrieveSession reads a session back from Stripe for the synchronous
// verify path
func (g *Gateway) RetrieveSession(ctx context.Context, sessionID string) (*gateway.SessionStatus, error) {
	params := &stripeapi.CheckoutSessionParams{}
	params.Context = ctx

	session, err := g.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		var stripeErr *stripeapi.Error
		if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode == http.StatusNotFound {
			return nil, gateway.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to retrieve checkout session: %w", err)
	}

	status := &gateway.SessionStatus{
		ID:   session.ID,
		Paid: session.PaymentStatus == stripeapi.CheckoutSessionPaymentStatusPaid,
	}
	status.OrderID, status.UserID = parseMetadata(session.Metadata)
	return status, nil
}

// ParseWebhookEvent verifies the signature against the raw payload
// before any JSON is trusted
func (g *Gateway) ParseWebhookEvent(payload []byte, signatureHeader string) (*gateway.WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, signatureHeader, g.config.WebhookSecret)
	if err != nil {
		return nil, gateway.ErrInvalidSignature
	}

	result := &gateway.WebhookEvent{Type: string(event.Type)}
	if event.Type != "checkout.session.completed" {
		return result, nil
	}
	result.Completed = true

	var session stripeapi.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, fmt.Errorf("failed to parse event payload: %w", err)
	}

	result.SessionID = session.ID
	result.OrderID, result.UserID = parseMetadata(session.Metadata)
	result.OrderPresent = result.OrderID != 0
	return result, nil
}

func parseMetadata(metadata map[string]string) (orderID, userID int64) {
	orderID, _ = strconv.ParseInt(metadata[metadataOrderID], 10, 64)
	userID, _ = strconv.ParseInt(metadata[metadataUserID], 10, 64)
	return orderID, userID
}

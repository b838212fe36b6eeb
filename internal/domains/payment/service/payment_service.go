package service

import (
	"context"
	"errors"

	ordermodel "github.com/Amanisai/Emart/internal/domains/order/model"
	orderservice "github.com/Amanisai/Emart/internal/domains/order/service"
	"github.com/Amanisai/Emart/internal/domains/payment/gateway"
	"github.com/Amanisai/Emart/internal/domains/payment/model"
	"github.com/Amanisai/Emart/internal/shared/money"
	"github.com/Amanisai/Emart/pkg/logger"
)

type PaymentService interface {
	CreateCheckoutSession(ctx context.Context, userID int64, email string, req ordermodel.CreateOrderRequest) (*model.CheckoutSessionResponse, error)
	VerifySession(ctx context.Context, userID int64, sessionID string) (*model.VerifyResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error
}

type paymentService struct {
	gateway      gateway.CheckoutGateway
	orderService orderservice.OrderService
	successURL   string
	cancelURL    string
}

func NewPaymentService(
	gw gateway.CheckoutGateway,
	orderService orderservice.OrderService,
	successURL, cancelURL string,
) PaymentService {
	return &paymentService{
		gateway:      gw,
		orderService: orderService,
		successURL:   successURL,
		cancelURL:    cancelURL,
	}
}

// CreateCheckoutSession prices the cart, creates the order and opens a
// hosted checkout session. The session id is stored on the order
// before the redirect URL is handed back, so a crash after this call
// never leaves a session the webhook cannot reconcile.
func (s *paymentService) CreateCheckoutSession(ctx context.Context, userID int64, email string, req ordermodel.CreateOrderRequest) (*model.CheckoutSessionResponse, error) {
	if s.gateway == nil {
		return nil, model.ErrNotConfigured
	}

	// Step 1: create the order with server-side pricing
	order, err := s.orderService.CreatePendingPayment(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	// Step 2: open the provider session with order metadata attached
	lineItems := make([]gateway.LineItem, 0, len(order.Items))
	for _, item := range order.Items {
		lineItems = append(lineItems, gateway.LineItem{
			Title:       item.Title,
			AmountCents: item.PriceCents,
			Quantity:    item.Quantity,
		})
	}

	session, err := s.gateway.CreateSession(ctx, gateway.CreateSessionRequest{
		OrderID:    order.ID,
		UserID:     userID,
		Email:      email,
		LineItems:  lineItems,
		SuccessURL: s.successURL,
		CancelURL:  s.cancelURL,
	})
	if err != nil {
		return nil, err
	}

	// Step 3: persist the payment reference before returning the URL
	if err := s.orderService.AttachPaymentRef(ctx, order.ID, s.gateway.Name(), session.ID); err != nil {
		return nil, err
	}

	return &model.CheckoutSessionResponse{
		OrderID:   order.ID,
		SessionID: session.ID,
		URL:       session.URL,
	}, nil
}

// VerifySession is the synchronous reconciliation path the success
// page calls. The session must belong to the caller; a paid session
// finalizes the order through the same conditional transition the
// webhook uses.
func (s *paymentService) VerifySession(ctx context.Context, userID int64, sessionID string) (*model.VerifyResponse, error) {
	if s.gateway == nil {
		return nil, model.ErrNotConfigured
	}
	if sessionID == "" {
		return nil, model.ErrMissingSessionID
	}

	status, err := s.gateway.RetrieveSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if status.UserID != userID {
		return nil, model.ErrForbidden
	}
	if status.OrderID == 0 {
		return nil, ordermodel.ErrOrderNotFound
	}

	if status.Paid {
		if _, err := s.orderService.MarkPaid(ctx, status.OrderID, s.gateway.Name(), sessionID); err != nil {
			return nil, err
		}
	}

	order, err := s.orderService.GetForUser(ctx, status.OrderID, userID)
	if err != nil {
		return nil, err
	}

	return &model.VerifyResponse{
		OrderID:         order.ID,
		SessionID:       sessionID,
		Paid:            order.Status == ordermodel.StatusPaid,
		Status:          order.Status,
		Total:           money.FormatCents(order.TotalCents),
		PaymentStatus:   order.PaymentStatus,
		PaymentProvider: order.PaymentProvider,
		PaymentRef:      order.PaymentRef,
	}, nil
}

// HandleWebhook is the asynchronous reconciliation path. The signature
// is checked against the raw payload before anything else. Deliveries
// that verify but cannot be acted on (unrelated event types, missing
// or unknown order metadata) are logged and acknowledged so the
// provider stops retrying them; only infrastructure failures return an
// error.
func (s *paymentService) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	if s.gateway == nil {
		return model.ErrNotConfigured
	}

	event, err := s.gateway.ParseWebhookEvent(payload, signatureHeader)
	if err != nil {
		return err
	}

	if !event.Completed {
		logger.Debug("Ignoring webhook event", map[string]interface{}{"type": event.Type})
		return nil
	}

	if !event.OrderPresent {
		logger.Warn("Webhook session carries no order metadata", map[string]interface{}{
			"session_id": event.SessionID,
		})
		return nil
	}

	_, err = s.orderService.MarkPaid(ctx, event.OrderID, s.gateway.Name(), event.SessionID)
	if err != nil {
		if errors.Is(err, ordermodel.ErrOrderNotFound) {
			logger.Warn("Webhook references unknown order", map[string]interface{}{
				"order_id":   event.OrderID,
				"session_id": event.SessionID,
			})
			return nil
		}
		return err
	}
	return nil
}

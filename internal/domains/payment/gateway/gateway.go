package gateway

import (
	"context"
	"errors"
)

// Gateway errors
var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrSessionNotFound  = errors.New("checkout session not found")
)

// LineItem is one order line forwarded to the hosted checkout page
type LineItem struct {
	Title       string
	AmountCents int64
	Quantity    int64
}

// CreateSessionRequest carries everything a provider needs to open a
// hosted checkout session for one order
type CreateSessionRequest struct {
	OrderID    int64
	UserID     int64
	Email      string
	LineItems  []LineItem
	SuccessURL string
	CancelURL  string
}

// Session is a freshly created hosted checkout session
type Session struct {
	ID  string
	URL string
}

// SessionStatus is the provider's current view of a session. OrderID
// and UserID come from the metadata planted at creation time.
type SessionStatus struct {
	ID      string
	Paid    bool
	OrderID int64
	UserID  int64
}

// WebhookEvent is a verified provider notification. OrderPresent is
// false when the event carries no usable order metadata.
type WebhookEvent struct {
	Type         string
	SessionID    string
	Completed    bool
	OrderID      int64
	UserID       int64
	OrderPresent bool
}

// CheckoutGateway abstracts a hosted checkout provider so the payment
// service can be tested without talking to one
type CheckoutGateway interface {
	Name() string
	CreateSession(ctx context.Context, req CreateSessionRequest) (*Session, error)
	RetrieveSession(ctx context.Context, sessionID string) (*SessionStatus, error)
	ParseWebhookEvent(payload []byte, signatureHeader string) (*WebhookEvent, error)
}

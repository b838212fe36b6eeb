package model

// CheckoutSessionResponse points the client at the hosted checkout
// page. The payment reference is already stored on the order by the
// time this is returned.
type CheckoutSessionResponse struct {
	OrderID   int64  `json:"orderId"`
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// VerifyResponse reports the outcome of the synchronous verify path,
// projecting the reconciled order for the success page
type VerifyResponse struct {
	OrderID         int64   `json:"orderId"`
	SessionID       string  `json:"sessionId"`
	Paid            bool    `json:"paid"`
	Status          string  `json:"status"`
	Total           string  `json:"total"`
	PaymentStatus   *string `json:"paymentStatus"`
	PaymentProvider *string `json:"paymentProvider"`
	PaymentRef      *string `json:"paymentRef"`
}

// WebhookAck is returned for every accepted webhook delivery
type WebhookAck struct {
	Received bool `json:"received"`
}

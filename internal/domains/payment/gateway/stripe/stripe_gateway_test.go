package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	stripeapi "github.com/stripe/stripe-go/v78"
	"github.com/stretchr/testify/require"

	"github.com/Amanisai/Emart/internal/domains/payment/gateway"
)

const testWebhookSecret = "whsec_test_secret"

// signPayload builds a Stripe-Signature header the way Stripe does:
// v1 is an HMAC-SHA256 of "<timestamp>.<payload>" under the shared
// webhook secret
func signPayload(payload []byte, secret string, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func completedEventPayload(metadata string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_test_1",
		"object": "event",
		"api_version": %q,
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_test_123",
				"object": "checkout.session",
				"metadata": %s
			}
		}
	}`, stripeapi.APIVersion, metadata))
}

func newTestGateway() *Gateway {
	return NewGateway(Config{
		SecretKey:     "sk_test_key",
		WebhookSecret: testWebhookSecret,
		Currency:      "usd",
	})
}

func TestParseWebhookEventVerifiedAndParsed(t *testing.T) {
	t.Parallel()

	gw := newTestGateway()
	payload := completedEventPayload(`{"order_id": "42", "user_id": "7"}`)

	event, err := gw.ParseWebhookEvent(payload, signPayload(payload, testWebhookSecret, time.Now()))
	require.NoError(t, err)
	require.True(t, event.Completed)
	require.True(t, event.OrderPresent)
	require.Equal(t, "cs_test_123", event.SessionID)
	require.Equal(t, int64(42), event.OrderID)
	require.Equal(t, int64(7), event.UserID)
}

func TestParseWebhookEventRejectsBadSignature(t *testing.T) {
	t.Parallel()

	gw := newTestGateway()
	payload := completedEventPayload(`{"order_id": "42", "user_id": "7"}`)

	_, err := gw.ParseWebhookEvent(payload, signPayload(payload, "whsec_wrong_secret", time.Now()))
	require.ErrorIs(t, err, gateway.ErrInvalidSignature)

	_, err = gw.ParseWebhookEvent(payload, "")
	require.ErrorIs(t, err, gateway.ErrInvalidSignature)
}

func TestParseWebhookEventRejectsTamperedPayload(t *testing.T) {
	t.Parallel()

	gw := newTestGateway()
	payload := completedEventPayload(`{"order_id": "42", "user_id": "7"}`)
	header := signPayload(payload, testWebhookSecret, time.Now())

	tampered := completedEventPayload(`{"order_id": "43", "user_id": "7"}`)
	_, err := gw.ParseWebhookEvent(tampered, header)
	require.ErrorIs(t, err, gateway.ErrInvalidSignature)
}

func TestParseWebhookEventIgnoresOtherTypes(t *testing.T) {
	t.Parallel()

	gw := newTestGateway()
	payload := []byte(fmt.Sprintf(`{
		"id": "evt_test_2",
		"object": "event",
		"api_version": %q,
		"type": "invoice.paid",
		"data": {"object": {}}
	}`, stripeapi.APIVersion))

	event, err := gw.ParseWebhookEvent(payload, signPayload(payload, testWebhookSecret, time.Now()))
	require.NoError(t, err)
	require.False(t, event.Completed)
	require.Equal(t, "invoice.paid", event.Type)
}

func TestParseWebhookEventMissingMetadata(t *testing.T) {
	t.Parallel()

	gw := newTestGateway()
	payload := completedEventPayload(`{}`)

	event, err := gw.ParseWebhookEvent(payload, signPayload(payload, testWebhookSecret, time.Now()))
	require.NoError(t, err)
	require.True(t, event.Completed)
	require.False(t, event.OrderPresent)
	require.Zero(t, event.OrderID)
}

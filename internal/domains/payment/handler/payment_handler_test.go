package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	ordermodel "github.com/Amanisai/Emart/internal/domains/order/model"
	"github.com/Amanisai/Emart/internal/domains/payment/gateway"
	"github.com/Amanisai/Emart/internal/domains/payment/model"
)

type fakePaymentService struct {
	webhookPayload   []byte
	webhookSignature string
	webhookErr       error
}

func (f *fakePaymentService) CreateCheckoutSession(ctx context.Context, userID int64, email string, req ordermodel.CreateOrderRequest) (*model.CheckoutSessionResponse, error) {
	return &model.CheckoutSessionResponse{OrderID: 1, SessionID: "cs_test", URL: "https://example.com"}, nil
}

func (f *fakePaymentService) VerifySession(ctx context.Context, userID int64, sessionID string) (*model.VerifyResponse, error) {
	return &model.VerifyResponse{OrderID: 1, SessionID: sessionID, Paid: true, Status: ordermodel.StatusPaid}, nil
}

func (f *fakePaymentService) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	f.webhookPayload = payload
	f.webhookSignature = signatureHeader
	return f.webhookErr
}

func setupWebhookRouter(svc *fakePaymentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewPaymentHandler(svc)
	router.POST("/api/payments/stripe/webhook", h.Webhook)
	return router
}

func TestWebhookPassesRawBodyAndHeader(t *testing.T) {
	t.Parallel()

	svc := &fakePaymentService{}
	router := setupWebhookRouter(svc)

	body := `{"type":"checkout.session.completed"}`
	req := httptest.NewRequest(http.MethodPost, "/api/payments/stripe/webhook", strings.NewReader(body))
	req.Header.Set("Stripe-Signature", "t=1,v1=abc")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"received":true}`, rec.Body.String())
	require.Equal(t, body, string(svc.webhookPayload))
	require.Equal(t, "t=1,v1=abc", svc.webhookSignature)
}

func TestWebhookRejectsInvalidSignature(t *testing.T) {
	t.Parallel()

	svc := &fakePaymentService{webhookErr: gateway.ErrInvalidSignature}
	router := setupWebhookRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/payments/stripe/webhook", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), model.ErrCodeInvalidSignature)
}

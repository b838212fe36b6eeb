package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/hibiken/asynq"

	"github.com/Amanisai/Emart/internal/infrastructure/email"
	"github.com/Amanisai/Emart/internal/infrastructure/queue"
)

// HandlerRegistry wires task types to their handlers
type HandlerRegistry struct {
	emailService *email.Service
}

func newHandlerRegistry(emailService *email.Service) *HandlerRegistry {
	return &HandlerRegistry{emailService: emailService}
}

// RegisterHandlers attaches all task handlers to the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(queue.TypeOrderConfirmation, h.handleOrderConfirmation)
}

// handleOrderConfirmation sends the confirmation email for an order
// that just transitioned to paid
func (h *HandlerRegistry) handleOrderConfirmation(ctx context.Context, task *asynq.Task) error {
	var payload queue.OrderConfirmationPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		// Malformed payloads never succeed, skip retries
		return fmt.Errorf("invalid payload: %v: %w", err, asynq.SkipRetry)
	}

	subject := fmt.Sprintf("Order #%d confirmed", payload.OrderID)
	body := fmt.Sprintf(
		"Thank you for your purchase!\n\n"+
			"Your payment for order #%d has been received.\n"+
			"Order total: $%s\n\n"+
			"You can review your order at any time from your account.\n",
		payload.OrderID, payload.Total,
	)

	if err := h.emailService.Send(payload.Email, subject, body); err != nil {
		return fmt.Errorf("failed to send confirmation for order %d: %w", payload.OrderID, err)
	}

	log.Printf("[Worker] ✓ Confirmation sent - Order: %d, To: %s", payload.OrderID, payload.Email)
	return nil
}

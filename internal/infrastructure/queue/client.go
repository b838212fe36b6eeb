package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/Amanisai/Emart/pkg/logger"
)

// Task types handled by the background worker
const (
	TypeOrderConfirmation = "order:confirmation"
)

// Queue names, highest priority first
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// OrderConfirmationPayload is carried by order:confirmation tasks
type OrderConfirmationPayload struct {
	OrderID int64  `json:"order_id"`
	UserID  int64  `json:"user_id"`
	Email   string `json:"email"`
	Total   string `json:"total"`
}

// Client enqueues background tasks onto Redis via asynq
type Client struct {
	client *asynq.Client
}

func NewClient(redisAddr, redisPassword string, redisDB int) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		}),
	}
}

func (c *Client) Close() error {
	return c.client.Close()
}

// EnqueueOrderConfirmation schedules the confirmation email for an
// order that just transitioned to paid
func (c *Client) EnqueueOrderConfirmation(payload OrderConfirmationPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal task payload: %w", err)
	}

	task := asynq.NewTask(TypeOrderConfirmation, data)

	info, err := c.client.Enqueue(task,
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	logger.Info("Task enqueued", map[string]interface{}{
		"type":     task.Type(),
		"task_id":  info.ID,
		"queue":    info.Queue,
		"order_id": payload.OrderID,
	})
	return nil
}

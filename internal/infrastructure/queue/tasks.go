package queue

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// Task type names shared between the API (producer) and the worker (consumer).
const (
	TaskProcessCover = "cover:process"
)

// ProcessCoverPayload identifies which book's cover needs variants.
type ProcessCoverPayload struct {
	BookID string `json:"book_id"`
}

// Client wraps the asynq producer side.
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

// EnqueueProcessCover schedules variant generation for a book cover.
func (c *Client) EnqueueProcessCover(bookID string) error {
	payload, err := json.Marshal(ProcessCoverPayload{BookID: bookID})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	task := asynq.NewTask(TaskProcessCover, payload, asynq.MaxRetry(3))
	if _, err := c.client.Enqueue(task); err != nil {
		return fmt.Errorf("enqueue %s: %w", TaskProcessCover, err)
	}

	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

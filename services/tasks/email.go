package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TypeEmailReceipt = "email:receipt"

// EmailReceiptPayload carries everything the worker needs to compose and send
// one receipt. Delivery is single-attempt; the provider's webhook retry is the
// only redelivery mechanism in the system.
type EmailReceiptPayload struct {
	To       string    `json:"to"`
	Name     string    `json:"name"`
	TxRef    string    `json:"txRef"`
	Status   string    `json:"status"`
	Amount   float64   `json:"amount"`
	Currency string    `json:"currency"`
	Date     time.Time `json:"date"`
}

func NewEmailReceiptTask(payload EmailReceiptPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeEmailReceipt, b)
	opts := []asynq.Option{asynq.MaxRetry(0), asynq.Timeout(30 * time.Second)}

	return task, opts, nil
}

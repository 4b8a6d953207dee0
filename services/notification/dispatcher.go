package notification

import (
	"context"
	"fmt"

	notificationRepo "kingscogent/database/repository/notification"
	"kingscogent/models"
	"kingscogent/services/tasks"

	"firebase.google.com/go/v4/messaging"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// PushSender sends an FCM message. *messaging.Client satisfies this.
type PushSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// EmailQueue enqueues background tasks. *asynq.Client satisfies this.
type EmailQueue interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Dispatcher fans a recorded transaction out to the user's notification feed,
// their device (push) and their inbox (email). Channel failures are logged and
// isolated from each other; none of them affects the webhook response.
type Dispatcher struct {
	Notifications notificationRepo.NotificationRepository
	Push          PushSender
	Email         EmailQueue
	Logger        *zap.Logger
}

// Dispatch runs all three channels for one transaction update. The
// notification record is appended before returning; push is attempted inline;
// email is handed to the task queue and delivered out of band.
func (d *Dispatcher) Dispatch(ctx context.Context, user *models.User, tx *models.Transaction) {
	title := fmt.Sprintf("Transaction %s", tx.Status)
	body := fmt.Sprintf("Your payment of %s %.2f (ref %s) is %s as of %s.",
		tx.Currency, tx.Amount, tx.TxRef, tx.Status, tx.Date.Format("02 Jan 2006 15:04"))

	n := models.Notification{
		UserID:    user.ID,
		Title:     title,
		Body:      body,
		TxRef:     tx.TxRef,
		Amount:    tx.Amount,
		Status:    tx.Status,
		Read:      false,
		CreatedAt: tx.Date,
	}
	if _, err := d.Notifications.Create(ctx, n); err != nil {
		d.Logger.Error("Failed to append notification record",
			zap.String("userId", user.ID), zap.String("txRef", tx.TxRef), zap.Error(err))
	}

	d.sendPush(ctx, user, tx, title, body)
	d.enqueueEmail(ctx, user, tx)
}

func (d *Dispatcher) sendPush(ctx context.Context, user *models.User, tx *models.Transaction, title, body string) {
	if user.FCMToken == "" {
		d.Logger.Debug("User has no FCM token, skipping push", zap.String("userId", user.ID))
		return
	}

	msg := &messaging.Message{
		Token: user.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: map[string]string{
			"type":   "transaction_update",
			"txRef":  tx.TxRef,
			"status": tx.Status,
		},
	}

	if _, err := d.Push.Send(ctx, msg); err != nil {
		d.Logger.Error("Failed to send push notification",
			zap.String("userId", user.ID), zap.String("txRef", tx.TxRef), zap.Error(err))
	}
}

func (d *Dispatcher) enqueueEmail(ctx context.Context, user *models.User, tx *models.Transaction) {
	if user.Email == "" {
		d.Logger.Warn("User has no email on file, skipping receipt", zap.String("userId", user.ID))
		return
	}

	payload := tasks.EmailReceiptPayload{
		To:       user.Email,
		Name:     user.Name,
		TxRef:    tx.TxRef,
		Status:   tx.Status,
		Amount:   tx.Amount,
		Currency: tx.Currency,
		Date:     tx.Date,
	}
	task, opts, err := tasks.NewEmailReceiptTask(payload)
	if err != nil {
		d.Logger.Error("Failed to build email receipt task", zap.String("txRef", tx.TxRef), zap.Error(err))
		return
	}

	if _, err := d.Email.EnqueueContext(ctx, task, opts...); err != nil {
		d.Logger.Error("Failed to enqueue email receipt",
			zap.String("userId", user.ID), zap.String("txRef", tx.TxRef), zap.Error(err))
	}
}

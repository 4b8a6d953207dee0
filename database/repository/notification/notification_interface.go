package notificationRepo

import (
	"context"

	"kingscogent/models"
)

// NotificationRepository defines persistence for the append-only notification
// collection.
type NotificationRepository interface {
	// Create inserts a new notification and returns its ID.
	Create(ctx context.Context, n models.Notification) (string, error)
	// GetByUserID fetches a user's notifications, newest first.
	GetByUserID(ctx context.Context, userID string) ([]models.Notification, error)
}

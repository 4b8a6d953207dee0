package handlers

import (
	"net/http"

	notificationRepo "kingscogent/database/repository/notification"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NotificationHandler serves the read side of the notification feed.
type NotificationHandler struct {
	Repo   notificationRepo.NotificationRepository
	Logger *zap.Logger
}

func NewNotificationHandler(repo notificationRepo.NotificationRepository, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{Repo: repo, Logger: logger}
}

// GetUserNotificationsHandler handles GET /api/users/:id/notifications.
func (h *NotificationHandler) GetUserNotificationsHandler(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing user ID"})
		return
	}

	notifications, err := h.Repo.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		h.Logger.Error("Failed to fetch notifications", zap.String("userId", userID), zap.Error(err))
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.JSON(http.StatusOK, notifications)
}

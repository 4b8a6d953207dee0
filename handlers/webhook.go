package handlers

import (
	"errors"
	"net/http"

	"kingscogent/models"
	"kingscogent/services/webhook"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WebhookHandler exposes the Flutterwave callback endpoints.
type WebhookHandler struct {
	Service *webhook.Service
	Logger  *zap.Logger
}

func NewWebhookHandler(svc *webhook.Service, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{Service: svc, Logger: logger}
}

// FlutterwaveWebhookHandler handles POST /flutterwave-webhook. The signature
// middleware has already run; by this point the delivery is authenticated.
func (h *WebhookHandler) FlutterwaveWebhookHandler(c *gin.Context) {
	var ev models.WebhookEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		h.Logger.Warn("Malformed webhook body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON payload"})
		return
	}

	if _, err := h.Service.Process(c.Request.Context(), &ev); err != nil {
		var vErr *webhook.ValidationError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Reason})
		case errors.Is(err, webhook.ErrUserNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "User not found"})
		default:
			h.Logger.Error("Error storing transaction", zap.Error(err))
			c.String(http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	c.String(http.StatusOK, "Transaction updated successfully")
}

// TestHandler handles POST /test, a liveness probe with no side effects.
func (h *WebhookHandler) TestHandler(c *gin.Context) {
	c.String(http.StatusOK, "This is working")
}

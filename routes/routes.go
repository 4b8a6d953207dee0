package routes

import (
	"net/http"
	"time"

	"kingscogent/handlers"
	"kingscogent/middleware"
	"kingscogent/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle collects the handlers the router wires up.
type HandlerBundle struct {
	Webhook      *handlers.WebhookHandler
	Notification *handlers.NotificationHandler

	// WebhookSecret is the Flutterwave verif-hash shared secret.
	WebhookSecret string
}

// RegisterWebhookRoutes registers the payment-provider callback endpoints.
func RegisterWebhookRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.POST("/flutterwave-webhook", middleware.VerifySignature(hb.WebhookSecret), hb.Webhook.FlutterwaveWebhookHandler)
	r.POST("/test", hb.Webhook.TestHandler)
}

// RegisterUserRoutes registers user-scoped read endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.GET("/:id/notifications", hb.Notification.GetUserNotificationsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "verif-hash"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterWebhookRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterHealthRoute(r)
}

package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VerifySignature gates webhook routes on the verif-hash shared secret.
// The comparison is constant-time so the check leaks no timing signal about
// the secret. Requests with a missing, empty or mismatched header are
// rejected before any handler runs.
func VerifySignature(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		signature := c.GetHeader("verif-hash")
		if signature == "" || subtle.ConstantTimeCompare([]byte(signature), []byte(secret)) != 1 {
			zap.L().Warn("Rejected webhook with bad signature", zap.String("ip", getClientIP(c)))
			c.String(http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}
		c.Next()
	}
}

package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/html2url/pkg/errors"
	"github.com/noah-isme/html2url/pkg/response"
)

const apiKeyHeader = "X-API-Key"

// APIKey guards a route with a shared-secret header. An empty configured key
// disables the check entirely.
func APIKey(key string, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}
		provided := c.GetHeader(apiKeyHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
			logger.Warn("invalid api key attempt", zap.String("ip", c.ClientIP()))
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		c.Next()
	}
}

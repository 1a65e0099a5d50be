// api/util/http_util.go
package util

import (
	logger "github.com/cobaltsec/aegis/api/logging"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RespondWithError(c *gin.Context, code int, message string, err error) {
	logger.Error(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method))
	c.JSON(code, gin.H{"error": message})
}

// GetCallerIDFromContext returns the authenticated service identity placed
// on the context by the auth middleware, or "" on unauthenticated routes.
func GetCallerIDFromContext(c *gin.Context) string {
	callerID, exists := c.Get("callerID")
	if !exists {
		return ""
	}
	return callerID.(string)
}

// api/middleware/logger.go

package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	logger "github.com/cobaltsec/aegis/api/logging"
)

// Logger logs one line per handled request. Handler errors get their own
// error-level entries so a failed decision call is never buried in the
// access log.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		for _, e := range c.Errors.Errors() {
			logger.Error("Request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", path),
				zap.String("caller_ip", c.ClientIP()),
				zap.String("error", e),
			)
		}
		if len(c.Errors) > 0 {
			return
		}

		logger.Info("Request handled",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("caller_ip", c.ClientIP()),
		)
	}
}

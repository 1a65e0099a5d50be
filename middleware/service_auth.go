// api/middleware/service_auth.go
package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cobaltsec/aegis/api/config"
	logger "github.com/cobaltsec/aegis/api/logging"
)

// ServiceClaims are the bearer-token claims issued to calling services.
// Subject carries the service identity; Groups gate the admin surface.
type ServiceClaims struct {
	jwt.StandardClaims
	ServiceName string   `json:"service_name"`
	Groups      []string `json:"groups"`
}

// ServiceAuthMiddleware authenticates mutating admin routes with an HS256
// bearer token. The caller must hold at least one of the required groups.
func ServiceAuthMiddleware(requiredGroups []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			logger.Warn("No Authorization token provided",
				zap.String("path", c.Request.URL.Path))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		claims, err := parseServiceToken(tokenString)
		if err != nil {
			logger.Warn("Rejected service token",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		if !holdsAnyGroup(claims, requiredGroups) {
			logger.Warn("Service lacks required group",
				zap.String("service", claims.ServiceName),
				zap.Strings("required", requiredGroups))
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			c.Abort()
			return
		}

		c.Set("callerID", claims.Subject)
		c.Set("callerService", claims.ServiceName)
		c.Next()
	}
}

func parseServiceToken(tokenString string) (*ServiceClaims, error) {
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")
	secret := config.GetString("auth.jwt_secret")
	if secret == "" {
		return nil, fmt.Errorf("service auth is not configured")
	}

	token, err := jwt.ParseWithClaims(tokenString, &ServiceClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*ServiceClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token or wrong claims type")
	}
	return claims, nil
}

func holdsAnyGroup(claims *ServiceClaims, requiredGroups []string) bool {
	for _, group := range requiredGroups {
		for _, held := range claims.Groups {
			if held == group {
				return true
			}
		}
	}
	return false
}

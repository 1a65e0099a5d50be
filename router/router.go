// api/router/router.go

package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cobaltsec/aegis/api/controller"
	"github.com/cobaltsec/aegis/api/middleware"
)

func SetupRouter(
	controllers *controller.Controllers,
	rateLimitRequests int,
	rateLimitDuration time.Duration,
	adminGroups []string,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.RateLimiter(rateLimitRequests, rateLimitDuration))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	admin := api.Group("", middleware.ServiceAuthMiddleware(adminGroups))

	controllers.Decision.RegisterRoutes(api)
	controllers.Grant.RegisterRoutes(api, admin)
	controllers.Routing.RegisterRoutes(api)
	controllers.Audit.RegisterRoutes(api)
	controllers.Policy.RegisterRoutes(api, admin)

	return router
}

// api/controller/routing_controller.go
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	aegis_errors "github.com/cobaltsec/aegis/api/errors"
	"github.com/cobaltsec/aegis/api/model"
	"github.com/cobaltsec/aegis/api/service"
	"github.com/cobaltsec/aegis/api/util"
)

type RoutingController struct {
	routingService service.IRoutingService
}

func NewRoutingController(routingService service.IRoutingService) *RoutingController {
	return &RoutingController{
		routingService: routingService,
	}
}

// RegisterRoutes registers the API routes
func (rc *RoutingController) RegisterRoutes(r *gin.RouterGroup) {
	routing := r.Group("/routing")
	{
		routing.POST("/route", rc.RouteAccess)
		routing.GET("/history/:id", rc.RoutingHistory)
	}
}

// RouteAccess endpoint
func (rc *RoutingController) RouteAccess(c *gin.Context) {
	var req model.RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid route request", err)
		return
	}

	decision, err := rc.routingService.RouteAccess(c, req)
	if err != nil {
		if errors.Is(err, aegis_errors.ErrInvalidRequest) {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid route request", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to route access", aegis_errors.ErrInternalServer)
		}
		return
	}

	c.JSON(http.StatusOK, decision)
}

// RoutingHistory endpoint
func (rc *RoutingController) RoutingHistory(c *gin.Context) {
	principalID := c.Param("id")
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit < 0 {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", aegis_errors.ErrInvalidPagination)
		return
	}

	records, err := rc.routingService.RoutingHistory(c, principalID, limit)
	if err != nil {
		if errors.Is(err, aegis_errors.ErrInvalidRequest) {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid request", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to load routing history", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"principal_id": principalID,
		"history":      records,
	})
}

// api/controller/grant_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	aegis_errors "github.com/cobaltsec/aegis/api/errors"
	"github.com/cobaltsec/aegis/api/model"
	"github.com/cobaltsec/aegis/api/service"
	"github.com/cobaltsec/aegis/api/util"
)

type GrantController struct {
	grantService service.IGrantService
}

func NewGrantController(grantService service.IGrantService) *GrantController {
	return &GrantController{
		grantService: grantService,
	}
}

// RegisterRoutes registers the API routes. Mutations go on the
// authenticated admin group; reads stay on the open group.
func (gc *GrantController) RegisterRoutes(r, admin *gin.RouterGroup) {
	grants := admin.Group("/grants")
	{
		grants.POST("", gc.GrantObjectPermission)
		grants.POST("/bulk", gc.BulkGrant)
		grants.DELETE("", gc.RevokeObjectPermission)
	}
	r.GET("/grants/principal/:id", gc.ListForPrincipal)
}

// GrantObjectPermission endpoint
func (gc *GrantController) GrantObjectPermission(c *gin.Context) {
	var req model.GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid grant data", aegis_errors.ErrInvalidGrantData)
		return
	}
	grantedBy := util.GetCallerIDFromContext(c)

	created, err := gc.grantService.GrantObjectPermission(c, req, grantedBy)
	if err != nil {
		switch {
		case errors.Is(err, aegis_errors.ErrInvalidRequest):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid grant data", err)
		case aegis_errors.IsStoreUnavailable(err):
			util.RespondWithError(c, http.StatusServiceUnavailable, "Grant store unavailable", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to create grant", aegis_errors.ErrInternalServer)
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

// BulkGrant endpoint
func (gc *GrantController) BulkGrant(c *gin.Context) {
	var req model.BulkGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid bulk grant data", aegis_errors.ErrInvalidGrantData)
		return
	}
	grantedBy := util.GetCallerIDFromContext(c)

	result, err := gc.grantService.BulkGrant(c, req.Grants, grantedBy)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Bulk grant failed", err)
		return
	}

	status := http.StatusCreated
	if len(result.Failures) > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, result)
}

// RevokeObjectPermission endpoint
func (gc *GrantController) RevokeObjectPermission(c *gin.Context) {
	var req model.RevokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid revocation data", aegis_errors.ErrInvalidGrantData)
		return
	}
	revokedBy := util.GetCallerIDFromContext(c)

	if err := gc.grantService.RevokeObjectPermission(c, req, revokedBy); err != nil {
		switch {
		case errors.Is(err, aegis_errors.ErrInvalidRequest):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid revocation data", err)
		case aegis_errors.IsStoreUnavailable(err):
			util.RespondWithError(c, http.StatusServiceUnavailable, "Grant store unavailable", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to revoke grant", aegis_errors.ErrInternalServer)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// ListForPrincipal endpoint
func (gc *GrantController) ListForPrincipal(c *gin.Context) {
	principalID := c.Param("id")

	grants, err := gc.grantService.ListForPrincipal(c, principalID)
	if err != nil {
		if aegis_errors.IsStoreUnavailable(err) {
			util.RespondWithError(c, http.StatusServiceUnavailable, "Grant store unavailable", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to list grants", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"principal_id": principalID,
		"grants":       grants,
	})
}

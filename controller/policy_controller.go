// api/controller/policy_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	aegis_errors "github.com/cobaltsec/aegis/api/errors"
	"github.com/cobaltsec/aegis/api/service"
	"github.com/cobaltsec/aegis/api/util"
)

type PolicyController struct {
	policyAdminService service.IPolicyAdminService
}

func NewPolicyController(policyAdminService service.IPolicyAdminService) *PolicyController {
	return &PolicyController{
		policyAdminService: policyAdminService,
	}
}

// RegisterRoutes registers the API routes. Reload is admin-only.
func (pc *PolicyController) RegisterRoutes(r, admin *gin.RouterGroup) {
	r.GET("/policy/roles", pc.ListRoles)
	admin.POST("/policy/reload", pc.Reload)
}

// ListRoles endpoint
func (pc *PolicyController) ListRoles(c *gin.Context) {
	version, roles := pc.policyAdminService.Roles(c)
	c.JSON(http.StatusOK, gin.H{
		"version": version,
		"roles":   roles,
	})
}

// Reload endpoint
func (pc *PolicyController) Reload(c *gin.Context) {
	version, err := pc.policyAdminService.Reload(c)
	if err != nil {
		if aegis_errors.IsConfigError(err) {
			util.RespondWithError(c, http.StatusUnprocessableEntity, "Invalid policy configuration; previous tables kept", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to reload policy tables", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"version": version})
}

// api/controller/decision_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	aegis_errors "github.com/cobaltsec/aegis/api/errors"
	pdp_model "github.com/cobaltsec/aegis/api/pdp/model"
	"github.com/cobaltsec/aegis/api/service"
	"github.com/cobaltsec/aegis/api/util"
)

type DecisionController struct {
	decisionService service.IDecisionService
}

func NewDecisionController(decisionService service.IDecisionService) *DecisionController {
	return &DecisionController{
		decisionService: decisionService,
	}
}

// RegisterRoutes registers the API routes
func (dc *DecisionController) RegisterRoutes(r *gin.RouterGroup) {
	decisions := r.Group("/decisions")
	{
		decisions.POST("/check", dc.CheckPermission)
	}
	principals := r.Group("/principals")
	{
		principals.GET("/:id/permissions", dc.GetEffectivePermissions)
	}
}

// CheckPermission endpoint
func (dc *DecisionController) CheckPermission(c *gin.Context) {
	var req pdp_model.CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid check request", err)
		return
	}

	result, err := dc.decisionService.CheckPermission(c, req)
	if err != nil {
		if errors.Is(err, aegis_errors.ErrInvalidRequest) {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid check request", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to evaluate permission", aegis_errors.ErrInternalServer)
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetEffectivePermissions endpoint
func (dc *DecisionController) GetEffectivePermissions(c *gin.Context) {
	principalID := c.Param("id")

	permissions, err := dc.decisionService.GetEffectivePermissions(c, principalID)
	if err != nil {
		switch {
		case errors.Is(err, aegis_errors.ErrPrincipalNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Principal not found", err)
		case errors.Is(err, aegis_errors.ErrInvalidRequest):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid request", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to list permissions", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"principal_id": principalID,
		"permissions":  permissions,
	})
}

// api/controller/audit_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cobaltsec/aegis/api/audit"
	aegis_errors "github.com/cobaltsec/aegis/api/errors"
	"github.com/cobaltsec/aegis/api/util"
	helper_util "github.com/cobaltsec/aegis/api/util/helper"
)

type AuditController struct {
	auditService audit.Service
}

func NewAuditController(auditService audit.Service) *AuditController {
	return &AuditController{
		auditService: auditService,
	}
}

// RegisterRoutes registers the API routes
func (ac *AuditController) RegisterRoutes(r *gin.RouterGroup) {
	logs := r.Group("/audit")
	{
		logs.GET("/logs", ac.QueryLogs)
	}
}

// QueryLogs endpoint
func (ac *AuditController) QueryLogs(c *gin.Context) {
	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", aegis_errors.ErrInvalidPagination)
		return
	}

	filter := audit.Filter{
		PrincipalID: c.Query("principal_id"),
		Resource:    c.Query("resource"),
		Source:      c.Query("source"),
		Limit:       limit,
		Offset:      offset,
	}

	if v := c.Query("allowed"); v != "" {
		allowed := v == "true"
		filter.Allowed = &allowed
	}
	if v := c.Query("from"); v != "" {
		from, err := helper_util.ParseTime(v)
		if err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid from timestamp", err)
			return
		}
		filter.From = from
	}
	if v := c.Query("to"); v != "" {
		to, err := helper_util.ParseTime(v)
		if err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid to timestamp", err)
			return
		}
		filter.To = to
	}

	entries, err := ac.auditService.Query(c, filter)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to query audit logs", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"count":   len(entries),
	})
}

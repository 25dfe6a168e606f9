package handler

import (
	"net/http"

	"taxengine/internal/middleware"
	"taxengine/internal/service"
	"taxengine/pkg/pagination"
	"taxengine/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService service.AuditService
}

func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/v1/audit-logs")
	group.Use(middleware.RequirePermission("audit.read")) // Protect history logs
	{
		group.GET("", h.GetAuditLogs)
		group.GET("/actions", h.GetAuditActions)
	}
}

// GetAuditLogs retrieves paginated audit records
// @Summary      Get audit logs
// @Description  Retrieves the engine's write history, optionally filtered by action or entity
// @Tags         audit
// @Security     BearerAuth
// @Produce      json
// @Param        action     query     string  false  "Filter by action code (e.g. RECORD_PAYMENT)"
// @Param        entity_id  query     string  false  "Filter by entity ID"
// @Param        page       query     int     false  "Page number (default 1)"
// @Param        limit      query     int     false  "Number of items per page (default 20)"
// @Success      200        {object}  response.Response{data=pagination.Page}
// @Router       /api/v1/audit-logs [get]
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	params := pagination.Parse(c)

	logs, total, err := h.auditService.GetAuditLogs(c.Request.Context(), c.Query("action"), c.Query("entity_id"), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, pagination.NewPage(logs, total, params)))
}

// GetAuditActions lists the action codes audit rows can carry
// @Summary      Get audit actions
// @Description  Lists every action code the engine writes, for filter dropdowns
// @Tags         audit
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]string}
// @Router       /api/v1/audit-logs/actions [get]
func (h *AuditHandler) GetAuditActions(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, service.AuditActions()))
}

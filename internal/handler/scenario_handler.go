package handler

import (
	"net/http"

	"taxengine/internal/middleware"
	"taxengine/internal/service"
	"taxengine/pkg/response"

	"github.com/gin-gonic/gin"
)

type ScenarioHandler struct {
	scenarioService service.ScenarioService
}

func NewScenarioHandler(scenarioService service.ScenarioService) *ScenarioHandler {
	return &ScenarioHandler{scenarioService: scenarioService}
}

func (h *ScenarioHandler) RegisterRoutes(router *gin.RouterGroup) {
	assessments := router.Group("/api/v1/assessments")
	{
		assessments.POST("/:id/scenarios", middleware.RequirePermission("assessments.write"), h.RunScenario)
		assessments.GET("/:id/scenarios", middleware.RequirePermission("assessments.read"), h.ListScenarios)
	}

	scenarios := router.Group("/api/v1/scenarios")
	{
		scenarios.DELETE("/:id", middleware.RequirePermission("assessments.write"), h.DeleteScenario)
	}
}

// RunScenario computes and saves a what-if projection
// @Summary      Run scenario
// @Description  Applies signed deltas over the assessment's inputs and saves the recomputed outcome; the assessment itself is untouched
// @Tags         scenarios
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Assessment ID"
// @Param        payload  body      service.RunScenarioRequest  true  "Run Scenario Payload"
// @Success      201      {object}  response.Response{data=service.ScenarioResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/v1/assessments/{id}/scenarios [post]
func (h *ScenarioHandler) RunScenario(c *gin.Context) {
	var req service.RunScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	scenario, err := h.scenarioService.RunScenario(c.Request.Context(), c.Param("id"), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, scenario))
}

// ListScenarios returns an assessment's saved scenarios
// @Summary      List scenarios
// @Description  Retrieves all scenarios run against an assessment, newest first
// @Tags         scenarios
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Assessment ID"
// @Success      200  {object}  response.Response{data=[]service.ScenarioResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/v1/assessments/{id}/scenarios [get]
func (h *ScenarioHandler) ListScenarios(c *gin.Context) {
	scenarios, err := h.scenarioService.ListScenarios(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, scenarios))
}

// DeleteScenario removes a saved scenario
// @Summary      Delete scenario
// @Description  Deletes a saved what-if projection without touching its base assessment
// @Tags         scenarios
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Scenario ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/v1/scenarios/{id} [delete]
func (h *ScenarioHandler) DeleteScenario(c *gin.Context) {
	if err := h.scenarioService.DeleteScenario(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}

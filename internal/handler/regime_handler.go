package handler

import (
	"net/http"

	"taxengine/internal/middleware"
	"taxengine/internal/service"
	"taxengine/pkg/response"

	"github.com/gin-gonic/gin"
)

type RegimeHandler struct {
	regimeService service.RegimeService
}

func NewRegimeHandler(regimeService service.RegimeService) *RegimeHandler {
	return &RegimeHandler{regimeService: regimeService}
}

func (h *RegimeHandler) RegisterRoutes(router *gin.RouterGroup) {
	regimes := router.Group("/api/v1/regimes")
	{
		regimes.GET("", middleware.RequirePermission("assessments.read"), h.GetRuleTable)
		regimes.GET("/:code", middleware.RequirePermission("assessments.read"), h.GetRegime)
	}
}

// GetRuleTable returns the statutory table the engine computes from
// @Summary      Get rule table
// @Description  Retrieves the configured regimes, installment ladder, and interest parameters
// @Tags         regimes
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.RuleTableResponse}
// @Router       /api/v1/regimes [get]
func (h *RegimeHandler) GetRuleTable(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.regimeService.GetRuleTable(c.Request.Context())))
}

// GetRegime returns one regime's rates
// @Summary      Get regime
// @Description  Retrieves one tax regime's rate components and effective rate
// @Tags         regimes
// @Security     BearerAuth
// @Produce      json
// @Param        code  path      string  true  "Regime code (NORMAL, 115BAA, 115BAB)"
// @Success      200   {object}  response.Response{data=service.RegimeResponse}
// @Failure      404   {object}  response.Response
// @Router       /api/v1/regimes/{code} [get]
func (h *RegimeHandler) GetRegime(c *gin.Context) {
	regime, err := h.regimeService.GetRegime(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, regime))
}

package handler

import (
	"net/http"

	"taxengine/internal/middleware"
	"taxengine/internal/service"
	"taxengine/pkg/response"

	"github.com/gin-gonic/gin"
)

type StatisticsHandler struct {
	statisticsService service.StatisticsService
}

func NewStatisticsHandler(statisticsService service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService}
}

func (h *StatisticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	stats := router.Group("/api/v1/statistics")
	{
		stats.GET("/portfolio", middleware.RequirePermission("assessments.read"), h.GetPortfolio)
		stats.GET("/collections", middleware.RequirePermission("assessments.read"), h.GetCollections)
	}
}

// GetPortfolio returns aggregate figures across one year's assessments
// @Summary      Get portfolio statistics
// @Description  Returns status counts, liability and collection totals, overdue quarters, and the top liabilities for a financial year
// @Tags         statistics
// @Security     BearerAuth
// @Produce      json
// @Param        financial_year  query     string  false  "Financial year (e.g. 2025-26, defaults to current)"
// @Success      200             {object}  response.Response{data=model.PortfolioStatistics}
// @Failure      400             {object}  response.Response
// @Router       /api/v1/statistics/portfolio [get]
func (h *StatisticsHandler) GetPortfolio(c *gin.Context) {
	stats, err := h.statisticsService.GetPortfolio(c.Request.Context(), c.Query("financial_year"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

// GetCollections returns monthly receipt totals for one financial year
// @Summary      Get collections statistics
// @Description  Returns advance-tax receipts grouped by calendar month for a financial year
// @Tags         statistics
// @Security     BearerAuth
// @Produce      json
// @Param        financial_year  query     string  false  "Financial year (e.g. 2025-26, defaults to current)"
// @Success      200             {object}  response.Response{data=model.CollectionsStatistics}
// @Failure      400             {object}  response.Response
// @Router       /api/v1/statistics/collections [get]
func (h *StatisticsHandler) GetCollections(c *gin.Context) {
	stats, err := h.statisticsService.GetCollections(c.Request.Context(), c.Query("financial_year"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

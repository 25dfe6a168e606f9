package handler

import (
	"net/http"

	"taxengine/internal/middleware"
	"taxengine/internal/service"
	"taxengine/pkg/pagination"
	"taxengine/pkg/response"

	"github.com/gin-gonic/gin"
)

type AssessmentHandler struct {
	assessmentService service.AssessmentService
}

func NewAssessmentHandler(assessmentService service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentService: assessmentService}
}

func (h *AssessmentHandler) RegisterRoutes(router *gin.RouterGroup) {
	assessments := router.Group("/api/v1/assessments")
	{
		assessments.POST("", middleware.RequirePermission("assessments.write"), h.CreateAssessment)
		assessments.GET("", middleware.RequirePermission("assessments.read"), h.ListAssessments)
		assessments.GET("/:id", middleware.RequirePermission("assessments.read"), h.GetAssessment)
		assessments.PUT("/:id", middleware.RequirePermission("assessments.write"), h.UpdateAssessment)
		assessments.POST("/:id/activate", middleware.RequirePermission("assessments.write"), h.ActivateAssessment)
		assessments.POST("/:id/finalize", middleware.RequirePermission("assessments.write"), h.FinalizeAssessment)
		assessments.POST("/:id/refresh-ytd", middleware.RequirePermission("assessments.write"), h.RefreshYtd)
		assessments.POST("/:id/recalculate", middleware.RequirePermission("assessments.write"), h.RecalculateSchedules)
		assessments.GET("/:id/schedule", middleware.RequirePermission("assessments.read"), h.GetSchedule)
		assessments.GET("/:id/interest", middleware.RequirePermission("assessments.read"), h.GetInterest)
	}
}

// CreateAssessment creates a draft assessment and its preview schedule
// @Summary      Create assessment
// @Description  Creates a draft advance-tax assessment for a company and financial year
// @Tags         assessments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateAssessmentRequest  true  "Create Assessment Payload"
// @Success      201      {object}  response.Response{data=service.AssessmentResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/v1/assessments [post]
func (h *AssessmentHandler) CreateAssessment(c *gin.Context) {
	var req service.CreateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	assessment, err := h.assessmentService.CreateAssessment(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, assessment))
}

// ListAssessments returns a paginated list of assessments
// @Summary      List assessments
// @Description  Retrieves a paginated list of assessments with optional filters
// @Tags         assessments
// @Security     BearerAuth
// @Produce      json
// @Param        company_id      query     string  false  "Filter by company ID"
// @Param        financial_year  query     string  false  "Filter by financial year (e.g. 2025-26)"
// @Param        status          query     string  false  "Filter by status (DRAFT, ACTIVE, FINALIZED)"
// @Param        tax_regime      query     string  false  "Filter by regime (NORMAL, 115BAA, 115BAB)"
// @Param        page            query     int     false  "Page number (default 1)"
// @Param        limit           query     int     false  "Number of items per page (default 20)"
// @Success      200             {object}  response.Response{data=pagination.Page}
// @Failure      500             {object}  response.Response
// @Router       /api/v1/assessments [get]
func (h *AssessmentHandler) ListAssessments(c *gin.Context) {
	params := pagination.Parse(c)

	filter := service.AssessmentListFilter{
		CompanyID:     c.Query("company_id"),
		FinancialYear: c.Query("financial_year"),
		Status:        c.Query("status"),
		TaxRegime:     c.Query("tax_regime"),
		Page:          params.Page,
		Limit:         params.Limit,
	}

	assessments, total, err := h.assessmentService.ListAssessments(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, pagination.NewPage(assessments, total, params)))
}

// GetAssessment returns one assessment with its derived snapshot
// @Summary      Get assessment
// @Description  Retrieves an assessment by ID, including the derived liability snapshot
// @Tags         assessments
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Assessment ID"
// @Success      200  {object}  response.Response{data=service.AssessmentResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/v1/assessments/{id} [get]
func (h *AssessmentHandler) GetAssessment(c *gin.Context) {
	assessment, err := h.assessmentService.GetAssessment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, assessment))
}

// UpdateAssessment edits inputs and recomputes the snapshot and schedule
// @Summary      Update assessment
// @Description  Edits projections, reconciliation inputs, credits, or regime; recomputes everything derived
// @Tags         assessments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                           true  "Assessment ID"
// @Param        payload  body      service.UpdateAssessmentRequest  true  "Update Assessment Payload"
// @Success      200      {object}  response.Response{data=service.AssessmentResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/v1/assessments/{id} [put]
func (h *AssessmentHandler) UpdateAssessment(c *gin.Context) {
	var req service.UpdateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	assessment, err := h.assessmentService.UpdateAssessment(c.Request.Context(), c.Param("id"), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, assessment))
}

// ActivateAssessment moves a draft into the active state
// @Summary      Activate assessment
// @Description  Activates a draft assessment; due dates and overdue tracking start applying
// @Tags         assessments
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Assessment ID"
// @Success      200  {object}  response.Response{data=service.AssessmentResponse}
// @Failure      409  {object}  response.Response
// @Router       /api/v1/assessments/{id}/activate [post]
func (h *AssessmentHandler) ActivateAssessment(c *gin.Context) {
	assessment, err := h.assessmentService.ActivateAssessment(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, assessment))
}

// FinalizeAssessment freezes an active assessment
// @Summary      Finalize assessment
// @Description  Runs a last recompute, snapshots Section 234B interest, and freezes the assessment
// @Tags         assessments
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Assessment ID"
// @Success      200  {object}  response.Response{data=service.AssessmentResponse}
// @Failure      409  {object}  response.Response
// @Router       /api/v1/assessments/{id}/finalize [post]
func (h *AssessmentHandler) FinalizeAssessment(c *gin.Context) {
	assessment, err := h.assessmentService.FinalizeAssessment(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, assessment))
}

// RefreshYtd replaces the year-to-date actuals
// @Summary      Refresh YTD actuals
// @Description  Replaces YTD revenue and expenses, optionally re-projecting the remaining year from the run rate
// @Tags         assessments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "Assessment ID"
// @Param        payload  body      service.RefreshYtdRequest true  "Refresh YTD Payload"
// @Success      200      {object}  response.Response{data=service.AssessmentResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/v1/assessments/{id}/refresh-ytd [post]
func (h *AssessmentHandler) RefreshYtd(c *gin.Context) {
	var req service.RefreshYtdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	assessment, err := h.assessmentService.RefreshYtd(c.Request.Context(), c.Param("id"), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, assessment))
}

// RecalculateSchedules forces a recompute of the derived snapshot and schedule
// @Summary      Recalculate schedule
// @Description  Re-derives the liability snapshot and regenerates the quarterly schedule from current inputs
// @Tags         assessments
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Assessment ID"
// @Success      200  {object}  response.Response{data=service.AssessmentResponse}
// @Failure      409  {object}  response.Response
// @Router       /api/v1/assessments/{id}/recalculate [post]
func (h *AssessmentHandler) RecalculateSchedules(c *gin.Context) {
	assessment, err := h.assessmentService.RecalculateSchedules(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, assessment))
}

// GetSchedule returns the four quarterly installments
// @Summary      Get quarterly schedule
// @Description  Retrieves the assessment's installment schedule with fulfillment and deferment interest
// @Tags         assessments
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Assessment ID"
// @Success      200  {object}  response.Response{data=[]service.ScheduleEntryResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/v1/assessments/{id}/schedule [get]
func (h *AssessmentHandler) GetSchedule(c *gin.Context) {
	schedule, err := h.assessmentService.GetSchedule(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, schedule))
}

// GetInterest returns the Section 234B/234C interest breakdown
// @Summary      Get interest breakdown
// @Description  Retrieves per-quarter deferment interest and the year-end shortfall charge; live until finalization, snapshotted after
// @Tags         assessments
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Assessment ID"
// @Success      200  {object}  response.Response{data=service.InterestResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/v1/assessments/{id}/interest [get]
func (h *AssessmentHandler) GetInterest(c *gin.Context) {
	interest, err := h.assessmentService.GetInterest(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, interest))
}

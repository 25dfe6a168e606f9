package handler

import (
	"net/http"

	"taxengine/internal/middleware"
	"taxengine/internal/service"
	"taxengine/pkg/response"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func (h *PaymentHandler) RegisterRoutes(router *gin.RouterGroup) {
	assessments := router.Group("/api/v1/assessments")
	{
		assessments.POST("/:id/payments", middleware.RequirePermission("assessments.write"), h.RecordPayment)
		assessments.GET("/:id/payments", middleware.RequirePermission("assessments.read"), h.ListPayments)
	}

	payments := router.Group("/api/v1/payments")
	{
		payments.POST("/:id/retry-journal", middleware.RequirePermission("assessments.write"), h.RetryJournal)
	}
}

// RecordPayment records an advance-tax payment against an active assessment
// @Summary      Record payment
// @Description  Records a challan payment, reattributes installment fulfillment, and posts the accounting entry
// @Tags         payments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true  "Assessment ID"
// @Param        payload  body      service.RecordPaymentRequest  true  "Record Payment Payload"
// @Success      201      {object}  response.Response{data=service.PaymentResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/v1/assessments/{id}/payments [post]
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	var req service.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), c.Param("id"), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, payment))
}

// ListPayments returns an assessment's payment history
// @Summary      List payments
// @Description  Retrieves all payments recorded against an assessment, oldest first
// @Tags         payments
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Assessment ID"
// @Success      200  {object}  response.Response{data=[]service.PaymentResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/v1/assessments/{id}/payments [get]
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	payments, err := h.paymentService.ListPayments(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, payments))
}

// RetryJournal re-attempts the accounting post for a journal-pending payment
// @Summary      Retry journal posting
// @Description  Re-posts a payment whose accounting entry failed; a no-op if the journal number is already set
// @Tags         payments
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Payment ID"
// @Success      200  {object}  response.Response{data=service.PaymentResponse}
// @Failure      404  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /api/v1/payments/{id}/retry-journal [post]
func (h *PaymentHandler) RetryJournal(c *gin.Context) {
	payment, err := h.paymentService.RetryJournal(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, payment))
}

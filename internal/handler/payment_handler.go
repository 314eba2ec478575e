package handler

import (
	"net/http"

	"fiscaltrack/internal/middleware"
	"fiscaltrack/internal/model"
	"fiscaltrack/internal/service"
	"fiscaltrack/pkg/response"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func (h *PaymentHandler) RegisterRoutes(router *gin.RouterGroup) {
	anyRole := middleware.RequireRole(model.RoleAdmin, model.RoleAccountant, model.RoleAssistant)
	editors := middleware.RequireRole(model.RoleAdmin, model.RoleAccountant)

	payments := router.Group("/api/payments")
	{
		payments.POST("", editors, h.RegisterPayment)
	}
	router.GET("/api/obligations/:id/payments", anyRole, h.ListPayments)
}

// RegisterPayment records a payment and settles the obligation
// @Summary      Register payment
// @Description  Records a payment against a pending obligation and marks it settled in one transaction
// @Tags         payments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.RegisterPaymentRequest  true  "Payment Payload"
// @Success      201      {object}  response.Response{data=service.PaymentResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/payments [post]
func (h *PaymentHandler) RegisterPayment(c *gin.Context) {
	var req service.RegisterPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	payment, err := h.paymentService.RegisterPayment(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, payment))
}

// ListPayments returns the payments recorded for an obligation
// @Summary      List payments
// @Tags         payments
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Obligation ID"
// @Success      200  {object}  response.Response{data=[]service.PaymentResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/obligations/{id}/payments [get]
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid obligation id"))
		return
	}

	payments, err := h.paymentService.ListPayments(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, payments))
}

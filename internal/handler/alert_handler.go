package handler

import (
	"net/http"
	"strconv"
	"time"

	"fiscaltrack/internal/middleware"
	"fiscaltrack/internal/model"
	"fiscaltrack/internal/service"
	"fiscaltrack/pkg/response"

	"github.com/gin-gonic/gin"
)

// defaultWarningDays is the upcoming-due horizon when the caller does not
// pass warning_days.
const defaultWarningDays = 7

type AlertHandler struct {
	alertService service.AlertService
}

func NewAlertHandler(alertService service.AlertService) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

func (h *AlertHandler) RegisterRoutes(router *gin.RouterGroup) {
	anyRole := middleware.RequireRole(model.RoleAdmin, model.RoleAccountant, model.RoleAssistant)
	editors := middleware.RequireRole(model.RoleAdmin, model.RoleAccountant)

	alerts := router.Group("/api/alerts")
	{
		alerts.POST("/generate", editors, h.GenerateAlerts)
		alerts.GET("/pending", anyRole, h.ListPending)
		alerts.PUT("/:id/read", anyRole, h.MarkRead)
	}
}

// GenerateAlerts scans obligations and raises due/overdue alerts
// @Summary      Generate alerts
// @Description  Raises one unread alert per overdue or soon-due obligation; at most one per obligation per day
// @Tags         alerts
// @Security     BearerAuth
// @Produce      json
// @Param        date          query     string  false  "Reference date (YYYY-MM-DD, default today)"
// @Param        warning_days  query     int     false  "Upcoming-due horizon in days (default 7, clamped to >= 0)"
// @Success      200           {object}  response.Response{data=[]service.AlertResponse}
// @Failure      400           {object}  response.Response
// @Router       /api/alerts/generate [post]
func (h *AlertHandler) GenerateAlerts(c *gin.Context) {
	refDate := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "date must match YYYY-MM-DD"))
			return
		}
		refDate = parsed
	}

	warningDays := defaultWarningDays
	if daysStr := c.Query("warning_days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "warning_days must be an integer"))
			return
		}
		warningDays = parsed
	}

	alerts, err := h.alertService.GeneratePending(c.Request.Context(), refDate, warningDays)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, alerts))
}

// ListPending returns all unread alerts
// @Summary      List pending alerts
// @Tags         alerts
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.AlertResponse}
// @Router       /api/alerts/pending [get]
func (h *AlertHandler) ListPending(c *gin.Context) {
	alerts, err := h.alertService.ListPending(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, alerts))
}

// MarkRead flips an alert to read (idempotent)
// @Summary      Mark alert read
// @Tags         alerts
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Alert ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/alerts/{id}/read [put]
func (h *AlertHandler) MarkRead(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid alert id"))
		return
	}

	if err := h.alertService.MarkRead(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"read": id}))
}

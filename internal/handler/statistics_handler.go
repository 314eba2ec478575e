package handler

import (
	"net/http"
	"time"

	"fiscaltrack/internal/middleware"
	"fiscaltrack/internal/model"
	"fiscaltrack/internal/service"
	"fiscaltrack/pkg/response"

	"github.com/gin-gonic/gin"
)

type StatisticsHandler struct {
	statisticsService service.StatisticsService
}

func NewStatisticsHandler(statisticsService service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService}
}

func (h *StatisticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	anyRole := middleware.RequireRole(model.RoleAdmin, model.RoleAccountant, model.RoleAssistant)

	stats := router.Group("/api/statistics")
	{
		stats.GET("/obligations", anyRole, h.GetObligationStatistics)
	}
}

// GetObligationStatistics returns dashboard aggregates over the obligation book
// @Summary      Obligation statistics
// @Description  Per-status counts and totals, overdue count, and accrued interest as of a reference date
// @Tags         statistics
// @Security     BearerAuth
// @Produce      json
// @Param        date  query     string  false  "Reference date (YYYY-MM-DD, default today)"
// @Success      200   {object}  response.Response{data=model.ObligationStatistics}
// @Failure      500   {object}  response.Response
// @Router       /api/statistics/obligations [get]
func (h *StatisticsHandler) GetObligationStatistics(c *gin.Context) {
	refDate := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "date must match YYYY-MM-DD"))
			return
		}
		refDate = parsed
	}

	stats, err := h.statisticsService.GetObligationStatistics(c.Request.Context(), refDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

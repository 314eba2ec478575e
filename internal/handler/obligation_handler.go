package handler

import (
	"net/http"
	"time"

	"fiscaltrack/internal/middleware"
	"fiscaltrack/internal/model"
	"fiscaltrack/internal/service"
	"fiscaltrack/pkg/pagination"
	"fiscaltrack/pkg/response"

	"github.com/gin-gonic/gin"
)

type ObligationHandler struct {
	obligationService service.ObligationService
	typeService       service.ObligationTypeService
}

func NewObligationHandler(obligationService service.ObligationService, typeService service.ObligationTypeService) *ObligationHandler {
	return &ObligationHandler{
		obligationService: obligationService,
		typeService:       typeService,
	}
}

func (h *ObligationHandler) RegisterRoutes(router *gin.RouterGroup) {
	anyRole := middleware.RequireRole(model.RoleAdmin, model.RoleAccountant, model.RoleAssistant)
	editors := middleware.RequireRole(model.RoleAdmin, model.RoleAccountant)

	obligations := router.Group("/api/obligations")
	{
		obligations.POST("", editors, h.CreateObligation)
		obligations.GET("", anyRole, h.ListObligations)
		obligations.GET("/search", anyRole, h.SearchByPeriod)
		obligations.GET("/:id", anyRole, h.GetObligation)
		obligations.PUT("/:id", editors, h.UpdateObligation)
		obligations.DELETE("/:id", middleware.RequireRole(model.RoleAdmin), h.DeleteObligation)
		obligations.GET("/:id/interest", anyRole, h.GetInterest)
	}

	types := router.Group("/api/obligation-types")
	{
		types.GET("", anyRole, h.ListTypes)
	}
}

// CreateObligation creates a new obligation in PENDING status
// @Summary      Create obligation
// @Description  Creates a new fiscal obligation for a client, type and period
// @Tags         obligations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.ObligationRequest  true  "Obligation Payload"
// @Success      201      {object}  response.Response{data=service.ObligationResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/obligations [post]
func (h *ObligationHandler) CreateObligation(c *gin.Context) {
	var req service.ObligationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	obligation, err := h.obligationService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, obligation))
}

// ListObligations lists obligations, optionally filtered by client or
// sorted by due date
// @Summary      List obligations
// @Tags         obligations
// @Security     BearerAuth
// @Produce      json
// @Param        client_id  query     int     false  "Filter by client"
// @Param        sort       query     string  false  "Set to due_date for ascending due-date order (nulls last)"
// @Param        page       query     int     false  "Page number (default 1)"
// @Param        limit      query     int     false  "Items per page (default 20)"
// @Success      200        {object}  response.Response{data=object}
// @Router       /api/obligations [get]
func (h *ObligationHandler) ListObligations(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		obligations []service.ObligationResponse
		err         error
	)
	switch {
	case c.Query("client_id") != "":
		clientID, parseErr := parseID(c.Query("client_id"))
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid client_id"))
			return
		}
		obligations, err = h.obligationService.ListByClient(ctx, clientID)
	case c.Query("sort") == "due_date":
		obligations, err = h.obligationService.ListSortedByDueDate(ctx)
	default:
		obligations, err = h.obligationService.List(ctx)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	params := pagination.Parse(c)
	from, to := params.Slice(len(obligations))
	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"obligations": obligations[from:to],
		"total":       len(obligations),
		"page":        params.Page,
		"limit":       params.Limit,
	}))
}

// SearchByPeriod finds an obligation by period key via binary search
// @Summary      Search obligation by period
// @Tags         obligations
// @Security     BearerAuth
// @Produce      json
// @Param        period  query     string  true  "Period key (YYYY-MM)"
// @Success      200     {object}  response.Response{data=service.ObligationResponse}
// @Failure      404     {object}  response.Response
// @Router       /api/obligations/search [get]
func (h *ObligationHandler) SearchByPeriod(c *gin.Context) {
	obligation, err := h.obligationService.SearchPeriod(c.Request.Context(), c.Query("period"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, obligation))
}

// GetObligation returns one obligation by id
// @Summary      Get obligation
// @Tags         obligations
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Obligation ID"
// @Success      200  {object}  response.Response{data=service.ObligationResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/obligations/{id} [get]
func (h *ObligationHandler) GetObligation(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid obligation id"))
		return
	}

	obligation, err := h.obligationService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, obligation))
}

// UpdateObligation re-validates and persists an existing obligation
// @Summary      Update obligation
// @Tags         obligations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                        true  "Obligation ID"
// @Param        payload  body      service.ObligationRequest  true  "Obligation Payload"
// @Success      200      {object}  response.Response{data=service.ObligationResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/obligations/{id} [put]
func (h *ObligationHandler) UpdateObligation(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid obligation id"))
		return
	}

	var req service.ObligationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	obligation, err := h.obligationService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, obligation))
}

// DeleteObligation removes an obligation
// @Summary      Delete obligation
// @Tags         obligations
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Obligation ID"
// @Success      200  {object}  response.Response
// @Router       /api/obligations/{id} [delete]
func (h *ObligationHandler) DeleteObligation(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid obligation id"))
		return
	}

	if err := h.obligationService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": id}))
}

// GetInterest computes late-payment interest as of a reference date
// @Summary      Compute interest
// @Description  Returns the accrued late-payment interest without mutating the obligation
// @Tags         obligations
// @Security     BearerAuth
// @Produce      json
// @Param        id    path      int     true   "Obligation ID"
// @Param        date  query     string  false  "Reference date (YYYY-MM-DD, default today)"
// @Success      200   {object}  response.Response{data=service.InterestResponse}
// @Failure      404   {object}  response.Response
// @Router       /api/obligations/{id}/interest [get]
func (h *ObligationHandler) GetInterest(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid obligation id"))
		return
	}

	refDate := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		refDate, err = time.Parse("2006-01-02", dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "date must match YYYY-MM-DD"))
			return
		}
	}

	interest, err := h.obligationService.Interest(c.Request.Context(), id, refDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, interest))
}

// ListTypes returns the obligation type catalog
// @Summary      List obligation types
// @Tags         obligations
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.ObligationType}
// @Router       /api/obligation-types [get]
func (h *ObligationHandler) ListTypes(c *gin.Context) {
	types, err := h.typeService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, types))
}

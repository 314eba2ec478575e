package handler

import (
	"net/http"
	"strconv"

	"fiscaltrack/internal/middleware"
	"fiscaltrack/internal/model"
	"fiscaltrack/internal/service"
	"fiscaltrack/pkg/pagination"
	"fiscaltrack/pkg/response"

	"github.com/gin-gonic/gin"
)

type ClientHandler struct {
	clientService service.ClientService
}

func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

func (h *ClientHandler) RegisterRoutes(router *gin.RouterGroup) {
	anyRole := middleware.RequireRole(model.RoleAdmin, model.RoleAccountant, model.RoleAssistant)
	editors := middleware.RequireRole(model.RoleAdmin, model.RoleAccountant)

	clients := router.Group("/api/clients")
	{
		clients.POST("", editors, h.CreateClient)
		clients.GET("", anyRole, h.ListClients)
		clients.GET("/:id", anyRole, h.GetClient)
		clients.PUT("/:id", editors, h.UpdateClient)
		clients.DELETE("/:id", middleware.RequireRole(model.RoleAdmin), h.DeleteClient)
	}
}

// CreateClient registers a new client
// @Summary      Register client
// @Description  Registers a new client with a unique 11-digit tax id
// @Tags         clients
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.ClientRequest  true  "Client Payload"
// @Success      201      {object}  response.Response{data=service.ClientResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/clients [post]
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req service.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, client))
}

// ListClients returns all clients, optionally filtered by tax id
// @Summary      List clients
// @Tags         clients
// @Security     BearerAuth
// @Produce      json
// @Param        tax_id  query     string  false  "Exact tax id lookup"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Items per page (default 20)"
// @Success      200     {object}  response.Response{data=object}
// @Failure      404     {object}  response.Response
// @Router       /api/clients [get]
func (h *ClientHandler) ListClients(c *gin.Context) {
	if taxID := c.Query("tax_id"); taxID != "" {
		client, err := h.clientService.GetByTaxID(c.Request.Context(), taxID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.Success(http.StatusOK, []service.ClientResponse{client}))
		return
	}

	clients, err := h.clientService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	params := pagination.Parse(c)
	from, to := params.Slice(len(clients))
	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"clients": clients[from:to],
		"total":   len(clients),
		"page":    params.Page,
		"limit":   params.Limit,
	}))
}

// GetClient returns one client by id
// @Summary      Get client
// @Tags         clients
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Client ID"
// @Success      200  {object}  response.Response{data=service.ClientResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/clients/{id} [get]
func (h *ClientHandler) GetClient(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid client id"))
		return
	}

	client, err := h.clientService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, client))
}

// UpdateClient updates a client's mutable fields
// @Summary      Update client
// @Tags         clients
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                    true  "Client ID"
// @Param        payload  body      service.ClientRequest  true  "Client Payload"
// @Success      200      {object}  response.Response{data=service.ClientResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/clients/{id} [put]
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid client id"))
		return
	}

	var req service.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	client, err := h.clientService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, client))
}

// DeleteClient removes a client
// @Summary      Delete client
// @Tags         clients
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Client ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/clients/{id} [delete]
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid client id"))
		return
	}

	if err := h.clientService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": id}))
}

// parseID parses a positive integer path parameter.
func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

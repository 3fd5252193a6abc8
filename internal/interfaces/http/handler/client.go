package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	clientapp "github.com/coldpitch/backend/internal/application/client"
	"github.com/coldpitch/backend/internal/interfaces/http/middleware"
)

// ClientHandler handles client and project endpoints
type ClientHandler struct {
	BaseHandler
	service *clientapp.ClientService
}

// NewClientHandler creates a new client handler
func NewClientHandler(service *clientapp.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

// Create adds a client
func (h *ClientHandler) Create(c *gin.Context) {
	var req clientapp.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.CreateClient(c.Request.Context(), req, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get returns a single client
func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	resp, err := h.service.GetClient(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update replaces a client's editable fields
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	var req clientapp.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.UpdateClient(c.Request.Context(), id, req, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Deactivate marks a client inactive along with its projects
func (h *ClientHandler) Deactivate(c *gin.Context) {
	h.clientTransition(c, h.service.DeactivateClient)
}

// Reactivate marks a client active again
func (h *ClientHandler) Reactivate(c *gin.Context) {
	h.clientTransition(c, h.service.ReactivateClient)
}

// Delete removes a client
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	if err := h.service.DeleteClient(c.Request.Context(), id, actorID(c)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// List returns a filtered, paginated page of clients
func (h *ClientHandler) List(c *gin.Context) {
	var filter clientapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	page, err := h.service.ListClients(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// CreateProject adds a recurring project under a client
func (h *ClientHandler) CreateProject(c *gin.Context) {
	var req clientapp.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.CreateProject(c.Request.Context(), req, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetProject returns a single project
func (h *ClientHandler) GetProject(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	resp, err := h.service.GetProject(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpdateProject replaces a project's editable fields
func (h *ClientHandler) UpdateProject(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	var req clientapp.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.UpdateProject(c.Request.Context(), id, req, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListProjects returns the projects under one client
func (h *ClientHandler) ListProjects(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	items, err := h.service.ListProjectsByClient(c.Request.Context(), clientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}

// MarkRenewalPaid confirms a project's renewal payment and advances
// the next renewal date by one billing cycle
func (h *ClientHandler) MarkRenewalPaid(c *gin.Context) {
	h.projectTransition(c, h.service.MarkRenewalPaid)
}

// DeactivateProject stops a project's renewal cycle
func (h *ClientHandler) DeactivateProject(c *gin.Context) {
	h.projectTransition(c, h.service.DeactivateProject)
}

// DeleteProject removes a project
func (h *ClientHandler) DeleteProject(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	if err := h.service.DeleteProject(c.Request.Context(), id, actorID(c)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// UpcomingRenewals lists active projects with renewals due soon
func (h *ClientHandler) UpcomingRenewals(c *gin.Context) {
	items, err := h.service.UpcomingRenewals(c.Request.Context(), time.Now())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}

// RenewalStats summarizes recurring revenue across active projects
func (h *ClientHandler) RenewalStats(c *gin.Context) {
	stats, err := h.service.RenewalStats(c.Request.Context(), time.Now())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}

func (h *ClientHandler) clientTransition(c *gin.Context, fn func(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*clientapp.ClientResponse, error)) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	resp, err := fn(c.Request.Context(), id, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

func (h *ClientHandler) projectTransition(c *gin.Context, fn func(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*clientapp.ProjectResponse, error)) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	resp, err := fn(c.Request.Context(), id, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

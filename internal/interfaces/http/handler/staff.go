package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	staffapp "github.com/coldpitch/backend/internal/application/staff"
	"github.com/coldpitch/backend/internal/interfaces/http/middleware"
)

// StaffHandler handles staff administration endpoints
type StaffHandler struct {
	BaseHandler
	service *staffapp.StaffService
}

// NewStaffHandler creates a new staff handler
func NewStaffHandler(service *staffapp.StaffService) *StaffHandler {
	return &StaffHandler{service: service}
}

// Create adds a staff member, optionally with login credentials
func (h *StaffHandler) Create(c *gin.Context) {
	var req staffapp.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.CreateStaff(c.Request.Context(), req, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get returns a single staff member
func (h *StaffHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid staff ID")
		return
	}

	resp, err := h.service.GetStaff(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update replaces a staff member's name, role and duty days
func (h *StaffHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid staff ID")
		return
	}

	var req staffapp.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.UpdateStaff(c.Request.Context(), id, req, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Suspend suspends a staff member
func (h *StaffHandler) Suspend(c *gin.Context) {
	h.transition(c, h.service.SuspendStaff)
}

// Activate lifts a staff member's suspension
func (h *StaffHandler) Activate(c *gin.Context) {
	h.transition(c, h.service.ActivateStaff)
}

// Delete removes a staff member's profile
func (h *StaffHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid staff ID")
		return
	}

	if err := h.service.DeleteStaff(c.Request.Context(), id, actorID(c)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// List returns a filtered, paginated page of staff members
func (h *StaffHandler) List(c *gin.Context) {
	var filter staffapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	page, err := h.service.ListStaff(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// DeleteAuthUser removes a login account and revokes its sessions.
// The staff profile it was linked to is kept.
func (h *StaffHandler) DeleteAuthUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.service.DeleteAuthUser(c.Request.Context(), id, actorID(c)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// SendCredentialsEmail emails login credentials to a staff member
func (h *StaffHandler) SendCredentialsEmail(c *gin.Context) {
	var req staffapp.SendCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if err := h.service.SendCredentialsEmail(c.Request.Context(), req, actorID(c)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Credentials email sent"})
}

func (h *StaffHandler) transition(c *gin.Context, fn func(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*staffapp.StaffResponse, error)) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid staff ID")
		return
	}

	resp, err := fn(c.Request.Context(), id, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

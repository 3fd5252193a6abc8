package handler

import (
	"github.com/gin-gonic/gin"

	activityapp "github.com/coldpitch/backend/internal/application/activity"
)

// ActivityHandler handles audit trail endpoints
type ActivityHandler struct {
	BaseHandler
	service *activityapp.ActivityService
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(service *activityapp.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// List returns the audit trail, newest first
func (h *ActivityHandler) List(c *gin.Context) {
	var filter activityapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	page, err := h.service.ListActivity(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// ListByStaff returns one staff member's audit trail
func (h *ActivityHandler) ListByStaff(c *gin.Context) {
	staffID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid staff ID")
		return
	}

	var filter activityapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	page, err := h.service.ListStaffActivity(c.Request.Context(), staffID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

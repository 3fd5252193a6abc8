package handler

import (
	"github.com/gin-gonic/gin"

	settingsapp "github.com/coldpitch/backend/internal/application/settings"
	"github.com/coldpitch/backend/internal/interfaces/http/middleware"
)

// SettingsHandler handles workspace settings endpoints
type SettingsHandler struct {
	BaseHandler
	service *settingsapp.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(service *settingsapp.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// Get returns the full settings document
func (h *SettingsHandler) Get(c *gin.Context) {
	resp, err := h.service.GetSettings(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpdateProfile replaces the business profile section
func (h *SettingsHandler) UpdateProfile(c *gin.Context) {
	var req settingsapp.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.UpdateProfile(c.Request.Context(), req, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpdateNotifications replaces the notification toggles
func (h *SettingsHandler) UpdateNotifications(c *gin.Context) {
	var req settingsapp.UpdateNotificationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.UpdateNotifications(c.Request.Context(), req, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpdateTeam replaces the team defaults
func (h *SettingsHandler) UpdateTeam(c *gin.Context) {
	var req settingsapp.UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.UpdateTeam(c.Request.Context(), req, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	campaignapp "github.com/coldpitch/backend/internal/application/campaign"
	"github.com/coldpitch/backend/internal/interfaces/http/middleware"
)

// CampaignHandler handles email campaign endpoints
type CampaignHandler struct {
	BaseHandler
	service *campaignapp.CampaignService
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(service *campaignapp.CampaignService) *CampaignHandler {
	return &CampaignHandler{service: service}
}

// Create creates a draft campaign
func (h *CampaignHandler) Create(c *gin.Context) {
	var req campaignapp.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.CreateCampaign(c.Request.Context(), req, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get returns a single campaign
func (h *CampaignHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid campaign ID")
		return
	}

	resp, err := h.service.GetCampaign(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update replaces a campaign's name, subject and body
func (h *CampaignHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid campaign ID")
		return
	}

	var req campaignapp.UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.UpdateCampaign(c.Request.Context(), id, req, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes a campaign
func (h *CampaignHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid campaign ID")
		return
	}

	if err := h.service.DeleteCampaign(c.Request.Context(), id, actorID(c)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// List returns a filtered, paginated page of campaigns
func (h *CampaignHandler) List(c *gin.Context) {
	var filter campaignapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	page, err := h.service.ListCampaigns(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Send sends the campaign to the selected prospects
func (h *CampaignHandler) Send(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid campaign ID")
		return
	}

	var req campaignapp.SendBulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.SendBulk(c.Request.Context(), id, req, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Pause pauses an active campaign
func (h *CampaignHandler) Pause(c *gin.Context) {
	h.transition(c, h.service.Pause)
}

// Resume resumes a paused campaign
func (h *CampaignHandler) Resume(c *gin.Context) {
	h.transition(c, h.service.Resume)
}

// Complete marks a campaign as finished
func (h *CampaignHandler) Complete(c *gin.Context) {
	h.transition(c, h.service.Complete)
}

// engagementRequest records a single engagement event
type engagementRequest struct {
	Kind string `json:"kind" binding:"required,oneof=open reply converted"`
}

// RecordEngagement bumps a campaign's open/reply/converted counters
func (h *CampaignHandler) RecordEngagement(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid campaign ID")
		return
	}

	var req engagementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.RecordEngagement(c.Request.Context(), id, req.Kind)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Stats returns a campaign's engagement rates
func (h *CampaignHandler) Stats(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid campaign ID")
		return
	}

	stats, err := h.service.GetStats(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}

// transition runs a status transition identified by the id path param
func (h *CampaignHandler) transition(c *gin.Context, fn func(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*campaignapp.CampaignResponse, error)) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid campaign ID")
		return
	}

	resp, err := fn(c.Request.Context(), id, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

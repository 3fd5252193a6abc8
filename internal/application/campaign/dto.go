package campaign

import (
	"time"

	"github.com/coldpitch/backend/internal/domain/campaign"
	"github.com/google/uuid"
)

// CreateCampaignRequest is the request to create a campaign
type CreateCampaignRequest struct {
	Name    string `json:"name" binding:"required"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// UpdateCampaignRequest is the request to update a campaign
type UpdateCampaignRequest struct {
	Name    string `json:"name" binding:"required"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// SendBulkRequest selects the prospects to send a campaign to
type SendBulkRequest struct {
	ProspectIDs []uuid.UUID `json:"prospect_ids" binding:"required,min=1"`
}

// SendBulkResponse reports the outcome of a bulk send
type SendBulkResponse struct {
	Sent   int      `json:"sent"`
	Failed int      `json:"failed"`
	Errors []string `json:"errors,omitempty"`
}

// ListFilter carries list query parameters
type ListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
	Status   string `form:"status"`
}

// CampaignResponse is the full campaign representation
type CampaignResponse struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Subject        string     `json:"subject"`
	Body           string     `json:"body"`
	Status         string     `json:"status"`
	SentCount      int        `json:"sent_count"`
	OpenCount      int        `json:"open_count"`
	ReplyCount     int        `json:"reply_count"`
	ConvertedCount int        `json:"converted_count"`
	SentAt         *time.Time `json:"sent_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ToCampaignResponse converts a domain campaign to its response DTO
func ToCampaignResponse(c *campaign.Campaign) CampaignResponse {
	return CampaignResponse{
		ID:             c.ID,
		Name:           c.Name,
		Subject:        c.Subject,
		Body:           c.Body,
		Status:         string(c.Status),
		SentCount:      c.SentCount,
		OpenCount:      c.OpenCount,
		ReplyCount:     c.ReplyCount,
		ConvertedCount: c.ConvertedCount,
		SentAt:         c.SentAt,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

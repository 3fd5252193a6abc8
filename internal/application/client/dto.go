package client

import (
	"time"

	"github.com/coldpitch/backend/internal/domain/client"
	"github.com/coldpitch/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateClientRequest is the request to create a client
type CreateClientRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
}

// UpdateClientRequest is the request to update a client
type UpdateClientRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// CreateProjectRequest is the request to create a project for a client
type CreateProjectRequest struct {
	ClientID  uuid.UUID       `json:"client_id" binding:"required"`
	Name      string          `json:"name" binding:"required"`
	Amount    decimal.Decimal `json:"amount"`
	StartDate time.Time       `json:"start_date" binding:"required"`
	Cycle     string          `json:"cycle" binding:"required"`
}

// UpdateProjectRequest is the request to update a project
type UpdateProjectRequest struct {
	Name   string          `json:"name" binding:"required"`
	Amount decimal.Decimal `json:"amount"`
	Cycle  string          `json:"cycle" binding:"required"`
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

// ClientResponse is the full client representation
type ClientResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToClientResponse converts a domain client to its response DTO
func ToClientResponse(c *client.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Company:   c.Company,
		Status:    string(c.Status),
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ProjectResponse is the full project representation
type ProjectResponse struct {
	ID            uuid.UUID         `json:"id"`
	ClientID      uuid.UUID         `json:"client_id"`
	ClientName    string            `json:"client_name"`
	Name          string            `json:"name"`
	Amount        valueobject.Money `json:"amount"`
	StartDate     time.Time         `json:"start_date"`
	Cycle         string            `json:"cycle"`
	NextRenewal   *time.Time        `json:"next_renewal,omitempty"`
	RenewalStatus string            `json:"renewal_status"`
	Active        bool              `json:"active"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// ToProjectResponse converts a domain project to its response DTO
func ToProjectResponse(p *client.Project) ProjectResponse {
	return ProjectResponse{
		ID:            p.ID,
		ClientID:      p.ClientID,
		ClientName:    p.ClientName,
		Name:          p.Name,
		Amount:        p.Amount,
		StartDate:     p.StartDate,
		Cycle:         string(p.Cycle),
		NextRenewal:   p.NextRenewal,
		RenewalStatus: string(p.RenewalStatus),
		Active:        p.Active,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// RenewalSummary aggregates recurring revenue across active projects
type RenewalSummary struct {
	ActiveProjects  int               `json:"active_projects"`
	MonthlyRevenue  valueobject.Money `json:"monthly_revenue"`
	UpcomingCount   int               `json:"upcoming_count"`
	OverdueRenewals int               `json:"overdue_renewals"`
}

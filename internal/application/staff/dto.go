package staff

import (
	"time"

	"github.com/coldpitch/backend/internal/domain/staff"
	"github.com/google/uuid"
)

// CreateStaffRequest is the request to create a staff member.
// When Password is set, login credentials are created alongside the
// profile and linked to it.
type CreateStaffRequest struct {
	Name     string   `json:"name" binding:"required"`
	Email    string   `json:"email" binding:"required,email"`
	Role     string   `json:"role" binding:"required"`
	DutyDays []string `json:"duty_days,omitempty"`
	Password string   `json:"password,omitempty"`
}

// UpdateStaffRequest is the request to update a staff member
type UpdateStaffRequest struct {
	Name     string   `json:"name" binding:"required"`
	Role     string   `json:"role" binding:"required"`
	DutyDays []string `json:"duty_days,omitempty"`
}

// ListFilter carries list query parameters
type ListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
	Role     string `form:"role"`
	Status   string `form:"status"`
}

// SendCredentialsRequest is the request to email login credentials to a
// staff member. All fields are required.
type SendCredentialsRequest struct {
	To       string `json:"to" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
	LoginURL string `json:"login_url" binding:"required"`
}

// StaffResponse is the full staff representation
type StaffResponse struct {
	ID              uuid.UUID   `json:"id"`
	Name            string      `json:"name"`
	Email           string      `json:"email"`
	Role            string      `json:"role"`
	Status          string      `json:"status"`
	DutyDays        []string    `json:"duty_days"`
	LoginTimes      []time.Time `json:"login_times,omitempty"`
	TotalLeadsAdded int         `json:"total_leads_added"`
	HasCredentials  bool        `json:"has_credentials"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// ToStaffResponse converts a domain staff member to its response DTO
func ToStaffResponse(s *staff.Staff) StaffResponse {
	return StaffResponse{
		ID:              s.ID,
		Name:            s.Name,
		Email:           s.Email,
		Role:            string(s.Role),
		Status:          string(s.Status),
		DutyDays:        s.DutyDays,
		LoginTimes:      s.LoginTimes,
		TotalLeadsAdded: s.TotalLeadsAdded,
		HasCredentials:  s.AuthUserID != nil,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

package prospect

import (
	"time"

	"github.com/coldpitch/backend/internal/domain/prospect"
	"github.com/google/uuid"
)

// CreateProspectRequest is the request to create a prospect
type CreateProspectRequest struct {
	Name           string   `json:"name" binding:"required"`
	Email          string   `json:"email,omitempty"`
	Phone          string   `json:"phone,omitempty"`
	Whatsapp       string   `json:"whatsapp,omitempty"`
	Company        string   `json:"company,omitempty"`
	Role           string   `json:"role,omitempty"`
	Website        string   `json:"website,omitempty"`
	Country        string   `json:"country,omitempty"`
	State          string   `json:"state,omitempty"`
	Niche          string   `json:"niche,omitempty"`
	LinkedIn       string   `json:"linkedin,omitempty"`
	Twitter        string   `json:"twitter,omitempty"`
	Facebook       string   `json:"facebook,omitempty"`
	Instagram      string   `json:"instagram,omitempty"`
	ModeOfReachout string   `json:"mode_of_reachout,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	Source         string   `json:"source,omitempty"`
	GeneratedPitch string   `json:"generated_pitch,omitempty"`
}

// UpdateProspectRequest is the request to update a prospect
type UpdateProspectRequest struct {
	Name           string   `json:"name" binding:"required"`
	Email          string   `json:"email,omitempty"`
	Phone          string   `json:"phone,omitempty"`
	Whatsapp       string   `json:"whatsapp,omitempty"`
	Company        string   `json:"company,omitempty"`
	Role           string   `json:"role,omitempty"`
	Website        string   `json:"website,omitempty"`
	Country        string   `json:"country,omitempty"`
	State          string   `json:"state,omitempty"`
	Niche          string   `json:"niche,omitempty"`
	LinkedIn       string   `json:"linkedin,omitempty"`
	Twitter        string   `json:"twitter,omitempty"`
	Facebook       string   `json:"facebook,omitempty"`
	Instagram      string   `json:"instagram,omitempty"`
	ModeOfReachout string   `json:"mode_of_reachout,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	Source         string   `json:"source,omitempty"`
	GeneratedPitch string   `json:"generated_pitch,omitempty"`
}

// ChangeStatusRequest is the request to move a prospect in the funnel
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListFilter carries list query parameters
type ListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
	Status   string `form:"status"`
	Niche    string `form:"niche"`
}

// ProspectResponse is the full prospect representation
type ProspectResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Whatsapp       string    `json:"whatsapp,omitempty"`
	Company        string    `json:"company,omitempty"`
	Role           string    `json:"role,omitempty"`
	Website        string    `json:"website,omitempty"`
	Country        string    `json:"country,omitempty"`
	State          string    `json:"state,omitempty"`
	Niche          string    `json:"niche,omitempty"`
	HasSocials     bool      `json:"has_socials"`
	LinkedIn       string    `json:"linkedin,omitempty"`
	Twitter        string    `json:"twitter,omitempty"`
	Facebook       string    `json:"facebook,omitempty"`
	Instagram      string    `json:"instagram,omitempty"`
	ModeOfReachout string    `json:"mode_of_reachout"`
	Status         string    `json:"status"`
	Tags           []string  `json:"tags"`
	Source         string    `json:"source,omitempty"`
	GeneratedPitch string    `json:"generated_pitch,omitempty"`
	DateAdded      time.Time `json:"date_added"`
	LastActivity   time.Time `json:"last_activity"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ToProspectResponse converts a domain prospect to its response DTO
func ToProspectResponse(p *prospect.Prospect) ProspectResponse {
	return ProspectResponse{
		ID:             p.ID,
		Name:           p.Name,
		Email:          p.Email,
		Phone:          p.Phone,
		Whatsapp:       p.Whatsapp,
		Company:        p.Company,
		Role:           p.Role,
		Website:        p.Website,
		Country:        p.Country,
		State:          p.State,
		Niche:          p.Niche,
		HasSocials:     p.HasSocials,
		LinkedIn:       p.Socials.LinkedIn,
		Twitter:        p.Socials.Twitter,
		Facebook:       p.Socials.Facebook,
		Instagram:      p.Socials.Instagram,
		ModeOfReachout: string(p.ModeOfReachout),
		Status:         string(p.Status),
		Tags:           p.Tags,
		Source:         p.Source,
		GeneratedPitch: p.GeneratedPitch,
		DateAdded:      p.DateAdded,
		LastActivity:   p.LastActivity,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// ImportResult summarizes a CSV import
type ImportResult struct {
	Imported int      `json:"imported"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors,omitempty"`
}

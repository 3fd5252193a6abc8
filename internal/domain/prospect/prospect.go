package prospect

import (
	"regexp"
	"strings"
	"time"

	"github.com/coldpitch/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Status represents the position of a prospect in the outreach funnel
type Status string

const (
	StatusNew       Status = "New"
	StatusContacted Status = "Contacted"
	StatusResponded Status = "Responded"
	StatusQualified Status = "Qualified"
	StatusConverted Status = "Converted"
	StatusLost      Status = "Lost"
)

// AllStatuses lists every funnel stage in pipeline order
var AllStatuses = []Status{
	StatusNew, StatusContacted, StatusResponded,
	StatusQualified, StatusConverted, StatusLost,
}

// ReachoutMode represents the channel used to contact a prospect
type ReachoutMode string

const (
	ReachoutEmail     ReachoutMode = "Email"
	ReachoutLinkedIn  ReachoutMode = "LinkedIn"
	ReachoutWhatsapp  ReachoutMode = "Whatsapp"
	ReachoutInstagram ReachoutMode = "Instagram"
	ReachoutPhone     ReachoutMode = "Phone"
)

// SocialLinks holds a prospect's social media profiles
type SocialLinks struct {
	LinkedIn  string `json:"linkedin,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Prospect is the aggregate root for a lead being worked in the funnel
type Prospect struct {
	shared.BaseAggregateRoot
	Name           string
	Email          string
	Phone          string
	Whatsapp       string
	Company        string
	Role           string
	Website        string
	Country        string
	State          string
	Niche          string
	HasSocials     bool
	Socials        SocialLinks
	ModeOfReachout ReachoutMode
	Status         Status
	Tags           []string
	Source         string
	GeneratedPitch string
	DateAdded      time.Time
	LastActivity   time.Time
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// NewProspect creates a new prospect with required fields
func NewProspect(name, email string, actorID uuid.UUID) (*Prospect, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	p := &Prospect{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		ModeOfReachout:    ReachoutEmail,
		Status:            StatusNew,
		Tags:              []string{},
		DateAdded:         now,
		LastActivity:      now,
	}

	p.AddDomainEvent(NewProspectCreatedEvent(p, actorID))

	return p, nil
}

// Update updates the prospect's profile fields
func (p *Prospect) Update(name, email, phone, whatsapp, company, role, website string, actorID uuid.UUID) error {
	if err := validateName(name); err != nil {
		return err
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}

	p.Name = strings.TrimSpace(name)
	p.Email = strings.ToLower(strings.TrimSpace(email))
	p.Phone = phone
	p.Whatsapp = whatsapp
	p.Company = company
	p.Role = role
	p.Website = website
	p.touch()

	p.AddDomainEvent(NewProspectUpdatedEvent(p, actorID))

	return nil
}

// SetLocation sets the prospect's geographic fields
func (p *Prospect) SetLocation(country, state string) {
	p.Country = country
	p.State = state
	p.touch()
}

// SetNiche sets the prospect's market niche
func (p *Prospect) SetNiche(niche string) {
	p.Niche = niche
	p.touch()
}

// SetSocials sets the prospect's social profiles
func (p *Prospect) SetSocials(links SocialLinks) {
	p.Socials = links
	p.HasSocials = links.LinkedIn != "" || links.Twitter != "" || links.Facebook != "" || links.Instagram != ""
	p.touch()
}

// SetReachoutMode sets the channel used to contact this prospect
func (p *Prospect) SetReachoutMode(mode ReachoutMode) error {
	if err := validateReachoutMode(mode); err != nil {
		return err
	}
	p.ModeOfReachout = mode
	p.touch()
	return nil
}

// SetTags replaces the prospect's tags
func (p *Prospect) SetTags(tags []string) {
	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			cleaned = append(cleaned, t)
		}
	}
	p.Tags = cleaned
	p.touch()
}

// SetSource sets where the prospect was found
func (p *Prospect) SetSource(source string) {
	p.Source = source
	p.touch()
}

// SetGeneratedPitch stores the pitch text prepared for this prospect
func (p *Prospect) SetGeneratedPitch(pitch string) {
	p.GeneratedPitch = pitch
	p.touch()
}

// ChangeStatus moves the prospect to a new funnel status
func (p *Prospect) ChangeStatus(status Status, actorID uuid.UUID) error {
	if err := validateStatus(status); err != nil {
		return err
	}
	if p.Status == status {
		return nil
	}

	oldStatus := p.Status
	p.Status = status
	p.LastActivity = time.Now()
	p.touch()

	p.AddDomainEvent(NewProspectStatusChangedEvent(p, oldStatus, status, actorID))

	return nil
}

// RecordContact marks the prospect as contacted and stamps activity
func (p *Prospect) RecordContact(actorID uuid.UUID) {
	p.LastActivity = time.Now()
	if p.Status == StatusNew {
		p.Status = StatusContacted
		p.AddDomainEvent(NewProspectStatusChangedEvent(p, StatusNew, StatusContacted, actorID))
	}
	p.touch()
}

// MarkDeleted records the deletion event before the aggregate is removed
func (p *Prospect) MarkDeleted(actorID uuid.UUID) {
	p.AddDomainEvent(NewProspectDeletedEvent(p, actorID))
}

// CanReceiveEmail reports whether this prospect has a usable email address
func (p *Prospect) CanReceiveEmail() bool {
	return p.Email != ""
}

func (p *Prospect) touch() {
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name is required")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func validateStatus(status Status) error {
	switch status {
	case StatusNew, StatusContacted, StatusResponded, StatusQualified, StatusConverted, StatusLost:
		return nil
	}
	return shared.NewDomainError("INVALID_STATUS", "Invalid prospect status")
}

func validateReachoutMode(mode ReachoutMode) error {
	switch mode {
	case ReachoutEmail, ReachoutLinkedIn, ReachoutWhatsapp, ReachoutInstagram, ReachoutPhone:
		return nil
	}
	return shared.NewDomainError("INVALID_REACHOUT_MODE", "Invalid mode of reachout")
}

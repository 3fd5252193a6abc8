package prospect

import (
	"context"
	"strings"

	"github.com/coldpitch/backend/internal/domain/prospect"
	"github.com/coldpitch/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProspectService handles prospect application logic
type ProspectService struct {
	prospectRepo prospect.Repository
	eventBus     shared.EventPublisher
}

// NewProspectService creates a new ProspectService
func NewProspectService(prospectRepo prospect.Repository, eventBus shared.EventPublisher) *ProspectService {
	return &ProspectService{
		prospectRepo: prospectRepo,
		eventBus:     eventBus,
	}
}

// CreateProspect creates a new prospect
func (s *ProspectService) CreateProspect(ctx context.Context, req CreateProspectRequest, actorID uuid.UUID) (*ProspectResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email != "" {
		exists, err := s.prospectRepo.ExistsByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("PROSPECT_EMAIL_EXISTS", "A prospect with this email already exists")
		}
	}

	p, err := prospect.NewProspect(req.Name, req.Email, actorID)
	if err != nil {
		return nil, err
	}

	if err := s.applyOptionalFields(p, prospectFields(req), actorID); err != nil {
		return nil, err
	}

	if err := s.prospectRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, p)

	resp := ToProspectResponse(p)
	return &resp, nil
}

// GetProspect retrieves a prospect by ID
func (s *ProspectService) GetProspect(ctx context.Context, id uuid.UUID) (*ProspectResponse, error) {
	p, err := s.prospectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProspectResponse(p)
	return &resp, nil
}

// UpdateProspect updates a prospect's details
func (s *ProspectService) UpdateProspect(ctx context.Context, id uuid.UUID, req UpdateProspectRequest, actorID uuid.UUID) (*ProspectResponse, error) {
	p, err := s.prospectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email != "" && email != p.Email {
		exists, err := s.prospectRepo.ExistsByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("PROSPECT_EMAIL_EXISTS", "A prospect with this email already exists")
		}
	}

	if err := p.Update(req.Name, req.Email, req.Phone, req.Whatsapp, req.Company, req.Role, req.Website, actorID); err != nil {
		return nil, err
	}
	if err := s.applyOptionalFields(p, prospectFields(CreateProspectRequest(req)), actorID); err != nil {
		return nil, err
	}

	if err := s.prospectRepo.SaveWithLock(ctx, p); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, p)

	resp := ToProspectResponse(p)
	return &resp, nil
}

// ChangeStatus moves a prospect to a new funnel stage
func (s *ProspectService) ChangeStatus(ctx context.Context, id uuid.UUID, req ChangeStatusRequest, actorID uuid.UUID) (*ProspectResponse, error) {
	p, err := s.prospectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := p.ChangeStatus(prospect.Status(req.Status), actorID); err != nil {
		return nil, err
	}

	if err := s.prospectRepo.SaveWithLock(ctx, p); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, p)

	resp := ToProspectResponse(p)
	return &resp, nil
}

// DeleteProspect deletes a prospect
func (s *ProspectService) DeleteProspect(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	p, err := s.prospectRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	p.MarkDeleted(actorID)

	if err := s.prospectRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.publishEvents(ctx, p)
	return nil
}

// ListProspects lists prospects matching the filter
func (s *ProspectService) ListProspects(ctx context.Context, filter ListFilter) (*shared.Paginated[ProspectResponse], error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		f.OrderBy = filter.OrderBy
		f.OrderDir = filter.OrderDir
	}
	f.Search = filter.Search
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}
	if filter.Niche != "" {
		f.Filters["niche"] = filter.Niche
	}

	prospects, err := s.prospectRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.prospectRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	items := make([]ProspectResponse, len(prospects))
	for i := range prospects {
		items[i] = ToProspectResponse(&prospects[i])
	}

	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// FunnelCounts returns the number of prospects in each funnel stage
func (s *ProspectService) FunnelCounts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, len(prospect.AllStatuses))
	for _, status := range prospect.AllStatuses {
		n, err := s.prospectRepo.CountByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		counts[string(status)] = n
	}
	return counts, nil
}

// optionalFields carries the non-identity fields shared by create and update
type optionalFields struct {
	Phone, Whatsapp, Company, Role, Website string
	Country, State                          string
	Niche                                   string
	LinkedIn, Twitter, Facebook, Instagram  string
	ModeOfReachout                          string
	Tags                                    []string
	Source                                  string
	GeneratedPitch                          string
}

func prospectFields(req CreateProspectRequest) optionalFields {
	return optionalFields{
		Phone: req.Phone, Whatsapp: req.Whatsapp, Company: req.Company,
		Role: req.Role, Website: req.Website,
		Country: req.Country, State: req.State,
		Niche:    req.Niche,
		LinkedIn: req.LinkedIn, Twitter: req.Twitter,
		Facebook: req.Facebook, Instagram: req.Instagram,
		ModeOfReachout: req.ModeOfReachout,
		Tags:           req.Tags,
		Source:         req.Source,
		GeneratedPitch: req.GeneratedPitch,
	}
}

func (s *ProspectService) applyOptionalFields(p *prospect.Prospect, f optionalFields, actorID uuid.UUID) error {
	p.Phone = f.Phone
	p.Whatsapp = f.Whatsapp
	p.Company = f.Company
	p.Role = f.Role
	p.Website = f.Website
	p.SetLocation(f.Country, f.State)
	p.SetNiche(f.Niche)
	p.SetSocials(prospect.SocialLinks{
		LinkedIn:  f.LinkedIn,
		Twitter:   f.Twitter,
		Facebook:  f.Facebook,
		Instagram: f.Instagram,
	})
	if f.ModeOfReachout != "" {
		if err := p.SetReachoutMode(prospect.ReachoutMode(f.ModeOfReachout)); err != nil {
			return err
		}
	}
	p.SetTags(f.Tags)
	p.SetSource(f.Source)
	if f.GeneratedPitch != "" {
		p.SetGeneratedPitch(f.GeneratedPitch)
	}
	return nil
}

func (s *ProspectService) publishEvents(ctx context.Context, p *prospect.Prospect) {
	if s.eventBus == nil {
		return
	}
	for _, event := range p.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	p.ClearDomainEvents()
}

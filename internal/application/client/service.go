package client

import (
	"context"
	"time"

	"github.com/coldpitch/backend/internal/domain/client"
	"github.com/coldpitch/backend/internal/domain/shared"
	"github.com/coldpitch/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UpcomingRenewalWindow is how far ahead the renewal reminder looks
const UpcomingRenewalWindow = 30 * 24 * time.Hour

// ClientService handles client and project application logic
type ClientService struct {
	clientRepo  client.ClientRepository
	projectRepo client.ProjectRepository
	eventBus    shared.EventPublisher
}

// NewClientService creates a new ClientService
func NewClientService(
	clientRepo client.ClientRepository,
	projectRepo client.ProjectRepository,
	eventBus shared.EventPublisher,
) *ClientService {
	return &ClientService{
		clientRepo:  clientRepo,
		projectRepo: projectRepo,
		eventBus:    eventBus,
	}
}

// CreateClient creates a new client
func (s *ClientService) CreateClient(ctx context.Context, req CreateClientRequest, actorID uuid.UUID) (*ClientResponse, error) {
	c, err := client.NewClient(req.Name, req.Email, req.Phone, req.Company, actorID)
	if err != nil {
		return nil, err
	}

	if err := s.clientRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, &c.BaseAggregateRoot)

	resp := ToClientResponse(c)
	return &resp, nil
}

// GetClient retrieves a client by ID
func (s *ClientService) GetClient(ctx context.Context, id uuid.UUID) (*ClientResponse, error) {
	c, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToClientResponse(c)
	return &resp, nil
}

// UpdateClient updates a client's profile
func (s *ClientService) UpdateClient(ctx context.Context, id uuid.UUID, req UpdateClientRequest, actorID uuid.UUID) (*ClientResponse, error) {
	c, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := c.Update(req.Name, req.Email, req.Phone, req.Company, req.Notes, actorID); err != nil {
		return nil, err
	}

	if err := s.clientRepo.SaveWithLock(ctx, c); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, &c.BaseAggregateRoot)

	resp := ToClientResponse(c)
	return &resp, nil
}

// DeactivateClient marks a client inactive and stops its projects
func (s *ClientService) DeactivateClient(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*ClientResponse, error) {
	c, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Deactivate(actorID)
	if err := s.clientRepo.SaveWithLock(ctx, c); err != nil {
		return nil, err
	}

	projects, err := s.projectRepo.FindByClient(ctx, id)
	if err == nil {
		for i := range projects {
			p := &projects[i]
			p.Deactivate(actorID)
			_ = s.projectRepo.Save(ctx, p)
			s.publishEvents(ctx, &p.BaseAggregateRoot)
		}
	}

	s.publishEvents(ctx, &c.BaseAggregateRoot)

	resp := ToClientResponse(c)
	return &resp, nil
}

// ReactivateClient marks a client active again
func (s *ClientService) ReactivateClient(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*ClientResponse, error) {
	c, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Reactivate(actorID)
	if err := s.clientRepo.SaveWithLock(ctx, c); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, &c.BaseAggregateRoot)

	resp := ToClientResponse(c)
	return &resp, nil
}

// DeleteClient deletes a client
func (s *ClientService) DeleteClient(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	c, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	c.MarkDeleted(actorID)

	if err := s.clientRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.publishEvents(ctx, &c.BaseAggregateRoot)
	return nil
}

// ListClients lists clients matching the filter
func (s *ClientService) ListClients(ctx context.Context, filter ListFilter) (*shared.Paginated[ClientResponse], error) {
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

	clients, err := s.clientRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.clientRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	items := make([]ClientResponse, len(clients))
	for i := range clients {
		items[i] = ToClientResponse(&clients[i])
	}

	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// CreateProject creates a project for an existing client
func (s *ClientService) CreateProject(ctx context.Context, req CreateProjectRequest, actorID uuid.UUID) (*ProjectResponse, error) {
	c, err := s.clientRepo.FindByID(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}

	amount := valueobject.NewMoneyNGN(req.Amount)
	p, err := client.NewProject(c.ID, c.Name, req.Name, amount, req.StartDate, client.RenewalCycle(req.Cycle), actorID)
	if err != nil {
		return nil, err
	}

	if err := s.projectRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, &p.BaseAggregateRoot)

	resp := ToProjectResponse(p)
	return &resp, nil
}

// GetProject retrieves a project by ID
func (s *ClientService) GetProject(ctx context.Context, id uuid.UUID) (*ProjectResponse, error) {
	p, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProjectResponse(p)
	return &resp, nil
}

// UpdateProject updates a project's details
func (s *ClientService) UpdateProject(ctx context.Context, id uuid.UUID, req UpdateProjectRequest, actorID uuid.UUID) (*ProjectResponse, error) {
	p, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	amount := valueobject.NewMoneyNGN(req.Amount)
	if err := p.Update(req.Name, amount, client.RenewalCycle(req.Cycle), actorID); err != nil {
		return nil, err
	}

	if err := s.projectRepo.SaveWithLock(ctx, p); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, &p.BaseAggregateRoot)

	resp := ToProjectResponse(p)
	return &resp, nil
}

// ListProjectsByClient lists every project belonging to a client
func (s *ClientService) ListProjectsByClient(ctx context.Context, clientID uuid.UUID) ([]ProjectResponse, error) {
	projects, err := s.projectRepo.FindByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	items := make([]ProjectResponse, len(projects))
	for i := range projects {
		items[i] = ToProjectResponse(&projects[i])
	}
	return items, nil
}

// MarkRenewalPaid settles the project's current renewal period
func (s *ClientService) MarkRenewalPaid(ctx context.Context, projectID uuid.UUID, actorID uuid.UUID) (*ProjectResponse, error) {
	p, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if err := p.MarkRenewalPaid(actorID); err != nil {
		return nil, err
	}

	if err := s.projectRepo.SaveWithLock(ctx, p); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, &p.BaseAggregateRoot)

	resp := ToProjectResponse(p)
	return &resp, nil
}

// DeactivateProject stops a project and its renewals
func (s *ClientService) DeactivateProject(ctx context.Context, projectID uuid.UUID, actorID uuid.UUID) (*ProjectResponse, error) {
	p, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	p.Deactivate(actorID)
	if err := s.projectRepo.SaveWithLock(ctx, p); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, &p.BaseAggregateRoot)

	resp := ToProjectResponse(p)
	return &resp, nil
}

// DeleteProject deletes a project
func (s *ClientService) DeleteProject(ctx context.Context, projectID uuid.UUID, actorID uuid.UUID) error {
	p, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return err
	}

	p.MarkDeleted(actorID)

	if err := s.projectRepo.Delete(ctx, projectID); err != nil {
		return err
	}

	s.publishEvents(ctx, &p.BaseAggregateRoot)
	return nil
}

// UpcomingRenewals lists active projects renewing in the next 30 days
func (s *ClientService) UpcomingRenewals(ctx context.Context, from time.Time) ([]ProjectResponse, error) {
	projects, err := s.projectRepo.FindRenewingBetween(ctx, from, from.Add(UpcomingRenewalWindow))
	if err != nil {
		return nil, err
	}
	items := make([]ProjectResponse, len(projects))
	for i := range projects {
		items[i] = ToProjectResponse(&projects[i])
	}
	return items, nil
}

// SweepOverdueRenewals flags active projects whose renewal date passed
// without payment. Returns the number of projects flagged.
func (s *ClientService) SweepOverdueRenewals(ctx context.Context, asOf time.Time) (int, error) {
	projects, err := s.projectRepo.FindActive(ctx)
	if err != nil {
		return 0, err
	}

	flagged := 0
	for i := range projects {
		p := &projects[i]
		before := p.RenewalStatus
		p.MarkRenewalOverdue(asOf)
		if p.RenewalStatus == client.RenewalOverdue && before != client.RenewalOverdue {
			if err := s.projectRepo.SaveWithLock(ctx, p); err != nil {
				continue
			}
			flagged++
		}
	}
	return flagged, nil
}

// RenewalStats summarizes recurring revenue across active projects.
// Revenue is normalized to a monthly figure.
func (s *ClientService) RenewalStats(ctx context.Context, asOf time.Time) (*RenewalSummary, error) {
	projects, err := s.projectRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	summary := &RenewalSummary{MonthlyRevenue: valueobject.ZeroNGN()}
	for i := range projects {
		p := &projects[i]
		summary.ActiveProjects++
		summary.MonthlyRevenue = summary.MonthlyRevenue.MustAdd(monthlyRevenue(p))
		if p.RenewsWithin(asOf, UpcomingRenewalWindow) {
			summary.UpcomingCount++
		}
		if p.RenewalStatus == client.RenewalOverdue {
			summary.OverdueRenewals++
		}
	}
	summary.MonthlyRevenue = summary.MonthlyRevenue.Round(2)
	return summary, nil
}

func monthlyRevenue(p *client.Project) valueobject.Money {
	switch p.Cycle {
	case client.CycleMonthly:
		return p.Amount
	case client.CycleQuarterly:
		return p.Amount.Multiply(decimal.NewFromInt(1).Div(decimal.NewFromInt(3)))
	case client.CycleYearly:
		return p.Amount.Multiply(decimal.NewFromInt(1).Div(decimal.NewFromInt(12)))
	}
	return valueobject.ZeroNGN()
}

func (s *ClientService) publishEvents(ctx context.Context, root *shared.BaseAggregateRoot) {
	if s.eventBus == nil {
		return
	}
	for _, event := range root.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	root.ClearDomainEvents()
}

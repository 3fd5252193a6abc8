package campaign

import (
	"context"
	"fmt"
	"sync"

	"github.com/coldpitch/backend/internal/domain/campaign"
	"github.com/coldpitch/backend/internal/domain/prospect"
	"github.com/coldpitch/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultSendConcurrency bounds how many emails a bulk send dispatches
// at once.
const DefaultSendConcurrency = 5

// CampaignService handles campaign application logic
type CampaignService struct {
	campaignRepo    campaign.Repository
	prospectRepo    prospect.Repository
	sender          EmailSender
	eventBus        shared.EventPublisher
	logger          *zap.Logger
	sendConcurrency int
}

// NewCampaignService creates a new CampaignService
func NewCampaignService(
	campaignRepo campaign.Repository,
	prospectRepo prospect.Repository,
	sender EmailSender,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *CampaignService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CampaignService{
		campaignRepo:    campaignRepo,
		prospectRepo:    prospectRepo,
		sender:          sender,
		eventBus:        eventBus,
		logger:          logger,
		sendConcurrency: DefaultSendConcurrency,
	}
}

// SetSendConcurrency overrides the bulk send worker limit
func (s *CampaignService) SetSendConcurrency(n int) {
	if n > 0 {
		s.sendConcurrency = n
	}
}

// CreateCampaign creates a new draft campaign
func (s *CampaignService) CreateCampaign(ctx context.Context, req CreateCampaignRequest, actorID uuid.UUID) (*CampaignResponse, error) {
	c, err := campaign.NewCampaign(req.Name, req.Subject, req.Body, actorID)
	if err != nil {
		return nil, err
	}

	if err := s.campaignRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, c)

	resp := ToCampaignResponse(c)
	return &resp, nil
}

// GetCampaign retrieves a campaign by ID
func (s *CampaignService) GetCampaign(ctx context.Context, id uuid.UUID) (*CampaignResponse, error) {
	c, err := s.campaignRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCampaignResponse(c)
	return &resp, nil
}

// UpdateCampaign updates a campaign's content
func (s *CampaignService) UpdateCampaign(ctx context.Context, id uuid.UUID, req UpdateCampaignRequest, actorID uuid.UUID) (*CampaignResponse, error) {
	c, err := s.campaignRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := c.Update(req.Name, req.Subject, req.Body, actorID); err != nil {
		return nil, err
	}

	if err := s.campaignRepo.SaveWithLock(ctx, c); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, c)

	resp := ToCampaignResponse(c)
	return &resp, nil
}

// DeleteCampaign deletes a campaign
func (s *CampaignService) DeleteCampaign(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	c, err := s.campaignRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	c.MarkDeleted(actorID)

	if err := s.campaignRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.publishEvents(ctx, c)
	return nil
}

// ListCampaigns lists campaigns matching the filter
func (s *CampaignService) ListCampaigns(ctx context.Context, filter ListFilter) (*shared.Paginated[CampaignResponse], error) {
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

	campaigns, err := s.campaignRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.campaignRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	items := make([]CampaignResponse, len(campaigns))
	for i := range campaigns {
		items[i] = ToCampaignResponse(&campaigns[i])
	}

	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// Pause pauses an active campaign
func (s *CampaignService) Pause(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*CampaignResponse, error) {
	return s.transition(ctx, id, func(c *campaign.Campaign) error { return c.Pause(actorID) })
}

// Resume reactivates a paused campaign
func (s *CampaignService) Resume(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*CampaignResponse, error) {
	return s.transition(ctx, id, func(c *campaign.Campaign) error { return c.Resume(actorID) })
}

// Complete marks a campaign as finished
func (s *CampaignService) Complete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*CampaignResponse, error) {
	return s.transition(ctx, id, func(c *campaign.Campaign) error { return c.Complete(actorID) })
}

// RecordEngagement increments one of the campaign's engagement
// counters: "open", "reply" or "conversion".
func (s *CampaignService) RecordEngagement(ctx context.Context, id uuid.UUID, kind string) (*CampaignResponse, error) {
	return s.transition(ctx, id, func(c *campaign.Campaign) error {
		switch kind {
		case "open":
			c.RecordOpen()
		case "reply":
			c.RecordReply()
		case "conversion":
			c.RecordConversion()
		default:
			return shared.NewDomainError("INVALID_ENGAGEMENT", "Engagement must be open, reply or conversion")
		}
		return nil
	})
}

// GetStats returns derived performance rates for a campaign
func (s *CampaignService) GetStats(ctx context.Context, id uuid.UUID) (*campaign.Stats, error) {
	c, err := s.campaignRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	stats := c.ComputeStats()
	return &stats, nil
}

// SendBulk dispatches the campaign email to the selected prospects
// through a bounded worker pool. Each recipient succeeds or fails on
// its own; the batch outcome is recorded on the campaign afterwards.
func (s *CampaignService) SendBulk(ctx context.Context, id uuid.UUID, req SendBulkRequest, actorID uuid.UUID) (*SendBulkResponse, error) {
	c, err := s.campaignRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.CanSend() {
		return nil, shared.NewDomainError("CAMPAIGN_NOT_SENDABLE", "Campaign must be in Draft or Active status to send")
	}
	if s.sender == nil {
		return nil, shared.NewDomainError("EMAIL_UNAVAILABLE", "Email delivery is not configured")
	}

	prospects, err := s.prospectRepo.FindByIDs(ctx, req.ProspectIDs)
	if err != nil {
		return nil, err
	}

	var (
		mu     sync.Mutex
		sent   int
		errs   []string
		marked []*prospect.Prospect
	)

	// Selected prospects the repository could not resolve count as
	// failed deliveries, so Sent+Failed always equals the request size.
	missing := len(req.ProspectIDs) - len(prospects)
	if missing > 0 {
		errs = append(errs, fmt.Sprintf("%d selected prospects no longer exist", missing))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.sendConcurrency)

	for i := range prospects {
		p := &prospects[i]
		g.Go(func() error {
			if err := s.sendToProspect(gctx, c, p); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Sprintf("%s: %v", p.Name, err))
				mu.Unlock()
				s.logger.Warn("campaign send failed",
					zap.String("campaign_id", c.ID.String()),
					zap.String("prospect_id", p.ID.String()),
					zap.Error(err))
				return nil // per-recipient failures never abort the batch
			}
			mu.Lock()
			sent++
			marked = append(marked, p)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	failed := missing + len(prospects) - sent

	if err := c.RecordBatchSent(sent, failed, actorID); err != nil {
		return nil, err
	}
	if err := s.campaignRepo.SaveWithLock(ctx, c); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, c)

	// Stamp contact activity on every prospect that received the email
	for _, p := range marked {
		p.RecordContact(actorID)
		if err := s.prospectRepo.Save(ctx, p); err != nil {
			s.logger.Warn("failed to record prospect contact",
				zap.String("prospect_id", p.ID.String()),
				zap.Error(err))
		}
	}

	return &SendBulkResponse{Sent: sent, Failed: failed, Errors: errs}, nil
}

func (s *CampaignService) sendToProspect(ctx context.Context, c *campaign.Campaign, p *prospect.Prospect) error {
	if !p.CanReceiveEmail() {
		return fmt.Errorf("prospect has no email address")
	}
	msg := EmailMessage{
		To:      p.Email,
		ToName:  p.Name,
		Subject: RenderTemplate(c.Subject, p.Name, p.Company),
		Body:    RenderTemplate(c.Body, p.Name, p.Company),
	}
	return s.sender.Send(ctx, msg)
}

func (s *CampaignService) transition(ctx context.Context, id uuid.UUID, fn func(*campaign.Campaign) error) (*CampaignResponse, error) {
	c, err := s.campaignRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, err
	}
	if err := s.campaignRepo.SaveWithLock(ctx, c); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, c)

	resp := ToCampaignResponse(c)
	return &resp, nil
}

func (s *CampaignService) publishEvents(ctx context.Context, c *campaign.Campaign) {
	if s.eventBus == nil {
		return
	}
	for _, event := range c.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	c.ClearDomainEvents()
}

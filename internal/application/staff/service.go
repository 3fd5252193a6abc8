package staff

import (
	"context"
	"strings"

	"github.com/coldpitch/backend/internal/domain/shared"
	"github.com/coldpitch/backend/internal/domain/staff"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PasswordHasher hashes plaintext passwords before storage
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// CredentialsEmail carries a credentials notification to a staff member
type CredentialsEmail struct {
	To       string
	Name     string
	Password string
	LoginURL string
}

// CredentialsMailer delivers login credentials to staff
type CredentialsMailer interface {
	SendCredentials(ctx context.Context, email CredentialsEmail) error
}

// StaffService handles staff and credential use cases
type StaffService struct {
	staffRepo    staff.Repository
	authUserRepo staff.AuthUserRepository
	hasher       PasswordHasher
	mailer       CredentialsMailer
	eventBus     shared.EventPublisher
	logger       *zap.Logger
}

// NewStaffService creates a new staff service
func NewStaffService(
	staffRepo staff.Repository,
	authUserRepo staff.AuthUserRepository,
	hasher PasswordHasher,
	mailer CredentialsMailer,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *StaffService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StaffService{
		staffRepo:    staffRepo,
		authUserRepo: authUserRepo,
		hasher:       hasher,
		mailer:       mailer,
		eventBus:     eventBus,
		logger:       logger,
	}
}

// CreateStaff creates a staff profile, and login credentials when a
// password is supplied.
func (s *StaffService) CreateStaff(ctx context.Context, req CreateStaffRequest, actorID uuid.UUID) (*StaffResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if existing, err := s.staffRepo.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, shared.NewDomainError("STAFF_EMAIL_EXISTS", "A staff member with this email already exists")
	}

	member, err := staff.NewStaff(req.Name, req.Email, staff.Role(req.Role), actorID)
	if err != nil {
		return nil, err
	}

	if req.Password != "" {
		if exists, err := s.authUserRepo.ExistsByEmail(ctx, email); err != nil {
			return nil, err
		} else if exists {
			return nil, shared.NewDomainError("AUTH_EMAIL_EXISTS", "Login credentials already exist for this email")
		}

		hash, err := s.hasher.Hash(req.Password)
		if err != nil {
			s.logger.Error("Failed to hash password", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create credentials")
		}

		authUser, err := staff.NewAuthUser(email, hash)
		if err != nil {
			return nil, err
		}
		if err := s.authUserRepo.Save(ctx, authUser); err != nil {
			return nil, err
		}
		member.LinkAuthUser(authUser.ID)
	}

	if len(req.DutyDays) > 0 {
		member.DutyDays = req.DutyDays
	}

	if err := s.staffRepo.Save(ctx, member); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, member)

	resp := ToStaffResponse(member)
	return &resp, nil
}

// GetStaff retrieves a staff member by ID
func (s *StaffService) GetStaff(ctx context.Context, id uuid.UUID) (*StaffResponse, error) {
	member, err := s.staffRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToStaffResponse(member)
	return &resp, nil
}

// UpdateStaff updates a staff member's profile
func (s *StaffService) UpdateStaff(ctx context.Context, id uuid.UUID, req UpdateStaffRequest, actorID uuid.UUID) (*StaffResponse, error) {
	member, err := s.staffRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := member.Update(req.Name, staff.Role(req.Role), req.DutyDays, actorID); err != nil {
		return nil, err
	}

	if err := s.staffRepo.SaveWithLock(ctx, member); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, member)

	resp := ToStaffResponse(member)
	return &resp, nil
}

// SuspendStaff blocks a staff member from logging in
func (s *StaffService) SuspendStaff(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*StaffResponse, error) {
	return s.changeStatus(ctx, id, actorID, (*staff.Staff).Suspend)
}

// ActivateStaff restores a suspended staff member
func (s *StaffService) ActivateStaff(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*StaffResponse, error) {
	return s.changeStatus(ctx, id, actorID, (*staff.Staff).Activate)
}

func (s *StaffService) changeStatus(ctx context.Context, id, actorID uuid.UUID, change func(*staff.Staff, uuid.UUID) error) (*StaffResponse, error) {
	member, err := s.staffRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := change(member, actorID); err != nil {
		return nil, err
	}

	if err := s.staffRepo.SaveWithLock(ctx, member); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, member)

	resp := ToStaffResponse(member)
	return &resp, nil
}

// DeleteStaff removes a staff profile. Linked credentials are removed
// alongside it so no orphaned login remains.
func (s *StaffService) DeleteStaff(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	member, err := s.staffRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if member.AuthUserID != nil {
		if err := s.authUserRepo.Delete(ctx, *member.AuthUserID); err != nil {
			s.logger.Warn("Failed to delete credentials for removed staff",
				zap.String("staff_id", id.String()), zap.Error(err))
		}
	}

	member.MarkDeleted(actorID)

	if err := s.staffRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.publishEvents(ctx, member)
	return nil
}

// ListStaff lists staff with pagination
func (s *StaffService) ListStaff(ctx context.Context, filter ListFilter) (*shared.Paginated[StaffResponse], error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		f.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		f.OrderDir = filter.OrderDir
	}
	f.Search = filter.Search
	if filter.Role != "" {
		f.Filters["role"] = filter.Role
	}
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}

	members, err := s.staffRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.staffRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	items := make([]StaffResponse, len(members))
	for i := range members {
		items[i] = ToStaffResponse(&members[i])
	}

	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// DeleteAuthUser removes a staff member's login credentials while
// keeping the profile. Admin-only; enforced at the transport layer.
func (s *StaffService) DeleteAuthUser(ctx context.Context, authUserID uuid.UUID, actorID uuid.UUID) error {
	authUser, err := s.authUserRepo.FindByID(ctx, authUserID)
	if err != nil {
		return err
	}

	authUser.MarkDeleted(actorID)

	if err := s.authUserRepo.Delete(ctx, authUserID); err != nil {
		return err
	}

	// Detach the profile after the credential is gone. A profile left
	// pointing at a deleted auth user would pass CanLogin.
	member, err := s.staffRepo.FindByAuthUserID(ctx, authUserID)
	if err == nil && member != nil {
		member.DetachAuthUser(actorID)
		if err := s.staffRepo.SaveWithLock(ctx, member); err != nil {
			s.logger.Warn("Failed to detach staff profile after credential deletion",
				zap.String("auth_user_id", authUserID.String()), zap.Error(err))
		} else {
			s.publishEvents(ctx, member)
		}
	}

	s.publishAggregateEvents(ctx, &authUser.BaseAggregateRoot)
	return nil
}

// SendCredentialsEmail emails login credentials to a staff member.
// Admin-only; enforced at the transport layer.
func (s *StaffService) SendCredentialsEmail(ctx context.Context, req SendCredentialsRequest, actorID uuid.UUID) error {
	if req.To == "" || req.Name == "" || req.Password == "" || req.LoginURL == "" {
		return shared.NewDomainError("INVALID_INPUT", "to, name, password and login_url are all required")
	}
	if s.mailer == nil {
		return shared.NewDomainError("EMAIL_UNAVAILABLE", "Email delivery is not configured")
	}

	err := s.mailer.SendCredentials(ctx, CredentialsEmail{
		To:       req.To,
		Name:     req.Name,
		Password: req.Password,
		LoginURL: req.LoginURL,
	})
	if err != nil {
		s.logger.Error("Failed to send credentials email",
			zap.String("to", req.To), zap.Error(err))
		return shared.NewDomainError("EMAIL_SEND_FAILED", "Failed to send credentials email")
	}

	s.logger.Info("Credentials email sent",
		zap.String("to", req.To),
		zap.String("actor_id", actorID.String()))
	return nil
}

// BootstrapAdmin ensures an admin account exists at startup using
// operator-supplied credentials. It refuses to run without them; there
// are no default credentials.
func (s *StaffService) BootstrapAdmin(ctx context.Context, name, email, password string) error {
	if email == "" || password == "" {
		return shared.NewDomainError("BOOTSTRAP_NOT_CONFIGURED", "Admin bootstrap requires an email and password")
	}
	email = strings.ToLower(strings.TrimSpace(email))

	exists, err := s.authUserRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	authUser, err := staff.NewAuthUser(email, hash)
	if err != nil {
		return err
	}
	if err := s.authUserRepo.Save(ctx, authUser); err != nil {
		return err
	}

	member, err := s.staffRepo.FindByEmail(ctx, email)
	if err != nil || member == nil {
		if name == "" {
			name = "Administrator"
		}
		member, err = staff.NewStaff(name, email, staff.RoleAdmin, uuid.Nil)
		if err != nil {
			return err
		}
	}
	member.LinkAuthUser(authUser.ID)

	if err := s.staffRepo.Save(ctx, member); err != nil {
		return err
	}

	s.logger.Info("Admin account bootstrapped", zap.String("email", email))
	s.publishEvents(ctx, member)
	return nil
}

func (s *StaffService) publishEvents(ctx context.Context, member *staff.Staff) {
	s.publishAggregateEvents(ctx, &member.BaseAggregateRoot)
}

func (s *StaffService) publishAggregateEvents(ctx context.Context, root *shared.BaseAggregateRoot) {
	if s.eventBus == nil {
		return
	}
	for _, event := range root.GetDomainEvents() {
		if err := s.eventBus.Publish(ctx, event); err != nil {
			s.logger.Warn("Failed to publish domain event",
				zap.String("event_type", event.EventType()), zap.Error(err))
		}
	}
	root.ClearDomainEvents()
}

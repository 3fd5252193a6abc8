package prospect

import (
	"context"
	"testing"

	"github.com/coldpitch/backend/internal/domain/prospect"
	"github.com/coldpitch/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProspectRepository is a mock implementation of prospect.Repository
type MockProspectRepository struct {
	mock.Mock
}

func (m *MockProspectRepository) FindByID(ctx context.Context, id uuid.UUID) (*prospect.Prospect, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*prospect.Prospect), args.Error(1)
}

func (m *MockProspectRepository) FindByEmail(ctx context.Context, email string) (*prospect.Prospect, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*prospect.Prospect), args.Error(1)
}

func (m *MockProspectRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]prospect.Prospect, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]prospect.Prospect), args.Error(1)
}

func (m *MockProspectRepository) FindAll(ctx context.Context, filter shared.Filter) ([]prospect.Prospect, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]prospect.Prospect), args.Error(1)
}

func (m *MockProspectRepository) FindByStatus(ctx context.Context, status prospect.Status, filter shared.Filter) ([]prospect.Prospect, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]prospect.Prospect), args.Error(1)
}

func (m *MockProspectRepository) Save(ctx context.Context, p *prospect.Prospect) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProspectRepository) SaveWithLock(ctx context.Context, p *prospect.Prospect) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProspectRepository) SaveBatch(ctx context.Context, prospects []*prospect.Prospect) error {
	args := m.Called(ctx, prospects)
	return args.Error(0)
}

func (m *MockProspectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProspectRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProspectRepository) CountByStatus(ctx context.Context, status prospect.Status) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProspectRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func TestCreateProspect(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()

	t.Run("creates prospect with optional fields", func(t *testing.T) {
		repo := new(MockProspectRepository)
		repo.On("ExistsByEmail", ctx, "ada@acme.test").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*prospect.Prospect")).Return(nil)

		svc := NewProspectService(repo, nil)
		resp, err := svc.CreateProspect(ctx, CreateProspectRequest{
			Name:           "Ada Obi",
			Email:          "Ada@Acme.Test",
			Company:        "Acme",
			Niche:          "Fintech",
			LinkedIn:       "https://linkedin.com/in/ada",
			ModeOfReachout: "LinkedIn",
			Tags:           []string{"warm", ""},
		}, actor)

		require.NoError(t, err)
		assert.Equal(t, "ada@acme.test", resp.Email)
		assert.Equal(t, "New", resp.Status)
		assert.True(t, resp.HasSocials)
		assert.Equal(t, []string{"warm"}, resp.Tags)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		repo := new(MockProspectRepository)
		repo.On("ExistsByEmail", ctx, "ada@acme.test").Return(true, nil)

		svc := NewProspectService(repo, nil)
		_, err := svc.CreateProspect(ctx, CreateProspectRequest{
			Name:  "Ada Obi",
			Email: "ada@acme.test",
		}, actor)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PROSPECT_EMAIL_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("allows missing email", func(t *testing.T) {
		repo := new(MockProspectRepository)
		repo.On("Save", ctx, mock.AnythingOfType("*prospect.Prospect")).Return(nil)

		svc := NewProspectService(repo, nil)
		resp, err := svc.CreateProspect(ctx, CreateProspectRequest{Name: "No Mail"}, actor)
		require.NoError(t, err)
		assert.Empty(t, resp.Email)
	})
}

func TestChangeStatus(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()

	p, err := prospect.NewProspect("Ada Obi", "ada@acme.test", actor)
	require.NoError(t, err)
	p.ClearDomainEvents()

	repo := new(MockProspectRepository)
	repo.On("FindByID", ctx, p.ID).Return(p, nil)
	repo.On("SaveWithLock", ctx, p).Return(nil)

	svc := NewProspectService(repo, nil)
	resp, err := svc.ChangeStatus(ctx, p.ID, ChangeStatusRequest{Status: "Qualified"}, actor)
	require.NoError(t, err)
	assert.Equal(t, "Qualified", resp.Status)

	_, err = svc.ChangeStatus(ctx, p.ID, ChangeStatusRequest{Status: "Bogus"}, actor)
	assert.Error(t, err)
}

func TestListProspects(t *testing.T) {
	ctx := context.Background()

	p1, _ := prospect.NewProspect("Ada", "ada@acme.test", uuid.New())
	p2, _ := prospect.NewProspect("Bola", "", uuid.New())

	repo := new(MockProspectRepository)
	repo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["status"] == "New" && f.Page == 2 && f.PageSize == 10
	})).Return([]prospect.Prospect{*p1, *p2}, nil)
	repo.On("Count", ctx, mock.Anything).Return(int64(12), nil)

	svc := NewProspectService(repo, nil)
	page, err := svc.ListProspects(ctx, ListFilter{Page: 2, PageSize: 10, Status: "New"})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(12), page.Total)
	assert.Equal(t, 2, page.TotalPages)
}

func TestFunnelCounts(t *testing.T) {
	ctx := context.Background()

	repo := new(MockProspectRepository)
	for _, status := range prospect.AllStatuses {
		repo.On("CountByStatus", ctx, status).Return(int64(3), nil)
	}

	svc := NewProspectService(repo, nil)
	counts, err := svc.FunnelCounts(ctx)
	require.NoError(t, err)
	assert.Len(t, counts, len(prospect.AllStatuses))
	assert.Equal(t, int64(3), counts["Converted"])
}

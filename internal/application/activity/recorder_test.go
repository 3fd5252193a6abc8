package activity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/coldpitch/backend/internal/domain/activity"
	"github.com/coldpitch/backend/internal/domain/prospect"
	"github.com/coldpitch/backend/internal/domain/shared"
	"github.com/coldpitch/backend/internal/domain/staff"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryLogRepo struct {
	entries   []activity.Log
	appendErr error
}

func (m *memoryLogRepo) Append(_ context.Context, entry *activity.Log) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *memoryLogRepo) FindAll(_ context.Context, _ shared.Filter) ([]activity.Log, error) {
	return m.entries, nil
}

func (m *memoryLogRepo) FindByStaff(_ context.Context, staffID uuid.UUID, _ shared.Filter) ([]activity.Log, error) {
	var out []activity.Log
	for _, e := range m.entries {
		if e.StaffID == staffID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memoryLogRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(m.entries)), nil
}

func (m *memoryLogRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	var kept []activity.Log
	var removed int64
	for _, e := range m.entries {
		if e.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	m.entries = kept
	return removed, nil
}

type staffLookup struct {
	member *staff.Staff
}

func (s *staffLookup) FindByID(_ context.Context, id uuid.UUID) (*staff.Staff, error) {
	if s.member != nil && s.member.ID == id {
		return s.member, nil
	}
	return nil, shared.ErrNotFound
}

func (s *staffLookup) FindByEmail(context.Context, string) (*staff.Staff, error) {
	return nil, shared.ErrNotFound
}

func (s *staffLookup) FindByAuthUserID(context.Context, uuid.UUID) (*staff.Staff, error) {
	return nil, shared.ErrNotFound
}

func (s *staffLookup) FindAll(context.Context, shared.Filter) ([]staff.Staff, error) {
	return nil, nil
}

func (s *staffLookup) Save(context.Context, *staff.Staff) error         { return nil }
func (s *staffLookup) SaveWithLock(context.Context, *staff.Staff) error { return nil }
func (s *staffLookup) Delete(context.Context, uuid.UUID) error          { return nil }
func (s *staffLookup) Count(context.Context, shared.Filter) (int64, error) {
	return 0, nil
}

func TestRecorder_AppendsEntryWithStaffName(t *testing.T) {
	ctx := context.Background()

	member, err := staff.NewStaff("Lara", "lara@coldpitch.test", staff.RoleAgent, uuid.Nil)
	require.NoError(t, err)
	member.ClearDomainEvents()

	p, err := prospect.NewProspect("Ada Obi", "ada@fintech.test", member.ID)
	require.NoError(t, err)
	events := p.GetDomainEvents()
	require.NotEmpty(t, events)

	repo := &memoryLogRepo{}
	recorder := NewRecorder(repo, &staffLookup{member: member}, nil)

	require.NoError(t, recorder.Handle(ctx, events[0]))

	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]
	assert.Equal(t, member.ID, entry.StaffID)
	assert.Equal(t, "Lara", entry.StaffName)
	assert.Equal(t, "ProspectCreated", entry.Action)
	assert.Equal(t, p.ID, entry.TargetID)
	assert.NotEmpty(t, entry.Detail)
}

func TestRecorder_SystemActor(t *testing.T) {
	ctx := context.Background()

	p, err := prospect.NewProspect("Ada Obi", "ada@fintech.test", uuid.Nil)
	require.NoError(t, err)

	repo := &memoryLogRepo{}
	recorder := NewRecorder(repo, &staffLookup{}, nil)

	require.NoError(t, recorder.Handle(ctx, p.GetDomainEvents()[0]))

	require.Len(t, repo.entries, 1)
	assert.Equal(t, "System", repo.entries[0].StaffName)
}

func TestRecorder_AppendFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()

	p, err := prospect.NewProspect("Ada Obi", "ada@fintech.test", uuid.New())
	require.NoError(t, err)

	repo := &memoryLogRepo{appendErr: errors.New("db down")}
	recorder := NewRecorder(repo, &staffLookup{}, nil)

	assert.NoError(t, recorder.Handle(ctx, p.GetDomainEvents()[0]))
}

func TestRecorder_CredentialEventsStoreNoPayload(t *testing.T) {
	ctx := context.Background()

	authUser, err := staff.NewAuthUser("lara@coldpitch.test", "hash")
	require.NoError(t, err)
	authUser.MarkDeleted(uuid.New())

	repo := &memoryLogRepo{}
	recorder := NewRecorder(repo, &staffLookup{}, nil)

	require.NoError(t, recorder.Handle(ctx, authUser.GetDomainEvents()[0]))

	require.Len(t, repo.entries, 1)
	assert.Empty(t, repo.entries[0].Detail)
}

func TestActivityService_ListAndPrune(t *testing.T) {
	ctx := context.Background()
	repo := &memoryLogRepo{}

	staffID := uuid.New()
	repo.entries = append(repo.entries,
		*activity.NewLog(staffID, "Lara", "ProspectCreated", "Prospect", uuid.New(), ""),
		*activity.NewLog(uuid.New(), "Tunde", "InvoicePaid", "Invoice", uuid.New(), ""),
	)

	svc := NewActivityService(repo)

	page, err := svc.ListActivity(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	mine, err := svc.ListStaffActivity(ctx, staffID, ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), mine.Total)

	removed, err := svc.PruneOlderThan(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)
}

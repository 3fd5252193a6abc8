package settings

import (
	"context"
	"testing"

	"github.com/coldpitch/backend/internal/domain/settings"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	doc *settings.Settings
}

func (m *memoryRepo) Get(_ context.Context) (*settings.Settings, error) { return m.doc, nil }

func (m *memoryRepo) Save(_ context.Context, s *settings.Settings) error {
	m.doc = s
	return nil
}

func TestGetSettings_DefaultsWhenUnset(t *testing.T) {
	svc := NewSettingsService(&memoryRepo{})

	resp, err := svc.GetSettings(context.Background())

	require.NoError(t, err)
	assert.Empty(t, resp.Profile.BusinessName)
	assert.True(t, resp.Notifications.RenewalReminder)
	assert.Equal(t, "Agent", resp.Team.DefaultRole)
}

func TestUpdateProfile_PersistsDocument(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewSettingsService(repo)
	ctx := context.Background()

	resp, err := svc.UpdateProfile(ctx, UpdateProfileRequest{
		BusinessName: "ColdPitch Studio",
		SenderName:   "Lara",
		SenderEmail:  "hello@coldpitch.test",
		LoginURL:     "https://app.coldpitch.test/login",
	}, uuid.New())

	require.NoError(t, err)
	assert.Equal(t, "ColdPitch Studio", resp.Profile.BusinessName)
	require.NotNil(t, repo.doc)
	assert.Equal(t, "hello@coldpitch.test", repo.doc.Profile.SenderEmail)

	// untouched sections keep their defaults
	assert.True(t, repo.doc.Notifications.RenewalReminder)
}

func TestUpdateNotificationsAndTeam(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewSettingsService(repo)
	ctx := context.Background()
	actor := uuid.New()

	_, err := svc.UpdateNotifications(ctx, UpdateNotificationsRequest{
		EmailOnReply:   true,
		EmailOnPayment: true,
	}, actor)
	require.NoError(t, err)
	assert.True(t, repo.doc.Notifications.EmailOnReply)
	assert.False(t, repo.doc.Notifications.RenewalReminder, "toggles are replaced, not merged")

	resp, err := svc.UpdateTeam(ctx, UpdateTeamRequest{
		DefaultRole:      "Manager",
		ApprovalRequired: true,
	}, actor)
	require.NoError(t, err)
	assert.Equal(t, "Manager", resp.Team.DefaultRole)
	assert.True(t, resp.Team.ApprovalRequired)
}

package persistence

import (
	"context"
	"testing"

	"github.com/coldpitch/backend/internal/domain/campaign"
	"github.com/coldpitch/backend/internal/domain/shared"
	"github.com/coldpitch/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newCampaignTestDB opens an in-memory SQLite database so repository
// round-trips run against real SQL. Search filters are excluded here
// because they use ILIKE, which only PostgreSQL understands.
func newCampaignTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.CampaignModel{}))
	return db
}

func newTestCampaign(t *testing.T, name string) *campaign.Campaign {
	c, err := campaign.NewCampaign(name, "Quick question about {{company}}", "Hi {{name}},", uuid.New())
	require.NoError(t, err)
	return c
}

func TestCampaignRepository_SaveAndFindByID(t *testing.T) {
	repo := NewGormCampaignRepository(newCampaignTestDB(t))
	ctx := context.Background()

	c := newTestCampaign(t, "Lagos fintech outreach")
	require.NoError(t, repo.Save(ctx, c))

	found, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, found.ID)
	assert.Equal(t, "Lagos fintech outreach", found.Name)
	assert.Equal(t, campaign.StatusDraft, found.Status)
	assert.Equal(t, 0, found.SentCount)
}

func TestCampaignRepository_FindByID_NotFound(t *testing.T) {
	repo := NewGormCampaignRepository(newCampaignTestDB(t))

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCampaignRepository_FindByStatus(t *testing.T) {
	repo := NewGormCampaignRepository(newCampaignTestDB(t))
	ctx := context.Background()
	actor := uuid.New()

	draft := newTestCampaign(t, "Draft campaign")
	require.NoError(t, repo.Save(ctx, draft))

	active := newTestCampaign(t, "Active campaign")
	require.NoError(t, active.RecordBatchSent(5, 0, actor))
	require.NoError(t, repo.Save(ctx, active))

	found, err := repo.FindByStatus(ctx, campaign.StatusActive, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, active.ID, found[0].ID)
	assert.Equal(t, 5, found[0].SentCount)
}

func TestCampaignRepository_FindAll_StatusFilterAndCount(t *testing.T) {
	repo := NewGormCampaignRepository(newCampaignTestDB(t))
	ctx := context.Background()

	for _, name := range []string{"First", "Second", "Third"} {
		require.NoError(t, repo.Save(ctx, newTestCampaign(t, name)))
	}

	filter := shared.DefaultFilter()
	filter.Filters = map[string]interface{}{"status": campaign.StatusDraft}

	found, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, found, 3)

	count, err := repo.Count(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestCampaignRepository_FindAll_Pagination(t *testing.T) {
	repo := NewGormCampaignRepository(newCampaignTestDB(t))
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C", "D", "E"} {
		require.NoError(t, repo.Save(ctx, newTestCampaign(t, name)))
	}

	filter := shared.DefaultFilter()
	filter.Page = 2
	filter.PageSize = 2

	found, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestCampaignRepository_SaveWithLock(t *testing.T) {
	repo := NewGormCampaignRepository(newCampaignTestDB(t))
	ctx := context.Background()
	actor := uuid.New()

	c := newTestCampaign(t, "Locked campaign")
	require.NoError(t, repo.Save(ctx, c))

	t.Run("succeeds when version matches", func(t *testing.T) {
		loaded, err := repo.FindByID(ctx, c.ID)
		require.NoError(t, err)

		loaded.RecordOpen()
		require.NoError(t, repo.SaveWithLock(ctx, loaded))

		reloaded, err := repo.FindByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, reloaded.OpenCount)
		assert.Equal(t, loaded.Version, reloaded.Version)
	})

	t.Run("fails on stale version", func(t *testing.T) {
		stale, err := repo.FindByID(ctx, c.ID)
		require.NoError(t, err)

		fresh, err := repo.FindByID(ctx, c.ID)
		require.NoError(t, err)

		require.NoError(t, fresh.RecordBatchSent(1, 0, actor))
		require.NoError(t, repo.SaveWithLock(ctx, fresh))

		require.NoError(t, stale.RecordBatchSent(2, 0, actor))
		err = repo.SaveWithLock(ctx, stale)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "OPTIMISTIC_LOCK_ERROR", domainErr.Code)
	})
}

func TestCampaignRepository_Delete(t *testing.T) {
	repo := NewGormCampaignRepository(newCampaignTestDB(t))
	ctx := context.Background()

	c := newTestCampaign(t, "Short-lived")
	require.NoError(t, repo.Save(ctx, c))

	require.NoError(t, repo.Delete(ctx, c.ID))

	_, err := repo.FindByID(ctx, c.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, c.ID), shared.ErrNotFound)
}

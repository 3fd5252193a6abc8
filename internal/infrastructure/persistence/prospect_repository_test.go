package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/coldpitch/backend/internal/domain/prospect"
	"github.com/coldpitch/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockProspectRepository creates a GormProspectRepository with a mocked SQL connection
func newMockProspectRepository(t *testing.T) (*GormProspectRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormProspectRepository(gormDB), mock, mockDB
}

func prospectRows(id uuid.UUID) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "created_at", "updated_at", "version",
		"name", "email", "status", "mode_of_reachout",
		"tags", "socials", "date_added", "last_activity",
	}).AddRow(
		id, now, now, 1,
		"Ada Obi", "ada@fintech.test", "New", "Email",
		`["fintech","lagos"]`, `{"linkedin":"https://linkedin.com/in/ada"}`, now, now,
	)
}

func TestNewGormProspectRepository(t *testing.T) {
	t.Run("creates repository with valid DB", func(t *testing.T) {
		repo, _, mockDB := newMockProspectRepository(t)
		defer mockDB.Close()

		assert.NotNil(t, repo)
		assert.NotNil(t, repo.db)
	})
}

func TestGormProspectRepository_FindByID(t *testing.T) {
	t.Run("finds existing prospect and parses jsonb columns", func(t *testing.T) {
		repo, mock, mockDB := newMockProspectRepository(t)
		defer mockDB.Close()

		prospectID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "prospects" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(prospectID, 1).
			WillReturnRows(prospectRows(prospectID))

		p, err := repo.FindByID(context.Background(), prospectID)

		assert.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, prospectID, p.ID)
		assert.Equal(t, "Ada Obi", p.Name)
		assert.Equal(t, []string{"fintech", "lagos"}, p.Tags)
		assert.Equal(t, "https://linkedin.com/in/ada", p.Socials.LinkedIn)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for non-existent prospect", func(t *testing.T) {
		repo, mock, mockDB := newMockProspectRepository(t)
		defer mockDB.Close()

		prospectID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "prospects" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(prospectID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		p, err := repo.FindByID(context.Background(), prospectID)

		assert.Error(t, err)
		assert.Nil(t, p)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProspectRepository_FindByEmail(t *testing.T) {
	t.Run("lowercases email before lookup", func(t *testing.T) {
		repo, mock, mockDB := newMockProspectRepository(t)
		defer mockDB.Close()

		prospectID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "prospects" WHERE email = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("ada@fintech.test", 1).
			WillReturnRows(prospectRows(prospectID))

		p, err := repo.FindByEmail(context.Background(), "ADA@Fintech.Test")

		assert.NoError(t, err)
		assert.NotNil(t, p)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for empty email", func(t *testing.T) {
		repo, _, mockDB := newMockProspectRepository(t)
		defer mockDB.Close()

		_, err := repo.FindByEmail(context.Background(), "")

		assert.Error(t, err)
	})
}

func TestGormProspectRepository_FindByIDs(t *testing.T) {
	t.Run("returns empty slice for empty IDs", func(t *testing.T) {
		repo, _, mockDB := newMockProspectRepository(t)
		defer mockDB.Close()

		prospects, err := repo.FindByIDs(context.Background(), []uuid.UUID{})

		assert.NoError(t, err)
		assert.Empty(t, prospects)
	})

	t.Run("finds multiple prospects by IDs", func(t *testing.T) {
		repo, mock, mockDB := newMockProspectRepository(t)
		defer mockDB.Close()

		id1 := uuid.New()
		id2 := uuid.New()
		now := time.Now()

		rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at", "version", "name", "status", "date_added", "last_activity"}).
			AddRow(id1, now, now, 1, "Ada Obi", "New", now, now).
			AddRow(id2, now, now, 1, "Tunde Salami", "Contacted", now, now)

		mock.ExpectQuery(`SELECT \* FROM "prospects" WHERE id IN \(\$1,\$2\)`).
			WithArgs(id1, id2).
			WillReturnRows(rows)

		prospects, err := repo.FindByIDs(context.Background(), []uuid.UUID{id1, id2})

		assert.NoError(t, err)
		assert.Len(t, prospects, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProspectRepository_FindAll(t *testing.T) {
	t.Run("applies status filter and pagination", func(t *testing.T) {
		repo, mock, mockDB := newMockProspectRepository(t)
		defer mockDB.Close()

		prospectID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "prospects" WHERE status = \$1 ORDER BY date_added DESC LIMIT .*`).
			WithArgs("Qualified", 20).
			WillReturnRows(prospectRows(prospectID))

		filter := shared.DefaultFilter()
		filter.OrderBy = ""
		filter.Filters = map[string]interface{}{"status": "Qualified"}

		prospects, err := repo.FindAll(context.Background(), filter)

		assert.NoError(t, err)
		assert.Len(t, prospects, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("skips pagination when page size is zero", func(t *testing.T) {
		repo, mock, mockDB := newMockProspectRepository(t)
		defer mockDB.Close()

		prospectID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "prospects" ORDER BY date_added DESC$`).
			WillReturnRows(prospectRows(prospectID))

		prospects, err := repo.FindAll(context.Background(), shared.Filter{})

		assert.NoError(t, err)
		assert.Len(t, prospects, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects hostile order by through whitelist", func(t *testing.T) {
		repo, mock, mockDB := newMockProspectRepository(t)
		defer mockDB.Close()

		prospectID := uuid.New()

		// The injected field falls back to date_added
		mock.ExpectQuery(`SELECT \* FROM "prospects" ORDER BY date_added DESC$`).
			WillReturnRows(prospectRows(prospectID))

		_, err := repo.FindAll(context.Background(), shared.Filter{
			OrderBy: "date_added; DROP TABLE prospects;--",
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProspectRepository_SaveWithLock(t *testing.T) {
	t.Run("updates with version check", func(t *testing.T) {
		repo, mock, mockDB := newMockProspectRepository(t)
		defer mockDB.Close()

		p, err := prospect.NewProspect("Ada Obi", "ada@fintech.test", uuid.New())
		require.NoError(t, err)
		p.SetNiche("Fintech") // bumps version to 2

		mock.ExpectExec(`UPDATE "prospects" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.SaveWithLock(context.Background(), p)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns lock error when no rows match", func(t *testing.T) {
		repo, mock, mockDB := newMockProspectRepository(t)
		defer mockDB.Close()

		p, err := prospect.NewProspect("Ada Obi", "ada@fintech.test", uuid.New())
		require.NoError(t, err)
		p.SetNiche("Fintech")

		mock.ExpectExec(`UPDATE "prospects" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.SaveWithLock(context.Background(), p)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "OPTIMISTIC_LOCK_ERROR", domainErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProspectRepository_SaveBatch(t *testing.T) {
	t.Run("returns nil for empty batch", func(t *testing.T) {
		repo, _, mockDB := newMockProspectRepository(t)
		defer mockDB.Close()

		err := repo.SaveBatch(context.Background(), []*prospect.Prospect{})

		assert.NoError(t, err)
	})
}

func TestGormProspectRepository_Delete(t *testing.T) {
	t.Run("deletes existing prospect", func(t *testing.T) {
		repo, mock, mockDB := newMockProspectRepository(t)
		defer mockDB.Close()

		prospectID := uuid.New()

		mock.ExpectExec(`DELETE FROM "prospects" WHERE id = \$1`).
			WithArgs(prospectID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), prospectID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for non-existent prospect", func(t *testing.T) {
		repo, mock, mockDB := newMockProspectRepository(t)
		defer mockDB.Close()

		prospectID := uuid.New()

		mock.ExpectExec(`DELETE FROM "prospects" WHERE id = \$1`).
			WithArgs(prospectID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), prospectID)

		assert.Error(t, err)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProspectRepository_CountByStatus(t *testing.T) {
	t.Run("counts prospects in a funnel status", func(t *testing.T) {
		repo, mock, mockDB := newMockProspectRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "prospects" WHERE status = \$1`).
			WithArgs(prospect.StatusQualified).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

		count, err := repo.CountByStatus(context.Background(), prospect.StatusQualified)

		assert.NoError(t, err)
		assert.Equal(t, int64(4), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProspectRepository_ExistsByEmail(t *testing.T) {
	t.Run("returns true when prospect exists", func(t *testing.T) {
		repo, mock, mockDB := newMockProspectRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "prospects" WHERE email = \$1`).
			WithArgs("ada@fintech.test").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByEmail(context.Background(), "Ada@Fintech.Test")

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns false for empty email without querying", func(t *testing.T) {
		repo, _, mockDB := newMockProspectRepository(t)
		defer mockDB.Close()

		exists, err := repo.ExistsByEmail(context.Background(), "")

		assert.NoError(t, err)
		assert.False(t, exists)
	})
}

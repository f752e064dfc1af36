package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/caixa/backend/internal/domain/ledger"
	"github.com/caixa/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockCheckRepository creates a GormCheckRepository with a mocked SQL connection
func newMockCheckRepository(t *testing.T) (*GormCheckRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormCheckRepository(gormDB), mock, mockDB
}

func TestGormCheckRepository_FindByID(t *testing.T) {
	t.Run("finds existing check", func(t *testing.T) {
		repo, mock, mockDB := newMockCheckRepository(t)
		defer mockDB.Close()

		checkID := uuid.New()
		dueDate := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

		rows := sqlmock.NewRows([]string{"id", "client", "value", "due_date", "status", "is_own_check"}).
			AddRow(checkID, "ACME Ltda", decimal.NewFromInt(500), dueDate, "pending", false)

		mock.ExpectQuery(`SELECT \* FROM "checks" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(checkID, 1).
			WillReturnRows(rows)

		check, err := repo.FindByID(context.Background(), checkID)
		require.NoError(t, err)
		assert.Equal(t, checkID, check.ID)
		assert.Equal(t, "ACME Ltda", check.Client)
		assert.Equal(t, ledger.CheckStatusPending, check.Status)
		assert.Equal(t, ledger.Date{Year: 2024, Month: time.March, Day: 15}, check.DueDate)
		assert.True(t, check.Value.Equal(decimal.NewFromInt(500)))
	})

	t.Run("returns ErrNotFound for missing check", func(t *testing.T) {
		repo, mock, mockDB := newMockCheckRepository(t)
		defer mockDB.Close()

		checkID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "checks" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(checkID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		check, err := repo.FindByID(context.Background(), checkID)
		assert.Nil(t, check)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormCheckRepository_FindByStatus(t *testing.T) {
	t.Run("filters by status ordered by due date", func(t *testing.T) {
		repo, mock, mockDB := newMockCheckRepository(t)
		defer mockDB.Close()

		early := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
		late := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)

		rows := sqlmock.NewRows([]string{"id", "client", "value", "due_date", "status"}).
			AddRow(uuid.New(), "First", decimal.NewFromInt(100), early, "pending").
			AddRow(uuid.New(), "Second", decimal.NewFromInt(200), late, "pending")

		mock.ExpectQuery(`SELECT \* FROM "checks" WHERE status = \$1 ORDER BY due_date ASC`).
			WithArgs("pending").
			WillReturnRows(rows)

		checks, err := repo.FindByStatus(context.Background(), ledger.CheckStatusPending)
		require.NoError(t, err)
		require.Len(t, checks, 2)
		assert.Equal(t, "First", checks[0].Client)
		assert.Equal(t, "Second", checks[1].Client)
	})
}

func TestGormCheckRepository_FindByDueDateRange(t *testing.T) {
	t.Run("queries with inclusive bounds", func(t *testing.T) {
		repo, mock, mockDB := newMockCheckRepository(t)
		defer mockDB.Close()

		rng := ledger.NewDateRange(
			ledger.Date{Year: 2024, Month: time.March, Day: 1},
			ledger.Date{Year: 2024, Month: time.March, Day: 31},
		)

		rows := sqlmock.NewRows([]string{"id", "client", "value", "due_date", "status"}).
			AddRow(uuid.New(), "ACME Ltda", decimal.NewFromInt(300), time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), "pending")

		mock.ExpectQuery(`SELECT \* FROM "checks" WHERE due_date >= \$1 AND due_date <= \$2 ORDER BY due_date ASC`).
			WithArgs("2024-03-01", "2024-03-31").
			WillReturnRows(rows)

		checks, err := repo.FindByDueDateRange(context.Background(), rng)
		require.NoError(t, err)
		assert.Len(t, checks, 1)
	})

	t.Run("returns empty slice for inverted range without querying", func(t *testing.T) {
		repo, _, mockDB := newMockCheckRepository(t)
		defer mockDB.Close()

		rng := ledger.NewDateRange(
			ledger.Date{Year: 2024, Month: time.March, Day: 31},
			ledger.Date{Year: 2024, Month: time.March, Day: 1},
		)

		checks, err := repo.FindByDueDateRange(context.Background(), rng)
		require.NoError(t, err)
		assert.Empty(t, checks)
	})
}

func TestGormCheckRepository_Delete(t *testing.T) {
	t.Run("deletes existing check", func(t *testing.T) {
		repo, mock, mockDB := newMockCheckRepository(t)
		defer mockDB.Close()

		checkID := uuid.New()
		mock.ExpectExec(`DELETE FROM "checks" WHERE id = \$1`).
			WithArgs(checkID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), checkID)
		assert.NoError(t, err)
	})

	t.Run("returns ErrNotFound when nothing deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockCheckRepository(t)
		defer mockDB.Close()

		checkID := uuid.New()
		mock.ExpectExec(`DELETE FROM "checks" WHERE id = \$1`).
			WithArgs(checkID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), checkID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormCheckRepository_Count(t *testing.T) {
	t.Run("returns table count", func(t *testing.T) {
		repo, mock, mockDB := newMockCheckRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "checks"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

		count, err := repo.Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(7), count)
	})
}

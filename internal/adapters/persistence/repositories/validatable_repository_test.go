package repositories

import (
	"context"
	"testing"

	"astrafin-backoffice/internal/adapters/persistence/models"
	"astrafin-backoffice/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, models.AutoMigrate(db))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func createClientFile(t *testing.T, repo *ValidatableRepository[models.ClientFile, *models.ClientFile]) *models.ClientFile {
	t.Helper()

	file := &models.ClientFile{
		Reference:  "CF-TEST0001",
		ClientCode: "ACME-001",
		Reason:     "account opening",
		ClientType: "INDIVIDUAL",
		Validation: domain.NewValidation(1),
	}
	require.NoError(t, repo.Create(context.Background(), file))
	return file
}

func TestValidatableRepository_CreateAndGet(t *testing.T) {
	db := testDB(t)
	repo := NewValidatableRepository[models.ClientFile, *models.ClientFile](db)

	created := createClientFile(t, repo)
	require.NotZero(t, created.ID)

	got, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Reference, got.Reference)
	assert.Equal(t, domain.StatusInProgress, got.Status)
	assert.Equal(t, uint(0), got.Version)
}

func TestValidatableRepository_GetMissing(t *testing.T) {
	db := testDB(t)
	repo := NewValidatableRepository[models.ClientFile, *models.ClientFile](db)

	_, err := repo.GetByID(context.Background(), 4242)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestValidatableRepository_UpdateValidation(t *testing.T) {
	db := testDB(t)
	repo := NewValidatableRepository[models.ClientFile, *models.ClientFile](db)
	ctx := context.Background()

	file := createClientFile(t, repo)
	expected := file.Validation

	file.Status = domain.StatusAwaitingAdminValidation
	require.NoError(t, repo.UpdateValidation(ctx, file, expected))
	assert.Equal(t, uint(1), file.Version)

	got, err := repo.GetByID(ctx, file.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAwaitingAdminValidation, got.Status)
	assert.Equal(t, uint(1), got.Version)
}

func TestValidatableRepository_UpdateValidationConflict(t *testing.T) {
	db := testDB(t)
	repo := NewValidatableRepository[models.ClientFile, *models.ClientFile](db)
	ctx := context.Background()

	file := createClientFile(t, repo)

	// Two actors read the same snapshot
	first, err := repo.GetByID(ctx, file.ID)
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, file.ID)
	require.NoError(t, err)

	// First write wins
	expectedFirst := first.Validation
	first.Status = domain.StatusAwaitingAdminValidation
	require.NoError(t, repo.UpdateValidation(ctx, first, expectedFirst))

	// Second write against the stale snapshot loses
	expectedSecond := second.Validation
	second.Status = domain.StatusAwaitingAdminValidation
	err = repo.UpdateValidation(ctx, second, expectedSecond)
	require.ErrorIs(t, err, domain.ErrConflict)

	// The stored state reflects exactly one transition
	got, err := repo.GetByID(ctx, file.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAwaitingAdminValidation, got.Status)
	assert.Equal(t, uint(1), got.Version)
}

func TestValidatableRepository_ListFilters(t *testing.T) {
	db := testDB(t)
	repo := NewValidatableRepository[models.Expense, *models.Expense](db)
	ctx := context.Background()

	for i, creatorID := range []uint{1, 1, 2} {
		exp := &models.Expense{
			Amount:     100 + float64(i),
			Category:   "TRAVEL",
			Validation: domain.NewValidation(creatorID),
		}
		require.NoError(t, repo.Create(ctx, exp))
	}
	// Move one entity into the admin queue
	moved, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	expected := moved.Validation
	moved.Status = domain.StatusAwaitingAdminValidation
	require.NoError(t, repo.UpdateValidation(ctx, moved, expected))

	all, total, err := repo.List(ctx, ListFilter{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.EqualValues(t, 3, total)

	awaiting := domain.StatusAwaitingAdminValidation
	filtered, total, err := repo.List(ctx, ListFilter{Status: &awaiting, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, filtered, 1)
	assert.EqualValues(t, 1, total)

	creatorID := uint(2)
	byCreator, total, err := repo.List(ctx, ListFilter{CreatorID: &creatorID, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, byCreator, 1)
	assert.EqualValues(t, 1, total)
}

func TestValidatableRepository_Delete(t *testing.T) {
	db := testDB(t)
	repo := NewValidatableRepository[models.ClientFile, *models.ClientFile](db)
	ctx := context.Background()

	file := createClientFile(t, repo)
	require.NoError(t, repo.Delete(ctx, file.ID))

	_, err := repo.GetByID(ctx, file.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.ErrorIs(t, repo.Delete(ctx, file.ID), domain.ErrNotFound)
}

func TestValidatableRepository_CountByStatus(t *testing.T) {
	db := testDB(t)
	repo := NewValidatableRepository[models.Leave, *models.Leave](db)
	ctx := context.Background()

	for range [3]struct{}{} {
		leave := &models.Leave{
			LeaveType:  "ANNUAL",
			Validation: domain.NewValidation(1),
		}
		require.NoError(t, repo.Create(ctx, leave))
	}

	count, err := repo.CountByStatus(ctx, domain.StatusAwaitingAdminValidation, domain.StatusAwaitingSuperAdmin)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	count, err = repo.CountByStatus(ctx, domain.StatusInProgress)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

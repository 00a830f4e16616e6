package services

import (
	"context"
	"testing"

	"astrafin-backoffice/internal/adapters/persistence/models"
	"astrafin-backoffice/internal/adapters/persistence/repositories"
	"astrafin-backoffice/internal/core/domain"
	"astrafin-backoffice/internal/core/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	testCreator    = domain.Actor{ID: 1, Role: domain.RoleUser}
	testAdmin      = domain.Actor{ID: 2, Role: domain.RoleAdmin}
	testSuperAdmin = domain.Actor{ID: 3, Role: domain.RoleSuperAdmin}
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

func newExpenseFixture(t *testing.T) (*ValidationService[models.Expense, *models.Expense], *repositories.ValidatableRepository[models.Expense, *models.Expense], uint) {
	t.Helper()

	db := testDB(t)
	repo := repositories.NewValidatableRepository[models.Expense, *models.Expense](db)
	events := repositories.NewEventRepository(db)
	engine := workflow.NewEngine(workflow.DefaultPolicy())
	service := NewValidationService(repo, events, engine, nil)

	expense := &models.Expense{
		Amount:     120.50,
		Category:   "TRAVEL",
		Validation: domain.NewValidation(testCreator.ID),
	}
	require.NoError(t, repo.Create(context.Background(), expense))

	return service, repo, expense.ID
}

func TestValidationService_FullLifecycle(t *testing.T) {
	service, _, id := newExpenseFixture(t)
	ctx := context.Background()

	entity, err := service.Submit(ctx, id, testCreator, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAwaitingAdminValidation, entity.Status)
	assert.Equal(t, uint(1), entity.Version)

	entity, err = service.ValidateAsAdmin(ctx, id, testAdmin, "10.0.0.2")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAwaitingSuperAdmin, entity.Status)
	require.NotNil(t, entity.ValidatorAdminID)
	assert.Equal(t, testAdmin.ID, *entity.ValidatorAdminID)

	entity, err = service.ValidateAsSuperAdmin(ctx, id, testSuperAdmin, "10.0.0.3")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusValidated, entity.Status)
	require.NotNil(t, entity.ValidatorSuperAdminID)
	assert.Equal(t, testSuperAdmin.ID, *entity.ValidatorSuperAdminID)
	assert.Equal(t, uint(3), entity.Version)

	// History is newest first
	history, err := service.GetHistory(ctx, id)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, string(domain.TransitionValidateSuperAdmin), history[0].Transition)
	assert.Equal(t, string(domain.TransitionValidateAdmin), history[1].Transition)
	assert.Equal(t, string(domain.TransitionSubmit), history[2].Transition)
	assert.Equal(t, "10.0.0.2", history[1].IPAddress)
}

func TestValidationService_RejectionCycle(t *testing.T) {
	service, repo, id := newExpenseFixture(t)
	ctx := context.Background()

	_, err := service.Submit(ctx, id, testCreator, "")
	require.NoError(t, err)

	entity, err := service.Reject(ctx, id, testAdmin, "receipt missing", "")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, entity.Status)
	require.NotNil(t, entity.RejectionReason)
	assert.Equal(t, "receipt missing", *entity.RejectionReason)

	entity, err = service.ResubmitForEdit(ctx, id, testCreator, "")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusBeingModified, entity.Status)
	assert.Nil(t, entity.RejectionReason)

	// The cleared reason is persisted, not just in memory
	stored, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, stored.RejectionReason)

	_, err = service.Submit(ctx, id, testCreator, "")
	require.NoError(t, err)
}

func TestValidationService_InvalidTransitions(t *testing.T) {
	service, _, id := newExpenseFixture(t)
	ctx := context.Background()

	// Cannot validate before submission
	_, err := service.ValidateAsAdmin(ctx, id, testAdmin, "")
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	// Cannot reject before submission
	_, err = service.Reject(ctx, id, testAdmin, "too early", "")
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	// A failed transition writes no audit row
	history, err := service.GetHistory(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestValidationService_ForbiddenActor(t *testing.T) {
	service, _, id := newExpenseFixture(t)
	ctx := context.Background()

	_, err := service.Submit(ctx, id, testCreator, "")
	require.NoError(t, err)

	_, err = service.ValidateAsAdmin(ctx, id, testCreator, "")
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = service.ValidateAsAdmin(ctx, id, domain.Actor{ID: 9, Role: domain.RoleRH}, "")
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestValidationService_AdminFastPath(t *testing.T) {
	db := testDB(t)
	repo := repositories.NewValidatableRepository[models.Expense, *models.Expense](db)
	events := repositories.NewEventRepository(db)
	engine := workflow.NewEngine(workflow.DefaultPolicy())
	service := NewValidationService(repo, events, engine, nil)
	ctx := context.Background()

	expense := &models.Expense{
		Amount:     45,
		Category:   "MEAL",
		Validation: domain.NewValidation(testAdmin.ID),
	}
	require.NoError(t, repo.Create(ctx, expense))

	entity, err := service.Submit(ctx, expense.ID, testAdmin, "")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAwaitingSuperAdmin, entity.Status, "validator submissions skip the first tier")
}

func TestValidationService_NotFound(t *testing.T) {
	service, _, _ := newExpenseFixture(t)

	_, err := service.Submit(context.Background(), 777, testCreator, "")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

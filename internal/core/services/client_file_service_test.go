package services

import (
	"context"
	"strings"
	"testing"

	"astrafin-backoffice/internal/adapters/persistence/models"
	"astrafin-backoffice/internal/adapters/persistence/repositories"
	"astrafin-backoffice/internal/core/domain"
	"astrafin-backoffice/internal/core/progress"
	"astrafin-backoffice/internal/core/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newClientFileFixture(t *testing.T) (*ClientFileService, *ValidationService[models.ClientFile, *models.ClientFile]) {
	t.Helper()

	db := testDB(t)
	repo := repositories.NewValidatableRepository[models.ClientFile, *models.ClientFile](db)
	events := repositories.NewEventRepository(db)
	engine := workflow.NewEngine(workflow.DefaultPolicy())

	return NewClientFileService(repo), NewValidationService(repo, events, engine, nil)
}

func TestClientFileService_Create(t *testing.T) {
	service, _ := newClientFileFixture(t)
	ctx := context.Background()

	result, err := service.Create(ctx, &CreateClientFileInput{
		ClientCode: "ACME-001",
		Reason:     "account opening",
		ClientType: "INDIVIDUAL",
	}, 1)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.ClientFile.Reference, "CF-"))
	assert.Len(t, result.ClientFile.Reference, 11)
	assert.Equal(t, domain.StatusInProgress, result.ClientFile.Status)
	assert.Equal(t, uint(1), result.ClientFile.CreatorID)

	// A freshly created file already has its first step complete
	assert.Equal(t, progress.Complete, result.Progress.Steps[progress.StepBasicInfo])
	assert.Equal(t, progress.StepIdentity, result.Progress.CurrentStep)
}

func TestClientFileService_UpdateAdvancesProgress(t *testing.T) {
	service, _ := newClientFileFixture(t)
	ctx := context.Background()

	created, err := service.Create(ctx, &CreateClientFileInput{
		ClientCode: "ACME-002",
		Reason:     "kyc refresh",
		ClientType: "CORPORATE",
	}, 1)
	require.NoError(t, err)
	id := created.ClientFile.ID

	updated, err := service.Update(ctx, id, &UpdateClientFileInput{
		LastName:  strPtr("Durand"),
		FirstName: strPtr("Claire"),
	})
	require.NoError(t, err)
	assert.Equal(t, progress.Complete, updated.Progress.Steps[progress.StepIdentity])
	assert.Equal(t, progress.StepBirthInfo, updated.Progress.CurrentStep)

	// Fields not named in the input stay untouched
	assert.Equal(t, "ACME-002", updated.ClientFile.ClientCode)

	prog, err := service.DeriveProgress(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, updated.Progress.Steps, prog.Steps)
}

func TestClientFileService_UpdateBlockedWhileAwaiting(t *testing.T) {
	service, validation := newClientFileFixture(t)
	ctx := context.Background()

	created, err := service.Create(ctx, &CreateClientFileInput{
		ClientCode: "ACME-003",
		Reason:     "account opening",
		ClientType: "INDIVIDUAL",
	}, 1)
	require.NoError(t, err)
	id := created.ClientFile.ID

	_, err = validation.Submit(ctx, id, domain.Actor{ID: 1, Role: domain.RoleUser}, "")
	require.NoError(t, err)

	_, err = service.Update(ctx, id, &UpdateClientFileInput{LastName: strPtr("Durand")})
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	// Rejection then reopening makes it editable again
	_, err = validation.Reject(ctx, id, testAdmin, "client code unknown", "")
	require.NoError(t, err)
	_, err = validation.ResubmitForEdit(ctx, id, domain.Actor{ID: 1, Role: domain.RoleUser}, "")
	require.NoError(t, err)

	_, err = service.Update(ctx, id, &UpdateClientFileInput{LastName: strPtr("Durand")})
	require.NoError(t, err)
}

func TestClientFileService_GetMissing(t *testing.T) {
	service, _ := newClientFileFixture(t)

	_, err := service.GetByID(context.Background(), 9000)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

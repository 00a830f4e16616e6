package workflow

import (
	"testing"

	"astrafin-backoffice/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	creator    = domain.Actor{ID: 1, Role: domain.RoleUser}
	rh         = domain.Actor{ID: 2, Role: domain.RoleRH}
	admin      = domain.Actor{ID: 3, Role: domain.RoleAdmin}
	superAdmin = domain.Actor{ID: 4, Role: domain.RoleSuperAdmin}
	stranger   = domain.Actor{ID: 5, Role: domain.RoleUser}
)

func newEngine() *Engine {
	return NewEngine(DefaultPolicy())
}

func newValidation() domain.Validation {
	return domain.NewValidation(creator.ID)
}

func TestEngine_Submit(t *testing.T) {
	tests := []struct {
		name       string
		status     domain.ValidationStatus
		actor      domain.Actor
		wantStatus domain.ValidationStatus
		wantErr    error
	}{
		{
			name:       "user submission goes to admin queue",
			status:     domain.StatusInProgress,
			actor:      creator,
			wantStatus: domain.StatusAwaitingAdminValidation,
		},
		{
			name:       "resubmission after modification goes to admin queue",
			status:     domain.StatusBeingModified,
			actor:      creator,
			wantStatus: domain.StatusAwaitingAdminValidation,
		},
		{
			name:       "admin submission skips the first tier",
			status:     domain.StatusInProgress,
			actor:      admin,
			wantStatus: domain.StatusAwaitingSuperAdmin,
		},
		{
			name:       "super-admin submission skips the first tier",
			status:     domain.StatusInProgress,
			actor:      superAdmin,
			wantStatus: domain.StatusAwaitingSuperAdmin,
		},
		{
			name:    "cannot submit while already awaiting",
			status:  domain.StatusAwaitingAdminValidation,
			actor:   creator,
			wantErr: domain.ErrInvalidTransition,
		},
		{
			name:    "cannot submit a validated entity",
			status:  domain.StatusValidated,
			actor:   creator,
			wantErr: domain.ErrInvalidTransition,
		},
		{
			name:    "cannot submit a rejected entity without reopening it",
			status:  domain.StatusRejected,
			actor:   creator,
			wantErr: domain.ErrInvalidTransition,
		},
		{
			name:    "stranger cannot submit someone else's record",
			status:  domain.StatusInProgress,
			actor:   stranger,
			wantErr: domain.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine()
			v := newValidation()
			v.Status = tt.status

			err := e.Submit(&v, tt.actor, domain.ResourceClientFiles)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.status, v.Status, "failed transition must not mutate")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, v.Status)
		})
	}
}

func TestEngine_SubmitByEditorRole(t *testing.T) {
	e := newEngine()

	// RH may submit HR records it did not create
	v := newValidation()
	require.NoError(t, e.Submit(&v, rh, domain.ResourceExpenses))
	assert.Equal(t, domain.StatusAwaitingAdminValidation, v.Status)

	// but not client files
	v = newValidation()
	err := e.Submit(&v, rh, domain.ResourceClientFiles)
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestEngine_ValidateAsAdmin(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.ValidationStatus
		actor   domain.Actor
		wantErr error
	}{
		{
			name:   "admin validates from the admin queue",
			status: domain.StatusAwaitingAdminValidation,
			actor:  admin,
		},
		{
			name:   "super-admin may cover the first tier",
			status: domain.StatusAwaitingAdminValidation,
			actor:  superAdmin,
		},
		{
			name:    "creator without validator role cannot validate",
			status:  domain.StatusAwaitingAdminValidation,
			actor:   creator,
			wantErr: domain.ErrForbidden,
		},
		{
			name:    "rh cannot validate",
			status:  domain.StatusAwaitingAdminValidation,
			actor:   rh,
			wantErr: domain.ErrForbidden,
		},
		{
			name:    "cannot validate an in-progress entity",
			status:  domain.StatusInProgress,
			actor:   admin,
			wantErr: domain.ErrInvalidTransition,
		},
		{
			name:    "first tier is skipped once past it",
			status:  domain.StatusAwaitingSuperAdmin,
			actor:   admin,
			wantErr: domain.ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine()
			v := newValidation()
			v.Status = tt.status

			err := e.ValidateAsAdmin(&v, tt.actor, domain.ResourceClientFiles)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, v.ValidatorAdminID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.StatusAwaitingSuperAdmin, v.Status)
			require.NotNil(t, v.ValidatorAdminID)
			assert.Equal(t, tt.actor.ID, *v.ValidatorAdminID)
		})
	}
}

func TestEngine_ValidatorIDRecordedOnce(t *testing.T) {
	e := newEngine()
	v := newValidation()
	v.Status = domain.StatusAwaitingAdminValidation

	require.NoError(t, e.ValidateAsAdmin(&v, admin, domain.ResourceClientFiles))
	require.NotNil(t, v.ValidatorAdminID)
	first := *v.ValidatorAdminID

	// Reject, reopen, resubmit, validate again with a different admin
	require.NoError(t, e.Reject(&v, superAdmin, domain.ResourceClientFiles, "missing documents"))
	require.NoError(t, e.ResubmitForEdit(&v, creator, domain.ResourceClientFiles))
	require.NoError(t, e.Submit(&v, creator, domain.ResourceClientFiles))

	otherAdmin := domain.Actor{ID: 99, Role: domain.RoleAdmin}
	require.NoError(t, e.ValidateAsAdmin(&v, otherAdmin, domain.ResourceClientFiles))

	assert.Equal(t, first, *v.ValidatorAdminID, "validator id is set once and kept")
}

func TestEngine_ValidateAsSuperAdmin(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.ValidationStatus
		actor   domain.Actor
		wantErr error
	}{
		{
			name:   "super-admin finalizes from the super-admin queue",
			status: domain.StatusAwaitingSuperAdmin,
			actor:  superAdmin,
		},
		{
			name:    "admin cannot finalize",
			status:  domain.StatusAwaitingSuperAdmin,
			actor:   admin,
			wantErr: domain.ErrForbidden,
		},
		{
			name:    "cannot finalize from the admin queue",
			status:  domain.StatusAwaitingAdminValidation,
			actor:   superAdmin,
			wantErr: domain.ErrInvalidTransition,
		},
		{
			name:    "validated is terminal",
			status:  domain.StatusValidated,
			actor:   superAdmin,
			wantErr: domain.ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine()
			v := newValidation()
			v.Status = tt.status

			err := e.ValidateAsSuperAdmin(&v, tt.actor, domain.ResourceClientFiles)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.StatusValidated, v.Status)
			require.NotNil(t, v.ValidatorSuperAdminID)
			assert.Equal(t, tt.actor.ID, *v.ValidatorSuperAdminID)
		})
	}
}

func TestEngine_SameValidatorPolicy(t *testing.T) {
	// A super-admin who covered the first tier cannot also finalize
	e := newEngine()
	v := newValidation()
	v.Status = domain.StatusAwaitingAdminValidation

	require.NoError(t, e.ValidateAsAdmin(&v, superAdmin, domain.ResourceClientFiles))
	err := e.ValidateAsSuperAdmin(&v, superAdmin, domain.ResourceClientFiles)
	require.ErrorIs(t, err, domain.ErrForbidden)

	// A different super-admin can
	other := domain.Actor{ID: 40, Role: domain.RoleSuperAdmin}
	require.NoError(t, e.ValidateAsSuperAdmin(&v, other, domain.ResourceClientFiles))
	assert.Equal(t, domain.StatusValidated, v.Status)

	// With the toggle on, dual-tier validation by one actor is allowed
	policy := DefaultPolicy()
	policy.AllowSameValidator = true
	e = NewEngine(policy)
	v = newValidation()
	v.Status = domain.StatusAwaitingAdminValidation
	require.NoError(t, e.ValidateAsAdmin(&v, superAdmin, domain.ResourceClientFiles))
	require.NoError(t, e.ValidateAsSuperAdmin(&v, superAdmin, domain.ResourceClientFiles))
	assert.Equal(t, domain.StatusValidated, v.Status)
}

func TestEngine_SelfValidationPolicy(t *testing.T) {
	policy := DefaultPolicy()
	policy.AllowSelfValidation = false
	e := NewEngine(policy)

	v := domain.NewValidation(admin.ID)
	require.NoError(t, e.Submit(&v, admin, domain.ResourceExpenses))
	assert.Equal(t, domain.StatusAwaitingSuperAdmin, v.Status)

	selfSuper := domain.Actor{ID: admin.ID, Role: domain.RoleSuperAdmin}
	err := e.ValidateAsSuperAdmin(&v, selfSuper, domain.ResourceExpenses)
	require.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, e.ValidateAsSuperAdmin(&v, superAdmin, domain.ResourceExpenses))
	assert.Equal(t, domain.StatusValidated, v.Status)
}

func TestEngine_Reject(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.ValidationStatus
		actor   domain.Actor
		reason  string
		wantErr error
	}{
		{
			name:   "admin rejects from the admin queue",
			status: domain.StatusAwaitingAdminValidation,
			actor:  admin,
			reason: "amounts do not add up",
		},
		{
			name:   "super-admin rejects from the final queue",
			status: domain.StatusAwaitingSuperAdmin,
			actor:  superAdmin,
			reason: "missing signature",
		},
		{
			name:    "empty reason is refused",
			status:  domain.StatusAwaitingAdminValidation,
			actor:   admin,
			reason:  "   ",
			wantErr: domain.ErrValidation,
		},
		{
			name:    "cannot reject an in-progress entity",
			status:  domain.StatusInProgress,
			actor:   admin,
			reason:  "whatever",
			wantErr: domain.ErrInvalidTransition,
		},
		{
			name:    "non-validator cannot reject",
			status:  domain.StatusAwaitingAdminValidation,
			actor:   rh,
			reason:  "not my call",
			wantErr: domain.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine()
			v := newValidation()
			v.Status = tt.status

			err := e.Reject(&v, tt.actor, domain.ResourceClientFiles, tt.reason)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.status, v.Status, "failed rejection must not mutate")
				assert.Nil(t, v.RejectionReason)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.StatusRejected, v.Status)
			require.NotNil(t, v.RejectionReason)
			assert.Equal(t, tt.reason, *v.RejectionReason)
		})
	}
}

func TestEngine_ResubmitForEdit(t *testing.T) {
	e := newEngine()
	v := newValidation()
	v.Status = domain.StatusAwaitingAdminValidation

	require.NoError(t, e.Reject(&v, admin, domain.ResourceClientFiles, "wrong client code"))
	require.NotNil(t, v.RejectionReason)

	require.NoError(t, e.ResubmitForEdit(&v, creator, domain.ResourceClientFiles))
	assert.Equal(t, domain.StatusBeingModified, v.Status)
	assert.Nil(t, v.RejectionReason, "reopening clears the rejection reason")

	// Only a rejected entity can be reopened
	err := e.ResubmitForEdit(&v, creator, domain.ResourceClientFiles)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestEngine_FullLifecycle(t *testing.T) {
	e := newEngine()
	v := newValidation()

	require.NoError(t, e.Submit(&v, creator, domain.ResourceClientFiles))
	require.NoError(t, e.ValidateAsAdmin(&v, admin, domain.ResourceClientFiles))
	require.NoError(t, e.ValidateAsSuperAdmin(&v, superAdmin, domain.ResourceClientFiles))

	assert.Equal(t, domain.StatusValidated, v.Status)
	assert.Equal(t, admin.ID, *v.ValidatorAdminID)
	assert.Equal(t, superAdmin.ID, *v.ValidatorSuperAdminID)

	// Nothing moves a validated entity
	assert.Error(t, e.Submit(&v, creator, domain.ResourceClientFiles))
	assert.Error(t, e.Reject(&v, superAdmin, domain.ResourceClientFiles, "too late"))
	assert.Error(t, e.ResubmitForEdit(&v, creator, domain.ResourceClientFiles))
}

func TestEngine_CanTransitionIsPure(t *testing.T) {
	e := newEngine()
	v := newValidation()
	v.Status = domain.StatusAwaitingAdminValidation
	before := v

	require.NoError(t, e.CanTransition(&v, admin, domain.TransitionValidateAdmin, domain.ResourceClientFiles))
	require.Error(t, e.CanTransition(&v, rh, domain.TransitionValidateAdmin, domain.ResourceClientFiles))

	assert.Equal(t, before, v, "CanTransition must not mutate the snapshot")
}

func TestEngine_UnknownTransition(t *testing.T) {
	e := newEngine()
	v := newValidation()

	err := e.CanTransition(&v, admin, domain.Transition("ARCHIVE"), domain.ResourceClientFiles)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

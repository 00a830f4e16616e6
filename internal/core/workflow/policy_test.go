package workflow

import (
	"testing"

	"astrafin-backoffice/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func TestPolicy_CanEdit(t *testing.T) {
	policy := DefaultPolicy()
	v := domain.NewValidation(creator.ID)

	tests := []struct {
		name     string
		actor    domain.Actor
		resource domain.Resource
		want     bool
	}{
		{"creator edits own record", creator, domain.ResourceClientFiles, true},
		{"admin edits any record", admin, domain.ResourceClientFiles, true},
		{"super-admin edits any record", superAdmin, domain.ResourceClientFiles, true},
		{"rh edits hr records", rh, domain.ResourceLeaves, true},
		{"rh edits salaries", rh, domain.ResourceSalaries, true},
		{"rh does not edit client files", rh, domain.ResourceClientFiles, false},
		{"unrelated user edits nothing", stranger, domain.ResourceExpenses, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.canEdit(&v, tt.actor, tt.resource))
		})
	}
}

func TestDefaultPolicy(t *testing.T) {
	policy := DefaultPolicy()

	assert.True(t, policy.AllowSelfValidation)
	assert.False(t, policy.AllowSameValidator)
	assert.Len(t, policy.EditRoles, len(domain.Resources))
}

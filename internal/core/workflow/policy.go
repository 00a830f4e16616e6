package workflow

import "astrafin-backoffice/internal/core/domain"

// Policy holds the deployment-configurable permission rules the engine consults.
// It is read-only after construction.
type Policy struct {
	// AllowSelfValidation permits an Admin to validate an entity they created
	AllowSelfValidation bool

	// AllowSameValidator permits the same actor to validate both tiers
	AllowSameValidator bool

	// EditRoles maps each resource to the roles (besides the creator and the
	// Admin tiers) allowed to edit, submit and resubmit it
	EditRoles map[domain.Resource][]domain.Role
}

// DefaultPolicy returns the standard deployment policy: RH manages HR records,
// self-validation is allowed, dual-tier validation by one actor is not.
func DefaultPolicy() Policy {
	return Policy{
		AllowSelfValidation: true,
		AllowSameValidator:  false,
		EditRoles: map[domain.Resource][]domain.Role{
			domain.ResourceClientFiles:    {},
			domain.ResourceExpenses:       {domain.RoleRH},
			domain.ResourceLeaves:         {domain.RoleRH},
			domain.ResourceSalaries:       {domain.RoleRH},
			domain.ResourceSalaryAdvances: {domain.RoleRH},
		},
	}
}

// canEdit checks if the actor may edit or submit the entity
func (p Policy) canEdit(v *domain.Validation, actor domain.Actor, resource domain.Resource) bool {
	if actor.ID == v.CreatorID {
		return true
	}
	if actor.Role.IsValidator() {
		return true
	}
	for _, role := range p.EditRoles[resource] {
		if actor.Role == role {
			return true
		}
	}
	return false
}

package workflow

import (
	"fmt"
	"strings"

	"astrafin-backoffice/internal/core/domain"
)

// Engine enforces the two-tier approval lifecycle shared by all validatable
// entities. All methods operate on an in-memory snapshot: they check the full
// precondition first and mutate only on success, so a failed transition leaves
// the snapshot untouched. Persistence (including the compare-and-swap against
// concurrent writers) is the repository's job, not the engine's.
type Engine struct {
	policy Policy
}

// NewEngine creates a workflow engine with the given permission policy
func NewEngine(policy Policy) *Engine {
	return &Engine{policy: policy}
}

// Policy returns the engine's permission policy
func (e *Engine) Policy() Policy {
	return e.policy
}

// CanTransition checks whether the actor may perform the transition from the
// snapshot's current status. It is pure: no mutation, no side effects. A nil
// return means the transition is allowed; otherwise the typed reason is
// returned (ErrInvalidTransition or ErrForbidden).
func (e *Engine) CanTransition(v *domain.Validation, actor domain.Actor, kind domain.Transition, resource domain.Resource) error {
	switch kind {
	case domain.TransitionSubmit:
		if !v.Status.IsEditable() {
			return fmt.Errorf("%w: cannot submit from %s", domain.ErrInvalidTransition, v.Status)
		}
		if !e.policy.canEdit(v, actor, resource) {
			return fmt.Errorf("%w: only the creator or an editor role may submit", domain.ErrForbidden)
		}

	case domain.TransitionValidateAdmin:
		if v.Status != domain.StatusAwaitingAdminValidation {
			return fmt.Errorf("%w: cannot validate from %s", domain.ErrInvalidTransition, v.Status)
		}
		if !actor.Role.IsValidator() {
			return fmt.Errorf("%w: admin validation requires ADMIN or SUPER_ADMIN", domain.ErrForbidden)
		}
		if !e.policy.AllowSelfValidation && actor.ID == v.CreatorID {
			return fmt.Errorf("%w: self-validation is disabled", domain.ErrForbidden)
		}

	case domain.TransitionValidateSuperAdmin:
		if v.Status != domain.StatusAwaitingSuperAdmin {
			return fmt.Errorf("%w: cannot validate from %s", domain.ErrInvalidTransition, v.Status)
		}
		if actor.Role != domain.RoleSuperAdmin {
			return fmt.Errorf("%w: final validation requires SUPER_ADMIN", domain.ErrForbidden)
		}
		if !e.policy.AllowSelfValidation && actor.ID == v.CreatorID {
			return fmt.Errorf("%w: self-validation is disabled", domain.ErrForbidden)
		}
		if !e.policy.AllowSameValidator && v.ValidatorAdminID != nil && *v.ValidatorAdminID == actor.ID {
			return fmt.Errorf("%w: same actor cannot validate both tiers", domain.ErrForbidden)
		}

	case domain.TransitionReject:
		if !v.Status.IsAwaiting() {
			return fmt.Errorf("%w: cannot reject from %s", domain.ErrInvalidTransition, v.Status)
		}
		if !actor.Role.IsValidator() {
			return fmt.Errorf("%w: rejection requires ADMIN or SUPER_ADMIN", domain.ErrForbidden)
		}

	case domain.TransitionResubmit:
		if v.Status != domain.StatusRejected {
			return fmt.Errorf("%w: cannot resubmit from %s", domain.ErrInvalidTransition, v.Status)
		}
		if !e.policy.canEdit(v, actor, resource) {
			return fmt.Errorf("%w: only the creator or an editor role may resubmit", domain.ErrForbidden)
		}

	default:
		return fmt.Errorf("%w: unknown transition %s", domain.ErrInvalidTransition, kind)
	}

	return nil
}

// Submit moves an editable entity into the validation pipeline. An Admin or
// Super-Admin submitting their own record skips the first tier: their
// submission does not need Admin re-validation.
func (e *Engine) Submit(v *domain.Validation, actor domain.Actor, resource domain.Resource) error {
	if err := e.CanTransition(v, actor, domain.TransitionSubmit, resource); err != nil {
		return err
	}

	if actor.Role.IsValidator() {
		v.Status = domain.StatusAwaitingSuperAdmin
	} else {
		v.Status = domain.StatusAwaitingAdminValidation
	}
	return nil
}

// ValidateAsAdmin performs the tier-1 validation gate
func (e *Engine) ValidateAsAdmin(v *domain.Validation, actor domain.Actor, resource domain.Resource) error {
	if err := e.CanTransition(v, actor, domain.TransitionValidateAdmin, resource); err != nil {
		return err
	}

	// Validator id is recorded once and kept across later rejection cycles
	if v.ValidatorAdminID == nil {
		id := actor.ID
		v.ValidatorAdminID = &id
	}
	v.Status = domain.StatusAwaitingSuperAdmin
	return nil
}

// ValidateAsSuperAdmin performs the tier-2 validation gate. VALIDATED is
// terminal: no engine transition leaves it.
func (e *Engine) ValidateAsSuperAdmin(v *domain.Validation, actor domain.Actor, resource domain.Resource) error {
	if err := e.CanTransition(v, actor, domain.TransitionValidateSuperAdmin, resource); err != nil {
		return err
	}

	if v.ValidatorSuperAdminID == nil {
		id := actor.ID
		v.ValidatorSuperAdminID = &id
	}
	v.Status = domain.StatusValidated
	return nil
}

// Reject sends an awaiting entity back with a mandatory reason
func (e *Engine) Reject(v *domain.Validation, actor domain.Actor, resource domain.Resource, reason string) error {
	if err := e.CanTransition(v, actor, domain.TransitionReject, resource); err != nil {
		return err
	}

	trimmed := strings.TrimSpace(reason)
	if trimmed == "" {
		return fmt.Errorf("%w: rejection reason is required", domain.ErrValidation)
	}

	v.RejectionReason = &trimmed
	v.Status = domain.StatusRejected
	return nil
}

// ResubmitForEdit reopens a rejected entity for modification and clears the
// rejection reason. The editing itself happens outside the engine.
func (e *Engine) ResubmitForEdit(v *domain.Validation, actor domain.Actor, resource domain.Resource) error {
	if err := e.CanTransition(v, actor, domain.TransitionResubmit, resource); err != nil {
		return err
	}

	v.Status = domain.StatusBeingModified
	v.RejectionReason = nil
	return nil
}

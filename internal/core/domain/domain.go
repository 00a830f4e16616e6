package domain

// ValidationStatus represents the approval lifecycle state of a validatable entity
type ValidationStatus string

const (
	StatusInProgress              ValidationStatus = "IN_PROGRESS"
	StatusAwaitingAdminValidation ValidationStatus = "AWAITING_ADMIN_VALIDATION"
	StatusAwaitingSuperAdmin      ValidationStatus = "AWAITING_SUPERADMIN_VALIDATION"
	StatusValidated               ValidationStatus = "VALIDATED"
	StatusRejected                ValidationStatus = "REJECTED"
	StatusBeingModified           ValidationStatus = "BEING_MODIFIED"
)

// IsValid checks if the status is one of the known lifecycle states
func (s ValidationStatus) IsValid() bool {
	switch s {
	case StatusInProgress, StatusAwaitingAdminValidation, StatusAwaitingSuperAdmin,
		StatusValidated, StatusRejected, StatusBeingModified:
		return true
	}
	return false
}

// IsAwaiting checks if the entity is waiting on either validation tier
func (s ValidationStatus) IsAwaiting() bool {
	return s == StatusAwaitingAdminValidation || s == StatusAwaitingSuperAdmin
}

// IsEditable checks if the entity payload may still be modified by its creator
func (s ValidationStatus) IsEditable() bool {
	return s == StatusInProgress || s == StatusBeingModified
}

// Role represents a user role in the system
type Role string

const (
	RoleUser       Role = "USER"
	RoleRH         Role = "RH"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// IsValidator checks if the role may act on a validation tier
func (r Role) IsValidator() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// Actor is the identity performing a workflow operation
type Actor struct {
	ID   uint `json:"id"`
	Role Role `json:"role"`
}

// Transition represents a workflow transition kind
type Transition string

const (
	TransitionSubmit             Transition = "SUBMIT"
	TransitionValidateAdmin      Transition = "VALIDATE_ADMIN"
	TransitionValidateSuperAdmin Transition = "VALIDATE_SUPERADMIN"
	TransitionReject             Transition = "REJECT"
	TransitionResubmit           Transition = "RESUBMIT_FOR_EDIT"
)

// Resource identifies a validatable entity kind, matching its URL segment
type Resource string

const (
	ResourceClientFiles    Resource = "client-files"
	ResourceExpenses       Resource = "expenses"
	ResourceLeaves         Resource = "leaves"
	ResourceSalaries       Resource = "salaries"
	ResourceSalaryAdvances Resource = "salary-advances"
)

// Resources lists every validatable entity kind
var Resources = []Resource{
	ResourceClientFiles,
	ResourceExpenses,
	ResourceLeaves,
	ResourceSalaries,
	ResourceSalaryAdvances,
}

// Validation is the shared approval block embedded in all five validatable entities.
// Status moves only through WorkflowEngine transitions; validator ids are set once
// and never cleared (audit trail). Version backs the repository compare-and-swap.
type Validation struct {
	Status                ValidationStatus `json:"status"`
	CreatorID             uint             `json:"creator_id"`
	ValidatorAdminID      *uint            `json:"validator_admin_id"`
	ValidatorSuperAdminID *uint            `json:"validator_super_admin_id"`
	RejectionReason       *string          `json:"rejection_reason"`
	Version               uint             `json:"version"`
}

// NewValidation creates the initial validation block for a freshly created entity
func NewValidation(creatorID uint) Validation {
	return Validation{
		Status:    StatusInProgress,
		CreatorID: creatorID,
	}
}

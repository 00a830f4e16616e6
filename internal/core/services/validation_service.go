package services

import (
	"context"
	"log"

	"astrafin-backoffice/internal/adapters/persistence/models"
	"astrafin-backoffice/internal/adapters/persistence/repositories"
	"astrafin-backoffice/internal/core/domain"
	"astrafin-backoffice/internal/core/workflow"
)

// ValidationService drives the approval lifecycle of one validatable entity
// kind. One generic implementation serves all five kinds: the engine applies
// the transition to a fresh snapshot, the repository persists it with a
// compare-and-swap, and every transition lands in the audit trail.
type ValidationService[T any, PT models.ValidatablePtr[T]] struct {
	repo     *repositories.ValidatableRepository[T, PT]
	events   *repositories.EventRepository
	engine   *workflow.Engine
	notify   *NotificationService
	resource domain.Resource
}

// NewValidationService creates a validation service for one entity kind
func NewValidationService[T any, PT models.ValidatablePtr[T]](
	repo *repositories.ValidatableRepository[T, PT],
	events *repositories.EventRepository,
	engine *workflow.Engine,
	notify *NotificationService,
) *ValidationService[T, PT] {
	return &ValidationService[T, PT]{
		repo:     repo,
		events:   events,
		engine:   engine,
		notify:   notify,
		resource: PT(new(T)).Kind(),
	}
}

// Resource returns the entity kind this service manages
func (s *ValidationService[T, PT]) Resource() domain.Resource {
	return s.resource
}

// Submit moves an editable entity into the validation pipeline
func (s *ValidationService[T, PT]) Submit(ctx context.Context, id uint, actor domain.Actor, ip string) (PT, error) {
	entity, err := s.apply(ctx, id, actor, domain.TransitionSubmit, "", ip)
	if err != nil {
		return nil, err
	}
	if s.notify != nil {
		s.notify.NotifySubmitted(s.resource, id, entity.GetValidation().Status)
	}
	return entity, nil
}

// ValidateAsAdmin performs the tier-1 validation gate
func (s *ValidationService[T, PT]) ValidateAsAdmin(ctx context.Context, id uint, actor domain.Actor, ip string) (PT, error) {
	entity, err := s.apply(ctx, id, actor, domain.TransitionValidateAdmin, "", ip)
	if err != nil {
		return nil, err
	}
	if s.notify != nil {
		s.notify.NotifyValidated(s.resource, id, entity.GetValidation().Status)
	}
	return entity, nil
}

// ValidateAsSuperAdmin performs the tier-2 (final) validation gate
func (s *ValidationService[T, PT]) ValidateAsSuperAdmin(ctx context.Context, id uint, actor domain.Actor, ip string) (PT, error) {
	entity, err := s.apply(ctx, id, actor, domain.TransitionValidateSuperAdmin, "", ip)
	if err != nil {
		return nil, err
	}
	if s.notify != nil {
		s.notify.NotifyValidated(s.resource, id, entity.GetValidation().Status)
	}
	return entity, nil
}

// Reject sends an awaiting entity back to its creator with a reason
func (s *ValidationService[T, PT]) Reject(ctx context.Context, id uint, actor domain.Actor, reason, ip string) (PT, error) {
	entity, err := s.apply(ctx, id, actor, domain.TransitionReject, reason, ip)
	if err != nil {
		return nil, err
	}
	if s.notify != nil {
		s.notify.NotifyRejected(s.resource, id, reason)
	}
	return entity, nil
}

// ResubmitForEdit reopens a rejected entity for modification
func (s *ValidationService[T, PT]) ResubmitForEdit(ctx context.Context, id uint, actor domain.Actor, ip string) (PT, error) {
	return s.apply(ctx, id, actor, domain.TransitionResubmit, "", ip)
}

// GetHistory returns the transition history of one entity
func (s *ValidationService[T, PT]) GetHistory(ctx context.Context, id uint) ([]*models.ValidationEvent, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.events.GetByEntity(ctx, s.resource, id)
}

// apply loads the freshest snapshot, runs the engine transition against it and
// persists the outcome with a compare-and-swap on the snapshot's status and
// version. A concurrent writer surfaces as domain.ErrConflict.
func (s *ValidationService[T, PT]) apply(ctx context.Context, id uint, actor domain.Actor, kind domain.Transition, reason, ip string) (PT, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	v := entity.GetValidation()
	expected := *v

	switch kind {
	case domain.TransitionSubmit:
		err = s.engine.Submit(v, actor, s.resource)
	case domain.TransitionValidateAdmin:
		err = s.engine.ValidateAsAdmin(v, actor, s.resource)
	case domain.TransitionValidateSuperAdmin:
		err = s.engine.ValidateAsSuperAdmin(v, actor, s.resource)
	case domain.TransitionReject:
		err = s.engine.Reject(v, actor, s.resource, reason)
	case domain.TransitionResubmit:
		err = s.engine.ResubmitForEdit(v, actor, s.resource)
	default:
		err = domain.ErrInvalidTransition
	}
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateValidation(ctx, entity, expected); err != nil {
		return nil, err
	}

	event := &models.ValidationEvent{
		EntityKind:  string(s.resource),
		EntityID:    id,
		Transition:  string(kind),
		FromStatus:  string(expected.Status),
		ToStatus:    string(v.Status),
		Reason:      reason,
		PerformedBy: actor.ID,
		IPAddress:   ip,
	}
	if err := s.events.Create(ctx, event); err != nil {
		// The transition is already persisted; a missing audit row must not fail it
		log.Printf("⚠️ Failed to record validation event for %s #%d: %v", s.resource, id, err)
	}

	return entity, nil
}

package handlers

import (
	"errors"
	"strconv"

	"astrafin-backoffice/internal/adapters/http/middleware"
	"astrafin-backoffice/internal/adapters/persistence/models"
	"astrafin-backoffice/internal/adapters/persistence/repositories"
	"astrafin-backoffice/internal/core/domain"
	"astrafin-backoffice/internal/core/services"
	"astrafin-backoffice/internal/pkg/pagination"
	"astrafin-backoffice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ValidationHandler exposes the shared approval workflow over HTTP. One
// instance per validatable resource, all backed by the same generic service.
type ValidationHandler[T any, PT models.ValidatablePtr[T]] struct {
	service *services.ValidationService[T, PT]
}

// NewValidationHandler creates a new validation handler
func NewValidationHandler[T any, PT models.ValidatablePtr[T]](service *services.ValidationService[T, PT]) *ValidationHandler[T, PT] {
	return &ValidationHandler[T, PT]{service: service}
}

// RejectRequest represents rejection request body
type RejectRequest struct {
	Reason string `json:"reason"`
}

// StatusRequest represents a requested status change
type StatusRequest struct {
	Status string `json:"status"`
}

// ValidateAsAdmin handles first-tier validation
func (h *ValidationHandler[T, PT]) ValidateAsAdmin(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	entity, err := h.service.ValidateAsAdmin(c.Context(), id, actor, c.IP())
	if err != nil {
		return workflowError(c, err)
	}

	return response.Success(c, "Entity validated", entity)
}

// ValidateAsSuperAdmin handles final-tier validation
func (h *ValidationHandler[T, PT]) ValidateAsSuperAdmin(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	entity, err := h.service.ValidateAsSuperAdmin(c.Context(), id, actor, c.IP())
	if err != nil {
		return workflowError(c, err)
	}

	return response.Success(c, "Entity validated", entity)
}

// Reject handles rejection with a mandatory reason
func (h *ValidationHandler[T, PT]) Reject(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req RejectRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	entity, err := h.service.Reject(c.Context(), id, actor, req.Reason, c.IP())
	if err != nil {
		return workflowError(c, err)
	}

	return response.Success(c, "Entity rejected", entity)
}

// UpdateStatus handles submission and resubmit-for-edit. Only status targets
// that map onto a workflow transition are accepted.
func (h *ValidationHandler[T, PT]) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	var entity PT
	switch domain.ValidationStatus(req.Status) {
	case domain.StatusAwaitingAdminValidation, domain.StatusAwaitingSuperAdmin:
		// Submission. The engine decides which queue the entity actually
		// lands in, so both awaiting targets map to the same transition.
		entity, err = h.service.Submit(c.Context(), id, actor, c.IP())
	case domain.StatusBeingModified:
		entity, err = h.service.ResubmitForEdit(c.Context(), id, actor, c.IP())
	default:
		return response.BadRequest(c, "Status cannot be set directly")
	}
	if err != nil {
		return workflowError(c, err)
	}

	return response.Success(c, "Status updated", entity)
}

// GetHistory returns the validation audit trail of one entity
func (h *ValidationHandler[T, PT]) GetHistory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	events, err := h.service.GetHistory(c.Context(), id)
	if err != nil {
		return workflowError(c, err)
	}

	return response.Success(c, "History retrieved", events)
}

// parseListFilter builds the repository filter from pagination and query params
func parseListFilter(c *fiber.Ctx, params *pagination.Params) (repositories.ListFilter, error) {
	filter := repositories.ListFilter{
		Offset: params.Offset,
		Limit:  params.Limit,
	}
	if status := c.Query("status"); status != "" {
		s := domain.ValidationStatus(status)
		if !s.IsValid() {
			return filter, errors.New("unknown status filter")
		}
		filter.Status = &s
	}
	if creator := c.QueryInt("creator_id"); creator > 0 {
		creatorID := uint(creator)
		filter.CreatorID = &creatorID
	}
	return filter, nil
}

// parseID parses the :id path parameter
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

// workflowError maps domain errors to HTTP responses
func workflowError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, "Entity not found")
	case errors.Is(err, domain.ErrInvalidTransition):
		return response.UnprocessableEntity(c, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, err.Error())
	case errors.Is(err, domain.ErrValidation):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrConflict):
		return response.Conflict(c, "Entity was modified concurrently, please retry")
	default:
		return response.InternalServerError(c, "Something went wrong")
	}
}

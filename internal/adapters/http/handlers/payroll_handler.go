package handlers

import (
	"errors"

	"astrafin-backoffice/internal/adapters/http/middleware"
	"astrafin-backoffice/internal/core/domain"
	"astrafin-backoffice/internal/core/services"
	"astrafin-backoffice/internal/pkg/pagination"
	"astrafin-backoffice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SalaryHandler handles salary record endpoints
type SalaryHandler struct {
	service *services.SalaryService
}

// NewSalaryHandler creates a new salary handler
func NewSalaryHandler(service *services.SalaryService) *SalaryHandler {
	return &SalaryHandler{service: service}
}

// Create creates a new salary record
func (h *SalaryHandler) Create(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.SalaryInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	salary, err := h.service.Create(c.Context(), &input, actor.ID)
	if err != nil {
		return workflowError(c, err)
	}

	return response.Created(c, "Salary record created", salary)
}

// Get returns one salary record
func (h *SalaryHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	salary, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		return workflowError(c, err)
	}

	return response.Success(c, "Salary record retrieved", salary)
}

// List lists salary records with pagination and optional filters
func (h *SalaryHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	filter, err := parseListFilter(c, params)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	salaries, total, err := h.service.List(c.Context(), filter)
	if err != nil {
		return response.InternalServerError(c, "Failed to list salary records")
	}

	return response.Success(c, "Salary records retrieved", fiber.Map{
		"salaries": salaries,
		"meta":     pagination.GetMeta(params, total),
	})
}

// Update updates an editable salary record
func (h *SalaryHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	var input services.SalaryInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	salary, err := h.service.Update(c.Context(), id, &input)
	if err != nil {
		return workflowError(c, err)
	}

	return response.Success(c, "Salary record updated", salary)
}

// Delete removes a salary record
func (h *SalaryHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Salary record not found")
		}
		return response.InternalServerError(c, "Failed to delete salary record")
	}

	return response.Success(c, "Salary record deleted", nil)
}

// SalaryAdvanceHandler handles salary advance endpoints
type SalaryAdvanceHandler struct {
	service *services.SalaryAdvanceService
}

// NewSalaryAdvanceHandler creates a new salary advance handler
func NewSalaryAdvanceHandler(service *services.SalaryAdvanceService) *SalaryAdvanceHandler {
	return &SalaryAdvanceHandler{service: service}
}

// Create creates a new salary advance request
func (h *SalaryAdvanceHandler) Create(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.SalaryAdvanceInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	advance, err := h.service.Create(c.Context(), &input, actor.ID)
	if err != nil {
		return workflowError(c, err)
	}

	return response.Created(c, "Salary advance created", advance)
}

// Get returns one salary advance request
func (h *SalaryAdvanceHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	advance, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		return workflowError(c, err)
	}

	return response.Success(c, "Salary advance retrieved", advance)
}

// List lists salary advance requests with pagination and optional filters
func (h *SalaryAdvanceHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	filter, err := parseListFilter(c, params)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	advances, total, err := h.service.List(c.Context(), filter)
	if err != nil {
		return response.InternalServerError(c, "Failed to list salary advances")
	}

	return response.Success(c, "Salary advances retrieved", fiber.Map{
		"salary_advances": advances,
		"meta":            pagination.GetMeta(params, total),
	})
}

// Update updates an editable salary advance request
func (h *SalaryAdvanceHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	var input services.SalaryAdvanceInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	advance, err := h.service.Update(c.Context(), id, &input)
	if err != nil {
		return workflowError(c, err)
	}

	return response.Success(c, "Salary advance updated", advance)
}

// Delete removes a salary advance request
func (h *SalaryAdvanceHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Salary advance not found")
		}
		return response.InternalServerError(c, "Failed to delete salary advance")
	}

	return response.Success(c, "Salary advance deleted", nil)
}

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

// ExpenseHandler handles expense claim endpoints
type ExpenseHandler struct {
	service *services.ExpenseService
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(service *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{service: service}
}

// Create creates a new expense claim
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.ExpenseInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	expense, err := h.service.Create(c.Context(), &input, actor.ID)
	if err != nil {
		return workflowError(c, err)
	}

	return response.Created(c, "Expense created", expense)
}

// Get returns one expense claim
func (h *ExpenseHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	expense, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		return workflowError(c, err)
	}

	return response.Success(c, "Expense retrieved", expense)
}

// List lists expense claims with pagination and optional filters
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	filter, err := parseListFilter(c, params)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	expenses, total, err := h.service.List(c.Context(), filter)
	if err != nil {
		return response.InternalServerError(c, "Failed to list expenses")
	}

	return response.Success(c, "Expenses retrieved", fiber.Map{
		"expenses": expenses,
		"meta":     pagination.GetMeta(params, total),
	})
}

// Update updates an editable expense claim
func (h *ExpenseHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	var input services.ExpenseInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	expense, err := h.service.Update(c.Context(), id, &input)
	if err != nil {
		return workflowError(c, err)
	}

	return response.Success(c, "Expense updated", expense)
}

// Delete removes an expense claim
func (h *ExpenseHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Expense not found")
		}
		return response.InternalServerError(c, "Failed to delete expense")
	}

	return response.Success(c, "Expense deleted", nil)
}

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

// LeaveHandler handles leave request endpoints
type LeaveHandler struct {
	service *services.LeaveService
}

// NewLeaveHandler creates a new leave handler
func NewLeaveHandler(service *services.LeaveService) *LeaveHandler {
	return &LeaveHandler{service: service}
}

// Create creates a new leave request
func (h *LeaveHandler) Create(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.LeaveInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	leave, err := h.service.Create(c.Context(), &input, actor.ID)
	if err != nil {
		return workflowError(c, err)
	}

	return response.Created(c, "Leave request created", leave)
}

// Get returns one leave request
func (h *LeaveHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	leave, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		return workflowError(c, err)
	}

	return response.Success(c, "Leave request retrieved", leave)
}

// List lists leave requests with pagination and optional filters
func (h *LeaveHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	filter, err := parseListFilter(c, params)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	leaves, total, err := h.service.List(c.Context(), filter)
	if err != nil {
		return response.InternalServerError(c, "Failed to list leave requests")
	}

	return response.Success(c, "Leave requests retrieved", fiber.Map{
		"leaves": leaves,
		"meta":   pagination.GetMeta(params, total),
	})
}

// Update updates an editable leave request
func (h *LeaveHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	var input services.LeaveInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	leave, err := h.service.Update(c.Context(), id, &input)
	if err != nil {
		return workflowError(c, err)
	}

	return response.Success(c, "Leave request updated", leave)
}

// Delete removes a leave request
func (h *LeaveHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Leave request not found")
		}
		return response.InternalServerError(c, "Failed to delete leave request")
	}

	return response.Success(c, "Leave request deleted", nil)
}

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

// ClientFileHandler handles client file onboarding endpoints
type ClientFileHandler struct {
	service *services.ClientFileService
}

// NewClientFileHandler creates a new client file handler
func NewClientFileHandler(service *services.ClientFileService) *ClientFileHandler {
	return &ClientFileHandler{service: service}
}

// Create opens a new client file
func (h *ClientFileHandler) Create(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateClientFileInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.service.Create(c.Context(), &input, actor.ID)
	if err != nil {
		return workflowError(c, err)
	}

	return response.Created(c, "Client file created", result)
}

// Get returns one client file with its derived progress
func (h *ClientFileHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	result, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		return workflowError(c, err)
	}

	return response.Success(c, "Client file retrieved", result)
}

// GetProgress returns only the derived progress of a client file
func (h *ClientFileHandler) GetProgress(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	prog, err := h.service.DeriveProgress(c.Context(), id)
	if err != nil {
		return workflowError(c, err)
	}

	return response.Success(c, "Progress retrieved", prog)
}

// List lists client files with pagination and optional filters
func (h *ClientFileHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	filter, err := parseListFilter(c, params)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	files, total, err := h.service.List(c.Context(), filter)
	if err != nil {
		return response.InternalServerError(c, "Failed to list client files")
	}

	return response.Success(c, "Client files retrieved", fiber.Map{
		"client_files": files,
		"meta":         pagination.GetMeta(params, total),
	})
}

// Update applies a partial questionnaire update
func (h *ClientFileHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	var input services.UpdateClientFileInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.service.Update(c.Context(), id, &input)
	if err != nil {
		return workflowError(c, err)
	}

	return response.Success(c, "Client file updated", result)
}

// Delete removes a client file
func (h *ClientFileHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Client file not found")
		}
		return response.InternalServerError(c, "Failed to delete client file")
	}

	return response.Success(c, "Client file deleted", nil)
}

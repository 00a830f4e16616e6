package handlers

import (
	"errors"

	"astrafin-backoffice/internal/core/domain"
	"astrafin-backoffice/internal/core/services"
	"astrafin-backoffice/internal/pkg/pagination"
	"astrafin-backoffice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user management endpoints (Admin only)
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create handles admin user creation
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var input services.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.Create(c.Context(), &input)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return response.BadRequest(c, err.Error())
		}
		return response.InternalServerError(c, "Failed to create user")
	}

	return response.Created(c, "User created successfully", user.ToResponse())
}

// List handles listing all users
func (h *UserHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	users, total, err := h.userService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list users")
	}

	out := make([]interface{}, 0, len(users))
	for _, u := range users {
		out = append(out, u.ToResponse())
	}

	return response.Success(c, "Users retrieved successfully", fiber.Map{
		"users": out,
		"meta":  pagination.GetMeta(params, total),
	})
}

// Get handles getting a user by ID
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	user, err := h.userService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to get user")
	}

	return response.Success(c, "User retrieved successfully", user.ToResponse())
}

// SetRoleRequest represents role change request body
type SetRoleRequest struct {
	Role string `json:"role"`
}

// SetRole handles changing a user's role
func (h *UserHandler) SetRole(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var req SetRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.SetRole(c.Context(), id, domain.Role(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to change role")
		}
	}

	return response.Success(c, "Role updated successfully", user.ToResponse())
}

// SetActiveRequest represents activation request body
type SetActiveRequest struct {
	IsActive bool `json:"is_active"`
}

// SetActive handles activating or deactivating a user account
func (h *UserHandler) SetActive(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var req SetActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.SetActive(c.Context(), id, req.IsActive)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to update user")
	}

	return response.Success(c, "User updated successfully", user.ToResponse())
}

package services

import (
	"context"
	"fmt"
	"strings"

	"astrafin-backoffice/internal/adapters/persistence/models"
	"astrafin-backoffice/internal/adapters/persistence/repositories"
	"astrafin-backoffice/internal/core/domain"
	"astrafin-backoffice/internal/pkg/password"
)

// UserService handles user management (Admin surface)
type UserService struct {
	userRepo *repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo *repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUserInput represents admin user creation input
type CreateUserInput struct {
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

func (in *CreateUserInput) validate() error {
	if strings.TrimSpace(in.Username) == "" {
		return fmt.Errorf("%w: username is required", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Email) == "" {
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if len(in.Password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", domain.ErrValidation)
	}
	switch in.Role {
	case domain.RoleUser, domain.RoleRH, domain.RoleAdmin, domain.RoleSuperAdmin:
		return nil
	default:
		return fmt.Errorf("%w: unknown role %q", domain.ErrValidation, in.Role)
	}
}

// Create creates a new user account
func (s *UserService) Create(ctx context.Context, input *CreateUserInput) (*models.User, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: strings.TrimSpace(input.Username),
		Email:    strings.TrimSpace(input.Email),
		Password: hashed,
		Role:     input.Role,
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByID gets a user by ID
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// List lists users with pagination
func (s *UserService) List(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	return s.userRepo.List(ctx, offset, limit)
}

// SetRole changes a user's role
func (s *UserService) SetRole(ctx context.Context, id uint, role domain.Role) (*models.User, error) {
	switch role {
	case domain.RoleUser, domain.RoleRH, domain.RoleAdmin, domain.RoleSuperAdmin:
	default:
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, role)
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetActive activates or deactivates a user account
func (s *UserService) SetActive(ctx context.Context, id uint, active bool) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.IsActive = active
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

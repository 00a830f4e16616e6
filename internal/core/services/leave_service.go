package services

import (
	"context"
	"fmt"
	"time"

	"astrafin-backoffice/internal/adapters/persistence/models"
	"astrafin-backoffice/internal/adapters/persistence/repositories"
	"astrafin-backoffice/internal/core/domain"
)

// LeaveService handles leave request business logic
type LeaveService struct {
	repo *repositories.ValidatableRepository[models.Leave, *models.Leave]
}

// NewLeaveService creates a new leave service
func NewLeaveService(repo *repositories.ValidatableRepository[models.Leave, *models.Leave]) *LeaveService {
	return &LeaveService{repo: repo}
}

// LeaveInput represents create/update leave input
type LeaveInput struct {
	LeaveType string    `json:"leave_type"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Reason    string    `json:"reason,omitempty"`
}

func (in *LeaveInput) validate() error {
	if in.LeaveType == "" {
		return fmt.Errorf("%w: leave type is required", domain.ErrValidation)
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", domain.ErrValidation)
	}
	if in.EndDate.Before(in.StartDate) {
		return fmt.Errorf("%w: end date must not precede start date", domain.ErrValidation)
	}
	return nil
}

// totalDays counts calendar days in the leave range, inclusive
func (in *LeaveInput) totalDays() int {
	return int(in.EndDate.Sub(in.StartDate).Hours()/24) + 1
}

// Create creates a new leave request
func (s *LeaveService) Create(ctx context.Context, input *LeaveInput, creatorID uint) (*models.Leave, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	leave := &models.Leave{
		LeaveType:  input.LeaveType,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		TotalDays:  input.totalDays(),
		Reason:     input.Reason,
		Validation: domain.NewValidation(creatorID),
	}

	if err := s.repo.Create(ctx, leave); err != nil {
		return nil, err
	}
	return leave, nil
}

// GetByID gets a leave request by ID
func (s *LeaveService) GetByID(ctx context.Context, id uint) (*models.Leave, error) {
	return s.repo.GetByID(ctx, id)
}

// List lists leave requests with pagination and optional filters
func (s *LeaveService) List(ctx context.Context, filter repositories.ListFilter) ([]*models.Leave, int64, error) {
	return s.repo.List(ctx, filter)
}

// Update updates a leave request while it is still editable
func (s *LeaveService) Update(ctx context.Context, id uint, input *LeaveInput) (*models.Leave, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	leave, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !leave.Status.IsEditable() {
		return nil, fmt.Errorf("%w: cannot edit while %s", domain.ErrInvalidTransition, leave.Status)
	}

	leave.LeaveType = input.LeaveType
	leave.StartDate = input.StartDate
	leave.EndDate = input.EndDate
	leave.TotalDays = input.totalDays()
	leave.Reason = input.Reason

	if err := s.repo.Update(ctx, leave); err != nil {
		return nil, err
	}
	return leave, nil
}

// Delete soft deletes a leave request
func (s *LeaveService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

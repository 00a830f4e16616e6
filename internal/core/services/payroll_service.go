package services

import (
	"context"
	"fmt"

	"astrafin-backoffice/internal/adapters/persistence/models"
	"astrafin-backoffice/internal/adapters/persistence/repositories"
	"astrafin-backoffice/internal/core/domain"
)

// SalaryService handles salary record business logic
type SalaryService struct {
	repo *repositories.ValidatableRepository[models.Salary, *models.Salary]
}

// NewSalaryService creates a new salary service
func NewSalaryService(repo *repositories.ValidatableRepository[models.Salary, *models.Salary]) *SalaryService {
	return &SalaryService{repo: repo}
}

// SalaryInput represents create/update salary input
type SalaryInput struct {
	EmployeeID  uint    `json:"employee_id"`
	PeriodMonth int     `json:"period_month"`
	PeriodYear  int     `json:"period_year"`
	GrossAmount float64 `json:"gross_amount"`
	NetAmount   float64 `json:"net_amount"`
	Bonus       float64 `json:"bonus,omitempty"`
}

func (in *SalaryInput) validate() error {
	if in.EmployeeID == 0 {
		return fmt.Errorf("%w: employee is required", domain.ErrValidation)
	}
	if in.PeriodMonth < 1 || in.PeriodMonth > 12 {
		return fmt.Errorf("%w: period month must be between 1 and 12", domain.ErrValidation)
	}
	if in.PeriodYear < 2000 {
		return fmt.Errorf("%w: period year is invalid", domain.ErrValidation)
	}
	if in.GrossAmount <= 0 || in.NetAmount <= 0 {
		return fmt.Errorf("%w: amounts must be greater than 0", domain.ErrValidation)
	}
	if in.NetAmount > in.GrossAmount {
		return fmt.Errorf("%w: net amount cannot exceed gross amount", domain.ErrValidation)
	}
	return nil
}

// Create creates a new salary record
func (s *SalaryService) Create(ctx context.Context, input *SalaryInput, creatorID uint) (*models.Salary, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	salary := &models.Salary{
		EmployeeID:  input.EmployeeID,
		PeriodMonth: input.PeriodMonth,
		PeriodYear:  input.PeriodYear,
		GrossAmount: input.GrossAmount,
		NetAmount:   input.NetAmount,
		Bonus:       input.Bonus,
		Validation:  domain.NewValidation(creatorID),
	}

	if err := s.repo.Create(ctx, salary); err != nil {
		return nil, err
	}
	return salary, nil
}

// GetByID gets a salary record by ID
func (s *SalaryService) GetByID(ctx context.Context, id uint) (*models.Salary, error) {
	return s.repo.GetByID(ctx, id)
}

// List lists salary records with pagination and optional filters
func (s *SalaryService) List(ctx context.Context, filter repositories.ListFilter) ([]*models.Salary, int64, error) {
	return s.repo.List(ctx, filter)
}

// Update updates a salary record while it is still editable
func (s *SalaryService) Update(ctx context.Context, id uint, input *SalaryInput) (*models.Salary, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	salary, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !salary.Status.IsEditable() {
		return nil, fmt.Errorf("%w: cannot edit while %s", domain.ErrInvalidTransition, salary.Status)
	}

	salary.EmployeeID = input.EmployeeID
	salary.PeriodMonth = input.PeriodMonth
	salary.PeriodYear = input.PeriodYear
	salary.GrossAmount = input.GrossAmount
	salary.NetAmount = input.NetAmount
	salary.Bonus = input.Bonus

	if err := s.repo.Update(ctx, salary); err != nil {
		return nil, err
	}
	return salary, nil
}

// Delete soft deletes a salary record
func (s *SalaryService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// SalaryAdvanceService handles salary advance business logic
type SalaryAdvanceService struct {
	repo *repositories.ValidatableRepository[models.SalaryAdvance, *models.SalaryAdvance]
}

// NewSalaryAdvanceService creates a new salary advance service
func NewSalaryAdvanceService(repo *repositories.ValidatableRepository[models.SalaryAdvance, *models.SalaryAdvance]) *SalaryAdvanceService {
	return &SalaryAdvanceService{repo: repo}
}

// SalaryAdvanceInput represents create/update salary advance input
type SalaryAdvanceInput struct {
	EmployeeID      uint    `json:"employee_id"`
	Amount          float64 `json:"amount"`
	Reason          string  `json:"reason,omitempty"`
	RepaymentMonths int     `json:"repayment_months"`
}

func (in *SalaryAdvanceInput) validate() error {
	if in.EmployeeID == 0 {
		return fmt.Errorf("%w: employee is required", domain.ErrValidation)
	}
	if in.Amount <= 0 {
		return fmt.Errorf("%w: amount must be greater than 0", domain.ErrValidation)
	}
	if in.RepaymentMonths < 1 {
		return fmt.Errorf("%w: repayment months must be at least 1", domain.ErrValidation)
	}
	return nil
}

// Create creates a new salary advance
func (s *SalaryAdvanceService) Create(ctx context.Context, input *SalaryAdvanceInput, creatorID uint) (*models.SalaryAdvance, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	advance := &models.SalaryAdvance{
		EmployeeID:      input.EmployeeID,
		Amount:          input.Amount,
		Reason:          input.Reason,
		RepaymentMonths: input.RepaymentMonths,
		Validation:      domain.NewValidation(creatorID),
	}

	if err := s.repo.Create(ctx, advance); err != nil {
		return nil, err
	}
	return advance, nil
}

// GetByID gets a salary advance by ID
func (s *SalaryAdvanceService) GetByID(ctx context.Context, id uint) (*models.SalaryAdvance, error) {
	return s.repo.GetByID(ctx, id)
}

// List lists salary advances with pagination and optional filters
func (s *SalaryAdvanceService) List(ctx context.Context, filter repositories.ListFilter) ([]*models.SalaryAdvance, int64, error) {
	return s.repo.List(ctx, filter)
}

// Update updates a salary advance while it is still editable
func (s *SalaryAdvanceService) Update(ctx context.Context, id uint, input *SalaryAdvanceInput) (*models.SalaryAdvance, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	advance, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !advance.Status.IsEditable() {
		return nil, fmt.Errorf("%w: cannot edit while %s", domain.ErrInvalidTransition, advance.Status)
	}

	advance.EmployeeID = input.EmployeeID
	advance.Amount = input.Amount
	advance.Reason = input.Reason
	advance.RepaymentMonths = input.RepaymentMonths

	if err := s.repo.Update(ctx, advance); err != nil {
		return nil, err
	}
	return advance, nil
}

// Delete soft deletes a salary advance
func (s *SalaryAdvanceService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

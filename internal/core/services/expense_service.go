package services

import (
	"context"
	"fmt"
	"time"

	"astrafin-backoffice/internal/adapters/persistence/models"
	"astrafin-backoffice/internal/adapters/persistence/repositories"
	"astrafin-backoffice/internal/core/domain"
)

// ExpenseService handles expense claim business logic
type ExpenseService struct {
	repo *repositories.ValidatableRepository[models.Expense, *models.Expense]
}

// NewExpenseService creates a new expense service
func NewExpenseService(repo *repositories.ValidatableRepository[models.Expense, *models.Expense]) *ExpenseService {
	return &ExpenseService{repo: repo}
}

// ExpenseInput represents create/update expense input
type ExpenseInput struct {
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	ExpenseDate time.Time `json:"expense_date"`
	Description string    `json:"description,omitempty"`
	ReceiptRef  string    `json:"receipt_ref,omitempty"`
}

func (in *ExpenseInput) validate() error {
	if in.Amount <= 0 {
		return fmt.Errorf("%w: amount must be greater than 0", domain.ErrValidation)
	}
	if in.Category == "" {
		return fmt.Errorf("%w: category is required", domain.ErrValidation)
	}
	if in.ExpenseDate.IsZero() {
		return fmt.Errorf("%w: expense date is required", domain.ErrValidation)
	}
	return nil
}

// Create creates a new expense claim
func (s *ExpenseService) Create(ctx context.Context, input *ExpenseInput, creatorID uint) (*models.Expense, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		Amount:      input.Amount,
		Category:    input.Category,
		ExpenseDate: input.ExpenseDate,
		Description: input.Description,
		ReceiptRef:  input.ReceiptRef,
		Validation:  domain.NewValidation(creatorID),
	}

	if err := s.repo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// GetByID gets an expense by ID
func (s *ExpenseService) GetByID(ctx context.Context, id uint) (*models.Expense, error) {
	return s.repo.GetByID(ctx, id)
}

// List lists expenses with pagination and optional filters
func (s *ExpenseService) List(ctx context.Context, filter repositories.ListFilter) ([]*models.Expense, int64, error) {
	return s.repo.List(ctx, filter)
}

// Update updates an expense claim while it is still editable
func (s *ExpenseService) Update(ctx context.Context, id uint, input *ExpenseInput) (*models.Expense, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	expense, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !expense.Status.IsEditable() {
		return nil, fmt.Errorf("%w: cannot edit while %s", domain.ErrInvalidTransition, expense.Status)
	}

	expense.Amount = input.Amount
	expense.Category = input.Category
	expense.ExpenseDate = input.ExpenseDate
	expense.Description = input.Description
	expense.ReceiptRef = input.ReceiptRef

	if err := s.repo.Update(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// Delete soft deletes an expense claim
func (s *ExpenseService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

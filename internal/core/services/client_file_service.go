package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"astrafin-backoffice/internal/adapters/persistence/models"
	"astrafin-backoffice/internal/adapters/persistence/repositories"
	"astrafin-backoffice/internal/core/domain"
	"astrafin-backoffice/internal/core/progress"

	"github.com/google/uuid"
)

// ClientFileService handles the KYC onboarding questionnaire
type ClientFileService struct {
	repo *repositories.ValidatableRepository[models.ClientFile, *models.ClientFile]
}

// NewClientFileService creates a new client file service
func NewClientFileService(repo *repositories.ValidatableRepository[models.ClientFile, *models.ClientFile]) *ClientFileService {
	return &ClientFileService{repo: repo}
}

// ClientFileWithProgress pairs a client file with its derived wizard state
type ClientFileWithProgress struct {
	ClientFile *models.ClientFile `json:"client_file"`
	Progress   *progress.Progress `json:"progress"`
}

// CreateClientFileInput represents create client file input
type CreateClientFileInput struct {
	ClientCode string `json:"client_code"`
	Reason     string `json:"reason"`
	ClientType string `json:"client_type"`
}

// Create opens a new client file with a generated reference
func (s *ClientFileService) Create(ctx context.Context, input *CreateClientFileInput, creatorID uint) (*ClientFileWithProgress, error) {
	file := &models.ClientFile{
		Reference:  "CF-" + strings.ToUpper(uuid.New().String()[:8]),
		ClientCode: input.ClientCode,
		Reason:     input.Reason,
		ClientType: input.ClientType,
		Validation: domain.NewValidation(creatorID),
	}

	if err := s.repo.Create(ctx, file); err != nil {
		return nil, err
	}

	return &ClientFileWithProgress{
		ClientFile: file,
		Progress:   progress.Derive(file),
	}, nil
}

// GetByID gets a client file with its derived progress
func (s *ClientFileService) GetByID(ctx context.Context, id uint) (*ClientFileWithProgress, error) {
	file, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ClientFileWithProgress{
		ClientFile: file,
		Progress:   progress.Derive(file),
	}, nil
}

// DeriveProgress recomputes the wizard state of a client file. This is the
// only producer of the progress value; callers must not cache it across
// entity updates.
func (s *ClientFileService) DeriveProgress(ctx context.Context, id uint) (*progress.Progress, error) {
	file, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return progress.Derive(file), nil
}

// List lists client files with pagination and optional filters
func (s *ClientFileService) List(ctx context.Context, filter repositories.ListFilter) ([]*models.ClientFile, int64, error) {
	return s.repo.List(ctx, filter)
}

// UpdateClientFileInput carries one partial field-group update of the
// questionnaire. Nil fields are left untouched.
type UpdateClientFileInput struct {
	ClientCode *string `json:"client_code"`
	Reason     *string `json:"reason"`
	ClientType *string `json:"client_type"`

	LastName  *string `json:"last_name"`
	FirstName *string `json:"first_name"`

	BirthDate   *time.Time `json:"birth_date"`
	BirthPlace  *string    `json:"birth_place"`
	Nationality *string    `json:"nationality"`

	AddressLine *string `json:"address_line"`
	City        *string `json:"city"`
	PostalCode  *string `json:"postal_code"`
	Country     *string `json:"country"`

	Email *string `json:"email"`
	Phone *string `json:"phone"`

	MaritalStatus *string `json:"marital_status"`
	Children      *int    `json:"children"`

	Profession *string `json:"profession"`
	Employer   *string `json:"employer"`

	AnnualIncome *float64 `json:"annual_income"`
	NetWorth     *float64 `json:"net_worth"`

	BankName *string `json:"bank_name"`
	IBAN     *string `json:"iban"`

	TaxCountry *string `json:"tax_country"`
	TaxID      *string `json:"tax_id"`

	FundSources *string `json:"fund_sources"`
}

// Update applies a partial questionnaire update and re-derives the progress.
// Only entities still editable (IN_PROGRESS or BEING_MODIFIED) accept updates.
func (s *ClientFileService) Update(ctx context.Context, id uint, input *UpdateClientFileInput) (*ClientFileWithProgress, error) {
	file, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !file.Status.IsEditable() {
		return nil, fmt.Errorf("%w: cannot edit while %s", domain.ErrInvalidTransition, file.Status)
	}

	applyClientFileInput(file, input)

	if err := s.repo.Update(ctx, file); err != nil {
		return nil, err
	}

	return &ClientFileWithProgress{
		ClientFile: file,
		Progress:   progress.Derive(file),
	}, nil
}

// Delete soft deletes a client file
func (s *ClientFileService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func applyClientFileInput(file *models.ClientFile, input *UpdateClientFileInput) {
	if input.ClientCode != nil {
		file.ClientCode = *input.ClientCode
	}
	if input.Reason != nil {
		file.Reason = *input.Reason
	}
	if input.ClientType != nil {
		file.ClientType = *input.ClientType
	}
	if input.LastName != nil {
		file.LastName = *input.LastName
	}
	if input.FirstName != nil {
		file.FirstName = *input.FirstName
	}
	if input.BirthDate != nil {
		file.BirthDate = input.BirthDate
	}
	if input.BirthPlace != nil {
		file.BirthPlace = *input.BirthPlace
	}
	if input.Nationality != nil {
		file.Nationality = *input.Nationality
	}
	if input.AddressLine != nil {
		file.AddressLine = *input.AddressLine
	}
	if input.City != nil {
		file.City = *input.City
	}
	if input.PostalCode != nil {
		file.PostalCode = *input.PostalCode
	}
	if input.Country != nil {
		file.Country = *input.Country
	}
	if input.Email != nil {
		file.Email = *input.Email
	}
	if input.Phone != nil {
		file.Phone = *input.Phone
	}
	if input.MaritalStatus != nil {
		file.MaritalStatus = *input.MaritalStatus
	}
	if input.Children != nil {
		file.Children = input.Children
	}
	if input.Profession != nil {
		file.Profession = *input.Profession
	}
	if input.Employer != nil {
		file.Employer = *input.Employer
	}
	if input.AnnualIncome != nil {
		file.AnnualIncome = input.AnnualIncome
	}
	if input.NetWorth != nil {
		file.NetWorth = input.NetWorth
	}
	if input.BankName != nil {
		file.BankName = *input.BankName
	}
	if input.IBAN != nil {
		file.IBAN = *input.IBAN
	}
	if input.TaxCountry != nil {
		file.TaxCountry = *input.TaxCountry
	}
	if input.TaxID != nil {
		file.TaxID = *input.TaxID
	}
	if input.FundSources != nil {
		file.FundSources = *input.FundSources
	}
}

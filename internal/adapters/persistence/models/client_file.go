package models

import (
	"time"

	"astrafin-backoffice/internal/core/domain"

	"gorm.io/gorm"
)

// ClientFile is the KYC onboarding questionnaire record. Its domain fields are
// grouped by wizard step; completion state is always derived from the fields
// themselves, never stored.
type ClientFile struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// BASIC_INFO
	Reference  string `gorm:"size:64;uniqueIndex;not null" json:"reference"`
	ClientCode string `gorm:"size:30" json:"client_code"`
	Reason     string `gorm:"size:200" json:"reason"`
	ClientType string `gorm:"size:30" json:"client_type"`

	// IDENTITY
	LastName  string `gorm:"size:100" json:"last_name"`
	FirstName string `gorm:"size:100" json:"first_name"`

	// BIRTH_INFO
	BirthDate   *time.Time `gorm:"type:date" json:"birth_date"`
	BirthPlace  string     `gorm:"size:100" json:"birth_place"`
	Nationality string     `gorm:"size:60" json:"nationality"`

	// ADDRESS
	AddressLine string `gorm:"size:200" json:"address_line"`
	City        string `gorm:"size:100" json:"city"`
	PostalCode  string `gorm:"size:20" json:"postal_code"`
	Country     string `gorm:"size:60" json:"country"`

	// CONTACT
	Email string `gorm:"size:100" json:"email"`
	Phone string `gorm:"size:30" json:"phone"`

	// FAMILY_SITUATION
	MaritalStatus string `gorm:"size:30" json:"marital_status"`
	Children      *int   `json:"children"`

	// PROFESSIONAL_SITUATION
	Profession string `gorm:"size:100" json:"profession"`
	Employer   string `gorm:"size:100" json:"employer"`

	// FINANCIAL_SITUATION
	AnnualIncome *float64 `gorm:"type:decimal(15,2)" json:"annual_income"`
	NetWorth     *float64 `gorm:"type:decimal(15,2)" json:"net_worth"`

	// BANKING
	BankName string `gorm:"size:100" json:"bank_name"`
	IBAN     string `gorm:"size:34" json:"iban"`

	// TAX_STATUS
	TaxCountry string `gorm:"size:60" json:"tax_country"`
	TaxID      string `gorm:"size:30" json:"tax_id"`

	// FUND_ORIGIN
	FundSources string `gorm:"type:text" json:"fund_sources"`

	domain.Validation `gorm:"embedded"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Creator *User `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
}

func (ClientFile) TableName() string {
	return "client_files"
}

func (f *ClientFile) GetID() uint {
	return f.ID
}

func (f *ClientFile) GetValidation() *domain.Validation {
	return &f.Validation
}

func (f *ClientFile) Kind() domain.Resource {
	return domain.ResourceClientFiles
}

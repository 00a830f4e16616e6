package models

import (
	"time"

	"astrafin-backoffice/internal/core/domain"

	"gorm.io/gorm"
)

// Expense represents an employee expense claim
type Expense struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Amount      float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	Category    string    `gorm:"size:50;not null" json:"category"`
	ExpenseDate time.Time `gorm:"type:date;not null" json:"expense_date"`
	Description string    `gorm:"type:text" json:"description"`
	ReceiptRef  string    `gorm:"size:100" json:"receipt_ref"`

	domain.Validation `gorm:"embedded"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Creator *User `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
}

func (Expense) TableName() string {
	return "expenses"
}

func (e *Expense) GetID() uint                       { return e.ID }
func (e *Expense) GetValidation() *domain.Validation { return &e.Validation }
func (e *Expense) Kind() domain.Resource             { return domain.ResourceExpenses }

// Leave represents an employee leave request
type Leave struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	LeaveType string    `gorm:"size:30;not null;default:'ANNUAL'" json:"leave_type"`
	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`
	TotalDays int       `gorm:"not null;default:1" json:"total_days"`
	Reason    string    `gorm:"type:text" json:"reason"`

	domain.Validation `gorm:"embedded"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Creator *User `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
}

func (Leave) TableName() string {
	return "leaves"
}

func (l *Leave) GetID() uint                       { return l.ID }
func (l *Leave) GetValidation() *domain.Validation { return &l.Validation }
func (l *Leave) Kind() domain.Resource             { return domain.ResourceLeaves }

// Salary represents a monthly salary record for an employee
type Salary struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	EmployeeID  uint    `gorm:"not null;index" json:"employee_id"`
	PeriodMonth int     `gorm:"not null" json:"period_month"`
	PeriodYear  int     `gorm:"not null" json:"period_year"`
	GrossAmount float64 `gorm:"type:decimal(15,2);not null" json:"gross_amount"`
	NetAmount   float64 `gorm:"type:decimal(15,2);not null" json:"net_amount"`
	Bonus       float64 `gorm:"type:decimal(15,2);default:0" json:"bonus"`

	domain.Validation `gorm:"embedded"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Creator  *User `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Employee *User `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}

func (Salary) TableName() string {
	return "salaries"
}

func (s *Salary) GetID() uint                       { return s.ID }
func (s *Salary) GetValidation() *domain.Validation { return &s.Validation }
func (s *Salary) Kind() domain.Resource             { return domain.ResourceSalaries }

// SalaryAdvance represents an advance on salary to be repaid over months
type SalaryAdvance struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	EmployeeID      uint    `gorm:"not null;index" json:"employee_id"`
	Amount          float64 `gorm:"type:decimal(15,2);not null" json:"amount"`
	Reason          string  `gorm:"type:text" json:"reason"`
	RepaymentMonths int     `gorm:"not null;default:1" json:"repayment_months"`

	domain.Validation `gorm:"embedded"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Creator  *User `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Employee *User `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}

func (SalaryAdvance) TableName() string {
	return "salary_advances"
}

func (a *SalaryAdvance) GetID() uint                       { return a.ID }
func (a *SalaryAdvance) GetValidation() *domain.Validation { return &a.Validation }
func (a *SalaryAdvance) Kind() domain.Resource             { return domain.ResourceSalaryAdvances }

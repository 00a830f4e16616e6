package models

import (
	"time"

	"astrafin-backoffice/internal/core/domain"

	"gorm.io/gorm"
)

// Validatable is the capability set the workflow layer needs from any of the
// five approval-driven entity kinds
type Validatable interface {
	GetID() uint
	GetValidation() *domain.Validation
	Kind() domain.Resource
}

// ValidatablePtr constrains a generic parameter to pointer-to-entity types
// implementing Validatable
type ValidatablePtr[T any] interface {
	*T
	Validatable
}

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      domain.Role    `gorm:"size:20;default:'USER'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// Actor returns the workflow actor identity of this user
func (u *User) Actor() domain.Actor {
	return domain.Actor{ID: u.ID, Role: u.Role}
}

// UserResponse DTO
type UserResponse struct {
	ID        uint        `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	IsActive  bool        `json:"is_active"`
	CreatedAt time.Time   `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Workflow Audit Trail
// ============================================================

// ValidationEvent records one workflow transition on one entity (History)
type ValidationEvent struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	EntityKind  string    `gorm:"size:30;not null;index:idx_events_entity" json:"entity_kind"`
	EntityID    uint      `gorm:"not null;index:idx_events_entity" json:"entity_id"`
	Transition  string    `gorm:"size:30;not null" json:"transition"`
	FromStatus  string    `gorm:"size:40;not null" json:"from_status"`
	ToStatus    string    `gorm:"size:40;not null" json:"to_status"`
	Reason      string    `gorm:"type:text" json:"reason,omitempty"`
	PerformedBy uint      `gorm:"not null" json:"performed_by"`
	IPAddress   string    `gorm:"size:45" json:"ip_address"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	Performer *User `gorm:"foreignKey:PerformedBy" json:"performer,omitempty"`
}

func (ValidationEvent) TableName() string {
	return "validation_events"
}

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&ValidationEvent{},
		&ClientFile{},
		&Expense{},
		&Leave{},
		&Salary{},
		&SalaryAdvance{},
	)
}

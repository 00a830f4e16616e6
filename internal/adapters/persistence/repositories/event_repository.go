package repositories

import (
	"context"

	"astrafin-backoffice/internal/adapters/persistence/models"
	"astrafin-backoffice/internal/core/domain"

	"gorm.io/gorm"
)

// EventRepository handles the workflow audit trail
type EventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create appends a validation event
func (r *EventRepository) Create(ctx context.Context, event *models.ValidationEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// GetByEntity gets the transition history of one entity, newest first
func (r *EventRepository) GetByEntity(ctx context.Context, kind domain.Resource, entityID uint) ([]*models.ValidationEvent, error) {
	var events []*models.ValidationEvent
	err := r.db.WithContext(ctx).
		Preload("Performer").
		Where("entity_kind = ? AND entity_id = ?", string(kind), entityID).
		Order("created_at DESC, id DESC").
		Find(&events).Error
	return events, err
}

// Recent gets the most recent events across all entity kinds
func (r *EventRepository) Recent(ctx context.Context, limit int) ([]*models.ValidationEvent, error) {
	var events []*models.ValidationEvent
	err := r.db.WithContext(ctx).
		Preload("Performer").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

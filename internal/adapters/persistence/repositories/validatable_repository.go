package repositories

import (
	"context"
	"errors"

	"astrafin-backoffice/internal/adapters/persistence/models"
	"astrafin-backoffice/internal/core/domain"

	"gorm.io/gorm"
)

// ListFilter narrows a paginated entity listing
type ListFilter struct {
	Status    *domain.ValidationStatus
	CreatorID *uint
	Offset    int
	Limit     int
}

// ValidatableRepository is the single generic data-access layer shared by all
// five validatable entity kinds
type ValidatableRepository[T any, PT models.ValidatablePtr[T]] struct {
	db *gorm.DB
}

// NewValidatableRepository creates a repository for one entity kind
func NewValidatableRepository[T any, PT models.ValidatablePtr[T]](db *gorm.DB) *ValidatableRepository[T, PT] {
	return &ValidatableRepository[T, PT]{db: db}
}

// Create creates a new entity
func (r *ValidatableRepository[T, PT]) Create(ctx context.Context, entity PT) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

// GetByID gets an entity by ID with its creator preloaded
func (r *ValidatableRepository[T, PT]) GetByID(ctx context.Context, id uint) (PT, error) {
	entity := PT(new(T))
	err := r.db.WithContext(ctx).Preload("Creator").First(entity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return entity, nil
}

// List lists entities with pagination and optional status/creator filters
func (r *ValidatableRepository[T, PT]) List(ctx context.Context, filter ListFilter) ([]PT, int64, error) {
	var entities []PT
	var total int64

	query := r.db.WithContext(ctx).Model(PT(new(T)))
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.CreatorID != nil {
		query = query.Where("creator_id = ?", *filter.CreatorID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&entities).Error

	return entities, total, err
}

// Update saves entity payload fields. Workflow fields must go through
// UpdateValidation instead.
func (r *ValidatableRepository[T, PT]) Update(ctx context.Context, entity PT) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

// Delete soft deletes an entity
func (r *ValidatableRepository[T, PT]) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(PT(new(T)), id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateValidation persists a workflow transition with a compare-and-swap on
// the status and version read at call time. Two concurrent validations of the
// same snapshot yield exactly one success; the loser gets ErrConflict and must
// refetch. All workflow fields update together or not at all.
func (r *ValidatableRepository[T, PT]) UpdateValidation(ctx context.Context, entity PT, expected domain.Validation) error {
	v := entity.GetValidation()

	result := r.db.WithContext(ctx).
		Model(PT(new(T))).
		Where("id = ? AND status = ? AND version = ?", entity.GetID(), expected.Status, expected.Version).
		Updates(map[string]interface{}{
			"status":                   v.Status,
			"validator_admin_id":       v.ValidatorAdminID,
			"validator_super_admin_id": v.ValidatorSuperAdminID,
			"rejection_reason":         v.RejectionReason,
			"version":                  expected.Version + 1,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrConflict
	}

	v.Version = expected.Version + 1
	return nil
}

// CountByStatus counts entities currently in any of the given statuses
func (r *ValidatableRepository[T, PT]) CountByStatus(ctx context.Context, statuses ...domain.ValidationStatus) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(PT(new(T))).
		Where("status IN ?", statuses).
		Count(&total).Error
	return total, err
}

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"postforge-api/internal/domain"
)

// FormRepository defines the interface for form definition data access
type FormRepository interface {
	Create(ctx context.Context, form *domain.Form) error
	Update(ctx context.Context, form *domain.Form) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Form, error)
	FindAll(ctx context.Context, includeDisabled bool) ([]*domain.Form, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetEnabled(ctx context.Context, id uuid.UUID, enabled bool) error
	PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// formRepositoryImpl is the GORM implementation of FormRepository
type formRepositoryImpl struct {
	db *gorm.DB
}

// NewFormRepository creates a new instance of FormRepository
func NewFormRepository(db *gorm.DB) FormRepository {
	return &formRepositoryImpl{db: db}
}

// Create creates a new form definition
func (r *formRepositoryImpl) Create(ctx context.Context, form *domain.Form) error {
	if err := r.db.WithContext(ctx).Create(form).Error; err != nil {
		return err
	}
	return nil
}

// Update overwrites the whole form definition
func (r *formRepositoryImpl) Update(ctx context.Context, form *domain.Form) error {
	if err := r.db.WithContext(ctx).Save(form).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a form definition by ID
func (r *formRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Form, error) {
	var form domain.Form
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&form).Error; err != nil {
		return nil, err
	}
	return &form, nil
}

// FindAll lists form definitions, newest first
func (r *formRepositoryImpl) FindAll(ctx context.Context, includeDisabled bool) ([]*domain.Form, error) {
	var forms []*domain.Form
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if !includeDisabled {
		query = query.Where("enabled = ?", true)
	}
	if err := query.Find(&forms).Error; err != nil {
		return nil, err
	}
	return forms, nil
}

// Delete soft deletes a form definition
func (r *formRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Form{}, id).Error; err != nil {
		return err
	}
	return nil
}

// SetEnabled flips the enabled flag without touching the rest of the
// definition
func (r *formRepositoryImpl) SetEnabled(ctx context.Context, id uuid.UUID, enabled bool) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Form{}).
		Where("id = ?", id).
		Update("enabled", enabled)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// PurgeDeletedBefore hard deletes forms that were soft deleted before
// the cutoff and returns the number of rows removed
func (r *formRepositoryImpl) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Unscoped().
		Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
		Delete(&domain.Form{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

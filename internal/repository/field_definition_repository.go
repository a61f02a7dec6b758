package repository

import (
	"context"

	"gorm.io/gorm"

	"postforge-api/internal/domain"
)

// FieldDefinitionRepository defines the interface for structured field
// definition data access, the authoritative discovery source
type FieldDefinitionRepository interface {
	FindByContentType(ctx context.Context, contentType string) ([]*domain.FieldDefinition, error)
	Create(ctx context.Context, definition *domain.FieldDefinition) error
}

// fieldDefinitionRepositoryImpl is the GORM implementation of
// FieldDefinitionRepository
type fieldDefinitionRepositoryImpl struct {
	db *gorm.DB
}

// NewFieldDefinitionRepository creates a new instance of
// FieldDefinitionRepository
func NewFieldDefinitionRepository(db *gorm.DB) FieldDefinitionRepository {
	return &fieldDefinitionRepositoryImpl{db: db}
}

// FindByContentType lists field definitions for a content type ordered
// by display order
func (r *fieldDefinitionRepositoryImpl) FindByContentType(ctx context.Context, contentType string) ([]*domain.FieldDefinition, error) {
	var definitions []*domain.FieldDefinition
	if err := r.db.WithContext(ctx).
		Where("content_type = ?", contentType).
		Order("display_order ASC").
		Find(&definitions).Error; err != nil {
		return nil, err
	}
	return definitions, nil
}

// Create creates a new field definition
func (r *fieldDefinitionRepositoryImpl) Create(ctx context.Context, definition *domain.FieldDefinition) error {
	if err := r.db.WithContext(ctx).Create(definition).Error; err != nil {
		return err
	}
	return nil
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"postforge-api/internal/domain"
)

// TaxonomyRepository defines the interface for taxonomy data access.
// It is the taxonomy provider consumed by schema resolution.
type TaxonomyRepository interface {
	FindByContentType(ctx context.Context, contentType string) ([]*domain.Taxonomy, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Taxonomy, error)
	FindTerms(ctx context.Context, taxonomyID uuid.UUID) ([]*domain.Term, error)
	Create(ctx context.Context, taxonomy *domain.Taxonomy) error
	CreateTerm(ctx context.Context, term *domain.Term) error
}

// taxonomyRepositoryImpl is the GORM implementation of TaxonomyRepository
type taxonomyRepositoryImpl struct {
	db *gorm.DB
}

// NewTaxonomyRepository creates a new instance of TaxonomyRepository
func NewTaxonomyRepository(db *gorm.DB) TaxonomyRepository {
	return &taxonomyRepositoryImpl{db: db}
}

// FindByContentType lists taxonomies associated with a content type in
// creation order. Association is stored as a JSON array of content type
// slugs, so matching is done on the loaded rows.
func (r *taxonomyRepositoryImpl) FindByContentType(ctx context.Context, contentType string) ([]*domain.Taxonomy, error) {
	var taxonomies []*domain.Taxonomy
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&taxonomies).Error; err != nil {
		return nil, err
	}
	matched := make([]*domain.Taxonomy, 0, len(taxonomies))
	for _, tax := range taxonomies {
		if tax.AppliesTo(contentType) {
			matched = append(matched, tax)
		}
	}
	return matched, nil
}

// FindBySlug finds a taxonomy by its slug
func (r *taxonomyRepositoryImpl) FindBySlug(ctx context.Context, slug string) (*domain.Taxonomy, error) {
	var taxonomy domain.Taxonomy
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&taxonomy).Error; err != nil {
		return nil, err
	}
	return &taxonomy, nil
}

// FindTerms lists the terms of a taxonomy ordered by display order
func (r *taxonomyRepositoryImpl) FindTerms(ctx context.Context, taxonomyID uuid.UUID) ([]*domain.Term, error) {
	var terms []*domain.Term
	if err := r.db.WithContext(ctx).
		Where("taxonomy_id = ?", taxonomyID).
		Order("display_order ASC").
		Find(&terms).Error; err != nil {
		return nil, err
	}
	return terms, nil
}

// Create creates a new taxonomy
func (r *taxonomyRepositoryImpl) Create(ctx context.Context, taxonomy *domain.Taxonomy) error {
	if err := r.db.WithContext(ctx).Create(taxonomy).Error; err != nil {
		return err
	}
	return nil
}

// CreateTerm creates a new term
func (r *taxonomyRepositoryImpl) CreateTerm(ctx context.Context, term *domain.Term) error {
	if err := r.db.WithContext(ctx).Create(term).Error; err != nil {
		return err
	}
	return nil
}

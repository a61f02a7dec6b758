package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"postforge-api/internal/domain"
)

// RecordRepository defines the interface for content record data access.
// It is the concrete content store behind form submissions: record
// creation, per-key metadata, and taxonomy term assignment.
type RecordRepository interface {
	Create(ctx context.Context, record *domain.Record) error
	Update(ctx context.Context, record *domain.Record) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Record, error)
	ListRecent(ctx context.Context, contentType string, limit int) ([]*domain.Record, error)
	SetMeta(ctx context.Context, recordID uuid.UUID, key string, values []string) error
	GetMeta(ctx context.Context, recordID uuid.UUID, key string) ([]string, error)
	SampleMetaKeys(ctx context.Context, contentType string, sampleSize int) ([]string, error)
	ReplaceTerms(ctx context.Context, recordID, taxonomyID uuid.UUID, termIDs []uuid.UUID) error
	FindTermIDs(ctx context.Context, recordID uuid.UUID) ([]uuid.UUID, error)
}

// recordRepositoryImpl is the GORM implementation of RecordRepository
type recordRepositoryImpl struct {
	db *gorm.DB
}

// NewRecordRepository creates a new instance of RecordRepository
func NewRecordRepository(db *gorm.DB) RecordRepository {
	return &recordRepositoryImpl{db: db}
}

// Create creates a new content record
func (r *recordRepositoryImpl) Create(ctx context.Context, record *domain.Record) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return err
	}
	return nil
}

// Update updates an existing content record
func (r *recordRepositoryImpl) Update(ctx context.Context, record *domain.Record) error {
	if err := r.db.WithContext(ctx).Save(record).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a content record by ID
func (r *recordRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Record, error) {
	var record domain.Record
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// ListRecent lists the most recently created records of a content type
func (r *recordRepositoryImpl) ListRecent(ctx context.Context, contentType string, limit int) ([]*domain.Record, error) {
	var records []*domain.Record
	if err := r.db.WithContext(ctx).
		Where("content_type = ?", contentType).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// SetMeta replaces all values of one metadata key on a record.
// Multi-valued keys store one row per value.
func (r *recordRepositoryImpl) SetMeta(ctx context.Context, recordID uuid.UUID, key string, values []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("record_id = ? AND meta_key = ?", recordID, key).
			Delete(&domain.RecordMeta{}).Error; err != nil {
			return err
		}
		if len(values) == 0 {
			return nil
		}
		rows := make([]domain.RecordMeta, 0, len(values))
		for _, v := range values {
			rows = append(rows, domain.RecordMeta{
				ID:        uuid.New(),
				RecordID:  recordID,
				MetaKey:   key,
				MetaValue: v,
			})
		}
		return tx.Create(&rows).Error
	})
}

// GetMeta returns all values stored for one metadata key on a record
func (r *recordRepositoryImpl) GetMeta(ctx context.Context, recordID uuid.UUID, key string) ([]string, error) {
	var values []string
	if err := r.db.WithContext(ctx).
		Model(&domain.RecordMeta{}).
		Where("record_id = ? AND meta_key = ?", recordID, key).
		Pluck("meta_value", &values).Error; err != nil {
		return nil, err
	}
	return values, nil
}

// SampleMetaKeys collects the distinct metadata keys found on the most
// recent records of a content type, in first-seen order. Used by the
// discovery fallback when no structured field definitions exist.
func (r *recordRepositoryImpl) SampleMetaKeys(ctx context.Context, contentType string, sampleSize int) ([]string, error) {
	records, err := r.ListRecent(ctx, contentType, sampleSize)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	recordIDs := make([]uuid.UUID, 0, len(records))
	for _, rec := range records {
		recordIDs = append(recordIDs, rec.ID)
	}

	var rows []domain.RecordMeta
	if err := r.db.WithContext(ctx).
		Where("record_id IN ?", recordIDs).
		Order("meta_key ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(rows))
	keys := make([]string, 0, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.MetaKey]; ok {
			continue
		}
		seen[row.MetaKey] = struct{}{}
		keys = append(keys, row.MetaKey)
	}
	return keys, nil
}

// ReplaceTerms replaces the record's term assignments within one
// taxonomy, leaving assignments from other taxonomies untouched
func (r *recordRepositoryImpl) ReplaceTerms(ctx context.Context, recordID, taxonomyID uuid.UUID, termIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taxonomyTerms := tx.Model(&domain.Term{}).
			Select("id").
			Where("taxonomy_id = ?", taxonomyID)
		if err := tx.
			Where("record_id = ? AND term_id IN (?)", recordID, taxonomyTerms).
			Delete(&domain.RecordTerm{}).Error; err != nil {
			return err
		}
		if len(termIDs) == 0 {
			return nil
		}
		rows := make([]domain.RecordTerm, 0, len(termIDs))
		for _, termID := range termIDs {
			rows = append(rows, domain.RecordTerm{
				ID:       uuid.New(),
				RecordID: recordID,
				TermID:   termID,
			})
		}
		return tx.Create(&rows).Error
	})
}

// FindTermIDs returns all term IDs assigned to a record
func (r *recordRepositoryImpl) FindTermIDs(ctx context.Context, recordID uuid.UUID) ([]uuid.UUID, error) {
	var termIDs []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&domain.RecordTerm{}).
		Where("record_id = ?", recordID).
		Pluck("term_id", &termIDs).Error; err != nil {
		return nil, err
	}
	return termIDs, nil
}

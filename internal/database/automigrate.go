package database

import (
	"fmt"

	"gorm.io/gorm"

	"postforge-api/internal/domain"
)

// AutoMigrate runs GORM auto-migration for all domain models.
// Tables, indexes, and foreign key constraints follow the struct
// definitions in the domain package.
func AutoMigrate(db *gorm.DB) error {
	models := []interface{}{
		&domain.Form{},
		&domain.Taxonomy{},
		&domain.Term{},
		&domain.Record{},
		&domain.RecordMeta{},
		&domain.RecordTerm{},
		&domain.FieldDefinition{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}

	return nil
}

package repository

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database with all tables.
// Tables are created with raw SQL for SQLite compatibility; the
// production schema relies on Postgres defaults like gen_random_uuid().
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	statements := []string{
		`CREATE TABLE forms (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			title TEXT NOT NULL,
			description TEXT,
			target_content_type TEXT NOT NULL,
			login_required BOOLEAN NOT NULL DEFAULT FALSE,
			allowed_roles TEXT,
			include_featured_image BOOLEAN NOT NULL DEFAULT FALSE,
			enabled BOOLEAN NOT NULL DEFAULT TRUE,
			redirect_url TEXT,
			success_message TEXT,
			notification_email TEXT,
			default_status TEXT,
			taxonomy_fields TEXT,
			custom_fields TEXT
		)`,
		`CREATE TABLE taxonomies (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			slug TEXT NOT NULL UNIQUE,
			label TEXT NOT NULL,
			content_types TEXT
		)`,
		`CREATE TABLE terms (
			id TEXT PRIMARY KEY,
			taxonomy_id TEXT NOT NULL,
			slug TEXT NOT NULL,
			name TEXT NOT NULL,
			display_order INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE records (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			content_type TEXT NOT NULL,
			title TEXT NOT NULL,
			body TEXT,
			status TEXT NOT NULL,
			author_id TEXT
		)`,
		`CREATE TABLE record_meta (
			id TEXT PRIMARY KEY,
			record_id TEXT NOT NULL,
			meta_key TEXT NOT NULL,
			meta_value TEXT
		)`,
		`CREATE TABLE record_terms (
			id TEXT PRIMARY KEY,
			record_id TEXT NOT NULL,
			term_id TEXT NOT NULL
		)`,
		`CREATE TABLE field_definitions (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			content_type TEXT NOT NULL,
			meta_key TEXT NOT NULL,
			label TEXT NOT NULL,
			widget_type TEXT,
			required BOOLEAN NOT NULL DEFAULT FALSE,
			placeholder TEXT,
			choices TEXT,
			display_order INTEGER NOT NULL DEFAULT 0
		)`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("failed to create table: %v", err)
		}
	}

	return db
}

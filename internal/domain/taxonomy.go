package domain

import (
	"github.com/google/uuid"
)

// Taxonomy is a classification system (e.g. categories) whose terms can
// be attached to records of the associated content types.
type Taxonomy struct {
	BaseModel
	Slug         string   `gorm:"type:varchar(100);not null;uniqueIndex:uq_taxonomies_slug" json:"slug"`
	Label        string   `gorm:"type:varchar(200);not null" json:"label"`
	ContentTypes []string `gorm:"serializer:json;type:jsonb" json:"content_types"`
	Terms        []Term   `gorm:"foreignKey:TaxonomyID;constraint:OnDelete:CASCADE" json:"terms,omitempty"`
}

// TableName specifies the table name for Taxonomy
func (Taxonomy) TableName() string {
	return "taxonomies"
}

// AppliesTo reports whether the taxonomy is associated with the given
// content type.
func (t *Taxonomy) AppliesTo(contentType string) bool {
	for _, ct := range t.ContentTypes {
		if ct == contentType {
			return true
		}
	}
	return false
}

// Term is one selectable entry of a taxonomy.
type Term struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TaxonomyID   uuid.UUID `gorm:"type:uuid;not null;index:idx_terms_taxonomy_id;uniqueIndex:uq_terms_taxonomy_slug,priority:1" json:"taxonomy_id"`
	Slug         string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_terms_taxonomy_slug,priority:2" json:"slug"`
	Name         string    `gorm:"type:varchar(200);not null" json:"name"`
	DisplayOrder int       `gorm:"type:int;not null;default:0;index:idx_terms_display_order" json:"display_order"`
}

// TableName specifies the table name for Term
func (Term) TableName() string {
	return "terms"
}

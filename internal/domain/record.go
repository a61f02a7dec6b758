package domain

import (
	"strings"

	"github.com/google/uuid"
)

// InternalMetaPrefix marks metadata keys that belong to the system and
// are never exposed through field discovery.
const InternalMetaPrefix = "_"

// Record is a content record created by a form submission.
type Record struct {
	BaseModel
	ContentType string       `gorm:"type:varchar(100);not null;index:idx_records_content_type" json:"content_type"`
	Title       string       `gorm:"type:varchar(255);not null" json:"title"`
	Body        string       `gorm:"type:text" json:"body"`
	Status      string       `gorm:"type:varchar(50);not null;index:idx_records_status" json:"status"`
	AuthorID    *uuid.UUID   `gorm:"type:uuid;index:idx_records_author_id" json:"author_id,omitempty"`
	Meta        []RecordMeta `gorm:"foreignKey:RecordID;constraint:OnDelete:CASCADE" json:"meta,omitempty"`
	Terms       []RecordTerm `gorm:"foreignKey:RecordID;constraint:OnDelete:CASCADE" json:"terms,omitempty"`
}

// TableName specifies the table name for Record
func (Record) TableName() string {
	return "records"
}

// RecordMeta is one key-value metadata entry attached to a record.
// Multi-valued keys store one row per value.
type RecordMeta struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RecordID  uuid.UUID `gorm:"type:uuid;not null;index:idx_record_meta_record_id;index:idx_record_meta_record_key,priority:1" json:"record_id"`
	MetaKey   string    `gorm:"type:varchar(255);not null;index:idx_record_meta_record_key,priority:2" json:"meta_key"`
	MetaValue string    `gorm:"type:text" json:"meta_value"`
}

// TableName specifies the table name for RecordMeta
func (RecordMeta) TableName() string {
	return "record_meta"
}

// Internal reports whether the metadata key is system-owned.
func (m *RecordMeta) Internal() bool {
	return strings.HasPrefix(m.MetaKey, InternalMetaPrefix)
}

// RecordTerm links a record to a classification term.
type RecordTerm struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RecordID uuid.UUID `gorm:"type:uuid;not null;index:idx_record_terms_record_id;uniqueIndex:uq_record_terms_record_term,priority:1" json:"record_id"`
	TermID   uuid.UUID `gorm:"type:uuid;not null;index:idx_record_terms_term_id;uniqueIndex:uq_record_terms_record_term,priority:2" json:"term_id"`
}

// TableName specifies the table name for RecordTerm
func (RecordTerm) TableName() string {
	return "record_terms"
}

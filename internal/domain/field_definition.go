package domain

import (
	"postforge-api/internal/fieldtype"
)

// FieldChoice is one enumerable option of a structured field definition.
type FieldChoice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FieldDefinition is a structured custom-field declaration for a content
// type. When definitions exist for a type they are the authoritative
// discovery source; otherwise discovery falls back to sampling existing
// record metadata, which carries no type or choice information.
type FieldDefinition struct {
	BaseModel
	ContentType  string           `gorm:"type:varchar(100);not null;index:idx_field_definitions_content_type;uniqueIndex:uq_field_definitions_type_key,priority:1" json:"content_type"`
	MetaKey      string           `gorm:"type:varchar(255);not null;uniqueIndex:uq_field_definitions_type_key,priority:2" json:"meta_key"`
	Label        string           `gorm:"type:varchar(200);not null" json:"label"`
	WidgetType   fieldtype.Widget `gorm:"type:varchar(50)" json:"widget_type"`
	Required     bool             `gorm:"not null;default:false" json:"required"`
	Placeholder  string           `gorm:"type:varchar(255)" json:"placeholder"`
	Choices      []FieldChoice    `gorm:"serializer:json;type:jsonb" json:"choices"`
	DisplayOrder int              `gorm:"type:int;not null;default:0;index:idx_field_definitions_display_order" json:"display_order"`
}

// TableName specifies the table name for FieldDefinition
func (FieldDefinition) TableName() string {
	return "field_definitions"
}

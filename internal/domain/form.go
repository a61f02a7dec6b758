package domain

import (
	"postforge-api/internal/fieldtype"
)

// TaxonomyFieldConfig holds the per-taxonomy settings saved on a form.
// Presence of a taxonomy slug in Form.TaxonomyFields is what marks the
// taxonomy as selected; the widget type defaults to select when unset.
type TaxonomyFieldConfig struct {
	WidgetType fieldtype.Widget `json:"widget_type"`
}

// CustomFieldConfig holds the per-meta-key settings saved on a form.
// Only entries with Enabled=true participate at render and submit time.
// Order is assigned at save time and drives display order; ties are
// broken by discovery order.
type CustomFieldConfig struct {
	MetaKey    string           `json:"meta_key"`
	Label      string           `json:"label"`
	Required   bool             `json:"required"`
	Enabled    bool             `json:"enabled"`
	WidgetType fieldtype.Widget `json:"widget_type"`
	Order      int              `json:"order"`
}

// Form is the stored definition of one front-end submission form. It is
// mutated only by full re-save of the whole definition and soft-deleted
// rather than removed.
type Form struct {
	BaseModel
	Title                string                         `gorm:"type:varchar(255);not null" json:"title"`
	Description          string                         `gorm:"type:text" json:"description"`
	TargetContentType    string                         `gorm:"type:varchar(100);not null;index:idx_forms_content_type" json:"target_content_type"`
	LoginRequired        bool                           `gorm:"not null;default:false" json:"login_required"`
	AllowedRoles         []string                       `gorm:"serializer:json;type:jsonb" json:"allowed_roles"`
	IncludeFeaturedImage bool                           `gorm:"not null;default:false" json:"include_featured_image"`
	Enabled              bool                           `gorm:"not null;default:true;index:idx_forms_enabled" json:"enabled"`
	RedirectURL          string                         `gorm:"type:varchar(2000)" json:"redirect_url"`
	SuccessMessage       string                         `gorm:"type:text" json:"success_message"`
	NotificationEmail    string                         `gorm:"type:varchar(320)" json:"notification_email"`
	DefaultStatus        string                         `gorm:"type:varchar(50)" json:"default_status"`
	TaxonomyFields       map[string]TaxonomyFieldConfig `gorm:"serializer:json;type:jsonb" json:"taxonomy_fields"`
	CustomFields         []CustomFieldConfig            `gorm:"serializer:json;type:jsonb" json:"custom_fields"`
}

// TableName specifies the table name for Form
func (Form) TableName() string {
	return "forms"
}

// DefaultRecordStatus is used for created records when the form does
// not configure one.
const DefaultRecordStatus = "publish"

// RecordStatus returns the status new records should be created with.
func (f *Form) RecordStatus() string {
	if f.DefaultStatus != "" {
		return f.DefaultStatus
	}
	return DefaultRecordStatus
}

// EnabledCustomFields returns only the custom field configs that
// participate at render and submit time.
func (f *Form) EnabledCustomFields() []CustomFieldConfig {
	out := make([]CustomFieldConfig, 0, len(f.CustomFields))
	for _, cf := range f.CustomFields {
		if cf.Enabled {
			out = append(out, cf)
		}
	}
	return out
}

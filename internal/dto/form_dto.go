package dto

import (
	"time"

	"github.com/google/uuid"

	"postforge-api/internal/domain"
	"postforge-api/internal/fieldtype"
)

// TaxonomySettingRequest carries the per-taxonomy widget choice made in
// the form builder
type TaxonomySettingRequest struct {
	WidgetType string `json:"widget_type"`
}

// CustomFieldRequest carries one custom field row of the form builder.
// Order is assigned at save time from the array position.
type CustomFieldRequest struct {
	MetaKey    string `json:"meta_key" binding:"required"`
	Label      string `json:"label"`
	Required   bool   `json:"required"`
	Enabled    bool   `json:"enabled"`
	WidgetType string `json:"widget_type"`
}

// SaveFormRequest is the full-definition payload for creating or
// updating a form. Saves always overwrite the whole definition.
type SaveFormRequest struct {
	Title                string                            `json:"title" binding:"required"`
	Description          string                            `json:"description"`
	TargetContentType    string                            `json:"target_content_type" binding:"required"`
	LoginRequired        bool                              `json:"login_required"`
	AllowedRoles         []string                          `json:"allowed_roles"`
	IncludeFeaturedImage bool                              `json:"include_featured_image"`
	Enabled              bool                              `json:"enabled"`
	RedirectURL          string                            `json:"redirect_url"`
	SuccessMessage       string                            `json:"success_message"`
	NotificationEmail    string                            `json:"notification_email"`
	DefaultStatus        string                            `json:"default_status"`
	Taxonomies           []string                          `json:"taxonomies"`
	TaxonomySettings     map[string]TaxonomySettingRequest `json:"taxonomy_settings"`
	CustomFields         []CustomFieldRequest              `json:"custom_fields"`
}

// SetEnabledRequest carries the new enabled flag of a form. A pointer
// keeps an omitted flag distinguishable from an explicit false.
type SetEnabledRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// FormResponse is the API representation of a stored form definition
type FormResponse struct {
	FormID               uuid.UUID                                 `json:"form_id"`
	Title                string                                    `json:"title"`
	Description          string                                    `json:"description"`
	TargetContentType    string                                    `json:"target_content_type"`
	LoginRequired        bool                                      `json:"login_required"`
	AllowedRoles         []string                                  `json:"allowed_roles"`
	IncludeFeaturedImage bool                                      `json:"include_featured_image"`
	Enabled              bool                                      `json:"enabled"`
	RedirectURL          string                                    `json:"redirect_url"`
	SuccessMessage       string                                    `json:"success_message"`
	NotificationEmail    string                                    `json:"notification_email"`
	DefaultStatus        string                                    `json:"default_status"`
	TaxonomyFields       map[string]domain.TaxonomyFieldConfig     `json:"taxonomy_fields"`
	CustomFields         []domain.CustomFieldConfig                `json:"custom_fields"`
	CreatedAt            time.Time                                 `json:"created_at"`
	UpdatedAt            time.Time                                 `json:"updated_at"`
}

// RoleResponse is one selectable role for the access rule builder
type RoleResponse struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// ContentTypeDataResponse is the form-builder payload listing what can
// be configured for a content type
type ContentTypeDataResponse struct {
	Taxonomies []TaxonomyInfo    `json:"taxonomies"`
	MetaKeys   []DiscoveredField `json:"meta_keys"`
	Structured bool              `json:"structured"`
}

// TaxonomyInfo identifies one selectable taxonomy
type TaxonomyInfo struct {
	Slug  string `json:"slug"`
	Label string `json:"label"`
}

// DiscoveredField is one custom field offered by the field-discovery
// service. Fallback-discovered fields carry no widget type or choices.
type DiscoveredField struct {
	MetaKey     string           `json:"meta_key"`
	Label       string           `json:"label"`
	WidgetType  fieldtype.Widget `json:"widget_type"`
	Required    bool             `json:"required"`
	Placeholder string           `json:"placeholder"`
	Choices     []Choice         `json:"choices"`
}

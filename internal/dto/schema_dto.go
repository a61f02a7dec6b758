package dto

import (
	"postforge-api/internal/fieldtype"
)

// FieldKind distinguishes taxonomy-backed fields from custom meta
// fields in a resolved schema
type FieldKind string

// Field kinds
const (
	FieldKindTaxonomy FieldKind = "taxonomy"
	FieldKindCustom   FieldKind = "custom_field"
)

// RenderMode selects live rendering or the non-submittable preview
type RenderMode string

// Render modes
const (
	ModeLive    RenderMode = "live"
	ModePreview RenderMode = "preview"
)

// Choice is one selectable option of a choice-based field
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ResolvedField is the runtime-computed description of one form input,
// merging the stored form configuration with live provider data. It is
// recomputed on every request and never persisted.
type ResolvedField struct {
	Key        string           `json:"key"`
	Kind       FieldKind        `json:"kind"`
	WidgetType fieldtype.Widget `json:"widget_type"`
	Label      string           `json:"label"`
	Required   bool             `json:"required"`
	Order      int              `json:"order"`
	Choices    []Choice         `json:"choices"`
}

// ChoiceValues returns just the values of the field's choices, for
// submitted-value membership checks.
func (f ResolvedField) ChoiceValues() []string {
	values := make([]string, 0, len(f.Choices))
	for _, c := range f.Choices {
		values = append(values, c.Value)
	}
	return values
}

// WidgetDescriptor is the structural description of one rendered input
// widget handed to the UI layer. Preview descriptors are marked
// non-submittable and never carry a current value.
type WidgetDescriptor struct {
	Key          string           `json:"key"`
	Kind         FieldKind        `json:"kind"`
	WidgetType   fieldtype.Widget `json:"widget_type"`
	Label        string           `json:"label"`
	Required     bool             `json:"required"`
	Choices      []Choice         `json:"choices"`
	CurrentValue []string         `json:"current_value,omitempty"`
	Submittable  bool             `json:"submittable"`
}

// FormViewResponse is the public payload for displaying a form
type FormViewResponse struct {
	FormID               string             `json:"form_id"`
	Title                string             `json:"title"`
	Description          string             `json:"description"`
	IncludeFeaturedImage bool               `json:"include_featured_image"`
	Widgets              []WidgetDescriptor `json:"widgets"`
}

package service

import (
	"postforge-api/internal/dto"
)

// Renderer turns a resolved field list into structural widget
// descriptors. It performs no persistence and no access checks; callers
// must have evaluated access beforehand.
type Renderer interface {
	Render(fields []dto.ResolvedField, mode dto.RenderMode) []dto.WidgetDescriptor
}

// rendererImpl is the implementation of Renderer
type rendererImpl struct{}

// NewRenderer creates a new instance of Renderer
func NewRenderer() Renderer {
	return &rendererImpl{}
}

// Render produces one widget descriptor per resolved field, in order.
// Preview descriptors never carry a current value and are marked
// non-submittable so the UI layer disables its submit controls.
func (r *rendererImpl) Render(fields []dto.ResolvedField, mode dto.RenderMode) []dto.WidgetDescriptor {
	widgets := make([]dto.WidgetDescriptor, 0, len(fields))
	for _, field := range fields {
		widgets = append(widgets, dto.WidgetDescriptor{
			Key:         field.Key,
			Kind:        field.Kind,
			WidgetType:  field.WidgetType,
			Label:       field.Label,
			Required:    field.Required,
			Choices:     field.Choices,
			Submittable: mode == dto.ModeLive,
		})
	}
	return widgets
}

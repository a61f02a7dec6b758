package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"postforge-api/internal/domain"
	"postforge-api/internal/dto"
	"postforge-api/internal/fieldtype"
	"postforge-api/internal/metrics"
	"postforge-api/internal/repository"
)

// FormService manages stored form definitions. Saves always overwrite
// the whole definition; partial updates do not exist.
type FormService interface {
	CreateForm(ctx context.Context, req *dto.SaveFormRequest) (*dto.FormResponse, error)
	UpdateForm(ctx context.Context, formID uuid.UUID, req *dto.SaveFormRequest) (*dto.FormResponse, error)
	GetForm(ctx context.Context, formID uuid.UUID) (*dto.FormResponse, error)
	GetFormEntity(ctx context.Context, formID uuid.UUID) (*domain.Form, error)
	ListForms(ctx context.Context, includeDisabled bool) ([]*dto.FormResponse, error)
	SetFormEnabled(ctx context.Context, formID uuid.UUID, enabled bool) error
	DeleteForm(ctx context.Context, formID uuid.UUID) error
}

// formServiceImpl is the implementation of FormService
type formServiceImpl struct {
	formRepo  repository.FormRepository
	discovery FieldDiscoveryService
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewFormService creates a new instance of FormService
func NewFormService(
	formRepo repository.FormRepository,
	discovery FieldDiscoveryService,
	m *metrics.Metrics,
	logger *zap.Logger,
) FormService {
	return &formServiceImpl{
		formRepo:  formRepo,
		discovery: discovery,
		metrics:   m,
		logger:    logger,
	}
}

// CreateForm stores a new form definition
func (s *formServiceImpl) CreateForm(ctx context.Context, req *dto.SaveFormRequest) (*dto.FormResponse, error) {
	form := &domain.Form{}
	ApplyDefinition(form, req)

	if err := s.formRepo.Create(ctx, form); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.FormCreatedTotal.Inc()
	}
	s.discovery.InvalidateCache(ctx, form.TargetContentType)

	s.logger.Info("Form created",
		zap.String("form_id", form.ID.String()),
		zap.String("content_type", form.TargetContentType),
	)
	return toFormResponse(form), nil
}

// UpdateForm overwrites an existing form definition
func (s *formServiceImpl) UpdateForm(ctx context.Context, formID uuid.UUID, req *dto.SaveFormRequest) (*dto.FormResponse, error) {
	form, err := s.formRepo.FindByID(ctx, formID)
	if err != nil {
		return nil, err
	}

	previousType := form.TargetContentType
	ApplyDefinition(form, req)

	if err := s.formRepo.Update(ctx, form); err != nil {
		return nil, err
	}

	s.discovery.InvalidateCache(ctx, form.TargetContentType)
	if previousType != form.TargetContentType {
		s.discovery.InvalidateCache(ctx, previousType)
	}

	s.logger.Info("Form updated",
		zap.String("form_id", form.ID.String()),
		zap.String("content_type", form.TargetContentType),
	)
	return toFormResponse(form), nil
}

// GetForm returns a stored form definition
func (s *formServiceImpl) GetForm(ctx context.Context, formID uuid.UUID) (*dto.FormResponse, error) {
	form, err := s.formRepo.FindByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	return toFormResponse(form), nil
}

// GetFormEntity returns the stored form itself, for callers that need
// to evaluate access rules or resolve the schema
func (s *formServiceImpl) GetFormEntity(ctx context.Context, formID uuid.UUID) (*domain.Form, error) {
	return s.formRepo.FindByID(ctx, formID)
}

// ListForms lists stored form definitions
func (s *formServiceImpl) ListForms(ctx context.Context, includeDisabled bool) ([]*dto.FormResponse, error) {
	forms, err := s.formRepo.FindAll(ctx, includeDisabled)
	if err != nil {
		return nil, err
	}
	responses := make([]*dto.FormResponse, 0, len(forms))
	for _, form := range forms {
		responses = append(responses, toFormResponse(form))
	}
	return responses, nil
}

// SetFormEnabled flips the enabled flag of a form
func (s *formServiceImpl) SetFormEnabled(ctx context.Context, formID uuid.UUID, enabled bool) error {
	if err := s.formRepo.SetEnabled(ctx, formID, enabled); err != nil {
		return err
	}
	s.logger.Info("Form enabled flag changed",
		zap.String("form_id", formID.String()),
		zap.Bool("enabled", enabled),
	)
	return nil
}

// DeleteForm soft deletes a form definition
func (s *formServiceImpl) DeleteForm(ctx context.Context, formID uuid.UUID) error {
	if _, err := s.formRepo.FindByID(ctx, formID); err != nil {
		return err
	}
	if err := s.formRepo.Delete(ctx, formID); err != nil {
		return err
	}
	s.logger.Info("Form deleted", zap.String("form_id", formID.String()))
	return nil
}

// ApplyDefinition maps a save request onto a form, replacing the whole
// definition. Taxonomy selection is the presence of a slug in the
// taxonomies list; its widget comes from the settings map and defaults
// to select. Custom field order is assigned from the array position.
func ApplyDefinition(form *domain.Form, req *dto.SaveFormRequest) {
	form.Title = req.Title
	form.Description = req.Description
	form.TargetContentType = req.TargetContentType
	form.LoginRequired = req.LoginRequired
	form.AllowedRoles = req.AllowedRoles
	form.IncludeFeaturedImage = req.IncludeFeaturedImage
	form.Enabled = req.Enabled
	form.RedirectURL = req.RedirectURL
	form.SuccessMessage = req.SuccessMessage
	form.NotificationEmail = req.NotificationEmail
	form.DefaultStatus = req.DefaultStatus

	taxonomyFields := make(map[string]domain.TaxonomyFieldConfig, len(req.Taxonomies))
	for _, slug := range req.Taxonomies {
		widget := fieldtype.WidgetSelect
		if setting, ok := req.TaxonomySettings[slug]; ok && setting.WidgetType != "" {
			widget = fieldtype.Widget(setting.WidgetType)
		}
		taxonomyFields[slug] = domain.TaxonomyFieldConfig{WidgetType: widget}
	}
	form.TaxonomyFields = taxonomyFields

	customFields := make([]domain.CustomFieldConfig, 0, len(req.CustomFields))
	for i, cf := range req.CustomFields {
		customFields = append(customFields, domain.CustomFieldConfig{
			MetaKey:    cf.MetaKey,
			Label:      cf.Label,
			Required:   cf.Required,
			Enabled:    cf.Enabled,
			WidgetType: fieldtype.Widget(cf.WidgetType),
			Order:      i,
		})
	}
	form.CustomFields = customFields
}

// toFormResponse converts a form to its API representation
func toFormResponse(form *domain.Form) *dto.FormResponse {
	return &dto.FormResponse{
		FormID:               form.ID,
		Title:                form.Title,
		Description:          form.Description,
		TargetContentType:    form.TargetContentType,
		LoginRequired:        form.LoginRequired,
		AllowedRoles:         form.AllowedRoles,
		IncludeFeaturedImage: form.IncludeFeaturedImage,
		Enabled:              form.Enabled,
		RedirectURL:          form.RedirectURL,
		SuccessMessage:       form.SuccessMessage,
		NotificationEmail:    form.NotificationEmail,
		DefaultStatus:        form.DefaultStatus,
		TaxonomyFields:       form.TaxonomyFields,
		CustomFields:         form.CustomFields,
		CreatedAt:            form.CreatedAt,
		UpdatedAt:            form.UpdatedAt,
	}
}

package handler

import (
	"context"

	"github.com/google/uuid"

	"postforge-api/internal/domain"
	"postforge-api/internal/dto"
)

// MockFormService is a mock implementation of service.FormService
type MockFormService struct {
	CreateFormFunc     func(ctx context.Context, req *dto.SaveFormRequest) (*dto.FormResponse, error)
	UpdateFormFunc     func(ctx context.Context, formID uuid.UUID, req *dto.SaveFormRequest) (*dto.FormResponse, error)
	GetFormFunc        func(ctx context.Context, formID uuid.UUID) (*dto.FormResponse, error)
	GetFormEntityFunc  func(ctx context.Context, formID uuid.UUID) (*domain.Form, error)
	ListFormsFunc      func(ctx context.Context, includeDisabled bool) ([]*dto.FormResponse, error)
	SetFormEnabledFunc func(ctx context.Context, formID uuid.UUID, enabled bool) error
	DeleteFormFunc     func(ctx context.Context, formID uuid.UUID) error
}

func (m *MockFormService) CreateForm(ctx context.Context, req *dto.SaveFormRequest) (*dto.FormResponse, error) {
	if m.CreateFormFunc != nil {
		return m.CreateFormFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockFormService) UpdateForm(ctx context.Context, formID uuid.UUID, req *dto.SaveFormRequest) (*dto.FormResponse, error) {
	if m.UpdateFormFunc != nil {
		return m.UpdateFormFunc(ctx, formID, req)
	}
	return nil, nil
}

func (m *MockFormService) GetForm(ctx context.Context, formID uuid.UUID) (*dto.FormResponse, error) {
	if m.GetFormFunc != nil {
		return m.GetFormFunc(ctx, formID)
	}
	return nil, nil
}

func (m *MockFormService) GetFormEntity(ctx context.Context, formID uuid.UUID) (*domain.Form, error) {
	if m.GetFormEntityFunc != nil {
		return m.GetFormEntityFunc(ctx, formID)
	}
	return nil, nil
}

func (m *MockFormService) ListForms(ctx context.Context, includeDisabled bool) ([]*dto.FormResponse, error) {
	if m.ListFormsFunc != nil {
		return m.ListFormsFunc(ctx, includeDisabled)
	}
	return nil, nil
}

func (m *MockFormService) SetFormEnabled(ctx context.Context, formID uuid.UUID, enabled bool) error {
	if m.SetFormEnabledFunc != nil {
		return m.SetFormEnabledFunc(ctx, formID, enabled)
	}
	return nil
}

func (m *MockFormService) DeleteForm(ctx context.Context, formID uuid.UUID) error {
	if m.DeleteFormFunc != nil {
		return m.DeleteFormFunc(ctx, formID)
	}
	return nil
}

// MockSchemaService is a mock implementation of service.SchemaService
type MockSchemaService struct {
	ResolveFunc func(ctx context.Context, form *domain.Form) ([]dto.ResolvedField, error)
}

func (m *MockSchemaService) Resolve(ctx context.Context, form *domain.Form) ([]dto.ResolvedField, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, form)
	}
	return nil, nil
}

// MockSubmissionService is a mock implementation of
// service.SubmissionService
type MockSubmissionService struct {
	SubmitFunc func(ctx context.Context, form *domain.Form, identity domain.Identity, req *dto.SubmitFormRequest) (*dto.SubmissionResult, error)
}

func (m *MockSubmissionService) Submit(ctx context.Context, form *domain.Form, identity domain.Identity, req *dto.SubmitFormRequest) (*dto.SubmissionResult, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, form, identity, req)
	}
	return nil, nil
}

// MockContentTypeService is a mock implementation of
// service.ContentTypeService
type MockContentTypeService struct {
	GetBuilderDataFunc func(ctx context.Context, contentType string) (*dto.ContentTypeDataResponse, error)
}

func (m *MockContentTypeService) GetBuilderData(ctx context.Context, contentType string) (*dto.ContentTypeDataResponse, error) {
	if m.GetBuilderDataFunc != nil {
		return m.GetBuilderDataFunc(ctx, contentType)
	}
	return nil, nil
}

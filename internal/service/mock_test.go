package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"postforge-api/internal/client"
	"postforge-api/internal/domain"
	"postforge-api/internal/dto"
)

// MockFormRepository is a mock implementation of FormRepository
type MockFormRepository struct {
	CreateFunc             func(ctx context.Context, form *domain.Form) error
	UpdateFunc             func(ctx context.Context, form *domain.Form) error
	FindByIDFunc           func(ctx context.Context, id uuid.UUID) (*domain.Form, error)
	FindAllFunc            func(ctx context.Context, includeDisabled bool) ([]*domain.Form, error)
	DeleteFunc             func(ctx context.Context, id uuid.UUID) error
	SetEnabledFunc         func(ctx context.Context, id uuid.UUID, enabled bool) error
	PurgeDeletedBeforeFunc func(ctx context.Context, cutoff time.Time) (int64, error)
}

func (m *MockFormRepository) Create(ctx context.Context, form *domain.Form) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, form)
	}
	return nil
}

func (m *MockFormRepository) Update(ctx context.Context, form *domain.Form) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, form)
	}
	return nil
}

func (m *MockFormRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Form, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockFormRepository) FindAll(ctx context.Context, includeDisabled bool) ([]*domain.Form, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, includeDisabled)
	}
	return nil, nil
}

func (m *MockFormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockFormRepository) SetEnabled(ctx context.Context, id uuid.UUID, enabled bool) error {
	if m.SetEnabledFunc != nil {
		return m.SetEnabledFunc(ctx, id, enabled)
	}
	return nil
}

func (m *MockFormRepository) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.PurgeDeletedBeforeFunc != nil {
		return m.PurgeDeletedBeforeFunc(ctx, cutoff)
	}
	return 0, nil
}

// MockRecordRepository is a mock implementation of RecordRepository
type MockRecordRepository struct {
	CreateFunc         func(ctx context.Context, record *domain.Record) error
	UpdateFunc         func(ctx context.Context, record *domain.Record) error
	FindByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.Record, error)
	ListRecentFunc     func(ctx context.Context, contentType string, limit int) ([]*domain.Record, error)
	SetMetaFunc        func(ctx context.Context, recordID uuid.UUID, key string, values []string) error
	GetMetaFunc        func(ctx context.Context, recordID uuid.UUID, key string) ([]string, error)
	SampleMetaKeysFunc func(ctx context.Context, contentType string, sampleSize int) ([]string, error)
	ReplaceTermsFunc   func(ctx context.Context, recordID, taxonomyID uuid.UUID, termIDs []uuid.UUID) error
	FindTermIDsFunc    func(ctx context.Context, recordID uuid.UUID) ([]uuid.UUID, error)
}

func (m *MockRecordRepository) Create(ctx context.Context, record *domain.Record) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, record)
	}
	return nil
}

func (m *MockRecordRepository) Update(ctx context.Context, record *domain.Record) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, record)
	}
	return nil
}

func (m *MockRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Record, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockRecordRepository) ListRecent(ctx context.Context, contentType string, limit int) ([]*domain.Record, error) {
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx, contentType, limit)
	}
	return nil, nil
}

func (m *MockRecordRepository) SetMeta(ctx context.Context, recordID uuid.UUID, key string, values []string) error {
	if m.SetMetaFunc != nil {
		return m.SetMetaFunc(ctx, recordID, key, values)
	}
	return nil
}

func (m *MockRecordRepository) GetMeta(ctx context.Context, recordID uuid.UUID, key string) ([]string, error) {
	if m.GetMetaFunc != nil {
		return m.GetMetaFunc(ctx, recordID, key)
	}
	return nil, nil
}

func (m *MockRecordRepository) SampleMetaKeys(ctx context.Context, contentType string, sampleSize int) ([]string, error) {
	if m.SampleMetaKeysFunc != nil {
		return m.SampleMetaKeysFunc(ctx, contentType, sampleSize)
	}
	return nil, nil
}

func (m *MockRecordRepository) ReplaceTerms(ctx context.Context, recordID, taxonomyID uuid.UUID, termIDs []uuid.UUID) error {
	if m.ReplaceTermsFunc != nil {
		return m.ReplaceTermsFunc(ctx, recordID, taxonomyID, termIDs)
	}
	return nil
}

func (m *MockRecordRepository) FindTermIDs(ctx context.Context, recordID uuid.UUID) ([]uuid.UUID, error) {
	if m.FindTermIDsFunc != nil {
		return m.FindTermIDsFunc(ctx, recordID)
	}
	return nil, nil
}

// MockTaxonomyRepository is a mock implementation of TaxonomyRepository
type MockTaxonomyRepository struct {
	FindByContentTypeFunc func(ctx context.Context, contentType string) ([]*domain.Taxonomy, error)
	FindBySlugFunc        func(ctx context.Context, slug string) (*domain.Taxonomy, error)
	FindTermsFunc         func(ctx context.Context, taxonomyID uuid.UUID) ([]*domain.Term, error)
	CreateFunc            func(ctx context.Context, taxonomy *domain.Taxonomy) error
	CreateTermFunc        func(ctx context.Context, term *domain.Term) error
}

func (m *MockTaxonomyRepository) FindByContentType(ctx context.Context, contentType string) ([]*domain.Taxonomy, error) {
	if m.FindByContentTypeFunc != nil {
		return m.FindByContentTypeFunc(ctx, contentType)
	}
	return nil, nil
}

func (m *MockTaxonomyRepository) FindBySlug(ctx context.Context, slug string) (*domain.Taxonomy, error) {
	if m.FindBySlugFunc != nil {
		return m.FindBySlugFunc(ctx, slug)
	}
	return nil, nil
}

func (m *MockTaxonomyRepository) FindTerms(ctx context.Context, taxonomyID uuid.UUID) ([]*domain.Term, error) {
	if m.FindTermsFunc != nil {
		return m.FindTermsFunc(ctx, taxonomyID)
	}
	return nil, nil
}

func (m *MockTaxonomyRepository) Create(ctx context.Context, taxonomy *domain.Taxonomy) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, taxonomy)
	}
	return nil
}

func (m *MockTaxonomyRepository) CreateTerm(ctx context.Context, term *domain.Term) error {
	if m.CreateTermFunc != nil {
		return m.CreateTermFunc(ctx, term)
	}
	return nil
}

// MockFieldDefinitionRepository is a mock implementation of
// FieldDefinitionRepository
type MockFieldDefinitionRepository struct {
	FindByContentTypeFunc func(ctx context.Context, contentType string) ([]*domain.FieldDefinition, error)
	CreateFunc            func(ctx context.Context, definition *domain.FieldDefinition) error
}

func (m *MockFieldDefinitionRepository) FindByContentType(ctx context.Context, contentType string) ([]*domain.FieldDefinition, error) {
	if m.FindByContentTypeFunc != nil {
		return m.FindByContentTypeFunc(ctx, contentType)
	}
	return nil, nil
}

func (m *MockFieldDefinitionRepository) Create(ctx context.Context, definition *domain.FieldDefinition) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, definition)
	}
	return nil
}

// MockFieldDiscoveryService is a mock implementation of
// FieldDiscoveryService
type MockFieldDiscoveryService struct {
	SupportsStructuredFieldsFunc func(ctx context.Context, contentType string) (bool, error)
	DiscoverFieldsFunc           func(ctx context.Context, contentType string) ([]dto.DiscoveredField, bool, error)
	InvalidateCacheFunc          func(ctx context.Context, contentType string)
}

func (m *MockFieldDiscoveryService) SupportsStructuredFields(ctx context.Context, contentType string) (bool, error) {
	if m.SupportsStructuredFieldsFunc != nil {
		return m.SupportsStructuredFieldsFunc(ctx, contentType)
	}
	return false, nil
}

func (m *MockFieldDiscoveryService) DiscoverFields(ctx context.Context, contentType string) ([]dto.DiscoveredField, bool, error) {
	if m.DiscoverFieldsFunc != nil {
		return m.DiscoverFieldsFunc(ctx, contentType)
	}
	return nil, false, nil
}

func (m *MockFieldDiscoveryService) InvalidateCache(ctx context.Context, contentType string) {
	if m.InvalidateCacheFunc != nil {
		m.InvalidateCacheFunc(ctx, contentType)
	}
}

// MockSchemaService is a mock implementation of SchemaService
type MockSchemaService struct {
	ResolveFunc func(ctx context.Context, form *domain.Form) ([]dto.ResolvedField, error)
}

func (m *MockSchemaService) Resolve(ctx context.Context, form *domain.Form) ([]dto.ResolvedField, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, form)
	}
	return nil, nil
}

// MockNotifierClient is a mock implementation of client.NotifierClient
type MockNotifierClient struct {
	SendEmailFunc func(ctx context.Context, message client.EmailMessage) error
	Sent          []client.EmailMessage
}

func (m *MockNotifierClient) SendEmail(ctx context.Context, message client.EmailMessage) error {
	m.Sent = append(m.Sent, message)
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(ctx, message)
	}
	return nil
}

package service

import (
	"context"

	"go.uber.org/zap"

	"postforge-api/internal/dto"
	"postforge-api/internal/repository"
	"postforge-api/internal/response"
)

// ContentTypeService assembles the form-builder payload for a content
// type: the taxonomies that apply to it and the custom fields discovery
// reports for it.
type ContentTypeService interface {
	GetBuilderData(ctx context.Context, contentType string) (*dto.ContentTypeDataResponse, error)
}

// contentTypeServiceImpl is the implementation of ContentTypeService
type contentTypeServiceImpl struct {
	taxonomyRepo repository.TaxonomyRepository
	discovery    FieldDiscoveryService
	logger       *zap.Logger
}

// NewContentTypeService creates a new instance of ContentTypeService
func NewContentTypeService(
	taxonomyRepo repository.TaxonomyRepository,
	discovery FieldDiscoveryService,
	logger *zap.Logger,
) ContentTypeService {
	return &contentTypeServiceImpl{
		taxonomyRepo: taxonomyRepo,
		discovery:    discovery,
		logger:       logger,
	}
}

// GetBuilderData returns what can be configured for a content type
func (s *contentTypeServiceImpl) GetBuilderData(ctx context.Context, contentType string) (*dto.ContentTypeDataResponse, error) {
	taxonomies, err := s.taxonomyRepo.FindByContentType(ctx, contentType)
	if err != nil {
		return nil, err
	}
	taxonomyInfos := make([]dto.TaxonomyInfo, 0, len(taxonomies))
	for _, tax := range taxonomies {
		taxonomyInfos = append(taxonomyInfos, dto.TaxonomyInfo{
			Slug:  tax.Slug,
			Label: tax.Label,
		})
	}

	fields, structured, err := s.discovery.DiscoverFields(ctx, contentType)
	if err != nil {
		s.logger.Error("Field discovery failed for builder data",
			zap.String("content_type", contentType),
			zap.Error(err),
		)
		return nil, response.NewAppError(response.ErrCodeProviderUnavailable,
			"Field discovery is unavailable", err.Error())
	}

	return &dto.ContentTypeDataResponse{
		Taxonomies: taxonomyInfos,
		MetaKeys:   fields,
		Structured: structured,
	}, nil
}

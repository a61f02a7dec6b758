package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"postforge-api/internal/domain"
	"postforge-api/internal/dto"
	"postforge-api/internal/metrics"
	"postforge-api/internal/repository"
)

// Number of existing records sampled by the metadata fallback when no
// structured field definitions exist for a content type.
const discoverySampleSize = 10

// FieldDiscoveryService enumerates the custom fields available for a
// content type. When a structured field-definition source has entries
// for the type those are authoritative; otherwise recent records are
// sampled for non-internal metadata keys, yielding type-less free-text
// fields. The fallback is lossy: it carries no widget type, choices, or
// required flag.
type FieldDiscoveryService interface {
	SupportsStructuredFields(ctx context.Context, contentType string) (bool, error)
	DiscoverFields(ctx context.Context, contentType string) ([]dto.DiscoveredField, bool, error)
	InvalidateCache(ctx context.Context, contentType string)
}

// fieldDiscoveryServiceImpl is the implementation of FieldDiscoveryService
type fieldDiscoveryServiceImpl struct {
	definitionRepo repository.FieldDefinitionRepository
	recordRepo     repository.RecordRepository
	redisClient    *redis.Client
	cacheTTL       time.Duration
	metrics        *metrics.Metrics
	logger         *zap.Logger
}

// NewFieldDiscoveryService creates a new instance of
// FieldDiscoveryService. redisClient may be nil; caching is then
// skipped entirely.
func NewFieldDiscoveryService(
	definitionRepo repository.FieldDefinitionRepository,
	recordRepo repository.RecordRepository,
	redisClient *redis.Client,
	cacheTTL time.Duration,
	m *metrics.Metrics,
	logger *zap.Logger,
) FieldDiscoveryService {
	return &fieldDiscoveryServiceImpl{
		definitionRepo: definitionRepo,
		recordRepo:     recordRepo,
		redisClient:    redisClient,
		cacheTTL:       cacheTTL,
		metrics:        m,
		logger:         logger,
	}
}

// discoveryCacheEntry is the cached shape of one discovery result
type discoveryCacheEntry struct {
	Structured bool                  `json:"structured"`
	Fields     []dto.DiscoveredField `json:"fields"`
}

// SupportsStructuredFields reports whether a structured definition
// source exists for the content type
func (s *fieldDiscoveryServiceImpl) SupportsStructuredFields(ctx context.Context, contentType string) (bool, error) {
	definitions, err := s.definitionRepo.FindByContentType(ctx, contentType)
	if err != nil {
		return false, err
	}
	return len(definitions) > 0, nil
}

// DiscoverFields returns the discoverable fields for a content type and
// whether they came from the structured source
func (s *fieldDiscoveryServiceImpl) DiscoverFields(ctx context.Context, contentType string) ([]dto.DiscoveredField, bool, error) {
	if entry, ok := s.cacheGet(ctx, contentType); ok {
		return entry.Fields, entry.Structured, nil
	}

	definitions, err := s.definitionRepo.FindByContentType(ctx, contentType)
	if err != nil {
		return nil, false, err
	}

	if len(definitions) > 0 {
		fields := make([]dto.DiscoveredField, 0, len(definitions))
		for _, def := range definitions {
			fields = append(fields, toDiscoveredField(def))
		}
		s.cachePut(ctx, contentType, discoveryCacheEntry{Structured: true, Fields: fields})
		return fields, true, nil
	}

	// Fallback: sample recent records for non-internal metadata keys.
	keys, err := s.recordRepo.SampleMetaKeys(ctx, contentType, discoverySampleSize)
	if err != nil {
		return nil, false, err
	}

	fields := make([]dto.DiscoveredField, 0, len(keys))
	for _, key := range keys {
		if strings.HasPrefix(key, domain.InternalMetaPrefix) {
			continue
		}
		fields = append(fields, dto.DiscoveredField{
			MetaKey: key,
			Label:   key,
		})
	}
	s.cachePut(ctx, contentType, discoveryCacheEntry{Structured: false, Fields: fields})
	return fields, false, nil
}

// InvalidateCache drops the cached discovery result for a content type
func (s *fieldDiscoveryServiceImpl) InvalidateCache(ctx context.Context, contentType string) {
	if s.redisClient == nil {
		return
	}
	if err := s.redisClient.Del(ctx, discoveryCacheKey(contentType)).Err(); err != nil {
		s.logger.Warn("Failed to invalidate discovery cache",
			zap.String("content_type", contentType),
			zap.Error(err),
		)
	}
}

func (s *fieldDiscoveryServiceImpl) cacheGet(ctx context.Context, contentType string) (discoveryCacheEntry, bool) {
	var entry discoveryCacheEntry
	if s.redisClient == nil || s.cacheTTL <= 0 {
		return entry, false
	}

	data, err := s.redisClient.Get(ctx, discoveryCacheKey(contentType)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("Discovery cache read failed",
				zap.String("content_type", contentType),
				zap.Error(err),
			)
		}
		if s.metrics != nil {
			s.metrics.DiscoveryCacheMiss.Inc()
		}
		return entry, false
	}

	if err := json.Unmarshal(data, &entry); err != nil {
		s.logger.Warn("Discovery cache entry corrupted, dropping",
			zap.String("content_type", contentType),
			zap.Error(err),
		)
		s.redisClient.Del(ctx, discoveryCacheKey(contentType))
		return discoveryCacheEntry{}, false
	}

	if s.metrics != nil {
		s.metrics.DiscoveryCacheHits.Inc()
	}
	return entry, true
}

func (s *fieldDiscoveryServiceImpl) cachePut(ctx context.Context, contentType string, entry discoveryCacheEntry) {
	if s.redisClient == nil || s.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := s.redisClient.Set(ctx, discoveryCacheKey(contentType), data, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("Discovery cache write failed",
			zap.String("content_type", contentType),
			zap.Error(err),
		)
	}
}

func discoveryCacheKey(contentType string) string {
	return fmt.Sprintf("postforge:discovery:%s", contentType)
}

// toDiscoveredField converts a structured field definition to its
// discovery representation
func toDiscoveredField(def *domain.FieldDefinition) dto.DiscoveredField {
	choices := make([]dto.Choice, 0, len(def.Choices))
	for _, c := range def.Choices {
		choices = append(choices, dto.Choice{Value: c.Value, Label: c.Label})
	}
	return dto.DiscoveredField{
		MetaKey:     def.MetaKey,
		Label:       def.Label,
		WidgetType:  def.WidgetType,
		Required:    def.Required,
		Placeholder: def.Placeholder,
		Choices:     choices,
	}
}

package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"postforge-api/internal/domain"
	"postforge-api/internal/dto"
	"postforge-api/internal/fieldtype"
	"postforge-api/internal/metrics"
	"postforge-api/internal/repository"
)

// SchemaService computes the resolved field schema of a form by merging
// the stored definition with live provider data. Resolution is
// recomputed on every call and never persisted; stale provider state
// therefore cannot leak into rendering or validation.
type SchemaService interface {
	Resolve(ctx context.Context, form *domain.Form) ([]dto.ResolvedField, error)
}

// schemaServiceImpl is the implementation of SchemaService
type schemaServiceImpl struct {
	taxonomyRepo    repository.TaxonomyRepository
	discovery       FieldDiscoveryService
	providerTimeout time.Duration
	metrics         *metrics.Metrics
	logger          *zap.Logger
}

// NewSchemaService creates a new instance of SchemaService
func NewSchemaService(
	taxonomyRepo repository.TaxonomyRepository,
	discovery FieldDiscoveryService,
	providerTimeout time.Duration,
	m *metrics.Metrics,
	logger *zap.Logger,
) SchemaService {
	return &schemaServiceImpl{
		taxonomyRepo:    taxonomyRepo,
		discovery:       discovery,
		providerTimeout: providerTimeout,
		metrics:         m,
		logger:          logger,
	}
}

// Resolve builds the resolved field list for a form. Taxonomy fields
// come first, in provider order, followed by enabled custom fields in
// their configured order. A failing or slow provider drops only the
// fields it would have produced; resolution itself never aborts.
func (s *schemaServiceImpl) Resolve(ctx context.Context, form *domain.Form) ([]dto.ResolvedField, error) {
	fields := make([]dto.ResolvedField, 0)
	fields = append(fields, s.resolveTaxonomyFields(ctx, form)...)
	fields = append(fields, s.resolveCustomFields(ctx, form)...)
	for i := range fields {
		fields[i].Order = i
	}
	return fields, nil
}

func (s *schemaServiceImpl) resolveTaxonomyFields(ctx context.Context, form *domain.Form) []dto.ResolvedField {
	if len(form.TaxonomyFields) == 0 {
		return nil
	}

	callCtx, cancel := s.providerContext(ctx)
	taxonomies, err := s.taxonomyRepo.FindByContentType(callCtx, form.TargetContentType)
	cancel()
	if err != nil {
		s.logger.Warn("Taxonomy provider unavailable, dropping taxonomy fields",
			zap.String("form_id", form.ID.String()),
			zap.String("content_type", form.TargetContentType),
			zap.Error(err),
		)
		s.dropped(len(form.TaxonomyFields))
		return nil
	}

	fields := make([]dto.ResolvedField, 0, len(form.TaxonomyFields))
	for _, tax := range taxonomies {
		cfg, selected := form.TaxonomyFields[tax.Slug]
		if !selected {
			continue
		}

		callCtx, cancel := s.providerContext(ctx)
		terms, err := s.taxonomyRepo.FindTerms(callCtx, tax.ID)
		cancel()
		if err != nil {
			s.logger.Warn("Term lookup failed, dropping taxonomy field",
				zap.String("form_id", form.ID.String()),
				zap.String("taxonomy", tax.Slug),
				zap.Error(err),
			)
			s.dropped(1)
			continue
		}
		if len(terms) == 0 {
			// A choice field with nothing to choose is not rendered.
			s.logger.Debug("Taxonomy has no terms, dropping taxonomy field",
				zap.String("form_id", form.ID.String()),
				zap.String("taxonomy", tax.Slug),
			)
			s.dropped(1)
			continue
		}

		widget := cfg.WidgetType
		if widget == "" {
			widget = fieldtype.WidgetSelect
		}
		choices := make([]dto.Choice, 0, len(terms))
		for _, term := range terms {
			choices = append(choices, dto.Choice{
				Value: term.ID.String(),
				Label: term.Name,
			})
		}
		fields = append(fields, dto.ResolvedField{
			Key:        tax.Slug,
			Kind:       dto.FieldKindTaxonomy,
			WidgetType: widget,
			Label:      tax.Label,
			Choices:    choices,
		})
	}
	return fields
}

func (s *schemaServiceImpl) resolveCustomFields(ctx context.Context, form *domain.Form) []dto.ResolvedField {
	enabled := form.EnabledCustomFields()
	if len(enabled) == 0 {
		return nil
	}

	callCtx, cancel := s.providerContext(ctx)
	discovered, _, err := s.discovery.DiscoverFields(callCtx, form.TargetContentType)
	cancel()
	if err != nil {
		s.logger.Warn("Field discovery unavailable, dropping custom fields",
			zap.String("form_id", form.ID.String()),
			zap.String("content_type", form.TargetContentType),
			zap.Error(err),
		)
		s.dropped(len(enabled))
		return nil
	}

	discoveredByKey := make(map[string]int, len(discovered))
	for i, df := range discovered {
		discoveredByKey[df.MetaKey] = i
	}

	type orderedField struct {
		field          dto.ResolvedField
		order          int
		discoveryIndex int
	}
	ordered := make([]orderedField, 0, len(enabled))
	for _, cfg := range enabled {
		idx, ok := discoveredByKey[cfg.MetaKey]
		if !ok {
			// Stored config for a key the provider no longer reports.
			s.logger.Debug("Configured field no longer discoverable, dropping",
				zap.String("form_id", form.ID.String()),
				zap.String("meta_key", cfg.MetaKey),
			)
			s.dropped(1)
			continue
		}
		df := discovered[idx]

		label := cfg.Label
		if label == "" {
			label = df.Label
		}
		if label == "" {
			label = cfg.MetaKey
		}
		widget := cfg.WidgetType
		if widget == "" {
			widget = df.WidgetType
		}
		if !fieldtype.Known(widget) {
			widget = fieldtype.WidgetText
		}
		ordered = append(ordered, orderedField{
			field: dto.ResolvedField{
				Key:        cfg.MetaKey,
				Kind:       dto.FieldKindCustom,
				WidgetType: widget,
				Label:      label,
				Required:   cfg.Required,
				Choices:    df.Choices,
			},
			order:          cfg.Order,
			discoveryIndex: idx,
		})
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].order != ordered[j].order {
			return ordered[i].order < ordered[j].order
		}
		return ordered[i].discoveryIndex < ordered[j].discoveryIndex
	})

	fields := make([]dto.ResolvedField, 0, len(ordered))
	for _, of := range ordered {
		fields = append(fields, of.field)
	}
	return fields
}

func (s *schemaServiceImpl) providerContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.providerTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.providerTimeout)
}

func (s *schemaServiceImpl) dropped(n int) {
	if s.metrics == nil {
		return
	}
	for i := 0; i < n; i++ {
		s.metrics.SchemaFieldsDropped.Inc()
	}
}

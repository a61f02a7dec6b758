package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"postforge-api/internal/client"
	"postforge-api/internal/domain"
	"postforge-api/internal/dto"
	"postforge-api/internal/fieldtype"
	"postforge-api/internal/metrics"
	"postforge-api/internal/repository"
)

// DefaultSuccessMessage is shown after a persisted submission when the
// form does not configure its own message.
const DefaultSuccessMessage = "Thank you for your submission!"

// SubmissionService runs the submission pipeline: access check,
// validation against the freshly resolved schema, record persistence,
// and notification. Validation reports every failing field at once;
// nothing is persisted unless all fields pass.
type SubmissionService interface {
	Submit(ctx context.Context, form *domain.Form, identity domain.Identity, req *dto.SubmitFormRequest) (*dto.SubmissionResult, error)
}

// submissionServiceImpl is the implementation of SubmissionService
type submissionServiceImpl struct {
	recordRepo   repository.RecordRepository
	taxonomyRepo repository.TaxonomyRepository
	schema       SchemaService
	access       AccessEvaluator
	notifier     client.NotifierClient
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

// NewSubmissionService creates a new instance of SubmissionService
func NewSubmissionService(
	recordRepo repository.RecordRepository,
	taxonomyRepo repository.TaxonomyRepository,
	schema SchemaService,
	access AccessEvaluator,
	notifier client.NotifierClient,
	m *metrics.Metrics,
	logger *zap.Logger,
) SubmissionService {
	return &submissionServiceImpl{
		recordRepo:   recordRepo,
		taxonomyRepo: taxonomyRepo,
		schema:       schema,
		access:       access,
		notifier:     notifier,
		metrics:      m,
		logger:       logger,
	}
}

// Submit processes one form submission end to end
func (s *submissionServiceImpl) Submit(ctx context.Context, form *domain.Form, identity domain.Identity, req *dto.SubmitFormRequest) (*dto.SubmissionResult, error) {
	if !s.access.CanSubmit(form, identity) {
		s.logger.Info("Submission rejected by access rules",
			zap.String("form_id", form.ID.String()),
			zap.Bool("anonymous", identity.Anonymous()),
		)
		return s.finish(&dto.SubmissionResult{
			Outcome: dto.OutcomeRejected,
			Reason:  dto.RejectAccessDenied,
		}), nil
	}

	// The schema is resolved fresh for every submission so values are
	// always checked against current provider state, not what was
	// rendered when the visitor loaded the page.
	fields, err := s.schema.Resolve(ctx, form)
	if err != nil {
		return nil, err
	}

	values, fieldErrors := s.validate(req, fields)
	if len(fieldErrors) > 0 {
		s.logger.Info("Submission rejected by validation",
			zap.String("form_id", form.ID.String()),
			zap.Int("error_count", len(fieldErrors)),
		)
		return s.finish(&dto.SubmissionResult{
			Outcome: dto.OutcomeRejected,
			Reason:  dto.RejectValidationFailed,
			Errors:  fieldErrors,
		}), nil
	}

	record := &domain.Record{
		ContentType: form.TargetContentType,
		Title:       req.Title,
		Body:        req.Body,
		Status:      form.RecordStatus(),
	}
	if !identity.Anonymous() {
		authorID := identity.ID
		record.AuthorID = &authorID
	}
	if err := s.recordRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	if failedStep := s.persistFields(ctx, record.ID, fields, values); failedStep != "" {
		s.logger.Error("Record created but field persistence failed",
			zap.String("form_id", form.ID.String()),
			zap.String("record_id", record.ID.String()),
			zap.String("failed_step", failedStep),
		)
		return s.finish(&dto.SubmissionResult{
			Outcome:    dto.OutcomePartiallyPersisted,
			RecordID:   &record.ID,
			FailedStep: failedStep,
		}), nil
	}

	s.notify(ctx, form, record)

	s.logger.Info("Submission persisted",
		zap.String("form_id", form.ID.String()),
		zap.String("record_id", record.ID.String()),
		zap.String("status", record.Status),
	)

	result := &dto.SubmissionResult{
		Outcome:  dto.OutcomePersisted,
		RecordID: &record.ID,
	}
	if form.RedirectURL != "" {
		result.RedirectURL = form.RedirectURL
	} else if form.SuccessMessage != "" {
		result.Message = form.SuccessMessage
	} else {
		result.Message = DefaultSuccessMessage
	}
	return s.finish(result), nil
}

// validate normalizes and checks every posted value against the
// resolved schema. All field errors are collected before returning so
// the visitor sees the full list in one round trip.
func (s *submissionServiceImpl) validate(req *dto.SubmitFormRequest, fields []dto.ResolvedField) (map[string][]string, []fieldtype.FieldError) {
	values := make(map[string][]string, len(fields))
	var fieldErrors []fieldtype.FieldError

	if req.Title == "" {
		fieldErrors = append(fieldErrors, fieldtype.FieldError{Field: "title", Reason: fieldtype.ReasonRequired})
	}
	if req.Body == "" {
		fieldErrors = append(fieldErrors, fieldtype.FieldError{Field: "body", Reason: fieldtype.ReasonRequired})
	}

	for _, field := range fields {
		normalized := fieldtype.Normalize(field.WidgetType, req.Values[field.Key])
		values[field.Key] = normalized

		if reason := fieldtype.Validate(field.WidgetType, field.Required, normalized); reason != "" {
			fieldErrors = append(fieldErrors, fieldtype.FieldError{Field: field.Key, Reason: reason})
			continue
		}
		if reason := fieldtype.ValidateChoices(normalized, field.ChoiceValues()); reason != "" {
			fieldErrors = append(fieldErrors, fieldtype.FieldError{Field: field.Key, Reason: reason})
		}
	}
	return values, fieldErrors
}

// persistFields stores taxonomy assignments and metadata values for a
// created record. It returns the name of the first failing step, or an
// empty string when everything was stored.
func (s *submissionServiceImpl) persistFields(ctx context.Context, recordID uuid.UUID, fields []dto.ResolvedField, values map[string][]string) string {
	for _, field := range fields {
		normalized := values[field.Key]

		switch field.Kind {
		case dto.FieldKindTaxonomy:
			if err := s.assignTerms(ctx, recordID, field.Key, normalized); err != nil {
				s.logger.Error("Failed to assign taxonomy terms",
					zap.String("record_id", recordID.String()),
					zap.String("taxonomy", field.Key),
					zap.Error(err),
				)
				return fmt.Sprintf("set_terms:%s", field.Key)
			}
		case dto.FieldKindCustom:
			if len(normalized) == 0 {
				continue
			}
			if err := s.recordRepo.SetMeta(ctx, recordID, field.Key, normalized); err != nil {
				s.logger.Error("Failed to store field metadata",
					zap.String("record_id", recordID.String()),
					zap.String("meta_key", field.Key),
					zap.Error(err),
				)
				return fmt.Sprintf("set_meta:%s", field.Key)
			}
		}
	}
	return ""
}

// assignTerms replaces the record's term assignments within one
// taxonomy. Submitted taxonomy values are term IDs; membership was
// already checked against the resolved choices.
func (s *submissionServiceImpl) assignTerms(ctx context.Context, recordID uuid.UUID, taxonomySlug string, values []string) error {
	taxonomy, err := s.taxonomyRepo.FindBySlug(ctx, taxonomySlug)
	if err != nil {
		return err
	}

	termIDs := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		termID, err := uuid.Parse(v)
		if err != nil {
			return fmt.Errorf("invalid term id %q: %w", v, err)
		}
		termIDs = append(termIDs, termID)
	}
	return s.recordRepo.ReplaceTerms(ctx, recordID, taxonomy.ID, termIDs)
}

// notify sends the configured notification email. Delivery problems are
// logged inside the client and never affect the submission outcome.
func (s *submissionServiceImpl) notify(ctx context.Context, form *domain.Form, record *domain.Record) {
	if form.NotificationEmail == "" || s.notifier == nil {
		return
	}
	subject := fmt.Sprintf("New form submission: %s", form.Title)
	body := fmt.Sprintf("A new %s record %q was submitted through the form %q.",
		record.ContentType, record.Title, form.Title)
	if err := s.notifier.SendEmail(ctx, client.EmailMessage{
		To:      form.NotificationEmail,
		Subject: subject,
		Body:    body,
	}); err != nil {
		s.logger.Warn("Notification email could not be prepared",
			zap.String("form_id", form.ID.String()),
			zap.String("record_id", record.ID.String()),
			zap.Error(err),
		)
	}
}

// finish records the outcome metric and returns the result unchanged
func (s *submissionServiceImpl) finish(result *dto.SubmissionResult) *dto.SubmissionResult {
	if s.metrics != nil {
		s.metrics.RecordSubmission(string(result.Outcome))
	}
	return result
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"postforge-api/internal/client"
	"postforge-api/internal/domain"
	"postforge-api/internal/dto"
	"postforge-api/internal/fieldtype"
)

type submissionFixture struct {
	recordRepo   *MockRecordRepository
	taxonomyRepo *MockTaxonomyRepository
	schema       *MockSchemaService
	notifier     *MockNotifierClient
	service      SubmissionService
}

func newSubmissionFixture(fields []dto.ResolvedField) *submissionFixture {
	f := &submissionFixture{
		recordRepo:   &MockRecordRepository{},
		taxonomyRepo: &MockTaxonomyRepository{},
		schema: &MockSchemaService{
			ResolveFunc: func(ctx context.Context, form *domain.Form) ([]dto.ResolvedField, error) {
				return fields, nil
			},
		},
		notifier: &MockNotifierClient{},
	}
	f.service = NewSubmissionService(
		f.recordRepo, f.taxonomyRepo, f.schema,
		NewAccessEvaluator(), f.notifier, nil, zap.NewNop(),
	)
	return f
}

func submittableForm() *domain.Form {
	return &domain.Form{
		BaseModel:         domain.BaseModel{ID: uuid.New()},
		Title:             "Recipe submission",
		TargetContentType: "recipe",
		Enabled:           true,
	}
}

func TestSubmit_AccessDenied(t *testing.T) {
	f := newSubmissionFixture(nil)
	form := submittableForm()
	form.LoginRequired = true

	created := false
	f.recordRepo.CreateFunc = func(ctx context.Context, record *domain.Record) error {
		created = true
		return nil
	}

	result, err := f.service.Submit(context.Background(), form, domain.Identity{}, &dto.SubmitFormRequest{Title: "t", Body: "b"})
	require.NoError(t, err)
	assert.Equal(t, dto.OutcomeRejected, result.Outcome)
	assert.Equal(t, dto.RejectAccessDenied, result.Reason)
	assert.False(t, created, "nothing may be persisted for a denied submission")
}

func TestSubmit_ValidationCollectsAllErrors(t *testing.T) {
	fields := []dto.ResolvedField{
		{Key: "email", Kind: dto.FieldKindCustom, WidgetType: fieldtype.WidgetEmail, Required: true},
		{Key: "servings", Kind: dto.FieldKindCustom, WidgetType: fieldtype.WidgetNumber},
	}
	f := newSubmissionFixture(fields)

	created := false
	f.recordRepo.CreateFunc = func(ctx context.Context, record *domain.Record) error {
		created = true
		return nil
	}

	result, err := f.service.Submit(context.Background(), submittableForm(), domain.Identity{}, &dto.SubmitFormRequest{
		Title: "",
		Body:  "some body",
		Values: map[string]interface{}{
			"email":    "not-an-email",
			"servings": "many",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, dto.OutcomeRejected, result.Outcome)
	assert.Equal(t, dto.RejectValidationFailed, result.Reason)
	require.Len(t, result.Errors, 3)

	byField := make(map[string]string)
	for _, fe := range result.Errors {
		byField[fe.Field] = fe.Reason
	}
	assert.Equal(t, fieldtype.ReasonRequired, byField["title"])
	assert.Equal(t, fieldtype.ReasonInvalidEmail, byField["email"])
	assert.Equal(t, fieldtype.ReasonInvalidNumber, byField["servings"])
	assert.False(t, created)
}

func TestSubmit_ChoiceMembershipCheckedAgainstFreshSchema(t *testing.T) {
	fields := []dto.ResolvedField{
		{
			Key: "cuisine", Kind: dto.FieldKindTaxonomy, WidgetType: fieldtype.WidgetSelect,
			Choices: []dto.Choice{{Value: uuid.NewString(), Label: "Italian"}},
		},
	}
	f := newSubmissionFixture(fields)

	result, err := f.service.Submit(context.Background(), submittableForm(), domain.Identity{}, &dto.SubmitFormRequest{
		Title:  "t",
		Body:   "b",
		Values: map[string]interface{}{"cuisine": uuid.NewString()},
	})
	require.NoError(t, err)
	assert.Equal(t, dto.OutcomeRejected, result.Outcome)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, fieldtype.ReasonInvalidChoice, result.Errors[0].Reason)
}

func TestSubmit_PersistsRecordMetaAndTerms(t *testing.T) {
	tax := &domain.Taxonomy{BaseModel: domain.BaseModel{ID: uuid.New()}, Slug: "cuisine"}
	termID := uuid.New()
	fields := []dto.ResolvedField{
		{
			Key: "cuisine", Kind: dto.FieldKindTaxonomy, WidgetType: fieldtype.WidgetSelect,
			Choices: []dto.Choice{{Value: termID.String(), Label: "Italian"}},
		},
		{Key: "prep_time", Kind: dto.FieldKindCustom, WidgetType: fieldtype.WidgetNumber},
		{Key: "notes", Kind: dto.FieldKindCustom, WidgetType: fieldtype.WidgetText},
	}
	f := newSubmissionFixture(fields)

	recordID := uuid.New()
	var createdRecord *domain.Record
	f.recordRepo.CreateFunc = func(ctx context.Context, record *domain.Record) error {
		record.ID = recordID
		createdRecord = record
		return nil
	}
	storedMeta := make(map[string][]string)
	f.recordRepo.SetMetaFunc = func(ctx context.Context, rid uuid.UUID, key string, values []string) error {
		storedMeta[key] = values
		return nil
	}
	var replacedTerms []uuid.UUID
	f.recordRepo.ReplaceTermsFunc = func(ctx context.Context, rid, taxonomyID uuid.UUID, termIDs []uuid.UUID) error {
		assert.Equal(t, recordID, rid)
		assert.Equal(t, tax.ID, taxonomyID)
		replacedTerms = termIDs
		return nil
	}
	f.taxonomyRepo.FindBySlugFunc = func(ctx context.Context, slug string) (*domain.Taxonomy, error) {
		assert.Equal(t, "cuisine", slug)
		return tax, nil
	}

	author := domain.Identity{ID: uuid.New(), Roles: []string{"author"}}
	result, err := f.service.Submit(context.Background(), submittableForm(), author, &dto.SubmitFormRequest{
		Title: "Risotto",
		Body:  "Stir often",
		Values: map[string]interface{}{
			"cuisine":   termID.String(),
			"prep_time": "45",
			// notes omitted: empty optional values are not stored
		},
	})
	require.NoError(t, err)

	assert.Equal(t, dto.OutcomePersisted, result.Outcome)
	require.NotNil(t, result.RecordID)
	assert.Equal(t, recordID, *result.RecordID)
	assert.Equal(t, DefaultSuccessMessage, result.Message)

	require.NotNil(t, createdRecord)
	assert.Equal(t, "recipe", createdRecord.ContentType)
	assert.Equal(t, domain.DefaultRecordStatus, createdRecord.Status)
	require.NotNil(t, createdRecord.AuthorID)
	assert.Equal(t, author.ID, *createdRecord.AuthorID)

	assert.Equal(t, []string{"45"}, storedMeta["prep_time"])
	assert.NotContains(t, storedMeta, "notes")
	assert.Equal(t, []uuid.UUID{termID}, replacedTerms)
}

func TestSubmit_AnonymousRecordHasNoAuthor(t *testing.T) {
	f := newSubmissionFixture(nil)

	var createdRecord *domain.Record
	f.recordRepo.CreateFunc = func(ctx context.Context, record *domain.Record) error {
		record.ID = uuid.New()
		createdRecord = record
		return nil
	}

	_, err := f.service.Submit(context.Background(), submittableForm(), domain.Identity{}, &dto.SubmitFormRequest{Title: "t", Body: "b"})
	require.NoError(t, err)
	require.NotNil(t, createdRecord)
	assert.Nil(t, createdRecord.AuthorID)
}

func TestSubmit_ConfiguredStatusAndMessageWin(t *testing.T) {
	f := newSubmissionFixture(nil)
	form := submittableForm()
	form.DefaultStatus = "pending"
	form.SuccessMessage = "We got it."

	var createdRecord *domain.Record
	f.recordRepo.CreateFunc = func(ctx context.Context, record *domain.Record) error {
		record.ID = uuid.New()
		createdRecord = record
		return nil
	}

	result, err := f.service.Submit(context.Background(), form, domain.Identity{}, &dto.SubmitFormRequest{Title: "t", Body: "b"})
	require.NoError(t, err)
	assert.Equal(t, "pending", createdRecord.Status)
	assert.Equal(t, "We got it.", result.Message)
	assert.Empty(t, result.RedirectURL)
}

func TestSubmit_RedirectWinsOverMessage(t *testing.T) {
	f := newSubmissionFixture(nil)
	form := submittableForm()
	form.RedirectURL = "https://example.com/thanks"
	form.SuccessMessage = "unused"

	f.recordRepo.CreateFunc = func(ctx context.Context, record *domain.Record) error {
		record.ID = uuid.New()
		return nil
	}

	result, err := f.service.Submit(context.Background(), form, domain.Identity{}, &dto.SubmitFormRequest{Title: "t", Body: "b"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/thanks", result.RedirectURL)
	assert.Empty(t, result.Message)
}

func TestSubmit_PartialPersistNamesFailedStep(t *testing.T) {
	fields := []dto.ResolvedField{
		{Key: "prep_time", Kind: dto.FieldKindCustom, WidgetType: fieldtype.WidgetNumber},
	}
	f := newSubmissionFixture(fields)

	recordID := uuid.New()
	f.recordRepo.CreateFunc = func(ctx context.Context, record *domain.Record) error {
		record.ID = recordID
		return nil
	}
	f.recordRepo.SetMetaFunc = func(ctx context.Context, rid uuid.UUID, key string, values []string) error {
		return errors.New("disk full")
	}

	result, err := f.service.Submit(context.Background(), submittableForm(), domain.Identity{}, &dto.SubmitFormRequest{
		Title:  "t",
		Body:   "b",
		Values: map[string]interface{}{"prep_time": "5"},
	})
	require.NoError(t, err)
	assert.Equal(t, dto.OutcomePartiallyPersisted, result.Outcome)
	require.NotNil(t, result.RecordID)
	assert.Equal(t, recordID, *result.RecordID)
	assert.Equal(t, "set_meta:prep_time", result.FailedStep)
}

func TestSubmit_RecordCreateFailureIsAnError(t *testing.T) {
	f := newSubmissionFixture(nil)
	f.recordRepo.CreateFunc = func(ctx context.Context, record *domain.Record) error {
		return errors.New("db down")
	}

	_, err := f.service.Submit(context.Background(), submittableForm(), domain.Identity{}, &dto.SubmitFormRequest{Title: "t", Body: "b"})
	assert.Error(t, err)
}

func TestSubmit_NotificationSentWhenConfigured(t *testing.T) {
	f := newSubmissionFixture(nil)
	form := submittableForm()
	form.NotificationEmail = "editor@example.com"

	f.recordRepo.CreateFunc = func(ctx context.Context, record *domain.Record) error {
		record.ID = uuid.New()
		return nil
	}

	result, err := f.service.Submit(context.Background(), form, domain.Identity{}, &dto.SubmitFormRequest{Title: "t", Body: "b"})
	require.NoError(t, err)
	assert.Equal(t, dto.OutcomePersisted, result.Outcome)
	require.Len(t, f.notifier.Sent, 1)
	assert.Equal(t, "editor@example.com", f.notifier.Sent[0].To)
}

func TestSubmit_NotificationFailureDoesNotChangeOutcome(t *testing.T) {
	f := newSubmissionFixture(nil)
	form := submittableForm()
	form.NotificationEmail = "editor@example.com"

	f.recordRepo.CreateFunc = func(ctx context.Context, record *domain.Record) error {
		record.ID = uuid.New()
		return nil
	}
	f.notifier.SendEmailFunc = func(ctx context.Context, message client.EmailMessage) error {
		return errors.New("notifier unreachable")
	}

	result, err := f.service.Submit(context.Background(), form, domain.Identity{}, &dto.SubmitFormRequest{Title: "t", Body: "b"})
	require.NoError(t, err)
	assert.Equal(t, dto.OutcomePersisted, result.Outcome)
}

func TestSubmit_CheckboxWithoutChoicesStoresPresence(t *testing.T) {
	fields := []dto.ResolvedField{
		{Key: "subscribe", Kind: dto.FieldKindCustom, WidgetType: fieldtype.WidgetCheckbox},
	}
	f := newSubmissionFixture(fields)

	f.recordRepo.CreateFunc = func(ctx context.Context, record *domain.Record) error {
		record.ID = uuid.New()
		return nil
	}
	storedMeta := make(map[string][]string)
	f.recordRepo.SetMetaFunc = func(ctx context.Context, rid uuid.UUID, key string, values []string) error {
		storedMeta[key] = values
		return nil
	}

	result, err := f.service.Submit(context.Background(), submittableForm(), domain.Identity{}, &dto.SubmitFormRequest{
		Title:  "t",
		Body:   "b",
		Values: map[string]interface{}{"subscribe": true},
	})
	require.NoError(t, err)
	assert.Equal(t, dto.OutcomePersisted, result.Outcome)
	assert.Equal(t, []string{"1"}, storedMeta["subscribe"])
}

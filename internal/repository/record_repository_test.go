package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"postforge-api/internal/domain"
)

func newTestRecord(contentType, title string) *domain.Record {
	return &domain.Record{
		BaseModel:   domain.BaseModel{ID: uuid.New()},
		ContentType: contentType,
		Title:       title,
		Status:      "publish",
	}
}

func TestRecordRepository_SetAndGetMeta(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecordRepository(db)
	ctx := context.Background()

	record := newTestRecord("recipe", "Pancakes")
	require.NoError(t, repo.Create(ctx, record))

	require.NoError(t, repo.SetMeta(ctx, record.ID, "ingredients", []string{"flour", "milk"}))

	values, err := repo.GetMeta(ctx, record.ID, "ingredients")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"flour", "milk"}, values)

	// Setting again replaces, never appends
	require.NoError(t, repo.SetMeta(ctx, record.ID, "ingredients", []string{"eggs"}))
	values, err = repo.GetMeta(ctx, record.ID, "ingredients")
	require.NoError(t, err)
	assert.Equal(t, []string{"eggs"}, values)

	// Empty set clears the key
	require.NoError(t, repo.SetMeta(ctx, record.ID, "ingredients", nil))
	values, err = repo.GetMeta(ctx, record.ID, "ingredients")
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestRecordRepository_SetMeta_LeavesOtherKeysAlone(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecordRepository(db)
	ctx := context.Background()

	record := newTestRecord("recipe", "Soup")
	require.NoError(t, repo.Create(ctx, record))
	require.NoError(t, repo.SetMeta(ctx, record.ID, "prep_time", []string{"15"}))
	require.NoError(t, repo.SetMeta(ctx, record.ID, "servings", []string{"4"}))

	require.NoError(t, repo.SetMeta(ctx, record.ID, "prep_time", []string{"20"}))

	servings, err := repo.GetMeta(ctx, record.ID, "servings")
	require.NoError(t, err)
	assert.Equal(t, []string{"4"}, servings)
}

func TestRecordRepository_SampleMetaKeys(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecordRepository(db)
	ctx := context.Background()

	first := newTestRecord("recipe", "First")
	second := newTestRecord("recipe", "Second")
	other := newTestRecord("article", "Other type")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, other))

	require.NoError(t, repo.SetMeta(ctx, first.ID, "prep_time", []string{"10"}))
	require.NoError(t, repo.SetMeta(ctx, first.ID, "_internal_flag", []string{"1"}))
	require.NoError(t, repo.SetMeta(ctx, second.ID, "servings", []string{"2"}))
	require.NoError(t, repo.SetMeta(ctx, other.ID, "byline", []string{"someone"}))

	keys, err := repo.SampleMetaKeys(ctx, "recipe", 10)
	require.NoError(t, err)
	// Internal keys are filtered by the caller, not the repository
	assert.ElementsMatch(t, []string{"prep_time", "_internal_flag", "servings"}, keys)
	assert.NotContains(t, keys, "byline")
}

func TestRecordRepository_SampleMetaKeys_NoRecords(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecordRepository(db)

	keys, err := repo.SampleMetaKeys(context.Background(), "missing", 10)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestRecordRepository_ReplaceTerms_ScopedToTaxonomy(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecordRepository(db)
	taxRepo := NewTaxonomyRepository(db)
	ctx := context.Background()

	cuisine := &domain.Taxonomy{
		BaseModel:    domain.BaseModel{ID: uuid.New()},
		Slug:         "cuisine",
		Label:        "Cuisine",
		ContentTypes: []string{"recipe"},
	}
	diet := &domain.Taxonomy{
		BaseModel:    domain.BaseModel{ID: uuid.New()},
		Slug:         "diet",
		Label:        "Diet",
		ContentTypes: []string{"recipe"},
	}
	require.NoError(t, taxRepo.Create(ctx, cuisine))
	require.NoError(t, taxRepo.Create(ctx, diet))

	italian := &domain.Term{ID: uuid.New(), TaxonomyID: cuisine.ID, Slug: "italian", Name: "Italian"}
	french := &domain.Term{ID: uuid.New(), TaxonomyID: cuisine.ID, Slug: "french", Name: "French"}
	vegan := &domain.Term{ID: uuid.New(), TaxonomyID: diet.ID, Slug: "vegan", Name: "Vegan"}
	require.NoError(t, taxRepo.CreateTerm(ctx, italian))
	require.NoError(t, taxRepo.CreateTerm(ctx, french))
	require.NoError(t, taxRepo.CreateTerm(ctx, vegan))

	record := newTestRecord("recipe", "Risotto")
	require.NoError(t, repo.Create(ctx, record))

	require.NoError(t, repo.ReplaceTerms(ctx, record.ID, cuisine.ID, []uuid.UUID{italian.ID}))
	require.NoError(t, repo.ReplaceTerms(ctx, record.ID, diet.ID, []uuid.UUID{vegan.ID}))

	// Replacing cuisine terms must not touch the diet assignment
	require.NoError(t, repo.ReplaceTerms(ctx, record.ID, cuisine.ID, []uuid.UUID{french.ID}))

	termIDs, err := repo.FindTermIDs(ctx, record.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{french.ID, vegan.ID}, termIDs)
}

func TestRecordRepository_ListRecent_RespectsLimitAndType(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecordRepository(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, newTestRecord("recipe", "r")))
	}
	require.NoError(t, repo.Create(ctx, newTestRecord("article", "a")))

	records, err := repo.ListRecent(ctx, "recipe", 3)
	require.NoError(t, err)
	assert.Len(t, records, 3)
	for _, r := range records {
		assert.Equal(t, "recipe", r.ContentType)
	}
}

func TestRecordRepository_FindByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecordRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

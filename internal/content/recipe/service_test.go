// Copyright (c) 2026 Porchlight. All rights reserved.

package recipe_test

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/averyclark/porchlight/internal/content/recipe"
	"github.com/averyclark/porchlight/internal/platform/apperr"
	"github.com/averyclark/porchlight/internal/platform/dberr"
	"github.com/averyclark/porchlight/pkg/convert"
	"github.com/averyclark/porchlight/pkg/pointer"
)

type fakeRepository struct {
	recipes map[string]*recipe.Recipe

	searchTerms []string
	searchLimit int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{recipes: map[string]*recipe.Recipe{}}
}

func (f *fakeRepository) List(_ context.Context, _ recipe.Filter, _, _ int) ([]*recipe.Recipe, int, error) {
	out := make([]*recipe.Recipe, 0, len(f.recipes))
	for _, r := range f.recipes {
		out = append(out, r)
	}
	return out, len(out), nil
}

func (f *fakeRepository) GetBySlug(_ context.Context, slug string) (*recipe.Recipe, error) {
	r, ok := f.recipes[slug]
	if !ok {
		return nil, apperr.NotFound("recipe")
	}
	clone := *r
	return &clone, nil
}

func (f *fakeRepository) Create(_ context.Context, r *recipe.Recipe) error {
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	f.recipes[r.Slug] = r
	return nil
}

func (f *fakeRepository) Update(_ context.Context, r *recipe.Recipe) error {
	if _, ok := f.recipes[r.Slug]; !ok {
		return dberr.ErrNotFound
	}
	r.UpdatedAt = time.Now()
	f.recipes[r.Slug] = r
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, slug string) error {
	if _, ok := f.recipes[slug]; !ok {
		return dberr.ErrNotFound
	}
	delete(f.recipes, slug)
	return nil
}

func (f *fakeRepository) Search(_ context.Context, terms []string, limit int) ([]*recipe.Recipe, error) {
	f.searchTerms = terms
	f.searchLimit = limit
	return []*recipe.Recipe{}, nil
}

type fakeBlobStore struct {
	puts    int
	removed []string
}

func (f *fakeBlobStore) Put(_ context.Context, prefix, contentType string, _ []byte) (string, error) {
	f.puts++
	return "/uploads/" + prefix + "-test.png", nil
}

func (f *fakeBlobStore) Remove(_ context.Context, url string) error {
	f.removed = append(f.removed, url)
	return nil
}

func newTestService() (*recipe.Service, *fakeRepository, *fakeBlobStore) {
	repo := newFakeRepository()
	blobs := &fakeBlobStore{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return recipe.NewService(repo, blobs, logger), repo, blobs
}

func validInput() *recipe.Input {
	return &recipe.Input{
		Title:      "Smoked Brisket Chili",
		Category:   "dinner",
		Cuisine:    "american",
		Servings:   convert.FlexInt(6),
		Difficulty: recipe.DifficultyMedium,
		Ingredients: []recipe.IngredientInput{
			{Amount: "2", Unit: "lb", Item: "brisket"},
			{Amount: "1", Unit: "can", Item: "tomatoes"},
		},
		Instructions: []recipe.InstructionInput{
			{Title: "Smoke", Description: "Smoke the brisket."},
			{Title: "Simmer", Description: "Simmer everything."},
		},
		Tips: []string{"Rest the meat first."},
		Tags: []string{"BBQ", "Comfort Food", "bbq"},
	}
}

/*
TestService_CreateRecipe covers slug derivation, child ordering, and tag
deduplication on create.
*/
func TestService_CreateRecipe(t *testing.T) {
	service, repo, _ := newTestService()

	created, err := service.CreateRecipe(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, "smoked-brisket-chili", created.Slug)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 6, created.Servings)
	assert.Nil(t, created.PublishedAt)

	require.Len(t, created.Ingredients, 2)
	assert.Equal(t, 0, created.Ingredients[0].Order)
	assert.Equal(t, 1, created.Ingredients[1].Order)

	require.Len(t, created.Instructions, 2)
	assert.Equal(t, 1, created.Instructions[0].Step)
	assert.Equal(t, 2, created.Instructions[1].Step)

	// "bbq" repeats "BBQ" case-insensitively and is dropped.
	require.Len(t, created.Tags, 2)
	assert.Equal(t, "BBQ", created.Tags[0].Name)
	assert.Equal(t, "bbq", created.Tags[0].Slug)
	assert.Equal(t, "comfort-food", created.Tags[1].Slug)

	_, ok := repo.recipes[created.Slug]
	assert.True(t, ok)
}

/*
TestService_UpdateRecipe_ReplacesChildren checks the full-replace contract on
update: shrinking the ingredient list from three entries to two leaves
exactly two rows, with orders re-derived from the new array positions.
*/
func TestService_UpdateRecipe_ReplacesChildren(t *testing.T) {
	service, repo, _ := newTestService()

	input := validInput()
	input.Ingredients = []recipe.IngredientInput{
		{Amount: "2", Unit: "lb", Item: "brisket"},
		{Amount: "1", Unit: "can", Item: "tomatoes"},
		{Amount: "3", Unit: "tbsp", Item: "chili powder"},
	}
	created, err := service.CreateRecipe(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, created.Ingredients, 3)

	update := validInput()
	update.Ingredients = []recipe.IngredientInput{
		{Amount: "2", Unit: "lb", Item: "brisket"},
		{Amount: "3", Unit: "tbsp", Item: "chili powder"},
	}
	updated, err := service.UpdateRecipe(context.Background(), created.Slug, update)
	require.NoError(t, err)

	require.Len(t, updated.Ingredients, 2)
	assert.Equal(t, "brisket", updated.Ingredients[0].Item)
	assert.Equal(t, 0, updated.Ingredients[0].Order)
	assert.Equal(t, "chili powder", updated.Ingredients[1].Item)
	assert.Equal(t, 1, updated.Ingredients[1].Order)

	stored := repo.recipes[created.Slug]
	require.Len(t, stored.Ingredients, 2)
}

/*
TestService_CreateRecipe_Validation rejects payloads missing required fields
or carrying values outside the accepted sets.
*/
func TestService_CreateRecipe_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*recipe.Input)
		field  string
	}{
		{"missing_title", func(i *recipe.Input) { i.Title = "" }, "title"},
		{"bad_difficulty", func(i *recipe.Input) { i.Difficulty = "impossible" }, "difficulty"},
		{"negative_servings", func(i *recipe.Input) { i.Servings = convert.FlexInt(-1) }, "servings"},
		{"bad_hero_url", func(i *recipe.Input) { i.HeroImage = pointer.To("not a url") }, "heroImage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _ := newTestService()

			input := validInput()
			tt.mutate(input)

			_, err := service.CreateRecipe(context.Background(), input)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, 400, ae.HTTPStatus)
			require.NotEmpty(t, ae.Details)
			assert.Equal(t, tt.field, ae.Details[0].Field)
		})
	}
}

/*
TestService_PublishedAtTransitions verifies the publish timestamp is set once
on the draft-to-published transition and cleared on unpublish.
*/
func TestService_PublishedAtTransitions(t *testing.T) {
	service, _, _ := newTestService()

	created, err := service.CreateRecipe(context.Background(), validInput())
	require.NoError(t, err)
	require.Nil(t, created.PublishedAt)

	// Publish.
	input := validInput()
	input.Published = true
	published, err := service.UpdateRecipe(context.Background(), created.Slug, input)
	require.NoError(t, err)
	require.NotNil(t, published.PublishedAt)
	firstPublish := *published.PublishedAt

	// Update while published keeps the original timestamp.
	input.Description = "Now with more smoke."
	updated, err := service.UpdateRecipe(context.Background(), created.Slug, input)
	require.NoError(t, err)
	require.NotNil(t, updated.PublishedAt)
	assert.Equal(t, firstPublish, *updated.PublishedAt)

	// Unpublish clears it.
	input.Published = false
	unpublished, err := service.UpdateRecipe(context.Background(), created.Slug, input)
	require.NoError(t, err)
	assert.Nil(t, unpublished.PublishedAt)
}

/*
TestService_HeroImage covers the three accepted heroImage forms: hosted URL
stored as-is, data URI uploaded through the blob store, and null clearing.
*/
func TestService_HeroImage(t *testing.T) {
	service, _, blobs := newTestService()

	// Hosted URL passes through untouched.
	input := validInput()
	input.HeroImage = pointer.To("https://cdn.example.com/chili.jpg")
	created, err := service.CreateRecipe(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, created.HeroImage)
	assert.Equal(t, "https://cdn.example.com/chili.jpg", *created.HeroImage)
	assert.Zero(t, blobs.puts)

	// Data URI triggers an upload and stores the returned URL.
	payload := base64.StdEncoding.EncodeToString([]byte("fake-png-bytes"))
	input.HeroImage = pointer.To("data:image/png;base64," + payload)
	updated, err := service.UpdateRecipe(context.Background(), created.Slug, input)
	require.NoError(t, err)
	require.NotNil(t, updated.HeroImage)
	assert.Equal(t, "/uploads/recipe-test.png", *updated.HeroImage)
	assert.Equal(t, 1, blobs.puts)

	// Null clears the image and removes the replaced blob.
	input.HeroImage = nil
	cleared, err := service.UpdateRecipe(context.Background(), created.Slug, input)
	require.NoError(t, err)
	assert.Nil(t, cleared.HeroImage)
	assert.Contains(t, blobs.removed, "/uploads/recipe-test.png")
}

/*
TestService_GetRecipe_DraftVisibility hides unpublished recipes from public
callers while keeping them readable for admins.
*/
func TestService_GetRecipe_DraftVisibility(t *testing.T) {
	service, _, _ := newTestService()

	created, err := service.CreateRecipe(context.Background(), validInput())
	require.NoError(t, err)

	_, err = service.GetRecipe(context.Background(), created.Slug, false)
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, 404, ae.HTTPStatus)

	draft, err := service.GetRecipe(context.Background(), created.Slug, true)
	require.NoError(t, err)
	assert.Equal(t, created.Slug, draft.Slug)
}

/*
TestService_SearchRecipes splits the query on whitespace before delegating to
the repository, and short-circuits blank queries.
*/
func TestService_SearchRecipes(t *testing.T) {
	service, repo, _ := newTestService()

	results, err := service.SearchRecipes(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Nil(t, repo.searchTerms)

	_, err = service.SearchRecipes(context.Background(), "  smoked   chili ")
	require.NoError(t, err)
	assert.Equal(t, []string{"smoked", "chili"}, repo.searchTerms)
	assert.Equal(t, 10, repo.searchLimit)
}

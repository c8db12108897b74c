// Copyright (c) 2026 Porchlight. All rights reserved.

package recipe

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/averyclark/porchlight/internal/platform/apperr"
	"github.com/averyclark/porchlight/internal/platform/blob"
	"github.com/averyclark/porchlight/internal/platform/constants"
	"github.com/averyclark/porchlight/internal/platform/validate"
	"github.com/averyclark/porchlight/pkg/slug"
	"github.com/averyclark/porchlight/pkg/uuidv7"
)

type Service struct {
	repo   Repository
	blobs  blob.Store
	logger *slog.Logger
}

func NewService(repo Repository, blobs blob.Store, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		blobs:  blobs,
		logger: logger,
	}
}

func (service *Service) ListRecipes(context context.Context, filter Filter, limit, offset int) ([]*Recipe, int, error) {
	return service.repo.List(context, filter, limit, offset)
}

// GetRecipe returns the recipe by slug. Unpublished recipes are only visible
// when includeDrafts is set (admin callers).
func (service *Service) GetRecipe(context context.Context, recipeSlug string, includeDrafts bool) (*Recipe, error) {
	recipe, err := service.repo.GetBySlug(context, recipeSlug)
	if err != nil {
		return nil, err
	}
	if !recipe.Published && !includeDrafts {
		return nil, apperr.NotFound("recipe")
	}
	return recipe, nil
}

func (service *Service) CreateRecipe(context context.Context, input *Input) (*Recipe, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	recipe := &Recipe{
		ID:   uuidv7.New(),
		Slug: slug.From(input.Title),
	}
	applyInput(recipe, input)

	if input.Published {
		now := time.Now().UTC()
		recipe.PublishedAt = &now
	}

	if err := service.resolveHeroImage(context, recipe, input.HeroImage); err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, recipe); err != nil {
		return nil, err
	}

	service.logger.Info("recipe_created",
		slog.String("recipe_id", recipe.ID),
		slog.String("slug", recipe.Slug))
	return recipe, nil
}

func (service *Service) UpdateRecipe(context context.Context, recipeSlug string, input *Input) (*Recipe, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	recipe, err := service.repo.GetBySlug(context, recipeSlug)
	if err != nil {
		return nil, err
	}

	wasPublished := recipe.Published
	previousImage := recipe.HeroImage
	applyInput(recipe, input)

	// publishedAt is set once on the draft-to-published transition and
	// cleared on an explicit unpublish. Republishing resets the timestamp.
	switch {
	case input.Published && !wasPublished:
		now := time.Now().UTC()
		recipe.PublishedAt = &now
	case !input.Published:
		recipe.PublishedAt = nil
	}

	if err := service.resolveHeroImage(context, recipe, input.HeroImage); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, recipe); err != nil {
		return nil, err
	}

	service.cleanupReplacedImage(context, previousImage, recipe.HeroImage)

	service.logger.Info("recipe_updated",
		slog.String("recipe_id", recipe.ID),
		slog.String("slug", recipe.Slug))
	return recipe, nil
}

func (service *Service) DeleteRecipe(context context.Context, recipeSlug string) error {
	recipe, err := service.repo.GetBySlug(context, recipeSlug)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(context, recipeSlug); err != nil {
		return err
	}

	if recipe.HeroImage != nil {
		service.cleanupReplacedImage(context, recipe.HeroImage, nil)
	}

	service.logger.Warn("recipe_deleted", slog.String("slug", recipeSlug))
	return nil
}

// SearchRecipes splits the query on whitespace and requires every term to
// match somewhere in the recipe, its ingredients, or its tags.
func (service *Service) SearchRecipes(context context.Context, query string) ([]*Recipe, error) {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return []*Recipe{}, nil
	}
	return service.repo.Search(context, terms, constants.SearchResultLimit)
}

// resolveHeroImage maps the inbound heroImage value onto the entity: nil
// clears it, a data URI uploads a new blob, anything else is stored as-is.
func (service *Service) resolveHeroImage(context context.Context, recipe *Recipe, inbound *string) error {
	if inbound == nil {
		recipe.HeroImage = nil
		return nil
	}

	if !blob.IsDataURI(*inbound) {
		recipe.HeroImage = inbound
		return nil
	}

	contentType, data, err := blob.ParseDataURI(*inbound)
	if err != nil {
		return apperr.ValidationError(err.Error(), apperr.FieldError{
			Field: FieldHeroImage, Message: err.Error(),
		})
	}

	url, err := service.blobs.Put(context, "recipe", contentType, data)
	if err != nil {
		return apperr.Upstream("blob", err)
	}
	recipe.HeroImage = &url
	return nil
}

// cleanupReplacedImage removes the previous stored blob after a successful
// write when the image changed. Removal failures are logged, never surfaced.
func (service *Service) cleanupReplacedImage(context context.Context, previous, current *string) {
	if previous == nil {
		return
	}
	if current != nil && *current == *previous {
		return
	}
	if err := service.blobs.Remove(context, *previous); err != nil {
		service.logger.Warn("hero_image_cleanup_failed",
			slog.String("url", *previous),
			slog.String("error", err.Error()))
	}
}

// applyInput copies the payload onto the entity and derives ordering for the
// child collections from array position.
func applyInput(recipe *Recipe, input *Input) {
	recipe.Title = input.Title
	recipe.Description = input.Description
	recipe.Category = input.Category
	recipe.Cuisine = input.Cuisine
	recipe.PrepTime = input.PrepTime
	recipe.CookTime = input.CookTime
	recipe.TotalTime = input.TotalTime
	recipe.Servings = input.Servings.Int()
	recipe.Difficulty = input.Difficulty
	recipe.Featured = input.Featured
	recipe.Published = input.Published
	recipe.Nutrition = input.Nutrition

	recipe.Ingredients = make([]Ingredient, len(input.Ingredients))
	for i, ing := range input.Ingredients {
		recipe.Ingredients[i] = Ingredient{
			Amount: ing.Amount,
			Unit:   ing.Unit,
			Item:   ing.Item,
			Notes:  ing.Notes,
			Group:  ing.Group,
			Order:  i,
		}
	}

	recipe.Instructions = make([]Instruction, len(input.Instructions))
	for i, ins := range input.Instructions {
		recipe.Instructions[i] = Instruction{
			Step:        i + 1,
			Title:       ins.Title,
			Description: ins.Description,
			Time:        ins.Time,
		}
	}

	recipe.Tips = make([]Tip, len(input.Tips))
	for i, content := range input.Tips {
		recipe.Tips[i] = Tip{Content: content, Order: i}
	}

	recipe.Tags = make([]Tag, 0, len(input.Tags))
	seen := make(map[string]bool, len(input.Tags))
	for _, name := range input.Tags {
		name = strings.TrimSpace(name)
		if name == "" || seen[strings.ToLower(name)] {
			continue
		}
		seen[strings.ToLower(name)] = true
		recipe.Tags = append(recipe.Tags, Tag{Name: name, Slug: slug.From(name)})
	}
}

func validateInput(input *Input) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 300)
	validator.OneOf(FieldDifficulty, input.Difficulty, DifficultyEasy, DifficultyMedium, DifficultyHard)
	validator.Range(FieldServings, input.Servings.Int(), 0, 1000)

	// Hosted images may be absolute URLs or root-relative paths served by
	// the blob store; data URIs are validated at upload time.
	if input.HeroImage != nil && !blob.IsDataURI(*input.HeroImage) && !strings.HasPrefix(*input.HeroImage, "/") {
		validator.URL(FieldHeroImage, *input.HeroImage)
	}

	return validator.Err()
}

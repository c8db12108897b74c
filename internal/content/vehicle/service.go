package vehicle

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/averyclark/porchlight/internal/platform/apperr"
	"github.com/averyclark/porchlight/internal/platform/blob"
	"github.com/averyclark/porchlight/internal/platform/dberr"
	"github.com/averyclark/porchlight/internal/platform/validate"
	"github.com/averyclark/porchlight/pkg/slug"
	"github.com/averyclark/porchlight/pkg/uuidv7"
)

// maxSlugAttempts bounds the suffix retry loop on concurrent identical
// title creates.
const maxSlugAttempts = 50

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

func (service *Service) ListVehicles(context context.Context, filter Filter, limit, offset int) ([]*Vehicle, int, error) {
	return service.repo.List(context, filter, limit, offset)
}

func (service *Service) GetVehicle(context context.Context, vehicleSlug string) (*Vehicle, error) {
	return service.repo.GetBySlug(context, vehicleSlug)
}

func (service *Service) CreateVehicle(context context.Context, input *Input) (*Vehicle, error) {
	if err := validateVehicleInput(input); err != nil {
		return nil, err
	}

	vehicle := &Vehicle{
		ID:   uuidv7.New(),
		Slug: slug.From(input.Name),
	}
	applyVehicleInput(vehicle, input)

	if err := service.resolveImage(context, &vehicle.HeroImage, input.HeroImage, "vehicle"); err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, vehicle); err != nil {
		return nil, err
	}

	service.logger.Info("vehicle_created",
		slog.String("vehicle_id", vehicle.ID),
		slog.String("slug", vehicle.Slug))
	return vehicle, nil
}

// UpdateVehicle replaces the overview fields and rewrites the spec sheet and
// modification groups wholesale.
func (service *Service) UpdateVehicle(context context.Context, vehicleSlug string, input *Input) (*Vehicle, error) {
	if err := validateVehicleInput(input); err != nil {
		return nil, err
	}

	vehicle, err := service.repo.GetBySlug(context, vehicleSlug)
	if err != nil {
		return nil, err
	}

	previousImage := vehicle.HeroImage
	applyVehicleInput(vehicle, input)

	if err := service.resolveImage(context, &vehicle.HeroImage, input.HeroImage, "vehicle"); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, vehicle); err != nil {
		return nil, err
	}

	service.cleanupReplacedImage(context, previousImage, vehicle.HeroImage)

	service.logger.Info("vehicle_updated",
		slog.String("vehicle_id", vehicle.ID),
		slog.String("slug", vehicle.Slug))
	return vehicle, nil
}

func (service *Service) DeleteVehicle(context context.Context, vehicleSlug string) error {
	vehicle, err := service.repo.GetBySlug(context, vehicleSlug)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(context, vehicleSlug); err != nil {
		return err
	}

	service.cleanupReplacedImage(context, vehicle.HeroImage, nil)

	service.logger.Warn("vehicle_deleted", slog.String("slug", vehicleSlug))
	return nil
}

func (service *Service) ListPosts(context context.Context, vehicleSlug string, filter PostFilter, limit, offset int) ([]*Post, int, error) {
	vehicle, err := service.repo.GetBySlug(context, vehicleSlug)
	if err != nil {
		return nil, 0, err
	}
	return service.repo.ListPosts(context, vehicle.ID, filter, limit, offset)
}

// GetPost resolves the post by the vehicle-scoped slug pair. Drafts are only
// visible when includeDrafts is set (admin callers).
func (service *Service) GetPost(context context.Context, vehicleSlug, postSlug string, includeDrafts bool) (*Post, error) {
	vehicle, err := service.repo.GetBySlug(context, vehicleSlug)
	if err != nil {
		return nil, err
	}

	post, err := service.repo.GetPost(context, vehicle.ID, postSlug)
	if err != nil {
		return nil, err
	}
	if !post.Published && !includeDrafts {
		return nil, apperr.NotFound("post")
	}
	return post, nil
}

// CreatePost derives the post slug from the title, suffixing a counter until
// the insert lands. Slug uniqueness is per vehicle, enforced by the database;
// a concurrent create with the same title simply pushes this one to the next
// suffix.
func (service *Service) CreatePost(context context.Context, vehicleSlug string, input *PostInput) (*Post, error) {
	if err := validatePostInput(input); err != nil {
		return nil, err
	}

	vehicle, err := service.repo.GetBySlug(context, vehicleSlug)
	if err != nil {
		return nil, err
	}

	post := &Post{
		ID:        uuidv7.New(),
		VehicleID: vehicle.ID,
	}
	applyPostInput(post, input)

	if input.Published {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}

	if err := service.resolveImage(context, &post.HeroImage, input.HeroImage, "vehicle-post"); err != nil {
		return nil, err
	}

	base := slug.From(input.Title)
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		post.Slug = base
		if attempt > 0 {
			post.Slug = fmt.Sprintf("%s-%d", base, attempt)
		}

		err = service.repo.CreatePost(context, post)
		if err == nil {
			service.logger.Info("vehicle_post_created",
				slog.String("post_id", post.ID),
				slog.String("vehicle_slug", vehicleSlug),
				slog.String("slug", post.Slug))
			return post, nil
		}
		if !dberr.IsUniqueViolation(err) {
			return nil, err
		}
	}

	return nil, apperr.Conflict("Could not allocate a unique post slug")
}

func (service *Service) UpdatePost(context context.Context, vehicleSlug, postSlug string, input *PostInput) (*Post, error) {
	if err := validatePostInput(input); err != nil {
		return nil, err
	}

	vehicle, err := service.repo.GetBySlug(context, vehicleSlug)
	if err != nil {
		return nil, err
	}
	post, err := service.repo.GetPost(context, vehicle.ID, postSlug)
	if err != nil {
		return nil, err
	}

	wasPublished := post.Published
	previousImage := post.HeroImage
	applyPostInput(post, input)

	switch {
	case input.Published && !wasPublished:
		now := time.Now().UTC()
		post.PublishedAt = &now
	case !input.Published:
		post.PublishedAt = nil
	}

	if err := service.resolveImage(context, &post.HeroImage, input.HeroImage, "vehicle-post"); err != nil {
		return nil, err
	}

	if err := service.repo.UpdatePost(context, post); err != nil {
		return nil, err
	}

	service.cleanupReplacedImage(context, previousImage, post.HeroImage)

	service.logger.Info("vehicle_post_updated",
		slog.String("post_id", post.ID),
		slog.String("slug", post.Slug))
	return post, nil
}

func (service *Service) DeletePost(context context.Context, vehicleSlug, postSlug string) error {
	vehicle, err := service.repo.GetBySlug(context, vehicleSlug)
	if err != nil {
		return err
	}

	post, err := service.repo.GetPost(context, vehicle.ID, postSlug)
	if err != nil {
		return err
	}

	if err := service.repo.DeletePost(context, vehicle.ID, postSlug); err != nil {
		return err
	}

	service.cleanupReplacedImage(context, post.HeroImage, nil)

	service.logger.Warn("vehicle_post_deleted",
		slog.String("vehicle_slug", vehicleSlug),
		slog.String("slug", postSlug))
	return nil
}

func (service *Service) ListTags(context context.Context) ([]Tag, error) {
	return service.repo.ListTags(context)
}

// resolveImage maps an inbound image value onto target: nil clears it, a
// data URI uploads a new blob, anything else is stored as-is.
func (service *Service) resolveImage(context context.Context, target **string, inbound *string, prefix string) error {
	if inbound == nil {
		*target = nil
		return nil
	}

	if !blob.IsDataURI(*inbound) {
		*target = inbound
		return nil
	}

	contentType, data, err := blob.ParseDataURI(*inbound)
	if err != nil {
		return apperr.ValidationError(err.Error(), apperr.FieldError{
			Field: FieldHeroImage, Message: err.Error(),
		})
	}

	url, err := service.blobs.Put(context, prefix, contentType, data)
	if err != nil {
		return apperr.Upstream("blob", err)
	}
	*target = &url
	return nil
}

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

func applyVehicleInput(vehicle *Vehicle, input *Input) {
	vehicle.Name = input.Name
	vehicle.Category = input.Category

	vehicle.Gallery = input.Gallery
	if vehicle.Gallery == nil {
		vehicle.Gallery = []string{}
	}
	vehicle.Story = input.Story
	if vehicle.Story == nil {
		vehicle.Story = []string{}
	}

	vehicle.Specs = make([]Spec, len(input.Specs))
	for i, spec := range input.Specs {
		vehicle.Specs[i] = Spec{Label: spec.Label, Value: spec.Value, Order: i}
	}

	vehicle.Modifications = make([]Modification, len(input.Modifications))
	for i, mod := range input.Modifications {
		items := mod.Items
		if items == nil {
			items = []string{}
		}
		vehicle.Modifications[i] = Modification{Category: mod.Category, Items: items, Order: i}
	}
}

func applyPostInput(post *Post, input *PostInput) {
	post.Title = input.Title
	post.Excerpt = input.Excerpt
	post.Content = input.Content
	post.Published = input.Published
	post.Featured = input.Featured

	post.Tags = make([]Tag, 0, len(input.Tags))
	seen := make(map[string]bool, len(input.Tags))
	for _, name := range input.Tags {
		name = strings.TrimSpace(name)
		if name == "" || seen[strings.ToLower(name)] {
			continue
		}
		seen[strings.ToLower(name)] = true
		post.Tags = append(post.Tags, Tag{Name: name, Slug: slug.From(name)})
	}
}

func validateVehicleInput(input *Input) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 200)

	if input.HeroImage != nil && !blob.IsDataURI(*input.HeroImage) && !strings.HasPrefix(*input.HeroImage, "/") {
		validator.URL(FieldHeroImage, *input.HeroImage)
	}

	return validator.Err()
}

func validatePostInput(input *PostInput) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 300)

	if input.HeroImage != nil && !blob.IsDataURI(*input.HeroImage) && !strings.HasPrefix(*input.HeroImage, "/") {
		validator.URL(FieldHeroImage, *input.HeroImage)
	}

	return validator.Err()
}

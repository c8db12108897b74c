// Copyright (c) 2026 Porchlight. All rights reserved.

package project

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

func (service *Service) ListProjects(context context.Context, filter Filter, limit, offset int) ([]*Project, int, error) {
	return service.repo.List(context, filter, limit, offset)
}

func (service *Service) GetProject(context context.Context, projectSlug string, includeDrafts bool) (*Project, error) {
	project, err := service.repo.GetBySlug(context, projectSlug)
	if err != nil {
		return nil, err
	}
	if !project.Published && !includeDrafts {
		return nil, apperr.NotFound("project")
	}
	return project, nil
}

func (service *Service) CreateProject(context context.Context, input *Input) (*Project, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	project := &Project{
		ID:   uuidv7.New(),
		Slug: slug.From(input.Title),
	}
	applyInput(project, input)

	if input.Published {
		now := time.Now().UTC()
		project.PublishedAt = &now
	}

	if err := service.resolveImages(context, project); err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, project); err != nil {
		return nil, err
	}

	service.logger.Info("project_created",
		slog.String("project_id", project.ID),
		slog.String("slug", project.Slug))
	return project, nil
}

func (service *Service) UpdateProject(context context.Context, projectSlug string, input *Input) (*Project, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	project, err := service.repo.GetBySlug(context, projectSlug)
	if err != nil {
		return nil, err
	}

	wasPublished := project.Published
	applyInput(project, input)

	switch {
	case input.Published && !wasPublished:
		now := time.Now().UTC()
		project.PublishedAt = &now
	case !input.Published:
		project.PublishedAt = nil
	}

	if err := service.resolveImages(context, project); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, project); err != nil {
		return nil, err
	}

	service.logger.Info("project_updated",
		slog.String("project_id", project.ID),
		slog.String("slug", project.Slug))
	return project, nil
}

func (service *Service) DeleteProject(context context.Context, projectSlug string) error {
	project, err := service.repo.GetBySlug(context, projectSlug)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(context, projectSlug); err != nil {
		return err
	}

	for _, image := range project.Images {
		service.removeStoredImage(context, image.URL)
	}

	service.logger.Warn("project_deleted", slog.String("slug", projectSlug))
	return nil
}

func (service *Service) SearchProjects(context context.Context, query string) ([]*Project, error) {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return []*Project{}, nil
	}
	return service.repo.Search(context, terms, constants.SearchResultLimit)
}

// ListImages returns the gallery for a project.
func (service *Service) ListImages(context context.Context, projectSlug string) ([]Image, error) {
	project, err := service.repo.GetBySlug(context, projectSlug)
	if err != nil {
		return nil, err
	}
	return project.Images, nil
}

// ReplaceImages rewrites the gallery wholesale; each entry may carry a
// hosted URL or a data URI to upload.
func (service *Service) ReplaceImages(context context.Context, projectSlug string, inputs []ImageInput) ([]Image, error) {
	project, err := service.repo.GetBySlug(context, projectSlug)
	if err != nil {
		return nil, err
	}

	images := make([]Image, len(inputs))
	for i, input := range inputs {
		url, err := service.resolveImageURL(context, input.URL)
		if err != nil {
			return nil, err
		}
		images[i] = Image{URL: url, Alt: input.Alt, Caption: input.Caption, Order: i}
	}

	if err := service.repo.ReplaceImages(context, project.ID, images); err != nil {
		return nil, err
	}

	// Blobs dropped from the gallery are orphaned after the write; remove
	// them best-effort.
	kept := make(map[string]struct{}, len(images))
	for _, image := range images {
		kept[image.URL] = struct{}{}
	}
	for _, previous := range project.Images {
		if _, ok := kept[previous.URL]; !ok {
			service.removeStoredImage(context, previous.URL)
		}
	}

	service.logger.Info("project_images_replaced",
		slog.String("project_id", project.ID),
		slog.Int("count", len(images)))
	return images, nil
}

func (service *Service) ListUpdates(context context.Context, projectSlug string) ([]Update, error) {
	project, err := service.repo.GetBySlug(context, projectSlug)
	if err != nil {
		return nil, err
	}
	return service.repo.ListUpdates(context, project.ID)
}

func (service *Service) CreateUpdate(context context.Context, projectSlug string, input *UpdateInput) (*Update, error) {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 300)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	project, err := service.repo.GetBySlug(context, projectSlug)
	if err != nil {
		return nil, err
	}

	update := &Update{
		ID:        uuidv7.New(),
		Title:     input.Title,
		Content:   input.Content,
		Published: input.Published,
	}
	if err := service.repo.CreateUpdate(context, project.ID, update); err != nil {
		return nil, err
	}

	service.logger.Info("project_update_created",
		slog.String("project_id", project.ID),
		slog.String("update_id", update.ID))
	return update, nil
}

func (service *Service) DeleteUpdate(context context.Context, projectSlug, updateID string) error {
	project, err := service.repo.GetBySlug(context, projectSlug)
	if err != nil {
		return err
	}

	if err := service.repo.DeleteUpdate(context, project.ID, updateID); err != nil {
		return err
	}

	service.logger.Warn("project_update_deleted",
		slog.String("project_id", project.ID),
		slog.String("update_id", updateID))
	return nil
}

// removeStoredImage deletes an orphaned gallery blob after a successful
// write. Removal failures are logged, never surfaced.
func (service *Service) removeStoredImage(context context.Context, url string) {
	if err := service.blobs.Remove(context, url); err != nil {
		service.logger.Warn("project_image_cleanup_failed",
			slog.String("url", url),
			slog.String("error", err.Error()))
	}
}

// resolveImages uploads any gallery entries given as data URIs in place.
func (service *Service) resolveImages(context context.Context, project *Project) error {
	for i := range project.Images {
		url, err := service.resolveImageURL(context, project.Images[i].URL)
		if err != nil {
			return err
		}
		project.Images[i].URL = url
	}
	return nil
}

func (service *Service) resolveImageURL(context context.Context, value string) (string, error) {
	if !blob.IsDataURI(value) {
		return value, nil
	}

	contentType, data, err := blob.ParseDataURI(value)
	if err != nil {
		return "", apperr.ValidationError(err.Error(), apperr.FieldError{
			Field: FieldImages, Message: err.Error(),
		})
	}

	url, err := service.blobs.Put(context, "project", contentType, data)
	if err != nil {
		return "", apperr.Upstream("blob", err)
	}
	return url, nil
}

func applyInput(project *Project, input *Input) {
	project.Title = input.Title
	project.Description = input.Description
	project.LongDescription = input.LongDescription
	project.Category = input.Category
	project.Status = input.Status
	project.Featured = input.Featured
	project.Published = input.Published
	project.DemoURL = input.DemoURL
	project.GithubURL = input.GithubURL
	project.VideoURL = input.VideoURL
	project.Order = input.Order

	project.Technologies = make([]Technology, len(input.Technologies))
	for i, tech := range input.Technologies {
		project.Technologies[i] = Technology{
			Name:     tech.Name,
			Icon:     tech.Icon,
			Category: tech.Category,
			Order:    i,
		}
	}

	project.Features = make([]Feature, len(input.Features))
	for i, feature := range input.Features {
		project.Features[i] = Feature{
			Title:       feature.Title,
			Description: feature.Description,
			Order:       i,
		}
	}

	project.Images = make([]Image, len(input.Images))
	for i, image := range input.Images {
		project.Images[i] = Image{
			URL:     image.URL,
			Alt:     image.Alt,
			Caption: image.Caption,
			Order:   i,
		}
	}
}

func validateInput(input *Input) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 300)
	validator.OneOf(FieldCategory, input.Category,
		CategoryWeb, CategoryMobile, CategoryHardware, CategoryTool, CategoryOther)
	validator.OneOf(FieldStatus, input.Status,
		StatusPlanning, StatusInProgress, StatusCompleted, StatusOnHold, StatusArchived)

	if input.DemoURL != nil {
		validator.URL(FieldDemoURL, *input.DemoURL)
	}
	if input.GithubURL != nil {
		validator.URL(FieldGithub, *input.GithubURL)
	}
	if input.VideoURL != nil {
		validator.URL(FieldVideoURL, *input.VideoURL)
	}

	return validator.Err()
}

// Copyright (c) 2026 Porchlight. All rights reserved.

package project_test

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/averyclark/porchlight/internal/content/project"
	"github.com/averyclark/porchlight/internal/platform/apperr"
	"github.com/averyclark/porchlight/internal/platform/dberr"
	"github.com/averyclark/porchlight/pkg/pointer"
)

type fakeRepository struct {
	projects map[string]*project.Project
	updates  map[string][]project.Update
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		projects: map[string]*project.Project{},
		updates:  map[string][]project.Update{},
	}
}

func (f *fakeRepository) List(_ context.Context, _ project.Filter, _, _ int) ([]*project.Project, int, error) {
	out := make([]*project.Project, 0, len(f.projects))
	for _, p := range f.projects {
		out = append(out, p)
	}
	return out, len(out), nil
}

func (f *fakeRepository) GetBySlug(_ context.Context, slug string) (*project.Project, error) {
	p, ok := f.projects[slug]
	if !ok {
		return nil, apperr.NotFound("project")
	}
	clone := *p
	return &clone, nil
}

func (f *fakeRepository) Create(_ context.Context, p *project.Project) error {
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	f.projects[p.Slug] = p
	return nil
}

func (f *fakeRepository) Update(_ context.Context, p *project.Project) error {
	if _, ok := f.projects[p.Slug]; !ok {
		return dberr.ErrNotFound
	}
	p.UpdatedAt = time.Now()
	f.projects[p.Slug] = p
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, slug string) error {
	if _, ok := f.projects[slug]; !ok {
		return dberr.ErrNotFound
	}
	delete(f.projects, slug)
	return nil
}

func (f *fakeRepository) Search(_ context.Context, _ []string, _ int) ([]*project.Project, error) {
	return []*project.Project{}, nil
}

func (f *fakeRepository) ReplaceImages(_ context.Context, projectID string, images []project.Image) error {
	for _, p := range f.projects {
		if p.ID == projectID {
			p.Images = images
			return nil
		}
	}
	return dberr.ErrNotFound
}

func (f *fakeRepository) ListUpdates(_ context.Context, projectID string) ([]project.Update, error) {
	return f.updates[projectID], nil
}

func (f *fakeRepository) CreateUpdate(_ context.Context, projectID string, u *project.Update) error {
	u.CreatedAt = time.Now()
	f.updates[projectID] = append(f.updates[projectID], *u)
	return nil
}

func (f *fakeRepository) DeleteUpdate(_ context.Context, projectID, updateID string) error {
	for i, u := range f.updates[projectID] {
		if u.ID == updateID {
			f.updates[projectID] = append(f.updates[projectID][:i], f.updates[projectID][i+1:]...)
			return nil
		}
	}
	return dberr.ErrNotFound
}

type fakeBlobStore struct {
	puts    int
	removed []string
}

func (f *fakeBlobStore) Put(_ context.Context, prefix, _ string, _ []byte) (string, error) {
	f.puts++
	return "/uploads/" + prefix + "-test.png", nil
}

func (f *fakeBlobStore) Remove(_ context.Context, url string) error {
	f.removed = append(f.removed, url)
	return nil
}

func newTestService() (*project.Service, *fakeRepository, *fakeBlobStore) {
	repo := newFakeRepository()
	blobs := &fakeBlobStore{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return project.NewService(repo, blobs, logger), repo, blobs
}

func validInput() *project.Input {
	return &project.Input{
		Title:       "Trail Camera Network",
		Description: "Solar powered trail cameras.",
		Category:    project.CategoryHardware,
		Status:      project.StatusInProgress,
		Technologies: []project.TechnologyInput{
			{Name: "Go", Category: "backend"},
			{Name: "LoRa", Category: "radio"},
		},
		Features: []project.FeatureInput{
			{Title: "Mesh uplink"},
		},
	}
}

/*
TestService_CreateProject covers slug derivation, enum validation, and child
ordering from array position.
*/
func TestService_CreateProject(t *testing.T) {
	service, _, _ := newTestService()

	created, err := service.CreateProject(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, "trail-camera-network", created.Slug)
	require.Len(t, created.Technologies, 2)
	assert.Equal(t, 0, created.Technologies[0].Order)
	assert.Equal(t, 1, created.Technologies[1].Order)
	assert.Nil(t, created.PublishedAt)
}

/*
TestService_CreateProject_EnumValidation rejects values outside the category
and status enums.
*/
func TestService_CreateProject_EnumValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*project.Input)
		field  string
	}{
		{"bad_category", func(i *project.Input) { i.Category = "desktop" }, "category"},
		{"bad_status", func(i *project.Input) { i.Status = "someday" }, "status"},
		{"missing_title", func(i *project.Input) { i.Title = "" }, "title"},
		{"bad_demo_url", func(i *project.Input) { i.DemoURL = pointer.To("not-a-url") }, "demoUrl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _ := newTestService()

			input := validInput()
			tt.mutate(input)

			_, err := service.CreateProject(context.Background(), input)
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
TestService_ReplaceImages rewrites the gallery wholesale, uploading data URI
entries and re-deriving order from position.
*/
func TestService_ReplaceImages(t *testing.T) {
	service, repo, blobs := newTestService()

	created, err := service.CreateProject(context.Background(), validInput())
	require.NoError(t, err)

	payload := base64.StdEncoding.EncodeToString([]byte("fake-png-bytes"))
	images, err := service.ReplaceImages(context.Background(), created.Slug, []project.ImageInput{
		{URL: "https://cdn.example.com/one.jpg", Alt: "Camera one"},
		{URL: "data:image/png;base64," + payload, Alt: "Camera two"},
	})
	require.NoError(t, err)

	require.Len(t, images, 2)
	assert.Equal(t, 0, images[0].Order)
	assert.Equal(t, 1, images[1].Order)
	assert.Equal(t, "https://cdn.example.com/one.jpg", images[0].URL)
	assert.Equal(t, "/uploads/project-test.png", images[1].URL)
	assert.Equal(t, 1, blobs.puts)

	stored := repo.projects[created.Slug]
	assert.Len(t, stored.Images, 2)
}

/*
TestService_ReplaceImages_RemovesDroppedBlobs verifies that gallery entries
no longer referenced after a replace are removed from blob storage, while
entries carried over stay untouched.
*/
func TestService_ReplaceImages_RemovesDroppedBlobs(t *testing.T) {
	service, _, blobs := newTestService()

	input := validInput()
	input.Images = []project.ImageInput{
		{URL: "/uploads/project-old.png", Alt: "Old shot"},
		{URL: "/uploads/project-kept.png", Alt: "Kept shot"},
	}
	created, err := service.CreateProject(context.Background(), input)
	require.NoError(t, err)

	_, err = service.ReplaceImages(context.Background(), created.Slug, []project.ImageInput{
		{URL: "/uploads/project-kept.png", Alt: "Kept shot"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"/uploads/project-old.png"}, blobs.removed)
}

/*
TestService_DeleteProject_RemovesImages verifies a deleted project's gallery
blobs are removed after the row is gone.
*/
func TestService_DeleteProject_RemovesImages(t *testing.T) {
	service, repo, blobs := newTestService()

	input := validInput()
	input.Images = []project.ImageInput{
		{URL: "/uploads/project-a.png", Alt: "A"},
		{URL: "/uploads/project-b.png", Alt: "B"},
	}
	created, err := service.CreateProject(context.Background(), input)
	require.NoError(t, err)

	require.NoError(t, service.DeleteProject(context.Background(), created.Slug))

	assert.NotContains(t, repo.projects, created.Slug)
	assert.ElementsMatch(t, []string{"/uploads/project-a.png", "/uploads/project-b.png"}, blobs.removed)
}

/*
TestService_Updates covers the progress-note sub-resource lifecycle.
*/
func TestService_Updates(t *testing.T) {
	service, _, _ := newTestService()

	created, err := service.CreateProject(context.Background(), validInput())
	require.NoError(t, err)

	update, err := service.CreateUpdate(context.Background(), created.Slug, &project.UpdateInput{
		Title:     "First field deployment",
		Content:   "Two nodes online.",
		Published: true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, update.ID)

	updates, err := service.ListUpdates(context.Background(), created.Slug)
	require.NoError(t, err)
	require.Len(t, updates, 1)

	require.NoError(t, service.DeleteUpdate(context.Background(), created.Slug, update.ID))

	updates, err = service.ListUpdates(context.Background(), created.Slug)
	require.NoError(t, err)
	assert.Empty(t, updates)

	// Missing update id is a not-found.
	err = service.DeleteUpdate(context.Background(), created.Slug, update.ID)
	require.Error(t, err)
}

/*
TestService_PublishedAtTransitions mirrors the publish timestamp rules used
across the content domains.
*/
func TestService_PublishedAtTransitions(t *testing.T) {
	service, _, _ := newTestService()

	created, err := service.CreateProject(context.Background(), validInput())
	require.NoError(t, err)
	require.Nil(t, created.PublishedAt)

	input := validInput()
	input.Published = true
	published, err := service.UpdateProject(context.Background(), created.Slug, input)
	require.NoError(t, err)
	require.NotNil(t, published.PublishedAt)
	first := *published.PublishedAt

	updated, err := service.UpdateProject(context.Background(), created.Slug, input)
	require.NoError(t, err)
	require.NotNil(t, updated.PublishedAt)
	assert.Equal(t, first, *updated.PublishedAt)

	input.Published = false
	unpublished, err := service.UpdateProject(context.Background(), created.Slug, input)
	require.NoError(t, err)
	assert.Nil(t, unpublished.PublishedAt)
}

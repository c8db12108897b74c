package vehicle_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/averyclark/porchlight/internal/content/vehicle"
	"github.com/averyclark/porchlight/internal/platform/apperr"
	"github.com/averyclark/porchlight/internal/platform/dberr"
)

type fakeRepository struct {
	vehicles map[string]*vehicle.Vehicle
	posts    map[string]map[string]*vehicle.Post // vehicleID -> slug -> post
	tags     []vehicle.Tag
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		vehicles: map[string]*vehicle.Vehicle{},
		posts:    map[string]map[string]*vehicle.Post{},
	}
}

func (f *fakeRepository) List(_ context.Context, _ vehicle.Filter, _, _ int) ([]*vehicle.Vehicle, int, error) {
	out := make([]*vehicle.Vehicle, 0, len(f.vehicles))
	for _, v := range f.vehicles {
		out = append(out, v)
	}
	return out, len(out), nil
}

func (f *fakeRepository) GetBySlug(_ context.Context, slug string) (*vehicle.Vehicle, error) {
	v, ok := f.vehicles[slug]
	if !ok {
		return nil, apperr.NotFound("vehicle")
	}
	clone := *v
	return &clone, nil
}

func (f *fakeRepository) Create(_ context.Context, v *vehicle.Vehicle) error {
	v.CreatedAt = time.Now()
	v.UpdatedAt = v.CreatedAt
	f.vehicles[v.Slug] = v
	f.posts[v.ID] = map[string]*vehicle.Post{}
	return nil
}

func (f *fakeRepository) Update(_ context.Context, v *vehicle.Vehicle) error {
	if _, ok := f.vehicles[v.Slug]; !ok {
		return dberr.ErrNotFound
	}
	v.UpdatedAt = time.Now()
	f.vehicles[v.Slug] = v
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, slug string) error {
	if _, ok := f.vehicles[slug]; !ok {
		return dberr.ErrNotFound
	}
	delete(f.vehicles, slug)
	return nil
}

// uniqueViolation mimics the driver error the database raises when the
// per-vehicle slug index rejects an insert.
func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "vehiclepost_vehicleid_slug_key"}
}

func (f *fakeRepository) ListPosts(_ context.Context, vehicleID string, _ vehicle.PostFilter, _, _ int) ([]*vehicle.Post, int, error) {
	out := make([]*vehicle.Post, 0, len(f.posts[vehicleID]))
	for _, p := range f.posts[vehicleID] {
		out = append(out, p)
	}
	return out, len(out), nil
}

func (f *fakeRepository) GetPost(_ context.Context, vehicleID, postSlug string) (*vehicle.Post, error) {
	p, ok := f.posts[vehicleID][postSlug]
	if !ok {
		return nil, apperr.NotFound("post")
	}
	clone := *p
	return &clone, nil
}

func (f *fakeRepository) CreatePost(_ context.Context, p *vehicle.Post) error {
	if _, exists := f.posts[p.VehicleID][p.Slug]; exists {
		return uniqueViolation()
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	f.posts[p.VehicleID][p.Slug] = p
	return nil
}

func (f *fakeRepository) UpdatePost(_ context.Context, p *vehicle.Post) error {
	if _, ok := f.posts[p.VehicleID][p.Slug]; !ok {
		return dberr.ErrNotFound
	}
	p.UpdatedAt = time.Now()
	f.posts[p.VehicleID][p.Slug] = p
	return nil
}

func (f *fakeRepository) DeletePost(_ context.Context, vehicleID, postSlug string) error {
	if _, ok := f.posts[vehicleID][postSlug]; !ok {
		return dberr.ErrNotFound
	}
	delete(f.posts[vehicleID], postSlug)
	return nil
}

func (f *fakeRepository) ListTags(_ context.Context) ([]vehicle.Tag, error) {
	return f.tags, nil
}

type fakeBlobStore struct{}

func (fakeBlobStore) Put(_ context.Context, prefix, _ string, _ []byte) (string, error) {
	return "/uploads/" + prefix + "-test.png", nil
}

func (fakeBlobStore) Remove(context.Context, string) error { return nil }

func newTestService() (*vehicle.Service, *fakeRepository) {
	repo := newFakeRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return vehicle.NewService(repo, fakeBlobStore{}, logger), repo
}

func seedVehicle(t *testing.T, service *vehicle.Service) *vehicle.Vehicle {
	t.Helper()
	created, err := service.CreateVehicle(context.Background(), &vehicle.Input{
		Name:     "1987 Land Cruiser FJ60",
		Category: "truck",
		Specs: []vehicle.SpecInput{
			{Label: "Engine", Value: "2F 4.2L I6"},
			{Label: "Transmission", Value: "H55F 5-speed"},
		},
		Modifications: []vehicle.ModificationInput{
			{Category: "Suspension", Items: []string{"OME heavy springs"}},
		},
	})
	require.NoError(t, err)
	return created
}

/*
TestService_CreateVehicle covers slug derivation and child ordering from
array position.
*/
func TestService_CreateVehicle(t *testing.T) {
	service, _ := newTestService()

	created := seedVehicle(t, service)

	assert.Equal(t, "1987-land-cruiser-fj60", created.Slug)
	require.Len(t, created.Specs, 2)
	assert.Equal(t, 0, created.Specs[0].Order)
	assert.Equal(t, 1, created.Specs[1].Order)
	require.Len(t, created.Modifications, 1)
	assert.Equal(t, 0, created.Modifications[0].Order)
	assert.NotNil(t, created.Gallery)
	assert.NotNil(t, created.Story)
}

/*
TestService_CreatePost_SlugSuffixes verifies that repeated identical titles
produce the base slug, then -1, then -2, in creation order.
*/
func TestService_CreatePost_SlugSuffixes(t *testing.T) {
	service, _ := newTestService()
	v := seedVehicle(t, service)

	input := &vehicle.PostInput{Title: "Oil Change", Content: "Drained and filled."}

	first, err := service.CreatePost(context.Background(), v.Slug, input)
	require.NoError(t, err)
	assert.Equal(t, "oil-change", first.Slug)

	second, err := service.CreatePost(context.Background(), v.Slug, input)
	require.NoError(t, err)
	assert.Equal(t, "oil-change-1", second.Slug)

	third, err := service.CreatePost(context.Background(), v.Slug, input)
	require.NoError(t, err)
	assert.Equal(t, "oil-change-2", third.Slug)
}

/*
TestService_CreatePost_SlugScopedPerVehicle allows the same post slug on two
different vehicles.
*/
func TestService_CreatePost_SlugScopedPerVehicle(t *testing.T) {
	service, _ := newTestService()
	first := seedVehicle(t, service)

	other, err := service.CreateVehicle(context.Background(), &vehicle.Input{Name: "1972 BMW R75", Category: "motorcycle"})
	require.NoError(t, err)

	input := &vehicle.PostInput{Title: "Oil Change"}

	postA, err := service.CreatePost(context.Background(), first.Slug, input)
	require.NoError(t, err)
	postB, err := service.CreatePost(context.Background(), other.Slug, input)
	require.NoError(t, err)

	assert.Equal(t, "oil-change", postA.Slug)
	assert.Equal(t, "oil-change", postB.Slug)
}

/*
TestService_PostPublishedAt verifies publish timestamp transitions on the
blog posts.
*/
func TestService_PostPublishedAt(t *testing.T) {
	service, _ := newTestService()
	v := seedVehicle(t, service)

	input := &vehicle.PostInput{Title: "Carb Rebuild", Published: true}
	post, err := service.CreatePost(context.Background(), v.Slug, input)
	require.NoError(t, err)
	require.NotNil(t, post.PublishedAt)

	input.Published = false
	updated, err := service.UpdatePost(context.Background(), v.Slug, post.Slug, input)
	require.NoError(t, err)
	assert.Nil(t, updated.PublishedAt)
}

/*
TestService_GetPost_DraftVisibility hides unpublished posts from public
callers while keeping them readable for admins.
*/
func TestService_GetPost_DraftVisibility(t *testing.T) {
	service, _ := newTestService()
	v := seedVehicle(t, service)

	post, err := service.CreatePost(context.Background(), v.Slug, &vehicle.PostInput{Title: "Draft Notes"})
	require.NoError(t, err)

	_, err = service.GetPost(context.Background(), v.Slug, post.Slug, false)
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, 404, ae.HTTPStatus)

	draft, err := service.GetPost(context.Background(), v.Slug, post.Slug, true)
	require.NoError(t, err)
	assert.Equal(t, post.Slug, draft.Slug)
}

/*
TestService_CreateVehicle_Validation rejects a vehicle without a name.
*/
func TestService_CreateVehicle_Validation(t *testing.T) {
	service, _ := newTestService()

	_, err := service.CreateVehicle(context.Background(), &vehicle.Input{Category: "truck"})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, 400, ae.HTTPStatus)
}

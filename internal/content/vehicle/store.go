package vehicle

import "context"

// Repository is the storage contract for vehicles and their blog posts.
//
// Create, Update, CreatePost and UpdatePost persist the entity plus its
// child rows and tag connections inside a single transaction.
type Repository interface {
	List(ctx context.Context, f Filter, limit, offset int) ([]*Vehicle, int, error)
	GetBySlug(ctx context.Context, slug string) (*Vehicle, error)
	Create(ctx context.Context, v *Vehicle) error
	Update(ctx context.Context, v *Vehicle) error
	Delete(ctx context.Context, slug string) error

	ListPosts(ctx context.Context, vehicleID string, f PostFilter, limit, offset int) ([]*Post, int, error)
	GetPost(ctx context.Context, vehicleID, postSlug string) (*Post, error)
	CreatePost(ctx context.Context, p *Post) error
	UpdatePost(ctx context.Context, p *Post) error
	DeletePost(ctx context.Context, vehicleID, postSlug string) error

	ListTags(ctx context.Context) ([]Tag, error)
}

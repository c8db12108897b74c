// Copyright (c) 2026 Porchlight. All rights reserved.

package project

import "context"

// Repository is the storage contract for the project domain.
//
// Create and Update persist the parent row plus the technology, feature and
// image collections inside a single transaction. ReplaceImages rewrites the
// gallery alone.
type Repository interface {
	List(ctx context.Context, f Filter, limit, offset int) ([]*Project, int, error)
	GetBySlug(ctx context.Context, slug string) (*Project, error)
	Create(ctx context.Context, p *Project) error
	Update(ctx context.Context, p *Project) error
	Delete(ctx context.Context, slug string) error
	Search(ctx context.Context, terms []string, limit int) ([]*Project, error)

	ReplaceImages(ctx context.Context, projectID string, images []Image) error

	ListUpdates(ctx context.Context, projectID string) ([]Update, error)
	CreateUpdate(ctx context.Context, projectID string, u *Update) error
	DeleteUpdate(ctx context.Context, projectID, updateID string) error
}

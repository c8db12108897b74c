// Copyright (c) 2026 Porchlight. All rights reserved.

package recipe

import "context"

// Repository is the storage contract for the recipe domain.
//
// Create and Update persist the parent row, all child collections, and the
// tag connections inside a single transaction.
type Repository interface {
	List(ctx context.Context, f Filter, limit, offset int) ([]*Recipe, int, error)
	GetBySlug(ctx context.Context, slug string) (*Recipe, error)
	Create(ctx context.Context, r *Recipe) error
	Update(ctx context.Context, r *Recipe) error
	Delete(ctx context.Context, slug string) error
	Search(ctx context.Context, terms []string, limit int) ([]*Recipe, error)
}

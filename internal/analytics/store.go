package analytics

import (
	"context"
	"time"
)

// Repository is the storage contract for the analytics domain. Writes are
// inserts only.
type Repository interface {
	InsertPageView(ctx context.Context, pv *PageView) error
	InsertContentView(ctx context.Context, cv *ContentView) error

	// WindowStats aggregates events with createdAt in [from, to).
	WindowStats(ctx context.Context, from, to time.Time) (*WindowStats, error)
}

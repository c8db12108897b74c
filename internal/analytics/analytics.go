// Package analytics records page and content views and serves the admin
// dashboard aggregates. Events are append-only; nothing in the application
// mutates or deletes them.
package analytics

import "time"

// Event types accepted by the track endpoint.
const (
	EventPageView    = "pageview"
	EventContentView = "content"
)

// Content types accepted on a content view.
const (
	ContentTypeRecipe      = "recipe"
	ContentTypeProject     = "project"
	ContentTypeVehiclePost = "vehicle-post"
)

// PageView is one recorded page load.
type PageView struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	Referrer  string    `json:"referrer"`
	UserAgent string    `json:"userAgent"`
	IP        string    `json:"ip"`
	CreatedAt time.Time `json:"createdAt"`
}

// ContentView is one recorded view of a content entity.
type ContentView struct {
	ID          string    `json:"id"`
	ContentType string    `json:"contentType"`
	ContentID   string    `json:"contentId"`
	Slug        string    `json:"slug"`
	Referrer    string    `json:"referrer"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TrackInput is the inbound tracking payload. Referrer, user agent and IP
// are inferred from the request, never trusted from the body.
type TrackInput struct {
	Type        string `json:"type"`
	Path        string `json:"path"`
	ContentType string `json:"contentType"`
	ContentID   string `json:"contentId"`
	Slug        string `json:"slug"`
}

// PathCount is one row of the top-paths aggregate.
type PathCount struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

// SlugCount is one row of the top-content aggregate.
type SlugCount struct {
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// WindowStats are the aggregates for one lookback window.
type WindowStats struct {
	TotalPageViews int                    `json:"totalPageViews"`
	UniquePaths    int                    `json:"uniquePaths"`
	TopPaths       []PathCount            `json:"topPaths"`
	TopContent     map[string][]SlugCount `json:"topContent"`
}

// Stats is the dashboard response. Previous is present only when the caller
// asked for the prior window; delta math stays client-side.
type Stats struct {
	Period   string       `json:"period"`
	Current  WindowStats  `json:"current"`
	Previous *WindowStats `json:"previous,omitempty"`
}

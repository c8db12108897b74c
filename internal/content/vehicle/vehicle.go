// Package vehicle implements the garage section: vehicle pages with specs
// and modification lists, plus the per-vehicle blog.
package vehicle

import "time"

// Vehicle is a fully hydrated vehicle page.
type Vehicle struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	HeroImage *string   `json:"heroImage"`
	Gallery   []string  `json:"gallery"`
	Story     []string  `json:"story"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Specs         []Spec         `json:"specs"`
	Modifications []Modification `json:"modifications"`
}

// Spec is one label/value row of the spec sheet.
type Spec struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Order int    `json:"order"`
}

// Modification groups a list of installed parts under a category heading.
type Modification struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
	Order    int      `json:"order"`
}

// Post is a blog entry belonging to one vehicle. Slug is unique within the
// vehicle, not globally; title collisions get a numeric suffix.
type Post struct {
	ID          string     `json:"id"`
	VehicleID   string     `json:"vehicleId"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content"`
	HeroImage   *string    `json:"heroImage"`
	Published   bool       `json:"published"`
	Featured    bool       `json:"featured"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Tags []Tag `json:"tags"`
}

// Tag is a reusable label shared across posts of all vehicles.
type Tag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Filter holds the optional vehicle list predicates.
type Filter struct {
	Category string
}

// PostFilter holds the optional post list predicates.
//
// All (admin only) bypasses the default published=true restriction.
type PostFilter struct {
	Published *bool
	Featured  *bool
	All       bool
}

// Input is the admin create/update payload for a vehicle. Specs and
// modifications are replaced wholesale; order comes from array position.
type Input struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Gallery  []string `json:"gallery"`
	Story    []string `json:"story"`

	HeroImage *string `json:"heroImage"`

	Specs         []SpecInput         `json:"specs"`
	Modifications []ModificationInput `json:"modifications"`
}

// SpecInput is one inbound spec row; order comes from position.
type SpecInput struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ModificationInput is one inbound modification group; order comes from
// position.
type ModificationInput struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

// PostInput is the admin create/update payload for a blog post.
type PostInput struct {
	Title     string   `json:"title"`
	Excerpt   string   `json:"excerpt"`
	Content   string   `json:"content"`
	Published bool     `json:"published"`
	Featured  bool     `json:"featured"`
	Tags      []string `json:"tags"`

	HeroImage *string `json:"heroImage"`
}

// Field names used in validation errors.
const (
	FieldName      = "name"
	FieldTitle     = "title"
	FieldHeroImage = "heroImage"
)

// Package schema centralizes physical table and column names so that query
// text in the repositories never hard-codes identifiers.
package schema

// ContentRecipeTable represents the 'content.recipe' table
type ContentRecipeTable struct {
	Table       string
	ID          string
	Slug        string
	Title       string
	Description string
	Category    string
	Cuisine     string
	PrepTime    string
	CookTime    string
	TotalTime   string
	Servings    string
	Difficulty  string
	Featured    string
	Published   string
	HeroImage   string
	PublishedAt string
	CreatedAt   string
	UpdatedAt   string
}

// ContentRecipe is the schema definition for content.recipe
var ContentRecipe = ContentRecipeTable{
	Table:       "content.recipe",
	ID:          "id",
	Slug:        "slug",
	Title:       "title",
	Description: "description",
	Category:    "category",
	Cuisine:     "cuisine",
	PrepTime:    "preptime",
	CookTime:    "cooktime",
	TotalTime:   "totaltime",
	Servings:    "servings",
	Difficulty:  "difficulty",
	Featured:    "featured",
	Published:   "published",
	HeroImage:   "heroimage",
	PublishedAt: "publishedat",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

package schema

// ContentRecipeTagTable represents the 'content.recipetag' junction table
type ContentRecipeTagTable struct {
	Table    string
	RecipeID string
	TagID    string
}

// ContentRecipeTag is the schema definition for content.recipetag
var ContentRecipeTag = ContentRecipeTagTable{
	Table:    "content.recipetag",
	RecipeID: "recipeid",
	TagID:    "tagid",
}

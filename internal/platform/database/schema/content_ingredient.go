package schema

// ContentIngredientTable represents the 'content.ingredient' table
type ContentIngredientTable struct {
	Table      string
	ID         string
	RecipeID   string
	Amount     string
	Unit       string
	Item       string
	Notes      string
	GroupLabel string
	SortOrder  string
}

// ContentIngredient is the schema definition for content.ingredient
var ContentIngredient = ContentIngredientTable{
	Table:      "content.ingredient",
	ID:         "id",
	RecipeID:   "recipeid",
	Amount:     "amount",
	Unit:       "unit",
	Item:       "item",
	Notes:      "notes",
	GroupLabel: "grouplabel",
	SortOrder:  "sortorder",
}

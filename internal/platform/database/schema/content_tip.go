package schema

// ContentTipTable represents the 'content.tip' table
type ContentTipTable struct {
	Table     string
	ID        string
	RecipeID  string
	Content   string
	SortOrder string
}

// ContentTip is the schema definition for content.tip
var ContentTip = ContentTipTable{
	Table:     "content.tip",
	ID:        "id",
	RecipeID:  "recipeid",
	Content:   "content",
	SortOrder: "sortorder",
}

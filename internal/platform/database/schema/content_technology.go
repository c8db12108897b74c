package schema

// ContentTechnologyTable represents the 'content.technology' table
type ContentTechnologyTable struct {
	Table     string
	ID        string
	ProjectID string
	Name      string
	Icon      string
	Category  string
	SortOrder string
}

// ContentTechnology is the schema definition for content.technology
var ContentTechnology = ContentTechnologyTable{
	Table:     "content.technology",
	ID:        "id",
	ProjectID: "projectid",
	Name:      "name",
	Icon:      "icon",
	Category:  "category",
	SortOrder: "sortorder",
}

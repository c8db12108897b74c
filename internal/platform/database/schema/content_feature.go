package schema

// ContentFeatureTable represents the 'content.feature' table
type ContentFeatureTable struct {
	Table       string
	ID          string
	ProjectID   string
	Title       string
	Description string
	SortOrder   string
}

// ContentFeature is the schema definition for content.feature
var ContentFeature = ContentFeatureTable{
	Table:       "content.feature",
	ID:          "id",
	ProjectID:   "projectid",
	Title:       "title",
	Description: "description",
	SortOrder:   "sortorder",
}

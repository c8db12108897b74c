package schema

// ContentProjectImageTable represents the 'content.projectimage' table
type ContentProjectImageTable struct {
	Table     string
	ID        string
	ProjectID string
	URL       string
	Alt       string
	Caption   string
	SortOrder string
}

// ContentProjectImage is the schema definition for content.projectimage
var ContentProjectImage = ContentProjectImageTable{
	Table:     "content.projectimage",
	ID:        "id",
	ProjectID: "projectid",
	URL:       "url",
	Alt:       "alt",
	Caption:   "caption",
	SortOrder: "sortorder",
}

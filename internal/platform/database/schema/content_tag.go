package schema

// ContentTagTable represents the 'content.tag' table (recipe tags)
type ContentTagTable struct {
	Table string
	ID    string
	Name  string
	Slug  string
}

// ContentTag is the schema definition for content.tag
var ContentTag = ContentTagTable{
	Table: "content.tag",
	ID:    "id",
	Name:  "name",
	Slug:  "slug",
}

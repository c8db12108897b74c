package schema

// ContentProjectUpdateTable represents the 'content.projectupdate' table
type ContentProjectUpdateTable struct {
	Table     string
	ID        string
	ProjectID string
	Title     string
	Content   string
	Published string
	CreatedAt string
}

// ContentProjectUpdate is the schema definition for content.projectupdate
var ContentProjectUpdate = ContentProjectUpdateTable{
	Table:     "content.projectupdate",
	ID:        "id",
	ProjectID: "projectid",
	Title:     "title",
	Content:   "content",
	Published: "published",
	CreatedAt: "createdat",
}

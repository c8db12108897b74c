package schema

// ContentProjectTable represents the 'content.project' table
type ContentProjectTable struct {
	Table           string
	ID              string
	Slug            string
	Title           string
	Description     string
	LongDescription string
	Category        string
	Status          string
	Featured        string
	Published       string
	DemoURL         string
	GithubURL       string
	VideoURL        string
	SortOrder       string
	PublishedAt     string
	CreatedAt       string
	UpdatedAt       string
}

// ContentProject is the schema definition for content.project
var ContentProject = ContentProjectTable{
	Table:           "content.project",
	ID:              "id",
	Slug:            "slug",
	Title:           "title",
	Description:     "description",
	LongDescription: "longdescription",
	Category:        "category",
	Status:          "status",
	Featured:        "featured",
	Published:       "published",
	DemoURL:         "demourl",
	GithubURL:       "githuburl",
	VideoURL:        "videourl",
	SortOrder:       "sortorder",
	PublishedAt:     "publishedat",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
}

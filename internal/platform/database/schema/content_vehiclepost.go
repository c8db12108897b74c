package schema

// ContentVehiclePostTable represents the 'content.vehiclepost' table.
//
// Slug uniqueness is scoped per vehicle: UNIQUE(vehicleid, slug).
type ContentVehiclePostTable struct {
	Table       string
	ID          string
	VehicleID   string
	Slug        string
	Title       string
	Excerpt     string
	Content     string
	HeroImage   string
	Published   string
	Featured    string
	PublishedAt string
	CreatedAt   string
	UpdatedAt   string
}

// ContentVehiclePost is the schema definition for content.vehiclepost
var ContentVehiclePost = ContentVehiclePostTable{
	Table:       "content.vehiclepost",
	ID:          "id",
	VehicleID:   "vehicleid",
	Slug:        "slug",
	Title:       "title",
	Excerpt:     "excerpt",
	Content:     "content",
	HeroImage:   "heroimage",
	Published:   "published",
	Featured:    "featured",
	PublishedAt: "publishedat",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

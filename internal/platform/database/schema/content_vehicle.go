package schema

// ContentVehicleTable represents the 'content.vehicle' table
type ContentVehicleTable struct {
	Table     string
	ID        string
	Slug      string
	Name      string
	Category  string
	HeroImage string
	Gallery   string
	Story     string
	CreatedAt string
	UpdatedAt string
}

// ContentVehicle is the schema definition for content.vehicle
var ContentVehicle = ContentVehicleTable{
	Table:     "content.vehicle",
	ID:        "id",
	Slug:      "slug",
	Name:      "name",
	Category:  "category",
	HeroImage: "heroimage",
	Gallery:   "gallery",
	Story:     "story",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

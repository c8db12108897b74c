package schema

// ContentVehicleTagTable represents the 'content.vehicletag' table
type ContentVehicleTagTable struct {
	Table string
	ID    string
	Name  string
	Slug  string
}

// ContentVehicleTag is the schema definition for content.vehicletag
var ContentVehicleTag = ContentVehicleTagTable{
	Table: "content.vehicletag",
	ID:    "id",
	Name:  "name",
	Slug:  "slug",
}

package schema

// ContentVehiclePostTagTable represents the 'content.vehicleposttag' junction table
type ContentVehiclePostTagTable struct {
	Table  string
	PostID string
	TagID  string
}

// ContentVehiclePostTag is the schema definition for content.vehicleposttag
var ContentVehiclePostTag = ContentVehiclePostTagTable{
	Table:  "content.vehicleposttag",
	PostID: "postid",
	TagID:  "tagid",
}

package schema

// ContentVehicleModTable represents the 'content.vehiclemod' table
type ContentVehicleModTable struct {
	Table     string
	ID        string
	VehicleID string
	Category  string
	Items     string
	SortOrder string
}

// ContentVehicleMod is the schema definition for content.vehiclemod
var ContentVehicleMod = ContentVehicleModTable{
	Table:     "content.vehiclemod",
	ID:        "id",
	VehicleID: "vehicleid",
	Category:  "category",
	Items:     "items",
	SortOrder: "sortorder",
}

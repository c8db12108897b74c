package schema

// ContentVehicleSpecTable represents the 'content.vehiclespec' table
type ContentVehicleSpecTable struct {
	Table     string
	ID        string
	VehicleID string
	Label     string
	Value     string
	SortOrder string
}

// ContentVehicleSpec is the schema definition for content.vehiclespec
var ContentVehicleSpec = ContentVehicleSpecTable{
	Table:     "content.vehiclespec",
	ID:        "id",
	VehicleID: "vehicleid",
	Label:     "label",
	Value:     "value",
	SortOrder: "sortorder",
}

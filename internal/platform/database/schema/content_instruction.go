package schema

// ContentInstructionTable represents the 'content.instruction' table
type ContentInstructionTable struct {
	Table       string
	ID          string
	RecipeID    string
	Step        string
	Title       string
	Description string
	TimeHint    string
}

// ContentInstruction is the schema definition for content.instruction
var ContentInstruction = ContentInstructionTable{
	Table:       "content.instruction",
	ID:          "id",
	RecipeID:    "recipeid",
	Step:        "step",
	Title:       "title",
	Description: "description",
	TimeHint:    "timehint",
}

package schema

// ContentNutritionTable represents the 'content.nutrition' table (1:1 with recipe)
type ContentNutritionTable struct {
	Table         string
	RecipeID      string
	ServingSize   string
	Calories      string
	Protein       string
	Carbohydrates string
	Fat           string
	Fiber         string
	Sugar         string
	Sodium        string
}

// ContentNutrition is the schema definition for content.nutrition
var ContentNutrition = ContentNutritionTable{
	Table:         "content.nutrition",
	RecipeID:      "recipeid",
	ServingSize:   "servingsize",
	Calories:      "calories",
	Protein:       "protein",
	Carbohydrates: "carbohydrates",
	Fat:           "fat",
	Fiber:         "fiber",
	Sugar:         "sugar",
	Sodium:        "sodium",
}

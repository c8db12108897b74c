// Copyright (c) 2026 Porchlight. All rights reserved.

// Package recipe implements the recipe content domain: the published
// cooking section of the site plus its admin management workflow.
package recipe

import (
	"time"

	"github.com/averyclark/porchlight/pkg/convert"
)

// Difficulty levels accepted for a recipe.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Recipe is a fully hydrated recipe entity including child collections.
type Recipe struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Cuisine     string     `json:"cuisine"`
	PrepTime    string     `json:"prepTime"`
	CookTime    string     `json:"cookTime"`
	TotalTime   string     `json:"totalTime"`
	Servings    int        `json:"servings"`
	Difficulty  string     `json:"difficulty"`
	Featured    bool       `json:"featured"`
	Published   bool       `json:"published"`
	HeroImage   *string    `json:"heroImage"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Ingredients  []Ingredient  `json:"ingredients"`
	Instructions []Instruction `json:"instructions"`
	Tips         []Tip         `json:"tips"`
	Nutrition    *Nutrition    `json:"nutrition,omitempty"`
	Tags         []Tag         `json:"tags"`
}

// Ingredient is one line of the ingredient list. Order is derived from the
// array position in the admin payload at write time.
type Ingredient struct {
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
	Item   string `json:"item"`
	Notes  string `json:"notes"`
	Group  string `json:"group"`
	Order  int    `json:"order"`
}

// Instruction is one numbered step. Step is 1-based and derived from array
// position at write time.
type Instruction struct {
	Step        int    `json:"step"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Time        string `json:"time"`
}

// Tip is a free-form cooking note.
type Tip struct {
	Content string `json:"content"`
	Order   int    `json:"order"`
}

// Nutrition is the optional 1:1 nutrition facts block.
type Nutrition struct {
	ServingSize   string `json:"servingSize"`
	Calories      string `json:"calories"`
	Protein       string `json:"protein"`
	Carbohydrates string `json:"carbohydrates"`
	Fat           string `json:"fat"`
	Fiber         string `json:"fiber"`
	Sugar         string `json:"sugar"`
	Sodium        string `json:"sodium"`
}

// Tag is a reusable recipe label, connected many-to-many and upserted by name.
type Tag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Filter holds the optional list predicates.
//
// All (admin only) bypasses the default published=true restriction.
type Filter struct {
	Category  string
	Cuisine   string
	Featured  *bool
	Published *bool
	All       bool
}

// Input is the admin create/update payload. Update has full-document
// replace semantics: child collections are rewritten from the arrays given
// here, never diffed.
type Input struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Cuisine     string          `json:"cuisine"`
	PrepTime    string          `json:"prepTime"`
	CookTime    string          `json:"cookTime"`
	TotalTime   string          `json:"totalTime"`
	Servings    convert.FlexInt `json:"servings"`
	Difficulty  string          `json:"difficulty"`
	Featured    bool            `json:"featured"`
	Published   bool            `json:"published"`

	// HeroImage accepts a hosted URL, a base64 data URI (triggers an
	// upload), or null (clears the stored image).
	HeroImage *string `json:"heroImage"`

	Ingredients  []IngredientInput  `json:"ingredients"`
	Instructions []InstructionInput `json:"instructions"`
	Tips         []string           `json:"tips"`
	Nutrition    *Nutrition         `json:"nutrition"`
	Tags         []string           `json:"tags"`
}

// IngredientInput is one inbound ingredient row; order comes from position.
type IngredientInput struct {
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
	Item   string `json:"item"`
	Notes  string `json:"notes"`
	Group  string `json:"group"`
}

// InstructionInput is one inbound step; numbering comes from position.
type InstructionInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Time        string `json:"time"`
}

// Field names used in validation errors.
const (
	FieldTitle      = "title"
	FieldDifficulty = "difficulty"
	FieldServings   = "servings"
	FieldHeroImage  = "heroImage"
)

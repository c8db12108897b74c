// Copyright (c) 2026 Porchlight. All rights reserved.

// Package project implements the coding-projects portfolio section.
package project

import "time"

// Categories accepted for a project.
const (
	CategoryWeb      = "web"
	CategoryMobile   = "mobile"
	CategoryHardware = "hardware"
	CategoryTool     = "tool"
	CategoryOther    = "other"
)

// Statuses accepted for a project.
const (
	StatusPlanning   = "planning"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusOnHold     = "on-hold"
	StatusArchived   = "archived"
)

// Project is a fully hydrated portfolio project.
type Project struct {
	ID              string     `json:"id"`
	Slug            string     `json:"slug"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	LongDescription string     `json:"longDescription"`
	Category        string     `json:"category"`
	Status          string     `json:"status"`
	Featured        bool       `json:"featured"`
	Published       bool       `json:"published"`
	DemoURL         *string    `json:"demoUrl"`
	GithubURL       *string    `json:"githubUrl"`
	VideoURL        *string    `json:"videoUrl"`
	Order           int        `json:"order"`
	PublishedAt     *time.Time `json:"publishedAt"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`

	Technologies []Technology `json:"technologies"`
	Features     []Feature    `json:"features"`
	Images       []Image      `json:"images"`
	Updates      []Update     `json:"updates"`
}

// Technology is one stack entry shown on the project page.
type Technology struct {
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	Category string `json:"category"`
	Order    int    `json:"order"`
}

// Feature is one highlighted capability.
type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

// Image is one gallery entry.
type Image struct {
	URL     string `json:"url"`
	Alt     string `json:"alt"`
	Caption string `json:"caption"`
	Order   int    `json:"order"`
}

// Update is a dated progress note attached to the project.
type Update struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"createdAt"`
}

// Filter holds the optional list predicates.
//
// All (admin only) bypasses the default published=true restriction.
type Filter struct {
	Category  string
	Status    string
	Featured  *bool
	Published *bool
	All       bool
}

// Input is the admin create/update payload. Child collections are replaced
// wholesale; order comes from array position.
type Input struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	LongDescription string `json:"longDescription"`
	Category        string `json:"category"`
	Status          string `json:"status"`
	Featured        bool   `json:"featured"`
	Published       bool   `json:"published"`
	Order           int    `json:"order"`

	DemoURL   *string `json:"demoUrl"`
	GithubURL *string `json:"githubUrl"`
	VideoURL  *string `json:"videoUrl"`

	Technologies []TechnologyInput `json:"technologies"`
	Features     []FeatureInput    `json:"features"`
	Images       []ImageInput      `json:"images"`
}

// TechnologyInput is one inbound stack entry; order comes from position.
type TechnologyInput struct {
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	Category string `json:"category"`
}

// FeatureInput is one inbound feature; order comes from position.
type FeatureInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ImageInput is one inbound gallery entry; URL may be a hosted URL or a
// base64 data URI (triggers an upload).
type ImageInput struct {
	URL     string `json:"url"`
	Alt     string `json:"alt"`
	Caption string `json:"caption"`
}

// UpdateInput is the payload for a new progress note.
type UpdateInput struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
}

// Field names used in validation errors.
const (
	FieldTitle    = "title"
	FieldCategory = "category"
	FieldStatus   = "status"
	FieldDemoURL  = "demoUrl"
	FieldGithub   = "githubUrl"
	FieldVideoURL = "videoUrl"
	FieldImages   = "images"
)

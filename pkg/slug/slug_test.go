// Copyright (c) 2026 Porchlight. All rights reserved.

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/averyclark/porchlight/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple_title", "Spicy Ramen", "spicy-ramen"},
		{"mixed_case", "My 1969 Bronco", "my-1969-bronco"},
		{"punctuation", "Mac & Cheese!", "mac-cheese"},
		{"accents", "Crème Brûlée", "creme-brulee"},
		{"leading_trailing_junk", "  --Oil Change--  ", "oil-change"},
		{"consecutive_separators", "one -- two__three", "one-two-three"},
		{"already_a_slug", "oil-change-2", "oil-change-2"},
		{"only_symbols", "!!!", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}

// Every non-empty output must match the canonical slug shape, and running
// the transformation a second time must be a no-op.
func TestFrom_ShapeAndIdempotence(t *testing.T) {
	inputs := []string{
		"Spicy Ramen",
		"Crème Brûlée",
		"1969 Ford Bronco — Restoration Log #3",
		"  weird   spacing\tand\ttabs  ",
		"ALL CAPS TITLE",
		"日本語タイトル mixed with latin",
	}

	for _, input := range inputs {
		out := slug.From(input)
		if out != "" {
			assert.True(t, slug.IsValid(out), "slug %q from %q is not canonical", out, input)
		}
		assert.Equal(t, out, slug.From(out), "From is not idempotent for %q", input)
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, slug.IsValid("spicy-ramen"))
	assert.True(t, slug.IsValid("a1"))
	assert.False(t, slug.IsValid("-leading"))
	assert.False(t, slug.IsValid("trailing-"))
	assert.False(t, slug.IsValid("double--hyphen"))
	assert.False(t, slug.IsValid("Upper-Case"))
	assert.False(t, slug.IsValid(""))
}

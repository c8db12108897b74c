// Copyright (c) 2026 Porchlight. All rights reserved.

package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestBuildSearchWhere checks that every term becomes one AND-joined group of
OR-matched fields with its own positional argument.
*/
func TestBuildSearchWhere(t *testing.T) {
	clause, args := buildSearchWhere([]string{"smoked", "chili"})

	require.Equal(t, []any{"%smoked%", "%chili%"}, args)

	// Two parenthesized groups joined by AND.
	assert.Contains(t, clause, ") AND (")
	assert.Contains(t, clause, "r.title ILIKE $1")
	assert.Contains(t, clause, "r.title ILIKE $2")

	// Related ingredient items and tag names are searched too.
	assert.Contains(t, clause, "content.ingredient")
	assert.Contains(t, clause, "content.tag")
}

/*
TestBuildSearchWhere_EscapesLikeMetacharacters ensures user terms match as
literal substrings: "100%" must not degenerate into a match-everything
pattern, and underscores must not act as single-character wildcards.
*/
func TestBuildSearchWhere_EscapesLikeMetacharacters(t *testing.T) {
	tests := []struct {
		name     string
		term     string
		expected string
	}{
		{"percent", "100%", `%100\%%`},
		{"underscore", "pad_thai", `%pad\_thai%`},
		{"backslash", `a\b`, `%a\\b%`},
		{"plain", "taco", "%taco%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, args := buildSearchWhere([]string{tt.term})
			require.Len(t, args, 1)
			assert.Equal(t, tt.expected, args[0])
		})
	}
}

func TestBuildSearchWhere_SingleTerm(t *testing.T) {
	clause, args := buildSearchWhere([]string{"taco"})

	require.Len(t, args, 1)
	assert.Equal(t, "%taco%", args[0])
	assert.NotContains(t, clause, " AND (")
}

// Copyright (c) 2026 Porchlight. All rights reserved.

package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/averyclark/porchlight/internal/platform/config"
)

func TestConfig_AllowedExtraOrigins(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{"unset", "", nil},
		{"single", "https://porchlight.site", []string{"https://porchlight.site"}},
		{
			"multiple_with_whitespace",
			" https://porchlight.site , http://localhost:3000 ",
			[]string{"https://porchlight.site", "http://localhost:3000"},
		},
		{"dangling_comma", "https://porchlight.site,", []string{"https://porchlight.site"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{ExtraOrigins: tt.raw}
			assert.Equal(t, tt.expected, cfg.AllowedExtraOrigins())
		})
	}
}

func TestConfig_EnvironmentChecks(t *testing.T) {
	dev := &config.Config{Environment: "development"}
	assert.True(t, dev.IsDevelopment())
	assert.False(t, dev.IsProduction())

	prod := &config.Config{Environment: "production"}
	assert.True(t, prod.IsProduction())
	assert.False(t, prod.IsDevelopment())
}

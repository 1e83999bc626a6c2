// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 qiao-925

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_LoadAndSave(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "repos.yaml")

	cfg := Config{
		Version:     1,
		Root:        "~/repos",
		Concurrency: 8,
		SkipForks:   true,
		Groups: map[string]Group{
			"go": {
				Repos:     []string{"spf13/cobra"},
				Owners:    []string{"golang"},
				Languages: []string{"Go"},
			},
		},
	}

	err := cfg.Save(cfgPath)
	require.NoError(t, err)

	loaded, err := Load(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, cfg.Version, loaded.Version)
	assert.Equal(t, cfg.Root, loaded.Root)
	assert.Equal(t, cfg.Concurrency, loaded.Concurrency)
	assert.True(t, loaded.SkipForks)
	assert.Equal(t, cfg.Groups["go"], loaded.Groups["go"])
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid config",
			cfg: Config{
				Version: 1,
				Root:    "repos",
				Groups:  map[string]Group{"go": {Repos: []string{"spf13/cobra"}}},
			},
			wantErr: "",
		},
		{
			name:    "unsupported version",
			cfg:     Config{Version: 99, Root: "repos", Groups: map[string]Group{"go": {Repos: []string{"a/b"}}}},
			wantErr: "unsupported config version",
		},
		{
			name:    "missing root",
			cfg:     Config{Version: 1, Groups: map[string]Group{"go": {Repos: []string{"a/b"}}}},
			wantErr: "root directory is required",
		},
		{
			name:    "no groups",
			cfg:     Config{Version: 1, Root: "repos"},
			wantErr: "at least one group is required",
		},
		{
			name:    "empty group",
			cfg:     Config{Version: 1, Root: "repos", Groups: map[string]Group{"go": {}}},
			wantErr: "needs repos or owners",
		},
		{
			name:    "group name with separator",
			cfg:     Config{Version: 1, Root: "repos", Groups: map[string]Group{"a/b": {Repos: []string{"a/b"}}}},
			wantErr: "path separators",
		},
		{
			name:    "negative concurrency",
			cfg:     Config{Version: 1, Root: "repos", Concurrency: -1, Groups: map[string]Group{"go": {Repos: []string{"a/b"}}}},
			wantErr: "concurrency",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidatePathComponent(t *testing.T) {
	assert.NoError(t, ValidatePathComponent("archive-2024"))
	assert.Error(t, ValidatePathComponent(""))
	assert.Error(t, ValidatePathComponent(".."))
	assert.Error(t, ValidatePathComponent("a/b"))
	assert.Error(t, ValidatePathComponent(`a\b`))
}

func TestConfig_EffectiveConcurrency(t *testing.T) {
	assert.Equal(t, DefaultConcurrency, (&Config{}).EffectiveConcurrency())
	assert.Equal(t, 2, (&Config{Concurrency: 2}).EffectiveConcurrency())
}

func TestConfig_SaveFormat(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "repos.yaml")

	cfg := Config{
		Version: 1,
		Root:    "repos",
		Groups:  map[string]Group{"go": {Repos: []string{"spf13/cobra"}}},
	}

	err := cfg.Save(cfgPath)
	require.NoError(t, err)

	content, err := os.ReadFile(cfgPath) //nolint:gosec // test file path
	require.NoError(t, err)

	output := string(content)
	assert.Contains(t, output, "version: 1")
	assert.Contains(t, output, "root: repos")
	assert.Contains(t, output, "  go:")
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 qiao-925

// Package config handles the repos.yaml configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// CurrentConfigVersion is the current version of the config file format.
const CurrentConfigVersion = 1

// DefaultConcurrency is the clone/check parallelism used when the config
// does not set one.
const DefaultConcurrency = 4

// Config represents the repos.yaml configuration file.
type Config struct {
	Version      int              `yaml:"version"`
	Root         string           `yaml:"root"`
	Concurrency  int              `yaml:"concurrency,omitempty"`
	SkipForks    bool             `yaml:"skip_forks,omitempty"`
	SkipArchived bool             `yaml:"skip_archived,omitempty"`
	Groups       map[string]Group `yaml:"groups"`
}

// Group is one classification group: clones of its repositories live under
// <root>/<group name>.
type Group struct {
	// Repos lists repositories pinned to this group, as "owner/name"
	// shorthand or full clone URLs.
	Repos []string `yaml:"repos,omitempty"`
	// Owners lists GitHub users or organizations whose repositories are
	// discovered via the API and classified into this group.
	Owners []string `yaml:"owners,omitempty"`
	// Languages restricts discovered repositories to these primary
	// languages (case-insensitive). Empty means any language.
	Languages []string `yaml:"languages,omitempty"`
}

// Load reads a Config from a file path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the Config to a file path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(c)
}

// EffectiveConcurrency returns the configured parallelism, falling back to
// DefaultConcurrency.
func (c *Config) EffectiveConcurrency() int {
	if c.Concurrency > 0 {
		return c.Concurrency
	}
	return DefaultConcurrency
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	if c.Version != CurrentConfigVersion {
		return errors.New("unsupported config version")
	}
	if c.Root == "" {
		return errors.New("root directory is required")
	}
	if c.Concurrency < 0 {
		return errors.New("concurrency must not be negative")
	}
	if len(c.Groups) == 0 {
		return errors.New("at least one group is required")
	}
	for name, group := range c.Groups {
		if err := ValidatePathComponent(name); err != nil {
			return fmt.Errorf("group %q: %w", name, err)
		}
		if len(group.Repos) == 0 && len(group.Owners) == 0 {
			return fmt.Errorf("group %q: needs repos or owners", name)
		}
	}
	return nil
}

// ValidatePathComponent rejects names that cannot be used as a single
// directory name under the root.
func ValidatePathComponent(name string) error {
	if name == "" {
		return errors.New("name is empty")
	}
	if name == "." || name == ".." {
		return errors.New("name must not be a relative path element")
	}
	if strings.ContainsAny(name, `/\`) {
		return errors.New("name must not contain path separators")
	}
	return nil
}

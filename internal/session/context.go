// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 qiao-925

// Package session provides workspace context loading for CLI commands.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/qiao-925/gh-repos-batch-clone/internal/config"
)

var (
	// ErrNotInitialized indicates no repos.yaml was found in the current directory.
	ErrNotInitialized = errors.New("not in a repos workspace (repos.yaml not found)")

	// ErrInvalidConfig indicates the config file exists but is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ConfigFileName is the name of the repos configuration file.
const ConfigFileName = "repos.yaml"

// contextKey is used to store Context in context.Context.
type contextKey struct{}

// Context holds the loaded configuration and the resolved clone root.
type Context struct {
	// Config is the validated repos.yaml configuration.
	Config *config.Config

	// Root is the absolute clone root directory.
	Root string
}

// Load loads the workspace context from the current working directory and
// returns a new context.Context with it stored.
func Load(ctx context.Context) (context.Context, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	configPath := filepath.Join(cwd, ConfigFileName)
	if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
		return nil, ErrNotInitialized
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, validateErr)
	}

	root, err := resolveRoot(cfg.Root, cwd)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	sessCtx := &Context{
		Config: cfg,
		Root:   root,
	}

	return context.WithValue(ctx, contextKey{}, sessCtx), nil
}

// resolveRoot makes the configured root absolute, expanding a leading "~".
func resolveRoot(root, cwd string) (string, error) {
	if root == "~" || strings.HasPrefix(root, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot expand ~ in root: %w", err)
		}
		root = filepath.Join(home, strings.TrimPrefix(root, "~"))
	}
	if !filepath.IsAbs(root) {
		root = filepath.Join(cwd, root)
	}
	return filepath.Clean(root), nil
}

// From extracts the session Context from a context.Context.
// Returns nil if no Context is stored.
func From(ctx context.Context) *Context {
	if sessCtx, ok := ctx.Value(contextKey{}).(*Context); ok {
		return sessCtx
	}
	return nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 qiao-925

// Package internal contains the main application logic for the CLI.
package internal

import (
	"context"

	"github.com/qiao-925/gh-repos-batch-clone/internal/commands"
)

// Run is the main application logic, extracted for testability.
func Run(ctx context.Context) error {
	rootCmd := commands.NewRootCmd()
	return rootCmd.ExecuteContext(ctx)
}

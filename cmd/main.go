// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 qiao-925

// Package main is the entry point for the repos CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/qiao-925/gh-repos-batch-clone/cmd/internal"
)

func main() {
	if err := internal.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

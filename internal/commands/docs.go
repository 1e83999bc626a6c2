// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 qiao-925

package commands

import (
	"os"
	"path/filepath"
)

// FallbackDescription is used when no README.md is available.
const FallbackDescription = "GitHub repository batch classification clone tool"

// LongDescription returns the contents of README.md in dir for use as the
// generated documentation preamble. A missing file yields
// FallbackDescription instead of an error.
func LongDescription(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "README.md")) //nolint:gosec // dir is provided by caller
	if err != nil {
		return FallbackDescription
	}
	return string(data)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 qiao-925

package commands

import (
	"context"
	"os"

	"github.com/qiao-925/gh-repos-batch-clone/internal/github"
	"github.com/qiao-925/gh-repos-batch-clone/internal/manifest"
	"github.com/qiao-925/gh-repos-batch-clone/internal/session"
)

// resolveManifest resolves the workspace manifest. offline skips GitHub
// discovery and uses explicit config entries only.
func resolveManifest(ctx context.Context, sess *session.Context, offline bool) (*manifest.Manifest, error) {
	var lister manifest.Lister
	if !offline {
		lister = github.New("", os.Getenv(github.TokenEnvVar))
	}
	return manifest.Resolve(ctx, sess.Config, lister)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 qiao-925

// Package runner executes one task per repository with bounded
// parallelism and collects per-repository results.
package runner

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/qiao-925/gh-repos-batch-clone/internal/manifest"
)

// Outcome classifies the result of one repository task.
type Outcome string

const (
	OutcomeCloned  Outcome = "cloned"
	OutcomeUpdated Outcome = "updated"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// Result is the outcome of one repository task.
type Result struct {
	Repo    manifest.Repo
	Outcome Outcome
	// Detail is a short human-readable note (skip reason, pulled branch).
	Detail string
	Err    error
}

// Task processes a single repository. Failures are reported through the
// Result, not by aborting the batch.
type Task func(ctx context.Context, repo manifest.Repo) Result

// Run executes task for every repo with at most limit running at once.
// Results are returned in input order. A failing repo never cancels its
// siblings; only context cancellation stops the batch early.
func Run(ctx context.Context, repos []manifest.Repo, limit int, task Task) []Result {
	if limit < 1 {
		limit = 1
	}

	results := make([]Result, len(repos))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, repo := range repos {
		i, repo := i, repo
		if ctx.Err() != nil {
			results[i] = Result{Repo: repo, Outcome: OutcomeFailed, Err: ctx.Err()}
			continue
		}
		g.Go(func() error {
			log.Debug().Str("repo", repo.FullName()).Msg("task start")
			results[i] = task(ctx, repo)
			log.Debug().
				Str("repo", repo.FullName()).
				Str("outcome", string(results[i].Outcome)).
				Err(results[i].Err).
				Msg("task done")
			return nil
		})
	}

	_ = g.Wait() // tasks never return errors
	return results
}

// Summary counts results per outcome.
func Summary(results []Result) map[Outcome]int {
	counts := map[Outcome]int{}
	for _, r := range results {
		counts[r.Outcome]++
	}
	return counts
}

// Failed reports whether any result carries OutcomeFailed.
func Failed(results []Result) bool {
	for _, r := range results {
		if r.Outcome == OutcomeFailed {
			return true
		}
	}
	return false
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 qiao-925

package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/qiao-925/gh-repos-batch-clone/internal/github"
	"github.com/qiao-925/gh-repos-batch-clone/internal/gitops"
	"github.com/qiao-925/gh-repos-batch-clone/internal/manifest"
	"github.com/qiao-925/gh-repos-batch-clone/internal/runner"
	"github.com/qiao-925/gh-repos-batch-clone/internal/session"
)

type syncOptions struct {
	offline bool
}

func newSyncCmd() *cobra.Command {
	opts := &syncOptions{}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Pull every clean clone",
		Long: `Fast-forward pull every repository whose worktree is clean.
Dirty and detached clones are reported and left untouched; missing
clones are skipped (use "repos clone" first).`,
		Example: `  # Pull all clean clones
  repos sync`,
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runSync(cmd.Context(), sess, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.offline, "offline", false, "Skip GitHub discovery; use explicit entries only")

	return cmd
}

func runSync(ctx context.Context, sess *session.Context, opts *syncOptions) error {
	m, err := resolveManifest(ctx, sess, opts.offline)
	if err != nil {
		return err
	}

	git := gitops.New(os.Getenv(github.TokenEnvVar))
	task := func(ctx context.Context, repo manifest.Repo) runner.Result {
		dir := repo.Dir(sess.Root)

		st, err := git.Status(dir)
		if err != nil {
			return runner.Result{Repo: repo, Outcome: runner.OutcomeFailed, Err: err}
		}
		if st.State != gitops.StateClean {
			return runner.Result{Repo: repo, Outcome: runner.OutcomeSkipped, Detail: string(st.State)}
		}

		updated, err := git.Pull(ctx, dir)
		if err != nil {
			return runner.Result{Repo: repo, Outcome: runner.OutcomeFailed, Err: err}
		}
		if !updated {
			return runner.Result{Repo: repo, Outcome: runner.OutcomeSkipped, Detail: "up to date"}
		}
		return runner.Result{Repo: repo, Outcome: runner.OutcomeUpdated}
	}

	results := runner.Run(ctx, m.Repos(), sess.Config.EffectiveConcurrency(), task)
	printResults(results, sess.Root)
	printSummary(results)

	if runner.Failed(results) {
		return fmt.Errorf("%d repositories failed", runner.Summary(results)[runner.OutcomeFailed])
	}
	return nil
}

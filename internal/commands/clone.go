// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 qiao-925

package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/qiao-925/gh-repos-batch-clone/internal/github"
	"github.com/qiao-925/gh-repos-batch-clone/internal/gitops"
	"github.com/qiao-925/gh-repos-batch-clone/internal/manifest"
	"github.com/qiao-925/gh-repos-batch-clone/internal/prompts"
	"github.com/qiao-925/gh-repos-batch-clone/internal/runner"
	"github.com/qiao-925/gh-repos-batch-clone/internal/session"
)

type cloneOptions struct {
	update  bool
	offline bool
}

func newCloneCmd() *cobra.Command {
	opts := &cloneOptions{}

	cmd := &cobra.Command{
		Use:   "clone",
		Short: "Clone all configured repositories into their group directories",
		Long: `Clone every repository in the manifest that is missing locally,
in parallel up to the configured limit. Existing clones are skipped;
with --update, clean existing clones are pulled as well.`,
		Example: `  # Clone everything missing
  repos clone

  # Clone missing and pull existing clean clones
  repos clone --update`,
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runClone(cmd.Context(), sess, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.update, "update", "u", false, "Pull existing clean clones")
	cmd.Flags().BoolVar(&opts.offline, "offline", false, "Skip GitHub discovery; use explicit entries only")

	return cmd
}

func runClone(ctx context.Context, sess *session.Context, opts *cloneOptions) error {
	m, err := resolveManifest(ctx, sess, opts.offline)
	if err != nil {
		return err
	}
	if m.Len() == 0 {
		fmt.Println("No repositories resolved.")
		return nil
	}

	git := gitops.New(os.Getenv(github.TokenEnvVar))
	task := cloneTask(git, sess.Root, opts.update)

	results := runner.Run(ctx, m.Repos(), sess.Config.EffectiveConcurrency(), task)
	printResults(results, sess.Root)
	printSummary(results)

	if runner.Failed(results) {
		return fmt.Errorf("%d repositories failed", runner.Summary(results)[runner.OutcomeFailed])
	}
	return nil
}

// cloneTask builds the per-repo clone task: clone missing clones, and with
// update, pull existing clean ones. Dirty clones are never touched.
func cloneTask(git *gitops.Git, root string, update bool) runner.Task {
	return func(ctx context.Context, repo manifest.Repo) runner.Result {
		dir := repo.Dir(root)

		st, err := git.Status(dir)
		if err != nil {
			return runner.Result{Repo: repo, Outcome: runner.OutcomeFailed, Err: err}
		}

		switch st.State {
		case gitops.StateMissing:
			if err := os.MkdirAll(filepath.Dir(dir), 0o750); err != nil {
				return runner.Result{Repo: repo, Outcome: runner.OutcomeFailed, Err: err}
			}
			if err := git.Clone(ctx, dir, repo.CloneURL); err != nil {
				return runner.Result{Repo: repo, Outcome: runner.OutcomeFailed, Err: err}
			}
			return runner.Result{Repo: repo, Outcome: runner.OutcomeCloned}

		case gitops.StateClean:
			if !update {
				return runner.Result{Repo: repo, Outcome: runner.OutcomeSkipped, Detail: "exists"}
			}
			updated, err := git.Pull(ctx, dir)
			if err != nil {
				return runner.Result{Repo: repo, Outcome: runner.OutcomeFailed, Err: err}
			}
			if !updated {
				return runner.Result{Repo: repo, Outcome: runner.OutcomeSkipped, Detail: "up to date"}
			}
			return runner.Result{Repo: repo, Outcome: runner.OutcomeUpdated}

		default:
			return runner.Result{Repo: repo, Outcome: runner.OutcomeSkipped, Detail: string(st.State)}
		}
	}
}

func printResults(results []runner.Result, root string) {
	for _, res := range results {
		switch res.Outcome {
		case runner.OutcomeCloned:
			fmt.Printf("%s %s -> %s\n", prompts.Success("cloned "), res.Repo.FullName(), res.Repo.Dir(root))
		case runner.OutcomeUpdated:
			fmt.Printf("%s %s\n", prompts.Success("updated"), res.Repo.FullName())
		case runner.OutcomeSkipped:
			fmt.Printf("%s %s (%s)\n", prompts.Muted("skipped"), res.Repo.FullName(), res.Detail)
		case runner.OutcomeFailed:
			fmt.Printf("%s %s: %v\n", prompts.Fail("failed "), res.Repo.FullName(), res.Err)
		}
	}
}

func printSummary(results []runner.Result) {
	counts := runner.Summary(results)
	fmt.Printf("\n%s %d cloned, %d updated, %d skipped, %d failed\n",
		prompts.Muted("summary:"),
		counts[runner.OutcomeCloned],
		counts[runner.OutcomeUpdated],
		counts[runner.OutcomeSkipped],
		counts[runner.OutcomeFailed])
}

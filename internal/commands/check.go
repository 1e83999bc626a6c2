// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 qiao-925

package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/qiao-925/gh-repos-batch-clone/internal/gitops"
	"github.com/qiao-925/gh-repos-batch-clone/internal/manifest"
	"github.com/qiao-925/gh-repos-batch-clone/internal/prompts"
	"github.com/qiao-925/gh-repos-batch-clone/internal/runner"
	"github.com/qiao-925/gh-repos-batch-clone/internal/session"
)

type checkOptions struct {
	offline   bool
	failDirty bool
}

func newCheckCmd() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report the local state of every configured repository",
		Long: `Check every repository in the manifest and report its local state:
missing, clean, dirty or detached, plus the checked-out branch. Local
directories under the root that no manifest entry claims are reported
as untracked. Never modifies local clones.`,
		Example: `  # Check all clones
  repos check

  # Fail (non-zero exit) when anything is dirty or missing
  repos check --fail-dirty`,
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runCheck(cmd.Context(), sess, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.offline, "offline", false, "Skip GitHub discovery; use explicit entries only")
	cmd.Flags().BoolVar(&opts.failDirty, "fail-dirty", false, "Exit non-zero if any repo is dirty or missing")

	return cmd
}

func runCheck(ctx context.Context, sess *session.Context, opts *checkOptions) error {
	m, err := resolveManifest(ctx, sess, opts.offline)
	if err != nil {
		return err
	}

	git := gitops.New("")
	results := runner.Run(ctx, m.Repos(), sess.Config.EffectiveConcurrency(),
		func(_ context.Context, repo manifest.Repo) runner.Result {
			st, err := git.Status(repo.Dir(sess.Root))
			if err != nil {
				return runner.Result{Repo: repo, Outcome: runner.OutcomeFailed, Err: err}
			}
			return runner.Result{Repo: repo, Outcome: runner.Outcome(st.State), Detail: st.Branch}
		})

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "STATE\tBRANCH\tREPO\tGROUP")
	for _, res := range results {
		branch := res.Detail
		if branch == "" {
			branch = "-"
		}
		if res.Outcome == runner.OutcomeFailed {
			branch = res.Err.Error()
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			renderState(res.Outcome), branch, res.Repo.FullName(), res.Repo.Group)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	untracked := scanUntracked(sess.Root, m)
	for _, dir := range untracked {
		fmt.Printf("%s %s\n", prompts.Warn("untracked"), dir)
	}

	bad := 0
	for _, res := range results {
		switch res.Outcome {
		case runner.Outcome(gitops.StateDirty), runner.Outcome(gitops.StateMissing), runner.OutcomeFailed:
			bad++
		}
	}
	fmt.Printf("\n%s %d repos checked, %d need attention, %d untracked\n",
		prompts.Muted("summary:"), len(results), bad, len(untracked))

	if opts.failDirty && bad > 0 {
		return fmt.Errorf("%d repositories need attention", bad)
	}
	return nil
}

// renderState colors a check outcome for terminal display.
func renderState(o runner.Outcome) string {
	switch o {
	case runner.Outcome(gitops.StateClean):
		return prompts.Success(string(o))
	case runner.Outcome(gitops.StateDirty), runner.Outcome(gitops.StateDetached):
		return prompts.Warn(string(o))
	case runner.Outcome(gitops.StateMissing), runner.OutcomeFailed:
		return prompts.Fail(string(o))
	default:
		return string(o)
	}
}

// scanUntracked returns group-relative directories under root that no
// manifest entry claims, sorted.
func scanUntracked(root string, m *manifest.Manifest) []string {
	claimed := map[string]bool{}
	for _, r := range m.Repos() {
		claimed[filepath.Join(r.Group, r.Name)] = true
	}

	var untracked []string
	groups, err := os.ReadDir(root)
	if err != nil {
		return nil
	}
	for _, group := range groups {
		if !group.IsDir() {
			continue
		}
		entries, err := os.ReadDir(filepath.Join(root, group.Name()))
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			rel := filepath.Join(group.Name(), entry.Name())
			if !claimed[rel] {
				untracked = append(untracked, rel)
			}
		}
	}
	sort.Strings(untracked)
	return untracked
}

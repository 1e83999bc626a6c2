// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 qiao-925

package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qiao-925/gh-repos-batch-clone/internal/gitops"
	"github.com/qiao-925/gh-repos-batch-clone/internal/manifest"
	"github.com/qiao-925/gh-repos-batch-clone/internal/runner"
)

// newSourceRepo initializes a local repository usable as a clone URL.
func newSourceRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	commitFile(t, repo, dir, "README.md", "hello")
	return dir, repo
}

func commitFile(t *testing.T, repo *git.Repository, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add(name)
	require.NoError(t, err)
	_, err = wt.Commit("add "+name, &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
}

func TestCloneTask(t *testing.T) {
	src, srcRepo := newSourceRepo(t)
	root := t.TempDir()
	repo := manifest.Repo{Owner: "octocat", Name: "demo", Group: "go", CloneURL: src}
	g := gitops.New("")

	// missing -> cloned
	res := cloneTask(g, root, false)(context.Background(), repo)
	require.NoError(t, res.Err)
	assert.Equal(t, runner.OutcomeCloned, res.Outcome)
	assert.DirExists(t, filepath.Join(root, "go", "demo"))

	// existing clean, no update -> skipped
	res = cloneTask(g, root, false)(context.Background(), repo)
	assert.Equal(t, runner.OutcomeSkipped, res.Outcome)
	assert.Equal(t, "exists", res.Detail)

	// existing clean, update, nothing new -> skipped up to date
	res = cloneTask(g, root, true)(context.Background(), repo)
	assert.Equal(t, runner.OutcomeSkipped, res.Outcome)
	assert.Equal(t, "up to date", res.Detail)

	// new upstream commit, update -> updated
	commitFile(t, srcRepo, src, "new.txt", "new")
	res = cloneTask(g, root, true)(context.Background(), repo)
	require.NoError(t, res.Err)
	assert.Equal(t, runner.OutcomeUpdated, res.Outcome)

	// dirty worktree, update -> skipped, never touched
	require.NoError(t, os.WriteFile(filepath.Join(root, "go", "demo", "wip.txt"), []byte("wip"), 0o600))
	res = cloneTask(g, root, true)(context.Background(), repo)
	assert.Equal(t, runner.OutcomeSkipped, res.Outcome)
	assert.Equal(t, string(gitops.StateDirty), res.Detail)
}

func TestCloneTask_BadURL(t *testing.T) {
	root := t.TempDir()
	repo := manifest.Repo{Owner: "octocat", Name: "gone", Group: "go", CloneURL: filepath.Join(t.TempDir(), "nope")}

	res := cloneTask(gitops.New(""), root, false)(context.Background(), repo)
	assert.Equal(t, runner.OutcomeFailed, res.Outcome)
	assert.Error(t, res.Err)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 qiao-925

package manifest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qiao-925/gh-repos-batch-clone/internal/config"
	"github.com/qiao-925/gh-repos-batch-clone/internal/github"
)

type fakeLister struct {
	repos map[string][]github.Repository
	err   error
}

func (f *fakeLister) ListOwnerRepos(_ context.Context, owner string) ([]github.Repository, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.repos[owner], nil
}

func discoveredRepo(owner, name, language string, fork, archived bool) github.Repository {
	r := github.Repository{
		Name:          name,
		FullName:      owner + "/" + name,
		CloneURL:      "https://github.com/" + owner + "/" + name + ".git",
		DefaultBranch: "main",
		Language:      language,
		Fork:          fork,
		Archived:      archived,
	}
	r.Owner.Login = owner
	return r
}

func TestResolve_ExplicitOnly(t *testing.T) {
	cfg := &config.Config{
		Version: 1,
		Root:    "repos",
		Groups: map[string]config.Group{
			"tools": {Repos: []string{"spf13/cobra", "git@github.com:rs/zerolog.git"}},
		},
	}

	m, err := Resolve(context.Background(), cfg, nil)
	require.NoError(t, err)
	require.Equal(t, 2, m.Len())

	repos := m.Repos()
	assert.Equal(t, "rs/zerolog", repos[0].FullName())
	assert.Equal(t, "spf13/cobra", repos[1].FullName())
	assert.Equal(t, "tools", repos[0].Group)
}

func TestResolve_InvalidEntry(t *testing.T) {
	cfg := &config.Config{
		Version: 1,
		Root:    "repos",
		Groups:  map[string]config.Group{"tools": {Repos: []string{"not-a-repo"}}},
	}

	_, err := Resolve(context.Background(), cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `group "tools"`)
}

func TestResolve_DiscoveryAndClassification(t *testing.T) {
	cfg := &config.Config{
		Version:      1,
		Root:         "repos",
		SkipForks:    true,
		SkipArchived: true,
		Groups: map[string]config.Group{
			"go":   {Owners: []string{"octocat"}, Languages: []string{"Go"}},
			"web":  {Owners: []string{"octocat"}, Languages: []string{"TypeScript", "JavaScript"}},
			"docs": {Repos: []string{"octocat/manuals"}},
		},
	}

	lister := &fakeLister{repos: map[string][]github.Repository{
		"octocat": {
			discoveredRepo("octocat", "gotool", "Go", false, false),
			discoveredRepo("octocat", "site", "TypeScript", false, false),
			discoveredRepo("octocat", "notes", "Markdown", false, false),
			discoveredRepo("octocat", "forked", "Go", true, false),
			discoveredRepo("octocat", "attic", "Go", false, true),
			// discovered as Go, but pinned explicitly to docs
			discoveredRepo("octocat", "manuals", "Go", false, false),
		},
	}}

	m, err := Resolve(context.Background(), cfg, lister)
	require.NoError(t, err)

	byName := map[string]Repo{}
	for _, r := range m.Repos() {
		byName[r.FullName()] = r
	}

	require.Len(t, byName, 4)
	assert.Equal(t, "go", byName["octocat/gotool"].Group)
	assert.Equal(t, "web", byName["octocat/site"].Group)
	assert.Equal(t, MiscGroup, byName["octocat/notes"].Group)
	assert.Equal(t, "docs", byName["octocat/manuals"].Group)
	assert.Equal(t, "main", byName["octocat/gotool"].DefaultBranch)
	assert.NotContains(t, byName, "octocat/forked")
	assert.NotContains(t, byName, "octocat/attic")
}

func TestResolve_DiscoveryFailureAborts(t *testing.T) {
	cfg := &config.Config{
		Version: 1,
		Root:    "repos",
		Groups: map[string]config.Group{
			"go": {Repos: []string{"spf13/cobra"}, Owners: []string{"gone"}},
		},
	}

	lister := &fakeLister{err: github.ErrOwnerNotFound}
	_, err := Resolve(context.Background(), cfg, lister)
	require.Error(t, err)
	assert.ErrorIs(t, err, github.ErrOwnerNotFound)
}

func TestClassify_NoOwnerRule(t *testing.T) {
	cfg := &config.Config{
		Groups: map[string]config.Group{
			"go": {Owners: []string{"octocat"}, Languages: []string{"Go"}},
		},
	}
	assert.Equal(t, MiscGroup, Classify(cfg, "someoneelse", "Go"))
	assert.Equal(t, MiscGroup, Classify(cfg, "octocat", "Rust"))
	assert.Equal(t, "go", Classify(cfg, "Octocat", "go"))
}

func TestResolve_DuplicateOwnersListedOnce(t *testing.T) {
	calls := 0
	lister := listerFunc(func(_ context.Context, owner string) ([]github.Repository, error) {
		calls++
		return nil, nil
	})

	cfg := &config.Config{
		Version: 1,
		Root:    "repos",
		Groups: map[string]config.Group{
			"a": {Owners: []string{"octocat"}},
			"b": {Owners: []string{"OctoCat"}},
		},
	}

	_, err := Resolve(context.Background(), cfg, lister)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

type listerFunc func(ctx context.Context, owner string) ([]github.Repository, error)

func (f listerFunc) ListOwnerRepos(ctx context.Context, owner string) ([]github.Repository, error) {
	return f(ctx, owner)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 qiao-925

// Package gitops wraps the go-git operations the tool performs on local
// clones: clone, pull and worktree status inspection.
package gitops

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
)

// State describes the local state of one manifest entry.
type State string

const (
	// StateMissing means no directory exists at the clone path.
	StateMissing State = "missing"
	// StateClean means the worktree has no uncommitted changes.
	StateClean State = "clean"
	// StateDirty means the worktree has uncommitted changes.
	StateDirty State = "dirty"
	// StateDetached means HEAD does not point at a branch.
	StateDetached State = "detached"
)

// ErrNotARepo indicates a path exists but holds no git repository.
var ErrNotARepo = errors.New("not a git repository")

// Status is the inspected state of a local clone.
type Status struct {
	State  State
	Branch string
}

// Git performs clone/pull/status operations. A non-empty token is used as
// basic-auth password for HTTPS remotes (private repositories).
type Git struct {
	token string
}

// New creates a Git helper. token may be empty.
func New(token string) *Git {
	return &Git{token: token}
}

// Clone clones url into dir. The parent directory is created as needed.
// Cloning into an existing repository returns git.ErrRepositoryAlreadyExists.
func (g *Git) Clone(ctx context.Context, dir, url string) error {
	_, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:  url,
		Auth: g.authFor(url),
	})
	if err != nil {
		return fmt.Errorf("clone %s: %w", url, err)
	}
	return nil
}

// Pull fast-forwards the worktree at dir from origin. It reports whether
// anything changed; an already up-to-date clone is not an error.
func (g *Git) Pull(ctx context.Context, dir string) (bool, error) {
	repo, err := g.open(dir)
	if err != nil {
		return false, err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("pull %s: %w", dir, err)
	}

	err = wt.PullContext(ctx, &git.PullOptions{
		RemoteName: git.DefaultRemoteName,
		Auth:       g.remoteAuth(repo),
	})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("pull %s: %w", dir, err)
	}
	return true, nil
}

// Status inspects the local clone at dir without mutating it.
func (g *Git) Status(dir string) (Status, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return Status{State: StateMissing}, nil
	}

	repo, err := g.open(dir)
	if err != nil {
		return Status{}, err
	}

	head, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		// freshly initialized repo without commits
		return Status{State: StateClean}, nil
	}
	if err != nil {
		return Status{}, fmt.Errorf("status %s: %w", dir, err)
	}

	if !head.Name().IsBranch() {
		return Status{State: StateDetached, Branch: head.Hash().String()[:7]}, nil
	}

	wt, err := repo.Worktree()
	if err != nil {
		return Status{}, fmt.Errorf("status %s: %w", dir, err)
	}
	wtStatus, err := wt.Status()
	if err != nil {
		return Status{}, fmt.Errorf("status %s: %w", dir, err)
	}

	state := StateClean
	if !wtStatus.IsClean() {
		state = StateDirty
	}
	return Status{State: state, Branch: head.Name().Short()}, nil
}

func (g *Git) open(dir string) (*git.Repository, error) {
	repo, err := git.PlainOpen(dir)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, fmt.Errorf("%w: %s", ErrNotARepo, dir)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dir, err)
	}
	return repo, nil
}

func (g *Git) authFor(url string) transport.AuthMethod {
	if g.token == "" || !strings.HasPrefix(url, "http") {
		return nil
	}
	// GitHub accepts any non-empty username with a token password.
	return &githttp.BasicAuth{Username: "git", Password: g.token}
}

func (g *Git) remoteAuth(repo *git.Repository) transport.AuthMethod {
	remote, err := repo.Remote(git.DefaultRemoteName)
	if err != nil || len(remote.Config().URLs) == 0 {
		return nil
	}
	return g.authFor(remote.Config().URLs[0])
}

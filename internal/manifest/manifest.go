// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 qiao-925

// Package manifest models the resolved set of repositories the tool
// operates on: explicit config entries plus repositories discovered via
// the GitHub API, classified into groups and mapped to local paths.
package manifest

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/qiao-925/gh-repos-batch-clone/internal/config"
)

// MiscGroup receives discovered repositories that match no group rule.
const MiscGroup = "misc"

// Repo is one resolved repository.
type Repo struct {
	Owner    string `json:"owner" yaml:"owner"`
	Name     string `json:"name" yaml:"name"`
	Group    string `json:"group" yaml:"group"`
	CloneURL string `json:"clone_url" yaml:"clone_url"`
	// DefaultBranch is known only for discovered repositories; empty for
	// explicit entries until the clone exists.
	DefaultBranch string `json:"default_branch,omitempty" yaml:"default_branch,omitempty"`
	// explicit marks entries pinned in repos.yaml, which win over
	// discovered ones during deduplication.
	explicit bool
}

// FullName returns the "owner/name" form.
func (r Repo) FullName() string {
	return r.Owner + "/" + r.Name
}

// Dir returns the local clone path under the given root.
func (r Repo) Dir(root string) string {
	return filepath.Join(root, r.Group, r.Name)
}

// Manifest is the deduplicated, ordered set of resolved repositories.
type Manifest struct {
	repos []Repo
	index map[string]int // FullName -> position in repos
}

// New returns an empty Manifest.
func New() *Manifest {
	return &Manifest{index: map[string]int{}}
}

// Add inserts a repo, applying the dedup rules: the first group to claim a
// repo keeps it, and an explicit entry replaces a discovered one for the
// same repo regardless of order.
func (m *Manifest) Add(r Repo) {
	key := strings.ToLower(r.FullName())
	if i, ok := m.index[key]; ok {
		if r.explicit && !m.repos[i].explicit {
			m.repos[i] = r
		}
		return
	}
	m.index[key] = len(m.repos)
	m.repos = append(m.repos, r)
}

// Repos returns all entries sorted by group, then owner/name.
func (m *Manifest) Repos() []Repo {
	out := make([]Repo, len(m.repos))
	copy(out, m.repos)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Group != out[j].Group {
			return out[i].Group < out[j].Group
		}
		return out[i].FullName() < out[j].FullName()
	})
	return out
}

// Groups returns the group names present, sorted.
func (m *Manifest) Groups() []string {
	seen := map[string]bool{}
	for _, r := range m.repos {
		seen[r.Group] = true
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Contains reports whether owner/name is already resolved.
func (m *Manifest) Contains(fullName string) bool {
	_, ok := m.index[strings.ToLower(fullName)]
	return ok
}

// Len returns the number of resolved repositories.
func (m *Manifest) Len() int {
	return len(m.repos)
}

// ParseEntry parses a config repo entry into a Repo (group left empty).
// Accepted forms: "owner/name", "https://host/owner/name[.git]" and
// "git@host:owner/name[.git]".
func ParseEntry(entry string) (Repo, error) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return Repo{}, errors.New("empty repo entry")
	}

	switch {
	case strings.Contains(entry, "://"):
		trimmed := strings.TrimSuffix(entry, ".git")
		parts := strings.Split(trimmed, "/")
		if len(parts) < 2 {
			return Repo{}, fmt.Errorf("cannot parse repo URL %q", entry)
		}
		owner, name := parts[len(parts)-2], parts[len(parts)-1]
		if err := validateOwnerName(owner, name, entry); err != nil {
			return Repo{}, err
		}
		return Repo{Owner: owner, Name: name, CloneURL: entry}, nil

	case strings.HasPrefix(entry, "git@"):
		_, path, ok := strings.Cut(entry, ":")
		if !ok {
			return Repo{}, fmt.Errorf("cannot parse repo URL %q", entry)
		}
		path = strings.TrimSuffix(path, ".git")
		owner, name, ok := strings.Cut(path, "/")
		if !ok {
			return Repo{}, fmt.Errorf("cannot parse repo URL %q", entry)
		}
		if err := validateOwnerName(owner, name, entry); err != nil {
			return Repo{}, err
		}
		return Repo{Owner: owner, Name: name, CloneURL: entry}, nil

	default:
		owner, name, ok := strings.Cut(entry, "/")
		if !ok {
			return Repo{}, fmt.Errorf("repo entry %q is not owner/name", entry)
		}
		if err := validateOwnerName(owner, name, entry); err != nil {
			return Repo{}, err
		}
		return Repo{
			Owner:    owner,
			Name:     name,
			CloneURL: fmt.Sprintf("https://github.com/%s/%s.git", owner, name),
		}, nil
	}
}

func validateOwnerName(owner, name, entry string) error {
	if config.ValidatePathComponent(owner) != nil || config.ValidatePathComponent(name) != nil {
		return fmt.Errorf("invalid repo entry %q", entry)
	}
	return nil
}

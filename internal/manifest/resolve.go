// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 qiao-925

package manifest

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/qiao-925/gh-repos-batch-clone/internal/config"
	"github.com/qiao-925/gh-repos-batch-clone/internal/github"
)

// Lister enumerates repositories of a GitHub user or organization.
// *github.Client satisfies it.
type Lister interface {
	ListOwnerRepos(ctx context.Context, owner string) ([]github.Repository, error)
}

// Resolve builds the manifest for a config: explicit entries first, then
// API discovery for every owner listed in any group. A nil lister skips
// discovery entirely (offline mode).
//
// Any discovery failure aborts resolution; callers get either the complete
// manifest or an error, never a partial one.
func Resolve(ctx context.Context, cfg *config.Config, lister Lister) (*Manifest, error) {
	m := New()

	groupNames := make([]string, 0, len(cfg.Groups))
	for name := range cfg.Groups {
		groupNames = append(groupNames, name)
	}
	sort.Strings(groupNames)

	for _, groupName := range groupNames {
		for _, entry := range cfg.Groups[groupName].Repos {
			repo, err := ParseEntry(entry)
			if err != nil {
				return nil, fmt.Errorf("group %q: %w", groupName, err)
			}
			repo.Group = groupName
			repo.explicit = true
			m.Add(repo)
		}
	}

	if lister == nil {
		return m, nil
	}

	for _, owner := range owners(cfg) {
		discovered, err := lister.ListOwnerRepos(ctx, owner)
		if err != nil {
			return nil, fmt.Errorf("discovering repos of %s: %w", owner, err)
		}
		for _, d := range discovered {
			if cfg.SkipForks && d.Fork {
				continue
			}
			if cfg.SkipArchived && d.Archived {
				continue
			}
			if config.ValidatePathComponent(d.Name) != nil {
				continue
			}
			m.Add(Repo{
				Owner:         d.Owner.Login,
				Name:          d.Name,
				Group:         Classify(cfg, owner, d.Language),
				CloneURL:      d.CloneURL,
				DefaultBranch: d.DefaultBranch,
			})
		}
	}

	return m, nil
}

// Classify picks the group for a discovered repository: the first group
// (alphabetically) that lists the owner and whose language rules match.
// Repositories matching no rule land in MiscGroup.
func Classify(cfg *config.Config, owner, language string) string {
	names := make([]string, 0, len(cfg.Groups))
	for name := range cfg.Groups {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		group := cfg.Groups[name]
		if !containsFold(group.Owners, owner) {
			continue
		}
		if len(group.Languages) == 0 || containsFold(group.Languages, language) {
			return name
		}
	}
	return MiscGroup
}

// owners returns the deduplicated owner list across all groups, sorted.
func owners(cfg *config.Config) []string {
	seen := map[string]bool{}
	var out []string
	for _, group := range cfg.Groups {
		for _, owner := range group.Owners {
			key := strings.ToLower(owner)
			if !seen[key] {
				seen[key] = true
				out = append(out, owner)
			}
		}
	}
	sort.Strings(out)
	return out
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(s, needle) {
			return true
		}
	}
	return false
}

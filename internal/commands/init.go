// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 qiao-925

package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qiao-925/gh-repos-batch-clone/internal/config"
	"github.com/qiao-925/gh-repos-batch-clone/internal/prompts"
	"github.com/qiao-925/gh-repos-batch-clone/internal/session"
)

type initOptions struct {
	root           string
	group          string
	repos          []string
	owners         []string
	concurrency    int
	skipForks      bool
	nonInteractive bool
}

func newInitCmd() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a repos workspace",
		Long: `Initialize a repos workspace with a repos.yaml configuration file.
Repositories can be listed explicitly or discovered from GitHub users
and organizations.`,
		Example: `  # Interactive mode
  repos init

  # Non-interactive
  repos init --root ~/repos --group go --repo spf13/cobra --non-interactive
  repos init --root ~/repos --group go --owner golang --non-interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.root, "root", "r", "", "Clone root directory")
	cmd.Flags().StringVarP(&opts.group, "group", "g", "", "Name of the first group")
	cmd.Flags().StringArrayVar(&opts.repos, "repo", nil, "Repository (owner/name or URL); repeatable")
	cmd.Flags().StringArrayVar(&opts.owners, "owner", nil, "GitHub user or org to discover; repeatable")
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "c", 0, "Parallel clone limit")
	cmd.Flags().BoolVar(&opts.skipForks, "skip-forks", false, "Skip forks during discovery")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Run without prompts (requires --root and --group)")

	return cmd
}

func runInit(opts *initOptions) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	// Check that the current directory isn't already initialized
	cfgPath := filepath.Join(cwd, session.ConfigFileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return errors.New("repos.yaml already exists; workspace already initialized")
	}

	if opts.nonInteractive {
		if opts.root == "" || opts.group == "" {
			return errors.New("non-interactive mode requires --root and --group")
		}
		if len(opts.repos) == 0 && len(opts.owners) == 0 {
			return errors.New("non-interactive mode requires at least one --repo or --owner")
		}
	} else {
		var reposText, ownersText, concurrencyText string
		if err := prompts.RunInitForm(
			&opts.root,
			&opts.group,
			&reposText,
			&ownersText,
			&concurrencyText,
			&opts.skipForks,
		); err != nil {
			return err
		}
		opts.repos = splitEntries(reposText, "\n")
		opts.owners = splitEntries(ownersText, ",")
		if concurrencyText != "" {
			opts.concurrency, _ = strconv.Atoi(concurrencyText)
		}
	}

	cfg := buildInitConfig(opts)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Save(cfgPath); err != nil {
		return fmt.Errorf("config file couldn't be saved: %w", err)
	}

	prompts.PrintResult([]prompts.ResultField{
		{Label: "Config", Value: cfgPath},
		{Label: "Root", Value: cfg.Root},
		{Label: "Group", Value: opts.group},
	}, "Initialization completed")

	return nil
}

func buildInitConfig(opts *initOptions) *config.Config {
	return &config.Config{
		Version:     config.CurrentConfigVersion,
		Root:        opts.root,
		Concurrency: opts.concurrency,
		SkipForks:   opts.skipForks,
		Groups: map[string]config.Group{
			opts.group: {
				Repos:  opts.repos,
				Owners: opts.owners,
			},
		},
	}
}

// splitEntries splits user input on sep, trimming blanks.
func splitEntries(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

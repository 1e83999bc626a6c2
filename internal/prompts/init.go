// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 qiao-925

package prompts

import (
	"errors"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/qiao-925/gh-repos-batch-clone/internal/config"
)

// RunInitForm runs the interactive form for the init command.
// It fills the provided pointers with user input.
func RunInitForm(root, group, repos, owners, concurrency *string, skipForks *bool) error {
	discover := false
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Clone root directory").
				Placeholder("~/repos").
				Validate(func(s string) error {
					if s == "" {
						return errors.New("root directory is required")
					}
					return nil
				}).
				Value(root),
			huh.NewInput().
				Title("First group name").
				Placeholder("go").
				Validate(func(s string) error {
					return config.ValidatePathComponent(s)
				}).
				Value(group),
		),
		huh.NewGroup(
			huh.NewSelect[bool]().
				Title("Repository source").
				Options(
					huh.NewOption("List repositories explicitly", false),
					huh.NewOption("Discover from GitHub users/orgs", true),
				).
				Value(&discover),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Repositories (owner/name, one per line)").
				Validate(func(s string) error {
					if s == "" {
						return errors.New("at least one repository is required")
					}
					return nil
				}).
				Value(repos),
		).WithHideFunc(func() bool { return discover }),
		huh.NewGroup(
			huh.NewInput().
				Title("GitHub users or orgs (comma separated)").
				Placeholder("golang, rs").
				Validate(func(s string) error {
					if s == "" {
						return errors.New("at least one owner is required")
					}
					return nil
				}).
				Value(owners),
			huh.NewConfirm().
				Title("Skip forks during discovery?").
				Value(skipForks),
		).WithHideFunc(func() bool { return !discover }),
		huh.NewGroup(
			huh.NewInput().
				Title("Parallel clone limit").
				Placeholder(strconv.Itoa(config.DefaultConcurrency)).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					n, err := strconv.Atoi(s)
					if err != nil || n < 1 {
						return errors.New("must be a positive number")
					}
					return nil
				}).
				Value(concurrency),
		),
	).WithTheme(Theme()).Run()
}

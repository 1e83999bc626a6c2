// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 qiao-925

// Package prompts provides interactive terminal prompts and styled output
// for CLI commands.
package prompts

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Theme returns the shared huh theme used across all CLI forms.
func Theme() *huh.Theme {
	theme := huh.ThemeBase16()
	theme.FieldSeparator = lipgloss.NewStyle().SetString("\n").MarginBottom(1)
	theme.Form = theme.Form.MarginTop(1)
	theme.Group = theme.Group.MarginTop(1)
	theme.Focused.Title = theme.Focused.Title.Foreground(lipgloss.Color("#f9ca24"))
	theme.Blurred.Title = theme.Blurred.Title.Foreground(lipgloss.Color("#bababa"))
	return theme
}

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#27ca3f"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#f9ca24"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f56"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#bababa"))
)

// Success renders s in the success color.
func Success(s string) string { return successStyle.Render(s) }

// Warn renders s in the warning color.
func Warn(s string) string { return warnStyle.Render(s) }

// Fail renders s in the failure color.
func Fail(s string) string { return failStyle.Render(s) }

// Muted renders s in the muted label color.
func Muted(s string) string { return mutedStyle.Render(s) }

// ResultField is a label-value pair for PrintResult.
type ResultField struct {
	Label string
	Value string
}

// PrintResult prints a styled summary with green checkmarks and gray labels.
func PrintResult(fields []ResultField, successMsg string) {
	check := successStyle.Render("✓")

	fmt.Println()
	for _, f := range fields {
		fmt.Printf("%s %s %s\n", check, mutedStyle.Render(f.Label+":"), f.Value)
	}

	if successMsg != "" {
		fmt.Println(successStyle.Render("\n" + successMsg))
	}
}

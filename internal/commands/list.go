// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 qiao-925

package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/qiao-925/gh-repos-batch-clone/internal/manifest"
	"github.com/qiao-925/gh-repos-batch-clone/internal/session"
)

type listOptions struct {
	offline bool
	format  string
}

func newListCmd() *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the resolved repository manifest",
		Long: `List every repository the workspace resolves to, grouped by
classification. Includes repositories discovered from GitHub unless
--offline is set.`,
		Example: `  # List as a table
  repos list

  # Export as JSON or YAML
  repos list --format json
  repos list --format yaml`,
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runList(cmd.Context(), sess, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.offline, "offline", false, "Skip GitHub discovery; use explicit entries only")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "table", "Output format (table, json or yaml)")

	return cmd
}

func runList(ctx context.Context, sess *session.Context, opts *listOptions) error {
	m, err := resolveManifest(ctx, sess, opts.offline)
	if err != nil {
		return err
	}

	switch opts.format {
	case "json":
		return manifest.JSONWriter.Write(os.Stdout, m)
	case "yaml":
		return manifest.YAMLWriter.Write(os.Stdout, m)
	case "table":
		return printManifestTable(m)
	default:
		return fmt.Errorf("unknown format %q (want table, json or yaml)", opts.format)
	}
}

func printManifestTable(m *manifest.Manifest) error {
	if m.Len() == 0 {
		fmt.Println("No repositories resolved.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "GROUP\tREPO\tURL")
	for _, r := range m.Repos() {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", r.Group, r.FullName(), r.CloneURL)
	}
	return w.Flush()
}

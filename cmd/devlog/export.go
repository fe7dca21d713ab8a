// Package main provides the entry point for the devlog CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jralston/devlog/internal/export"
	"github.com/jralston/devlog/internal/journal"
	"github.com/jralston/devlog/internal/output"
)

// exportFlags holds the command-line flags for the export command.
type exportFlags struct {
	format string
	dir    string
}

// newExportCmd creates the export command.
func newExportCmd() *cobra.Command {
	flags := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export journal entries as structured data",
		Long: `Export the journal as structured data for downstream tooling.

Without --dir, the whole journal is written to stdout as JSON.
With --dir, one file per entry is written (task-<id>-NNN.json or .md).

Examples:
  devlog export                          # Whole journal as JSON to stdout
  devlog export --dir out                # One JSON file per entry
  devlog export --dir out --format markdown`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "json", "Export format: json or markdown")
	cmd.Flags().StringVar(&flags.dir, "dir", "", "Write one file per entry into this directory")

	return cmd
}

// runExport executes the export command.
func runExport(cmd *cobra.Command, flags *exportFlags) error {
	printer := newPrinter(cmd)

	if flags.format != "json" && flags.format != "markdown" {
		err := output.NewUserError(fmt.Sprintf("invalid --format %q: expected json or markdown", flags.format))
		printer.Error(err)
		return err
	}
	if flags.dir == "" && flags.format == "markdown" {
		err := output.NewUserError("--format markdown requires --dir (the journal file already is the markdown form)")
		printer.Error(err)
		return err
	}

	doc, err := journal.DefaultFile().Load()
	if err != nil {
		printer.Error(err)
		return err
	}

	if flags.dir == "" {
		return export.FormatJSON(printer, doc)
	}

	switch flags.format {
	case "json":
		err = export.WriteJSONFiles(doc.Entries, flags.dir)
	case "markdown":
		err = export.WriteMarkdownFiles(doc.Entries, flags.dir)
	}
	if err != nil {
		sysErr := output.NewSystemErrorWithCause("writing export files", err)
		printer.Error(sysErr)
		return sysErr
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"status":  "ok",
			"format":  flags.format,
			"dir":     flags.dir,
			"entries": len(doc.Entries),
		})
	}
	printer.Print("Wrote %d entries to %s\n", len(doc.Entries), flags.dir)
	return nil
}

// Package main provides the entry point for the devlog CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jralston/devlog/internal/config"
	"github.com/jralston/devlog/internal/envfile"
	"github.com/jralston/devlog/internal/output"
)

// Stamped by the release build:
// go build -ldflags "-X main.version=1.2.0 -X main.commit=<sha> -X main.date=<date>"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the persistent --json flag from wherever in the
// command tree the caller sits.
func isJSONMode(cmd *cobra.Command) bool {
	on, err := cmd.Root().PersistentFlags().GetBool("json")
	return err == nil && on
}

// useColor resolves the --color persistent flag against TTY detection.
func useColor(cmd *cobra.Command) bool {
	mode := "auto"
	if flag := cmd.Root().PersistentFlags().Lookup("color"); flag != nil {
		mode = flag.Value.String()
	}
	return output.ResolveColorMode(mode, output.IsTTY(cmd.OutOrStdout()))
}

// newPrinter builds the standard printer for a command invocation.
func newPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())
}

// buildVersion folds the ldflags stamps into one display string.
// Unstamped dev builds show just "dev".
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	short := commit
	if len(short) > 7 {
		short = short[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, short, date)
}

func main() {
	os.Exit(run())
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd wires up the command tree. Subcommand constructors live in
// their own files, one per command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devlog",
		Short: "A development journal kept in DEVELOPMENT_LOG.md",
		Long: `Devlog - a development journal kept as a single Markdown file.

Devlog maintains an append-only DEVELOPMENT_LOG.md at the repository root:
  - Each task becomes a structured entry (what, files, details, lessons)
  - Entries follow one Markdown convention so the log stays readable
  - AI coding assistants append entries through the CLI or the MCP server
  - Instruction rule files teach assistants the convention per editor

All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'devlog --help' for usage")
				printer.Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		loadEnvFiles()
		return nil
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", "auto", "Color output: auto, always, never")

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// loadEnvFiles pulls API keys and similar settings from dotenv files:
// the gitignored .env.local first, then .env, then the user-global
// config-dir env file. Real environment variables beat all of them.
func loadEnvFiles() {
	_ = envfile.Load(".env.local")
	_ = envfile.Load(".env")

	if dir := config.Dir(); dir != "" {
		_ = envfile.Load(filepath.Join(dir, "env"))
	}
}

// addCommandGroups declares the help-output sections.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "query", Title: "Query Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "agent", Title: "Agent Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
}

// addCommands registers every subcommand under its help section.
func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newLogCmd(), "core")
	addGroupedCommand(cmd, newPendingCmd(), "core")
	addGroupedCommand(cmd, newStatusCmd(), "core")

	addGroupedCommand(cmd, newShowCmd(), "query")
	addGroupedCommand(cmd, newQueryCmd(), "query")
	addGroupedCommand(cmd, newExportCmd(), "query")

	addGroupedCommand(cmd, newDraftCmd(), "agent")
	addGroupedCommand(cmd, newRuleCmd(), "agent")
	addGroupedCommand(cmd, newServeCmd(), "agent")

	addGroupedCommand(cmd, newInitCmd(), "admin")
	addGroupedCommand(cmd, newSetupCmd(), "admin")
	addGroupedCommand(cmd, newUninstallCmd(), "admin")
	addGroupedCommand(cmd, newDoctorCmd(), "admin")
}

func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}

// Package main provides the entry point for the devlog CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/jralston/devlog/internal/setup"
)

// newUninstallCmd creates the uninstall command.
func newUninstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall",
		Short: "Remove devlog integrations from this repository",
		Long: `Remove devlog integrations: agent instruction artifacts and the
post-commit reminder hook. DEVELOPMENT_LOG.md itself is never touched;
the journal belongs to the project, not to devlog.

Examples:
  devlog uninstall`,
		RunE: runUninstall,
	}
}

// runUninstall executes the uninstall command.
func runUninstall(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	var removed []string
	var failed []string

	for _, env := range setup.AllAgentEnvs() {
		if _, _, installed := env.Detect(); !installed {
			continue
		}
		// Try both scopes; Remove is a no-op where nothing is installed.
		projectErr := env.Remove(true)
		globalErr := env.Remove(false)
		if projectErr != nil && globalErr != nil {
			failed = append(failed, env.Name())
			continue
		}
		removed = append(removed, env.Name())
	}

	if setup.HookInstalled() {
		if err := setup.RemoveHook(); err != nil {
			failed = append(failed, "hook")
		} else {
			removed = append(removed, "hook")
		}
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"status":  "ok",
			"removed": removed,
			"failed":  failed,
		})
	}

	if len(removed) == 0 && len(failed) == 0 {
		printer.Print("Nothing to uninstall.\n")
		return nil
	}
	for _, name := range removed {
		printer.Print("%s %s\n", printer.Styles().Success.Render("Removed"), name)
	}
	for _, name := range failed {
		printer.Warn("could not remove %s", name)
	}
	printer.Print("\nDEVELOPMENT_LOG.md was left in place.\n")
	return nil
}

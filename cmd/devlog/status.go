// Package main provides the entry point for the devlog CLI.
package main

import (
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jralston/devlog/internal/git"
	"github.com/jralston/devlog/internal/journal"
	"github.com/jralston/devlog/internal/setup"
)

// newStatusCmd creates the status command.
func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show repository and journal state",
		Long: `Show repository and journal state: repo name, branch, HEAD,
entry counts, and which integrations are installed.

Examples:
  devlog status
  devlog status --json`,
		RunE: runStatus,
	}
}

// runStatus executes the status command.
func runStatus(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)
	styles := printer.Styles()

	file := journal.DefaultFile()

	repoName, branch, head := "", "", ""
	if git.IsRepo() {
		if root, err := git.RepoRoot(); err == nil {
			repoName = filepath.Base(root)
		}
		if b, err := git.CurrentBranch(); err == nil {
			branch = b
		}
		if h, err := git.HEAD(); err == nil && len(h) >= 7 {
			head = h[:7]
		}
	}

	entries, done, inProgress := 0, 0, 0
	if file.Exists() {
		doc, err := file.Load()
		if err != nil {
			printer.Error(err)
			return err
		}
		entries = len(doc.Entries)
		for _, e := range doc.Entries {
			if e.Status == journal.StatusInProgress {
				inProgress++
			} else {
				done++
			}
		}
	}

	var agents []string
	for _, env := range setup.DetectedAgentEnvs() {
		agents = append(agents, env.Name())
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"repo":           repoName,
			"branch":         branch,
			"head":           head,
			"path":           file.Path(),
			"exists":         file.Exists(),
			"entries":        entries,
			"done":           done,
			"in_progress":    inProgress,
			"hook_installed": setup.HookInstalled(),
			"agents":         agents,
		})
	}

	if repoName != "" {
		printer.KeyValue("Repository", repoName)
		printer.KeyValue("Branch", branch)
		printer.KeyValue("HEAD", head)
	}
	printer.KeyValue("Journal", file.Path())

	if !file.Exists() {
		printer.Println()
		printer.Print("%s Run '%s' to create it.\n",
			styles.Warning.Render("DEVELOPMENT_LOG.md does not exist."),
			styles.Accent.Render("devlog init"))
		return nil
	}

	printer.KeyValue("Entries", strconv.Itoa(entries))
	printer.KeyValue("Done", strconv.Itoa(done))
	printer.KeyValue("In progress", strconv.Itoa(inProgress))

	if setup.HookInstalled() {
		printer.KeyValue("Hook", "installed")
	}
	for _, agent := range agents {
		printer.KeyValue("Agent", agent)
	}
	return nil
}

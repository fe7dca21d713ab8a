// Package main provides the entry point for the devlog CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/jralston/devlog/internal/git"
	"github.com/jralston/devlog/internal/journal"
	"github.com/jralston/devlog/internal/output"
)

// newPendingCmd creates the pending command.
func newPendingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pending",
		Short: "Show work not yet covered by a journal entry",
		Long: `Show commits made since the last dated journal entry, plus any
uncommitted changes. A non-empty result means the journal is behind
the code and an entry should be appended.

Examples:
  devlog pending
  devlog pending --json`,
		RunE: runPending,
	}

	return cmd
}

// runPending executes the pending command.
func runPending(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	if !git.IsRepo() {
		err := output.NewSystemError("not in a git repository")
		printer.Error(err)
		return err
	}

	doc, err := journal.DefaultFile().Load()
	if err != nil {
		printer.Error(err)
		return err
	}

	var commits []git.Commit
	latest := doc.LatestEntry()
	if latest != nil && !latest.Date.IsZero() {
		commits, err = git.CommitsSince(latest.Date)
	} else {
		commits, err = git.RecentCommits(20)
	}
	if err != nil {
		sysErr := output.NewSystemErrorWithCause("listing commits", err)
		printer.Error(sysErr)
		return sysErr
	}

	changes, err := git.ChangedFiles()
	if err != nil {
		sysErr := output.NewSystemErrorWithCause("listing changed files", err)
		printer.Error(sysErr)
		return sysErr
	}

	if printer.IsJSON() {
		payload := map[string]any{
			"commits":            commits,
			"commit_count":       len(commits),
			"uncommitted":        changes,
			"uncommitted_count":  len(changes),
			"has_undocumented":   len(commits) > 0 || len(changes) > 0,
			"last_entry_task_id": "",
			"last_entry_date":    "",
			"last_entry_approx":  latest == nil || latest.Date.IsZero(),
		}
		if latest != nil {
			payload["last_entry_task_id"] = latest.TaskID
			if !latest.Date.IsZero() {
				payload["last_entry_date"] = latest.Date.Format(journal.DateLayout)
			}
		}
		return printer.WriteJSON(payload)
	}

	printPendingHuman(printer, latest, commits, changes)
	return nil
}

// printPendingHuman writes the human view of pending work.
func printPendingHuman(printer *output.Printer, latest *journal.Entry, commits []git.Commit, changes []git.Change) {
	styles := printer.Styles()

	if latest == nil {
		printer.Print("%s\n", styles.Warning.Render("The journal has no entries yet. Showing recent commits."))
	} else if latest.Date.IsZero() {
		printer.Print("%s\n", styles.Warning.Render("The latest entry has no date line. Showing recent commits."))
	} else {
		printer.Print("Last entry: %s (%s)\n",
			styles.Key.Render("Task "+latest.TaskID),
			latest.Date.Format(journal.DateLayout))
	}

	if len(commits) == 0 && len(changes) == 0 {
		printer.Print("%s\n", styles.Success.Render("Nothing pending. The journal is up to date."))
		return
	}

	if len(commits) > 0 {
		printer.Println()
		printer.Section("Commits since the last entry")
		for _, commit := range commits {
			printer.Print("  %s %s\n", styles.Dim.Render(commit.Short), commit.Subject)
		}
	}

	if len(changes) > 0 {
		printer.Println()
		printer.Section("Uncommitted changes")
		for _, change := range changes {
			printer.Print("  %s %s\n", styles.Dim.Render(string(change.Kind)), change.Path)
		}
	}

	printer.Println()
	printer.Print("Document this work with '%s'.\n", styles.Accent.Render("devlog log"))
}

// Package main provides the entry point for the devlog CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jralston/devlog/internal/journal"
	"github.com/jralston/devlog/internal/output"
)

// queryFlags holds the command-line flags for the query command.
type queryFlags struct {
	last    int
	since   string
	until   string
	status  string
	task    string
	text    string
	oneline bool
}

// newQueryCmd creates the query command.
func newQueryCmd() *cobra.Command {
	flags := &queryFlags{}

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Retrieve journal entries with filters",
		Long: `Retrieve journal entries with filters. All filters combine with AND;
entries keep their file order.

Examples:
  devlog query --last 5                      # Last 5 entries
  devlog query --since 7d                    # Entries from the last 7 days
  devlog query --since 2026-08-01 --until 2026-08-15
  devlog query --status in-progress          # Unfinished work
  devlog query --task 2.                     # Tasks 2.1, 2.3, ...
  devlog query --text "error handling"       # Title/summary substring
  devlog query --last 10 --oneline           # Compact: <id>  <title>`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuery(cmd, flags)
		},
	}

	cmd.Flags().IntVar(&flags.last, "last", 0, "Retrieve last N entries")
	cmd.Flags().StringVar(&flags.since, "since", "", "Entries since duration (24h, 7d, 2w) or date (2026-08-01)")
	cmd.Flags().StringVar(&flags.until, "until", "", "Entries until duration (24h, 7d, 2w) or date (2026-08-15)")
	cmd.Flags().StringVar(&flags.status, "status", "", "Filter by status: done or in-progress")
	cmd.Flags().StringVar(&flags.task, "task", "", "Filter by task id prefix, e.g. 2.")
	cmd.Flags().StringVar(&flags.text, "text", "", "Case-insensitive substring over title and summary")
	cmd.Flags().BoolVar(&flags.oneline, "oneline", false, "Show compact format: <id>  <title>")

	return cmd
}

// runQuery executes the query command.
func runQuery(cmd *cobra.Command, flags *queryFlags) error {
	printer := newPrinter(cmd)

	filter, err := buildFilter(flags)
	if err != nil {
		printer.Error(err)
		return err
	}

	doc, err := journal.DefaultFile().Load()
	if err != nil {
		printer.Error(err)
		return err
	}

	entries := filter.Apply(doc.Entries)

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"count":   len(entries),
			"entries": entries,
		})
	}

	if len(entries) == 0 {
		printer.Print("No matching entries.\n")
		return nil
	}

	styles := printer.Styles()
	for i, entry := range entries {
		if flags.oneline {
			printer.Print("%s  %s %s\n", styles.Key.Render(entry.TaskID), entry.Title, entry.Status.Marker())
			continue
		}
		if i > 0 {
			printer.Println()
		}
		printEntry(printer, entry)
	}
	return nil
}

// buildFilter converts command flags into a journal filter.
func buildFilter(flags *queryFlags) (journal.Filter, error) {
	filter := journal.Filter{
		TaskPrefix: flags.task,
		Text:       flags.text,
		Last:       flags.last,
	}

	switch flags.status {
	case "":
	case string(journal.StatusDone):
		filter.Status = journal.StatusDone
	case string(journal.StatusInProgress):
		filter.Status = journal.StatusInProgress
	default:
		return journal.Filter{}, output.NewUserError(fmt.Sprintf("invalid --status %q: expected done or in-progress", flags.status))
	}

	if flags.since != "" {
		cutoff, err := parseSinceValue(flags.since)
		if err != nil {
			return journal.Filter{}, output.NewUserError(err.Error())
		}
		filter.Since = cutoff
	}
	if flags.until != "" {
		cutoff, err := parseUntilValue(flags.until)
		if err != nil {
			return journal.Filter{}, output.NewUserError(err.Error())
		}
		filter.Until = cutoff
	}

	return filter, nil
}

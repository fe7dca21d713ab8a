// Package main provides the entry point for the devlog CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jralston/devlog/internal/journal"
	"github.com/jralston/devlog/internal/output"
)

// newShowCmd creates the show command.
func newShowCmd() *cobra.Command {
	var latestFlag bool
	var rawFlag bool

	cmd := &cobra.Command{
		Use:   "show [task-id]",
		Short: "Display a single journal entry",
		Long: `Display a single journal entry by task ID, or the most recent one.

If several entries share a task ID, the most recently appended one wins.

Examples:
  devlog show 2.1         # Show the entry for task 2.1
  devlog show --latest    # Show the most recent entry
  devlog show 2.1 --raw   # Print the entry's Markdown verbatim
  devlog show 2.1 --json  # Structured record`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID := ""
			if len(args) > 0 {
				taskID = args[0]
			}
			return runShow(cmd, taskID, latestFlag, rawFlag)
		},
	}

	cmd.Flags().BoolVar(&latestFlag, "latest", false, "Show the most recent entry")
	cmd.Flags().BoolVar(&rawFlag, "raw", false, "Print the entry's Markdown instead of the formatted view")

	return cmd
}

// runShow executes the show command.
func runShow(cmd *cobra.Command, taskID string, latest, raw bool) error {
	printer := newPrinter(cmd)

	if taskID == "" && !latest {
		err := output.NewUserError("specify a task ID or --latest")
		printer.Error(err)
		return err
	}
	if taskID != "" && latest {
		err := output.NewUserError("cannot use both a task ID and --latest")
		printer.Error(err)
		return err
	}

	doc, err := journal.DefaultFile().Load()
	if err != nil {
		printer.Error(err)
		return err
	}

	var entry *journal.Entry
	if latest {
		entry = doc.LatestEntry()
		if entry == nil {
			err := output.NewUserError("no entries found in the journal")
			printer.Error(err)
			return err
		}
	} else {
		entry = doc.FindEntry(taskID)
		if entry == nil {
			err := output.NewUserError(fmt.Sprintf("no entry for task %s", taskID))
			printer.Error(err)
			return err
		}
	}

	if printer.IsJSON() {
		return printer.WriteJSON(entry)
	}
	if raw {
		printer.Print("%s", journal.Render(entry))
		return nil
	}

	printEntry(printer, entry)
	return nil
}

// printEntry writes the formatted human view of one entry.
func printEntry(printer *output.Printer, entry *journal.Entry) {
	styles := printer.Styles()

	printer.Print("%s\n", styles.Title.Render(entry.Heading()))
	if !entry.Date.IsZero() {
		printer.Print("%s\n", styles.Dim.Render(entry.Date.Format(journal.DateLayout)))
	}

	if entry.Summary != "" {
		printer.Println()
		printer.Print("%s\n", entry.Summary)
	}

	if len(entry.Files) > 0 {
		printer.Println()
		printer.Section("Files")
		for _, f := range entry.Files {
			if f.Description != "" {
				printer.Print("  %s %s %s\n", styles.Key.Render(f.Path), styles.Dim.Render("-"), f.Description)
			} else {
				printer.Print("  %s\n", styles.Key.Render(f.Path))
			}
		}
	}

	if len(entry.Details) > 0 {
		printer.Println()
		printer.Section("Technical Details")
		for _, d := range entry.Details {
			printer.Print("  %s\n", styles.Bold.Render(d.Heading))
			if d.Body != "" {
				printer.Print("  %s\n", d.Body)
			}
			for _, term := range d.Terms {
				printer.Print("    %s: %s\n", styles.Key.Render(term.Name), term.Definition)
			}
		}
	}

	if len(entry.Lessons) > 0 {
		printer.Println()
		printer.Section("Lessons")
		for _, lesson := range entry.Lessons {
			printer.Print("  - %s\n", lesson)
		}
	}
}

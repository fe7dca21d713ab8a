// Package main provides the entry point for the devlog CLI.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jralston/devlog/internal/git"
	"github.com/jralston/devlog/internal/journal"
	"github.com/jralston/devlog/internal/output"
)

// logFlags holds the command-line flags for the log command.
type logFlags struct {
	task     string
	status   string
	date     string
	summary  string
	files    []string
	lessons  []string
	fromJSON string
	changed  bool
	dryRun   bool
}

// newLogCmd creates the log command.
func newLogCmd() *cobra.Command {
	flags := &logFlags{}

	cmd := &cobra.Command{
		Use:   "log [title]",
		Short: "Append a journal entry to DEVELOPMENT_LOG.md",
		Long: `Append a journal entry to DEVELOPMENT_LOG.md.

The entry is built from flags, or from a JSON record with --from-json
(the format agents use). Structured Technical Details blocks are only
available through the JSON form.

Examples:
  devlog log "Add Error Handling to API Endpoint" --task 2.1 \
    --summary "Added proper error handling with status codes" \
    --file "api/handler.go:new error middleware" \
    --lesson "HTTP handlers should never panic"

  devlog log "Refactor config loading" --task 3.2 --status in-progress

  devlog log --from-json entry.json       # Entry record from a file
  some-tool | devlog log --from-json -    # Entry record from stdin

  devlog log "Fix flaky test" --task 4.1 --changed   # Prefill files from git status
  devlog log "Fix flaky test" --task 4.1 --dry-run   # Print without writing`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := ""
			if len(args) > 0 {
				title = args[0]
			}
			return runLog(cmd, flags, title)
		},
	}

	cmd.Flags().StringVarP(&flags.task, "task", "t", "", "Task identifier, e.g. 2.1")
	cmd.Flags().StringVar(&flags.status, "status", "done", "Entry status: done or in-progress")
	cmd.Flags().StringVar(&flags.date, "date", "", "Entry date as YYYY-MM-DD (default: today)")
	cmd.Flags().StringVarP(&flags.summary, "summary", "s", "", "What We Did narrative")
	cmd.Flags().StringArrayVarP(&flags.files, "file", "f", nil, "Changed file as path:description (repeatable)")
	cmd.Flags().StringArrayVarP(&flags.lessons, "lesson", "l", nil, "What We Learned bullet (repeatable)")
	cmd.Flags().StringVar(&flags.fromJSON, "from-json", "", "Read the entry record from a JSON file, or - for stdin")
	cmd.Flags().BoolVar(&flags.changed, "changed", false, "Prefill the files section from uncommitted git changes")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Print the rendered entry without writing")

	return cmd
}

// runLog executes the log command.
func runLog(cmd *cobra.Command, flags *logFlags, title string) error {
	printer := newPrinter(cmd)

	entry, err := buildLogEntry(cmd, flags, title)
	if err != nil {
		printer.Error(err)
		return err
	}

	if flags.dryRun {
		if err := entry.Validate(); err != nil {
			printer.Error(err)
			return err
		}
		if printer.IsJSON() {
			return printer.Success(map[string]any{
				"status":   "dry_run",
				"task_id":  entry.TaskID,
				"heading":  entry.Heading(),
				"rendered": journal.Render(entry),
			})
		}
		printer.Print("%s", journal.Render(entry))
		return nil
	}

	file := journal.DefaultFile()
	if err := file.Append(entry); err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"status":  "ok",
			"task_id": entry.TaskID,
			"heading": entry.Heading(),
			"path":    file.Path(),
		})
	}

	printer.Print("%s %s\n", printer.Styles().Success.Render("Logged"), entry.Heading())
	printer.Print("%s %s\n", printer.Styles().Dim.Render("->"), file.Path())
	return nil
}

// buildLogEntry assembles the entry from --from-json or from flags.
func buildLogEntry(cmd *cobra.Command, flags *logFlags, title string) (*journal.Entry, error) {
	if flags.fromJSON != "" {
		return readEntryJSON(cmd.InOrStdin(), flags.fromJSON)
	}

	if title == "" {
		return nil, output.NewUserError("a title is required (or use --from-json)")
	}
	if flags.task == "" {
		return nil, output.NewUserError("--task is required (or use --from-json)")
	}

	entry := &journal.Entry{
		TaskID:  flags.task,
		Title:   title,
		Summary: flags.summary,
		Lessons: flags.lessons,
	}

	switch flags.status {
	case "done", "":
		entry.Status = journal.StatusDone
	case "in-progress", "wip":
		entry.Status = journal.StatusInProgress
	default:
		return nil, output.NewUserError(fmt.Sprintf("invalid --status %q: expected done or in-progress", flags.status))
	}

	if flags.date != "" {
		parsed, err := time.Parse("2006-01-02", flags.date)
		if err != nil {
			return nil, output.NewUserError(fmt.Sprintf("invalid --date %q: expected YYYY-MM-DD", flags.date))
		}
		entry.Date = parsed
	} else {
		entry.Date = time.Now()
	}

	files, err := parseFileFlags(flags.files)
	if err != nil {
		return nil, err
	}
	entry.Files = files

	if flags.changed {
		changes, err := changedFileEntries()
		if err != nil {
			return nil, err
		}
		entry.Files = append(entry.Files, changes...)
	}

	return entry, nil
}

// parseFileFlags parses repeated path:description flags into file changes.
// The description is optional; the first colon separates path from it.
func parseFileFlags(values []string) ([]journal.FileChange, error) {
	var files []journal.FileChange
	for _, value := range values {
		path, desc, _ := strings.Cut(value, ":")
		path = strings.TrimSpace(path)
		if path == "" {
			return nil, output.NewUserError(fmt.Sprintf("invalid --file value %q: expected path:description", value))
		}
		files = append(files, journal.FileChange{
			Path:        path,
			Description: strings.TrimSpace(desc),
		})
	}
	return files, nil
}

// changedFileEntries lists uncommitted git changes as file entries.
func changedFileEntries() ([]journal.FileChange, error) {
	if !git.IsRepo() {
		return nil, output.NewSystemError("--changed requires a git repository")
	}
	changes, err := git.ChangedFiles()
	if err != nil {
		return nil, output.NewSystemErrorWithCause("listing changed files", err)
	}
	files := make([]journal.FileChange, 0, len(changes))
	for _, change := range changes {
		files = append(files, journal.FileChange{
			Path:        change.Path,
			Description: string(change.Kind),
		})
	}
	return files, nil
}

// readEntryJSON reads and defaults an entry record from a file or stdin.
func readEntryJSON(stdin io.Reader, source string) (*journal.Entry, error) {
	var data []byte
	var err error
	if source == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, output.NewSystemErrorWithCause("reading entry record", err)
	}

	entry := &journal.Entry{}
	if err := json.Unmarshal(data, entry); err != nil {
		return nil, output.NewUserError(fmt.Sprintf("invalid entry record: %v", err))
	}

	if entry.Status == "" {
		entry.Status = journal.StatusDone
	}
	if entry.Date.IsZero() {
		entry.Date = time.Now()
	}
	return entry, nil
}

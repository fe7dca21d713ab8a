// Package main provides the entry point for the devlog CLI.
package main

import (
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jralston/devlog/internal/draft"
	"github.com/jralston/devlog/internal/git"
	"github.com/jralston/devlog/internal/journal"
	"github.com/jralston/devlog/internal/llm"
	"github.com/jralston/devlog/internal/output"
)

// maxDraftDiffBytes caps how much diff is sent to the model.
const maxDraftDiffBytes = 64 * 1024

// draftFlags holds the command-line flags for the draft command.
type draftFlags struct {
	model  string
	task   string
	note   string
	save   bool
	prompt bool
}

// newDraftCmd creates the draft command.
func newDraftCmd() *cobra.Command {
	flags := &draftFlags{}

	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Draft a journal entry from git state with an LLM",
		Long: `Draft a journal entry from the current git state using an LLM.

The working-tree changes, recent commits, and a truncated diff are sent
to the model, which returns a structured entry record. By default the
draft is printed for review; --save appends it to DEVELOPMENT_LOG.md.

Requires an API key for the chosen provider (ANTHROPIC_API_KEY,
OPENAI_API_KEY, GOOGLE_API_KEY) in the environment or an env file.

Examples:
  devlog draft                          # Draft with the default model
  devlog draft --model gemini-flash     # Pick a model (provider inferred)
  devlog draft --task 2.1 --note "added retry logic"
  devlog draft --save                   # Append the draft to the journal
  devlog draft --prompt                 # Print the prompt instead of calling the model`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDraft(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.model, "model", "m", "claude-haiku", "Model to draft with (provider inferred from the name)")
	cmd.Flags().StringVarP(&flags.task, "task", "t", "", "Task identifier for the entry")
	cmd.Flags().StringVar(&flags.note, "note", "", "Short note on what was done, to guide the draft")
	cmd.Flags().BoolVar(&flags.save, "save", false, "Append the draft to DEVELOPMENT_LOG.md")
	cmd.Flags().BoolVar(&flags.prompt, "prompt", false, "Print the prompt and exit without calling the model")

	return cmd
}

// runDraft executes the draft command.
func runDraft(cmd *cobra.Command, flags *draftFlags) error {
	printer := newPrinter(cmd)

	draftCtx, err := buildDraftContext(flags)
	if err != nil {
		printer.Error(err)
		return err
	}

	if flags.prompt {
		printer.Print("%s\n", draft.BuildPrompt(draftCtx))
		return nil
	}

	client, err := llm.New(flags.model, "")
	if err != nil {
		printer.Error(err)
		return err
	}

	resp, err := client.Complete(cmd.Context(), llm.Request{
		System: draft.SystemPrompt(),
		Prompt: draft.BuildPrompt(draftCtx),
	})
	if err != nil {
		printer.Error(err)
		return err
	}

	entry, err := draft.ParseEntry(resp.Content, time.Now())
	if err != nil {
		printer.Error(err)
		return err
	}
	if flags.task != "" {
		entry.TaskID = flags.task
	}

	if flags.save {
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
				"model":   resp.Model,
			})
		}
		printer.Print("%s %s\n", printer.Styles().Success.Render("Logged"), entry.Heading())
		return nil
	}

	if printer.IsJSON() {
		return printer.WriteJSON(entry)
	}
	printer.Print("%s", journal.Render(entry))
	printer.Stderr("\nDraft only. Re-run with --save to append it.\n")
	return nil
}

// buildDraftContext gathers git state for the drafting prompt.
func buildDraftContext(flags *draftFlags) (*draft.Context, error) {
	if !git.IsRepo() {
		return nil, output.NewSystemError("not in a git repository")
	}

	root, err := git.RepoRoot()
	if err != nil {
		return nil, output.NewSystemErrorWithCause("getting repo root", err)
	}
	branch, err := git.CurrentBranch()
	if err != nil {
		return nil, output.NewSystemErrorWithCause("getting current branch", err)
	}

	changes, err := git.ChangedFiles()
	if err != nil {
		return nil, output.NewSystemErrorWithCause("listing changed files", err)
	}
	commits, err := git.RecentCommits(5)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("listing recent commits", err)
	}

	// Best effort; an empty diff still yields a usable prompt.
	diff, _ := git.Diff(maxDraftDiffBytes)

	return &draft.Context{
		RepoName: filepath.Base(root),
		Branch:   branch,
		TaskID:   flags.task,
		Note:     flags.note,
		Changes:  changes,
		Commits:  commits,
		Diff:     diff,
	}, nil
}

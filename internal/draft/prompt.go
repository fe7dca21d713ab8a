package draft

import (
	"fmt"
	"strings"

	"github.com/jralston/devlog/internal/git"
)

// Context provides the data a drafting prompt is built from.
type Context struct {
	RepoName string
	Branch   string
	TaskID   string       // optional task id supplied by the user
	Note     string       // optional short note on what was done
	Changes  []git.Change // working-tree changes
	Commits  []git.Commit // recent commits for context
	Diff     string       // truncated unified diff
}

// systemPrompt fixes the model's role and output contract.
const systemPrompt = `You write development journal entries for readers who have
never programmed. You output ONLY a single JSON object, no prose around it,
matching this shape:

{
  "task_id": "string",
  "title": "short string",
  "summary": "2-3 plain-language sentences on what was done",
  "files": [{"path": "string", "description": "one line on what changed"}],
  "details": [{"heading": "string", "body": "plain-language explanation",
               "language": "string", "code": "short excerpt, no backticks",
               "terms": [{"name": "string", "definition": "plain-language definition"}]}],
  "lessons": ["one practical lesson per item"]
}

Define every technical term. Omit "details" or "lessons" entirely when you
have nothing useful to say. Never invent files that are not in the input.`

// BuildPrompt renders the user prompt for a drafting request.
func BuildPrompt(ctx *Context) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Repository: %s (branch %s)\n", ctx.RepoName, ctx.Branch)
	if ctx.TaskID != "" {
		fmt.Fprintf(&b, "Task id to use: %s\n", ctx.TaskID)
	}
	if ctx.Note != "" {
		fmt.Fprintf(&b, "Author's note on the work: %s\n", ctx.Note)
	}

	if len(ctx.Changes) > 0 {
		b.WriteString("\nChanged files:\n")
		for _, c := range ctx.Changes {
			fmt.Fprintf(&b, "- %s (%s)\n", c.Path, c.Kind)
		}
	}

	if len(ctx.Commits) > 0 {
		b.WriteString("\nRecent commits (newest first):\n")
		for _, c := range ctx.Commits {
			fmt.Fprintf(&b, "- %s %s\n", c.Short, c.Subject)
		}
	}

	if ctx.Diff != "" {
		b.WriteString("\nDiff:\n```diff\n")
		b.WriteString(ctx.Diff)
		b.WriteString("\n```\n")
	}

	b.WriteString("\nWrite the journal entry JSON for this work.")
	return b.String()
}

// SystemPrompt returns the fixed system prompt.
func SystemPrompt() string {
	return systemPrompt
}

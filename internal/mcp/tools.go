package mcp

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jralston/devlog/internal/git"
	"github.com/jralston/devlog/internal/journal"
	"github.com/jralston/devlog/internal/rule"
)

// --- Log tool ---

// LogInput is the input for the log tool: the structured entry record.
type LogInput struct {
	TaskID  string               `json:"task_id"           jsonschema:"task identifier, e.g. 2.1"`
	Title   string               `json:"title"             jsonschema:"short entry title"`
	Status  string               `json:"status,omitempty"  jsonschema:"done or in-progress (default done)"`
	Date    string               `json:"date,omitempty"    jsonschema:"entry date as YYYY-MM-DD (default today)"`
	Summary string               `json:"summary,omitempty" jsonschema:"What We Did narrative"`
	Files   []journal.FileChange `json:"files,omitempty"   jsonschema:"files created or modified"`
	Details []journal.Detail     `json:"details,omitempty" jsonschema:"Technical Details blocks"`
	Lessons []string             `json:"lessons,omitempty" jsonschema:"What We Learned bullets"`
}

// LogOutput is the output for the log tool.
type LogOutput struct {
	TaskID  string `json:"task_id" jsonschema:"task identifier of the appended entry"`
	Heading string `json:"heading" jsonschema:"rendered entry heading line"`
	Path    string `json:"path"    jsonschema:"path of the journal file written"`
}

func handleLog(file *journal.File) mcp.ToolHandlerFor[LogInput, LogOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input LogInput) (*mcp.CallToolResult, LogOutput, error) {
		entry, err := entryFromInput(input)
		if err != nil {
			return nil, LogOutput{}, err
		}

		if err := file.Append(entry); err != nil {
			return nil, LogOutput{}, fmt.Errorf("appending entry: %w", err)
		}

		return nil, LogOutput{
			TaskID:  entry.TaskID,
			Heading: entry.Heading(),
			Path:    file.Path(),
		}, nil
	}
}

// entryFromInput builds and defaults a journal entry from tool input.
func entryFromInput(input LogInput) (*journal.Entry, error) {
	entry := &journal.Entry{
		TaskID:  input.TaskID,
		Title:   input.Title,
		Status:  journal.Status(input.Status),
		Summary: input.Summary,
		Files:   input.Files,
		Details: input.Details,
		Lessons: input.Lessons,
	}
	if entry.Status == "" {
		entry.Status = journal.StatusDone
	}
	if input.Date != "" {
		parsed, err := time.Parse("2006-01-02", input.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", input.Date)
		}
		entry.Date = parsed
	} else {
		entry.Date = time.Now()
	}
	return entry, nil
}

// --- Show tool ---

// ShowInput is the input for the show tool.
type ShowInput struct {
	TaskID string `json:"task_id,omitempty" jsonschema:"task identifier to display"`
	Latest bool   `json:"latest,omitempty"  jsonschema:"show the most recent entry"`
}

// ShowOutput is the output for the show tool.
type ShowOutput struct {
	Entry *journal.Entry `json:"entry" jsonschema:"the journal entry"`
}

func handleShow(file *journal.File) mcp.ToolHandlerFor[ShowInput, ShowOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ShowInput) (*mcp.CallToolResult, ShowOutput, error) {
		if input.TaskID == "" && !input.Latest {
			return nil, ShowOutput{}, errors.New("specify task_id or set latest=true")
		}
		if input.TaskID != "" && input.Latest {
			return nil, ShowOutput{}, errors.New("cannot use both task_id and latest")
		}

		doc, err := file.Load()
		if err != nil {
			return nil, ShowOutput{}, err
		}

		var entry *journal.Entry
		if input.Latest {
			entry = doc.LatestEntry()
			if entry == nil {
				return nil, ShowOutput{}, errors.New("no entries found in journal")
			}
		} else {
			entry = doc.FindEntry(input.TaskID)
			if entry == nil {
				return nil, ShowOutput{}, fmt.Errorf("no entry for task %s", input.TaskID)
			}
		}

		return nil, ShowOutput{Entry: entry}, nil
	}
}

// --- Status tool ---

// StatusInput is the input for the status tool (no parameters needed).
type StatusInput struct{}

// StatusOutput is the output for the status tool.
type StatusOutput struct {
	Repo       string `json:"repo,omitempty"   jsonschema:"repository name"`
	Branch     string `json:"branch,omitempty" jsonschema:"current branch"`
	Head       string `json:"head,omitempty"   jsonschema:"HEAD commit SHA"`
	Path       string `json:"path"             jsonschema:"journal file path"`
	Exists     bool   `json:"exists"           jsonschema:"whether the journal file exists"`
	Entries    int    `json:"entries"          jsonschema:"total number of entries"`
	Done       int    `json:"done"             jsonschema:"entries marked done"`
	InProgress int    `json:"in_progress"      jsonschema:"entries marked in-progress"`
}

func handleStatus(file *journal.File) mcp.ToolHandlerFor[StatusInput, StatusOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ StatusInput) (*mcp.CallToolResult, StatusOutput, error) {
		out := StatusOutput{
			Path:   file.Path(),
			Exists: file.Exists(),
		}

		if git.IsRepo() {
			if root, err := git.RepoRoot(); err == nil {
				out.Repo = filepath.Base(root)
			}
			if branch, err := git.CurrentBranch(); err == nil {
				out.Branch = branch
			}
			if head, err := git.HEAD(); err == nil {
				out.Head = head
			}
		}

		if out.Exists {
			doc, err := file.Load()
			if err != nil {
				return nil, StatusOutput{}, err
			}
			out.Entries = len(doc.Entries)
			for _, e := range doc.Entries {
				if e.Status == journal.StatusInProgress {
					out.InProgress++
				} else {
					out.Done++
				}
			}
		}

		return nil, out, nil
	}
}

// --- Template tool ---

// TemplateInput is the input for the template tool.
type TemplateInput struct {
	Name string `json:"name,omitempty" jsonschema:"rule template name (default generic)"`
}

// TemplateOutput is the output for the template tool.
type TemplateOutput struct {
	Name         string `json:"name"         jsonschema:"resolved template name"`
	Source       string `json:"source"       jsonschema:"where the template came from: built-in, global, or project"`
	Instructions string `json:"instructions" jsonschema:"the entry format instructions"`
}

func handleTemplate() mcp.ToolHandlerFor[TemplateInput, TemplateOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input TemplateInput) (*mcp.CallToolResult, TemplateOutput, error) {
		name := input.Name
		if name == "" {
			name = "generic"
		}

		tmpl, err := rule.Load(name)
		if err != nil {
			return nil, TemplateOutput{}, fmt.Errorf("loading template: %w", err)
		}

		return nil, TemplateOutput{
			Name:         tmpl.Name,
			Source:       tmpl.Source,
			Instructions: tmpl.Content,
		}, nil
	}
}

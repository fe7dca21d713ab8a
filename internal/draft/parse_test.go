package draft

import (
	"strings"
	"testing"
	"time"

	"github.com/jralston/devlog/internal/journal"
)

func TestParseEntry(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	content := `Here is the entry:

{
  "task_id": "2.1",
  "title": "Add Error Handling to API Endpoint",
  "summary": "Added proper error handling with status codes.",
  "files": [{"path": "api/handler.go", "description": "new middleware"}],
  "lessons": ["Handlers should never panic"]
}

Let me know if you need anything else!`

	entry, err := ParseEntry(content, now)
	if err != nil {
		t.Fatalf("ParseEntry() unexpected error: %v", err)
	}

	if entry.TaskID != "2.1" {
		t.Errorf("TaskID = %q, want 2.1", entry.TaskID)
	}
	if entry.Status != journal.StatusDone {
		t.Errorf("Status = %q, want default done", entry.Status)
	}
	if !entry.Date.Equal(now) {
		t.Errorf("Date = %v, want defaulted to now", entry.Date)
	}
	if len(entry.Files) != 1 || entry.Files[0].Path != "api/handler.go" {
		t.Errorf("Files = %+v", entry.Files)
	}
}

func TestParseEntry_KeepsExplicitFields(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	content := `{"task_id": "3.2", "title": "WIP", "status": "in-progress", "date": "2026-08-15"}`

	entry, err := ParseEntry(content, now)
	if err != nil {
		t.Fatalf("ParseEntry() unexpected error: %v", err)
	}
	if entry.Status != journal.StatusInProgress {
		t.Errorf("Status = %q, want in-progress", entry.Status)
	}
	if want := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC); !entry.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", entry.Date, want)
	}
}

func TestParseEntry_NoJSON(t *testing.T) {
	_, err := ParseEntry("the model rambled and produced no object", time.Now())
	if err == nil {
		t.Fatal("ParseEntry() expected error for output without JSON")
	}
}

func TestParseEntry_MalformedEntryRejected(t *testing.T) {
	content := `{"task_id": "1.1", "title": "ok", "summary": "prose\n## Task 9.9: Injected ✅"}`
	_, err := ParseEntry(content, time.Now())
	if err == nil {
		t.Fatal("ParseEntry() expected error for an entry that breaks the journal structure")
	}
	if !strings.Contains(err.Error(), "malformed") {
		t.Errorf("error = %q, want a malformed-entry message", err)
	}
}

func TestBuildPrompt(t *testing.T) {
	ctx := &Context{
		RepoName: "myapp",
		Branch:   "main",
		TaskID:   "2.1",
		Note:     "added retry logic",
		Changes:  nil,
		Diff:     "diff --git a/x b/x",
	}

	prompt := BuildPrompt(ctx)
	for _, want := range []string{"myapp", "main", "2.1", "added retry logic", "diff --git"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("BuildPrompt() missing %q:\n%s", want, prompt)
		}
	}
}

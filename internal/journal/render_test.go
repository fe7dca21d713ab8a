package journal

import (
	"strings"
	"testing"
	"time"
)

func TestRender_FullEntry(t *testing.T) {
	got := Render(validEntry())

	want := `## Task 2.1: Add Error Handling to API Endpoint ✅

*2026-08-29*

### What We Did

Added proper error handling with appropriate status codes.

### Files Created/Modified

- ` + "`api/handler.go`" + ` - new error middleware

### Technical Details

#### How the middleware works

Every request passes through the middleware first.

` + "```go" + `
func wrap(h http.Handler) http.Handler { return h }
` + "```" + `

**Key terms:**

- **middleware**: code that runs around every request

### What We Learned

- HTTP handlers should never panic
`

	if got != want {
		t.Errorf("Render() mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRender_EmptyOptionalFields(t *testing.T) {
	entry := &Entry{
		TaskID: "3.2",
		Title:  "Sketch the config loader",
		Status: StatusInProgress,
	}

	got := Render(entry)

	if want := "## Task 3.2: Sketch the config loader 🚧\n"; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}

	// No dangling headers for fields that were never set.
	for _, header := range []string{headerSummary, headerFiles, headerDetails, headerLessons} {
		if strings.Contains(got, header) {
			t.Errorf("Render() contains dangling header %q", header)
		}
	}
}

func TestRender_FileWithoutDescription(t *testing.T) {
	entry := &Entry{
		TaskID: "1.1",
		Title:  "Add config",
		Files:  []FileChange{{Path: "config.yaml"}},
	}

	got := Render(entry)
	if !strings.Contains(got, "- `config.yaml`\n") {
		t.Errorf("Render() = %q, want a bare file line", got)
	}
	if strings.Contains(got, "config.yaml` -") {
		t.Errorf("Render() = %q, has a dangling description dash", got)
	}
}

func TestRender_TrailingNewlinesTrimmed(t *testing.T) {
	entry := &Entry{
		TaskID:  "1.2",
		Title:   "Trim things",
		Summary: "Some prose.\n\n\n",
		Lessons: []string{"a lesson\n"},
	}

	got := Render(entry)
	if strings.Contains(got, "\n\n\n") {
		t.Errorf("Render() contains a run of blank lines:\n%q", got)
	}
	if !strings.HasSuffix(got, "- a lesson\n") {
		t.Errorf("Render() = %q, want trimmed lesson line", got)
	}
}

func TestRender_DetailWithoutCode(t *testing.T) {
	entry := &Entry{
		TaskID: "4.1",
		Title:  "Document the flow",
		Details: []Detail{
			{Heading: "Request flow", Body: "The request goes through three stages."},
		},
	}

	got := Render(entry)
	if strings.Contains(got, "```") {
		t.Errorf("Render() = %q, has a fence for an empty code excerpt", got)
	}
	if !strings.Contains(got, "#### Request flow\n") {
		t.Errorf("Render() = %q, missing detail heading", got)
	}
}

func TestScaffold(t *testing.T) {
	got := Scaffold("My App")
	if !strings.HasPrefix(got, "# Development Log - My App\n") {
		t.Errorf("Scaffold() = %q, want title line with project name", got)
	}

	bare := Scaffold("")
	if !strings.HasPrefix(bare, "# Development Log\n") {
		t.Errorf("Scaffold(\"\") = %q, want bare title line", bare)
	}
}

func TestRender_UndatedEntryHasNoDateLine(t *testing.T) {
	entry := &Entry{TaskID: "5.5", Title: "No date", Date: time.Time{}}
	if got := Render(entry); strings.Contains(got, "\n*") {
		t.Errorf("Render() = %q, has a date line for a zero date", got)
	}
}

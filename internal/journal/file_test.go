package journal

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jralston/devlog/internal/output"
)

func tempFile(t *testing.T) *File {
	t.Helper()
	return NewFile(filepath.Join(t.TempDir(), LogFileName))
}

func TestFile_Init(t *testing.T) {
	file := tempFile(t)

	if file.Exists() {
		t.Fatal("Exists() = true before Init")
	}
	if err := file.Init("My App", false); err != nil {
		t.Fatalf("Init() unexpected error: %v", err)
	}
	if !file.Exists() {
		t.Fatal("Exists() = false after Init")
	}

	content, err := file.Read()
	if err != nil {
		t.Fatalf("Read() unexpected error: %v", err)
	}
	if !strings.HasPrefix(content, "# Development Log - My App\n") {
		t.Errorf("Read() = %q, want the scaffold title", content)
	}
}

func TestFile_Init_Conflict(t *testing.T) {
	file := tempFile(t)

	if err := file.Init("App", false); err != nil {
		t.Fatalf("Init() unexpected error: %v", err)
	}

	err := file.Init("App", false)
	if err == nil {
		t.Fatal("Init() on existing file expected error, got nil")
	}
	if output.GetExitCode(err) != output.ExitConflict {
		t.Errorf("Init() exit code = %d, want %d", output.GetExitCode(err), output.ExitConflict)
	}

	if err := file.Init("App", true); err != nil {
		t.Errorf("Init(force) unexpected error: %v", err)
	}
}

func TestFile_Read_Missing(t *testing.T) {
	file := tempFile(t)

	_, err := file.Read()
	if err == nil {
		t.Fatal("Read() on missing file expected error, got nil")
	}
	if output.GetExitCode(err) != output.ExitUserError {
		t.Errorf("Read() exit code = %d, want %d", output.GetExitCode(err), output.ExitUserError)
	}
	if !strings.Contains(err.Error(), "devlog init") {
		t.Errorf("Read() error = %q, want a hint to run init", err)
	}
}

func TestFile_Append_PreservesPriorBytes(t *testing.T) {
	file := tempFile(t)
	if err := file.Init("App", false); err != nil {
		t.Fatalf("Init() unexpected error: %v", err)
	}

	first := &Entry{TaskID: "1.1", Title: "First", Summary: "Did the first thing."}
	if err := file.Append(first); err != nil {
		t.Fatalf("Append() unexpected error: %v", err)
	}

	before, err := file.Read()
	if err != nil {
		t.Fatalf("Read() unexpected error: %v", err)
	}

	second := &Entry{TaskID: "1.2", Title: "Second", Summary: "Did the second thing."}
	if err := file.Append(second); err != nil {
		t.Fatalf("Append() unexpected error: %v", err)
	}

	after, err := file.Read()
	if err != nil {
		t.Fatalf("Read() unexpected error: %v", err)
	}

	if !strings.HasPrefix(after, before) {
		t.Error("Append() modified prior content; the journal is append-only")
	}
}

func TestFile_Append_NTimesYieldsNEntriesInOrder(t *testing.T) {
	file := tempFile(t)
	if err := file.Init("App", false); err != nil {
		t.Fatalf("Init() unexpected error: %v", err)
	}

	ids := []string{"1.1", "1.2", "2.1", "2.2", "3.1"}
	for _, id := range ids {
		entry := &Entry{TaskID: id, Title: "Task " + id, Summary: "Work for " + id}
		if err := file.Append(entry); err != nil {
			t.Fatalf("Append(%s) unexpected error: %v", id, err)
		}
	}

	doc, err := file.Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if len(doc.Entries) != len(ids) {
		t.Fatalf("len(Entries) = %d, want %d", len(doc.Entries), len(ids))
	}
	for i, id := range ids {
		if doc.Entries[i].TaskID != id {
			t.Errorf("Entries[%d].TaskID = %q, want %q", i, doc.Entries[i].TaskID, id)
		}
	}
}

func TestFile_Append_RejectsInvalidEntry(t *testing.T) {
	file := tempFile(t)
	if err := file.Init("App", false); err != nil {
		t.Fatalf("Init() unexpected error: %v", err)
	}

	bad := &Entry{TaskID: "1.1", Title: "ok", Summary: "prose\n## Task 9.9: Injected ✅"}
	err := file.Append(bad)
	if err == nil {
		t.Fatal("Append() with invalid entry expected error, got nil")
	}
	if output.GetExitCode(err) != output.ExitUserError {
		t.Errorf("Append() exit code = %d, want %d", output.GetExitCode(err), output.ExitUserError)
	}

	// The file must be untouched after a rejected append.
	doc, loadErr := file.Load()
	if loadErr != nil {
		t.Fatalf("Load() unexpected error: %v", loadErr)
	}
	if len(doc.Entries) != 0 {
		t.Errorf("len(Entries) = %d after rejected append, want 0", len(doc.Entries))
	}
}

func TestAppendSection_BeforeProgressSummary(t *testing.T) {
	existing := `# Development Log

## Task 1.1: First ✅

### What We Did

Things.

---

## Progress Summary

One task done.
`
	section := Render(&Entry{TaskID: "1.2", Title: "Second", Summary: "More things."})
	updated := appendSection(existing, section)

	doc := Parse(updated)
	if len(doc.Entries) != 2 {
		t.Fatalf("len(Entries) = %d, want 2", len(doc.Entries))
	}
	if doc.Entries[1].TaskID != "1.2" {
		t.Errorf("Entries[1].TaskID = %q, want 1.2", doc.Entries[1].TaskID)
	}
	if doc.ProgressSummary != "One task done." {
		t.Errorf("ProgressSummary = %q, want it preserved after insert", doc.ProgressSummary)
	}

	summaryIdx := strings.Index(updated, "## Progress Summary")
	entryIdx := strings.Index(updated, "## Task 1.2:")
	if entryIdx > summaryIdx {
		t.Error("new entry landed after the Progress Summary")
	}

	// Both halves of the original document keep their bytes.
	if !strings.HasPrefix(updated, existing[:strings.Index(existing, "## Progress Summary")]) {
		t.Error("content before the Progress Summary changed")
	}
	if !strings.HasSuffix(updated, existing[strings.Index(existing, "## Progress Summary"):]) {
		t.Error("the Progress Summary section changed")
	}
}

func TestAppendSection_SingleSeparatorAroundInsertedEntry(t *testing.T) {
	existing := "# Log\n\n## Task 1.1: First ✅\n\nDone.\n\n---\n\n## Progress Summary\n\nOne.\n"
	updated := appendSection(existing, Render(&Entry{TaskID: "1.2", Title: "Second"}))

	if strings.Contains(updated, SectionSeparator+"\n\n"+SectionSeparator) {
		t.Errorf("insert doubled the separator before the new entry:\n%s", updated)
	}

	entryIdx := strings.Index(updated, "## Task 1.2:")
	summaryIdx := strings.Index(updated, progressSummaryHeading)
	if entryIdx < 0 || summaryIdx < entryIdx {
		t.Fatalf("new entry not inserted before the summary:\n%s", updated)
	}
	if between := updated[entryIdx:summaryIdx]; strings.Count(between, "\n"+SectionSeparator+"\n") != 1 {
		t.Errorf("want exactly one separator between new entry and summary, got:\n%s", between)
	}
}

func TestAppendSection_SummaryWithoutSeparator(t *testing.T) {
	// A summary not already preceded by a separator gains one on each side
	// of the inserted entry.
	existing := "# Log\n\n## Progress Summary\n\nNothing yet.\n"
	updated := appendSection(existing, Render(&Entry{TaskID: "1.1", Title: "First"}))

	doc := Parse(updated)
	if len(doc.Entries) != 1 || doc.Entries[0].TaskID != "1.1" {
		t.Fatalf("Parse(updated) entries = %+v, want the inserted task", doc.Entries)
	}
	if doc.ProgressSummary != "Nothing yet." {
		t.Errorf("ProgressSummary = %q, want it preserved", doc.ProgressSummary)
	}
	if strings.Count(updated, SectionSeparator+"\n") != 2 {
		t.Errorf("want separators on both sides of the entry, got:\n%s", updated)
	}
}

func TestAppendSection_FencedSummaryHeadingIgnored(t *testing.T) {
	existing := "# Log\n\n```markdown\n## Progress Summary\n```\n"
	updated := appendSection(existing, Render(&Entry{TaskID: "1.1", Title: "T"}))

	if !strings.HasPrefix(updated, existing) {
		t.Error("a fenced Progress Summary lookalike triggered a mid-file insert")
	}
}

func TestFile_Append_WithoutJournalFile(t *testing.T) {
	file := tempFile(t)

	err := file.Append(&Entry{TaskID: "1.1", Title: "T", Date: time.Now()})
	if err == nil {
		t.Fatal("Append() without a journal file expected error, got nil")
	}
	var exitErr *output.ExitError
	if !errors.As(err, &exitErr) {
		t.Errorf("Append() error = %T, want *output.ExitError", err)
	}
}

func TestAtomicWrite_NoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, LogFileName)

	if err := atomicWrite(path, []byte("content\n")); err != nil {
		t.Fatalf("atomicWrite() unexpected error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != LogFileName {
		t.Errorf("dir contains %d entries, want only %s", len(entries), LogFileName)
	}
}

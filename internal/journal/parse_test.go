package journal

import (
	"testing"
	"time"
)

func TestParse_RoundTrip(t *testing.T) {
	original := validEntry()

	content := Scaffold("My App") + "\n\n" + SectionSeparator + "\n\n" + Render(original)
	doc := Parse(content)

	if doc.Title != "Development Log - My App" {
		t.Errorf("Title = %q, want %q", doc.Title, "Development Log - My App")
	}
	if len(doc.Entries) != 1 {
		t.Fatalf("len(Entries) = %d, want 1", len(doc.Entries))
	}

	got := doc.Entries[0]
	if got.TaskID != original.TaskID {
		t.Errorf("TaskID = %q, want %q", got.TaskID, original.TaskID)
	}
	if got.Title != original.Title {
		t.Errorf("Title = %q, want %q", got.Title, original.Title)
	}
	if got.Status != original.Status {
		t.Errorf("Status = %q, want %q", got.Status, original.Status)
	}
	if !got.Date.Equal(original.Date) {
		t.Errorf("Date = %v, want %v", got.Date, original.Date)
	}
	if got.Summary != original.Summary {
		t.Errorf("Summary = %q, want %q", got.Summary, original.Summary)
	}
	if len(got.Files) != 1 || got.Files[0] != original.Files[0] {
		t.Errorf("Files = %+v, want %+v", got.Files, original.Files)
	}
	if len(got.Lessons) != 1 || got.Lessons[0] != original.Lessons[0] {
		t.Errorf("Lessons = %+v, want %+v", got.Lessons, original.Lessons)
	}

	if len(got.Details) != 1 {
		t.Fatalf("len(Details) = %d, want 1", len(got.Details))
	}
	d, want := got.Details[0], original.Details[0]
	if d.Heading != want.Heading || d.Body != want.Body || d.Language != want.Language || d.Code != want.Code {
		t.Errorf("Detail = %+v, want %+v", d, want)
	}
	if len(d.Terms) != 1 || d.Terms[0] != want.Terms[0] {
		t.Errorf("Terms = %+v, want %+v", d.Terms, want.Terms)
	}
}

func TestParse_StatusMarkers(t *testing.T) {
	tests := []struct {
		name    string
		heading string
		want    Status
	}{
		{"done marker", "## Task 1.1: Finish the parser ✅", StatusDone},
		{"in progress marker", "## Task 1.2: Start the renderer 🚧", StatusInProgress},
		{"no marker defaults to done", "## Task 1.3: Untagged work", StatusDone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Parse(tt.heading + "\n")
			if len(doc.Entries) != 1 {
				t.Fatalf("len(Entries) = %d, want 1", len(doc.Entries))
			}
			if got := doc.Entries[0].Status; got != tt.want {
				t.Errorf("Status = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_SkipsUnknownSections(t *testing.T) {
	content := `# Development Log

Intro text.

---

## Setup Notes

Not an entry, just prose someone added by hand.

---

## Task 1.1: Real entry ✅

### What We Did

Something.
`
	doc := Parse(content)

	if len(doc.Entries) != 1 {
		t.Fatalf("len(Entries) = %d, want 1", len(doc.Entries))
	}
	if doc.Entries[0].TaskID != "1.1" {
		t.Errorf("TaskID = %q, want %q", doc.Entries[0].TaskID, "1.1")
	}
	if doc.Intro != "Intro text." {
		t.Errorf("Intro = %q, want %q", doc.Intro, "Intro text.")
	}
}

func TestParse_HeadingsInsideFencesIgnored(t *testing.T) {
	content := `## Task 1.1: Document markdown pitfalls ✅

### Technical Details

#### Example of a heading in code

` + "```markdown" + `
## Task 9.9: This is not a real entry ✅
### What We Did
---
` + "```" + `

### What We Learned

- Fences protect literal markdown
`
	doc := Parse(content)

	if len(doc.Entries) != 1 {
		t.Fatalf("len(Entries) = %d, want 1", len(doc.Entries))
	}
	entry := doc.Entries[0]
	if entry.TaskID != "1.1" {
		t.Errorf("TaskID = %q, want %q", entry.TaskID, "1.1")
	}
	if len(entry.Details) != 1 {
		t.Fatalf("len(Details) = %d, want 1", len(entry.Details))
	}
	wantCode := "## Task 9.9: This is not a real entry ✅\n### What We Did\n---"
	if entry.Details[0].Code != wantCode {
		t.Errorf("Code = %q, want %q", entry.Details[0].Code, wantCode)
	}
	if len(entry.Lessons) != 1 {
		t.Errorf("Lessons = %+v, want one item", entry.Lessons)
	}
}

func TestParse_ProgressSummary(t *testing.T) {
	content := `# Development Log

## Task 1.1: First ✅

### What We Did

Things.

---

## Progress Summary

Two tasks done, one to go.
`
	doc := Parse(content)

	if len(doc.Entries) != 1 {
		t.Fatalf("len(Entries) = %d, want 1", len(doc.Entries))
	}
	if doc.ProgressSummary != "Two tasks done, one to go." {
		t.Errorf("ProgressSummary = %q", doc.ProgressSummary)
	}
}

func TestDocument_FindEntry_LastWins(t *testing.T) {
	doc := &Document{Entries: []*Entry{
		{TaskID: "2.1", Title: "First attempt"},
		{TaskID: "3.1", Title: "Other work"},
		{TaskID: "2.1", Title: "Second attempt"},
	}}

	got := doc.FindEntry("2.1")
	if got == nil || got.Title != "Second attempt" {
		t.Errorf("FindEntry(2.1) = %+v, want the later entry", got)
	}
	if doc.FindEntry("9.9") != nil {
		t.Error("FindEntry(9.9) = non-nil, want nil")
	}
}

func TestDocument_LatestEntry(t *testing.T) {
	empty := &Document{}
	if empty.LatestEntry() != nil {
		t.Error("LatestEntry() on empty document = non-nil, want nil")
	}

	doc := &Document{Entries: []*Entry{
		{TaskID: "1.1"},
		{TaskID: "1.2"},
	}}
	if got := doc.LatestEntry(); got == nil || got.TaskID != "1.2" {
		t.Errorf("LatestEntry() = %+v, want task 1.2", got)
	}
}

func TestSplitTitleMarker(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantTitle  string
		wantStatus Status
	}{
		{"done", "Fix the build ✅", "Fix the build", StatusDone},
		{"in progress", "Fix the build 🚧", "Fix the build", StatusInProgress},
		{"no marker", "Fix the build", "Fix the build", StatusDone},
		{"extra spaces", "Fix the build   ✅", "Fix the build", StatusDone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, status := splitTitleMarker(tt.input)
			if title != tt.wantTitle || status != tt.wantStatus {
				t.Errorf("splitTitleMarker(%q) = (%q, %q), want (%q, %q)",
					tt.input, title, status, tt.wantTitle, tt.wantStatus)
			}
		})
	}
}

func TestFindDateLine(t *testing.T) {
	tests := []struct {
		name   string
		lines  []string
		want   time.Time
		wantOK bool
	}{
		{
			name:   "valid date line",
			lines:  []string{"", "*2026-08-29*", ""},
			want:   time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "no date line",
			lines:  []string{"", "just prose"},
			wantOK: false,
		},
		{
			name:   "bold is not a date line",
			lines:  []string{"**2026-08-29**"},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := findDateLine(tt.lines)
			if ok != tt.wantOK {
				t.Fatalf("findDateLine() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("findDateLine() = %v, want %v", got, tt.want)
			}
		})
	}
}

package journal

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func validEntry() *Entry {
	return &Entry{
		TaskID:  "2.1",
		Title:   "Add Error Handling to API Endpoint",
		Status:  StatusDone,
		Date:    time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
		Summary: "Added proper error handling with appropriate status codes.",
		Files: []FileChange{
			{Path: "api/handler.go", Description: "new error middleware"},
		},
		Details: []Detail{
			{
				Heading:  "How the middleware works",
				Body:     "Every request passes through the middleware first.",
				Language: "go",
				Code:     "func wrap(h http.Handler) http.Handler { return h }",
				Terms: []Term{
					{Name: "middleware", Definition: "code that runs around every request"},
				},
			},
		},
		Lessons: []string{"HTTP handlers should never panic"},
	}
}

func TestEntry_Validate(t *testing.T) {
	tests := []struct {
		name       string
		modify     func(*Entry)
		wantErr    bool
		wantFields []string
	}{
		{
			name:    "valid entry",
			modify:  func(*Entry) {},
			wantErr: false,
		},
		{
			name:    "empty optional fields are fine",
			modify:  func(e *Entry) { e.Summary = ""; e.Files = nil; e.Details = nil; e.Lessons = nil },
			wantErr: false,
		},
		{
			name:       "newline in task id",
			modify:     func(e *Entry) { e.TaskID = "2.\n1" },
			wantErr:    true,
			wantFields: []string{"task_id"},
		},
		{
			name:       "colon in task id",
			modify:     func(e *Entry) { e.TaskID = "2:1" },
			wantErr:    true,
			wantFields: []string{"task_id"},
		},
		{
			name:       "newline in title",
			modify:     func(e *Entry) { e.Title = "two\nlines" },
			wantErr:    true,
			wantFields: []string{"title"},
		},
		{
			name:       "section heading in summary",
			modify:     func(e *Entry) { e.Summary = "text\n## Task 9.9: Fake ✅\nmore" },
			wantErr:    true,
			wantFields: []string{"summary"},
		},
		{
			name:       "separator line in summary",
			modify:     func(e *Entry) { e.Summary = "text\n---\nmore" },
			wantErr:    true,
			wantFields: []string{"summary"},
		},
		{
			name:       "fence in code excerpt",
			modify:     func(e *Entry) { e.Details[0].Code = "fmt.Println(\"x\")\n```\n## Task" },
			wantErr:    true,
			wantFields: []string{"details[0].code"},
		},
		{
			name:       "newline in file path",
			modify:     func(e *Entry) { e.Files[0].Path = "a\nb.go" },
			wantErr:    true,
			wantFields: []string{"files[0]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := validEntry()
			tt.modify(entry)

			err := entry.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() expected error, got nil")
			}

			var valErr *ValidationError
			if !AsValidationError(err, &valErr) {
				t.Fatalf("Validate() error is not a ValidationError: %v", err)
			}
			for _, field := range tt.wantFields {
				found := false
				for _, got := range valErr.Fields {
					if got == field {
						found = true
					}
				}
				if !found {
					t.Errorf("Validate() fields = %v, want to contain %q", valErr.Fields, field)
				}
			}
		})
	}
}

func TestEntry_Heading(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		want   string
	}{
		{"done", StatusDone, "## Task 2.1: Add Error Handling to API Endpoint ✅"},
		{"in progress", StatusInProgress, "## Task 2.1: Add Error Handling to API Endpoint 🚧"},
		{"unset defaults to done", "", "## Task 2.1: Add Error Handling to API Endpoint ✅"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := validEntry()
			entry.Status = tt.status
			if got := entry.Heading(); got != tt.want {
				t.Errorf("Heading() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEntry_JSONDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "plain date",
			input: `{"task_id":"1.1","title":"T","date":"2026-08-29"}`,
			want:  time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "rfc3339 date",
			input: `{"task_id":"1.1","title":"T","date":"2026-08-29T10:30:00Z"}`,
			want:  time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC),
		},
		{
			name:  "no date",
			input: `{"task_id":"1.1","title":"T"}`,
			want:  time.Time{},
		},
		{
			name:    "garbage date",
			input:   `{"task_id":"1.1","title":"T","date":"yesterday"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var entry Entry
			err := json.Unmarshal([]byte(tt.input), &entry)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Unmarshal expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal unexpected error: %v", err)
			}
			if !entry.Date.Equal(tt.want) {
				t.Errorf("date = %v, want %v", entry.Date, tt.want)
			}
		})
	}
}

func TestEntry_MarshalJSON(t *testing.T) {
	entry := validEntry()
	data, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("Marshal unexpected error: %v", err)
	}
	if !strings.Contains(string(data), `"date":"2026-08-29"`) {
		t.Errorf("Marshal output %s does not contain plain date", data)
	}

	var back Entry
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal unexpected error: %v", err)
	}
	if back.TaskID != entry.TaskID || back.Title != entry.Title || !back.Date.Equal(entry.Date) {
		t.Errorf("round trip changed entry: got %+v", back)
	}
}

package journal

import (
	"testing"
	"time"
)

func filterEntries() []*Entry {
	return []*Entry{
		{TaskID: "1.1", Title: "Set up the project", Status: StatusDone,
			Date: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), Summary: "Initial scaffolding."},
		{TaskID: "2.1", Title: "Add error handling", Status: StatusDone,
			Date: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC), Summary: "Handlers return status codes."},
		{TaskID: "2.3", Title: "Add request logging", Status: StatusInProgress,
			Date: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), Summary: "Structured logs per request."},
		{TaskID: "3.1", Title: "Undated cleanup", Status: StatusDone, Summary: "Removed dead code."},
	}
}

func TestFilter_Apply(t *testing.T) {
	tests := []struct {
		name    string
		filter  Filter
		wantIDs []string
	}{
		{
			name:    "zero filter matches all",
			filter:  Filter{},
			wantIDs: []string{"1.1", "2.1", "2.3", "3.1"},
		},
		{
			name:    "status done",
			filter:  Filter{Status: StatusDone},
			wantIDs: []string{"1.1", "2.1", "3.1"},
		},
		{
			name:    "status in progress",
			filter:  Filter{Status: StatusInProgress},
			wantIDs: []string{"2.3"},
		},
		{
			name:    "task prefix",
			filter:  Filter{TaskPrefix: "2."},
			wantIDs: []string{"2.1", "2.3"},
		},
		{
			name:    "since excludes undated",
			filter:  Filter{Since: time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC)},
			wantIDs: []string{"2.1", "2.3"},
		},
		{
			name:    "until excludes undated",
			filter:  Filter{Until: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)},
			wantIDs: []string{"1.1", "2.1"},
		},
		{
			name: "since and until combine",
			filter: Filter{
				Since: time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC),
				Until: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
			},
			wantIDs: []string{"2.1"},
		},
		{
			name:    "text matches title case-insensitively",
			filter:  Filter{Text: "ERROR"},
			wantIDs: []string{"2.1"},
		},
		{
			name:    "text matches summary",
			filter:  Filter{Text: "dead code"},
			wantIDs: []string{"3.1"},
		},
		{
			name:    "last keeps the tail",
			filter:  Filter{Last: 2},
			wantIDs: []string{"2.3", "3.1"},
		},
		{
			name:    "last combines with status",
			filter:  Filter{Status: StatusDone, Last: 2},
			wantIDs: []string{"2.1", "3.1"},
		},
		{
			name:    "no match",
			filter:  Filter{Text: "nonexistent"},
			wantIDs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(filterEntries())

			if len(got) != len(tt.wantIDs) {
				t.Fatalf("Apply() returned %d entries, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].TaskID != id {
					t.Errorf("Apply()[%d].TaskID = %q, want %q", i, got[i].TaskID, id)
				}
			}
		})
	}
}

func TestFilter_DateBoundsInclusive(t *testing.T) {
	entries := []*Entry{
		{TaskID: "1.1", Date: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)},
	}

	onDate := Filter{
		Since: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		Until: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
	}
	if got := onDate.Apply(entries); len(got) != 1 {
		t.Errorf("Apply() with bounds on the entry date = %d entries, want 1", len(got))
	}
}

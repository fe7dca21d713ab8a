// Package journal provides the entry schema, rendering, parsing, and
// file storage for the devlog development journal (DEVELOPMENT_LOG.md).
package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// LogFileName is the journal file name in a project root.
const LogFileName = "DEVELOPMENT_LOG.md"

// DateLayout is the date format used in entry date lines and JSON records.
const DateLayout = "2006-01-02"

// Status describes the completion state of an entry.
type Status string

// Entry statuses and their Markdown markers.
const (
	StatusDone       Status = "done"
	StatusInProgress Status = "in-progress"

	markerDone       = "✅"
	markerInProgress = "🚧"
)

// Marker returns the Markdown status marker for s.
// Unknown statuses render as done; the journal is beginner-facing
// and an unrecognized marker would only confuse.
func (s Status) Marker() string {
	if s == StatusInProgress {
		return markerInProgress
	}
	return markerDone
}

// statusForMarker maps a trailing heading marker back to a Status.
func statusForMarker(marker string) Status {
	if marker == markerInProgress {
		return StatusInProgress
	}
	return StatusDone
}

// Entry represents one journal section documenting a single unit of work.
// Every field is author-supplied free text; none is validated for content
// correctness, only for structural safety (see Validate).
type Entry struct {
	TaskID  string       `json:"task_id"`
	Title   string       `json:"title"`
	Status  Status       `json:"status,omitempty"`
	Date    time.Time    `json:"date,omitempty"`
	Summary string       `json:"summary,omitempty"`
	Files   []FileChange `json:"files,omitempty"`
	Details []Detail     `json:"details,omitempty"`
	Lessons []string     `json:"lessons,omitempty"`
}

// entryJSON mirrors Entry with the date as a plain YYYY-MM-DD string,
// which is what agents write in entry records.
type entryJSON struct {
	TaskID  string       `json:"task_id"`
	Title   string       `json:"title"`
	Status  Status       `json:"status,omitempty"`
	Date    string       `json:"date,omitempty"`
	Summary string       `json:"summary,omitempty"`
	Files   []FileChange `json:"files,omitempty"`
	Details []Detail     `json:"details,omitempty"`
	Lessons []string     `json:"lessons,omitempty"`
}

// MarshalJSON encodes the date as YYYY-MM-DD.
func (e *Entry) MarshalJSON() ([]byte, error) {
	out := entryJSON{
		TaskID:  e.TaskID,
		Title:   e.Title,
		Status:  e.Status,
		Summary: e.Summary,
		Files:   e.Files,
		Details: e.Details,
		Lessons: e.Lessons,
	}
	if !e.Date.IsZero() {
		out.Date = e.Date.Format(DateLayout)
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts the date as YYYY-MM-DD or RFC3339.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var in entryJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*e = Entry{
		TaskID:  in.TaskID,
		Title:   in.Title,
		Status:  in.Status,
		Summary: in.Summary,
		Files:   in.Files,
		Details: in.Details,
		Lessons: in.Lessons,
	}
	if in.Date == "" {
		return nil
	}
	parsed, err := time.Parse(DateLayout, in.Date)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339, in.Date)
	}
	if err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", in.Date)
	}
	e.Date = parsed
	return nil
}

// FileChange is one line of the Files Created/Modified list.
type FileChange struct {
	Path        string `json:"path"`
	Description string `json:"description,omitempty"`
}

// Detail is one Technical Details subsection: a heading, explanatory
// prose, an optional code excerpt, and an optional glossary of terms.
type Detail struct {
	Heading  string `json:"heading"`
	Body     string `json:"body,omitempty"`
	Language string `json:"language,omitempty"`
	Code     string `json:"code,omitempty"`
	Terms    []Term `json:"terms,omitempty"`
}

// Term is one glossary item in a Key terms list.
type Term struct {
	Name       string `json:"name"`
	Definition string `json:"definition"`
}

// ValidationError is returned when an entry would render into
// structurally broken Markdown.
type ValidationError struct {
	Fields  []string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Fields, ", "))
}

// AsValidationError checks if err is a ValidationError and extracts it.
func AsValidationError(err error, target **ValidationError) bool {
	return errors.As(err, target)
}

// Validate checks that the entry renders into structurally well-formed
// Markdown: headings stay on one line, code excerpts cannot break out of
// their fence, and prose cannot inject section-level headings. It never
// judges content; empty fields are fine, the format allows them.
func (e *Entry) Validate() error {
	var bad []string

	if strings.ContainsAny(e.TaskID, "\n:") {
		bad = append(bad, "task_id")
	}
	if strings.Contains(e.Title, "\n") {
		bad = append(bad, "title")
	}
	if containsSectionHeading(e.Summary) {
		bad = append(bad, "summary")
	}
	for i, f := range e.Files {
		if strings.ContainsAny(f.Path, "\n`") || strings.Contains(f.Description, "\n") {
			bad = append(bad, fmt.Sprintf("files[%d]", i))
		}
	}
	bad = e.validateDetails(bad)
	for i, l := range e.Lessons {
		if containsSectionHeading(l) {
			bad = append(bad, fmt.Sprintf("lessons[%d]", i))
		}
	}

	if len(bad) > 0 {
		return &ValidationError{
			Fields:  bad,
			Message: "fields would break the journal structure",
		}
	}
	return nil
}

// validateDetails checks each Technical Details block.
func (e *Entry) validateDetails(bad []string) []string {
	for i, d := range e.Details {
		if strings.Contains(d.Heading, "\n") {
			bad = append(bad, fmt.Sprintf("details[%d].heading", i))
		}
		if containsSectionHeading(d.Body) {
			bad = append(bad, fmt.Sprintf("details[%d].body", i))
		}
		if strings.Contains(d.Code, "```") {
			bad = append(bad, fmt.Sprintf("details[%d].code", i))
		}
		if strings.ContainsAny(d.Language, " \n`") {
			bad = append(bad, fmt.Sprintf("details[%d].language", i))
		}
		for j, t := range d.Terms {
			if strings.ContainsAny(t.Name, "\n:") || strings.Contains(t.Definition, "\n") {
				bad = append(bad, fmt.Sprintf("details[%d].terms[%d]", i, j))
			}
		}
	}
	return bad
}

// containsSectionHeading reports whether prose contains a line that would
// parse as an entry or subsection heading, corrupting the document outline.
func containsSectionHeading(prose string) bool {
	for line := range strings.SplitSeq(prose, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "## ") || strings.HasPrefix(trimmed, "### ") {
			return true
		}
		if trimmed == "---" {
			return true
		}
	}
	return false
}

// Heading returns the rendered section heading for the entry.
// Format: "## Task <id>: <title> <marker>"
func (e *Entry) Heading() string {
	return fmt.Sprintf("## Task %s: %s %s", e.TaskID, e.Title, e.Status.Marker())
}

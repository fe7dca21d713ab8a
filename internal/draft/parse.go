package draft

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/jralston/devlog/internal/journal"
	"github.com/jralston/devlog/internal/output"
)

// ParseEntry parses sanitized model output into a journal entry.
// The model sometimes wraps the object in stray text; everything before
// the first '{' and after the last '}' is dropped before unmarshaling.
func ParseEntry(content string, now time.Time) (*journal.Entry, error) {
	content = SanitizeOutput(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil, output.NewSystemError("model output contained no JSON object")
	}

	var entry journal.Entry
	if err := json.Unmarshal([]byte(content[start:end+1]), &entry); err != nil {
		return nil, output.NewSystemErrorWithCause("failed to parse model output", err)
	}

	if entry.Status == "" {
		entry.Status = journal.StatusDone
	}
	if entry.Date.IsZero() {
		entry.Date = now
	}

	if err := entry.Validate(); err != nil {
		return nil, output.NewSystemError("model produced a malformed entry: " + err.Error())
	}

	return &entry, nil
}

// Package export provides structured output of a parsed journal for
// downstream tooling.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jralston/devlog/internal/journal"
	"github.com/jralston/devlog/internal/output"
)

// FormatJSON writes the whole parsed document as JSON to the printer.
func FormatJSON(printer *output.Printer, doc *journal.Document) error {
	return printer.WriteJSON(doc)
}

// WriteJSONFiles writes each entry as a separate JSON file to the output
// directory. Files are named task-<id>.json with the id made path-safe.
func WriteJSONFiles(entries []*journal.Entry, dir string) error {
	for i, entry := range entries {
		filename := filepath.Join(dir, entryFileName(entry, i)+".json")

		data, err := json.MarshalIndent(entry, "", "  ")
		if err != nil {
			return output.NewSystemError(fmt.Sprintf("failed to marshal entry %s: %v", entry.TaskID, err))
		}

		if err := os.WriteFile(filename, data, 0o600); err != nil {
			return output.NewSystemError(fmt.Sprintf("failed to write file %s: %v", filename, err))
		}
	}

	return nil
}

// WriteMarkdownFiles writes each entry as a separate Markdown file, using
// the same rendering the journal itself uses.
func WriteMarkdownFiles(entries []*journal.Entry, dir string) error {
	for i, entry := range entries {
		filename := filepath.Join(dir, entryFileName(entry, i)+".md")

		if err := os.WriteFile(filename, []byte(journal.Render(entry)), 0o600); err != nil {
			return output.NewSystemError(fmt.Sprintf("failed to write file %s: %v", filename, err))
		}
	}

	return nil
}

// entryFileName builds a path-safe file stem for an entry.
// Task ids are free text, so anything outside [A-Za-z0-9.-] is replaced;
// the position index keeps duplicate ids from clobbering each other.
func entryFileName(entry *journal.Entry, position int) string {
	id := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return '-'
		}
	}, entry.TaskID)
	if id == "" {
		id = "entry"
	}
	return fmt.Sprintf("task-%s-%03d", id, position+1)
}

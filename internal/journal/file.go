package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jralston/devlog/internal/git"
	"github.com/jralston/devlog/internal/output"
)

// File provides append-only access to a journal file on disk.
// The journal is a single Markdown document with one writer at a time;
// writes go through temp-then-rename so a crash never truncates it.
type File struct {
	path string
}

// NewFile creates a File for the given path.
func NewFile(path string) *File {
	return &File{path: path}
}

// DefaultFile returns the journal file for the current project:
// <repo root>/DEVELOPMENT_LOG.md inside a git repository, otherwise
// ./DEVELOPMENT_LOG.md.
func DefaultFile() *File {
	if root, err := git.RepoRoot(); err == nil {
		return NewFile(filepath.Join(root, LogFileName))
	}
	return NewFile(LogFileName)
}

// Path returns the journal file path.
func (f *File) Path() string {
	return f.path
}

// Exists returns true if the journal file exists.
func (f *File) Exists() bool {
	info, err := os.Stat(f.path)
	return err == nil && !info.IsDir()
}

// Init creates the journal file with the document scaffold.
// Returns a conflict error if the file already exists and force is false.
func (f *File) Init(projectName string, force bool) error {
	if !force && f.Exists() {
		return output.NewConflictError(LogFileName + " already exists: " + f.path)
	}
	if err := atomicWrite(f.path, []byte(Scaffold(projectName)+"\n")); err != nil {
		return output.NewSystemErrorWithCause("failed to create journal", err)
	}
	return nil
}

// Read returns the raw journal content.
func (f *File) Read() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", output.NewUserError(LogFileName + " not found: run 'devlog init' first")
		}
		return "", output.NewSystemErrorWithCause("failed to read journal", err)
	}
	return string(data), nil
}

// Load reads and parses the journal.
func (f *File) Load() (*Document, error) {
	content, err := f.Read()
	if err != nil {
		return nil, err
	}
	return Parse(content), nil
}

// Append validates the entry, renders it, and appends it to the journal.
// All prior content is preserved byte-for-byte; a separator line is
// inserted before the new section. If the document ends with a Progress
// Summary section, the entry goes in front of it so entries stay in
// chronological order and the summary stays last.
func (f *File) Append(entry *Entry) error {
	if err := entry.Validate(); err != nil {
		return output.NewUserError(err.Error())
	}

	existing, err := f.Read()
	if err != nil {
		return err
	}

	updated := appendSection(existing, Render(entry))
	if err := atomicWrite(f.path, []byte(updated)); err != nil {
		return output.NewSystemErrorWithCause("failed to write journal", err)
	}
	return nil
}

// appendSection inserts a rendered section into existing content.
// Pure function so the byte-preservation property is directly testable.
func appendSection(existing, section string) string {
	section = strings.TrimRight(section, "\n") + "\n"
	block := SectionSeparator + "\n\n" + section

	if idx := progressSummaryOffset(existing); idx >= 0 {
		// Insert before the Progress Summary; both halves keep their bytes.
		// The summary is usually already preceded by a separator, in which
		// case the entry only brings the one dividing it from the summary.
		insert := section + "\n" + SectionSeparator + "\n\n"
		if !endsWithSeparator(existing[:idx]) {
			insert = block + "\n" + SectionSeparator + "\n\n"
		}
		return existing[:idx] + insert + existing[idx:]
	}

	if existing == "" {
		return section
	}
	if !strings.HasSuffix(existing, "\n") {
		existing += "\n"
	}
	return existing + "\n" + block
}

// endsWithSeparator reports whether the last non-blank line of content is
// a section separator.
func endsWithSeparator(content string) bool {
	trimmed := strings.TrimRight(content, "\n")
	last := trimmed[strings.LastIndexByte(trimmed, '\n')+1:]
	return strings.TrimSpace(last) == SectionSeparator
}

// progressSummaryOffset returns the byte offset of the Progress Summary
// heading line, or -1. Lines inside code fences do not count.
func progressSummaryOffset(content string) int {
	offset := 0
	inFence := false
	for line := range strings.SplitSeq(content, "\n") {
		if fenceRe.MatchString(line) {
			inFence = !inFence
		}
		if !inFence && strings.TrimSpace(line) == progressSummaryHeading {
			return offset
		}
		offset += len(line) + 1
	}
	return -1
}

// atomicWrite writes data to path via a temp file in the same directory.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*.md")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

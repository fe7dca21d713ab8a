package journal

import (
	"regexp"
	"strings"
	"time"
)

// Document is a parsed DEVELOPMENT_LOG.md: a title, an introduction,
// the entry sections in file order, and an optional trailing
// Progress Summary section kept as raw Markdown.
type Document struct {
	Title           string   `json:"title"`
	Intro           string   `json:"intro,omitempty"`
	Entries         []*Entry `json:"entries"`
	ProgressSummary string   `json:"progress_summary,omitempty"`
}

// entryHeadingRe matches "## Task <id>: <title>" headings.
// The status marker, if present, trails the title and is split off separately.
var entryHeadingRe = regexp.MustCompile(`^## Task\s+(.+?):\s+(.*)$`)

// dateLineRe matches the italic date line under an entry heading.
var dateLineRe = regexp.MustCompile(`^\*(\d{4}-\d{2}-\d{2})\*$`)

// fileLineRe matches one Files Created/Modified list item.
var fileLineRe = regexp.MustCompile("^- `([^`]+)`(?: +- +(.*))?$")

// termLineRe matches one Key terms list item.
var termLineRe = regexp.MustCompile(`^- \*\*([^*]+)\*\*: +(.*)$`)

// fenceRe matches a code fence line, capturing the info string.
var fenceRe = regexp.MustCompile("^```([A-Za-z0-9+_-]*)\\s*$")

// Parse parses journal content into a Document.
// Sections that do not match the entry heading format are skipped; the
// journal is hand-editable and unknown prose must not fail the whole parse.
func Parse(content string) *Document {
	doc := &Document{}
	sections := splitSections(content)

	doc.Title, doc.Intro = parsePreamble(sections.preamble)

	for _, sec := range sections.sections {
		if strings.TrimSpace(sec.heading) == progressSummaryHeading {
			doc.ProgressSummary = strings.TrimSpace(strings.Join(sec.lines, "\n"))
			continue
		}
		if entry := parseEntrySection(sec); entry != nil {
			doc.Entries = append(doc.Entries, entry)
		}
	}

	return doc
}

// FindEntry returns the entry with the given task id, or nil.
// Task ids are not unique by contract; the last match wins, matching
// the reader's expectation that later entries supersede earlier ones.
func (d *Document) FindEntry(taskID string) *Entry {
	var found *Entry
	for _, e := range d.Entries {
		if e.TaskID == taskID {
			found = e
		}
	}
	return found
}

// LatestEntry returns the last entry in file order, or nil if none exist.
func (d *Document) LatestEntry() *Entry {
	if len(d.Entries) == 0 {
		return nil
	}
	return d.Entries[len(d.Entries)-1]
}

// section is one "## " block of the document.
type section struct {
	heading string
	lines   []string
}

// splitResult holds the preamble and sections of a document.
type splitResult struct {
	preamble []string
	sections []section
}

// splitSections splits content on top-level "## " headings, ignoring
// heading-lookalike lines inside code fences.
func splitSections(content string) splitResult {
	var result splitResult
	var current *section
	inFence := false

	for line := range strings.SplitSeq(content, "\n") {
		if fenceRe.MatchString(line) {
			inFence = !inFence
		}

		if !inFence && strings.HasPrefix(line, "## ") {
			if current != nil {
				result.sections = append(result.sections, *current)
			}
			current = &section{heading: line}
			continue
		}

		if current == nil {
			result.preamble = append(result.preamble, line)
		} else {
			current.lines = append(current.lines, line)
		}
	}
	if current != nil {
		result.sections = append(result.sections, *current)
	}
	return result
}

// parsePreamble extracts the document title and intro text.
func parsePreamble(lines []string) (title, intro string) {
	var introLines []string
	for _, line := range lines {
		if title == "" && strings.HasPrefix(line, "# ") {
			title = strings.TrimPrefix(line, "# ")
			continue
		}
		if strings.TrimSpace(line) == SectionSeparator {
			continue
		}
		introLines = append(introLines, line)
	}
	return title, strings.TrimSpace(strings.Join(introLines, "\n"))
}

// parseEntrySection parses one section into an Entry.
// Returns nil if the heading is not an entry heading.
func parseEntrySection(sec section) *Entry {
	m := entryHeadingRe.FindStringSubmatch(sec.heading)
	if m == nil {
		return nil
	}

	entry := &Entry{TaskID: m[1]}
	entry.Title, entry.Status = splitTitleMarker(m[2])

	subs := splitSubsections(sec.lines)
	if date, ok := findDateLine(subs.preamble); ok {
		entry.Date = date
	}

	for _, sub := range subs.sections {
		switch strings.TrimSpace(sub.heading) {
		case headerSummary:
			entry.Summary = joinProse(sub.lines)
		case headerFiles:
			entry.Files = parseFileLines(sub.lines)
		case headerDetails:
			entry.Details = parseDetails(sub.lines)
		case headerLessons:
			entry.Lessons = parseListItems(sub.lines)
		}
	}

	return entry
}

// splitTitleMarker separates a trailing status marker from the title.
func splitTitleMarker(titleText string) (string, Status) {
	titleText = strings.TrimSpace(titleText)
	for _, marker := range []string{markerDone, markerInProgress} {
		if strings.HasSuffix(titleText, marker) {
			title := strings.TrimSpace(strings.TrimSuffix(titleText, marker))
			return title, statusForMarker(marker)
		}
	}
	return titleText, StatusDone
}

// splitSubsections splits entry lines on "### " headings, fence-aware.
func splitSubsections(lines []string) splitResult {
	var result splitResult
	var current *section
	inFence := false

	for _, line := range lines {
		if fenceRe.MatchString(line) {
			inFence = !inFence
		}

		if !inFence && strings.TrimSpace(line) == SectionSeparator {
			continue
		}
		if !inFence && strings.HasPrefix(line, "### ") {
			if current != nil {
				result.sections = append(result.sections, *current)
			}
			current = &section{heading: line}
			continue
		}

		if current == nil {
			result.preamble = append(result.preamble, line)
		} else {
			current.lines = append(current.lines, line)
		}
	}
	if current != nil {
		result.sections = append(result.sections, *current)
	}
	return result
}

// findDateLine scans preamble lines for the italic date line.
func findDateLine(lines []string) (time.Time, bool) {
	for _, line := range lines {
		if m := dateLineRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			if t, err := time.Parse(DateLayout, m[1]); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// joinProse joins lines into trimmed prose.
func joinProse(lines []string) string {
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// parseFileLines parses Files Created/Modified list items.
func parseFileLines(lines []string) []FileChange {
	var files []FileChange
	for _, line := range lines {
		if m := fileLineRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			files = append(files, FileChange{Path: m[1], Description: m[2]})
		}
	}
	return files
}

// parseListItems parses "- " list items, one item per line.
func parseListItems(lines []string) []string {
	var items []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if after, ok := strings.CutPrefix(trimmed, "- "); ok {
			items = append(items, after)
		}
	}
	return items
}

// parseDetails parses the Technical Details body into Detail blocks.
func parseDetails(lines []string) []Detail {
	var details []Detail
	var current *Detail
	var bodyLines []string
	inFence := false
	inTerms := false

	flush := func() {
		if current == nil {
			return
		}
		current.Body = strings.TrimSpace(strings.Join(bodyLines, "\n"))
		details = append(details, *current)
		current = nil
		bodyLines = nil
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if m := fenceRe.FindStringSubmatch(line); m != nil {
			if inFence {
				inFence = false
			} else {
				inFence = true
				if current != nil {
					current.Language = m[1]
				}
			}
			continue
		}

		if inFence {
			if current != nil {
				if current.Code != "" {
					current.Code += "\n"
				}
				current.Code += line
			}
			continue
		}

		if strings.HasPrefix(line, "#### ") {
			flush()
			current = &Detail{Heading: strings.TrimPrefix(line, "#### ")}
			inTerms = false
			continue
		}

		if trimmed == keyTermsLabel {
			inTerms = true
			continue
		}

		if inTerms {
			if m := termLineRe.FindStringSubmatch(trimmed); m != nil && current != nil {
				current.Terms = append(current.Terms, Term{Name: m[1], Definition: m[2]})
				continue
			}
			if trimmed == "" {
				continue
			}
			inTerms = false
		}

		if current != nil {
			bodyLines = append(bodyLines, line)
		}
	}
	flush()

	return details
}

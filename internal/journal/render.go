package journal

import (
	"fmt"
	"strings"
)

// Section headers used inside an entry. These are the format contract:
// parse.go recognizes exactly these strings, and the rule templates in
// internal/rule teach assistants to produce them.
const (
	headerSummary = "### What We Did"
	headerFiles   = "### Files Created/Modified"
	headerDetails = "### Technical Details"
	headerLessons = "### What We Learned"

	keyTermsLabel = "**Key terms:**"

	// SectionSeparator is written between journal sections.
	SectionSeparator = "---"

	// progressSummaryHeading marks the optional trailing summary section.
	progressSummaryHeading = "## Progress Summary"
)

// Render formats an entry into its fixed Markdown section.
// Empty optional fields produce no header at all, so the output never
// contains a dangling heading. The result ends with a single newline.
func Render(e *Entry) string {
	var b strings.Builder

	b.WriteString(e.Heading())
	b.WriteString("\n")

	if !e.Date.IsZero() {
		fmt.Fprintf(&b, "\n*%s*\n", e.Date.Format(DateLayout))
	}

	if e.Summary != "" {
		b.WriteString("\n" + headerSummary + "\n\n")
		b.WriteString(strings.TrimRight(e.Summary, "\n"))
		b.WriteString("\n")
	}

	renderFiles(&b, e.Files)
	renderDetails(&b, e.Details)
	renderLessons(&b, e.Lessons)

	return b.String()
}

// renderFiles writes the Files Created/Modified list.
func renderFiles(b *strings.Builder, files []FileChange) {
	if len(files) == 0 {
		return
	}
	b.WriteString("\n" + headerFiles + "\n\n")
	for _, f := range files {
		if f.Description != "" {
			fmt.Fprintf(b, "- `%s` - %s\n", f.Path, f.Description)
		} else {
			fmt.Fprintf(b, "- `%s`\n", f.Path)
		}
	}
}

// renderDetails writes the Technical Details subsections.
func renderDetails(b *strings.Builder, details []Detail) {
	if len(details) == 0 {
		return
	}
	b.WriteString("\n" + headerDetails + "\n")
	for _, d := range details {
		fmt.Fprintf(b, "\n#### %s\n", d.Heading)
		if d.Body != "" {
			b.WriteString("\n" + strings.TrimRight(d.Body, "\n") + "\n")
		}
		if d.Code != "" {
			fmt.Fprintf(b, "\n```%s\n%s\n```\n", d.Language, strings.TrimRight(d.Code, "\n"))
		}
		if len(d.Terms) > 0 {
			b.WriteString("\n" + keyTermsLabel + "\n\n")
			for _, t := range d.Terms {
				fmt.Fprintf(b, "- **%s**: %s\n", t.Name, t.Definition)
			}
		}
	}
}

// renderLessons writes the What We Learned list.
func renderLessons(b *strings.Builder, lessons []string) {
	if len(lessons) == 0 {
		return
	}
	b.WriteString("\n" + headerLessons + "\n\n")
	for _, l := range lessons {
		fmt.Fprintf(b, "- %s\n", strings.TrimRight(l, "\n"))
	}
}

// Scaffold returns the initial journal document for a project.
// The intro explains the file to readers new to programming; assistants
// append entries after it.
func Scaffold(projectName string) string {
	var b strings.Builder
	b.WriteString("# Development Log")
	if projectName != "" {
		b.WriteString(" - " + projectName)
	}
	b.WriteString("\n\n")
	b.WriteString("This file documents every change made to this project, explained so that\n")
	b.WriteString("someone new to programming can follow along. Each entry says what was done,\n")
	b.WriteString("which files were touched, how it works, and what we learned. New entries are\n")
	b.WriteString("added at the end, and nothing is ever deleted.\n")
	return b.String()
}

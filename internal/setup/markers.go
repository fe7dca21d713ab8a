package setup

import (
	"os"
	"strings"

	"github.com/jralston/devlog/internal/output"
)

const (
	// MarkerBegin marks the start of devlog-managed content in a shared file.
	MarkerBegin = "<!-- BEGIN devlog -->"
	// MarkerEnd marks the end of devlog-managed content.
	MarkerEnd = "<!-- END devlog -->"
)

// hasMarkedSection checks if the devlog section exists in a file.
func hasMarkedSection(path string) bool {
	content, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return strings.Contains(string(content), MarkerBegin)
}

// installMarkedSection adds or replaces the devlog section in a shared file,
// preserving everything outside the markers. Creates the file if missing.
func installMarkedSection(path, body string) error {
	var content string
	existing, err := os.ReadFile(path)
	if err == nil {
		content = removeMarkedSection(string(existing))
	} else if !os.IsNotExist(err) {
		return output.NewSystemErrorWithCause("failed to read "+path, err)
	}

	section := MarkerBegin + "\n" + strings.TrimSpace(body) + "\n" + MarkerEnd

	if strings.TrimSpace(content) == "" {
		content = section + "\n"
	} else {
		content = strings.TrimRight(content, "\n") + "\n\n" + section + "\n"
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return output.NewSystemErrorWithCause("failed to write "+path, err)
	}
	return nil
}

// removeMarkedSectionFromFile strips the devlog section from a file.
// A file left empty (or marker-only) keeps a single trailing newline.
func removeMarkedSectionFromFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return output.NewSystemErrorWithCause("failed to read "+path, err)
	}

	newContent := removeMarkedSection(string(content))
	if strings.TrimSpace(newContent) == "" {
		return os.Remove(path)
	}

	if err := os.WriteFile(path, []byte(newContent), 0o644); err != nil {
		return output.NewSystemErrorWithCause("failed to write "+path, err)
	}
	return nil
}

// removeMarkedSection strips the devlog section from a content string.
func removeMarkedSection(content string) string {
	lines := strings.Split(content, "\n")
	var result []string
	inSection := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == MarkerBegin {
			inSection = true
			continue
		}
		if trimmed == MarkerEnd {
			inSection = false
			continue
		}
		if !inSection {
			result = append(result, line)
		}
	}

	finalContent := strings.Join(result, "\n")
	for strings.Contains(finalContent, "\n\n\n") {
		finalContent = strings.ReplaceAll(finalContent, "\n\n\n", "\n\n")
	}

	return strings.TrimRight(finalContent, "\n") + "\n"
}

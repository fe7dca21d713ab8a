package setup

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jralston/devlog/internal/git"
	"github.com/jralston/devlog/internal/journal"
	"github.com/jralston/devlog/internal/output"
)

const (
	// hookMarkerBegin marks the start of devlog-managed hook content.
	hookMarkerBegin = "# BEGIN devlog"
	// hookMarkerEnd marks the end of devlog-managed hook content.
	hookMarkerEnd = "# END devlog"
)

// hookContent is the post-commit snippet that reminds about the journal
// when a commit does not touch it.
var hookContent = hookMarkerBegin + `
if git diff-tree --no-commit-id --name-only -r HEAD | grep -qx "` + journal.LogFileName + `"; then
  :
else
  echo "devlog: this commit did not update ` + journal.LogFileName + ` (run 'devlog log')" >&2
fi
` + hookMarkerEnd

// HooksDir returns the repository's git hooks directory.
func HooksDir() (string, error) {
	dir, err := git.Run("rev-parse", "--git-path", "hooks")
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(dir) {
		root, rootErr := git.RepoRoot()
		if rootErr != nil {
			return "", rootErr
		}
		dir = filepath.Join(root, dir)
	}
	return dir, nil
}

// HookInstalled checks whether the devlog post-commit section is installed.
func HookInstalled() bool {
	dir, err := HooksDir()
	if err != nil {
		return false
	}
	data, err := os.ReadFile(filepath.Join(dir, "post-commit"))
	if err != nil {
		return false
	}
	return strings.Contains(string(data), hookMarkerBegin)
}

// InstallHook adds or refreshes the devlog section in the post-commit hook,
// preserving any existing hook content outside the markers.
func InstallHook() (string, error) {
	dir, err := HooksDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", output.NewSystemErrorWithCause("failed to create hooks directory", err)
	}

	hookPath := filepath.Join(dir, "post-commit")

	var content string
	existing, readErr := os.ReadFile(hookPath)
	if readErr == nil {
		content = removeHookSection(string(existing))
	} else if !os.IsNotExist(readErr) {
		return "", output.NewSystemErrorWithCause("failed to read hook file", readErr)
	}

	if !strings.HasPrefix(content, "#!") {
		content = "#!/bin/sh\n" + content
	}
	content = strings.TrimRight(content, "\n") + "\n\n" + hookContent + "\n"

	// #nosec G306 -- hooks need execute permission
	if err := os.WriteFile(hookPath, []byte(content), 0o755); err != nil {
		return "", output.NewSystemErrorWithCause("failed to write hook file", err)
	}
	return hookPath, nil
}

// RemoveHook removes the devlog section from the post-commit hook.
func RemoveHook() error {
	dir, err := HooksDir()
	if err != nil {
		return err
	}
	hookPath := filepath.Join(dir, "post-commit")

	content, readErr := os.ReadFile(hookPath)
	if readErr != nil {
		if os.IsNotExist(readErr) {
			return nil
		}
		return output.NewSystemErrorWithCause("failed to read hook file", readErr)
	}

	newContent := removeHookSection(string(content))
	if strings.TrimSpace(strings.TrimPrefix(newContent, "#!/bin/sh")) == "" {
		return os.Remove(hookPath)
	}

	// #nosec G306 -- hooks need execute permission
	if err := os.WriteFile(hookPath, []byte(newContent), 0o755); err != nil {
		return output.NewSystemErrorWithCause("failed to write hook file", err)
	}
	return nil
}

// removeHookSection strips the devlog section from hook content.
func removeHookSection(content string) string {
	lines := strings.Split(content, "\n")
	var result []string
	inSection := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, hookMarkerBegin) {
			inSection = true
			continue
		}
		if strings.HasPrefix(trimmed, hookMarkerEnd) {
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

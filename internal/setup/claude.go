package setup

import (
	"os"
	"path/filepath"

	"github.com/jralston/devlog/internal/output"
	"github.com/jralston/devlog/internal/rule"
)

// claudeEnv integrates devlog with Claude Code by maintaining a
// marker-delimited section in CLAUDE.md.
type claudeEnv struct{}

func init() {
	RegisterAgentEnv(claudeEnv{})
}

// Name returns the CLI identifier.
func (claudeEnv) Name() string { return "claude" }

// DisplayName returns the human-readable name.
func (claudeEnv) DisplayName() string { return "Claude Code" }

// settingsPath returns the CLAUDE.md path for the given scope.
func (claudeEnv) settingsPath(project bool) (path, scope string, err error) {
	if project {
		cwd, err := os.Getwd()
		if err != nil {
			return "", "", output.NewSystemErrorWithCause("failed to get working directory", err)
		}
		return filepath.Join(cwd, "CLAUDE.md"), "project", nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", "", output.NewSystemErrorWithCause("failed to get home directory", err)
	}
	return filepath.Join(home, ".claude", "CLAUDE.md"), "global", nil
}

// Detect checks project scope first, then global.
func (c claudeEnv) Detect() (string, string, bool) {
	for _, project := range []bool{true, false} {
		path, scope, err := c.settingsPath(project)
		if err != nil {
			continue
		}
		if hasMarkedSection(path) {
			return path, scope, true
		}
	}
	path, scope, _ := c.settingsPath(true)
	return path, scope, false
}

// Install writes the devlog section into CLAUDE.md.
func (c claudeEnv) Install(project bool) (string, error) {
	path, _, err := c.settingsPath(project)
	if err != nil {
		return "", err
	}

	tmpl, err := rule.Load("claude")
	if err != nil {
		return "", output.NewSystemError("failed to load claude rule template: " + err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", output.NewSystemErrorWithCause("failed to create settings directory", err)
	}
	if err := installMarkedSection(path, tmpl.Content); err != nil {
		return "", err
	}
	return path, nil
}

// Remove strips the devlog section from CLAUDE.md.
func (c claudeEnv) Remove(project bool) error {
	path, _, err := c.settingsPath(project)
	if err != nil {
		return err
	}
	return removeMarkedSectionFromFile(path)
}

// Check reports the install state for one scope.
func (c claudeEnv) Check(project bool) (string, string, bool, error) {
	path, scope, err := c.settingsPath(project)
	if err != nil {
		return "", "", false, err
	}
	return path, scope, hasMarkedSection(path), nil
}

package setup

import (
	"os"
	"path/filepath"

	"github.com/jralston/devlog/internal/output"
	"github.com/jralston/devlog/internal/rule"
)

// cursorRuleFile is the rule file name devlog owns under .cursor/rules.
const cursorRuleFile = "devlog.mdc"

// cursorEnv integrates devlog with Cursor by writing a .mdc rule file.
// Unlike CLAUDE.md the rule file is devlog-owned, so install overwrites
// it wholesale instead of splicing a marked section.
type cursorEnv struct{}

func init() {
	RegisterAgentEnv(cursorEnv{})
}

// Name returns the CLI identifier.
func (cursorEnv) Name() string { return "cursor" }

// DisplayName returns the human-readable name.
func (cursorEnv) DisplayName() string { return "Cursor" }

// rulePath returns the rule file path for the given scope.
func (cursorEnv) rulePath(project bool) (path, scope string, err error) {
	if project {
		cwd, err := os.Getwd()
		if err != nil {
			return "", "", output.NewSystemErrorWithCause("failed to get working directory", err)
		}
		return filepath.Join(cwd, ".cursor", "rules", cursorRuleFile), "project", nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", "", output.NewSystemErrorWithCause("failed to get home directory", err)
	}
	return filepath.Join(home, ".cursor", "rules", cursorRuleFile), "global", nil
}

// Detect checks project scope first, then global.
func (c cursorEnv) Detect() (string, string, bool) {
	for _, project := range []bool{true, false} {
		path, scope, err := c.rulePath(project)
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr == nil {
			return path, scope, true
		}
	}
	path, scope, _ := c.rulePath(true)
	return path, scope, false
}

// Install writes the devlog rule file.
func (c cursorEnv) Install(project bool) (string, error) {
	path, _, err := c.rulePath(project)
	if err != nil {
		return "", err
	}

	tmpl, err := rule.Load("cursor")
	if err != nil {
		return "", output.NewSystemError("failed to load cursor rule template: " + err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", output.NewSystemErrorWithCause("failed to create rules directory", err)
	}
	if err := os.WriteFile(path, []byte(tmpl.FormatMDC()), 0o644); err != nil {
		return "", output.NewSystemErrorWithCause("failed to write rule file", err)
	}
	return path, nil
}

// Remove deletes the devlog rule file.
func (c cursorEnv) Remove(project bool) error {
	path, _, err := c.rulePath(project)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return output.NewSystemErrorWithCause("failed to remove rule file", err)
	}
	return nil
}

// Check reports the install state for one scope.
func (c cursorEnv) Check(project bool) (string, string, bool, error) {
	path, scope, err := c.rulePath(project)
	if err != nil {
		return "", "", false, err
	}
	_, statErr := os.Stat(path)
	return path, scope, statErr == nil, nil
}

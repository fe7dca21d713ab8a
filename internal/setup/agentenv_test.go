package setup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// chdir changes into dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestRegistry(t *testing.T) {
	for _, name := range []string{"claude", "cursor"} {
		if GetAgentEnv(name) == nil {
			t.Errorf("GetAgentEnv(%q) = nil, want a registered environment", name)
		}
	}
	if GetAgentEnv("emacs") != nil {
		t.Error("GetAgentEnv(emacs) = non-nil, want nil")
	}

	envs := AllAgentEnvs()
	if len(envs) < 2 {
		t.Fatalf("AllAgentEnvs() returned %d environments, want at least 2", len(envs))
	}
}

func TestClaudeEnv_InstallCheckRemove(t *testing.T) {
	chdir(t, t.TempDir())
	env := GetAgentEnv("claude")

	path, err := env.Install(true)
	if err != nil {
		t.Fatalf("Install() unexpected error: %v", err)
	}
	if filepath.Base(path) != "CLAUDE.md" {
		t.Errorf("Install() path = %q, want a CLAUDE.md", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "DEVELOPMENT_LOG.md") {
		t.Error("installed section does not mention the journal file")
	}

	gotPath, scope, installed, err := env.Check(true)
	if err != nil {
		t.Fatalf("Check() unexpected error: %v", err)
	}
	if !installed || scope != "project" || gotPath != path {
		t.Errorf("Check() = (%q, %q, %v), want installed at %q in project scope", gotPath, scope, installed, path)
	}

	if err := env.Remove(true); err != nil {
		t.Fatalf("Remove() unexpected error: %v", err)
	}
	if _, _, installed, _ := env.Check(true); installed {
		t.Error("Check() still reports installed after Remove()")
	}
}

func TestCursorEnv_InstallWritesRuleFile(t *testing.T) {
	chdir(t, t.TempDir())
	env := GetAgentEnv("cursor")

	path, err := env.Install(true)
	if err != nil {
		t.Fatalf("Install() unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "---\n") {
		t.Errorf("rule file has no frontmatter:\n%s", content)
	}
	if !strings.Contains(content, "alwaysApply: true") {
		t.Errorf("rule file frontmatter missing alwaysApply:\n%s", content)
	}
	if !strings.Contains(content, "DEVELOPMENT_LOG.md") {
		t.Error("rule file does not mention the journal file")
	}

	if err := env.Remove(true); err != nil {
		t.Fatalf("Remove() unexpected error: %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("rule file should be deleted after Remove()")
	}
}

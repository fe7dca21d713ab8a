// Package rule provides the instruction artifacts devlog installs for AI
// coding assistants: static rule files telling the assistant to append a
// journal entry after every code change. Rules are Markdown with YAML
// frontmatter and resolve project-local over global over built-in.
package rule

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jralston/devlog/internal/config"
)

// Template is a rule template: frontmatter metadata plus instruction text.
type Template struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	AlwaysApply bool   `yaml:"alwaysApply"`
	Priority    string `yaml:"priority,omitempty"`

	// Content is the instruction text after the frontmatter.
	Content string `yaml:"-"`

	// Source records where the template was found, for display.
	Source string `yaml:"-"`
}

// Info provides template metadata for listing.
type Info struct {
	Name        string
	Description string
	Source      string // "built-in", "global", or "project"
	Overrides   string // empty or the source this one shadows
}

// Load finds and loads a rule template by name.
// Resolution order: project-local, then user global, then built-in.
func Load(name string) (*Template, error) {
	if tmpl, err := loadFromPath(projectRulesDir(), name); err == nil {
		tmpl.Source = "project"
		return tmpl, nil
	}

	if tmpl, err := loadFromPath(globalRulesDir(), name); err == nil {
		tmpl.Source = "global"
		return tmpl, nil
	}

	if tmpl, err := loadBuiltin(name); err == nil {
		tmpl.Source = "built-in"
		return tmpl, nil
	}

	return nil, fmt.Errorf("rule template %q not found", name)
}

// List returns all available rule templates, project and global overrides first.
func List() []Info {
	seen := make(map[string]string)
	var templates []Info

	sources := []struct {
		name string
		dir  string
	}{
		{"project", projectRulesDir()},
		{"global", globalRulesDir()},
	}

	for _, src := range sources {
		infos, err := listFromPath(src.dir, src.name)
		if err != nil {
			continue // directory may not exist
		}
		for _, info := range infos {
			if _, exists := seen[info.Name]; exists {
				markOverride(templates, info.Name, src.name)
				continue
			}
			seen[info.Name] = src.name
			templates = append(templates, info)
		}
	}

	for _, info := range listBuiltins() {
		if _, exists := seen[info.Name]; exists {
			markOverride(templates, info.Name, "built-in")
			continue
		}
		templates = append(templates, info)
	}

	return templates
}

// markOverride records on the winning template which source it shadows.
func markOverride(templates []Info, name, shadowed string) {
	for i := range templates {
		if templates[i].Name == name && templates[i].Overrides == "" {
			templates[i].Overrides = shadowed
		}
	}
}

// FormatMDC renders the template as a Cursor .mdc rule file:
// YAML frontmatter carrying alwaysApply/priority, then the instruction text.
func (t *Template) FormatMDC() string {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "description: %s\n", t.Description)
	fmt.Fprintf(&b, "alwaysApply: %t\n", t.AlwaysApply)
	if t.Priority != "" {
		fmt.Fprintf(&b, "priority: %s\n", t.Priority)
	}
	b.WriteString("---\n\n")
	b.WriteString(strings.TrimSpace(t.Content))
	b.WriteString("\n")
	return b.String()
}

// projectRulesDir returns the project-local rules directory.
func projectRulesDir() string {
	return ".devlog/rules"
}

// globalRulesDir returns the user's global rules directory.
func globalRulesDir() string {
	dir := config.Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "rules")
}

// loadFromPath attempts to load a template from a directory.
func loadFromPath(dir, name string) (*Template, error) {
	if dir == "" {
		return nil, errors.New("no directory")
	}

	path := filepath.Join(dir, name+".md")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rule template %s: %w", path, err)
	}

	return parseTemplate(string(data))
}

// listFromPath lists templates in a directory.
func listFromPath(dir, source string) ([]Info, error) {
	if dir == "" {
		return nil, errors.New("no directory")
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var templates []Info
	for _, entry := range dirEntries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}

		tmpl, err := parseTemplate(string(data))
		if err != nil {
			continue
		}

		templates = append(templates, Info{
			Name:        strings.TrimSuffix(entry.Name(), ".md"),
			Description: tmpl.Description,
			Source:      source,
		})
	}

	return templates, nil
}

// parseTemplate parses raw content with optional YAML frontmatter.
func parseTemplate(raw string) (*Template, error) {
	frontmatter, content := splitFrontmatter(raw)

	var tmpl Template
	if frontmatter != "" {
		if err := yaml.Unmarshal([]byte(frontmatter), &tmpl); err != nil {
			return nil, fmt.Errorf("invalid frontmatter: %w", err)
		}
	}

	tmpl.Content = strings.TrimSpace(content)
	return &tmpl, nil
}

// splitFrontmatter separates YAML frontmatter (delimited by ---) from content.
func splitFrontmatter(raw string) (frontmatter, content string) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "---") {
		return "", raw
	}

	rest := raw[3:]
	before, after, ok := strings.Cut(rest, "\n---")
	if !ok {
		return "", raw
	}

	return strings.TrimSpace(before), strings.TrimSpace(after)
}

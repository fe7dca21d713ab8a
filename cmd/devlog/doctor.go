// Package main provides the entry point for the devlog CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jralston/devlog/internal/git"
	"github.com/jralston/devlog/internal/journal"
	"github.com/jralston/devlog/internal/llm"
	"github.com/jralston/devlog/internal/output"
	"github.com/jralston/devlog/internal/setup"
)

// checkStatus represents the result of a health check.
type checkStatus string

const (
	checkPass checkStatus = "pass"
	checkWarn checkStatus = "warn"
	checkFail checkStatus = "fail"
)

// checkResult holds the result of a single health check.
type checkResult struct {
	Name    string      `json:"name"`
	Status  checkStatus `json:"status"`
	Message string      `json:"message"`
	Hint    string      `json:"hint,omitempty"`
}

// doctorSummary holds the counts of check results.
type doctorSummary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Failed   int `json:"failed"`
}

// newDoctorCmd creates the doctor command.
func newDoctorCmd() *cobra.Command {
	var quietFlag bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check installation health and suggest fixes",
		Long: `Check devlog installation health and suggest fixes.

Checks the git setup, the journal file and its structure, installed
integrations, and drafting API keys.

Each check reports:
  Pass    - Check passed
  Warning - Non-critical issue found
  Fail    - Critical issue that needs attention

Examples:
  devlog doctor              # Run all health checks
  devlog doctor --quiet      # Only show failures and warnings
  devlog doctor --json       # Output results as JSON`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, quietFlag)
		},
	}

	cmd.Flags().BoolVar(&quietFlag, "quiet", false, "Only show failures and warnings")

	return cmd
}

// runDoctor executes the doctor command.
func runDoctor(cmd *cobra.Command, quiet bool) error {
	printer := newPrinter(cmd)

	checks := runDoctorChecks()
	summary := summarize(checks)

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"version": buildVersion(),
			"checks":  checks,
			"summary": summary,
		})
	}

	styles := printer.Styles()
	for _, check := range checks {
		if quiet && check.Status == checkPass {
			continue
		}
		label := styles.Success.Render("pass")
		switch check.Status {
		case checkWarn:
			label = styles.Warning.Render("warn")
		case checkFail:
			label = styles.Error.Render("fail")
		}
		printer.Print("[%s] %s: %s\n", label, styles.Bold.Render(check.Name), check.Message)
		if check.Hint != "" && check.Status != checkPass {
			printer.Print("       %s\n", styles.Dim.Render(check.Hint))
		}
	}

	printer.Println()
	printer.Print("%d passed, %d warnings, %d failed\n", summary.Passed, summary.Warnings, summary.Failed)

	if summary.Failed > 0 {
		return output.NewSystemError("health checks failed")
	}
	return nil
}

// runDoctorChecks runs every health check in display order.
func runDoctorChecks() []checkResult {
	checks := []checkResult{
		checkGit(),
		checkJournal(),
		checkStructure(),
		checkHook(),
		checkAgents(),
		checkAPIKeys(),
	}
	return checks
}

// summarize tallies pass/warn/fail counts.
func summarize(checks []checkResult) doctorSummary {
	var s doctorSummary
	for _, check := range checks {
		switch check.Status {
		case checkPass:
			s.Passed++
		case checkWarn:
			s.Warnings++
		case checkFail:
			s.Failed++
		}
	}
	return s
}

// checkGit verifies we are inside a git repository.
func checkGit() checkResult {
	if !git.IsRepo() {
		return checkResult{
			Name:    "git",
			Status:  checkWarn,
			Message: "not in a git repository",
			Hint:    "devlog works without git, but pending/draft need a repository",
		}
	}
	branch, err := git.CurrentBranch()
	if err != nil {
		return checkResult{
			Name:    "git",
			Status:  checkWarn,
			Message: "repository has no commits yet",
		}
	}
	return checkResult{
		Name:    "git",
		Status:  checkPass,
		Message: "in a git repository on " + branch,
	}
}

// checkJournal verifies DEVELOPMENT_LOG.md exists.
func checkJournal() checkResult {
	file := journal.DefaultFile()
	if !file.Exists() {
		return checkResult{
			Name:    "journal",
			Status:  checkFail,
			Message: "DEVELOPMENT_LOG.md does not exist",
			Hint:    "run 'devlog init' to create it",
		}
	}
	return checkResult{
		Name:    "journal",
		Status:  checkPass,
		Message: file.Path() + " exists",
	}
}

// checkStructure parses the journal and reports entry counts.
func checkStructure() checkResult {
	file := journal.DefaultFile()
	if !file.Exists() {
		return checkResult{
			Name:    "structure",
			Status:  checkWarn,
			Message: "skipped, no journal file",
		}
	}
	doc, err := file.Load()
	if err != nil {
		return checkResult{
			Name:    "structure",
			Status:  checkFail,
			Message: "cannot read the journal: " + err.Error(),
		}
	}
	if len(doc.Entries) == 0 {
		return checkResult{
			Name:    "structure",
			Status:  checkWarn,
			Message: "the journal has no entries yet",
			Hint:    "append one with 'devlog log'",
		}
	}
	undated := 0
	for _, entry := range doc.Entries {
		if entry.Date.IsZero() {
			undated++
		}
	}
	if undated > 0 {
		return checkResult{
			Name:    "structure",
			Status:  checkWarn,
			Message: fmt.Sprintf("%d entries, %d without a date line", len(doc.Entries), undated),
			Hint:    "undated entries are skipped by --since/--until filters",
		}
	}
	return checkResult{
		Name:    "structure",
		Status:  checkPass,
		Message: fmt.Sprintf("%d well-formed entries", len(doc.Entries)),
	}
}

// checkHook reports whether the post-commit reminder hook is installed.
func checkHook() checkResult {
	if !git.IsRepo() {
		return checkResult{
			Name:    "hook",
			Status:  checkWarn,
			Message: "skipped, not in a git repository",
		}
	}
	if !setup.HookInstalled() {
		return checkResult{
			Name:    "hook",
			Status:  checkWarn,
			Message: "post-commit reminder hook is not installed",
			Hint:    "run 'devlog setup hook' to install it",
		}
	}
	return checkResult{
		Name:    "hook",
		Status:  checkPass,
		Message: "post-commit reminder hook is installed",
	}
}

// checkAgents reports detected agent environment integrations.
func checkAgents() checkResult {
	detected := setup.DetectedAgentEnvs()
	if len(detected) == 0 {
		return checkResult{
			Name:    "agents",
			Status:  checkWarn,
			Message: "no agent integrations installed",
			Hint:    "run 'devlog setup claude' or 'devlog setup cursor'",
		}
	}
	names := ""
	for i, env := range detected {
		if i > 0 {
			names += ", "
		}
		names += env.DisplayName()
	}
	return checkResult{
		Name:    "agents",
		Status:  checkPass,
		Message: "installed: " + names,
	}
}

// checkAPIKeys reports whether any drafting API key is configured.
func checkAPIKeys() checkResult {
	for _, envVar := range llm.APIKeyEnvVars() {
		if os.Getenv(envVar) != "" {
			return checkResult{
				Name:    "draft",
				Status:  checkPass,
				Message: envVar + " is set",
			}
		}
	}
	return checkResult{
		Name:    "draft",
		Status:  checkWarn,
		Message: "no LLM API key configured",
		Hint:    "set one of " + fmt.Sprint(llm.APIKeyEnvVars()) + " to use 'devlog draft'",
	}
}

// Package main provides the entry point for the devlog CLI.
package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jralston/devlog/internal/git"
	"github.com/jralston/devlog/internal/journal"
	"github.com/jralston/devlog/internal/output"
	"github.com/jralston/devlog/internal/setup"
)

// initFlags holds the command-line flags for the init command.
type initFlags struct {
	name  string
	force bool
	hook  bool
	agent string
}

// newInitCmd creates the init command.
func newInitCmd() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create DEVELOPMENT_LOG.md in the current repository",
		Long: `Create DEVELOPMENT_LOG.md at the repository root (or current directory
outside a git repository).

The file starts with a title and a short preamble; entries are appended
below it with 'devlog log'. Existing files are never overwritten unless
--force is given.

Examples:
  devlog init                    # Create the journal file
  devlog init --name "My App"    # Use a custom project name in the title
  devlog init --hook             # Also install the post-commit reminder hook
  devlog init --agent claude     # Also install Claude Code instructions`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.name, "name", "", "Project name for the journal title (default: directory name)")
	cmd.Flags().BoolVar(&flags.force, "force", false, "Overwrite an existing DEVELOPMENT_LOG.md")
	cmd.Flags().BoolVar(&flags.hook, "hook", false, "Install the post-commit reminder hook")
	cmd.Flags().StringVar(&flags.agent, "agent", "", "Also install agent instructions (claude, cursor)")

	return cmd
}

// runInit executes the init command.
func runInit(cmd *cobra.Command, flags *initFlags) error {
	printer := newPrinter(cmd)

	projectName := flags.name
	if projectName == "" {
		projectName = defaultProjectName()
	}

	file := journal.DefaultFile()
	created := !file.Exists() || flags.force
	if err := file.Init(projectName, flags.force); err != nil {
		printer.Error(err)
		return err
	}

	hookInstalled := false
	if flags.hook {
		if !git.IsRepo() {
			err := output.NewSystemError("--hook requires a git repository")
			printer.Error(err)
			return err
		}
		if _, err := setup.InstallHook(); err != nil {
			printer.Error(err)
			return err
		}
		hookInstalled = true
	}

	agentPath := ""
	if flags.agent != "" {
		env := setup.GetAgentEnv(flags.agent)
		if env == nil {
			err := output.NewUserError("unknown agent environment: " + flags.agent)
			printer.Error(err)
			return err
		}
		path, err := env.Install(true)
		if err != nil {
			printer.Error(err)
			return err
		}
		agentPath = path
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"status":         "ok",
			"path":           file.Path(),
			"created":        created,
			"hook_installed": hookInstalled,
			"agent_path":     agentPath,
		})
	}

	printer.Print("Created %s\n", file.Path())
	if hookInstalled {
		printer.Print("Installed post-commit reminder hook\n")
	}
	if agentPath != "" {
		printer.Print("Installed agent instructions at %s\n", agentPath)
	}
	printer.Println()
	printer.Print("Append your first entry with '%s'.\n", printer.Styles().Accent.Render("devlog log"))
	return nil
}

// defaultProjectName derives the project name from the repo root or cwd.
func defaultProjectName() string {
	if root, err := git.RepoRoot(); err == nil {
		return filepath.Base(root)
	}
	if cwd, err := os.Getwd(); err == nil {
		return filepath.Base(cwd)
	}
	return "Project"
}

// Package main provides the entry point for the devlog CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jralston/devlog/internal/output"
	"github.com/jralston/devlog/internal/setup"
)

// integrationInfo describes an available integration for listing.
type integrationInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Installed   bool   `json:"installed"`
	Scope       string `json:"scope,omitempty"`
	Location    string `json:"location,omitempty"`
}

// setupFlags holds the command-line flags shared by setup subcommands.
type setupFlags struct {
	global bool
	check  bool
	remove bool
}

// newSetupCmd creates the setup parent command with subcommands.
func newSetupCmd() *cobra.Command {
	var listFlag bool

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Install agent environment integrations",
		Long: `Install devlog instructions into agent coding environments, so the
assistant appends a journal entry after every change it makes.

Subcommands:
  claude    Install a marked section in CLAUDE.md
  cursor    Install .cursor/rules/devlog.mdc
  hook      Install the post-commit reminder hook

Flags:
  --list    List available integrations and their status

Examples:
  devlog setup --list            # List available integrations
  devlog setup claude            # Install for this project
  devlog setup claude --global   # Install in ~/.claude/CLAUDE.md
  devlog setup cursor --check    # Check installation status
  devlog setup cursor --remove   # Remove the integration
  devlog setup hook              # Install the git hook`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if listFlag {
				return runSetupList(cmd)
			}
			return cmd.Help()
		},
	}

	cmd.Flags().BoolVar(&listFlag, "list", false, "List available integrations and their status")

	for _, env := range setup.AllAgentEnvs() {
		cmd.AddCommand(newSetupAgentCmd(env))
	}
	cmd.AddCommand(newSetupHookCmd())
	return cmd
}

// runSetupList lists all integrations and their install state.
func runSetupList(cmd *cobra.Command) error {
	printer := newPrinter(cmd)

	var infos []integrationInfo
	for _, env := range setup.AllAgentEnvs() {
		path, scope, installed := env.Detect()
		infos = append(infos, integrationInfo{
			Name:        env.Name(),
			DisplayName: env.DisplayName(),
			Installed:   installed,
			Scope:       scope,
			Location:    path,
		})
	}
	infos = append(infos, integrationInfo{
		Name:        "hook",
		DisplayName: "Git post-commit reminder",
		Installed:   setup.HookInstalled(),
	})

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{"integrations": infos})
	}

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		state := "not installed"
		if info.Installed {
			state = "installed"
			if info.Scope != "" {
				state += " (" + info.Scope + ")"
			}
		}
		rows = append(rows, []string{info.Name, info.DisplayName, state})
	}
	printer.Table([]string{"NAME", "INTEGRATION", "STATUS"}, rows)
	return nil
}

// newSetupAgentCmd creates a setup subcommand for one agent environment.
func newSetupAgentCmd(env setup.AgentEnv) *cobra.Command {
	flags := &setupFlags{}

	cmd := &cobra.Command{
		Use:   env.Name(),
		Short: fmt.Sprintf("Install the %s integration", env.DisplayName()),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSetupAgent(cmd, env, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.global, "global", false, "Install globally instead of for this project")
	cmd.Flags().BoolVar(&flags.check, "check", false, "Check installation status without changing anything")
	cmd.Flags().BoolVar(&flags.remove, "remove", false, "Remove the integration")

	return cmd
}

// runSetupAgent executes install/check/remove for one agent environment.
func runSetupAgent(cmd *cobra.Command, env setup.AgentEnv, flags *setupFlags) error {
	printer := newPrinter(cmd)
	project := !flags.global

	if flags.check {
		path, scope, installed, err := env.Check(project)
		if err != nil {
			sysErr := output.NewSystemErrorWithCause("checking integration", err)
			printer.Error(sysErr)
			return sysErr
		}
		if printer.IsJSON() {
			return printer.WriteJSON(integrationInfo{
				Name:        env.Name(),
				DisplayName: env.DisplayName(),
				Installed:   installed,
				Scope:       scope,
				Location:    path,
			})
		}
		if installed {
			printer.Print("%s installed (%s): %s\n", env.DisplayName(), scope, path)
		} else {
			printer.Print("%s is not installed (%s scope)\n", env.DisplayName(), scope)
		}
		return nil
	}

	if flags.remove {
		if err := env.Remove(project); err != nil {
			sysErr := output.NewSystemErrorWithCause("removing integration", err)
			printer.Error(sysErr)
			return sysErr
		}
		if printer.IsJSON() {
			return printer.Success(map[string]any{"status": "ok", "removed": env.Name()})
		}
		printer.Print("Removed the %s integration\n", env.DisplayName())
		return nil
	}

	path, err := env.Install(project)
	if err != nil {
		sysErr := output.NewSystemErrorWithCause("installing integration", err)
		printer.Error(sysErr)
		return sysErr
	}
	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"status": "ok",
			"agent":  env.Name(),
			"path":   path,
		})
	}
	printer.Print("%s %s integration\n", printer.Styles().Success.Render("Installed"), env.DisplayName())
	printer.Print("%s %s\n", printer.Styles().Dim.Render("->"), path)
	return nil
}

// newSetupHookCmd creates the hook subcommand for setup.
func newSetupHookCmd() *cobra.Command {
	var removeFlag bool

	cmd := &cobra.Command{
		Use:   "hook",
		Short: "Install the git post-commit reminder hook",
		Long: `Install a post-commit hook that reminds you when a commit does not
touch DEVELOPMENT_LOG.md. The hook never blocks the commit.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)

			if removeFlag {
				if err := setup.RemoveHook(); err != nil {
					sysErr := output.NewSystemErrorWithCause("removing hook", err)
					printer.Error(sysErr)
					return sysErr
				}
				if printer.IsJSON() {
					return printer.Success(map[string]any{"status": "ok", "removed": "hook"})
				}
				printer.Print("Removed the post-commit reminder hook\n")
				return nil
			}

			path, err := setup.InstallHook()
			if err != nil {
				sysErr := output.NewSystemErrorWithCause("installing hook", err)
				printer.Error(sysErr)
				return sysErr
			}
			if printer.IsJSON() {
				return printer.Success(map[string]any{"status": "ok", "path": path})
			}
			printer.Print("%s post-commit reminder hook\n", printer.Styles().Success.Render("Installed"))
			printer.Print("%s %s\n", printer.Styles().Dim.Render("->"), path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&removeFlag, "remove", false, "Remove the hook")

	return cmd
}

// Package main provides the entry point for the devlog CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/jralston/devlog/internal/output"
	"github.com/jralston/devlog/internal/rule"
)

// newRuleCmd creates the rule parent command with subcommands.
func newRuleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rule",
		Short: "Inspect the instruction rule templates",
		Long: `Inspect the instruction rule templates devlog installs for agents.

Templates resolve project-local (.devlog/rules/) over user-global
(~/.config/devlog/rules/) over built-in. Drop a Markdown file with
YAML frontmatter in either directory to override a built-in.

Subcommands:
  list    List available templates and where they come from
  show    Print a template

Examples:
  devlog rule list
  devlog rule show claude
  devlog rule show cursor --mdc   # With frontmatter, as installed`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newRuleListCmd())
	cmd.AddCommand(newRuleShowCmd())
	return cmd
}

// newRuleListCmd creates the rule list subcommand.
func newRuleListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available rule templates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)
			infos := rule.List()

			if printer.IsJSON() {
				return printer.WriteJSON(map[string]any{"templates": infos})
			}

			rows := make([][]string, 0, len(infos))
			for _, info := range infos {
				source := info.Source
				if info.Overrides != "" {
					source += " (overrides " + info.Overrides + ")"
				}
				rows = append(rows, []string{info.Name, source, info.Description})
			}
			printer.Table([]string{"NAME", "SOURCE", "DESCRIPTION"}, rows)
			return nil
		},
	}
}

// newRuleShowCmd creates the rule show subcommand.
func newRuleShowCmd() *cobra.Command {
	var mdcFlag bool

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Print a rule template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := newPrinter(cmd)

			tmpl, err := rule.Load(args[0])
			if err != nil {
				userErr := output.NewUserError(err.Error())
				printer.Error(userErr)
				return userErr
			}

			if printer.IsJSON() {
				return printer.WriteJSON(map[string]any{
					"name":        tmpl.Name,
					"description": tmpl.Description,
					"source":      tmpl.Source,
					"content":     tmpl.Content,
				})
			}

			if mdcFlag {
				printer.Print("%s", tmpl.FormatMDC())
				return nil
			}
			printer.Print("%s", tmpl.Content)
			return nil
		},
	}

	cmd.Flags().BoolVar(&mdcFlag, "mdc", false, "Include the YAML frontmatter, as installed for Cursor")

	return cmd
}

package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"ganttsvg/internal/gantt"
)

func newTeamCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Manage the team members tasks are assigned to",
		Long: `Manage the team. Each member gets a chart color by their position in the
team. Members still assigned to a task cannot be removed.`,
	}
	cmd.AddCommand(newTeamAddCmd(a), newTeamRmCmd(a), newTeamListCmd(a))
	return cmd
}

func newTeamAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>...",
		Short: "Add team members",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadChart(true)
			if err != nil {
				return err
			}
			for _, name := range args {
				if err := c.Roster.Add(name); err != nil {
					return err
				}
			}
			a.warnIfCSV("a team member without tasks")
			if err := a.saveChart(c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Team: %d members\n", c.Roster.Len())
			return nil
		},
	}
}

func newTeamRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"remove"},
		Short:   "Remove a team member with no tasks",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadChart(false)
			if err != nil {
				return err
			}
			if err := c.RemoveMember(args[0]); err != nil {
				return err
			}
			if err := a.saveChart(c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed team member %s\n", args[0])
			return nil
		},
	}
}

func newTeamListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List team members with their colors",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadChart(false)
			if err != nil {
				return err
			}
			colors, diags := gantt.Assign(c.Roster.Members(), c.Palette)
			for _, d := range diags {
				a.log.Warn(d.Message, "kind", string(d.Kind))
			}

			inUse := make(map[string]bool)
			for _, name := range c.Store.NamesInUse() {
				inUse[name] = true
			}
			for _, name := range c.Roster.Members() {
				swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(colors[name])).Render("■")
				note := ""
				if !inUse[name] {
					note = " (no tasks)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s%s\n", swatch, colors[name], name, note)
			}
			return nil
		},
	}
}

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ganttsvg/internal/gantt"
	"ganttsvg/internal/planfile"
)

func newTitleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "title <text>",
		Short: "Set the chart title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return errors.New("title is blank")
			}
			c, err := a.loadChart(true)
			if err != nil {
				return err
			}
			c.Title = title
			a.warnIfCSV("the title")
			if err := a.saveChart(c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Title: %s\n", title)
			return nil
		},
	}
}

func newTodayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "today [date]",
		Short: "Pin the today line to a date, or let it follow the clock",
		Long: `With a date, the today line is drawn at that date every time the plan is
rendered. Without one it goes back to the current date. Only YAML plans
keep a pinned date.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadChart(true)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				c.UnpinToday(a.now())
			} else {
				day, err := gantt.ParseDate(args[0])
				if err != nil {
					return err
				}
				c.SetToday(day)
				a.warnIfCSV("the today date")
			}
			if err := a.saveChart(c); err != nil {
				return err
			}
			if c.TodayPinned {
				fmt.Fprintf(cmd.OutOrStdout(), "Today: %s\n", c.Today.Format(gantt.DateLayout))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Today: current date (%s)\n", c.Today.Format(gantt.DateLayout))
			}
			return nil
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write the plan to another file, converting between CSV and YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadChart(false)
			if err != nil {
				return err
			}
			if err := planfile.Save(args[0], c); err != nil {
				return err
			}
			a.log.Info("plan exported", "plan", a.planPath(), "output", args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d tasks to %s\n", c.Store.Len(), args[0])
			return nil
		},
	}
}

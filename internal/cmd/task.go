package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"ganttsvg/internal/gantt"
	"ganttsvg/internal/planfile"
)

func newTaskCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Add, edit, remove and reorder tasks",
	}
	cmd.AddCommand(
		newTaskAddCmd(a),
		newTaskEditCmd(a),
		newTaskRmCmd(a),
		newTaskMoveCmd(a),
		newTaskSortCmd(a),
		newTaskDependCmd(a),
		newTaskListCmd(a),
	)
	return cmd
}

// taskFlags are the task fields settable from the command line.
type taskFlags struct {
	team       string
	start      string
	end        string
	duration   int
	completion float64
	depends    []string
}

func (f *taskFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.team, "team", "t", "", "team member the task is assigned to")
	cmd.Flags().StringVar(&f.start, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&f.duration, "duration", 0, "length in days including start and end, instead of --end")
	cmd.Flags().Float64Var(&f.completion, "completion", 0, "completed fraction, 0 to 1")
}

// endDate returns the end date from --end, or from --duration counted from
// start.
func (f *taskFlags) endDate(start time.Time) (time.Time, error) {
	if f.end != "" {
		return gantt.ParseDate(f.end)
	}
	if f.duration > 0 {
		return start.AddDate(0, 0, f.duration-1), nil
	}
	return time.Time{}, errors.New("either --end or a positive --duration is required")
}

// ensureMember puts a new assignee on the team.
func (a *app) ensureMember(c *gantt.Chart, name string) {
	if name == "" || c.Roster.Contains(name) {
		return
	}
	if err := c.Roster.Add(name); err == nil {
		a.log.Info("team member added", "member", name)
	}
}

func newTaskAddCmd(a *app) *cobra.Command {
	var f taskFlags
	var appendTask bool
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a task at the top of the plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadChart(true)
			if err != nil {
				return err
			}

			start, err := gantt.ParseDate(f.start)
			if err != nil {
				return fmt.Errorf("invalid --start: %w", err)
			}
			end, err := f.endDate(start)
			if err != nil {
				return err
			}

			in := gantt.TaskInput{
				Name:         strings.TrimSpace(args[0]),
				Assignee:     strings.TrimSpace(f.team),
				Start:        start,
				End:          end,
				Completion:   f.completion,
				Dependencies: f.depends,
			}
			add := c.Store.Insert
			if appendTask {
				add = c.Store.Append
			}
			if _, err := add(in); err != nil {
				return err
			}
			a.ensureMember(c, in.Assignee)

			if err := a.saveChart(c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added task %s (%s to %s)\n", in.Name,
				start.Format(gantt.DateLayout), end.Format(gantt.DateLayout))
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringSliceVarP(&f.depends, "depends", "d", nil, "names of tasks this one depends on")
	cmd.Flags().BoolVar(&appendTask, "append", false, "add the task at the bottom instead of the top")
	_ = cmd.MarkFlagRequired("start")
	return cmd
}

func newTaskEditCmd(a *app) *cobra.Command {
	var f taskFlags
	var rename string
	cmd := &cobra.Command{
		Use:   "edit <name>",
		Short: "Change fields of a task",
		Long: `Change the fields given as flags and keep the others. Dependencies are
changed with "task depend".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadChart(false)
			if err != nil {
				return err
			}
			id, err := findTask(c, args[0])
			if err != nil {
				return err
			}
			t, err := c.Store.Get(id)
			if err != nil {
				return err
			}

			in := gantt.TaskInput{
				Name:       t.Name,
				Assignee:   t.Assignee,
				Start:      t.Start,
				End:        t.End,
				Completion: t.Completion,
			}
			changed := cmd.Flags().Changed
			if changed("name") {
				in.Name = strings.TrimSpace(rename)
			}
			if changed("team") {
				in.Assignee = strings.TrimSpace(f.team)
			}
			if changed("start") {
				if in.Start, err = gantt.ParseDate(f.start); err != nil {
					return fmt.Errorf("invalid --start: %w", err)
				}
			}
			if changed("end") || changed("duration") {
				if in.End, err = f.endDate(in.Start); err != nil {
					return err
				}
			}
			if changed("completion") {
				in.Completion = f.completion
			}

			if err := c.Store.Update(id, in); err != nil {
				return err
			}
			a.ensureMember(c, in.Assignee)
			if err := a.saveChart(c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s\n", in.Name)
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&rename, "name", "", "new task name")
	return cmd
}

func newTaskRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"remove"},
		Short:   "Remove a task",
		Long: `Remove a task. Tasks that depend on it keep the dependency by name and
get their arrow back if a task with that name is added again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadChart(false)
			if err != nil {
				return err
			}
			id, err := findTask(c, args[0])
			if err != nil {
				return err
			}
			if err := c.Store.Remove(id); err != nil {
				return err
			}
			if err := a.saveChart(c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed task %s\n", args[0])
			return nil
		},
	}
}

func newTaskMoveCmd(a *app) *cobra.Command {
	var to int
	cmd := &cobra.Command{
		Use:   "move <name> [up|down]",
		Short: "Move a task one row up or down, or to a row with --to",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadChart(false)
			if err != nil {
				return err
			}
			id, err := findTask(c, args[0])
			if err != nil {
				return err
			}

			switch {
			case cmd.Flags().Changed("to"):
				err = c.Store.MoveTo(id, to-1)
			case len(args) == 2 && args[1] == "up":
				err = c.Store.SwapAdjacent(id, gantt.Up)
			case len(args) == 2 && args[1] == "down":
				err = c.Store.SwapAdjacent(id, gantt.Down)
			default:
				return errors.New("give a direction, up or down, or --to <row>")
			}
			if err != nil {
				return err
			}
			if err := a.saveChart(c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved task %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().IntVar(&to, "to", 1, "row to move the task to, counted from 1")
	return cmd
}

func newTaskSortCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sort",
		Short: "Order tasks by start date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadChart(false)
			if err != nil {
				return err
			}
			c.Store.SortByStart()
			if err := a.saveChart(c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sorted %d tasks by start date\n", c.Store.Len())
			return nil
		},
	}
}

func newTaskDependCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "depend <name> <dependency>",
		Short: "Toggle whether a task depends on another",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadChart(false)
			if err != nil {
				return err
			}
			id, err := findTask(c, args[0])
			if err != nil {
				return err
			}
			added, err := c.Store.ToggleDependency(id, args[1])
			if err != nil {
				return err
			}
			if err := a.saveChart(c); err != nil {
				return err
			}
			if added {
				fmt.Fprintf(cmd.OutOrStdout(), "%s now depends on %s\n", args[0], args[1])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s no longer depends on %s\n", args[0], args[1])
			}
			return nil
		},
	}
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newTaskListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks with their derived days",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadChart(false)
			if err != nil {
				return err
			}
			tasks := c.Store.Tasks()
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks")
				return nil
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == table.HeaderRow {
						return headerStyle
					}
					return cellStyle
				}).
				Headers("#", "Task", "Team", "Start", "End", "Done", "Depends on", "Day", "Days")
			for i, task := range tasks {
				t.Row(
					strconv.Itoa(i+1),
					task.Name,
					task.Assignee,
					task.Start.Format(gantt.DateLayout),
					task.End.Format(gantt.DateLayout),
					fmt.Sprintf("%.0f%%", task.Completion*100),
					planfile.EncodeDependencies(task.Dependencies),
					strconv.Itoa(task.OffsetStart),
					strconv.Itoa(task.Duration),
				)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.String())
			return nil
		},
	}
}

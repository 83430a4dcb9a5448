package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ganttsvg/internal/gantt"
	"ganttsvg/internal/render"
	"ganttsvg/internal/watch"
)

// scene loads the plan and lays it out, moving the today line when today
// is set.
func (a *app) scene(today string) (gantt.Scene, error) {
	c, err := a.loadChart(false)
	if err != nil {
		return gantt.Scene{}, err
	}
	if today != "" {
		day, err := gantt.ParseDate(today)
		if err != nil {
			return gantt.Scene{}, fmt.Errorf("invalid --today: %w", err)
		}
		c.SetToday(day)
	}

	scene := c.Scene()
	a.logDiagnostics(scene)
	return scene, nil
}

func (a *app) writeSVG(w io.Writer, output, today string) error {
	scene, err := a.scene(today)
	if err != nil {
		return err
	}

	outputPath := getOutputFilename(a.planPath(), output)
	if err := os.WriteFile(outputPath, []byte(render.SVG(scene, a.cfg)), 0644); err != nil {
		return fmt.Errorf("error writing SVG file: %w", err)
	}
	a.log.Info("chart rendered", "output", outputPath, "summary", render.Summary(scene))
	fmt.Fprintf(w, "Chart SVG generated successfully: %s\n", outputPath)
	return nil
}

func newRenderCmd(a *app) *cobra.Command {
	var output, today string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the chart as an SVG file",
		Long: `Render the plan as an SVG Gantt chart. Without --output the SVG is written
next to the plan with the same base name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.writeSVG(cmd.OutOrStdout(), output, today)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output SVG filename")
	cmd.Flags().StringVar(&today, "today", "", "date of the today line (YYYY-MM-DD)")
	return cmd
}

func newPreviewCmd(a *app) *cobra.Command {
	var today string
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Draw the chart in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, err := a.scene(today)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), render.Preview(scene, a.cfg))
			return nil
		},
	}
	cmd.Flags().StringVar(&today, "today", "", "date of the today line (YYYY-MM-DD)")
	return cmd
}

func newWatchCmd(a *app) *cobra.Command {
	var output string
	var preview bool
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Render the chart again whenever the plan changes",
		Long: `Render the plan once, then keep rendering it each time the plan file is
saved, until interrupted. Errors in the plan are logged and the last good
SVG is kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.watch(ctx, cmd.OutOrStdout(), output, preview)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output SVG filename")
	cmd.Flags().BoolVar(&preview, "preview", false, "also print the terminal preview after each render")
	return cmd
}

func (a *app) watch(ctx context.Context, w io.Writer, output string, preview bool) error {
	rerender := func() {
		if err := a.writeSVG(w, output, ""); err != nil {
			a.log.Error("render failed", "error", err)
			return
		}
		if preview {
			if scene, err := a.scene(""); err == nil {
				fmt.Fprint(w, render.Preview(scene, a.cfg))
			}
		}
	}

	rerender()
	a.log.Info("watching plan", "plan", a.planPath())
	return watch.File(ctx, a.planPath(), watch.DefaultDebounce, rerender, func(err error) {
		a.log.Warn("watch error", "error", err)
	})
}

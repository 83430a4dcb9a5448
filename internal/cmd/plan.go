package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"ganttsvg/internal/gantt"
	"ganttsvg/internal/planfile"
)

func (a *app) planPath() string {
	if p := viper.GetString("plan"); p != "" {
		return p
	}
	return DefaultPlan
}

// loadChart reads the plan file into a chart. With create set, a missing
// file yields an empty chart that the caller will save.
func (a *app) loadChart(create bool) (*gantt.Chart, error) {
	path := a.planPath()
	today := a.now()

	plan, err := planfile.Load(path)
	if err != nil {
		if create && errors.Is(err, fs.ErrNotExist) {
			a.log.Info("starting a new plan", "plan", path)
			return a.applyConfig(gantt.NewChart(a.cfg.Chart.Title, today)), nil
		}
		return nil, err
	}

	c, err := plan.Chart(a.cfg.Chart.Title, today)
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", path, err)
	}
	a.log.Debug("plan loaded", "plan", path, "tasks", c.Store.Len(), "team", c.Roster.Len())
	return a.applyConfig(c), nil
}

func (a *app) applyConfig(c *gantt.Chart) *gantt.Chart {
	if len(a.cfg.Palette) > 0 {
		c.Palette = gantt.Palette(a.cfg.Palette)
	}
	return c
}

// saveChart writes the chart back to the plan file.
func (a *app) saveChart(c *gantt.Chart) error {
	path := a.planPath()
	if err := planfile.Save(path, c); err != nil {
		return fmt.Errorf("error saving %s: %w", path, err)
	}
	a.log.Info("plan saved", "plan", path, "tasks", c.Store.Len())
	return nil
}

// warnIfCSV notes that a setting only survives in YAML plans.
func (a *app) warnIfCSV(what string) {
	if format, err := planfile.FormatOf(a.planPath()); err == nil && format == planfile.FormatCSV {
		a.log.Warn(what+" is not stored in CSV plans, use a .yaml plan to keep it", "plan", a.planPath())
	}
}

func (a *app) logDiagnostics(scene gantt.Scene) {
	for _, d := range scene.Diagnostics {
		a.log.Warn(d.Message, "kind", string(d.Kind), "task", d.Task, "subject", d.Subject)
	}
}

func findTask(c *gantt.Chart, name string) (gantt.TaskID, error) {
	id, ok := c.Store.FindByName(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", gantt.ErrNotFound, name)
	}
	return id, nil
}

// getOutputFilename returns outputFile, or the plan file name with an .svg
// extension next to the plan.
func getOutputFilename(planFile, outputFile string) string {
	if outputFile != "" {
		return outputFile
	}

	ext := filepath.Ext(planFile)
	return strings.TrimSuffix(planFile, ext) + ".svg"
}

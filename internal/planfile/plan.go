// Package planfile reads and writes task lists: CSV tables with one task
// per row, and YAML plans that also carry the title, the team and the date
// of the today line.
package planfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ganttsvg/internal/gantt"
)

// Format is a plan file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for file extensions other than .csv, .yaml
// and .yml.
var ErrUnknownFormat = errors.New("unknown plan file format")

// Plan is the content of a plan file before it is loaded into a chart.
type Plan struct {
	Title string
	// Today is the date of the today line, zero when the file does not set
	// one.
	Today time.Time
	Team  []string
	Tasks []gantt.TaskInput
}

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Load reads a plan file.
func Load(path string) (*Plan, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening plan file: %w", err)
	}
	defer file.Close()
	return decode(format, file)
}

func decode(format Format, r io.Reader) (*Plan, error) {
	if format == FormatYAML {
		return ReadYAML(r)
	}
	tasks, err := ReadCSV(r)
	if err != nil {
		return nil, err
	}
	return &Plan{Tasks: tasks}, nil
}

// Chart loads the plan into a new chart. Tasks keep their file order. The
// team is the plan's team followed by any other assignee, in order of first
// use. today is used when the plan does not set a date.
func (p *Plan) Chart(title string, today time.Time) (*gantt.Chart, error) {
	if p.Title != "" {
		title = p.Title
	}
	c := gantt.NewChart(title, today)
	if !p.Today.IsZero() {
		c.SetToday(p.Today)
	}

	for i, in := range p.Tasks {
		if _, err := c.Store.Append(in); err != nil {
			return nil, fmt.Errorf("task %d (%s): %w", i+1, in.Name, err)
		}
	}

	c.Roster.Merge(p.Team)
	c.Roster.Merge(c.Store.NamesInUse())
	return c, nil
}

// Save writes the chart to path in the format its extension selects. CSV
// holds only the task table; title, team and today are kept by YAML only.
func Save(path string, c *gantt.Chart) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}

	var content []byte
	switch format {
	case FormatYAML:
		content, err = MarshalYAML(c)
		if err != nil {
			return err
		}
	default:
		var buf bytes.Buffer
		if err := WriteCSV(&buf, c.Store.Tasks()); err != nil {
			return err
		}
		content = buf.Bytes()
	}
	// The written file has to load again with the same rules as Load.
	return AtomicWrite(path, content, func(b []byte) error {
		plan, err := decode(format, bytes.NewReader(b))
		if err != nil {
			return err
		}
		_, err = plan.Chart(c.Title, c.Today)
		return err
	})
}

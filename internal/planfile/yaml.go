package planfile

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"ganttsvg/internal/gantt"
)

// document is the YAML plan file layout.
type document struct {
	Title string         `yaml:"title,omitempty"`
	Today string         `yaml:"today,omitempty"`
	Team  []string       `yaml:"team,omitempty"`
	Tasks []taskDocument `yaml:"tasks"`
}

type taskDocument struct {
	Name         string         `yaml:"name"`
	Team         string         `yaml:"team,omitempty"`
	Start        string         `yaml:"start"`
	End          string         `yaml:"end"`
	Completion   float64        `yaml:"completion"`
	Dependencies DependencyList `yaml:"dependencies"`
}

// DependencyList decodes either a YAML sequence of names or a single
// comma separated string, where "[]" and empty strings mean none.
type DependencyList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *DependencyList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*d = DependencyList{}
			return nil
		}
		*d = DecodeDependencies(node.Value)
		return nil
	case yaml.SequenceNode:
		var names []string
		if err := node.Decode(&names); err != nil {
			return fmt.Errorf("line %d: dependencies: %w", node.Line, err)
		}
		out := DependencyList{}
		for _, name := range names {
			if name = strings.TrimSpace(name); name != "" {
				out = append(out, name)
			}
		}
		*d = out
		return nil
	default:
		return fmt.Errorf("line %d: dependencies must be a list or a comma separated string", node.Line)
	}
}

// ReadYAML reads a YAML plan.
func ReadYAML(r io.Reader) (*Plan, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("error parsing plan: %w", err)
	}

	plan := &Plan{Title: doc.Title, Team: doc.Team}
	if doc.Today != "" {
		today, err := parseDate(doc.Today)
		if err != nil {
			return nil, fmt.Errorf("today: %w", err)
		}
		plan.Today = today
	}

	for i, td := range doc.Tasks {
		start, err := parseDate(td.Start)
		if err != nil {
			return nil, fmt.Errorf("task %d (%s): start: %w", i+1, td.Name, err)
		}
		end, err := parseDate(td.End)
		if err != nil {
			return nil, fmt.Errorf("task %d (%s): end: %w", i+1, td.Name, err)
		}
		deps := []string(td.Dependencies)
		if deps == nil {
			deps = []string{}
		}
		plan.Tasks = append(plan.Tasks, gantt.TaskInput{
			Name:         td.Name,
			Assignee:     td.Team,
			Start:        start,
			End:          end,
			Completion:   td.Completion,
			Dependencies: deps,
		})
	}
	return plan, nil
}

// MarshalYAML encodes the chart as a YAML plan.
func MarshalYAML(c *gantt.Chart) ([]byte, error) {
	doc := document{
		Title: c.Title,
		Team:  c.Roster.Members(),
		Tasks: []taskDocument{},
	}
	if c.TodayPinned {
		doc.Today = c.Today.Format(gantt.DateLayout)
	}
	for _, t := range c.Store.Tasks() {
		deps := t.Dependencies
		if deps == nil {
			deps = []string{}
		}
		doc.Tasks = append(doc.Tasks, taskDocument{
			Name:         t.Name,
			Team:         t.Assignee,
			Start:        t.Start.Format(gantt.DateLayout),
			End:          t.End.Format(gantt.DateLayout),
			Completion:   t.Completion,
			Dependencies: deps,
		})
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return out, nil
}

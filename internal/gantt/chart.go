package gantt

import (
	"fmt"
	"time"
)

// DefaultTitle is the chart title used when none is set.
const DefaultTitle = "Project Plan"

// Chart bundles what a chart surface needs: tasks, team, title and the date
// the today line marks.
type Chart struct {
	Store   *Store
	Roster  *Roster
	Title   string
	Today   time.Time
	// TodayPinned is set when Today was chosen explicitly rather than taken
	// from the clock. Only a pinned date is saved with the plan.
	TodayPinned bool
	Palette     Palette
}

// LegendEntry pairs a team member with their color.
type LegendEntry struct {
	Name  string
	Color string
}

// Scene is everything needed to draw the chart once.
type Scene struct {
	Title     string
	Anchor    time.Time
	TodayDate time.Time
	Today     int
	Bars      []Bar
	Arrows    []Arrow
	Ticks     []Tick
	Legend    []LegendEntry
	// Diagnostics lists problems that were worked around while building the
	// scene. They never prevent drawing.
	Diagnostics []Diagnostic
}

// NewChart returns an empty chart dated today.
func NewChart(title string, today time.Time) *Chart {
	if title == "" {
		title = DefaultTitle
	}
	return &Chart{
		Store:   NewStore(),
		Roster:  NewRoster(),
		Title:   title,
		Today:   Date(today),
		Palette: DefaultPalette,
	}
}

// SetToday pins the today line to day.
func (c *Chart) SetToday(day time.Time) {
	c.Today = Date(day)
	c.TodayPinned = true
}

// UnpinToday makes the today line follow the clock again, starting at now.
func (c *Chart) UnpinToday(now time.Time) {
	c.Today = Date(now)
	c.TodayPinned = false
}

// RemoveMember takes a member off the roster unless a task still uses them.
func (c *Chart) RemoveMember(name string) error {
	return c.Roster.Remove(name, c.Store.NamesInUse())
}

// Scene lays the chart out. With no tasks the anchor falls back to the today
// date and there are no bars.
func (c *Chart) Scene() Scene {
	tasks := c.Store.Tasks()
	anchor, ok := c.Store.Anchor()
	if !ok {
		anchor = c.Today
	}
	latest, ok := LatestEnd(tasks)
	if !ok {
		latest = anchor
	}

	s := Scene{
		Title:     c.Title,
		Anchor:    anchor,
		TodayDate: c.Today,
		Today:     TodayMarker(c.Today, anchor),
		Bars:      Layout(tasks),
		Ticks:     Ticks(anchor, latest),
	}

	colors, diags := Assign(c.Roster.Members(), c.Palette)
	s.Diagnostics = append(s.Diagnostics, diags...)
	for _, name := range c.Roster.Members() {
		s.Legend = append(s.Legend, LegendEntry{Name: name, Color: colors[name]})
	}
	for i := range s.Bars {
		color, ok := colors[s.Bars[i].Assignee]
		if !ok {
			color = FallbackColor
		}
		if !ok && s.Bars[i].Assignee != "" {
			s.Diagnostics = append(s.Diagnostics, Diagnostic{
				Kind:    UnknownAssignee,
				Task:    s.Bars[i].Name,
				Subject: s.Bars[i].Assignee,
				Message: fmt.Sprintf("assignee %q is not on the team", s.Bars[i].Assignee),
			})
		}
		s.Bars[i].Color = color
	}

	arrows, diags := Arrows(tasks, s.Bars)
	s.Arrows = arrows
	s.Diagnostics = append(s.Diagnostics, diags...)
	return s
}

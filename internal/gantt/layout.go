package gantt

import "time"

const (
	// TickInterval is the spacing of x axis ticks in days.
	TickInterval = 7
	// TickLabelLayout formats tick labels as day/month.
	TickLabelLayout = "02/01"
)

// Point is a position in chart units: X in days from the axis origin, Y in
// rows counted from the top.
type Point struct {
	X int
	Y int
}

// Bar is the geometry of one task on the chart.
type Bar struct {
	ID       TaskID
	Name     string
	Assignee string
	Color    string

	Row            int
	Left           int
	Width          int
	CompletedWidth float64

	// StartPoint is the right edge of the bar, where arrows to tasks that
	// depend on this one begin.
	StartPoint Point
	// EndPoint is the left edge of the bar, where arrows from the tasks this
	// one depends on arrive.
	EndPoint Point
}

// Tick is one x axis tick with its date label.
type Tick struct {
	Pos   int
	Date  time.Time
	Label string
}

// Layout places every task on its own row in the given order. Day 0 sits at
// x=1 so the first bar does not touch the axis.
func Layout(tasks []Task) []Bar {
	bars := make([]Bar, len(tasks))
	for row, t := range tasks {
		left := t.OffsetStart + 1
		bars[row] = Bar{
			ID:             t.ID,
			Name:           t.Name,
			Assignee:       t.Assignee,
			Row:            row,
			Left:           left,
			Width:          t.Duration,
			CompletedWidth: t.CompletedDays,
			StartPoint:     Point{X: left + t.Duration, Y: row},
			EndPoint:       Point{X: left, Y: row},
		}
	}
	return bars
}

// TodayMarker returns the x position of the today line.
func TodayMarker(today, anchor time.Time) int {
	return DaysBetween(anchor, today)
}

// LatestEnd returns the latest end date among tasks, or false if there are
// none.
func LatestEnd(tasks []Task) (time.Time, bool) {
	if len(tasks) == 0 {
		return time.Time{}, false
	}
	latest := Date(tasks[0].End)
	for _, t := range tasks[1:] {
		if end := Date(t.End); end.After(latest) {
			latest = end
		}
	}
	return latest, true
}

// Ticks returns ticks every TickInterval days from x=1 up to the last day of
// the project. Each label is computed from its own tick position, so there is
// always exactly one label per tick. At least one tick is returned.
func Ticks(anchor, latestEnd time.Time) []Tick {
	last := max(DaysBetween(anchor, latestEnd), 1)
	var ticks []Tick
	for pos := 1; pos <= last; pos += TickInterval {
		date := Date(anchor).AddDate(0, 0, pos-1)
		ticks = append(ticks, Tick{Pos: pos, Date: date, Label: date.Format(TickLabelLayout)})
	}
	return ticks
}

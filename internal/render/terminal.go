package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"

	"ganttsvg/internal/config"
	"ganttsvg/internal/gantt"
)

const (
	cellBar   = "█"
	cellToday = "│"
	cellEmpty = " "
	swatch    = "■"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
)

// Preview renders the scene as text for a terminal, one row per task. Each
// bar is scaled into cfg.Preview.Width columns; the completed part uses the
// member color and the rest a faded version of it.
func Preview(scene gantt.Scene, cfg *config.Config) string {
	width := max(cfg.Preview.Width, 10)
	nameWidth := max(cfg.Preview.NameWidth, 4)

	lastX := 1
	for _, b := range scene.Bars {
		lastX = max(lastX, b.Left+b.Width)
	}
	for _, t := range scene.Ticks {
		lastX = max(lastX, t.Pos)
	}
	lastX++
	scale := float64(width) / float64(lastX)
	col := func(x float64) int {
		return min(int(math.Round(x*scale)), width-1)
	}

	todayCol := -1
	if cfg.Chart.ShowToday && scene.Today >= 0 && scene.Today <= lastX {
		todayCol = col(float64(scene.Today))
	}
	todayStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Colors.Today))
	indent := strings.Repeat(" ", nameWidth+1)

	var out strings.Builder
	out.WriteString(titleStyle.Render(scene.Title))
	out.WriteString("\n\n")

	for _, b := range scene.Bars {
		name := ansi.Truncate(b.Name, nameWidth, "…")
		out.WriteString(name + strings.Repeat(" ", nameWidth-ansi.StringWidth(name)) + " ")

		done := lipgloss.NewStyle().Foreground(lipgloss.Color(b.Color))
		rest := lipgloss.NewStyle().Foreground(lipgloss.Color(fade(b.Color, cfg.Colors.Background, cfg.Chart.FillOpacity)))

		first := col(float64(b.Left))
		last := max(col(float64(b.Left+b.Width)), first+1)
		doneEnd := first + int(math.Round(b.CompletedWidth*scale))
		for c := 0; c < width; c++ {
			switch {
			case c >= first && c < last && c < doneEnd:
				out.WriteString(done.Render(cellBar))
			case c >= first && c < last:
				out.WriteString(rest.Render(cellBar))
			case c == todayCol:
				out.WriteString(todayStyle.Render(cellToday))
			default:
				out.WriteString(cellEmpty)
			}
		}
		out.WriteString("\n")
	}

	out.WriteString(indent + mutedStyle.Render(axisLabels(scene.Ticks, col, width)) + "\n")
	if todayCol >= 0 {
		label := "today " + scene.TodayDate.Format(gantt.DateLayout)
		pad := min(todayCol, max(width-len(label), 0))
		out.WriteString(indent + strings.Repeat(" ", pad) + todayStyle.Render(label) + "\n")
	}

	if cfg.Chart.ShowLegend && len(scene.Legend) > 0 {
		out.WriteString("\n")
		entries := make([]string, 0, len(scene.Legend))
		for _, e := range scene.Legend {
			entries = append(entries, lipgloss.NewStyle().Foreground(lipgloss.Color(e.Color)).Render(swatch)+" "+e.Name)
		}
		out.WriteString(strings.Join(entries, "  ") + "\n")
	}
	return out.String()
}

// axisLabels places each tick label at its column, dropping labels that
// would overlap the previous one.
func axisLabels(ticks []gantt.Tick, col func(float64) int, width int) string {
	line := []rune(strings.Repeat(" ", width))
	next := 0
	for _, t := range ticks {
		c := col(float64(t.Pos))
		if c < next || c+len(t.Label) > width {
			continue
		}
		copy(line[c:], []rune(t.Label))
		next = c + len(t.Label) + 1
	}
	return strings.TrimRight(string(line), " ")
}

// fade returns color laid over background at the given opacity.
// Unparsable colors are returned unchanged.
func fade(color, background string, opacity float64) string {
	c, err := colorful.Hex(color)
	if err != nil {
		return color
	}
	bg, err := colorful.Hex(background)
	if err != nil {
		return color
	}
	return bg.BlendRgb(c, opacity).Clamped().Hex()
}

// Summary is a one-line description of the scene for logs and status output.
func Summary(scene gantt.Scene) string {
	if len(scene.Bars) == 0 {
		return "empty chart"
	}
	last := scene.Anchor
	for _, b := range scene.Bars {
		end := scene.Anchor.AddDate(0, 0, b.Left+b.Width-2)
		if end.After(last) {
			last = end
		}
	}
	return fmt.Sprintf("%d tasks from %s to %s, %d arrows",
		len(scene.Bars), scene.Anchor.Format(gantt.DateLayout), last.Format(gantt.DateLayout),
		len(scene.Arrows))
}

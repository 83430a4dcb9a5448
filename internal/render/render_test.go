package render

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ganttsvg/internal/config"
	"ganttsvg/internal/gantt"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := gantt.ParseDate(s)
	require.NoError(t, err)
	return d
}

// testScene is two tasks starting 2024-01-01: A over five days, half done,
// and B over six days starting on day four, depending on A.
func testScene(t *testing.T) gantt.Scene {
	anchor := date(t, "2024-01-01")
	return gantt.Scene{
		Title:     "R&D <1>",
		Anchor:    anchor,
		TodayDate: date(t, "2024-01-08"),
		Today:     7,
		Bars: []gantt.Bar{
			{Name: "A", Assignee: "Alice", Color: "#1b9e77", Row: 0, Left: 1, Width: 5, CompletedWidth: 2.5,
				StartPoint: gantt.Point{X: 6, Y: 0}, EndPoint: gantt.Point{X: 1, Y: 0}},
			{Name: "Integration", Assignee: "Bob", Color: "#d95f02", Row: 1, Left: 5, Width: 6,
				StartPoint: gantt.Point{X: 11, Y: 1}, EndPoint: gantt.Point{X: 5, Y: 1}},
		},
		Arrows: []gantt.Arrow{
			{From: "A", To: "Integration", Source: gantt.Point{X: 6, Y: 0}, Target: gantt.Point{X: 5, Y: 1}, Curved: true},
		},
		Ticks: gantt.Ticks(anchor, date(t, "2024-01-10")),
		Legend: []gantt.LegendEntry{
			{Name: "Alice", Color: "#1b9e77"},
			{Name: "Bob", Color: "#d95f02"},
		},
	}
}

func TestSVG(t *testing.T) {
	cfg := config.Default()
	svg := SVG(testScene(t), cfg)

	assert.True(t, strings.HasPrefix(svg, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.True(t, strings.HasSuffix(svg, "</svg>\n"))
	assert.Contains(t, svg, `<svg width="536" height="182"`)
	assert.Contains(t, svg, `>R&amp;D &lt;1&gt;</text>`)

	// A: five days from x=1, the first two and a half solid.
	assert.Contains(t, svg, `<rect x="178" y="66" width="90" height="23" fill="#1b9e77" fill-opacity="0.40" stroke="#1b9e77" stroke-width="1.75"/>`)
	assert.Contains(t, svg, `<rect x="178" y="66" width="45" height="23" fill="#1b9e77"/>`)
	// Integration has no progress, so only the translucent bar is drawn.
	assert.Contains(t, svg, `<rect x="250" y="102" width="108" height="23" fill="#d95f02" fill-opacity="0.40"`)
	assert.NotContains(t, svg, `width="0" height="23" fill="#d95f02"/>`)

	assert.Contains(t, svg, `<path d="M268,78 L260,78 Q250,78 250,88 L250,102"`)
	assert.Contains(t, svg, `<line x1="286" y1="60" x2="286" y2="132" stroke="#d62728" stroke-width="1.5" stroke-dasharray="6,4"/>`)
	assert.Contains(t, svg, `>2024-01-08</text>`)
	assert.Contains(t, svg, `>01/01</text>`)
	assert.Contains(t, svg, `>08/01</text>`)
	assert.Contains(t, svg, `>Integration</text>`)
	assert.Contains(t, svg, `>Bob</text>`)
}

func TestSVG_StraightArrow(t *testing.T) {
	scene := testScene(t)
	scene.Arrows = []gantt.Arrow{{Source: gantt.Point{X: 6, Y: 0}, Target: gantt.Point{X: 6, Y: 1}}}

	svg := SVG(scene, config.Default())
	assert.Contains(t, svg, `<path d="M268,78 L268,102"`)
}

func TestSVG_ArrowToEarlierRowEntersFromBelow(t *testing.T) {
	scene := testScene(t)
	scene.Arrows = []gantt.Arrow{{Source: gantt.Point{X: 11, Y: 1}, Target: gantt.Point{X: 1, Y: 0}, Curved: true}}

	svg := SVG(scene, config.Default())
	// Source x=358 at row 1 center 114, target x=178 at the bottom of row 0.
	assert.Contains(t, svg, `<path d="M358,114 L188,114 Q178,114 178,104 L178,89"`)
}

func TestSVG_Toggles(t *testing.T) {
	cfg := config.Default()
	cfg.Chart.ShowArrows = false
	cfg.Chart.ShowToday = false
	cfg.Chart.ShowLegend = false

	svg := SVG(testScene(t), cfg)
	assert.NotContains(t, svg, `marker-end=`)
	assert.NotContains(t, svg, `stroke-dasharray`)
	assert.NotContains(t, svg, `>Bob</text>`)
	assert.Contains(t, svg, `>Integration</text>`)
}

func TestSVG_EmptyScene(t *testing.T) {
	c := gantt.NewChart("", date(t, "2024-03-01"))
	svg := SVG(c.Scene(), config.Default())

	assert.Contains(t, svg, gantt.DefaultTitle)
	assert.Contains(t, svg, `>01/03</text>`)
	assert.NotContains(t, svg, `fill-opacity`)
}

func TestEscapeXML(t *testing.T) {
	assert.Equal(t, "a &amp; b &lt;c&gt; &quot;d&quot; &apos;e&apos;", escapeXML(`a & b <c> "d" 'e'`))
}

func TestPreview(t *testing.T) {
	cfg := config.Default()
	cfg.Preview.Width = 24
	cfg.Preview.NameWidth = 6

	out := ansi.Strip(Preview(testScene(t), cfg))
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 6)

	assert.Equal(t, "R&D <1>", lines[0])
	// Twelve days over 24 columns: A covers columns 2 to 11, today is column 14.
	assert.Equal(t, "A"+strings.Repeat(" ", 8)+strings.Repeat(cellBar, 10)+"  "+cellToday+strings.Repeat(" ", 9), lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "Integ… "))
	assert.Contains(t, lines[4], "01/01")
	assert.Contains(t, lines[4], "08/01")
	assert.Contains(t, out, "today 2024-01-08")
	assert.Contains(t, out, swatch+" Alice  "+swatch+" Bob")
}

func TestPreview_NoLegendOrToday(t *testing.T) {
	cfg := config.Default()
	cfg.Chart.ShowLegend = false
	cfg.Chart.ShowToday = false

	out := ansi.Strip(Preview(testScene(t), cfg))
	assert.NotContains(t, out, "today")
	assert.NotContains(t, out, cellToday)
	assert.NotContains(t, out, swatch)
}

func TestFade(t *testing.T) {
	assert.Equal(t, "#999999", fade("#000000", "#ffffff", 0.4))
	assert.Equal(t, "#000000", fade("#000000", "#ffffff", 1))
	assert.Equal(t, "nope", fade("nope", "#ffffff", 0.4))
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "2 tasks from 2024-01-01 to 2024-01-10, 1 arrows", Summary(testScene(t)))
	assert.Equal(t, "empty chart", Summary(gantt.Scene{}))
}

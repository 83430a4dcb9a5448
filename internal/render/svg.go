// Package render draws a laid-out Gantt chart scene, either as an SVG
// document or as a colored terminal preview.
package render

import (
	"fmt"
	"math"
	"strings"

	"ganttsvg/internal/config"
	"ganttsvg/internal/gantt"
)

const (
	// arrowRadius is the corner radius of curved dependency arrows in pixels.
	arrowRadius = 10
	// labelGap separates task names and tick labels from the plot.
	labelGap = 8
	// legendSwatch is the side of a legend color square.
	legendSwatch = 12
)

// frame maps chart units to pixels.
type frame struct {
	cfg      *config.Config
	rows     int
	lastX    int
	width    int
	height   int
	plotLeft int
	plotTop  int
}

func newFrame(scene gantt.Scene, cfg *config.Config) frame {
	lastX := 1
	for _, b := range scene.Bars {
		lastX = max(lastX, b.Left+b.Width)
	}
	for _, t := range scene.Ticks {
		lastX = max(lastX, t.Pos)
	}
	if cfg.Chart.ShowToday && scene.Today >= 0 {
		lastX = max(lastX, scene.Today)
	}
	lastX++

	rows := max(len(scene.Bars), 1)
	l := cfg.Layout
	return frame{
		cfg:      cfg,
		rows:     rows,
		lastX:    lastX,
		plotLeft: l.MarginLeft,
		plotTop:  l.MarginTop,
		width:    l.MarginLeft + lastX*l.DayWidth + l.MarginRight,
		height:   l.MarginTop + rows*l.RowHeight + l.MarginBottom,
	}
}

func (f frame) x(days float64) int {
	return f.plotLeft + int(math.Round(days*float64(f.cfg.Layout.DayWidth)))
}

func (f frame) barHeight() int {
	return int(math.Round(float64(f.cfg.Layout.RowHeight) * f.cfg.Layout.BarHeight))
}

func (f frame) barTop(row int) int {
	return f.plotTop + row*f.cfg.Layout.RowHeight + (f.cfg.Layout.RowHeight-f.barHeight())/2
}

func (f frame) rowCenter(row int) int {
	return f.plotTop + row*f.cfg.Layout.RowHeight + f.cfg.Layout.RowHeight/2
}

func (f frame) plotBottom() int {
	return f.plotTop + f.rows*f.cfg.Layout.RowHeight
}

// SVG renders the scene as a standalone SVG document.
func SVG(scene gantt.Scene, cfg *config.Config) string {
	f := newFrame(scene, cfg)

	var svg strings.Builder
	svg.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="%s"/>
<defs>
<style>
.title-text { font-family: %s; font-size: %dpx; font-weight: bold; fill: %s; }
.task-text { font-family: %s; font-size: %dpx; fill: %s; }
.tick-text { font-family: %s; font-size: %dpx; fill: %s; }
.today-text { font-family: %s; font-size: %dpx; fill: %s; }
</style>
<marker id="arrowhead" viewBox="0 0 10 10" refX="10" refY="5" markerWidth="6" markerHeight="6" orient="auto-start-reverse">
<path d="M0,0 L10,5 L0,10 z" fill="%s"/>
</marker>
</defs>
`, f.width, f.height, cfg.Colors.Background,
		cfg.Font.Family, cfg.Font.TitleSize, cfg.Colors.Text,
		cfg.Font.Family, cfg.Font.Size, cfg.Colors.Text,
		cfg.Font.Family, cfg.Font.Size-2, cfg.Colors.Text,
		cfg.Font.Family, cfg.Font.Size-2, cfg.Colors.Today,
		cfg.Colors.Arrow))

	svg.WriteString(fmt.Sprintf(`<text class="title-text" x="%d" y="%d" text-anchor="middle">%s</text>`+"\n",
		f.width/2, cfg.Layout.MarginTop/2+cfg.Font.TitleSize/2, escapeXML(scene.Title)))

	drawTicks(&svg, f, scene.Ticks)
	for _, b := range scene.Bars {
		drawBar(&svg, f, b)
	}
	if cfg.Chart.ShowToday {
		drawToday(&svg, f, scene)
	}
	if cfg.Chart.ShowArrows {
		for _, a := range scene.Arrows {
			drawArrow(&svg, f, a)
		}
	}
	if cfg.Chart.ShowLegend {
		drawLegend(&svg, f, scene.Legend)
	}

	svg.WriteString("</svg>\n")
	return svg.String()
}

func drawTicks(svg *strings.Builder, f frame, ticks []gantt.Tick) {
	bottom := f.plotBottom()
	for _, t := range ticks {
		x := f.x(float64(t.Pos))
		svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="1"/>`+"\n",
			x, f.plotTop, x, bottom, f.cfg.Colors.Grid))
		svg.WriteString(fmt.Sprintf(`<text class="tick-text" x="%d" y="%d" text-anchor="middle">%s</text>`+"\n",
			x, bottom+labelGap+f.cfg.Font.Size, escapeXML(t.Label)))
	}
	svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="1"/>`+"\n",
		f.plotLeft, bottom, f.x(float64(f.lastX)), bottom, f.cfg.Colors.Text))
}

// drawBar draws the full task span translucent, its outline, and the
// completed part solid on top.
func drawBar(svg *strings.Builder, f frame, b gantt.Bar) {
	top := f.barTop(b.Row)
	h := f.barHeight()
	left := f.x(float64(b.Left))
	width := f.x(float64(b.Left+b.Width)) - left

	svg.WriteString(fmt.Sprintf(`<text class="task-text" x="%d" y="%d" text-anchor="end" dominant-baseline="middle">%s</text>`+"\n",
		f.plotLeft-labelGap, f.rowCenter(b.Row), escapeXML(b.Name)))
	svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s" fill-opacity="%.2f" stroke="%s" stroke-width="1.75"/>`+"\n",
		left, top, width, h, b.Color, f.cfg.Chart.FillOpacity, b.Color))
	if b.CompletedWidth > 0 {
		done := f.x(float64(b.Left)+b.CompletedWidth) - left
		svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`+"\n",
			left, top, done, h, b.Color))
	}
}

func drawToday(svg *strings.Builder, f frame, scene gantt.Scene) {
	if scene.Today < 0 || scene.Today > f.lastX {
		return
	}
	x := f.x(float64(scene.Today))
	svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="1.5" stroke-dasharray="6,4"/>`+"\n",
		x, f.plotTop, x, f.plotBottom(), f.cfg.Colors.Today))
	svg.WriteString(fmt.Sprintf(`<text class="today-text" x="%d" y="%d">%s</text>`+"\n",
		x+4, f.plotTop-4, scene.TodayDate.Format(gantt.DateLayout)))
}

// drawArrow draws a dependency from the end of one bar to the top of the
// start of another. Curved arrows run horizontally, round a corner and
// drop into the target from above.
func drawArrow(svg *strings.Builder, f frame, a gantt.Arrow) {
	sx, sy := f.x(float64(a.Source.X)), f.rowCenter(a.Source.Y)
	tx, ty := f.x(float64(a.Target.X)), f.barTop(a.Target.Y)
	if a.Target.Y < a.Source.Y {
		ty = f.barTop(a.Target.Y) + f.barHeight()
	}

	var d string
	if !a.Curved {
		d = fmt.Sprintf("M%d,%d L%d,%d", sx, sy, tx, ty)
	} else {
		dx, dy := sign(tx-sx), sign(ty-sy)
		r := min(arrowRadius, absInt(tx-sx), absInt(ty-sy))
		d = fmt.Sprintf("M%d,%d L%d,%d Q%d,%d %d,%d L%d,%d",
			sx, sy, tx-dx*r, sy, tx, sy, tx, sy+dy*r, tx, ty)
	}
	svg.WriteString(fmt.Sprintf(`<path d="%s" stroke="%s" stroke-width="2" stroke-opacity="%.2f" fill="none" marker-end="url(#arrowhead)"/>`+"\n",
		d, f.cfg.Colors.Arrow, f.cfg.Chart.ArrowOpacity))
}

func drawLegend(svg *strings.Builder, f frame, legend []gantt.LegendEntry) {
	x := f.x(float64(f.lastX)) + labelGap*2
	y := f.plotTop
	for i, e := range legend {
		rowY := y + i*(legendSwatch+labelGap)
		svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`+"\n",
			x, rowY, legendSwatch, legendSwatch, e.Color))
		svg.WriteString(fmt.Sprintf(`<text class="task-text" x="%d" y="%d">%s</text>`+"\n",
			x+legendSwatch+labelGap/2, rowY+legendSwatch-1, escapeXML(e.Name)))
	}
}

// escapeXML escapes special XML characters so names and titles cannot break
// the document.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}

func sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

package gantt

import "fmt"

// Arrow describes a dependency arrow for a chart surface to draw. Curved
// arrows leave the source horizontally and turn to enter the target from
// directly above.
type Arrow struct {
	From   string
	To     string
	Source Point
	Target Point
	Curved bool
}

// Route builds the arrow between two anchor points. A straight arrow is used
// only when the points share an x coordinate.
func Route(source, target Point) Arrow {
	return Arrow{Source: source, Target: target, Curved: source.X != target.X}
}

// Arrows routes every dependency edge of tasks between the matching bars.
// bars must come from Layout over the same tasks. Edges to names without a
// bar are skipped and reported as DanglingDependency diagnostics.
func Arrows(tasks []Task, bars []Bar) ([]Arrow, []Diagnostic) {
	byName := make(map[string]Bar, len(bars))
	for _, b := range bars {
		byName[b.Name] = b
	}

	var arrows []Arrow
	var diags []Diagnostic
	for _, t := range tasks {
		target, ok := byName[t.Name]
		if !ok {
			continue
		}
		for _, dep := range t.Dependencies {
			source, ok := byName[dep]
			if !ok {
				diags = append(diags, Diagnostic{
					Kind:    DanglingDependency,
					Task:    t.Name,
					Subject: dep,
					Message: fmt.Sprintf("depends on %q which does not exist, arrow skipped", dep),
				})
				continue
			}
			a := Route(source.StartPoint, target.EndPoint)
			a.From, a.To = source.Name, target.Name
			arrows = append(arrows, a)
		}
	}
	return arrows, diags
}

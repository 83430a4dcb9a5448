package gantt

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette is an ordered list of hex colors.
type Palette []string

// DefaultPalette is the qualitative Dark2 set followed by Set3, twenty
// colors in all.
var DefaultPalette = Palette{
	// Dark2
	"#1b9e77", "#d95f02", "#7570b3", "#e7298a",
	"#66a61e", "#e6ab02", "#a6761d", "#666666",
	// Set3
	"#8dd3c7", "#ffffb3", "#bebada", "#fb8072",
	"#80b1d3", "#fdb462", "#b3de69", "#fccde5",
	"#d9d9d9", "#bc80bd", "#ccebc5", "#ffed6f",
}

// FallbackColor is used for assignees that are not on the roster.
const FallbackColor = "#999999"

// Validate checks that every entry parses as a hex color.
func (p Palette) Validate() error {
	for i, c := range p {
		if _, err := colorful.Hex(c); err != nil {
			return fmt.Errorf("palette entry %d %q: %w", i, c, err)
		}
	}
	return nil
}

// Assign maps the i-th roster member to palette entry i mod len(palette).
// An empty palette means DefaultPalette. When the roster is longer than the
// palette, colors repeat and a PaletteExhausted diagnostic is returned.
func Assign(roster []string, palette Palette) (map[string]string, []Diagnostic) {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	colors := make(map[string]string, len(roster))
	for i, name := range roster {
		colors[name] = palette[i%len(palette)]
	}

	var diags []Diagnostic
	if len(roster) > len(palette) {
		diags = append(diags, Diagnostic{
			Kind:    PaletteExhausted,
			Message: fmt.Sprintf("%d team members but only %d colors, some will repeat", len(roster), len(palette)),
		})
	}
	return colors, diags
}

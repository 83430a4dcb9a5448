package planfile

import (
	"strings"
)

// EmptyDependencies is how an empty dependency list is written.
const EmptyDependencies = "[]"

// DecodeDependencies splits a comma separated dependency cell. Blank cells,
// NaN (what spreadsheet tools write for empty cells) and any cell holding
// the "[]" marker all mean no dependencies.
func DecodeDependencies(cell string) []string {
	cell = strings.TrimSpace(cell)
	if cell == "" || strings.EqualFold(cell, "nan") || strings.Contains(cell, EmptyDependencies) {
		return []string{}
	}
	var names []string
	for _, part := range strings.Split(cell, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	if names == nil {
		return []string{}
	}
	return names
}

// EncodeDependencies joins dependency names for a single cell.
func EncodeDependencies(names []string) string {
	if len(names) == 0 {
		return EmptyDependencies
	}
	return strings.Join(names, ",")
}

package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"ganttsvg/internal/logging"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "layout.day_width")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// Validate checks the Config for invalid values and returns every problem
// found.
func (c *Config) Validate() ValidationErrors {
	var errs ValidationErrors
	positive := func(field string, v int) {
		if v <= 0 {
			errs = append(errs, ValidationError{Field: field, Value: v, Message: "must be positive"})
		}
	}
	nonNegative := func(field string, v int) {
		if v < 0 {
			errs = append(errs, ValidationError{Field: field, Value: v, Message: "must not be negative"})
		}
	}
	fraction := func(field string, v float64) {
		if v <= 0 || v > 1 {
			errs = append(errs, ValidationError{Field: field, Value: v, Message: "must be within (0, 1]"})
		}
	}
	hex := func(field, v string) {
		if _, err := colorful.Hex(v); err != nil {
			errs = append(errs, ValidationError{Field: field, Value: v, Message: "must be a hex color like #1b9e77"})
		}
	}

	positive("font.size", c.Font.Size)
	positive("font.title_size", c.Font.TitleSize)

	hex("colors.background", c.Colors.Background)
	hex("colors.text", c.Colors.Text)
	hex("colors.grid", c.Colors.Grid)
	hex("colors.today", c.Colors.Today)
	hex("colors.arrow", c.Colors.Arrow)

	positive("layout.day_width", c.Layout.DayWidth)
	positive("layout.row_height", c.Layout.RowHeight)
	fraction("layout.bar_height", c.Layout.BarHeight)
	nonNegative("layout.margin_top", c.Layout.MarginTop)
	nonNegative("layout.margin_bottom", c.Layout.MarginBottom)
	nonNegative("layout.margin_left", c.Layout.MarginLeft)
	nonNegative("layout.margin_right", c.Layout.MarginRight)

	fraction("chart.fill_opacity", c.Chart.FillOpacity)
	fraction("chart.arrow_opacity", c.Chart.ArrowOpacity)

	for i, p := range c.Palette {
		hex(fmt.Sprintf("palette[%d]", i), p)
	}

	positive("preview.width", c.Preview.Width)
	positive("preview.name_width", c.Preview.NameWidth)

	if !slices.Contains(logging.ValidLevels(), strings.ToUpper(c.Logging.Level)) {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: "must be one of " + strings.Join(logging.ValidLevels(), ", "),
		})
	}
	return errs
}

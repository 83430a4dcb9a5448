// Package config holds the chart appearance and runtime settings.
//
// Settings come from, in increasing priority: built-in defaults, a YAML
// config file, and GANTTSVG_* environment variables (dots in keys become
// underscores, e.g. GANTTSVG_LAYOUT_DAY_WIDTH).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment variable overrides.
const EnvPrefix = "GANTTSVG"

// Config represents the complete configuration for chart generation. It maps
// directly to the YAML config file.
type Config struct {
	Font    FontConfig    `yaml:"font" mapstructure:"font"`
	Colors  ColorsConfig  `yaml:"colors" mapstructure:"colors"`
	Layout  LayoutConfig  `yaml:"layout" mapstructure:"layout"`
	Chart   ChartConfig   `yaml:"chart" mapstructure:"chart"`
	Palette []string      `yaml:"palette" mapstructure:"palette"`
	Preview PreviewConfig `yaml:"preview" mapstructure:"preview"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// FontConfig controls text rendering in the SVG.
type FontConfig struct {
	Family    string `yaml:"family" mapstructure:"family"`         // Font family for all text (e.g., "Arial, sans-serif")
	Size      int    `yaml:"size" mapstructure:"size"`             // Base font size in pixels
	TitleSize int    `yaml:"title_size" mapstructure:"title_size"` // Title font size in pixels
}

// ColorsConfig holds the fixed, non-team colors of the chart.
type ColorsConfig struct {
	Background string `yaml:"background" mapstructure:"background"` // SVG background (hex color code)
	Text       string `yaml:"text" mapstructure:"text"`             // Title, task names and tick labels
	Grid       string `yaml:"grid" mapstructure:"grid"`             // Vertical grid lines at each tick
	Today      string `yaml:"today" mapstructure:"today"`           // Dashed today line and its label
	Arrow      string `yaml:"arrow" mapstructure:"arrow"`           // Dependency arrows
}

// LayoutConfig sets the chart geometry in pixels.
type LayoutConfig struct {
	DayWidth     int     `yaml:"day_width" mapstructure:"day_width"`         // Horizontal pixels per day
	RowHeight    int     `yaml:"row_height" mapstructure:"row_height"`       // Vertical pixels per task row
	BarHeight    float64 `yaml:"bar_height" mapstructure:"bar_height"`       // Bar thickness as a fraction of the row height
	MarginTop    int     `yaml:"margin_top" mapstructure:"margin_top"`       // Space above the plot, holds the title
	MarginBottom int     `yaml:"margin_bottom" mapstructure:"margin_bottom"` // Space below the plot, holds tick labels
	MarginLeft   int     `yaml:"margin_left" mapstructure:"margin_left"`     // Space left of the plot, holds task names
	MarginRight  int     `yaml:"margin_right" mapstructure:"margin_right"`   // Space right of the plot, holds the legend
}

// ChartConfig toggles chart elements.
type ChartConfig struct {
	Title        string  `yaml:"title" mapstructure:"title"`                 // Title used when the plan does not set one
	ShowToday    bool    `yaml:"show_today" mapstructure:"show_today"`       // Draw the dashed today line
	ShowLegend   bool    `yaml:"show_legend" mapstructure:"show_legend"`     // Draw the team legend
	ShowArrows   bool    `yaml:"show_arrows" mapstructure:"show_arrows"`     // Draw dependency arrows
	FillOpacity  float64 `yaml:"fill_opacity" mapstructure:"fill_opacity"`   // Opacity of the remaining-work part of each bar
	ArrowOpacity float64 `yaml:"arrow_opacity" mapstructure:"arrow_opacity"` // Opacity of dependency arrows
}

// PreviewConfig controls the terminal preview.
type PreviewConfig struct {
	Width     int `yaml:"width" mapstructure:"width"`           // Columns available for bars
	NameWidth int `yaml:"name_width" mapstructure:"name_width"` // Columns reserved for task names
}

// LoggingConfig controls the structured log.
type LoggingConfig struct {
	Level string `yaml:"level" mapstructure:"level"` // DEBUG, INFO, WARN or ERROR
	Dir   string `yaml:"dir" mapstructure:"dir"`     // Directory for ganttsvg.log; empty logs to stderr
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Font: FontConfig{
			Family:    "Arial, sans-serif",
			Size:      12,
			TitleSize: 18,
		},
		Colors: ColorsConfig{
			Background: "#ffffff",
			Text:       "#333333",
			Grid:       "#dddddd",
			Today:      "#d62728",
			Arrow:      "#000000",
		},
		Layout: LayoutConfig{
			DayWidth:     18,
			RowHeight:    36,
			BarHeight:    0.65,
			MarginTop:    60,
			MarginBottom: 50,
			MarginLeft:   160,
			MarginRight:  160,
		},
		Chart: ChartConfig{
			Title:        "Project Plan",
			ShowToday:    true,
			ShowLegend:   true,
			ShowArrows:   true,
			FillOpacity:  0.4,
			ArrowOpacity: 0.65,
		},
		Palette: nil,
		Preview: PreviewConfig{
			Width:     80,
			NameWidth: 20,
		},
		Logging: LoggingConfig{
			Level: "INFO",
		},
	}
}

// SetDefaults registers every default with viper so that keys exist even
// without a config file.
func SetDefaults() {
	d := Default()

	viper.SetDefault("font.family", d.Font.Family)
	viper.SetDefault("font.size", d.Font.Size)
	viper.SetDefault("font.title_size", d.Font.TitleSize)

	viper.SetDefault("colors.background", d.Colors.Background)
	viper.SetDefault("colors.text", d.Colors.Text)
	viper.SetDefault("colors.grid", d.Colors.Grid)
	viper.SetDefault("colors.today", d.Colors.Today)
	viper.SetDefault("colors.arrow", d.Colors.Arrow)

	viper.SetDefault("layout.day_width", d.Layout.DayWidth)
	viper.SetDefault("layout.row_height", d.Layout.RowHeight)
	viper.SetDefault("layout.bar_height", d.Layout.BarHeight)
	viper.SetDefault("layout.margin_top", d.Layout.MarginTop)
	viper.SetDefault("layout.margin_bottom", d.Layout.MarginBottom)
	viper.SetDefault("layout.margin_left", d.Layout.MarginLeft)
	viper.SetDefault("layout.margin_right", d.Layout.MarginRight)

	viper.SetDefault("chart.title", d.Chart.Title)
	viper.SetDefault("chart.show_today", d.Chart.ShowToday)
	viper.SetDefault("chart.show_legend", d.Chart.ShowLegend)
	viper.SetDefault("chart.show_arrows", d.Chart.ShowArrows)
	viper.SetDefault("chart.fill_opacity", d.Chart.FillOpacity)
	viper.SetDefault("chart.arrow_opacity", d.Chart.ArrowOpacity)

	viper.SetDefault("palette", []string{})

	viper.SetDefault("preview.width", d.Preview.Width)
	viper.SetDefault("preview.name_width", d.Preview.NameWidth)

	viper.SetDefault("logging.level", d.Logging.Level)
	viper.SetDefault("logging.dir", d.Logging.Dir)
}

// Load reads the configuration from viper into a Config and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, errs
	}
	return &cfg, nil
}

// LoadFile reads a YAML config file on top of the defaults, without viper.
// An empty path returns the defaults.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return Parse(data)
}

// Parse reads config YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, errs
	}
	return cfg, nil
}

// Dir returns the directory searched for config.yaml.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ganttsvg")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ganttsvg"
	}
	return filepath.Join(home, ".config", "ganttsvg")
}

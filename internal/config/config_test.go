package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Empty(t, cfg.Validate())
	assert.Equal(t, 0.65, cfg.Layout.BarHeight)
	assert.Equal(t, 0.4, cfg.Chart.FillOpacity)
	assert.True(t, cfg.Chart.ShowToday)
	assert.Equal(t, "INFO", cfg.Logging.Level)
}

func TestLoadFile(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		cfg, err := LoadFile("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("file overrides only what it sets", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
layout:
  day_width: 24
chart:
  show_legend: false
palette: ["#000000", "#ffffff"]
`), 0644))

		cfg, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, 24, cfg.Layout.DayWidth)
		assert.Equal(t, 36, cfg.Layout.RowHeight)
		assert.False(t, cfg.Chart.ShowLegend)
		assert.True(t, cfg.Chart.ShowToday)
		assert.Equal(t, []string{"#000000", "#ffffff"}, cfg.Palette)
	})

	t.Run("invalid values are reported together", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
layout:
  day_width: 0
colors:
  today: red
logging:
  level: loud
`), 0644))

		_, err := LoadFile(path)
		var errs ValidationErrors
		require.ErrorAs(t, err, &errs)
		fields := make([]string, 0, len(errs))
		for _, e := range errs {
			fields = append(fields, e.Field)
		}
		assert.ElementsMatch(t, []string{"layout.day_width", "colors.today", "logging.level"}, fields)
		assert.Contains(t, err.Error(), "3 validation errors")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorContains(t, err, "error reading config file")
	})
}

func TestLoad_ViperDefaultsAndOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	SetDefaults()
	viper.Set("layout.row_height", 40)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Layout.RowHeight)
	assert.Equal(t, Default().Layout.DayWidth, cfg.Layout.DayWidth)
	assert.Equal(t, Default().Font, cfg.Font)

	viper.Set("chart.fill_opacity", 2.0)
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chart.fill_opacity")
}

func TestValidationErrors_Error(t *testing.T) {
	assert.Equal(t, "", ValidationErrors(nil).Error())
	one := ValidationErrors{{Field: "font.size", Value: 0, Message: "must be positive"}}
	assert.Equal(t, "font.size: must be positive (got: 0)", one.Error())
}

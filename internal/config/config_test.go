package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohankatakam/codeviz/internal/errors"
	"github.com/rohankatakam/codeviz/internal/style"
	"github.com/rohankatakam/codeviz/internal/tree"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Contains(t, cfg.Themes, "light")
	assert.Contains(t, cfg.Themes, "dark")
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
render:
  clip_depth: 2
style:
  theme: solarized
coupling:
  min_ratio: 0.9
themes:
  solarized:
    default_stroke: "#586e75"
    selected_stroke: "#dc322f"
    coupling_stroke: "#cb4b16"
    neutral_fill: "#eee8d5"
    parent_fill: "#fdf6e3"
    scale_low: "#fdf6e3"
    scale_high: "#268bd2"
    background: "#fdf6e3"
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 2, cfg.Render.ClipDepth)
	assert.Equal(t, 1000.0, cfg.Render.Width, "unset keys keep their defaults")
	assert.Equal(t, 0.9, cfg.Coupling.MinRatio)
	assert.Equal(t, 5, cfg.Coupling.MinDays)
	assert.Equal(t, "solarized", cfg.Style.Theme)
	assert.Equal(t, "#268bd2", cfg.Themes["solarized"].ScaleHigh)
	assert.Contains(t, cfg.Themes, "light", "built-in themes survive")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CODEVIZ_THEME", "dark")
	t.Setenv("CODEVIZ_CLIP_DEPTH", "6")
	t.Setenv("CODEVIZ_MIN_RATIO", "0.5")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("render:\n  width: 500\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 500.0, cfg.Render.Width)
	assert.Equal(t, "dark", cfg.Style.Theme)
	assert.Equal(t, 6, cfg.Render.ClipDepth)
	assert.Equal(t, 0.5, cfg.Coupling.MinRatio)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Render.ClipDepth = 7
	cfg.Style.Visualization = "depth"
	cfg.Coupling.MaxCommonRoots = 2
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Render, loaded.Render)
	assert.Equal(t, cfg.Style, loaded.Style)
	assert.Equal(t, cfg.Coupling, loaded.Coupling)
	assert.Equal(t, cfg.Themes["dark"], loaded.Themes["dark"])
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		problem string
	}{
		{"ratio below slider", func(c *Config) { c.Coupling.MinRatio = 0.1 }, "coupling.minratio must be at least 0.25"},
		{"ratio above one", func(c *Config) { c.Coupling.MinRatio = 1.5 }, "coupling.minratio must be at most 1"},
		{"clip depth", func(c *Config) { c.Render.ClipDepth = 0 }, "render.clipdepth must be at least 1"},
		{"zoom range", func(c *Config) { c.Zoom.MaxScale = 0.1 }, "zoom.maxscale must be greater than minscale"},
		{"timescale taller than map", func(c *Config) { c.Render.TimescaleHeight = 900 }, "render.timescaleheight must be less than height"},
		{"unknown visualization", func(c *Config) { c.Style.Visualization = "heat" }, "style.visualization must be one of"},
		{"unknown theme", func(c *Config) { c.Style.Theme = "neon" }, `style.theme "neon" is not a configured theme`},
		{"bad palette", func(c *Config) {
			p := c.Themes["dark"]
			p.Background = "black"
			c.Themes["dark"] = p
		}, "must be a hex colour"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			result := cfg.Check()
			require.True(t, result.HasErrors())
			assert.Contains(t, result.Error(), tt.problem)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Equal(t, errors.ErrorTypeValidation, errors.GetType(err))
		})
	}
}

func TestInitialState(t *testing.T) {
	cfg := Default()
	cfg.Style.Visualization = "indentation"
	dates := tree.DateRange{Earliest: 10, Latest: 20}

	s, err := cfg.InitialState("tree.json", dates)
	require.NoError(t, err)
	assert.Equal(t, "tree.json", s.Layout.Source)
	assert.Equal(t, cfg.Render.ClipDepth, s.Layout.ClipDepth)
	assert.Equal(t, style.ModeIndentation, s.Style.Visualization)
	assert.Equal(t, cfg.CouplingThresholds(), s.Coupling)
	assert.Equal(t, dates, s.DateRange)
	assert.True(t, s.Style.Selected.IsZero())

	cfg.Style.Visualization = "heat"
	_, err = cfg.InitialState("tree.json", dates)
	assert.Error(t, err)
}

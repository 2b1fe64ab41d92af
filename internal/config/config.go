package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/rohankatakam/codeviz/internal/coupling"
	"github.com/rohankatakam/codeviz/internal/logging"
	"github.com/rohankatakam/codeviz/internal/state"
	"github.com/rohankatakam/codeviz/internal/style"
	"github.com/rohankatakam/codeviz/internal/tree"
	"github.com/rohankatakam/codeviz/internal/viewport"
)

// Config holds all configuration settings
type Config struct {
	// Map and timescale geometry
	Render RenderConfig `yaml:"render" mapstructure:"render"`

	// Initial visualization and theme
	Style StyleConfig `yaml:"style" mapstructure:"style"`

	// Coupling edge thresholds
	Coupling CouplingConfig `yaml:"coupling" mapstructure:"coupling"`

	// Pan/zoom limits
	Zoom ZoomConfig `yaml:"zoom" mapstructure:"zoom"`

	Logging logging.Config `yaml:"logging" mapstructure:"logging"`

	// Session store
	Store StoreConfig `yaml:"store" mapstructure:"store"`

	// Named palettes; "light" and "dark" are always present
	Themes style.Themes `yaml:"themes" mapstructure:"themes" validate:"dive"`
}

type RenderConfig struct {
	Width           float64 `yaml:"width" mapstructure:"width" validate:"gt=0"`
	Height          float64 `yaml:"height" mapstructure:"height" validate:"gt=0"`
	TimescaleHeight float64 `yaml:"timescale_height" mapstructure:"timescale_height" validate:"gte=0,ltfield=Height"`
	ClipDepth       int     `yaml:"clip_depth" mapstructure:"clip_depth" validate:"gte=1"`
}

type StyleConfig struct {
	Visualization string `yaml:"visualization" mapstructure:"visualization" validate:"required,oneof=none lines depth indentation"`
	Theme         string `yaml:"theme" mapstructure:"theme" validate:"required"`
}

type CouplingConfig struct {
	Shown          bool    `yaml:"shown" mapstructure:"shown"`
	MinRatio       float64 `yaml:"min_ratio" mapstructure:"min_ratio" validate:"gte=0.25,lte=1"`
	MinDays        int     `yaml:"min_days" mapstructure:"min_days" validate:"gte=0"`
	MaxCommonRoots int     `yaml:"max_common_roots" mapstructure:"max_common_roots"` // Negative disables the check
}

type ZoomConfig struct {
	MinScale float64 `yaml:"min_scale" mapstructure:"min_scale" validate:"gt=0"`
	MaxScale float64 `yaml:"max_scale" mapstructure:"max_scale" validate:"gtfield=MinScale"`
}

type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path" validate:"required"`
}

// Default returns default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		Render: RenderConfig{
			Width:           1000,
			Height:          800,
			TimescaleHeight: 100,
			ClipDepth:       4,
		},
		Style: StyleConfig{
			Visualization: style.ModeLines.String(),
			Theme:         "light",
		},
		Coupling: CouplingConfig{
			Shown:          true,
			MinRatio:       0.75,
			MinDays:        5,
			MaxCommonRoots: -1,
		},
		Zoom: ZoomConfig{
			MinScale: viewport.DefaultMinScale,
			MaxScale: viewport.DefaultMaxScale,
		},
		Logging: logging.Config{
			Level: "info",
		},
		Store: StoreConfig{
			Path: filepath.Join(homeDir, ".codeviz", "sessions.db"),
		},
		Themes: style.DefaultThemes(),
	}
}

// Load loads configuration from file
func Load(path string) (*Config, error) {
	// Load .env files first (in order of precedence)
	loadEnvFiles()

	v := viper.New()
	v.SetConfigType("yaml")

	// Set defaults
	cfg := Default()
	v.SetDefault("render", cfg.Render)
	v.SetDefault("style", cfg.Style)
	v.SetDefault("coupling", cfg.Coupling)
	v.SetDefault("zoom", cfg.Zoom)
	v.SetDefault("logging", cfg.Logging)
	v.SetDefault("store", cfg.Store)

	// Load from environment variables
	v.SetEnvPrefix("CODEVIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Try to find config file
	if path != "" {
		v.SetConfigFile(path)
	} else {
		// Search for config in standard locations
		v.SetConfigName("config")
		v.AddConfigPath(".codeviz")
		v.AddConfigPath(".")
		homeDir, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(homeDir, ".codeviz"))
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	// Unmarshal into struct
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Built-in themes can be overridden but not removed
	for name, p := range style.DefaultThemes() {
		if _, ok := cfg.Themes[name]; !ok {
			cfg.Themes[name] = p
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// loadEnvFiles loads .env files in order of precedence. godotenv never
// overrides variables that are already set, so earlier files win.
func loadEnvFiles() {
	envFiles := []string{
		".env.local", // Local overrides (highest precedence)
		".env",
	}

	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			godotenv.Load(file)
		}
	}

	// Also try loading from home directory
	homeDir, _ := os.UserHomeDir()
	homeEnvFile := filepath.Join(homeDir, ".codeviz", ".env")
	if _, err := os.Stat(homeEnvFile); err == nil {
		godotenv.Load(homeEnvFile)
	}
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if theme := os.Getenv("CODEVIZ_THEME"); theme != "" {
		cfg.Style.Theme = theme
	}
	if vis := os.Getenv("CODEVIZ_VISUALIZATION"); vis != "" {
		cfg.Style.Visualization = vis
	}
	if depth := os.Getenv("CODEVIZ_CLIP_DEPTH"); depth != "" {
		if d, err := strconv.Atoi(depth); err == nil {
			cfg.Render.ClipDepth = d
		}
	}
	if ratio := os.Getenv("CODEVIZ_MIN_RATIO"); ratio != "" {
		if r, err := strconv.ParseFloat(ratio, 64); err == nil {
			cfg.Coupling.MinRatio = r
		}
	}
	if level := os.Getenv("CODEVIZ_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if file := os.Getenv("CODEVIZ_LOG_FILE"); file != "" {
		cfg.Logging.OutputFile = expandPath(file)
	}
	if path := os.Getenv("CODEVIZ_STORE_PATH"); path != "" {
		cfg.Store.Path = expandPath(path)
	}
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if path == "" {
		return path
	}
	if path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}

// Save saves configuration to file
func (c *Config) Save(path string) error {
	v := viper.New()
	v.SetConfigType("yaml")

	v.Set("render", c.Render)
	v.Set("style", c.Style)
	v.Set("coupling", c.Coupling)
	v.Set("zoom", c.Zoom)
	v.Set("logging", c.Logging)
	v.Set("store", c.Store)
	v.Set("themes", c.Themes)

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Write config file
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// CouplingThresholds converts the coupling section for the edge resolver.
func (c *Config) CouplingThresholds() coupling.Config {
	return coupling.Config{
		Shown:          c.Coupling.Shown,
		MinRatio:       c.Coupling.MinRatio,
		MinDays:        c.Coupling.MinDays,
		MaxCommonRoots: c.Coupling.MaxCommonRoots,
	}
}

// InitialState is the first view state for a dataset loaded from source,
// showing the whole date extent.
func (c *Config) InitialState(source string, dates tree.DateRange) (state.ViewState, error) {
	mode, err := style.ParseMode(c.Style.Visualization)
	if err != nil {
		return state.ViewState{}, err
	}
	return state.ViewState{
		Layout: state.Layout{
			Source:          source,
			ClipDepth:       c.Render.ClipDepth,
			Width:           c.Render.Width,
			Height:          c.Render.Height,
			TimescaleHeight: c.Render.TimescaleHeight,
		},
		Style: state.Style{
			Visualization: mode,
			Theme:         c.Style.Theme,
		},
		Coupling:  c.CouplingThresholds(),
		DateRange: dates,
	}, nil
}

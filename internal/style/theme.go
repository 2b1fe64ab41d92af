package style

import "fmt"

// Palette is one named colour theme.
type Palette struct {
	DefaultStroke  string `json:"default_stroke" yaml:"default_stroke" mapstructure:"default_stroke" validate:"required,hexcolor"`
	SelectedStroke string `json:"selected_stroke" yaml:"selected_stroke" mapstructure:"selected_stroke" validate:"required,hexcolor"`
	CouplingStroke string `json:"coupling_stroke" yaml:"coupling_stroke" mapstructure:"coupling_stroke" validate:"required,hexcolor"`
	NeutralFill    string `json:"neutral_fill" yaml:"neutral_fill" mapstructure:"neutral_fill" validate:"required,hexcolor"`
	ParentFill     string `json:"parent_fill" yaml:"parent_fill" mapstructure:"parent_fill" validate:"required,hexcolor"`
	ScaleLow       string `json:"scale_low" yaml:"scale_low" mapstructure:"scale_low" validate:"required,hexcolor"`
	ScaleHigh      string `json:"scale_high" yaml:"scale_high" mapstructure:"scale_high" validate:"required,hexcolor"`
	Background     string `json:"background" yaml:"background" mapstructure:"background" validate:"required,hexcolor"`
}

// Themes maps theme names to palettes.
type Themes map[string]Palette

// Get returns the named palette.
func (t Themes) Get(name string) (Palette, error) {
	p, ok := t[name]
	if !ok {
		return Palette{}, fmt.Errorf("unknown theme %q", name)
	}
	return p, nil
}

// DefaultThemes are the built-in light and dark palettes.
func DefaultThemes() Themes {
	return Themes{
		"light": {
			DefaultStroke:  "#404040",
			SelectedStroke: "#d62728",
			CouplingStroke: "#ff6300",
			NeutralFill:    "#e0e0e0",
			ParentFill:     "#c8c8c8",
			ScaleLow:       "#f7fbff",
			ScaleHigh:      "#08306b",
			Background:     "#ffffff",
		},
		"dark": {
			DefaultStroke:  "#9e9e9e",
			SelectedStroke: "#ffeb3b",
			CouplingStroke: "#ff6300",
			NeutralFill:    "#303030",
			ParentFill:     "#202020",
			ScaleLow:       "#1a1a2e",
			ScaleHigh:      "#00d1ff",
			Background:     "#121212",
		},
	}
}

// Package styles defines the visual styling for modlink's terminal output.
//
// All styles use semantic names and adaptive colors that adjust to light
// and dark terminal themes. The definitions live in styles.yaml, embedded
// at build time.
package styles

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold         bool   `yaml:"bold,omitempty"`
	Italic       bool   `yaml:"italic,omitempty"`
	Underline    bool   `yaml:"underline,omitempty"`
	Foreground   string `yaml:"foreground,omitempty"`
	Width        int    `yaml:"width,omitempty"`
	MarginBottom int    `yaml:"marginBottom,omitempty"`
	MarginTop    int    `yaml:"marginTop,omitempty"`
}

// Config represents the complete styles configuration
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// StyleRegistry maps semantic names to lipgloss styles
var StyleRegistry map[string]lipgloss.Style

//go:embed styles.yaml
var embeddedStyles []byte

func init() {
	if err := LoadStylesFromData(embeddedStyles); err != nil {
		initDefaultStyles()
	}
}

// initDefaultStyles registers unstyled entries so lookups never fail
func initDefaultStyles() {
	StyleRegistry = make(map[string]lipgloss.Style)
	for _, name := range []string{
		"Header", "Success", "Error", "Warning", "Info",
		"Muted", "Bold", "FilePath", "Action", "DryRunBanner",
	} {
		StyleRegistry[name] = lipgloss.NewStyle()
	}
}

// LoadStylesFromData replaces the registry with the styles defined in data
func LoadStylesFromData(data []byte) error {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse styles data: %w", err)
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(config.Colors))
	for name, def := range config.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	registry := make(map[string]lipgloss.Style, len(config.Styles))
	for name, def := range config.Styles {
		style, err := buildStyle(def, colors)
		if err != nil {
			return fmt.Errorf("style %s: %w", name, err)
		}
		registry[name] = style
	}

	StyleRegistry = registry
	return nil
}

func buildStyle(def StyleDef, colors map[string]lipgloss.AdaptiveColor) (lipgloss.Style, error) {
	style := lipgloss.NewStyle()

	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if def.Underline {
		style = style.Underline(true)
	}
	if def.Foreground != "" {
		color, ok := colors[def.Foreground]
		if !ok {
			return style, fmt.Errorf("unknown color %q", def.Foreground)
		}
		style = style.Foreground(color)
	}
	if def.Width > 0 {
		style = style.Width(def.Width)
	}
	if def.MarginTop > 0 {
		style = style.MarginTop(def.MarginTop)
	}
	if def.MarginBottom > 0 {
		style = style.MarginBottom(def.MarginBottom)
	}

	return style, nil
}

// GetStyle safely retrieves a style from the registry
func GetStyle(name string) lipgloss.Style {
	if style, ok := StyleRegistry[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

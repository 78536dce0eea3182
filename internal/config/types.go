package config

import (
	"fmt"
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// CPUPlaceholder is replaced with the platform identifier in Title.
const CPUPlaceholder = "{cpu}"

type RenderConfig struct {
	Title    string        `yaml:"title"`
	LogLevel string        `yaml:"log_level"`
	Page     PageConfig    `yaml:"page"`
	Heatmap  HeatmapConfig `yaml:"heatmap"`
	Overlays OverlayConfig `yaml:"overlays"`
}

// PageConfig sizes are in inches.
type PageConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	DPI    int     `yaml:"dpi"`
}

type HeatmapConfig struct {
	Palette string `yaml:"palette"`
	Colors  int    `yaml:"colors"`
}

type OverlayConfig struct {
	Reference OverlayStyle `yaml:"reference"`
	Solution  OverlayStyle `yaml:"solution"`
}

// OverlayStyle widths and spacings are in points.
type OverlayStyle struct {
	Color        string  `yaml:"color"`
	LineWidth    float64 `yaml:"line_width"`
	Hatch        bool    `yaml:"hatch"`
	HatchSpacing float64 `yaml:"hatch_spacing"`
}

func Default() *RenderConfig {
	return &RenderConfig{
		Title: "AnC signal (" + CPUPlaceholder + ")",
		Page: PageConfig{
			Width:  6.4,
			Height: 4.8,
			DPI:    150,
		},
		Heatmap: HeatmapConfig{
			Palette: "Blues",
			Colors:  9,
		},
		Overlays: OverlayConfig{
			Reference: OverlayStyle{
				Color:        "#00ff00",
				LineWidth:    1,
				Hatch:        true,
				HatchSpacing: 1.5,
			},
			Solution: OverlayStyle{
				Color:     "#ff0000",
				LineWidth: 1,
			},
		},
	}
}

// DocumentTitle fills the CPU placeholder of the configured title.
func (c *RenderConfig) DocumentTitle(cpuName string) string {
	return strings.ReplaceAll(c.Title, CPUPlaceholder, cpuName)
}

func (s OverlayStyle) RGBA() (color.Color, error) {
	c, err := colorful.Hex(s.Color)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", s.Color, err)
	}
	return c.Clamped(), nil
}

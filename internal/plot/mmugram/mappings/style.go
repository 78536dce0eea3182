package mappings

import (
	"fmt"

	"mmugram/internal/config"
	"mmugram/internal/geometry"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	XLabel = "Cache line offset in page table"
	YLabel = "Consecutive pages"
)

func PageTitle(level int) string {
	return fmt.Sprintf("Level %d signal", level)
}

type OverlayStyle struct {
	Line         draw.LineStyle
	Hatch        bool
	HatchSpacing vg.Length
}

// OverlayStyles maps each hypothesis kind to the way it is outlined.
type OverlayStyles struct {
	Reference OverlayStyle
	Solution  OverlayStyle
}

func NewOverlayStyles(cfg config.OverlayConfig) (OverlayStyles, error) {
	ref, err := newOverlayStyle(cfg.Reference)
	if err != nil {
		return OverlayStyles{}, fmt.Errorf("reference overlay: %w", err)
	}
	sol, err := newOverlayStyle(cfg.Solution)
	if err != nil {
		return OverlayStyles{}, fmt.Errorf("solution overlay: %w", err)
	}
	return OverlayStyles{Reference: ref, Solution: sol}, nil
}

func (s OverlayStyles) For(kind geometry.Kind) OverlayStyle {
	if kind == geometry.Solution {
		return s.Solution
	}
	return s.Reference
}

func newOverlayStyle(cfg config.OverlayStyle) (OverlayStyle, error) {
	clr, err := cfg.RGBA()
	if err != nil {
		return OverlayStyle{}, err
	}
	return OverlayStyle{
		Line: draw.LineStyle{
			Color: clr,
			Width: vg.Points(cfg.LineWidth),
		},
		Hatch:        cfg.Hatch,
		HatchSpacing: vg.Points(cfg.HatchSpacing),
	}, nil
}

// Palette looks up a ColorBrewer scheme such as "Blues".
func Palette(cfg config.HeatmapConfig) (palette.Palette, error) {
	p, err := brewer.GetPalette(brewer.TypeAny, cfg.Palette, cfg.Colors)
	if err != nil {
		return nil, fmt.Errorf("heatmap palette %q with %d colors: %w", cfg.Palette, cfg.Colors, err)
	}
	return p, nil
}

package mmugram

import (
	"bytes"
	"fmt"
	"image/color"

	"mmugram/internal/config"
	"mmugram/internal/geometry"
	"mmugram/internal/plot/mmugram/mappings"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Page is one level ready to be drawn: the normalised signal and the two
// projected geometries.
type Page struct {
	Level     int
	Signal    mat.Matrix
	Reference []geometry.Rect
	Solution  []geometry.Rect
}

// PageAssembler turns pages into PNG images sized for the output document.
type PageAssembler struct {
	width   vg.Length
	height  vg.Length
	dpi     int
	palette palette.Palette
	styles  mappings.OverlayStyles
	logger  *logrus.Logger
}

func NewPageAssembler(cfg *config.RenderConfig, logger *logrus.Logger) (*PageAssembler, error) {
	pal, err := mappings.Palette(cfg.Heatmap)
	if err != nil {
		return nil, err
	}
	styles, err := mappings.NewOverlayStyles(cfg.Overlays)
	if err != nil {
		return nil, err
	}

	return &PageAssembler{
		width:   vg.Length(cfg.Page.Width) * vg.Inch,
		height:  vg.Length(cfg.Page.Height) * vg.Inch,
		dpi:     cfg.Page.DPI,
		palette: pal,
		styles:  styles,
		logger:  logger,
	}, nil
}

// Build composes the plot for a page without rasterising it.
func (a *PageAssembler) Build(page Page) (*plot.Plot, error) {
	rows, cols := page.Signal.Dims()
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("level %d: %w", page.Level, geometry.ErrEmptyGrid)
	}

	p := plot.New()
	p.Title.Text = mappings.PageTitle(page.Level)
	p.X.Label.Text = mappings.XLabel
	p.Y.Label.Text = mappings.YLabel

	hm := plotter.NewHeatMap(signalGrid{m: page.Signal}, a.palette)
	// The colour scale is fixed so pages stay comparable.
	hm.Min = 0
	hm.Max = 1

	p.Add(hm)
	p.Add(&overlay{rects: page.Reference, style: a.styles.For(geometry.Reference)})
	p.Add(&overlay{rects: page.Solution, style: a.styles.For(geometry.Solution)})

	p.X.Min, p.X.Max = 0, float64(cols)
	p.Y.Min, p.Y.Max = 0, float64(rows)
	return p, nil
}

func (a *PageAssembler) Render(page Page) ([]byte, error) {
	p, err := a.Build(page)
	if err != nil {
		return nil, err
	}

	canvas := vgimg.NewWith(
		vgimg.UseWH(a.width, a.height),
		vgimg.UseDPI(a.dpi),
		vgimg.UseBackgroundColor(color.White),
	)
	p.Draw(draw.New(canvas))

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: canvas}).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode level %d page: %w", page.Level, err)
	}

	a.logger.WithFields(logrus.Fields{
		"pt_level":  page.Level,
		"reference": len(page.Reference),
		"solution":  len(page.Solution),
		"bytes":     buf.Len(),
	}).Debug("Rendered level page")
	return buf.Bytes(), nil
}

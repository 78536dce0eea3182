package mmugram

import (
	"mmugram/internal/geometry"
	"mmugram/internal/plot/mmugram/mappings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// overlay draws unfilled rectangles in data coordinates. Anything outside
// the plot area is clipped.
type overlay struct {
	rects []geometry.Rect
	style mappings.OverlayStyle
}

func (o *overlay) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)

	hatch := o.style.Line
	hatch.Width /= 2

	for _, r := range o.rects {
		x0, x1 := trX(float64(r.X)), trX(float64(r.X+r.Width))
		y0, y1 := trY(float64(r.Y)), trY(float64(r.Y+r.Height))

		if o.style.Hatch && o.style.HatchSpacing > 0 {
			if lines := hatchLines(x0, y0, x1, y1, o.style.HatchSpacing); len(lines) > 0 {
				c.StrokeLines(hatch, c.ClipLinesXY(lines...)...)
			}
		}

		outline := []vg.Point{
			{X: x0, Y: y0},
			{X: x1, Y: y0},
			{X: x1, Y: y1},
			{X: x0, Y: y1},
			{X: x0, Y: y0},
		}
		c.StrokeLines(o.style.Line, c.ClipLinesXY(outline)...)
	}
}

// hatchLines fills the box with '/' strokes spaced `spacing` apart
// horizontally.
func hatchLines(x0, y0, x1, y1, spacing vg.Length) [][]vg.Point {
	w, h := x1-x0, y1-y0
	if w <= 0 || h <= 0 {
		return nil
	}

	var lines [][]vg.Point
	for d := -h + spacing; d < w; d += spacing {
		lo := max(0, -d)
		hi := min(h, w-d)
		if hi <= lo {
			continue
		}
		lines = append(lines, []vg.Point{
			{X: x0 + d + lo, Y: y0 + lo},
			{X: x0 + d + hi, Y: y0 + hi},
		})
	}
	return lines
}

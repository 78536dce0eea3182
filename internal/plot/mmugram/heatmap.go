package mmugram

import "gonum.org/v1/gonum/mat"

// signalGrid exposes a signal matrix as a plotter.GridXYZ. Cell (c, r) is
// centred on (c+0.5, r+0.5) so it covers [c, c+1] x [r, r+1], which keeps the
// heat-map aligned with the integer overlay rectangles.
type signalGrid struct {
	m mat.Matrix
}

func (g signalGrid) Dims() (c, r int) {
	r, c = g.m.Dims()
	return c, r
}

func (g signalGrid) Z(c, r int) float64 {
	return g.m.At(r, c)
}

func (g signalGrid) X(c int) float64 {
	return float64(c) + 0.5
}

func (g signalGrid) Y(r int) float64 {
	return float64(r) + 0.5
}

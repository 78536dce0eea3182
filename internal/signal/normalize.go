// Package signal rescales raw timing matrices before they are plotted.
package signal

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// NormalizeRow maps row into [0, 1] using its own minimum and maximum.
//
// A constant row divides by its maximum instead of the empty range, which
// turns every cell into 0. An all-zero row has nothing to divide by either
// and is mapped to 0 as well, so no NaN reaches the renderer.
func NormalizeRow(row []float64) []float64 {
	out := make([]float64, len(row))
	if len(row) == 0 {
		return out
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range row {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	scale := hi - lo
	if scale == 0 {
		scale = hi
	}
	if scale == 0 {
		return out
	}

	for i, v := range row {
		out[i] = (v - lo) / scale
	}
	return out
}

// Normalize returns a copy of m with every row passed through NormalizeRow.
func Normalize(m mat.Matrix) *mat.Dense {
	rows, cols := m.Dims()
	out := mat.NewDense(rows, cols, nil)
	row := make([]float64, cols)
	for r := 0; r < rows; r++ {
		mat.Row(row, r, m)
		out.SetRow(r, NormalizeRow(row))
	}
	return out
}

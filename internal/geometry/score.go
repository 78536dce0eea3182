package geometry

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Score sums the signal along the diagonal path described by t: for every
// row r the cell at column (Line + (r+Page)/PagesPerLine) mod cols.
func Score(m mat.Matrix, t Triple) (float64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	rows, cols := m.Dims()
	if cols <= 0 {
		return 0, fmt.Errorf("%w: cols=%d", ErrEmptyGrid, cols)
	}

	var sum float64
	for r := 0; r < rows; r++ {
		c := floorMod(t.Line+floorDiv(r+t.Page, t.PagesPerLine), cols)
		sum += m.At(r, c)
	}
	return sum, nil
}

// Solve tries every line in [0, cols) and page in [0, npagesPerLine) and
// returns the triple with the highest score. Ties keep the first candidate.
func Solve(m mat.Matrix, npagesPerLine int) (Triple, float64, error) {
	if npagesPerLine <= 0 {
		return Triple{}, 0, fmt.Errorf("%w: got %d", ErrInvalidPeriod, npagesPerLine)
	}
	_, cols := m.Dims()
	if cols <= 0 {
		return Triple{}, 0, fmt.Errorf("%w: cols=%d", ErrEmptyGrid, cols)
	}

	best := Triple{PagesPerLine: npagesPerLine}
	bestScore := 0.0
	found := false
	for line := 0; line < cols; line++ {
		for page := 0; page < npagesPerLine; page++ {
			candidate := Triple{PagesPerLine: npagesPerLine, Line: line, Page: page}
			score, err := Score(m, candidate)
			if err != nil {
				return Triple{}, 0, err
			}
			if !found || score > bestScore {
				best, bestScore, found = candidate, score, true
			}
		}
	}
	return best, bestScore, nil
}

// SlotDistance is how many page-table entries apart two triples point.
func SlotDistance(a, b Triple) int {
	d := a.Slot() - b.Slot()
	if d < 0 {
		return -d
	}
	return d
}

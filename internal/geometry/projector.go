package geometry

import "fmt"

// Project expands t into the rectangles covering a rows x cols grid. Blocks
// start at -t.Page and repeat every t.PagesPerLine rows up to and including
// row `rows`; the column of block k is (t.Line + k) mod cols.
func Project(t Triple, rows, cols int, kind Kind) ([]Rect, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if cols <= 0 {
		return nil, fmt.Errorf("%w: cols=%d", ErrEmptyGrid, cols)
	}
	if rows < 0 {
		return nil, fmt.Errorf("%w: rows=%d", ErrEmptyGrid, rows)
	}

	n := t.PagesPerLine
	rects := make([]Rect, 0, max(0, (rows+t.Page)/n+1))
	for y := -t.Page; y <= rows; y += n {
		k := floorDiv(y+t.Page, n)
		rects = append(rects, Rect{
			X:      floorMod(t.Line+k, cols),
			Y:      y,
			Width:  1,
			Height: n,
			Kind:   kind,
		})
	}
	return rects, nil
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

package geometry

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPeriod = errors.New("npages_per_line must be positive")
	ErrEmptyGrid     = errors.New("grid has no columns")
)

// Kind tells the renderer which overlay style a rectangle belongs to.
type Kind int

const (
	Reference Kind = iota
	Solution
)

func (k Kind) String() string {
	switch k {
	case Reference:
		return "reference"
	case Solution:
		return "solution"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Triple is a periodic eviction pattern hypothesis: every PagesPerLine rows
// the occupied cache line moves one column to the right, starting at column
// Line for the block whose boundary sits at row -Page.
type Triple struct {
	PagesPerLine int `yaml:"npages_per_line"`
	Line         int `yaml:"line"`
	Page         int `yaml:"page"`
}

func (t Triple) Validate() error {
	if t.PagesPerLine <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPeriod, t.PagesPerLine)
	}
	return nil
}

// Slot is the page-table entry index the triple points at.
func (t Triple) Slot() int {
	return t.Line*t.PagesPerLine + t.Page
}

func (t Triple) String() string {
	return fmt.Sprintf("(%d, %d, %d)", t.PagesPerLine, t.Line, t.Page)
}

// Rect is a grid-aligned box in signal coordinates: X is the cache line
// column, Y the first page row it covers.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
	Kind   Kind
}

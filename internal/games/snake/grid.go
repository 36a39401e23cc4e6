package snake

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is returned when a coordinate falls outside the grid.
var ErrOutOfBounds = errors.New("snake: out of bounds")

// Position is a grid coordinate. Rows grow downward, columns to the right.
type Position struct {
	Row int
	Col int
}

// Step returns the position one cell away in direction d.
func (p Position) Step(d Direction) Position {
	dRow, dCol := d.Delta()
	return Position{Row: p.Row + dRow, Col: p.Col + dCol}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Grid is the bounds-checked indexer for a height×width board stored in
// row-major order: index = row*width + col.
type Grid struct {
	height int
	width  int
}

// NewGrid returns an indexer for a board of the given size.
func NewGrid(height, width int) (Grid, error) {
	if height <= 0 || width <= 0 {
		return Grid{}, fmt.Errorf("snake: invalid grid size %dx%d", height, width)
	}
	return Grid{height: height, width: width}, nil
}

// Height returns the number of rows.
func (g Grid) Height() int { return g.height }

// Width returns the number of columns.
func (g Grid) Width() int { return g.width }

// Len returns the number of cells.
func (g Grid) Len() int { return g.height * g.width }

// Contains reports whether p lies on the board.
func (g Grid) Contains(p Position) bool {
	return p.Row >= 0 && p.Row < g.height && p.Col >= 0 && p.Col < g.width
}

// Index returns the flat cell index of p, or ErrOutOfBounds.
func (g Grid) Index(p Position) (int, error) {
	if !g.Contains(p) {
		return 0, fmt.Errorf("%w: %s on %dx%d grid", ErrOutOfBounds, p, g.height, g.width)
	}
	return p.Row*g.width + p.Col, nil
}

// Position is the inverse of Index.
func (g Grid) Position(idx int) Position {
	return Position{Row: idx / g.width, Col: idx % g.width}
}

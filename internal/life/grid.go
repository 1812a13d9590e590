package life

import (
	"fmt"
	"strings"
)

// Grid is a square matrix of cell states. Every row holds exactly Size()
// cells and all access is bounds-checked.
type Grid struct {
	n     int
	cells [][]bool
}

// NewGrid allocates an all-dead grid. It panics when n is not positive;
// use NewGridChecked for user-supplied sizes.
func NewGrid(n int) *Grid {
	g, err := NewGridChecked(n)
	if err != nil {
		panic(err)
	}
	return g
}

// NewGridChecked allocates an all-dead grid or reports ErrInvalidSize.
func NewGridChecked(n int) (*Grid, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}
	cells := make([][]bool, n)
	for y := range cells {
		cells[y] = make([]bool, n)
	}
	return &Grid{n: n, cells: cells}, nil
}

// FromRows builds a grid from an existing matrix, copying it. The matrix
// must be non-empty and square.
func FromRows(rows [][]bool) (*Grid, error) {
	n := len(rows)
	if n == 0 {
		return nil, ErrDimensionMismatch
	}
	g := NewGrid(n)
	for y, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrDimensionMismatch, y, len(row), n)
		}
		copy(g.cells[y], row)
	}
	return g, nil
}

// Parse builds a grid from text rows where '#' or 'O' marks a live cell and
// any other byte a dead one.
func Parse(rows ...string) (*Grid, error) {
	matrix := make([][]bool, len(rows))
	for y, row := range rows {
		matrix[y] = make([]bool, len(row))
		for x := 0; x < len(row); x++ {
			matrix[y][x] = row[x] == '#' || row[x] == 'O'
		}
	}
	return FromRows(matrix)
}

// MustParse is Parse for literals in tests and pattern tables.
func MustParse(rows ...string) *Grid {
	g, err := Parse(rows...)
	if err != nil {
		panic(err)
	}
	return g
}

// Size returns the side length.
func (g *Grid) Size() int { return g.n }

// InBounds reports whether (y, x) addresses a cell of the grid.
func (g *Grid) InBounds(y, x int) bool {
	return y >= 0 && x >= 0 && y < g.n && x < g.n
}

func (g *Grid) check(y, x int) {
	if !g.InBounds(y, x) {
		panic(fmt.Errorf("%w: (%d,%d) on %dx%d grid", ErrOutOfBounds, y, x, g.n, g.n))
	}
}

// Alive reports the state of cell (y, x).
func (g *Grid) Alive(y, x int) bool {
	g.check(y, x)
	return g.cells[y][x]
}

// Set marks cell (y, x) alive. Setting a live cell again is a no-op.
func (g *Grid) Set(y, x int) {
	g.check(y, x)
	g.cells[y][x] = true
}

// Population counts live cells.
func (g *Grid) Population() int {
	count := 0
	for _, row := range g.cells {
		for _, cell := range row {
			if cell {
				count++
			}
		}
	}
	return count
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	c := NewGrid(g.n)
	for y := range g.cells {
		copy(c.cells[y], g.cells[y])
	}
	return c
}

// Equal reports whether both grids have the same size and cell states.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.n != other.n {
		return false
	}
	for y := range g.cells {
		for x := range g.cells[y] {
			if g.cells[y][x] != other.cells[y][x] {
				return false
			}
		}
	}
	return true
}

// Rows returns a copy of the cell matrix.
func (g *Grid) Rows() [][]bool {
	out := make([][]bool, g.n)
	for y := range g.cells {
		out[y] = make([]bool, g.n)
		copy(out[y], g.cells[y])
	}
	return out
}

// String renders the grid with '#' for live and '.' for dead cells.
func (g *Grid) String() string {
	var b strings.Builder
	for y, row := range g.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, cell := range row {
			if cell {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
	}
	return b.String()
}

package life

import "fmt"

// Rule is the B3/S23 transition for a single cell.
func Rule(alive bool, neighbors int) bool {
	if alive {
		return neighbors == 2 || neighbors == 3
	}
	return neighbors == 3
}

func (g *Grid) validate() {
	if g == nil || g.n <= 0 || len(g.cells) != g.n {
		panic(ErrDimensionMismatch)
	}
	for y, row := range g.cells {
		if len(row) != g.n {
			panic(fmt.Errorf("%w: row %d", ErrDimensionMismatch, y))
		}
	}
}

// CountLiveNeighbors counts live cells in the Moore neighborhood of (y, x).
// Neighbors that fall outside the grid count as dead; edges do not wrap.
func CountLiveNeighbors(g *Grid, y, x int) int {
	g.validate()
	g.check(y, x)
	return countNeighbors(g, y, x)
}

func countNeighbors(g *Grid, y, x int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dy == 0 && dx == 0 {
				continue
			}
			ny, nx := y+dy, x+dx
			if !g.InBounds(ny, nx) {
				continue
			}
			if g.cells[ny][nx] {
				count++
			}
		}
	}
	return count
}

// Candidates returns how many in-bounds neighbor coordinates (y, x) has:
// 3 at a corner, 5 on an edge, 8 in the interior (fewer on grids under 3x3).
func Candidates(g *Grid, y, x int) int {
	g.check(y, x)
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if (dy != 0 || dx != 0) && g.InBounds(y+dy, x+dx) {
				count++
			}
		}
	}
	return count
}

// Step computes the next generation into a fresh grid. The input is only
// read, so no cell update can observe an already-updated neighbor.
func Step(g *Grid) *Grid {
	g.validate()
	next := NewGrid(g.n)
	for y, row := range g.cells {
		for x, alive := range row {
			next.cells[y][x] = Rule(alive, countNeighbors(g, y, x))
		}
	}
	return next
}

package session

// Direction is a cursor movement axis and sign.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Cursor is the edit position on the grid. Movement wraps at the edges even
// though the simulation itself does not.
type Cursor struct {
	X, Y int
}

// NewCursor returns the starting cursor for an n-sided grid: (1, 1) reduced
// modulo n.
func NewCursor(n int) Cursor {
	return Cursor{X: 1 % n, Y: 1 % n}
}

// Move shifts the cursor one cell, wrapping modulo n.
func (c *Cursor) Move(d Direction, n int) {
	switch d {
	case Up:
		c.Y = (c.Y - 1 + n) % n
	case Down:
		c.Y = (c.Y + 1) % n
	case Left:
		c.X = (c.X - 1 + n) % n
	case Right:
		c.X = (c.X + 1) % n
	}
}

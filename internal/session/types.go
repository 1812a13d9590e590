package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/san-kum/lifesim/internal/life"
)

// Phase is the session's position in its edit/simulate lifecycle.
type Phase int

const (
	Editing Phase = iota
	Simulating
	Terminated
)

func (p Phase) String() string {
	switch p {
	case Editing:
		return "editing"
	case Simulating:
		return "simulating"
	case Terminated:
		return "terminated"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Key is a frontend-independent key event.
type Key struct {
	Code KeyCode
	Rune rune
}

type KeyCode int

const (
	KeyOther KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyEnter
)

func (k Key) String() string {
	switch k.Code {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeySpace:
		return "space"
	case KeyEnter:
		return "enter"
	}
	if k.Rune != 0 {
		return fmt.Sprintf("%q", k.Rune)
	}
	return "other"
}

// Observer is notified with every generation the machine produces,
// starting with generation 0 when the simulation begins.
type Observer interface {
	OnGeneration(gen int, g *life.Grid)
}

// Terminal is the I/O facility the session renders through and reads keys
// from. ReadKey blocks until a key arrives or ctx is done; PollInterrupt must
// not block. Status writes a line of text at the position set by the last
// Goto.
type Terminal interface {
	ReadKey(ctx context.Context) (Key, error)
	Render(g *life.Grid, c Cursor, showCursor bool) error
	Clear() error
	Flush() error
	HideCursor() error
	ShowCursor() error
	Goto(col, row int) error
	Status(text string) error
	PollInterrupt() bool
}

var (
	// ErrInvalidOptions indicates a machine configuration that cannot run.
	ErrInvalidOptions = errors.New("session: invalid options")

	// ErrTerminalWrite indicates output to the terminal failed.
	ErrTerminalWrite = errors.New("session: terminal write failed")
)

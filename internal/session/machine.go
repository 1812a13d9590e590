package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/logging"
)

// Options configures a Machine.
type Options struct {
	Size           int
	Generations    int
	StopWhenStable bool
	Pattern        string
	Logger         *slog.Logger
}

// Machine is the session state machine. It owns the grid and the cursor;
// frontends feed it keys while editing and call Advance while simulating.
type Machine struct {
	phase       Phase
	grid        *life.Grid
	cursor      Cursor
	generation  int
	generations int
	stopStable  bool
	stable      bool
	lastErr     error
	observers   []Observer
	log         *slog.Logger
}

// New builds a machine in the Editing phase with an all-dead grid, optionally
// seeded with a built-in pattern.
func New(opts Options) (*Machine, error) {
	if opts.Generations < 0 {
		return nil, fmt.Errorf("%w: generations must not be negative, got %d", ErrInvalidOptions, opts.Generations)
	}
	grid, err := life.NewGridChecked(opts.Size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	if opts.Pattern != "" {
		if err := life.Place(grid, opts.Pattern); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Machine{
		phase:       Editing,
		grid:        grid,
		cursor:      NewCursor(opts.Size),
		generations: opts.Generations,
		stopStable:  opts.StopWhenStable,
		log:         logger,
	}, nil
}

func (m *Machine) AddObserver(o Observer) { m.observers = append(m.observers, o) }

func (m *Machine) Phase() Phase        { return m.phase }
func (m *Machine) Grid() *life.Grid    { return m.grid }
func (m *Machine) Cursor() Cursor      { return m.cursor }
func (m *Machine) Generation() int     { return m.generation }
func (m *Machine) Generations() int    { return m.generations }
func (m *Machine) Size() int           { return m.grid.Size() }
func (m *Machine) LastError() error    { return m.lastErr }
func (m *Machine) StoppedStable() bool { return m.stable }

// HandleKey applies one edit-phase key event and returns the resulting phase.
// Keys arriving outside the Editing phase are dropped.
func (m *Machine) HandleKey(k Key) Phase {
	if m.phase != Editing {
		return m.phase
	}
	m.lastErr = nil
	m.log.Log(context.Background(), logging.LevelTrace, "key", "key", k.String(), "x", m.cursor.X, "y", m.cursor.Y)
	n := m.grid.Size()
	switch k.Code {
	case KeyUp:
		m.cursor.Move(Up, n)
	case KeyDown:
		m.cursor.Move(Down, n)
	case KeyLeft:
		m.cursor.Move(Left, n)
	case KeyRight:
		m.cursor.Move(Right, n)
	case KeySpace:
		m.grid.Set(m.cursor.Y, m.cursor.X)
	case KeyEnter:
		m.begin()
	default:
		m.log.Info("session aborted", "key", k.String())
		m.phase = Terminated
	}
	return m.phase
}

// ReadFailed records a key-read error. The session stays in its phase.
func (m *Machine) ReadFailed(err error) {
	m.lastErr = err
	m.log.Warn("error reading key", "err", err)
}

func (m *Machine) begin() {
	m.phase = Simulating
	m.log.Info("simulation started",
		"population", m.grid.Population(),
		"generations", m.generations,
	)
	m.notify()
}

// Done reports whether the simulation has run its course: the configured
// generation count was reached, or the grid stopped changing and the machine
// was told to stop on a still grid.
func (m *Machine) Done() bool {
	return m.generation >= m.generations || m.stable
}

// Advance replaces the grid with its next generation. It does nothing and
// returns false outside the Simulating phase or once Done.
func (m *Machine) Advance() bool {
	if m.phase != Simulating || m.Done() {
		return false
	}
	next := life.Step(m.grid)
	if m.stopStable && next.Equal(m.grid) {
		m.stable = true
	}
	m.grid = next
	m.generation++
	m.notify()
	return true
}

// Stop ends the session from any phase.
func (m *Machine) Stop() {
	if m.phase == Terminated {
		return
	}
	m.log.Info("session finished",
		"generation", m.generation,
		"population", m.grid.Population(),
		"stable", m.stable,
	)
	m.phase = Terminated
}

func (m *Machine) notify() {
	for _, o := range m.observers {
		o.OnGeneration(m.generation, m.grid)
	}
}

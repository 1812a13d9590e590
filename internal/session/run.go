package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// DefaultFrameDelay paces simulation frames.
const DefaultFrameDelay = 100 * time.Millisecond

// RunOptions controls the blocking terminal driver.
type RunOptions struct {
	FrameDelay time.Duration
	// Interruptible makes the simulation poll the terminal once per frame
	// and stop early when an interrupt is pending.
	Interruptible bool
	// Sleep pauses between frames; time.Sleep when nil.
	Sleep func(time.Duration)
}

// StatusRow is the terminal row of the status line for an n-sided grid.
func StatusRow(n int) int { return n + 5 }

// Run drives m through the terminal until the session terminates. The
// terminal's cursor is hidden for the duration and shown again, with the
// screen cleared, on every return path.
func Run(ctx context.Context, t Terminal, m *Machine, opts RunOptions) (err error) {
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}

	if err := t.HideCursor(); err != nil {
		return fmt.Errorf("%w: %w", ErrTerminalWrite, err)
	}
	defer func() {
		m.Stop()
		if rerr := restore(t); rerr != nil && err == nil {
			err = rerr
		}
	}()

	if err := drawEdit(t, m); err != nil {
		return err
	}

	for m.Phase() == Editing {
		key, rerr := t.ReadKey(ctx)
		if err := ctx.Err(); err != nil {
			return err
		}
		if errors.Is(rerr, io.EOF) {
			m.ReadFailed(rerr)
			return nil
		}
		if rerr != nil {
			m.ReadFailed(rerr)
			if err := writeStatus(t, m, fmt.Sprintf("Error reading key: %v", rerr)); err != nil {
				return err
			}
			if err := t.Flush(); err != nil {
				return fmt.Errorf("%w: %w", ErrTerminalWrite, err)
			}
			continue
		}
		if m.HandleKey(key) == Terminated {
			return nil
		}
		if err := drawEdit(t, m); err != nil {
			return err
		}
	}

	return simulate(ctx, t, m, opts)
}

func simulate(ctx context.Context, t Terminal, m *Machine, opts RunOptions) error {
	if err := t.Clear(); err != nil {
		return fmt.Errorf("%w: %w", ErrTerminalWrite, err)
	}
	for !m.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if opts.Interruptible && t.PollInterrupt() {
			return nil
		}
		if err := drawFrame(t, m); err != nil {
			return err
		}
		m.Advance()
		opts.Sleep(opts.FrameDelay)
		if err := t.Flush(); err != nil {
			return fmt.Errorf("%w: %w", ErrTerminalWrite, err)
		}
	}
	if err := drawFrame(t, m); err != nil {
		return err
	}
	if err := t.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrTerminalWrite, err)
	}
	return nil
}

func drawEdit(t Terminal, m *Machine) error {
	if err := t.Clear(); err != nil {
		return fmt.Errorf("%w: %w", ErrTerminalWrite, err)
	}
	if err := t.Render(m.Grid(), m.Cursor(), true); err != nil {
		return fmt.Errorf("%w: %w", ErrTerminalWrite, err)
	}
	if err := t.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrTerminalWrite, err)
	}
	return nil
}

func writeStatus(t Terminal, m *Machine, text string) error {
	if err := t.Goto(1, StatusRow(m.Size())); err != nil {
		return fmt.Errorf("%w: %w", ErrTerminalWrite, err)
	}
	if err := t.Status(text); err != nil {
		return fmt.Errorf("%w: %w", ErrTerminalWrite, err)
	}
	return nil
}

func drawFrame(t Terminal, m *Machine) error {
	if err := writeStatus(t, m, fmt.Sprintf("Generation: %d", m.Generation())); err != nil {
		return err
	}
	if err := t.Render(m.Grid(), m.Cursor(), false); err != nil {
		return fmt.Errorf("%w: %w", ErrTerminalWrite, err)
	}
	return nil
}

func restore(t Terminal) error {
	if err := t.ShowCursor(); err != nil {
		return fmt.Errorf("%w: %w", ErrTerminalWrite, err)
	}
	if err := t.Clear(); err != nil {
		return fmt.Errorf("%w: %w", ErrTerminalWrite, err)
	}
	if err := t.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrTerminalWrite, err)
	}
	return nil
}

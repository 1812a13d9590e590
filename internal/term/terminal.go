package term

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/charmbracelet/lipgloss"
	xterm "golang.org/x/term"

	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/session"
)

// ErrNotTerminal is returned by Open when stdin is not a terminal.
var ErrNotTerminal = errors.New("term: stdin is not a terminal")

const (
	glyphAlive = "#"
	glyphDead  = " "
)

type keyEvent struct {
	key session.Key
	err error
}

// Terminal implements session.Terminal over a byte stream using ANSI escape
// sequences. Keys are decoded on a reader goroutine so the simulation can
// poll for pending input without blocking. The reader never drops a key; it
// waits until the key is consumed or the terminal is closed.
type Terminal struct {
	out    *bufio.Writer
	keys   chan keyEvent
	done   chan struct{}
	cursor lipgloss.Style
	cell   lipgloss.Style

	fd       int
	oldState *xterm.State
	once     sync.Once
}

// New wraps in and out without touching terminal modes.
func New(in io.Reader, out io.Writer) *Terminal {
	r := lipgloss.NewRenderer(out)
	t := &Terminal{
		out:    bufio.NewWriter(out),
		keys:   make(chan keyEvent, 16),
		done:   make(chan struct{}),
		cursor: r.NewStyle().Reverse(true),
		cell:   r.NewStyle().Foreground(lipgloss.Color("7")),
		fd:     -1,
	}
	go t.readLoop(in)
	return t
}

// Open puts stdin into raw mode and returns a Terminal on stdin/stdout.
// Callers must Close it to restore the previous mode.
func Open() (*Terminal, error) {
	fd := int(os.Stdin.Fd())
	if !xterm.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}
	old, err := xterm.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("term: enter raw mode: %w", err)
	}
	t := New(os.Stdin, os.Stdout)
	t.fd = fd
	t.oldState = old
	return t, nil
}

// Close shows the cursor, resets attributes and restores the terminal mode.
// It is safe to call more than once.
func (t *Terminal) Close() error {
	var err error
	t.once.Do(func() {
		close(t.done)
		t.out.Write(seqReset)
		t.out.Write(seqShowCursor)
		err = t.out.Flush()
		if t.oldState != nil {
			if rerr := xterm.Restore(t.fd, t.oldState); rerr != nil && err == nil {
				err = rerr
			}
		}
	})
	return err
}

func (t *Terminal) readLoop(in io.Reader) {
	buf := make([]byte, 64)
	var pending []byte
	for {
		n, err := in.Read(buf)
		data := append(pending, buf[:n]...)
		pending = nil
		for len(data) > 0 {
			// An escape sequence split across reads is completed by the next
			// one. A lone ESC is only held when the read filled the buffer.
			if err == nil && truncatedEscape(data) && (len(data) > 1 || n == len(buf)) {
				pending = data
				break
			}
			key, used := decodeKey(data)
			if !t.send(keyEvent{key: key}) {
				return
			}
			data = data[used:]
		}
		if err != nil {
			if !t.send(keyEvent{err: err}) {
				return
			}
			if errors.Is(err, io.EOF) {
				close(t.keys)
				return
			}
		}
	}
}

// send blocks until the event is consumed or the terminal is closed, and
// reports whether it was delivered.
func (t *Terminal) send(ev keyEvent) bool {
	select {
	case t.keys <- ev:
		return true
	case <-t.done:
		return false
	}
}

// ReadKey blocks until a key or a read error is available, or ctx is done.
func (t *Terminal) ReadKey(ctx context.Context) (session.Key, error) {
	select {
	case ev, ok := <-t.keys:
		if !ok {
			return session.Key{}, io.EOF
		}
		return ev.key, ev.err
	case <-ctx.Done():
		return session.Key{}, ctx.Err()
	}
}

// PollInterrupt reports whether a key is pending, consuming it.
func (t *Terminal) PollInterrupt() bool {
	select {
	case ev, ok := <-t.keys:
		return ok && ev.err == nil
	default:
		return false
	}
}

// Render draws every cell at (col+1, row+1).
func (t *Terminal) Render(g *life.Grid, c session.Cursor, showCursor bool) error {
	n := g.Size()
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			glyph := glyphDead
			if g.Alive(y, x) {
				glyph = glyphAlive
			}
			if err := t.Goto(x+1, y+1); err != nil {
				return err
			}
			style := t.cell
			if showCursor && c.X == x && c.Y == y {
				style = t.cursor
			}
			if _, err := t.out.WriteString(style.Render(glyph)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *Terminal) Goto(col, row int) error {
	t.out.WriteString("\x1b[")
	t.out.WriteString(strconv.Itoa(row))
	t.out.WriteByte(';')
	t.out.WriteString(strconv.Itoa(col))
	return t.out.WriteByte('H')
}

func (t *Terminal) Status(text string) error {
	t.out.WriteString(text)
	_, err := t.out.Write(seqEraseLine)
	return err
}

func (t *Terminal) Clear() error {
	t.out.Write(seqClear)
	_, err := t.out.Write(seqHome)
	return err
}

func (t *Terminal) HideCursor() error {
	_, err := t.out.Write(seqHideCursor)
	return err
}

func (t *Terminal) ShowCursor() error {
	_, err := t.out.Write(seqShowCursor)
	return err
}

func (t *Terminal) Flush() error { return t.out.Flush() }

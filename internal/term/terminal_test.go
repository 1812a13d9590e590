package term

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/session"
)

func TestReadKeyDecodesStream(t *testing.T) {
	term := New(strings.NewReader("\x1b[A \r"), io.Discard)

	want := []session.KeyCode{session.KeyUp, session.KeySpace, session.KeyEnter}
	for i, code := range want {
		key, err := term.ReadKey(context.Background())
		if err != nil {
			t.Fatalf("key %d: unexpected error: %v", i, err)
		}
		if key.Code != code {
			t.Errorf("key %d: expected %v, got %v", i, code, key.Code)
		}
	}

	if _, err := term.ReadKey(context.Background()); err != io.EOF {
		t.Errorf("expected EOF, got %v", err)
	}
}

func TestReadKeyDeliversEveryQueuedKey(t *testing.T) {
	const count = 40
	term := New(strings.NewReader(strings.Repeat("\x1b[C", count)), io.Discard)

	// Let the reader run ahead of the consumer.
	time.Sleep(50 * time.Millisecond)

	for i := 0; i < count; i++ {
		key, err := term.ReadKey(context.Background())
		if err != nil {
			t.Fatalf("key %d: unexpected error: %v", i, err)
		}
		if key.Code != session.KeyRight {
			t.Fatalf("key %d: expected right, got %v", i, key.Code)
		}
	}
	if _, err := term.ReadKey(context.Background()); err != io.EOF {
		t.Errorf("expected EOF after %d keys, got %v", count, err)
	}
}

func TestReadKeyJoinsSequenceSplitAcrossReads(t *testing.T) {
	in := io.MultiReader(strings.NewReader("\x1b[A\x1b["), strings.NewReader("B "))
	term := New(in, io.Discard)

	want := []session.KeyCode{session.KeyUp, session.KeyDown, session.KeySpace}
	for i, code := range want {
		key, err := term.ReadKey(context.Background())
		if err != nil {
			t.Fatalf("key %d: unexpected error: %v", i, err)
		}
		if key.Code != code {
			t.Errorf("key %d: expected %v, got %v", i, code, key.Code)
		}
	}
}

func TestReadKeyReturnsOnCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	term := New(pr, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	errc := make(chan error, 1)
	go func() {
		_, err := term.ReadKey(ctx)
		errc <- err
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("ReadKey still blocked after cancel")
	}
}

func TestPollInterrupt(t *testing.T) {
	pr, pw := io.Pipe()
	term := New(pr, io.Discard)
	defer pw.Close()

	if term.PollInterrupt() {
		t.Error("expected no pending input")
	}

	go pw.Write([]byte("x"))

	deadline := time.After(time.Second)
	for !term.PollInterrupt() {
		select {
		case <-deadline:
			t.Fatal("interrupt never observed")
		default:
			time.Sleep(time.Millisecond)
		}
	}
}

func TestRenderAddressesEveryCell(t *testing.T) {
	var out bytes.Buffer
	term := New(strings.NewReader(""), &out)

	g := life.MustParse(
		".#",
		"..",
	)
	if err := term.Render(g, session.Cursor{X: 0, Y: 1}, true); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if err := term.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{"\x1b[1;1H ", "\x1b[1;2H#", "\x1b[2;1H ", "\x1b[2;2H "} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q, got %q", want, got)
		}
	}
}

func TestCursorVisibilityAndStatus(t *testing.T) {
	var out bytes.Buffer
	term := New(strings.NewReader(""), &out)

	term.HideCursor()
	term.Goto(1, 45)
	term.Status("Generation: 3")
	term.Clear()
	term.ShowCursor()
	term.Flush()

	want := "\x1b[?25l\x1b[45;1HGeneration: 3\x1b[K\x1b[2J\x1b[H\x1b[?25h"
	if out.String() != want {
		t.Errorf("expected %q, got %q", want, out.String())
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	var out bytes.Buffer
	term := New(strings.NewReader(""), &out)

	if err := term.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if err := term.Close(); err != nil {
		t.Fatalf("second close failed: %v", err)
	}
	if got := strings.Count(out.String(), "\x1b[?25h"); got != 1 {
		t.Errorf("expected cursor shown once, got %d", got)
	}
}

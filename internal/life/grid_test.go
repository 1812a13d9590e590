package life

import (
	"errors"
	"testing"
)

func TestNewGridChecked(t *testing.T) {
	if _, err := NewGridChecked(0); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("expected ErrInvalidSize, got %v", err)
	}
	g, err := NewGridChecked(4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Size() != 4 || g.Population() != 0 {
		t.Errorf("expected empty 4x4 grid, got size %d population %d", g.Size(), g.Population())
	}
}

func TestFromRowsRejectsRagged(t *testing.T) {
	_, err := FromRows([][]bool{{true, false}, {true}})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
	if _, err := FromRows(nil); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch for empty matrix, got %v", err)
	}
}

func TestSetIsIdempotent(t *testing.T) {
	g := NewGrid(3)
	g.Set(1, 2)
	g.Set(1, 2)
	if !g.Alive(1, 2) {
		t.Error("expected cell alive")
	}
	if g.Population() != 1 {
		t.Errorf("expected population 1, got %d", g.Population())
	}
}

func TestSetOutOfBoundsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewGrid(3).Set(-1, 0)
}

func TestCloneIsDeep(t *testing.T) {
	g := NewGrid(3)
	c := g.Clone()
	c.Set(0, 0)
	if g.Alive(0, 0) {
		t.Error("clone shares storage with original")
	}
}

func TestStringRoundTrip(t *testing.T) {
	g := MustParse(
		"#..",
		".#.",
		"..#",
	)
	want := "#..\n.#.\n..#"
	if g.String() != want {
		t.Errorf("expected %q, got %q", want, g.String())
	}
}

func TestPlaceCentersPattern(t *testing.T) {
	g := NewGrid(7)
	if err := Place(g, "blinker"); err != nil {
		t.Fatalf("place failed: %v", err)
	}
	for x := 2; x <= 4; x++ {
		if !g.Alive(3, x) {
			t.Errorf("expected (3,%d) alive", x)
		}
	}
	if g.Population() != 3 {
		t.Errorf("expected population 3, got %d", g.Population())
	}
}

func TestPlaceErrors(t *testing.T) {
	if err := Place(NewGrid(5), "nonexistent"); !errors.Is(err, ErrUnknownPattern) {
		t.Errorf("expected ErrUnknownPattern, got %v", err)
	}
	if err := Place(NewGrid(5), "pulsar"); !errors.Is(err, ErrPatternTooLarge) {
		t.Errorf("expected ErrPatternTooLarge, got %v", err)
	}
}

func TestPatternsFitDefaultGrid(t *testing.T) {
	for _, name := range ListPatterns() {
		g := NewGrid(40)
		if err := Place(g, name); err != nil {
			t.Errorf("%s: %v", name, err)
		}
		if g.Population() == 0 {
			t.Errorf("%s: expected live cells", name)
		}
	}
}

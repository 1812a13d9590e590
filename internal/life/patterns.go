package life

import (
	"fmt"
	"sort"
)

// Patterns holds the built-in seed shapes, '#' marking live cells.
var Patterns = map[string][]string{
	"block": {
		"##",
		"##",
	},
	"blinker": {
		"###",
	},
	"toad": {
		".###",
		"###.",
	},
	"beacon": {
		"##..",
		"##..",
		"..##",
		"..##",
	},
	"glider": {
		".#.",
		"..#",
		"###",
	},
	"lwss": {
		".#..#",
		"#....",
		"#...#",
		"####.",
	},
	"r-pentomino": {
		".##",
		"##.",
		".#.",
	},
	"pulsar": {
		"..###...###..",
		".............",
		"#....#.#....#",
		"#....#.#....#",
		"#....#.#....#",
		"..###...###..",
		".............",
		"..###...###..",
		"#....#.#....#",
		"#....#.#....#",
		"#....#.#....#",
		".............",
		"..###...###..",
	},
}

// ListPatterns returns the registered pattern names in sorted order.
func ListPatterns() []string {
	names := make([]string, 0, len(Patterns))
	for name := range Patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PatternSize returns the height and width of a pattern's bounding box.
func PatternSize(rows []string) (h, w int) {
	for _, row := range rows {
		if len(row) > w {
			w = len(row)
		}
	}
	return len(rows), w
}

// Place sets the live cells of the named pattern centered on g.
func Place(g *Grid, name string) error {
	rows, ok := Patterns[name]
	if !ok {
		return fmt.Errorf("%w: %s (available: %v)", ErrUnknownPattern, name, ListPatterns())
	}
	h, w := PatternSize(rows)
	if h > g.n || w > g.n {
		return fmt.Errorf("%w: %s is %dx%d, grid is %dx%d", ErrPatternTooLarge, name, h, w, g.n, g.n)
	}
	top, left := (g.n-h)/2, (g.n-w)/2
	for y, row := range rows {
		for x := 0; x < len(row); x++ {
			if row[x] == '#' {
				g.Set(top+y, left+x)
			}
		}
	}
	return nil
}

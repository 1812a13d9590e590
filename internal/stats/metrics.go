package stats

import "github.com/san-kum/lifesim/internal/life"

// Peak tracks the largest population seen.
type Peak struct {
	peak int
}

func NewPeak() *Peak { return &Peak{} }

func (p *Peak) Name() string { return "peak_population" }

func (p *Peak) OnGeneration(gen int, g *life.Grid) {
	if n := g.Population(); n > p.peak {
		p.peak = n
	}
}

func (p *Peak) Value() float64 { return float64(p.peak) }
func (p *Peak) Reset()         { p.peak = 0 }

// transitions counts cells that changed between consecutive generations.
// Grids handed to observers are never mutated afterwards, so the previous
// one can be held by reference.
type transitions struct {
	name  string
	birth bool
	prev  *life.Grid
	count int
}

func NewBirths() Metric { return &transitions{name: "births", birth: true} }
func NewDeaths() Metric { return &transitions{name: "deaths"} }

func (t *transitions) Name() string { return t.name }

func (t *transitions) OnGeneration(gen int, g *life.Grid) {
	if t.prev != nil && t.prev.Size() == g.Size() {
		n := g.Size()
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				was, is := t.prev.Alive(y, x), g.Alive(y, x)
				if t.birth && !was && is {
					t.count++
				}
				if !t.birth && was && !is {
					t.count++
				}
			}
		}
	}
	t.prev = g
}

func (t *transitions) Value() float64 { return float64(t.count) }

func (t *transitions) Reset() {
	t.prev = nil
	t.count = 0
}

// Period detects when the pattern settles into a cycle by comparing each
// generation with the last window generations. Value is the cycle length
// (1 for a still life or an extinct grid), or 0 while no cycle was found.
type Period struct {
	window int
	recent []*life.Grid
	period int
	since  int
}

func NewPeriod(window int) *Period {
	if window < 1 {
		window = 1
	}
	return &Period{window: window}
}

func (p *Period) Name() string { return "period" }

func (p *Period) OnGeneration(gen int, g *life.Grid) {
	if p.period == 0 {
		for i := len(p.recent) - 1; i >= 0; i-- {
			if p.recent[i].Equal(g) {
				p.period = len(p.recent) - i
				p.since = gen - p.period
				break
			}
		}
	}
	p.recent = append(p.recent, g)
	if len(p.recent) > p.window {
		p.recent = p.recent[1:]
	}
}

func (p *Period) Value() float64 { return float64(p.period) }

// Since returns the first generation of the detected cycle.
func (p *Period) Since() int { return p.since }

func (p *Period) Reset() {
	p.recent = nil
	p.period = 0
	p.since = 0
}

package stats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/lifesim/internal/life"
)

// Metric summarizes a run one generation at a time.
type Metric interface {
	Name() string
	OnGeneration(gen int, g *life.Grid)
	Value() float64
	Reset()
}

// Recorder fans generations out to its metrics and keeps the population
// history for plotting.
type Recorder struct {
	metrics []Metric
	history []float64
}

func NewRecorder(metrics ...Metric) *Recorder {
	return &Recorder{metrics: metrics}
}

// Default returns a recorder with every built-in metric.
func Default() *Recorder {
	return NewRecorder(NewPeak(), NewBirths(), NewDeaths(), NewPeriod(16))
}

func (r *Recorder) OnGeneration(gen int, g *life.Grid) {
	r.history = append(r.history, float64(g.Population()))
	for _, m := range r.metrics {
		m.OnGeneration(gen, g)
	}
}

// History returns the population of every observed generation.
func (r *Recorder) History() []float64 { return r.history }

// Values returns the current value of each metric by name.
func (r *Recorder) Values() map[string]float64 {
	out := make(map[string]float64, len(r.metrics))
	for _, m := range r.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (r *Recorder) Reset() {
	r.history = r.history[:0]
	for _, m := range r.metrics {
		m.Reset()
	}
}

// Summary renders the metrics as "name: value" lines sorted by name.
func (r *Recorder) Summary() string {
	values := r.Values()
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	fmt.Fprintf(&b, "generations: %d\n", max(len(r.history)-1, 0))
	for _, name := range names {
		fmt.Fprintf(&b, "%s: %g\n", name, values[name])
	}
	return b.String()
}

// Plot draws the population history as an ASCII chart.
func (r *Recorder) Plot(width, height int) string {
	if len(r.history) == 0 {
		return "no generations recorded"
	}
	return asciigraph.Plot(r.history,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("population per generation"),
	)
}

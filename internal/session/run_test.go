package session_test

import (
	"context"
	"errors"
	"io"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/session"
)

type scriptedRead struct {
	key session.Key
	err error
}

type fakeTerminal struct {
	reads       []scriptedRead
	blockOnEnd  bool
	interrupts  int
	hidden      bool
	editFrames  int
	simFrames   int
	statuses    []string
	lastGoto    [2]int
	clears      int
	flushes     int
	failRender  error
	lastGrid    *life.Grid
	lastCursor  session.Cursor
	lastShowCur bool
}

func (f *fakeTerminal) ReadKey(ctx context.Context) (session.Key, error) {
	if len(f.reads) == 0 {
		if f.blockOnEnd {
			<-ctx.Done()
			return session.Key{}, ctx.Err()
		}
		return session.Key{Code: session.KeyOther, Rune: 'q'}, nil
	}
	r := f.reads[0]
	f.reads = f.reads[1:]
	return r.key, r.err
}

func (f *fakeTerminal) Render(g *life.Grid, c session.Cursor, showCursor bool) error {
	if f.failRender != nil {
		return f.failRender
	}
	if showCursor {
		f.editFrames++
	} else {
		f.simFrames++
	}
	f.lastGrid = g
	f.lastCursor = c
	f.lastShowCur = showCursor
	return nil
}

func (f *fakeTerminal) Clear() error      { f.clears++; return nil }
func (f *fakeTerminal) Flush() error      { f.flushes++; return nil }
func (f *fakeTerminal) HideCursor() error { f.hidden = true; return nil }
func (f *fakeTerminal) ShowCursor() error { f.hidden = false; return nil }

func (f *fakeTerminal) Goto(col, row int) error {
	f.lastGoto = [2]int{col, row}
	return nil
}

func (f *fakeTerminal) Status(text string) error {
	f.statuses = append(f.statuses, text)
	return nil
}

func (f *fakeTerminal) PollInterrupt() bool {
	if f.interrupts > 0 {
		f.interrupts--
		return f.interrupts == 0
	}
	return false
}

func keys(codes ...session.KeyCode) []scriptedRead {
	out := make([]scriptedRead, len(codes))
	for i, c := range codes {
		out[i] = scriptedRead{key: session.Key{Code: c}}
	}
	return out
}

var _ = Describe("Run", func() {
	var (
		term   *fakeTerminal
		m      *session.Machine
		sleeps []time.Duration
		opts   session.RunOptions
	)

	BeforeEach(func() {
		term = &fakeTerminal{}
		sleeps = nil
		opts = session.RunOptions{
			FrameDelay: 100 * time.Millisecond,
			Sleep:      func(d time.Duration) { sleeps = append(sleeps, d) },
		}
		var err error
		m, err = session.New(session.Options{Size: 6, Generations: 12})
		Expect(err).NotTo(HaveOccurred())
	})

	Context("while editing", func() {
		It("paints cells under the cursor and redraws after every key", func() {
			term.reads = keys(session.KeyRight, session.KeySpace, session.KeyDown, session.KeySpace)
			term.reads = append(term.reads, scriptedRead{key: session.Key{Code: session.KeyOther, Rune: 'q'}})

			Expect(session.Run(context.Background(), term, m, opts)).To(Succeed())

			Expect(m.Grid().Alive(1, 2)).To(BeTrue())
			Expect(m.Grid().Alive(2, 2)).To(BeTrue())
			Expect(m.Grid().Population()).To(Equal(2))
			Expect(term.editFrames).To(Equal(5))
			Expect(term.lastShowCur).To(BeTrue())
		})

		It("terminates on an unmapped key without simulating", func() {
			term.reads = []scriptedRead{{key: session.Key{Code: session.KeyOther, Rune: 'x'}}}

			Expect(session.Run(context.Background(), term, m, opts)).To(Succeed())

			Expect(m.Phase()).To(Equal(session.Terminated))
			Expect(m.Generation()).To(BeZero())
			Expect(term.simFrames).To(BeZero())
			Expect(sleeps).To(BeEmpty())
		})

		It("reports read errors and keeps editing", func() {
			term.reads = []scriptedRead{
				{err: errors.New("device busy")},
				{key: session.Key{Code: session.KeySpace}},
				{key: session.Key{Code: session.KeyOther, Rune: 'q'}},
			}

			Expect(session.Run(context.Background(), term, m, opts)).To(Succeed())

			Expect(term.statuses).To(ContainElement("Error reading key: device busy"))
			Expect(m.Grid().Alive(1, 1)).To(BeTrue())
		})

		It("ends the session at end of input", func() {
			term.reads = []scriptedRead{
				{key: session.Key{Code: session.KeySpace}},
				{err: io.EOF},
			}

			Expect(session.Run(context.Background(), term, m, opts)).To(Succeed())

			Expect(m.Phase()).To(Equal(session.Terminated))
			Expect(m.LastError()).To(MatchError(io.EOF))
			Expect(term.simFrames).To(BeZero())
			Expect(sleeps).To(BeEmpty())
			Expect(term.hidden).To(BeFalse())
		})
	})

	Context("when Enter commits the pattern", func() {
		BeforeEach(func() {
			term.reads = keys(session.KeySpace, session.KeyEnter)
		})

		It("steps exactly the configured generations and renders one extra frame", func() {
			Expect(session.Run(context.Background(), term, m, opts)).To(Succeed())

			Expect(m.Generation()).To(Equal(12))
			Expect(term.simFrames).To(Equal(13))
			Expect(sleeps).To(HaveLen(12))
			Expect(sleeps).To(HaveEach(100 * time.Millisecond))
			Expect(term.lastShowCur).To(BeFalse())
		})

		It("writes the generation counter below the grid", func() {
			Expect(session.Run(context.Background(), term, m, opts)).To(Succeed())

			Expect(term.statuses).To(ContainElement("Generation: 0"))
			Expect(term.statuses).To(ContainElement("Generation: 12"))
			Expect(term.lastGoto).To(Equal([2]int{1, session.StatusRow(6)}))
		})

		It("stops early when interruptible and an interrupt arrives", func() {
			opts.Interruptible = true
			term.interrupts = 4

			Expect(session.Run(context.Background(), term, m, opts)).To(Succeed())

			Expect(m.Generation()).To(Equal(3))
			Expect(m.Phase()).To(Equal(session.Terminated))
		})

		It("ignores interrupts unless interruptible", func() {
			term.interrupts = 1

			Expect(session.Run(context.Background(), term, m, opts)).To(Succeed())

			Expect(m.Generation()).To(Equal(12))
		})
	})

	Context("terminal restoration", func() {
		It("shows the cursor again after a normal run", func() {
			term.reads = keys(session.KeyEnter)

			Expect(session.Run(context.Background(), term, m, opts)).To(Succeed())

			Expect(term.hidden).To(BeFalse())
		})

		It("shows the cursor again after an output failure", func() {
			term.reads = keys(session.KeySpace)
			term.failRender = errors.New("broken pipe")

			err := session.Run(context.Background(), term, m, opts)

			Expect(err).To(MatchError(session.ErrTerminalWrite))
			Expect(term.hidden).To(BeFalse())
			Expect(m.Phase()).To(Equal(session.Terminated))
		})

		It("ends a session blocked waiting for a key when the context is canceled", func() {
			term.reads = keys(session.KeySpace)
			term.blockOnEnd = true
			ctx, cancel := context.WithCancel(context.Background())
			time.AfterFunc(20*time.Millisecond, cancel)

			done := make(chan error, 1)
			go func() { done <- session.Run(ctx, term, m, opts) }()

			var err error
			Eventually(done, time.Second).Should(Receive(&err))
			Expect(err).To(MatchError(context.Canceled))
			Expect(term.hidden).To(BeFalse())
			Expect(m.Phase()).To(Equal(session.Terminated))
			Expect(m.Grid().Alive(1, 1)).To(BeTrue())
		})
	})
})

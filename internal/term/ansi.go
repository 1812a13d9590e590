package term

// Escape sequence fragments.
var (
	seqClear      = []byte("\x1b[2J")
	seqHome       = []byte("\x1b[H")
	seqEraseLine  = []byte("\x1b[K")
	seqHideCursor = []byte("\x1b[?25l")
	seqShowCursor = []byte("\x1b[?25h")
	seqReset      = []byte("\x1b[0m")
)

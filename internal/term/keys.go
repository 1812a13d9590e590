package term

import (
	"unicode/utf8"

	"github.com/san-kum/lifesim/internal/session"
)

// decodeKey parses the first key in data and returns it with the number of
// bytes consumed. A truncated escape sequence consumes the rest of data and
// decodes as an unmapped key.
func decodeKey(data []byte) (session.Key, int) {
	if len(data) == 0 {
		return session.Key{}, 0
	}
	b := data[0]
	switch b {
	case ' ':
		return session.Key{Code: session.KeySpace, Rune: ' '}, 1
	case '\r', '\n':
		return session.Key{Code: session.KeyEnter, Rune: '\n'}, 1
	case 0x1b:
		return decodeEscape(data)
	}
	if b < utf8.RuneSelf {
		return session.Key{Code: session.KeyOther, Rune: rune(b)}, 1
	}
	r, size := utf8.DecodeRune(data)
	return session.Key{Code: session.KeyOther, Rune: r}, size
}

// decodeEscape handles CSI (ESC [) and SS3 (ESC O) cursor keys.
func decodeEscape(data []byte) (session.Key, int) {
	other := session.Key{Code: session.KeyOther, Rune: 0x1b}
	if len(data) < 2 {
		return other, 1
	}
	if data[1] != '[' && data[1] != 'O' {
		return other, 1
	}
	if len(data) < 3 {
		return other, len(data)
	}

	// Skip parameter bytes, e.g. ESC [ 1 ; 5 A.
	end := 2
	for end < len(data) && (data[end] < 0x40 || data[end] > 0x7e) {
		end++
	}
	if end >= len(data) {
		return other, len(data)
	}

	key := other
	switch data[end] {
	case 'A':
		key = session.Key{Code: session.KeyUp}
	case 'B':
		key = session.Key{Code: session.KeyDown}
	case 'C':
		key = session.Key{Code: session.KeyRight}
	case 'D':
		key = session.Key{Code: session.KeyLeft}
	}
	return key, end + 1
}

// truncatedEscape reports whether data is the unfinished start of an escape
// sequence that decodeEscape would otherwise turn into an unmapped key.
func truncatedEscape(data []byte) bool {
	if len(data) == 0 || data[0] != 0x1b {
		return false
	}
	if len(data) == 1 {
		return true
	}
	if data[1] != '[' && data[1] != 'O' {
		return false
	}
	for _, b := range data[2:] {
		if b >= 0x40 && b <= 0x7e {
			return false
		}
	}
	return true
}

// Package logging builds the leveled slog logger used by lifesim. While the
// terminal is in raw mode the log cannot share the screen, so it goes to a
// file or nowhere.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// LevelTrace is below Debug and logs every key event.
const LevelTrace = slog.LevelDebug - 4

// ErrUnknownLevel is returned by LookupLevel for an unrecognised level name.
var ErrUnknownLevel = errors.New("logging: unknown level")

// LookupLevel maps "trace", "debug", "info", "warn" and "error" to slog
// levels, case-insensitively. The empty string is info.
func LookupLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// ParseLevel is LookupLevel with unknown names treated as info.
func ParseLevel(s string) slog.Level {
	lvl, _ := LookupLevel(s)
	return lvl
}

// NewLogger creates a text logger writing to w at the given level.
func NewLogger(level string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if l, ok := a.Value.Any().(slog.Level); ok && l == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Open returns a logger appending to path, or a discarding logger when path
// is empty. The returned closer must be called when the session ends.
func Open(level, path string) (*slog.Logger, io.Closer, error) {
	if path == "" {
		return NewLogger(level, io.Discard), io.NopCloser(nil), nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}
	return NewLogger(level, f), f, nil
}

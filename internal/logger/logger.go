package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Init sets up the global zerolog level and returns a console logger writing to w.
// Level is parsed from the given string (e.g. "debug", "info", "warn", "error");
// unknown levels fall back to info.
func Init(level string, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339

	if w == nil {
		w = os.Stderr
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: !isTerminal(w)}).
		With().
		Timestamp().
		Logger()
}

// isTerminal reports whether w is a character device such as a terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

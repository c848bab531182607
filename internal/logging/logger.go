// Package logging builds the diagnostics logger. Reports go to stdout;
// everything logged here goes to stderr.
package logging

import (
	"io"
	"os"

	"github.com/phuslu/log"
)

// New returns a console logger at the given level writing to w
func New(level string, w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	lvl := log.ParseLevel(level)
	if level == "" {
		lvl = log.InfoLevel
	}
	return &log.Logger{
		Level:      lvl,
		TimeFormat: "15:04:05",
		Writer: &log.ConsoleWriter{
			Writer:      w,
			ColorOutput: log.IsTerminal(os.Stderr.Fd()) && w == os.Stderr,
		},
	}
}

// Discard returns a logger that drops everything
func Discard() *log.Logger {
	return &log.Logger{
		Level:  log.PanicLevel,
		Writer: log.IOWriter{Writer: io.Discard},
	}
}

// Package corelog provides the module's shared logging conventions: a thin
// wrapper over charmbracelet/log so every component can accept an optional
// *log.Logger without nil-checking at each call site.
package corelog

import (
	"io"

	"github.com/charmbracelet/log"
)

// Default returns l if non-nil, otherwise a logger that discards everything.
// Components call this once in their constructor rather than guarding every
// log call with a nil check.
func Default(l *log.Logger) *log.Logger {
	if l != nil {
		return l
	}
	return log.New(io.Discard)
}

// New builds a logger in the style used across this module: timestamps on,
// caller off, level from the environment's default (Info).
func New(w io.Writer, prefix string) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	return l
}

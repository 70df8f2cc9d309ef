// Package bvhlog is a thin structured-logging facade over
// github.com/op/go-logging, used by pkg/bvh to emit Debug-level build/
// optimize diagnostics and Warning-level precondition-violation reports.
//
// A Tree defaults to NoOp(), so embedding this library never writes to a
// host's stdout unless the caller opts in with WithLogger.
package bvhlog

import (
	"io"

	"github.com/op/go-logging"
)

// Logger is the subset of github.com/op/go-logging's interface this
// package's callers need.
type Logger interface {
	Debugf(format string, v ...interface{})
	Warningf(format string, v ...interface{})
}

var format = logging.MustStringFormatter(
	`%{time:15:04:05.000} [%{module}] %{level} %{message}`,
)

// New returns a named logger backed by go-logging. SetSink/SetLevel control
// the shared backend all loggers created this way write through.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// SetSink points the shared go-logging backend at sink, formatted the way
// achilleasa-polaris's renderer formats its own build/optimize log lines.
func SetSink(sink io.Writer, level string) {
	backend := logging.NewLogBackend(sink, "", 0)
	formatted := logging.NewBackendFormatter(backend, format)
	leveled := logging.AddModuleLevel(formatted)

	lvl, err := logging.LogLevel(level)
	if err != nil {
		lvl = logging.INFO
	}
	leveled.SetLevel(lvl, "")
	logging.SetBackend(leveled)
}

type noop struct{}

func (noop) Debugf(string, ...interface{})   {}
func (noop) Warningf(string, ...interface{}) {}

// NoOp returns a Logger that discards everything. It is the default Logger
// on a Tree built without WithLogger.
func NoOp() Logger {
	return noop{}
}

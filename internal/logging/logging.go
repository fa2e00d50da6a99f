// Package logging provides flightdeck's logging infrastructure built on
// charmbracelet/log.
//
// It exposes a centralized logger factory with component prefixes, level
// configuration, and stderr-only output: stdout stays clean for structured
// output and the TUI.
//
// Usage:
//
//	// During CLI initialization (PersistentPreRun):
//	logging.Setup(verbose, quiet, jsonFormat)
//
//	// In each package:
//	var logger = logging.New("enroll")
//	logger.Info("assignment submitted", "session", sessionID)
//
// Setup must run before New: charmbracelet/log child loggers copy state at
// creation time, so later changes to the default logger do not propagate to
// existing children.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Level aliases for charmbracelet/log levels, re-exported so consumers do
// not need to import charmbracelet/log directly.
const (
	LevelDebug = log.DebugLevel
	LevelInfo  = log.InfoLevel
	LevelWarn  = log.WarnLevel
	LevelError = log.ErrorLevel
	LevelFatal = log.FatalLevel
)

// Setup configures the global logging defaults. Call once during CLI
// initialization.
//
//   - verbose: sets level to Debug
//   - quiet: sets level to Error
//   - jsonFormat: switches to the NDJSON formatter for log aggregation
//
// When both verbose and quiet are set, quiet wins: in scripted environments
// --quiet must suppress noise regardless of other flags.
func Setup(verbose, quiet, jsonFormat bool) {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	if quiet {
		level = log.ErrorLevel
	}

	log.SetLevel(level)
	log.SetOutput(os.Stderr)

	if jsonFormat {
		log.SetFormatter(log.JSONFormatter)
	} else {
		log.SetFormatter(log.TextFormatter)
	}
}

// New creates a logger with the given component prefix. The returned logger
// inherits global level and output settings from the default logger at
// creation time. An empty component produces a logger without a prefix.
func New(component string) *log.Logger {
	return log.WithPrefix(component)
}

// SetOutput overrides the output writer for the default logger. Primarily
// for tests capturing output in a bytes.Buffer; restore the original writer
// with t.Cleanup.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

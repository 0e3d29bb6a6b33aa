package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// Logger provides leveled console logging for a report run.
// Debug lines are dropped unless the logger was created with debug enabled.
type Logger struct {
	info    *log.Logger
	warn    *log.Logger
	err     *log.Logger
	debug   *log.Logger
	verbose bool
	now     func() time.Time
}

// NewLogger creates a Logger writing to stdout/stderr.
func NewLogger(verbose bool) *Logger {
	return NewLoggerTo(os.Stdout, os.Stderr, verbose)
}

// NewLoggerTo creates a Logger writing info/warn/debug to out and errors to errOut.
func NewLoggerTo(out, errOut io.Writer, verbose bool) *Logger {
	return &Logger{
		info:    log.New(out, "", 0),
		warn:    log.New(out, "", 0),
		err:     log.New(errOut, "", 0),
		debug:   log.New(out, "", 0),
		verbose: verbose,
		now:     time.Now,
	}
}

// Discard returns a Logger that writes nowhere. Used by tests.
func Discard() *Logger {
	return NewLoggerTo(io.Discard, io.Discard, false)
}

func (l *Logger) timestamp() string {
	return l.now().Format("2006-01-02 15:04:05")
}

func (l *Logger) Info(format string, args ...any) {
	l.info.Print(l.line("\033[32mINFO\033[0m ", format, args...))
}

func (l *Logger) Warn(format string, args ...any) {
	l.warn.Print(l.line("\033[33mWARN\033[0m ", format, args...))
}

func (l *Logger) Error(format string, args ...any) {
	l.err.Print(l.line("\033[31mERROR\033[0m", format, args...))
}

func (l *Logger) Debug(format string, args ...any) {
	if !l.verbose {
		return
	}
	l.debug.Print(l.line("\033[36mDEBUG\033[0m", format, args...))
}

func (l *Logger) line(level, format string, args ...any) string {
	return fmt.Sprintf("[%s] %s %s\n", l.timestamp(), level, fmt.Sprintf(format, args...))
}

package log

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Level is the severity of a log line.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the colored tag printed in front of each line.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "\033[37m[DBG]\033[0m"
	case LevelInfo:
		return "\033[36m[INF]\033[0m"
	case LevelWarn:
		return "\033[33m[WRN]\033[0m"
	default:
		return "\033[31m[ERR]\033[0m"
	}
}

var (
	mu          sync.Mutex
	verbose     bool
	quiet       bool
	disableLogs bool
	forceStdErr bool

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetVerbose enables debug lines. Verbose wins over quiet.
func SetVerbose(v bool) {
	verbose = v
}

// IsVerbose returns true if verbose logging is enabled.
func IsVerbose() bool {
	return verbose
}

// SetQuiet suppresses info lines. Warnings and errors are still displayed.
func SetQuiet(q bool) {
	quiet = q
}

// SetForceStdErr sends every level to stderr so stdout carries only command output.
func SetForceStdErr(force bool) {
	forceStdErr = force
}

// SetOutput replaces the output streams. Nil values restore the process streams.
func SetOutput(out, errOut io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	stdout, stderr = out, errOut
}

// DisableLogs disables all logging.
func DisableLogs() {
	disableLogs = true
}

// EnableLogs re-enables logging after DisableLogs.
func EnableLogs() {
	disableLogs = false
}

// IsDisabled returns true if logging is disabled.
func IsDisabled() bool {
	return disableLogs
}

// threshold is the lowest level currently printed.
func threshold() Level {
	switch {
	case verbose:
		return LevelDebug
	case quiet:
		return LevelWarn
	default:
		return LevelInfo
	}
}

func Debugf(format string, args ...interface{}) {
	write(LevelDebug, format, args...)
}

func Infof(format string, args ...interface{}) {
	write(LevelInfo, format, args...)
}

func Warnf(format string, args ...interface{}) {
	write(LevelWarn, format, args...)
}

func Errorf(format string, args ...interface{}) {
	write(LevelError, format, args...)
}

// Fatalf logs an error and exits with status 1.
func Fatalf(format string, args ...interface{}) {
	write(LevelError, format, args...)
	os.Exit(1)
}

func write(level Level, format string, args ...interface{}) {
	if disableLogs || level < threshold() {
		return
	}
	line := level.String() + " " + fmt.Sprintf(format, args...) + "\n"

	mu.Lock()
	defer mu.Unlock()

	w := stdout
	if forceStdErr || level == LevelError {
		w = stderr
	}
	_, _ = io.WriteString(w, line)
}

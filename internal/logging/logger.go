// Package logging is the console logger of the built-in environment builder
// and the CLI. The core packages never log.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// Enumeration of the different log levels
const (
	LevelSilent  = iota // no output at all
	LevelError          // errors only
	LevelWarning        // errors and warnings (DEFAULT)
	LevelVerbose        // errors, warnings and progress
)

var levelNames = map[string]int{
	"silent":  LevelSilent,
	"error":   LevelError,
	"warn":    LevelWarning,
	"warning": LevelWarning,
	"verbose": LevelVerbose,
}

var (
	ErrorStyle = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	WarnStyle  = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	InfoStyle  = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)

	ErrorColor = pterm.FgRed
	WarnColor  = pterm.FgYellow
	InfoColor  = pterm.FgLightGreen
)

// ParseLevel maps a level name to its value.
func ParseLevel(name string) (int, error) {
	level, ok := levelNames[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown log level %q (want silent, error, warn or verbose)", name)
	}
	return level, nil
}

// Logger writes tagged messages. It is safe for concurrent use; copies made
// by WithTag share the writer, the lock and the counters.
type Logger struct {
	Level int

	out   io.Writer
	color bool
	tag   string

	shared *counters
}

type counters struct {
	m        sync.Mutex
	errors   int
	warnings int
}

// New returns a logger writing to out. Colour is used only when out is a
// terminal and NO_COLOR is unset.
func New(out io.Writer, level int) *Logger {
	return &Logger{
		Level:  level,
		out:    out,
		color:  ColorEnabled(out),
		shared: &counters{},
	}
}

// Discard returns a silent logger.
func Discard() *Logger {
	return New(io.Discard, LevelSilent)
}

// ColorEnabled reports whether escape sequences should be written to w.
func ColorEnabled(w io.Writer) bool {
	// NO_COLOR convention: https://no-color.org/
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

// WithTag returns a logger that prefixes every message with [tag].
func (l *Logger) WithTag(tag string) *Logger {
	c := *l
	c.tag = tag
	return &c
}

// Errorf logs an error. Errors are counted even when not shown.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(LevelError, "error", ErrorStyle, ErrorColor, format, args...)
}

// Warnf logs a warning.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(LevelWarning, "warning", WarnStyle, WarnColor, format, args...)
}

// Infof logs progress; it shows only at verbose level.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(LevelVerbose, "info", InfoStyle, InfoColor, format, args...)
}

// Counts returns how many errors and warnings were logged.
func (l *Logger) Counts() (errors, warnings int) {
	l.shared.m.Lock()
	defer l.shared.m.Unlock()
	return l.shared.errors, l.shared.warnings
}

func (l *Logger) log(level int, label string, style *pterm.Style, color pterm.Color, format string, args ...interface{}) {
	l.shared.m.Lock()
	defer l.shared.m.Unlock()

	switch level {
	case LevelError:
		l.shared.errors++
	case LevelWarning:
		l.shared.warnings++
	}
	if l.Level < level {
		return
	}

	msg := fmt.Sprintf(format, args...)
	if l.tag != "" {
		msg = "[" + l.tag + "] " + msg
	}
	if l.color {
		fmt.Fprintln(l.out, style.Sprint(" "+label+" ")+" "+color.Sprint(msg))
		return
	}
	fmt.Fprintln(l.out, label+": "+msg)
}

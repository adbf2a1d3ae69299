package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// LogLevel defines the severity of the log entry, matching the
// DEBUG/INFO/WARN/ERROR/CRITICAL/FATAL level names recognized by
// SCREEN_VERBOSITY and FILE_VERBOSITY.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelCritical
	LevelFatal
)

// String makes LogLevel satisfy the fmt.Stringer interface.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelCritical:
		return "CRITICAL"
	case LevelFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// SlogLevel maps a LogLevel onto the nearest slog.Level. CRITICAL and FATAL
// have no slog equivalent and are mapped to slog.LevelError; callers that
// need the distinction carry it in the message itself.
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError, LevelCritical, LevelFatal:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel parses one of the recognized SCREEN_VERBOSITY/FILE_VERBOSITY
// names. Unrecognized names fall back to INFO.
func ParseLevel(name string) LogLevel {
	switch name {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN":
		return LevelWarn
	case "ERROR":
		return LevelError
	case "CRITICAL":
		return LevelCritical
	case "FATAL":
		return LevelFatal
	default:
		return LevelInfo
	}
}

// named is one entry of the process-wide logger registry: a single
// *slog.Logger reused for every request of the same name.
type named struct {
	logger      *slog.Logger
	screenLevel LogLevel
	fileLevel   LogLevel
}

var (
	registryMu sync.Mutex
	registry   = map[string]*named{}

	screenWriter io.Writer = os.Stdout
	fileWriter   io.Writer // nil disables the file sink
	screenLevel  LogLevel  = LevelInfo
	fileLevel    LogLevel  = LevelInfo
)

// Configure sets the sinks and level filters shared by every logger the
// registry creates from now on. It clears the registry, so the next Get
// for any name builds a fresh logger; a *slog.Logger handed out before
// the call keeps the sinks it was built with. It corresponds to
// the LOG_FILE/SCREEN_VERBOSITY/FILE_VERBOSITY config keys: passing a nil
// fileOut disables the file sink, matching LOG_FILE=$NONE.
func Configure(screenOut io.Writer, fileOut io.Writer, screen, file LogLevel) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if screenOut != nil {
		screenWriter = screenOut
	}
	fileWriter = fileOut
	screenLevel = screen
	fileLevel = file

	// Existing loggers were built against the previous sinks; drop them so
	// the next Get rebuilds against the new configuration.
	registry = map[string]*named{}
}

// Get returns the logger registered under name, creating it against the
// currently configured sinks on first request. A second request for the
// same name returns the same *slog.Logger, per the process-wide keyed
// cache behavior.
func Get(name string) *slog.Logger {
	registryMu.Lock()
	defer registryMu.Unlock()

	if n, ok := registry[name]; ok {
		return n.logger
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(screenWriter, &slog.HandlerOptions{Level: screenLevel.SlogLevel()}),
	}
	if fileWriter != nil {
		handlers = append(handlers, slog.NewTextHandler(fileWriter, &slog.HandlerOptions{Level: fileLevel.SlogLevel()}))
	}

	logger := slog.New(fanoutHandler{handlers: handlers}).With(slog.String("subsystem", name))

	registry[name] = &named{logger: logger, screenLevel: screenLevel, fileLevel: fileLevel}
	return logger
}

// fanoutHandler writes every record to each wrapped handler independently,
// so the screen and file sinks can run at different verbosity levels.
type fanoutHandler struct {
	handlers []slog.Handler
}

func (f fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, h := range f.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (f fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		next[i] = h.WithAttrs(attrs)
	}
	return fanoutHandler{handlers: next}
}

func (f fanoutHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		next[i] = h.WithGroup(name)
	}
	return fanoutHandler{handlers: next}
}

// Debug logs a debug message on the named logger.
func Debug(name, msgFmt string, args ...interface{}) {
	Get(name).Debug(fmt.Sprintf(msgFmt, args...))
}

// Info logs an informational message on the named logger.
func Info(name, msgFmt string, args ...interface{}) {
	Get(name).Info(fmt.Sprintf(msgFmt, args...))
}

// Warn logs a warning message on the named logger.
func Warn(name, msgFmt string, args ...interface{}) {
	Get(name).Warn(fmt.Sprintf(msgFmt, args...))
}

// Error logs an error on the named logger, attaching err as an attribute.
func Error(name string, err error, msgFmt string, args ...interface{}) {
	msg := fmt.Sprintf(msgFmt, args...)
	if err != nil {
		Get(name).Error(msg, slog.String("error", err.Error()))
		return
	}
	Get(name).Error(msg)
}

package app

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	// LogLevelDebug is for detailed debugging information.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is for general informational messages.
	LogLevelInfo
	// LogLevelWarn is for warning messages.
	LogLevelWarn
	// LogLevelError is for error messages.
	LogLevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel parses a string into a LogLevel. Unknown names map to
// LogLevelInfo.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "debug":
		return LogLevelDebug
	case "info":
		return LogLevelInfo
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// logOutput is shared by a logger and everything derived from it so that
// lines from different components never interleave.
type logOutput struct {
	mu sync.Mutex
	w  io.Writer
}

func (o *logOutput) write(line string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, _ = io.WriteString(o.w, line)
}

// Logger provides leveled logging with key/value fields.
type Logger struct {
	mu       sync.Mutex
	level    LogLevel
	out      *logOutput
	prefix   string
	fields   map[string]any
	disabled bool
}

// LoggerConfig configures the logger.
type LoggerConfig struct {
	// Level is the minimum log level to output.
	Level LogLevel
	// Output is where logs are written. Defaults to os.Stderr.
	Output io.Writer
	// Prefix is prepended to all log messages.
	Prefix string
}

// NewLogger creates a new logger with the given configuration.
func NewLogger(cfg LoggerConfig) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	return &Logger{
		level:  cfg.Level,
		out:    &logOutput{w: cfg.Output},
		prefix: cfg.Prefix,
		fields: make(map[string]any),
	}
}

// derive copies l with extra fields. The copy shares l's output.
func (l *Logger) derive(extra map[string]any) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	newFields := make(map[string]any, len(l.fields)+len(extra))
	for k, v := range l.fields {
		newFields[k] = v
	}
	for k, v := range extra {
		newFields[k] = v
	}

	return &Logger{
		level:    l.level,
		out:      l.out,
		prefix:   l.prefix,
		fields:   newFields,
		disabled: l.disabled,
	}
}

// WithField returns a new logger with the given field added.
func (l *Logger) WithField(key string, value any) *Logger {
	return l.derive(map[string]any{key: value})
}

// WithComponent returns a new logger with the component field set.
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

// SetLevel sets the minimum log level. Loggers derived earlier keep
// their own level.
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...any) {
	l.log(LogLevelDebug, msg, args...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, args ...any) {
	l.log(LogLevelInfo, msg, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...any) {
	l.log(LogLevelWarn, msg, args...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, args ...any) {
	l.log(LogLevelError, msg, args...)
}

// log writes a log message if the level is enabled.
func (l *Logger) log(level LogLevel, msg string, args ...any) {
	l.mu.Lock()
	if l.disabled || l.out == nil || level < l.level {
		l.mu.Unlock()
		return
	}
	prefix, fields, out := l.prefix, l.fields, l.out
	l.mu.Unlock()

	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	var sb strings.Builder
	sb.WriteString(time.Now().Format("2006-01-02T15:04:05.000"))
	sb.WriteString(" [")
	sb.WriteString(level.String())
	sb.WriteString("] ")
	if prefix != "" {
		sb.WriteString(prefix)
		sb.WriteString(": ")
	}
	sb.WriteString(msg)

	// Fields are immutable once the logger is built.
	if len(fields) > 0 {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		sb.WriteString(" {")
		for i, k := range keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%s=%v", k, fields[k])
		}
		sb.WriteString("}")
	}
	sb.WriteByte('\n')

	out.write(sb.String())
}

// NullLogger is a logger that discards all output.
var NullLogger = &Logger{disabled: true}

// appLogger is the process-wide logger instance.
var (
	appLogger     *Logger
	appLoggerMu   sync.Mutex
	appLoggerOnce sync.Once
)

// GetLogger returns the process-wide logger.
// Creates a default logger on first call if not set.
func GetLogger() *Logger {
	appLoggerOnce.Do(func() {
		appLoggerMu.Lock()
		defer appLoggerMu.Unlock()
		if appLogger == nil {
			appLogger = NewLogger(LoggerConfig{Level: LogLevelInfo, Prefix: "modal"})
		}
	})
	appLoggerMu.Lock()
	defer appLoggerMu.Unlock()
	return appLogger
}

// SetLogger sets the process-wide logger.
// Should be called early in startup.
func SetLogger(l *Logger) {
	appLoggerMu.Lock()
	defer appLoggerMu.Unlock()
	appLogger = l
}

// Logger returns the application's logger instance.
func (app *Application) Logger() *Logger {
	if app.logger == nil {
		return GetLogger()
	}
	return app.logger
}

// logComponentError logs an error with component context.
func (app *Application) logComponentError(component string, err error) {
	if err != nil {
		app.Logger().WithComponent(component).Error("error: %v", err)
	}
}

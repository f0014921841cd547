package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents logging verbosity levels.
type LogLevel int

// Log level constants.
const (
	LogLevelOff LogLevel = iota
	LogLevelError
	LogLevelDebug
)

// ParseLogLevel parses a log level string.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "none":
		return LogLevelOff
	case "error":
		return LogLevelError
	case "debug":
		return LogLevelDebug
	default:
		return LogLevelError
	}
}

// String returns the string representation of a log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelOff:
		return "off"
	case LogLevelError:
		return "error"
	case LogLevelDebug:
		return "debug"
	default:
		return "error"
	}
}

func (l LogLevel) zapLevel() zapcore.Level {
	if l == LogLevelDebug {
		return zapcore.DebugLevel
	}
	return zapcore.ErrorLevel
}

// Logger writes leveled logs through zap to a file or writer.
type Logger struct {
	mu       sync.Mutex
	level    LogLevel
	json     bool
	file     *os.File
	sink     zapcore.WriteSyncer
	filePath string
	zap      *zap.Logger
}

// NewLogger creates a logger appending to filePath. A leading "~/" is
// expanded. With LogLevelOff or an empty path nothing is written.
func NewLogger(level LogLevel, filePath string) (*Logger, error) {
	logger := &Logger{
		level:    level,
		filePath: filePath,
		zap:      zap.NewNop(),
	}

	if level == LogLevelOff || filePath == "" {
		return logger, nil
	}

	filePath = ExpandPath(filePath)
	if err := os.MkdirAll(filepath.Dir(filePath), 0o750); err != nil {
		return nil, err
	}

	// #nosec G304 -- log file path is from validated config
	f, err := os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}

	logger.file = f
	logger.filePath = filePath
	logger.sink = zapcore.AddSync(f)
	logger.rebuild()

	return logger, nil
}

// NewWriterLogger creates a logger that writes to w.
func NewWriterLogger(level LogLevel, w io.Writer) *Logger {
	logger := &Logger{
		level: level,
		sink:  zapcore.AddSync(w),
		zap:   zap.NewNop(),
	}
	logger.rebuild()
	return logger
}

// rebuild recreates the zap logger after a level or encoding change.
// Callers other than constructors must hold mu.
func (l *Logger) rebuild() {
	if l.sink == nil || l.level == LogLevelOff {
		l.zap = zap.NewNop()
		return
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	var enc zapcore.Encoder
	if l.json {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}
	l.zap = zap.New(zapcore.NewCore(enc, l.sink, l.level.zapLevel()))
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	_ = l.zap.Sync()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// SetLevel changes the log level.
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	l.rebuild()
}

// Level returns the current log level.
func (l *Logger) Level() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// SetJSONOutput switches between JSON and console encoding.
func (l *Logger) SetJSONOutput(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.json = enabled
	l.rebuild()
}

// Structured returns the underlying zap logger, or nil when nothing is written.
func (l *Logger) Structured() *zap.Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.sink == nil || l.level == LogLevelOff {
		return nil
	}
	return l.zap
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...any) {
	l.current().Debug(fmt.Sprintf(format, args...))
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...any) {
	l.current().Error(fmt.Sprintf(format, args...))
}

// DebugAttrs logs a debug message with structured fields.
func (l *Logger) DebugAttrs(msg string, fields ...zap.Field) {
	l.current().Debug(msg, fields...)
}

// ErrorAttrs logs an error message with structured fields.
func (l *Logger) ErrorAttrs(msg string, fields ...zap.Field) {
	l.current().Error(msg, fields...)
}

// Writer returns an io.Writer that writes each line to the logger at level.
func (l *Logger) Writer(level LogLevel) io.Writer {
	return &logWriter{logger: l, level: level}
}

func (l *Logger) current() *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.zap
}

type logWriter struct {
	logger *Logger
	level  LogLevel
}

func (w *logWriter) Write(p []byte) (int, error) {
	msg := strings.TrimSpace(string(p))
	if w.level == LogLevelDebug {
		w.logger.Debug("%s", msg)
	} else {
		w.logger.Error("%s", msg)
	}
	return len(p), nil
}

// NullLogger returns a logger that discards all output.
func NullLogger() *Logger {
	return &Logger{level: LogLevelOff, zap: zap.NewNop()}
}

package logger

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const FormatPretty = "pretty"

// Logger wraps zerolog.Logger with additional context.
type Logger struct {
	logger zerolog.Logger
	name   string
}

// Init initializes the global logger from config.
func Init(cfg Config) {
	cfg.ApplyDefaults()
	globalLogger = New(&cfg, "dependify")

	level, _ := zerolog.ParseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" || cfg.Format == FormatPretty {
		log.Logger = newConsoleLogger(&cfg)
	}
}

// New creates a new logger instance with configuration.
func New(cfg *Config, name string) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var zl zerolog.Logger
	if f := strings.ToLower(cfg.Format); f == "console" || f == FormatPretty {
		zl = newConsoleLogger(cfg)
	} else {
		zl = zerolog.New(outputWriter(cfg.Output))
	}

	if cfg.Timestamp {
		zl = zl.With().Timestamp().Logger()
	}
	if cfg.Caller {
		zl = zl.With().Caller().Logger()
	}

	return &Logger{
		logger: zl,
		name:   name,
	}
}

// NewDefault creates a logger with default configuration.
func NewDefault(name string) *Logger {
	cfg := &Config{
		Level:     "info",
		Format:    "console",
		Output:    "stdout",
		Timestamp: true,
	}
	return New(cfg, name)
}

// NewFromEnv creates a logger configured from environment variables.
func NewFromEnv(name string) *Logger {
	cfg := &Config{
		Level:     getEnvOrDefault("LOG_LEVEL", "info"),
		Format:    getEnvOrDefault("LOG_FORMAT", "console"),
		Output:    getEnvOrDefault("LOG_OUTPUT", "stdout"),
		NoColor:   getEnvOrDefault("LOG_NO_COLOR", "false") == "true",
		Timestamp: getEnvOrDefault("LOG_TIMESTAMP", "true") == "true",
	}
	return New(cfg, name)
}

// WithComponent returns a logger tagged with a component name.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{
		logger: l.logger.With().Str(FieldComponent, name).Logger(),
		name:   l.name,
	}
}

// WithFields returns a logger with additional fields.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	zc := l.logger.With()
	for k, v := range fields {
		zc = zc.Interface(k, v)
	}
	return &Logger{logger: zc.Logger(), name: l.name}
}

// WithError returns a logger with an error field.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		logger: l.logger.With().Err(err).Logger(),
		name:   l.name,
	}
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, fields ...map[string]interface{}) {
	event := l.logger.Debug()
	addFields(event, fields...)
	event.Msg(msg)
}

// Info logs an info message.
func (l *Logger) Info(msg string, fields ...map[string]interface{}) {
	event := l.logger.Info()
	addFields(event, fields...)
	event.Msg(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, fields ...map[string]interface{}) {
	event := l.logger.Warn()
	addFields(event, fields...)
	event.Msg(msg)
}

// Error logs an error message.
func (l *Logger) Error(msg string, fields ...map[string]interface{}) {
	event := l.logger.Error()
	addFields(event, fields...)
	event.Msg(msg)
}

// Fatal logs a fatal message and exits.
func (l *Logger) Fatal(msg string, fields ...map[string]interface{}) {
	event := l.logger.Fatal()
	addFields(event, fields...)
	event.Msg(msg)
}

// --- Global logger ---

var globalLogger *Logger

// SetGlobalLogger sets the global logger instance.
func SetGlobalLogger(l *Logger) { globalLogger = l }

// GetGlobalLogger returns the global logger, creating a default one if needed.
func GetGlobalLogger() *Logger {
	if globalLogger == nil {
		globalLogger = NewDefault("dependify")
	}
	return globalLogger
}

// Package-level convenience functions delegate to the global logger.

func Debug(msg string, fields ...map[string]interface{}) {
	GetGlobalLogger().Debug(msg, fields...)
}

func Info(msg string, fields ...map[string]interface{}) {
	GetGlobalLogger().Info(msg, fields...)
}

func Warn(msg string, fields ...map[string]interface{}) {
	GetGlobalLogger().Warn(msg, fields...)
}

func Error(msg string, fields ...map[string]interface{}) {
	GetGlobalLogger().Error(msg, fields...)
}

func Fatal(msg string, fields ...map[string]interface{}) {
	GetGlobalLogger().Fatal(msg, fields...)
}

// WithComponent returns a component-tagged logger from the global logger.
func WithComponent(name string) *Logger {
	return GetGlobalLogger().WithComponent(name)
}

// --- internal helpers ---

func addFields(event *zerolog.Event, fields ...map[string]interface{}) {
	for _, fm := range fields {
		for k, v := range fm {
			event.Interface(k, v)
		}
	}
}

func outputWriter(output string) *os.File {
	switch strings.ToLower(output) {
	case "stderr":
		return os.Stderr
	default:
		return os.Stdout
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func newConsoleLogger(cfg *Config) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        outputWriter(cfg.Output),
		TimeFormat: "15:04:05",
		NoColor:    cfg.NoColor,
		FormatLevel: func(i interface{}) string {
			lvl := strings.ToUpper(fmt.Sprintf("%s", i))
			var tag string
			switch lvl {
			case "DEBUG":
				tag = "[DBG]"
			case "INFO":
				tag = "[INF]"
			case "WARN":
				tag = "[WRN]"
			case "ERROR":
				tag = "[ERR]"
			case "FATAL":
				tag = "[FTL]"
			default:
				tag = fmt.Sprintf("[%s]", lvl)
			}
			if cfg.NoColor {
				return tag
			}
			switch lvl {
			case "DEBUG":
				return "\033[36m" + tag + "\033[0m"
			case "INFO":
				return "\033[32m" + tag + "\033[0m"
			case "WARN":
				return "\033[33m" + tag + "\033[0m"
			case "ERROR":
				return "\033[31m" + tag + "\033[0m"
			case "FATAL":
				return "\033[35m" + tag + "\033[0m"
			default:
				return tag
			}
		},
	})
}

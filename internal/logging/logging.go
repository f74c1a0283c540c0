package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rgehrsitz/goalplan/internal/calculation"
	"github.com/rs/zerolog"
)

// Config holds logger configuration
type Config struct {
	Level  string    // debug, info, warn, error
	Pretty bool      // human-readable console output
	Output io.Writer // defaults to stderr so reports on stdout stay clean
}

// ParseLevel maps a level name to a zerolog level, defaulting to info
func ParseLevel(name string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New creates a structured logger
func New(cfg Config) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	return zerolog.New(out).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
}

// EngineLogger adapts a zerolog logger to calculation.Logger
type EngineLogger struct {
	log zerolog.Logger
}

// NewEngineLogger wraps l, tagging every event with the component name
func NewEngineLogger(l zerolog.Logger, component string) *EngineLogger {
	if component != "" {
		l = l.With().Str("component", component).Logger()
	}
	return &EngineLogger{log: l}
}

var _ calculation.Logger = (*EngineLogger)(nil)

func (e *EngineLogger) Debugf(format string, args ...interface{}) {
	e.log.Debug().Msgf(format, args...)
}

func (e *EngineLogger) Infof(format string, args ...interface{}) {
	e.log.Info().Msgf(format, args...)
}

func (e *EngineLogger) Warnf(format string, args ...interface{}) {
	e.log.Warn().Msgf(format, args...)
}

func (e *EngineLogger) Errorf(format string, args ...interface{}) {
	e.log.Error().Msgf(format, args...)
}

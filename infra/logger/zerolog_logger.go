package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// zerologLogger adapts rs/zerolog to the core logging interface.
type zerologLogger struct {
	log zerolog.Logger
}

// New builds the service logger for one component. APP_ENV=dev selects the
// console writer and a debug floor; otherwise output is JSON at info level.
// EVMAINT_LOG_LEVEL overrides the level either way.
func New(component string) Logger {
	return newWithOutput(component, os.Stdout)
}

func newWithOutput(component string, out io.Writer) Logger {
	dev := strings.EqualFold(os.Getenv("APP_ENV"), "dev")
	level := zerolog.InfoLevel
	if dev {
		level = zerolog.DebugLevel
	}
	if raw := os.Getenv("EVMAINT_LOG_LEVEL"); raw != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(raw)); err == nil {
			level = parsed
		}
	}
	w := out
	if dev {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	z := zerolog.New(w).Level(level).With().
		Timestamp().
		Str("service", "evmaint").
		Str("component", component).
		Logger()
	return &zerologLogger{log: z}
}

func (l *zerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *zerologLogger) Debugw(msg string, fields map[string]any) {
	ev := l.log.Debug()
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}

func (l *zerologLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *zerologLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *zerologLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}

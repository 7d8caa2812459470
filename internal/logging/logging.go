// Package logging configures the process logger and the coloured console notices.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// ParseLevel maps a level name to a zerolog level. Empty selects warn; ok is
// false for unknown names, which also fall back to warn.
func ParseLevel(name string) (zerolog.Level, bool) {
	switch name {
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "fatal":
		return zerolog.FatalLevel, true
	case "panic":
		return zerolog.PanicLevel, true
	case "off":
		return zerolog.Disabled, true
	}
	return zerolog.WarnLevel, false
}

// Setup sets the global level and returns a console logger writing to w.
func Setup(level string, w io.Writer, noColor bool) zerolog.Logger {
	lvl, ok := ParseLevel(level)
	zerolog.SetGlobalLevel(lvl)

	out := zerolog.ConsoleWriter{Out: w, NoColor: noColor, TimeFormat: time.TimeOnly}
	log := zerolog.New(out).With().Timestamp().Logger()

	if !ok {
		log.Warn().Str("log_level", level).Msg("unknown log level, setting level to warn")
	}

	return log
}

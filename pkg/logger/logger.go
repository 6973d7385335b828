package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the application logger. Development gets a console writer,
// everything else plain JSON lines.
func New(level, appEnv string) zerolog.Logger {
	var w io.Writer = os.Stdout
	if appEnv != "production" {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	}
	return FromWriter(w, level)
}

// FromWriter builds a logger writing to w at the given level.
func FromWriter(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New builds the process logger: JSON lines in production, a console writer
// everywhere else.
func New(env string) zerolog.Logger {
	var out io.Writer = os.Stdout
	if env != "production" {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	level := zerolog.InfoLevel
	if env == "development" {
		level = zerolog.DebugLevel
	}

	return zerolog.New(out).Level(level).With().Timestamp().Str("service", "health-portal").Logger()
}

package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config represents logger configuration
type Config struct {
	Level  string
	Pretty bool      // Human-readable console output
	Output io.Writer // Defaults to os.Stderr so that stdout only carries results
}

// New builds a logger with the given configuration
func New(config Config) zerolog.Logger {
	if config.Output == nil {
		config.Output = os.Stderr
	}

	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(config.Level)
	if err != nil || config.Level == "" {
		level = zerolog.InfoLevel
	}

	var writer io.Writer = config.Output
	if config.Pretty {
		writer = zerolog.ConsoleWriter{
			Out:        config.Output,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Level  string
	Format string
}

// Init configures the global zerolog logger. Unknown levels fall back to info.
func Init(cfg Config) zerolog.Logger {
	return InitWithWriter(cfg, os.Stdout)
}

func InitWithWriter(cfg Config, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	output := out
	if cfg.Format == "pretty" {
		output = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: "2006-01-02 15:04:05",
		}
	}

	l := zerolog.New(output).Level(level).With().Timestamp().Logger()
	log.Logger = l
	return l
}

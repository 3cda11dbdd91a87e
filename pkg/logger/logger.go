// Package logger configures the global zerolog logger from application
// settings. Packages log through github.com/rs/zerolog/log directly.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/chartlight/chartlight/pkg/config"
)

// Init applies the logging configuration to the global logger.
func Init() error {
	settings := config.Get()
	return Setup(settings.Logging)
}

// Setup configures the global logger from the given settings.
func Setup(cfg config.LoggingConfig) error {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("failed to parse log level %q: %w", cfg.Level, err)
	}
	zerolog.SetGlobalLevel(level)

	writer, err := buildWriter(cfg)
	if err != nil {
		return err
	}
	log.Logger = zerolog.New(writer).With().Timestamp().Logger()
	return nil
}

func buildWriter(cfg config.LoggingConfig) (io.Writer, error) {
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return f, nil
	}

	if cfg.Pretty {
		return zerolog.ConsoleWriter{Out: os.Stderr}, nil
	}
	return os.Stderr, nil
}

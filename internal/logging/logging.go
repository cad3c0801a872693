// Package logging builds the application logger.
package logging

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Prefix is printed before every message.
const Prefix = "pyformat"

// New creates a logger writing to w at the named level ("debug", "info",
// "warn", "error"). An empty level means info.
func New(w io.Writer, level string) (*log.Logger, error) {
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          Prefix,
		Level:           log.InfoLevel,
		ReportTimestamp: false,
	})
	if err := SetLevel(logger, level); err != nil {
		return nil, err
	}
	return logger, nil
}

// SetLevel changes the level of logger. An empty level is ignored.
func SetLevel(logger *log.Logger, level string) error {
	if level == "" {
		return nil
	}
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	logger.SetLevel(parsed)
	return nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

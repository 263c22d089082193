package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	// LogLevelEnv names the environment variable for the log level: debug, info, warn or error.
	LogLevelEnv = "INVENTORY_LOG_LEVEL"

	// LogFormatEnv names the environment variable for the log format: text or json.
	LogFormatEnv = "INVENTORY_LOG_FORMAT"

	LogFormatText = "text"
	LogFormatJSON = "json"
)

// ErrInvalidLogConfig is returned for an unknown log level or format.
var ErrInvalidLogConfig = errors.New("invalid log config")

// NewLogger creates a slog.Logger writing to w.
// An empty level means info, an empty format means text.
func NewLogger(w io.Writer, level string, format string) (*slog.Logger, error) {
	var slogLevel slog.Level

	if strings.TrimSpace(level) != "" {
		if err := slogLevel.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
			return nil, errors.Join(ErrInvalidLogConfig, err)
		}
	}

	handlerOptions := &slog.HandlerOptions{Level: slogLevel}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", LogFormatText:
		return slog.New(slog.NewTextHandler(w, handlerOptions)), nil

	case LogFormatJSON:
		return slog.New(slog.NewJSONHandler(w, handlerOptions)), nil
	}

	return nil, fmt.Errorf("%w: unknown log format '%s'", ErrInvalidLogConfig, format)
}

// LoggerFromEnv creates a slog.Logger writing to stderr, configured by INVENTORY_LOG_LEVEL and INVENTORY_LOG_FORMAT.
func LoggerFromEnv() (*slog.Logger, error) {
	return NewLogger(os.Stderr, os.Getenv(LogLevelEnv), os.Getenv(LogFormatEnv))
}

package logging

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Name is the name of the application the logger is created for.
type Name string

// EnvLogLevel is the environment variable used to override the log level.
const EnvLogLevel = `LOG_LEVEL`

// Config is the configuration for the common logger.
type Config struct {
	// appName is added to every log line.
	appName Name

	// level is the minimum level that is logged.
	level slog.Level
}

// NewConfig creates a new logging config for the given application.
func NewConfig(appName Name) *Config {
	return &Config{
		appName: appName,
		level:   slog.LevelInfo,
	}
}

// CommonLogger creates the JSON logger used across the application and sets it as the default logger.
func CommonLogger(c *Config) (*slog.Logger, error) {
	if c == nil {
		return nil, fmt.Errorf("logging config is nil")
	}

	if envLevel := os.Getenv(EnvLogLevel); envLevel != "" {
		if err := c.level.UnmarshalText([]byte(strings.ToUpper(envLevel))); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", envLevel, err)
		}
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: c.level == slog.LevelDebug,
		Level:     c.level,
	})

	l := slog.New(h).With(slog.String(KeyApp, string(c.appName)))
	slog.SetDefault(l)
	return l, nil
}

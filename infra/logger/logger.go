package logger

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	corelogger "github.com/kilianp07/homeload/core/logger"
)

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// NopLogger implements Logger with no-op methods.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any)                 {}
func (NopLogger) Debugw(string, map[string]any)         {}
func (NopLogger) Infof(string, ...any)                  {}
func (NopLogger) Infow(string, map[string]any)          {}
func (NopLogger) Warnf(string, ...any)                  {}
func (NopLogger) Errorf(string, ...any)                 {}
func (NopLogger) Errorw(string, error, map[string]any) {}

// Config selects the global log level and output format.
type Config struct {
	// Level is one of trace, debug, info, warn, error. Defaults to info.
	Level string `json:"level"`
	// Format is "json" or "console". When empty APP_ENV=dev selects console.
	Format string `json:"format"`
}

var (
	mu     sync.RWMutex
	format string
)

// Configure applies cfg to every logger created afterwards.
func Configure(cfg Config) error {
	lvl := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return fmt.Errorf("log level: %w", err)
		}
		lvl = parsed
	}
	f := strings.ToLower(cfg.Format)
	if f != "" && f != "json" && f != "console" {
		return fmt.Errorf("unknown log format %q", cfg.Format)
	}
	zerolog.SetGlobalLevel(lvl)
	mu.Lock()
	format = f
	mu.Unlock()
	return nil
}

func currentFormat() string {
	mu.RLock()
	defer mu.RUnlock()
	return format
}

// New returns a Logger for the given component.
func New(component string) Logger {
	return NewZerologLogger(component)
}

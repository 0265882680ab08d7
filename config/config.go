// Package config loads the homeload configuration from YAML or JSON files
// with optional environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/homeload/core/metrics"
	"github.com/kilianp07/homeload/core/model"
	"github.com/kilianp07/homeload/core/planstore"
	"github.com/kilianp07/homeload/infra/logger"
	"github.com/kilianp07/homeload/infra/monitoring"
	"github.com/kilianp07/homeload/infra/mqtt"
)

// EnvPrefix marks environment variables that override file settings.
// HOMELOAD_STORE__PATH maps to store.path.
const EnvPrefix = "HOMELOAD_"

type Config struct {
	Allocator AllocatorConfig   `json:"allocator"`
	Logging   logger.Config     `json:"logging"`
	Metrics   metrics.Config    `json:"metrics"`
	Store     planstore.Config  `json:"store"`
	MQTT      mqtt.Config       `json:"mqtt"`
	Sentry    monitoring.Config `json:"sentry"`
	API       APIConfig         `json:"api"`
}

// APIConfig protects the plan history endpoint served next to /metrics.
type APIConfig struct {
	// Token, when set, must be sent as "Authorization: Bearer <token>".
	Token string `json:"token"`
}

// AllocatorConfig holds defaults for allocation runs.
type AllocatorConfig struct {
	// Strategy is the default algorithm: sequential, parallel or rolling.
	Strategy string `json:"strategy"`
	// IntervalMinutes is the sampling interval of rolling-window series.
	IntervalMinutes int `json:"interval_minutes"`
}

// SetDefaults applies sane defaults.
func (c *AllocatorConfig) SetDefaults() {
	if c.Strategy == "" {
		c.Strategy = model.StrategySequential.String()
	}
	if c.IntervalMinutes == 0 {
		c.IntervalMinutes = 60
	}
}

// Validate checks the strategy name and interval.
func (c AllocatorConfig) Validate() error {
	if _, ok := model.ParseStrategy(c.Strategy); !ok {
		return fmt.Errorf("unknown strategy %q", c.Strategy)
	}
	if c.IntervalMinutes <= 0 {
		return fmt.Errorf("interval_minutes must be positive: %w", model.ErrInvalidInterval)
	}
	return nil
}

// Interval returns IntervalMinutes as a duration.
func (c AllocatorConfig) Interval() time.Duration {
	return time.Duration(c.IntervalMinutes) * time.Minute
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	cfg.setDefaults()
	return &cfg
}

func (c *Config) setDefaults() {
	c.Allocator.SetDefaults()
	c.Store.SetDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Allocator.Validate(); err != nil {
		return fmt.Errorf("allocator: %w", err)
	}
	if err := c.Store.Validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	return nil
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

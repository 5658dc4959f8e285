// Package config loads the settings shared by the gojets binaries.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/njchilds90/gojets/algebra"
	"github.com/njchilds90/gojets/jets"
)

// Config holds all gojets configuration.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Jets    JetsConfig    `yaml:"jets"`
	Logging LoggingConfig `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
}

// EngineConfig bounds Gröbner basis computations.
type EngineConfig struct {
	MaxPairs int    `yaml:"max_pairs"` // 0 = unbounded
	Timeout  string `yaml:"timeout"`   // per computation, e.g. "30s"
}

// JetsConfig configures the jet rings results live in.
type JetsConfig struct {
	Order string `yaml:"order"` // lex, grevlex, glex or a block spec
	// MaxGenerators caps the jet rings a tool request may build; 0 leaves
	// only the library limit.
	MaxGenerators int `yaml:"max_generators"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// ServerConfig configures cmd/mcp-server.
type ServerConfig struct {
	Port         int   `yaml:"port"`
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			MaxPairs: 0,
			Timeout:  "60s",
		},
		Jets: JetsConfig{
			Order:         "grevlex",
			MaxGenerators: 4096,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Server: ServerConfig{
			Port:         8080,
			MaxBodyBytes: 1 << 20,
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies GOJETS_* environment variables.
func (c *Config) applyEnvOverrides() error {
	if level := os.Getenv("GOJETS_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if v := os.Getenv("GOJETS_MAX_PAIRS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GOJETS_MAX_PAIRS: %w", err)
		}
		c.Engine.MaxPairs = n
	}
	if v := os.Getenv("GOJETS_MAX_GENERATORS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GOJETS_MAX_GENERATORS: %w", err)
		}
		c.Jets.MaxGenerators = n
	}
	if v := os.Getenv("GOJETS_TIMEOUT"); v != "" {
		c.Engine.Timeout = v
	}
	return nil
}

// GetTimeout returns the engine timeout as a duration. Zero means none.
func (c *Config) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Engine.Timeout)
	if err != nil {
		return 60 * time.Second
	}
	return d
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Engine.MaxPairs < 0 {
		return fmt.Errorf("engine.max_pairs must be >= 0, got %d", c.Engine.MaxPairs)
	}
	if c.Engine.Timeout != "" {
		if d, err := time.ParseDuration(c.Engine.Timeout); err != nil || d < 0 {
			return fmt.Errorf("invalid engine.timeout %q", c.Engine.Timeout)
		}
	}
	// Block specs name variable counts and are checked against each ring.
	if _, err := algebra.ParseOrder(c.Jets.Order, 1); err != nil && !strings.Contains(c.Jets.Order, "(") {
		return fmt.Errorf("invalid jets.order: %w", err)
	}
	if c.Jets.MaxGenerators < 0 || c.Jets.MaxGenerators > jets.MaxGenerators {
		return fmt.Errorf("jets.max_generators must be in [0,%d], got %d", jets.MaxGenerators, c.Jets.MaxGenerators)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging.level: %w", err)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid logging.format %q (valid: json, console)", c.Logging.Format)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be positive")
	}
	return nil
}

// Logger builds the zap logger the logging section describes.
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid logging.level: %w", err)
	}
	zc := zap.NewProductionConfig()
	if c.Logging.Format == "console" {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// NewEngine returns an algebra engine honoring the engine section.
func (c *Config) NewEngine(log *zap.Logger, opts ...algebra.EngineOption) *algebra.Engine {
	all := append([]algebra.EngineOption{
		algebra.WithLogger(log),
		algebra.WithMaxPairs(c.Engine.MaxPairs),
	}, opts...)
	return algebra.NewEngine(all...)
}

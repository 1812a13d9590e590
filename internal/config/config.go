package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/lifesim/internal/logging"
)

const (
	DefaultSideLength   = 40
	DefaultGenerations  = 500
	DefaultFrameDelayMs = 100
	DefaultFrontend     = FrontendTea
	DefaultLogLevel     = "info"
)

const (
	FrontendTea  = "tea"
	FrontendANSI = "ansi"
)

// ErrInvalid indicates a configuration value that cannot be used.
var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	SideLength     int       `yaml:"side_length"`
	Generations    int       `yaml:"generations"`
	FrameDelayMs   int       `yaml:"frame_delay_ms"`
	Pattern        string    `yaml:"pattern,omitempty"`
	Frontend       string    `yaml:"frontend"`
	Interruptible  bool      `yaml:"interruptible"`
	StopWhenStable bool      `yaml:"stop_when_stable"`
	Plot           bool      `yaml:"plot"`
	Log            LogConfig `yaml:"log"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		SideLength:   DefaultSideLength,
		Generations:  DefaultGenerations,
		FrameDelayMs: DefaultFrameDelayMs,
		Frontend:     DefaultFrontend,
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// Load reads a YAML file over the defaults; keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a YAML file over a copy of base.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.SideLength <= 0 {
		return fmt.Errorf("%w: side_length must be positive, got %d", ErrInvalid, c.SideLength)
	}
	if c.Generations < 0 {
		return fmt.Errorf("%w: generations must not be negative, got %d", ErrInvalid, c.Generations)
	}
	if c.FrameDelayMs < 0 {
		return fmt.Errorf("%w: frame_delay_ms must not be negative, got %d", ErrInvalid, c.FrameDelayMs)
	}
	switch c.Frontend {
	case FrontendTea, FrontendANSI:
	default:
		return fmt.Errorf("%w: frontend must be %q or %q, got %q", ErrInvalid, FrontendTea, FrontendANSI, c.Frontend)
	}
	if _, err := logging.LookupLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalid, err)
	}
	return nil
}

func (c *Config) FrameDelay() time.Duration {
	return time.Duration(c.FrameDelayMs) * time.Millisecond
}

// Clone returns a copy that can be modified without touching c.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

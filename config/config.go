// Package config loads and validates the settings of a sorting battle.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/exascience/sortbattle/generate"
	"github.com/exascience/sortbattle/sort"
)

// Bounds of the user-facing settings.
const (
	MinElements = 10
	MaxElements = 100
	MinSpeedMs  = 1
	MaxSpeedMs  = 100
)

// ErrInvalidConfiguration is wrapped by every validation error.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Config holds the settings of a battle between two algorithms.
type Config struct {
	Left         string                `yaml:"left"`
	Right        string                `yaml:"right"`
	Elements     int                   `yaml:"elements"`
	Distribution generate.Distribution `yaml:"distribution"`
	SpeedMs      int                   `yaml:"speed_ms"`
	Sound        bool                  `yaml:"sound"`
	Seed         int64                 `yaml:"seed"`
	Logging      LoggingConfig         `yaml:"logging"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // empty logs to stderr
}

// Default returns the settings the battle starts with.
func Default() *Config {
	return &Config{
		Left:         sort.Bubble.Slug(),
		Right:        sort.Quick.Slug(),
		Elements:     30,
		Distribution: generate.Random,
		SpeedMs:      30,
		Sound:        true,
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML config file on top of the defaults and applies
// environment overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

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

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
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

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("SORTBATTLE_LEFT"); v != "" {
		c.Left = v
	}
	if v := os.Getenv("SORTBATTLE_RIGHT"); v != "" {
		c.Right = v
	}
	if v := os.Getenv("SORTBATTLE_DISTRIBUTION"); v != "" {
		d, err := generate.ParseDistribution(v)
		if err != nil {
			return fmt.Errorf("%w: SORTBATTLE_DISTRIBUTION: %v", ErrInvalidConfiguration, err)
		}
		c.Distribution = d
	}
	ints := []struct {
		name string
		dst  *int
	}{
		{"SORTBATTLE_ELEMENTS", &c.Elements},
		{"SORTBATTLE_SPEED_MS", &c.SpeedMs},
	}
	for _, e := range ints {
		v := os.Getenv(e.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfiguration, e.name, err)
		}
		*e.dst = n
	}
	if v := os.Getenv("SORTBATTLE_SOUND"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: SORTBATTLE_SOUND: %v", ErrInvalidConfiguration, err)
		}
		c.Sound = b
	}
	return nil
}

// Algorithms returns the two configured algorithms.
func (c *Config) Algorithms() (left, right sort.ID, err error) {
	if left, err = sort.Parse(c.Left); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	if right, err = sort.Parse(c.Right); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	return left, right, nil
}

// Validate rejects settings outside the supported ranges. All errors
// wrap ErrInvalidConfiguration.
func (c *Config) Validate() error {
	if _, _, err := c.Algorithms(); err != nil {
		return err
	}
	if c.Elements < MinElements || c.Elements > MaxElements {
		return fmt.Errorf("%w: element count %d outside [%d,%d]",
			ErrInvalidConfiguration, c.Elements, MinElements, MaxElements)
	}
	if c.SpeedMs < MinSpeedMs || c.SpeedMs > MaxSpeedMs {
		return fmt.Errorf("%w: speed %dms outside [%d,%d]",
			ErrInvalidConfiguration, c.SpeedMs, MinSpeedMs, MaxSpeedMs)
	}
	if !c.Distribution.Valid() {
		return fmt.Errorf("%w: %v: %v",
			ErrInvalidConfiguration, generate.ErrUnknownDistribution, c.Distribution)
	}
	return nil
}

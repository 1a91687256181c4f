// Package config loads the benchmon configuration file. Every field
// has a sensible default; a missing file is not an error.
package config

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config holds all benchmon configuration.
type Config struct {
	Log      LogConfig     `yaml:"log"`
	Sections SectionConfig `yaml:"sections"`
	Watch    WatchConfig   `yaml:"watch"`
}

// LogConfig configures the report sinks.
type LogConfig struct {
	// Console verbosity: debug, info, warn or error.
	Level string `yaml:"level"`
	// JSON debug log path. Empty disables the file sink.
	File string `yaml:"file"`
}

// SectionConfig toggles the optional report sections. The core sections
// (CPU, memory, OS, processes) are always on.
type SectionConfig struct {
	Mounts  bool `yaml:"mounts"`
	Network bool `yaml:"network"`
	Sensors bool `yaml:"sensors"`
	Users   bool `yaml:"users"`
}

// WatchConfig configures the live monitor.
type WatchConfig struct {
	Interval string `yaml:"interval"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Sections: SectionConfig{
			Mounts:  true,
			Network: true,
			Sensors: true,
			Users:   true,
		},
		Watch: WatchConfig{
			Interval: "1s",
		},
	}
}

// Load reads a YAML configuration file on top of the defaults. A
// missing file yields the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LogLevel returns the console verbosity threshold, info when the
// configured name does not parse.
func (c *Config) LogLevel() zapcore.Level {
	lvl, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// WatchInterval returns the sampling period of the live monitor, one
// second when unset or unparseable.
func (c *Config) WatchInterval() time.Duration {
	d, err := time.ParseDuration(c.Watch.Interval)
	if err != nil || d <= 0 {
		return time.Second
	}
	return d
}

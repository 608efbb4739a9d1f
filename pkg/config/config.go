// Package config loads and saves framewire CLI configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the framewire CLI configuration.
type Config struct {
	Listen  string  `yaml:"listen"`
	Codec   string  `yaml:"codec"`
	Framing Framing `yaml:"framing"`
	Metrics Metrics `yaml:"metrics"`
	Capture Capture `yaml:"capture"`
	Logging Logging `yaml:"logging"`
}

// Framing contains buffer and frame-limit tuning for readers and writers.
type Framing struct {
	MaxFrameSize    int `yaml:"max_frame_size"`
	ReadChunkSize   int `yaml:"read_chunk_size"`
	HighWaterMark   int `yaml:"high_water_mark"`
	InitialCapacity int `yaml:"initial_capacity"`
}

// Metrics contains the optional metrics endpoint configuration.
type Metrics struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// Capture contains the frame capture store configuration.
type Capture struct {
	Dir string `yaml:"dir"`
}

// Logging contains logging configuration.
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen: "127.0.0.1:7400",
		Codec:  "length16",
		Framing: Framing{
			MaxFrameSize:    1024 * 1024,
			ReadChunkSize:   4 * 1024,
			HighWaterMark:   32 * 1024,
			InitialCapacity: 8 * 1024,
		},
		Metrics: Metrics{
			Enabled: false,
			Listen:  "127.0.0.1:9400",
		},
		Capture: Capture{
			Dir: "./capture",
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from the specified path.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path.
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

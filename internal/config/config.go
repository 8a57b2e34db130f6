package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultAtoms    = 20
	DefaultDt       = 1.0 / 60.0
	DefaultDuration = 10.0
	DefaultSeed     = 42
	DefaultFPS      = 60
	DefaultWidth    = 800
	DefaultHeight   = 600
)

type Config struct {
	Atoms    int          `yaml:"atoms"`
	Dt       float64      `yaml:"dt"`
	Duration float64      `yaml:"duration"`
	Seed     int64        `yaml:"seed"`
	FPS      int          `yaml:"fps"`
	Window   WindowConfig `yaml:"window"`
}

type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		Atoms:    DefaultAtoms,
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Seed:     DefaultSeed,
		FPS:      DefaultFPS,
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt        = 0.01
	DefaultDuration  = 10.0
	DefaultTolerance = 1e-6
)

// Config describes one integration run for the CLI.
type Config struct {
	System     string    `yaml:"system"`
	Stepper    string    `yaml:"stepper"`
	Dt         float64   `yaml:"dt"`
	Duration   float64   `yaml:"duration"`
	Tolerance  float64   `yaml:"tolerance"`
	Norm       string    `yaml:"norm"`
	Decimation uint      `yaml:"decimation"`
	InitState  []float64 `yaml:"init_state"`
}

func DefaultConfig() *Config {
	return &Config{
		System:    "harmonic",
		Stepper:   "rk4",
		Dt:        DefaultDt,
		Duration:  DefaultDuration,
		Tolerance: DefaultTolerance,
		Norm:      "absolute",
	}
}

// Load reads a YAML config file over the defaults.
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

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive, got %f", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("config: duration must be positive, got %f", c.Duration)
	}
	if c.Stepper == "adaptive" && c.Tolerance <= 0 {
		return fmt.Errorf("config: tolerance must be positive for adaptive stepping")
	}
	switch c.Norm {
	case "", "absolute", "relative", "mixed":
	default:
		return fmt.Errorf("config: unknown norm %q", c.Norm)
	}
	return nil
}

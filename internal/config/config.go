package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jacobbriones1/DynoDiff/internal/lake"
)

const (
	DefaultFlowRate  = 2.0
	DefaultVolume    = 100.0
	DefaultInputRate = 1.0
	DefaultTmax      = 400.0
	DefaultSamples   = 200
	DefaultDt        = 0.1
)

type Config struct {
	FlowRate  float64 `yaml:"flow_rate"`
	Volume    float64 `yaml:"volume"`
	InputRate float64 `yaml:"input_rate"`
	Tmax      float64 `yaml:"tmax"`
	Samples   int     `yaml:"samples"`
	Dt        float64 `yaml:"dt"`
}

func DefaultConfig() *Config {
	return &Config{
		FlowRate:  DefaultFlowRate,
		Volume:    DefaultVolume,
		InputRate: DefaultInputRate,
		Tmax:      DefaultTmax,
		Samples:   DefaultSamples,
		Dt:        DefaultDt,
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

// Params converts the config to model parameters. Validation happens in
// lake.Solve, not here.
func (c *Config) Params() lake.Parameters {
	return lake.Parameters{
		FlowRate:  c.FlowRate,
		Volume:    c.Volume,
		InputRate: c.InputRate,
	}
}

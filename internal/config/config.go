package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPrior      = "Jeffreys"
	DefaultPriorLower = 1e-12
	DefaultPriorUpper = 1e-8
	DefaultGridLower  = -12.0
	DefaultGridUpper  = -8.0
	DefaultIntervals  = 1000
	DefaultMaxLag     = 100
	DefaultDownSample = 10
)

type Config struct {
	Unknown    string      `yaml:"unknown"`
	Known      KnownConfig `yaml:"known"`
	Prior      string      `yaml:"prior"`
	PriorLower float64     `yaml:"prior_lower"`
	PriorUpper float64     `yaml:"prior_upper"`
	Grid       GridConfig  `yaml:"grid"`
	CGW        CGWConfig   `yaml:"cgw"`
}

// KnownConfig carries the fixed physical quantities when the unknown is
// a, mu, or T. Units: m, Pa*s, K.
type KnownConfig struct {
	Radius      float64 `yaml:"radius"`
	Viscosity   float64 `yaml:"viscosity"`
	Temperature float64 `yaml:"temperature"`
}

// GridConfig bounds the MLE search in base-10 log space.
type GridConfig struct {
	LowerLog10 float64 `yaml:"lower_log10"`
	UpperLog10 float64 `yaml:"upper_log10"`
	Intervals  int     `yaml:"intervals"`
}

type CGWConfig struct {
	MaxLag     int `yaml:"max_lag"`
	DownSample int `yaml:"down_sample"`
}

func DefaultConfig() *Config {
	return &Config{
		Unknown:    "D",
		Prior:      DefaultPrior,
		PriorLower: DefaultPriorLower,
		PriorUpper: DefaultPriorUpper,
		Grid: GridConfig{
			LowerLog10: DefaultGridLower,
			UpperLog10: DefaultGridUpper,
			Intervals:  DefaultIntervals,
		},
		CGW: CGWConfig{
			MaxLag:     DefaultMaxLag,
			DownSample: DefaultDownSample,
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

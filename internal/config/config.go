package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/bounceball/internal/dynamo"
	"github.com/san-kum/bounceball/internal/experiment"
)

const (
	DefaultPolicy   = "none"
	DefaultEpisodes = 1
	DefaultP        = 0.1
	DefaultEvery    = 10
	DefaultTarget   = 80.0
	DefaultKp       = 1.0
)

type Config struct {
	Policy       string       `yaml:"policy"`
	TimeStep     float64      `yaml:"time_step"`
	MaxSteps     int          `yaml:"max_steps"`
	Gravity      float64      `yaml:"gravity"`
	Seed         int64        `yaml:"seed"`
	Episodes     int          `yaml:"episodes"`
	PolicyParams PolicyConfig `yaml:"policy_params"`
}

type PolicyConfig struct {
	P      float64 `yaml:"p"`
	Every  int     `yaml:"every"`
	Target float64 `yaml:"target"`
	Kp     float64 `yaml:"kp"`
	Kd     float64 `yaml:"kd"`
}

func DefaultConfig() *Config {
	return &Config{
		Policy:   DefaultPolicy,
		TimeStep: dynamo.DefaultTimeStep,
		MaxSteps: dynamo.DefaultMaxSteps,
		Gravity:  dynamo.DefaultGravity,
		Episodes: DefaultEpisodes,
		PolicyParams: PolicyConfig{
			P:      DefaultP,
			Every:  DefaultEvery,
			Target: DefaultTarget,
			Kp:     DefaultKp,
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of base, so keys missing from the file keep
// base's values. base is modified and returned.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
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
	if err := c.Dynamo().Validate(); err != nil {
		return err
	}
	if c.Episodes <= 0 {
		return fmt.Errorf("%w: episodes must be positive, got %d", dynamo.ErrInvalidConfig, c.Episodes)
	}
	return nil
}

func (c *Config) Dynamo() dynamo.Config {
	cfg := dynamo.DefaultConfig()
	cfg.TimeStep = c.TimeStep
	cfg.MaxSteps = c.MaxSteps
	cfg.Gravity = c.Gravity
	cfg.Seed = c.Seed
	return cfg
}

func (c *Config) GetPolicyParams() map[string]float64 {
	return map[string]float64{
		"p":       c.PolicyParams.P,
		"every":   float64(c.PolicyParams.Every),
		"target":  c.PolicyParams.Target,
		"kp":      c.PolicyParams.Kp,
		"kd":      c.PolicyParams.Kd,
		"gravity": c.Gravity,
	}
}

func (c *Config) ToExperiment() experiment.Config {
	return experiment.Config{
		Policy:   c.Policy,
		TimeStep: c.TimeStep,
		MaxSteps: c.MaxSteps,
		Gravity:  c.Gravity,
		Seed:     c.Seed,
		Params:   c.GetPolicyParams(),
	}
}

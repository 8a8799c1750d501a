package automation

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/bounceball/internal/analysis"
	"github.com/san-kum/bounceball/internal/config"
	"github.com/san-kum/bounceball/internal/experiment"
	"github.com/san-kum/bounceball/internal/optim"
)

// Scenario is a scripted sequence of ensembles
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from a preset (or the defaults) and overrides the
// fields that are set.
type ScenarioStep struct {
	Name     string             `yaml:"name"`
	Preset   string             `yaml:"preset"`
	Policy   string             `yaml:"policy"`
	Episodes int                `yaml:"episodes"`
	Seed     int64              `yaml:"seed"`
	TimeStep float64            `yaml:"time_step"`
	MaxSteps int                `yaml:"max_steps"`
	Gravity  float64            `yaml:"gravity"`
	Params   map[string]float64 `yaml:"params"`
}

// StepReport is the outcome of one scenario step
type StepReport struct {
	Name    string
	Policy  string
	Summary analysis.Summary
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to parse scenario %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s has no steps", path)
	}
	return &scenario, nil
}

// Resolve builds the config a step runs with.
func (s ScenarioStep) Resolve() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		if cfg = config.GetPreset(s.Preset); cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	}

	if s.Policy != "" {
		cfg.Policy = s.Policy
	}
	if s.Episodes > 0 {
		cfg.Episodes = s.Episodes
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	if s.TimeStep != 0 {
		cfg.TimeStep = s.TimeStep
	}
	if s.MaxSteps != 0 {
		cfg.MaxSteps = s.MaxSteps
	}
	if s.Gravity != 0 {
		cfg.Gravity = s.Gravity
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RunScenario plays every step in order. Reports for the steps that finished
// are returned alongside the first error.
func RunScenario(ctx context.Context, scenario *Scenario, logger *log.Logger) ([]StepReport, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	reports := make([]StepReport, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step-%d", i+1)
		}

		cfg, err := step.Resolve()
		if err != nil {
			return reports, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp := cfg.ToExperiment()
		maps.Copy(exp.Params, step.Params)

		logger.Info("running step", "step", i+1, "of", len(scenario.Steps), "name", name,
			"policy", cfg.Policy, "episodes", cfg.Episodes)

		results, err := experiment.NewEnsemble(exp, cfg.Episodes, cfg.Seed).Run(ctx)
		if err != nil {
			return reports, fmt.Errorf("step %d run: %w", i+1, err)
		}

		reports = append(reports, StepReport{
			Name:    name,
			Policy:  cfg.Policy,
			Summary: analysis.Summarize(results),
		})
	}

	return reports, nil
}

// ParameterSweep plays an ensemble for each value of one parameter. Param is
// "gravity", "time_step" or the name of a policy parameter.
type ParameterSweep struct {
	Base      experiment.Config
	Param     string
	Min       float64
	Max       float64
	NumSteps  int
	Episodes  int
	SeedStart int64
}

type SweepResult struct {
	Value   float64
	Summary analysis.Summary
}

func RunSweep(ctx context.Context, sweep *ParameterSweep, logger *log.Logger) ([]SweepResult, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if sweep.NumSteps <= 0 || sweep.Episodes <= 0 {
		return nil, fmt.Errorf("sweep needs positive steps and episodes, got %d and %d", sweep.NumSteps, sweep.Episodes)
	}

	values := optim.Linspace(sweep.Min, sweep.Max, sweep.NumSteps)
	results := make([]SweepResult, 0, len(values))

	for i, v := range values {
		cfg := sweep.Base
		cfg.Params = maps.Clone(sweep.Base.Params)
		if cfg.Params == nil {
			cfg.Params = make(map[string]float64)
		}

		switch sweep.Param {
		case "gravity":
			cfg.Gravity = v
			cfg.Params["gravity"] = v
		case "time_step":
			cfg.TimeStep = v
		default:
			cfg.Params[sweep.Param] = v
		}
		if err := cfg.Dynamo().Validate(); err != nil {
			return results, fmt.Errorf("%s=%v: %w", sweep.Param, v, err)
		}

		episodes, err := experiment.NewEnsemble(cfg, sweep.Episodes, sweep.SeedStart).Run(ctx)
		if err != nil {
			return results, err
		}

		results = append(results, SweepResult{Value: v, Summary: analysis.Summarize(episodes)})
		logger.Debug("sweep point", "i", i+1, "of", len(values), sweep.Param, v)
	}

	return results, nil
}
